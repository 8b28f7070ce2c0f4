package response_models

type CheckinResult struct {
	Status      string    `json:"status"`
	CheckedInAt string    `json:"checked_in_at"`
	Distance    *float64  `json:"distance,omitempty"`
	Attendant   Attendant `json:"attendant"`
}

type MatchResult struct {
	Found       bool     `json:"found"`
	AttendantID string   `json:"attendant_id,omitempty"`
	Distance    *float64 `json:"distance,omitempty"`
}
