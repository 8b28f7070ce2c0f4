package response_models

type EventStats struct {
	EventID         string           `json:"event_id"`
	TotalAttendants int64            `json:"total_attendants"`
	CheckedIn       int64            `json:"checked_in"`
	Groups          []GroupOccupancy `json:"groups"`
	RecentCheckins  []RecentCheckin  `json:"recent_checkins"`
}

type GroupOccupancy struct {
	GroupID      string `json:"group_id"`
	Name         string `json:"name"`
	LimitCount   int    `json:"limit_count"`
	CurrentCount int    `json:"current_count"`
	ZoneLabel    string `json:"zone_label,omitempty"`
}

type RecentCheckin struct {
	AttendantID string `json:"attendant_id"`
	FullName    string `json:"full_name"`
	Source      string `json:"source"`
	CheckedInAt string `json:"checked_in_at"`
}
