// Package queue forwards check-in events to a message broker so analytics and
// off-site dashboards can consume them without querying the primary database.
package queue

// CheckinConfirmedEvent is the payload published to the broker for every
// accepted check-in.
type CheckinConfirmedEvent struct {
	EventID      string `json:"event_id"`
	AttendantID  string `json:"attendant_id"`
	Code         string `json:"code"`
	FullName     string `json:"full_name"`
	Organization string `json:"organization,omitempty"`
	GroupName    string `json:"group_name,omitempty"`
	ZoneLabel    string `json:"zone_label,omitempty"`
	SeatLocation string `json:"seat_location,omitempty"`
	IsVIP        bool   `json:"is_vip"`
	Source       string `json:"source"`
	CheckedInAt  string `json:"checked_in_at"`
}
