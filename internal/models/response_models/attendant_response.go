package response_models

type Attendant struct {
	ID           string `json:"id"`
	EventID      string `json:"event_id"`
	Code         string `json:"code"`
	FullName     string `json:"full_name"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Organization string `json:"organization,omitempty"`
	Position     string `json:"position,omitempty"`
	AvatarURL    string `json:"avatar_url,omitempty"`
	GroupID      string `json:"group_id,omitempty"`
	GroupName    string `json:"group_name,omitempty"`
	ZoneLabel    string `json:"zone_label,omitempty"`
	SeatLocation string `json:"seat_location,omitempty"`
	IsVIP        bool   `json:"is_vip"`
	HasFace      bool   `json:"has_face"`
	CheckedInAt  string `json:"checked_in_at,omitempty"`
}
