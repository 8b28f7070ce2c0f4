package response_models

type Event struct {
	ID        string `json:"id"`
	EventCode string `json:"event_code"`
	Name      string `json:"name"`
	Location  string `json:"location,omitempty"`
	Organizer string `json:"organizer,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
}

type Group struct {
	ID           string `json:"id"`
	EventID      string `json:"event_id"`
	Name         string `json:"name"`
	LimitCount   int    `json:"limit_count"`
	ZoneLabel    string `json:"zone_label,omitempty"`
	CurrentCount int    `json:"current_count"`
}
