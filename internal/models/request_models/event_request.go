package request_models

type CreateEventRequest struct {
	Name      string `json:"name" binding:"required"`
	Location  string `json:"location"`
	Organizer string `json:"organizer"`
	ImageURL  string `json:"image_url"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type UpdateEventRequest struct {
	Name      string `json:"name"`
	Location  string `json:"location"`
	Organizer string `json:"organizer"`
	ImageURL  string `json:"image_url"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}
