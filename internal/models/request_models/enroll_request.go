package request_models

// EnrollRequest is submitted by the public self-registration page or by an
// organizer adding an attendant manually. Embedding carries the face
// descriptor computed on the capture device; ImageBase64 lets thin clients
// send the raw photo instead and have the embedder sidecar compute it.
type EnrollRequest struct {
	FullName     string    `json:"full_name" binding:"required"`
	Email        string    `json:"email" binding:"required,email"`
	Phone        string    `json:"phone"`
	Organization string    `json:"organization"`
	Position     string    `json:"position"`
	GroupID      string    `json:"group_id"`
	SeatLocation string    `json:"seat_location"`
	IsVIP        bool      `json:"is_vip"`
	Embedding    []float32 `json:"embedding"`
	ImageBase64  string    `json:"image_base64"`
}
