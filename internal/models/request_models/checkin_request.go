package request_models

// QRCheckinRequest carries the decoded QR token; the scanner itself lives in
// the browser, only the string reaches the API.
type QRCheckinRequest struct {
	Code string `json:"code" binding:"required"`
}

type FaceCheckinRequest struct {
	Embedding   []float32 `json:"embedding"`
	ImageBase64 string    `json:"image_base64"`
}

// MatchRequest is the read-only diagnostics probe exposed to organizers.
type MatchRequest struct {
	Embedding []float32 `json:"embedding" binding:"required"`
}
