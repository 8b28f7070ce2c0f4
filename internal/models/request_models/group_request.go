package request_models

type CreateGroupRequest struct {
	Name       string `json:"name" binding:"required"`
	LimitCount int    `json:"limit_count"`
	ZoneLabel  string `json:"zone_label"`
}
