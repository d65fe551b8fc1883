package dto

// ErrorResponseDTO is the common error body.
type ErrorResponseDTO struct {
	Error          string `json:"error" example:"not found"`
	UpstreamStatus int    `json:"upstream_status,omitempty" example:"500"`
}

type HealthDTO struct {
	Status string `json:"status" example:"ok"`
	CMS    string `json:"cms,omitempty" example:"up"`
	Error  string `json:"error,omitempty"`
}
