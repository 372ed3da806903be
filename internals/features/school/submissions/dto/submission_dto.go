package dto

/* ===================== REQUESTS ===================== */

// MaterialID stays a string so the same struct binds from both JSON and
// multipart form fields.
type CreateSubmissionRequest struct {
	MaterialID string `json:"material_id" form:"material_id" validate:"required,uuid"`
	Comments   string `json:"comments" form:"comments" validate:"omitempty"`
}

type UpdateSubmissionRequest struct {
	Comments *string `json:"comments" form:"comments" validate:"omitempty"`
}

type GradeSubmissionRequest struct {
	Score    *float64 `json:"score" validate:"required,min=0,max=100"`
	Feedback string   `json:"feedback" validate:"omitempty"`
}
