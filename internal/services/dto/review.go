package dto

type CreateReviewRequest struct {
	PostID        string `json:"post_id" validate:"required,uuid"`
	PropositionID string `json:"proposition_id" validate:"required,uuid"`
	Grade         int    `json:"grade" validate:"required,min=1,max=5"`
	Title         string `json:"title" validate:"required,min=3,max=150"`
	Comment       string `json:"comment" validate:"omitempty,max=2000"`
}

type UpdateReviewRequest struct {
	Grade   *int    `json:"grade" validate:"omitempty,min=1,max=5"`
	Content *string `json:"content" validate:"omitempty,max=2000"`
}
