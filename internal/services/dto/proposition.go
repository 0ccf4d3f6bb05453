package dto

import (
	"time"

	"skillswap_backend/internal/models"
)

type CreatePropositionRequest struct {
	Content string `json:"content" validate:"required,min=2"`
}

type PropositionSummary struct {
	ID                   string                  `json:"id"`
	PostID               string                  `json:"post_id"`
	Content              string                  `json:"content"`
	State                models.PropositionState `json:"state"`
	IsFinishedBySender   bool                    `json:"is_finished_by_sender"`
	IsFinishedByReceiver bool                    `json:"is_finished_by_receiver"`
	Sender               *models.User            `json:"sender,omitempty"`
	Receiver             *models.User            `json:"receiver,omitempty"`
	Post                 *models.Post            `json:"post,omitempty"`
	CreatedAt            time.Time               `json:"created_at"`
}
