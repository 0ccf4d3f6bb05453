package dto

import (
	"time"

	"skillswap_backend/internal/models"
)

type CreatePostRequest struct {
	Title   string `json:"title" validate:"required,min=3,max=150"`
	Content string `json:"content" validate:"required,min=10"`
	SkillID string `json:"skill_id" validate:"required,uuid"`
}

// AuthorSummary carries the author together with their review aggregates.
type AuthorSummary struct {
	ID           string  `json:"id"`
	Username     string  `json:"username"`
	Avatar       string  `json:"avatar,omitempty"`
	AverageGrade float64 `json:"average_grade"`
	NbOfReviews  int64   `json:"nb_of_reviews"`
}

type PostResponse struct {
	ID           string               `json:"id"`
	Title        string               `json:"title"`
	Content      string               `json:"content"`
	IsClosed     bool                 `json:"is_closed"`
	SkillWanted  *models.Skill        `json:"skill_wanted,omitempty"`
	Author       *AuthorSummary       `json:"author,omitempty"`
	Propositions []PropositionSummary `json:"propositions,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
}
