package models

// Review is the post owner's evaluation of the accepted counterpart.
// One review per (author, proposition) and one per (author, subject).
//
// PropositionID is nullable: deleting a post detaches the reviews of its
// propositions instead of destroying the subject's rating history.
type Review struct {
	BaseModel
	PropositionID *string `gorm:"type:uuid;index;uniqueIndex:idx_reviews_author_proposition" json:"proposition_id"`
	UserID        string  `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_author_proposition;uniqueIndex:idx_reviews_author_subject" json:"user_id"`
	ReviewedID    string  `gorm:"type:uuid;not null;index;uniqueIndex:idx_reviews_author_subject" json:"reviewed_id"`
	Grade         int     `gorm:"not null;check:grade >= 1 AND grade <= 5" json:"grade"`
	Title         string  `gorm:"not null" json:"title"`
	Content       string  `gorm:"type:text" json:"content"`

	Proposition *Proposition `gorm:"foreignKey:PropositionID;constraint:OnDelete:SET NULL" json:"proposition,omitempty"`
	Reviewer    *User        `gorm:"foreignKey:UserID" json:"reviewer,omitempty"`
	Reviewed    *User        `gorm:"foreignKey:ReviewedID" json:"reviewed,omitempty"`
}

// RatingStats is the aggregate read over reviews grouped by subject.
type RatingStats struct {
	AverageGrade float64 `json:"average_grade"`
	NbOfReviews  int64   `json:"nb_of_reviews"`
}
