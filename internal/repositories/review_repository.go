package repositories

import (
	"errors"

	"skillswap_backend/internal/models"

	"gorm.io/gorm"
)

var ErrReviewNotFound = errors.New("review not found")

type ReviewRepository interface {
	Create(db *gorm.DB, review *models.Review) error
	FindByID(db *gorm.DB, id string) (*models.Review, error)
	Update(db *gorm.DB, review *models.Review) error
	ExistsByAuthorAndProposition(db *gorm.DB, authorID, propositionID string) (bool, error)
	ExistsByAuthorAndSubject(db *gorm.DB, authorID, subjectID string) (bool, error)
	ListBySubject(db *gorm.DB, subjectID string) ([]models.Review, error)
	ListLatest(db *gorm.DB, limit int) ([]models.Review, error)
	GetRatingStats(db *gorm.DB, subjectID string) (*models.RatingStats, error)
	RatingStatsForUsers(db *gorm.DB, subjectIDs []string) (map[string]models.RatingStats, error)
}

type reviewRepository struct{}

func NewReviewRepository() ReviewRepository {
	return &reviewRepository{}
}

func (r *reviewRepository) Create(db *gorm.DB, review *models.Review) error {
	return db.Create(review).Error
}

func (r *reviewRepository) FindByID(db *gorm.DB, id string) (*models.Review, error) {
	var review models.Review
	if err := db.First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Update(db *gorm.DB, review *models.Review) error {
	return db.Model(review).
		Select("grade", "title", "content").
		Updates(review).Error
}

func (r *reviewRepository) ExistsByAuthorAndProposition(db *gorm.DB, authorID, propositionID string) (bool, error) {
	var count int64
	err := db.Model(&models.Review{}).
		Where("user_id = ? AND proposition_id = ?", authorID, propositionID).
		Count(&count).Error
	return count > 0, err
}

func (r *reviewRepository) ExistsByAuthorAndSubject(db *gorm.DB, authorID, subjectID string) (bool, error) {
	var count int64
	err := db.Model(&models.Review{}).
		Where("user_id = ? AND reviewed_id = ?", authorID, subjectID).
		Count(&count).Error
	return count > 0, err
}

func (r *reviewRepository) ListBySubject(db *gorm.DB, subjectID string) ([]models.Review, error) {
	var reviews []models.Review
	err := db.Preload("Reviewer").
		Preload("Proposition").
		Preload("Proposition.Post").
		Where("reviewed_id = ?", subjectID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// ListLatest returns the most recent reviews with content, skipping reviews
// written by banned users.
func (r *reviewRepository) ListLatest(db *gorm.DB, limit int) ([]models.Review, error) {
	var reviews []models.Review
	err := db.Preload("Reviewer").
		Joins("JOIN users ON users.id = reviews.user_id AND users.is_banned = ?", false).
		Where("reviews.content <> ''").
		Order("reviews.created_at DESC").
		Limit(limit).
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) GetRatingStats(db *gorm.DB, subjectID string) (*models.RatingStats, error) {
	var stats models.RatingStats
	err := db.Model(&models.Review{}).
		Select("COALESCE(AVG(grade), 0) AS average_grade, COUNT(grade) AS nb_of_reviews").
		Where("reviewed_id = ?", subjectID).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// RatingStatsForUsers aggregates grades for a set of subjects in one query.
func (r *reviewRepository) RatingStatsForUsers(db *gorm.DB, subjectIDs []string) (map[string]models.RatingStats, error) {
	stats := make(map[string]models.RatingStats, len(subjectIDs))
	if len(subjectIDs) == 0 {
		return stats, nil
	}

	var rows []struct {
		ReviewedID   string
		AverageGrade float64
		NbOfReviews  int64
	}
	err := db.Model(&models.Review{}).
		Select("reviewed_id, AVG(grade) AS average_grade, COUNT(grade) AS nb_of_reviews").
		Where("reviewed_id IN ?", subjectIDs).
		Group("reviewed_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		stats[row.ReviewedID] = models.RatingStats{
			AverageGrade: row.AverageGrade,
			NbOfReviews:  row.NbOfReviews,
		}
	}
	return stats, nil
}
