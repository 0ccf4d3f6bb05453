package repositories

import (
	"errors"

	"skillswap_backend/internal/models"

	"gorm.io/gorm"
)

var ErrPostNotFound = errors.New("post not found")

type PostRepository interface {
	Create(db *gorm.DB, post *models.Post) error
	FindByID(db *gorm.DB, id string) (*models.Post, error)
	CountByUser(db *gorm.DB, userID string) (int64, error)
	ExistsByUserAndSkill(db *gorm.DB, userID, skillID string) (bool, error)
	ListAll(db *gorm.DB) ([]models.Post, error)
	ListByUser(db *gorm.DB, userID string) ([]models.Post, error)
	ListByUserWithPropositions(db *gorm.DB, userID string) ([]models.Post, error)
	DeleteCascade(db *gorm.DB, postID string) error
}

type postRepository struct{}

func NewPostRepository() PostRepository {
	return &postRepository{}
}

func (r *postRepository) Create(db *gorm.DB, post *models.Post) error {
	return db.Create(post).Error
}

func (r *postRepository) FindByID(db *gorm.DB, id string) (*models.Post, error) {
	var post models.Post
	if err := db.First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) CountByUser(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Post{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *postRepository) ExistsByUserAndSkill(db *gorm.DB, userID, skillID string) (bool, error) {
	var count int64
	err := db.Model(&models.Post{}).
		Where("user_id = ? AND skill_id = ?", userID, skillID).
		Count(&count).Error
	return count > 0, err
}

func (r *postRepository) ListAll(db *gorm.DB) ([]models.Post, error) {
	var posts []models.Post
	err := db.Preload("Author").Preload("SkillWanted").
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListByUser(db *gorm.DB, userID string) ([]models.Post, error) {
	var posts []models.Post
	err := db.Preload("SkillWanted").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListByUserWithPropositions(db *gorm.DB, userID string) ([]models.Post, error) {
	var posts []models.Post
	err := db.Preload("SkillWanted").
		Preload("Propositions").
		Preload("Propositions.Sender").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

// DeleteCascade removes the post and its propositions in one transaction.
// Reviews referencing those propositions are detached first, so a concluded
// exchange can be deleted without losing the subject's rating history.
func (r *postRepository) DeleteCascade(db *gorm.DB, postID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		propositionIDs := tx.Model(&models.Proposition{}).
			Select("id").
			Where("post_id = ?", postID)
		err := tx.Model(&models.Review{}).
			Where("proposition_id IN (?)", propositionIDs).
			Update("proposition_id", nil).Error
		if err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Proposition{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, "id = ?", postID).Error
	})
}
