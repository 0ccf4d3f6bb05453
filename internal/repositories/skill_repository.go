package repositories

import (
	"errors"

	"skillswap_backend/internal/models"

	"gorm.io/gorm"
)

var ErrSkillNotFound = errors.New("skill not found")

type SkillRepository interface {
	FindByID(db *gorm.DB, id string) (*models.Skill, error)
	List(db *gorm.DB) ([]models.Skill, error)
}

type skillRepository struct{}

func NewSkillRepository() SkillRepository {
	return &skillRepository{}
}

func (r *skillRepository) FindByID(db *gorm.DB, id string) (*models.Skill, error) {
	var skill models.Skill
	if err := db.First(&skill, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSkillNotFound
		}
		return nil, err
	}
	return &skill, nil
}

func (r *skillRepository) List(db *gorm.DB) ([]models.Skill, error) {
	var skills []models.Skill
	err := db.Preload("Category").Order("name").Find(&skills).Error
	return skills, err
}
