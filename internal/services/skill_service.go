package services

import (
	"skillswap_backend/internal/models"
	"skillswap_backend/internal/repositories"
	"skillswap_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// SkillService is the read-only catalog gateway; the core only ever asks
// whether a skill exists.
type SkillService struct {
	skillRepo repositories.SkillRepository
}

func NewSkillService(skillRepo repositories.SkillRepository) *SkillService {
	return &SkillService{skillRepo: skillRepo}
}

func (s *SkillService) GetSkills(db *gorm.DB) ([]models.Skill, error) {
	skills, err := s.skillRepo.List(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return skills, nil
}
