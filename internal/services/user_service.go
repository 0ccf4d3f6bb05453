package services

import (
	"encoding/json"

	"skillswap_backend/internal/models"
	"skillswap_backend/internal/repositories"
	"skillswap_backend/internal/services/dto"
	"skillswap_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserService serves public profiles and the owner-editable parts of the
// account, currently the weekly availability slots.
type UserService struct {
	userRepo   repositories.UserRepository
	reviewRepo repositories.ReviewRepository
}

func NewUserService(userRepo repositories.UserRepository, reviewRepo repositories.ReviewRepository) *UserService {
	return &UserService{
		userRepo:   userRepo,
		reviewRepo: reviewRepo,
	}
}

// GetProfile returns a user together with their rating aggregates.
func (s *UserService) GetProfile(db *gorm.DB, userID string) (*models.User, *models.RatingStats, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, nil, apperrors.ErrUserNotFound
		}
		return nil, nil, apperrors.InternalError(err)
	}

	stats, err := s.reviewRepo.GetRatingStats(db, userID)
	if err != nil {
		return nil, nil, apperrors.InternalError(err)
	}
	return user, stats, nil
}

// UpdateAvailability replaces the caller's weekly slots. The slots are
// validated at binding time and stored as a JSON document on the user row.
func (s *UserService) UpdateAvailability(db *gorm.DB, userID string, req *dto.UpdateAvailabilityRequest) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if user.IsBanned {
		return nil, apperrors.ErrUserBanned
	}

	raw, err := json.Marshal(req.Availability)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	availability := datatypes.JSON(raw)

	if err := s.userRepo.UpdateAvailability(db, user.ID, availability); err != nil {
		return nil, apperrors.InternalError(err)
	}

	user.Availability = availability
	return user, nil
}
