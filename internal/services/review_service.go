package services

import (
	"skillswap_backend/internal/email"
	"skillswap_backend/internal/models"
	"skillswap_backend/internal/repositories"
	"skillswap_backend/internal/services/dto"
	"skillswap_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// ReviewService guards review creation behind the concluded-exchange gate:
// a review may only target the counterpart of an accepted proposition on a
// closed post, exactly once per exchange and once per person.
type ReviewService struct {
	reviewRepo      repositories.ReviewRepository
	propositionRepo repositories.PropositionRepository
	postRepo        repositories.PostRepository
	userRepo        repositories.UserRepository
	notifier        email.Notifier
}

func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	propositionRepo repositories.PropositionRepository,
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	notifier email.Notifier,
) *ReviewService {
	return &ReviewService{
		reviewRepo:      reviewRepo,
		propositionRepo: propositionRepo,
		postRepo:        postRepo,
		userRepo:        userRepo,
		notifier:        notifier,
	}
}

// CreateReview writes the post owner's review of the accepted sender. The
// finish flags on the proposition are not consulted here; the gate is the
// accepted state and the closed post.
func (s *ReviewService) CreateReview(db *gorm.DB, authorID string, req *dto.CreateReviewRequest) (*models.Review, error) {
	author, err := s.userRepo.FindByID(db, authorID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if author.IsBanned {
		return nil, apperrors.ErrUserBanned
	}

	post, err := s.postRepo.FindByID(db, req.PostID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPostNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if !post.IsClosed {
		return nil, apperrors.ErrPostNotClosed
	}

	proposition, err := s.propositionRepo.FindByIDAndPost(db, req.PropositionID, post.ID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPropositionNotFound) {
			return nil, apperrors.ErrPropositionNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if proposition.State != models.PropositionStateAccepted {
		return nil, apperrors.ErrReviewNotAccepted
	}

	if authorID != post.UserID {
		return nil, apperrors.ErrNotPostOwner
	}

	subjectID := proposition.SenderID

	reviewed, err := s.reviewRepo.ExistsByAuthorAndProposition(db, authorID, proposition.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if reviewed {
		return nil, apperrors.ErrAlreadyReviewedExchange
	}

	reviewed, err = s.reviewRepo.ExistsByAuthorAndSubject(db, authorID, subjectID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if reviewed {
		return nil, apperrors.ErrAlreadyReviewedUser
	}

	review := &models.Review{
		PropositionID: &proposition.ID,
		UserID:        authorID,
		ReviewedID:    subjectID,
		Grade:         req.Grade,
		Title:         req.Title,
		Content:       req.Comment,
	}
	if err := s.reviewRepo.Create(db, review); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if subject, err := s.userRepo.FindByID(db, subjectID); err == nil {
		go s.notifier.ReviewReceived(subject.Email, review.Title)
	}

	return review, nil
}

// UpdateReview lets the author amend grade, title or content.
func (s *ReviewService) UpdateReview(db *gorm.DB, reviewID, requesterID string, req *dto.UpdateReviewRequest) (*models.Review, error) {
	review, err := s.reviewRepo.FindByID(db, reviewID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrReviewNotFound) {
			return nil, apperrors.ErrReviewNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if review.UserID != requesterID {
		return nil, apperrors.ErrNotReviewAuthor
	}

	if req.Grade != nil {
		review.Grade = *req.Grade
	}
	if req.Content != nil {
		review.Content = *req.Content
	}

	if err := s.reviewRepo.Update(db, review); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return review, nil
}

// GetUserReviews returns the reviews received by a user plus their rating
// aggregates.
func (s *ReviewService) GetUserReviews(db *gorm.DB, userID string) ([]models.Review, *models.RatingStats, error) {
	if _, err := s.userRepo.FindByID(db, userID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, nil, apperrors.ErrUserNotFound
		}
		return nil, nil, apperrors.InternalError(err)
	}

	reviews, err := s.reviewRepo.ListBySubject(db, userID)
	if err != nil {
		return nil, nil, apperrors.InternalError(err)
	}

	stats, err := s.reviewRepo.GetRatingStats(db, userID)
	if err != nil {
		return nil, nil, apperrors.InternalError(err)
	}
	return reviews, stats, nil
}

// GetLatestReviews feeds the public landing widget.
func (s *ReviewService) GetLatestReviews(db *gorm.DB, limit int) ([]models.Review, error) {
	reviews, err := s.reviewRepo.ListLatest(db, limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return reviews, nil
}
