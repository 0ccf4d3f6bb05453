package services

import (
	"skillswap_backend/internal/models"
	"skillswap_backend/internal/repositories"
	"skillswap_backend/internal/services/dto"
	"skillswap_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// PostService owns post creation and deletion. Closing a post is not a
// post-level operation: it happens exactly once, inside the proposition
// accept transaction.
type PostService struct {
	postRepo   repositories.PostRepository
	skillRepo  repositories.SkillRepository
	userRepo   repositories.UserRepository
	reviewRepo repositories.ReviewRepository
	maxPerUser int
}

func NewPostService(
	postRepo repositories.PostRepository,
	skillRepo repositories.SkillRepository,
	userRepo repositories.UserRepository,
	reviewRepo repositories.ReviewRepository,
	maxPerUser int,
) *PostService {
	return &PostService{
		postRepo:   postRepo,
		skillRepo:  skillRepo,
		userRepo:   userRepo,
		reviewRepo: reviewRepo,
		maxPerUser: maxPerUser,
	}
}

// CreatePost checks, in order: caller identity, skill existence, post quota,
// one-post-per-skill. The first violated precondition is reported and no
// state is written unless every check passes.
func (s *PostService) CreatePost(db *gorm.DB, userID string, req *dto.CreatePostRequest) (*models.Post, error) {
	user, err := s.requireActiveUser(db, userID)
	if err != nil {
		return nil, err
	}

	if _, err := s.skillRepo.FindByID(db, req.SkillID); err != nil {
		if apperrors.Is(err, repositories.ErrSkillNotFound) {
			return nil, apperrors.ErrSkillNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	count, err := s.postRepo.CountByUser(db, user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if count >= int64(s.maxPerUser) {
		return nil, apperrors.ErrPostQuotaExceeded
	}

	exists, err := s.postRepo.ExistsByUserAndSkill(db, user.ID, req.SkillID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, apperrors.ErrDuplicateSkill
	}

	post := &models.Post{
		UserID:   user.ID,
		SkillID:  req.SkillID,
		Title:    req.Title,
		Content:  req.Content,
		IsClosed: false,
	}
	if err := s.postRepo.Create(db, post); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return post, nil
}

// DeletePost removes an owned post and cascades its propositions.
func (s *PostService) DeletePost(db *gorm.DB, postID, requesterID string) error {
	post, err := s.postRepo.FindByID(db, postID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPostNotFound) {
			return apperrors.ErrPostNotFound
		}
		return apperrors.InternalError(err)
	}

	if post.UserID != requesterID {
		return apperrors.ErrNotPostOwner
	}

	if err := s.postRepo.DeleteCascade(db, post.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// GetPosts returns the public listing with author review aggregates.
func (s *PostService) GetPosts(db *gorm.DB) ([]dto.PostResponse, error) {
	posts, err := s.postRepo.ListAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	authorIDs := make([]string, 0, len(posts))
	seen := make(map[string]bool)
	for _, post := range posts {
		if !seen[post.UserID] {
			seen[post.UserID] = true
			authorIDs = append(authorIDs, post.UserID)
		}
	}

	stats, err := s.reviewRepo.RatingStatsForUsers(db, authorIDs)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.PostResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, buildPostResponse(&post, stats, false))
	}
	return responses, nil
}

// GetUserPosts returns the posts of one user.
func (s *PostService) GetUserPosts(db *gorm.DB, userID string) ([]dto.PostResponse, error) {
	if _, err := s.userRepo.FindByID(db, userID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	posts, err := s.postRepo.ListByUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.PostResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, buildPostResponse(&post, nil, false))
	}
	return responses, nil
}

// GetMyPosts returns the caller's posts with their propositions.
func (s *PostService) GetMyPosts(db *gorm.DB, userID string) ([]dto.PostResponse, error) {
	posts, err := s.postRepo.ListByUserWithPropositions(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.PostResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, buildPostResponse(&post, nil, true))
	}
	return responses, nil
}

func (s *PostService) requireActiveUser(db *gorm.DB, userID string) (*models.User, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthorized
	}
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
	return user, nil
}

func buildPostResponse(post *models.Post, stats map[string]models.RatingStats, includePropositions bool) dto.PostResponse {
	response := dto.PostResponse{
		ID:          post.ID,
		Title:       post.Title,
		Content:     post.Content,
		IsClosed:    post.IsClosed,
		SkillWanted: post.SkillWanted,
		CreatedAt:   post.CreatedAt,
	}

	if post.Author != nil {
		author := &dto.AuthorSummary{
			ID:       post.Author.ID,
			Username: post.Author.Username,
			Avatar:   post.Author.Avatar,
		}
		if stats != nil {
			if st, ok := stats[post.Author.ID]; ok {
				author.AverageGrade = st.AverageGrade
				author.NbOfReviews = st.NbOfReviews
			}
		}
		response.Author = author
	}

	if includePropositions {
		summaries := make([]dto.PropositionSummary, 0, len(post.Propositions))
		for _, proposition := range post.Propositions {
			summaries = append(summaries, dto.PropositionSummary{
				ID:                   proposition.ID,
				PostID:               proposition.PostID,
				Content:              proposition.Content,
				State:                proposition.State,
				IsFinishedBySender:   proposition.IsFinishedBySender,
				IsFinishedByReceiver: proposition.IsFinishedByReceiver,
				Sender:               proposition.Sender,
				CreatedAt:            proposition.CreatedAt,
			})
		}
		response.Propositions = summaries
	}

	return response
}
