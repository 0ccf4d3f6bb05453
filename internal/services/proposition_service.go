package services

import (
	"skillswap_backend/internal/email"
	"skillswap_backend/internal/models"
	"skillswap_backend/internal/repositories"
	"skillswap_backend/internal/services/dto"
	"skillswap_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// PropositionService drives the exchange lifecycle from submission to the
// accept transition. Accepting is the only operation that mutates more than
// one row; that write is delegated whole to the repository transaction.
type PropositionService struct {
	propositionRepo repositories.PropositionRepository
	postRepo        repositories.PostRepository
	userRepo        repositories.UserRepository
	notifier        email.Notifier
}

func NewPropositionService(
	propositionRepo repositories.PropositionRepository,
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	notifier email.Notifier,
) *PropositionService {
	return &PropositionService{
		propositionRepo: propositionRepo,
		postRepo:        postRepo,
		userRepo:        userRepo,
		notifier:        notifier,
	}
}

// SubmitProposition creates a pending proposition against an open post.
// The receiver is resolved from the post owner at creation time.
func (s *PropositionService) SubmitProposition(db *gorm.DB, postID, senderID string, req *dto.CreatePropositionRequest) (*models.Proposition, error) {
	sender, err := s.userRepo.FindByID(db, senderID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if sender.IsBanned {
		return nil, apperrors.ErrUserBanned
	}

	post, err := s.postRepo.FindByID(db, postID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPostNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if post.UserID == senderID {
		return nil, apperrors.ErrSelfProposition
	}
	if post.IsClosed {
		return nil, apperrors.ErrPostClosed
	}

	proposition := &models.Proposition{
		PostID:     post.ID,
		SenderID:   senderID,
		ReceiverID: post.UserID,
		Content:    req.Content,
		State:      models.PropositionStatePending,
	}
	if err := s.propositionRepo.CreatePending(db, proposition); err != nil {
		switch {
		case apperrors.Is(err, repositories.ErrDuplicatePending):
			return nil, apperrors.ErrDuplicateProposition
		case apperrors.Is(err, repositories.ErrPostAlreadyClosed):
			return nil, apperrors.ErrPostClosedConcurrently
		case apperrors.Is(err, repositories.ErrPostNotFound):
			return nil, apperrors.ErrPostNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if owner, err := s.userRepo.FindByID(db, post.UserID); err == nil {
		go s.notifier.PropositionReceived(owner.Email, post.Title, sender.Username)
	}

	return proposition, nil
}

// AcceptProposition validates the caller and the target state, then runs the
// atomic accept. Authorization comes before state checks so an outsider can
// never learn whether a proposition was already decided.
func (s *PropositionService) AcceptProposition(db *gorm.DB, propositionID, requesterID string) (*models.Proposition, error) {
	proposition, err := s.propositionRepo.FindByIDWithPost(db, propositionID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPropositionNotFound) {
			return nil, apperrors.ErrPropositionNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if proposition.Post == nil {
		return nil, apperrors.ErrPostNotFound
	}

	if requesterID != proposition.Post.UserID {
		return nil, apperrors.ErrNotPostOwner
	}
	if requesterID != proposition.ReceiverID {
		return nil, apperrors.ErrReceiverMismatch
	}
	if requesterID == proposition.SenderID {
		return nil, apperrors.ErrSelfAcceptNotAllowed
	}

	switch proposition.State {
	case models.PropositionStateAccepted:
		return nil, apperrors.ErrPropositionAccepted
	case models.PropositionStateRejected:
		return nil, apperrors.ErrPropositionRejected
	}
	if proposition.Post.IsClosed {
		return nil, apperrors.ErrPostClosed
	}

	if err := s.propositionRepo.Accept(db, proposition.ID, proposition.PostID); err != nil {
		switch {
		case apperrors.Is(err, repositories.ErrAlreadyAccepted):
			return nil, apperrors.ErrPropositionAccepted
		case apperrors.Is(err, repositories.ErrAlreadyRejected):
			return nil, apperrors.ErrPropositionRejected
		case apperrors.Is(err, repositories.ErrPostAlreadyClosed):
			return nil, apperrors.ErrPostClosedConcurrently
		case apperrors.Is(err, repositories.ErrPropositionNotFound):
			return nil, apperrors.ErrPropositionNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	proposition.State = models.PropositionStateAccepted
	proposition.Post.IsClosed = true

	if sender, err := s.userRepo.FindByID(db, proposition.SenderID); err == nil {
		go s.notifier.PropositionAccepted(sender.Email, proposition.Post.Title)
	}

	return proposition, nil
}

// MarkFinished records one party's side of the exchange as done. The flags
// are informational; nothing downstream gates on them.
func (s *PropositionService) MarkFinished(db *gorm.DB, propositionID, requesterID string) (*models.Proposition, error) {
	proposition, err := s.propositionRepo.FindByID(db, propositionID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPropositionNotFound) {
			return nil, apperrors.ErrPropositionNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if requesterID != proposition.SenderID && requesterID != proposition.ReceiverID {
		return nil, apperrors.ErrNotPropositionParty
	}
	if proposition.State != models.PropositionStateAccepted {
		return nil, apperrors.ErrPropositionNotAccepted
	}

	bySender := requesterID == proposition.SenderID
	if err := s.propositionRepo.SetFinished(db, proposition.ID, bySender); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if bySender {
		proposition.IsFinishedBySender = true
	} else {
		proposition.IsFinishedByReceiver = true
	}
	return proposition, nil
}

// GetSentPropositions lists the caller's propositions, newest first.
func (s *PropositionService) GetSentPropositions(db *gorm.DB, senderID string) ([]dto.PropositionSummary, error) {
	propositions, err := s.propositionRepo.ListBySender(db, senderID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	summaries := make([]dto.PropositionSummary, 0, len(propositions))
	for _, proposition := range propositions {
		summaries = append(summaries, dto.PropositionSummary{
			ID:                   proposition.ID,
			PostID:               proposition.PostID,
			Content:              proposition.Content,
			State:                proposition.State,
			IsFinishedBySender:   proposition.IsFinishedBySender,
			IsFinishedByReceiver: proposition.IsFinishedByReceiver,
			Receiver:             proposition.Receiver,
			Post:                 proposition.Post,
			CreatedAt:            proposition.CreatedAt,
		})
	}
	return summaries, nil
}

// GetPostPropositions lists the propositions on a post, owner only.
func (s *PropositionService) GetPostPropositions(db *gorm.DB, postID, requesterID string) ([]models.Proposition, error) {
	post, err := s.postRepo.FindByID(db, postID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPostNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if post.UserID != requesterID {
		return nil, apperrors.ErrNotPostOwner
	}

	propositions, err := s.propositionRepo.ListByPost(db, post.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return propositions, nil
}
