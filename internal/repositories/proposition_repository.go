package repositories

import (
	"errors"

	"skillswap_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrPropositionNotFound = errors.New("proposition not found")
	ErrAlreadyAccepted     = errors.New("proposition already accepted")
	ErrAlreadyRejected     = errors.New("proposition already rejected")
	ErrPostAlreadyClosed   = errors.New("post already closed")
	ErrDuplicatePending    = errors.New("pending proposition already exists")
)

type PropositionRepository interface {
	CreatePending(db *gorm.DB, proposition *models.Proposition) error
	FindByID(db *gorm.DB, id string) (*models.Proposition, error)
	FindByIDWithPost(db *gorm.DB, id string) (*models.Proposition, error)
	FindByIDAndPost(db *gorm.DB, id, postID string) (*models.Proposition, error)
	ListByPost(db *gorm.DB, postID string) ([]models.Proposition, error)
	ListBySender(db *gorm.DB, senderID string) ([]models.Proposition, error)
	Accept(db *gorm.DB, propositionID, postID string) error
	SetFinished(db *gorm.DB, id string, bySender bool) error
}

type propositionRepository struct{}

func NewPropositionRepository() PropositionRepository {
	return &propositionRepository{}
}

// CreatePending inserts a pending proposition after re-checking the
// one-standing-offer rule under a lock on the post row. The lock is what
// makes the check race-free on every dialect; the partial unique index set
// up at migration backs it up where the dialect supports one.
func (r *propositionRepository) CreatePending(db *gorm.DB, proposition *models.Proposition) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&post, "id = ?", proposition.PostID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound
			}
			return err
		}
		if post.IsClosed {
			return ErrPostAlreadyClosed
		}

		var count int64
		err = tx.Model(&models.Proposition{}).
			Where("post_id = ? AND sender_id = ? AND state = ?",
				proposition.PostID, proposition.SenderID, models.PropositionStatePending).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicatePending
		}

		return tx.Create(proposition).Error
	})
}

func (r *propositionRepository) FindByID(db *gorm.DB, id string) (*models.Proposition, error) {
	var proposition models.Proposition
	if err := db.First(&proposition, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropositionNotFound
		}
		return nil, err
	}
	return &proposition, nil
}

func (r *propositionRepository) FindByIDWithPost(db *gorm.DB, id string) (*models.Proposition, error) {
	var proposition models.Proposition
	if err := db.Preload("Post").First(&proposition, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropositionNotFound
		}
		return nil, err
	}
	return &proposition, nil
}

func (r *propositionRepository) FindByIDAndPost(db *gorm.DB, id, postID string) (*models.Proposition, error) {
	var proposition models.Proposition
	err := db.First(&proposition, "id = ? AND post_id = ?", id, postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropositionNotFound
		}
		return nil, err
	}
	return &proposition, nil
}

func (r *propositionRepository) ListByPost(db *gorm.DB, postID string) ([]models.Proposition, error) {
	var propositions []models.Proposition
	err := db.Preload("Sender").
		Where("post_id = ?", postID).
		Order("created_at").
		Find(&propositions).Error
	return propositions, err
}

func (r *propositionRepository) ListBySender(db *gorm.DB, senderID string) ([]models.Proposition, error) {
	var propositions []models.Proposition
	err := db.Preload("Receiver").
		Preload("Post").
		Preload("Post.SkillWanted").
		Where("sender_id = ?", senderID).
		Order("created_at DESC").
		Find(&propositions).Error
	return propositions, err
}

// Accept performs the three-way transition as a single transaction:
// accept this proposition, reject its pending siblings, close the post.
// Every write is guarded by a compare-and-swap condition so that of two
// concurrent accepts exactly one commits; the loser gets a typed error
// and the transaction rolls back, leaving no partial state.
func (r *propositionRepository) Accept(db *gorm.DB, propositionID, postID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Proposition{}).
			Where("id = ? AND state = ?", propositionID, models.PropositionStatePending).
			Update("state", models.PropositionStateAccepted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Lost the race or the state moved on; report which.
			var current models.Proposition
			if err := tx.First(&current, "id = ?", propositionID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrPropositionNotFound
				}
				return err
			}
			if current.State == models.PropositionStateAccepted {
				return ErrAlreadyAccepted
			}
			return ErrAlreadyRejected
		}

		res = tx.Model(&models.Post{}).
			Where("id = ? AND is_closed = ?", postID, false).
			Update("is_closed", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// A sibling accept closed the post between our read and this
			// write. Roll back the state change above.
			return ErrPostAlreadyClosed
		}

		return tx.Model(&models.Proposition{}).
			Where("post_id = ? AND id <> ? AND state = ?", postID, propositionID, models.PropositionStatePending).
			Update("state", models.PropositionStateRejected).Error
	})
}

func (r *propositionRepository) SetFinished(db *gorm.DB, id string, bySender bool) error {
	column := "is_finished_by_receiver"
	if bySender {
		column = "is_finished_by_sender"
	}
	return db.Model(&models.Proposition{}).
		Where("id = ?", id).
		Update(column, true).Error
}
