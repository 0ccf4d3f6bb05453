package services

import (
	"testing"

	"skillswap_backend/internal/services/dto"
	"skillswap_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// concludedExchange seeds a closed post with an accepted proposition, the
// state both parties are in once an accept has gone through.
func concludedExchange(env *testEnv) (ownerID, senderID, postID, propositionID string) {
	owner := env.store.addUser("alice", false)
	sender := env.store.addUser("bob", false)
	skill := env.store.addSkill("Guitar")
	post := env.store.addPost(owner.ID, skill.ID, true)
	proposition := env.store.addProposition(post.ID, sender.ID, owner.ID, "accepted")
	return owner.ID, sender.ID, post.ID, proposition.ID
}

func TestReviewService_CreateReview(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	ownerID, senderID, postID, propositionID := concludedExchange(env)

	// The post owner reviews the accepted sender.
	review, err := env.reviews.CreateReview(nil, ownerID, &dto.CreateReviewRequest{
		PostID:        postID,
		PropositionID: propositionID,
		Grade:         5,
		Title:         "Great exchange",
		Comment:       "Patient and well prepared.",
	})
	require.NoError(t, err)
	assert.Equal(t, ownerID, review.UserID)
	assert.Equal(t, senderID, review.ReviewedID)
}

func TestReviewService_CreateReview_PostNotClosed(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	owner := env.store.addUser("alice", false)
	sender := env.store.addUser("bob", false)
	skill := env.store.addSkill("Guitar")
	post := env.store.addPost(owner.ID, skill.ID, false)
	proposition := env.store.addProposition(post.ID, sender.ID, owner.ID, "pending")

	_, err := env.reviews.CreateReview(nil, owner.ID, &dto.CreateReviewRequest{
		PostID:        post.ID,
		PropositionID: proposition.ID,
		Grade:         5,
		Title:         "Too early",
		Comment:       "Nothing happened yet.",
	})

	assert.ErrorIs(t, err, apperrors.ErrPostNotClosed)
}

func TestReviewService_CreateReview_PropositionNotAccepted(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	owner := env.store.addUser("alice", false)
	sender := env.store.addUser("bob", false)
	skill := env.store.addSkill("Guitar")
	post := env.store.addPost(owner.ID, skill.ID, true)
	// Rejected sibling on a closed post.
	proposition := env.store.addProposition(post.ID, sender.ID, owner.ID, "rejected")

	_, err := env.reviews.CreateReview(nil, owner.ID, &dto.CreateReviewRequest{
		PostID:        post.ID,
		PropositionID: proposition.ID,
		Grade:         5,
		Title:         "Wrong target",
		Comment:       "This one lost.",
	})

	assert.ErrorIs(t, err, apperrors.ErrReviewNotAccepted)
}

func TestReviewService_CreateReview_NotPostOwner(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	_, senderID, postID, propositionID := concludedExchange(env)
	outsider := env.store.addUser("mallory", false)

	// Neither an outsider nor the sender can author the review.
	for _, authorID := range []string{outsider.ID, senderID} {
		_, err := env.reviews.CreateReview(nil, authorID, &dto.CreateReviewRequest{
			PostID:        postID,
			PropositionID: propositionID,
			Grade:         1,
			Title:         "Drive-by",
			Comment:       "Not my call.",
		})
		assert.ErrorIs(t, err, apperrors.ErrNotPostOwner)
	}
}

func TestReviewService_CreateReview_DuplicateExchange(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	ownerID, _, postID, propositionID := concludedExchange(env)

	req := &dto.CreateReviewRequest{
		PostID:        postID,
		PropositionID: propositionID,
		Grade:         5,
		Title:         "Great exchange",
		Comment:       "Patient and well prepared.",
	}
	_, err := env.reviews.CreateReview(nil, ownerID, req)
	require.NoError(t, err)

	_, err = env.reviews.CreateReview(nil, ownerID, req)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyReviewedExchange)
}

func TestReviewService_CreateReview_DuplicatePerson(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	ownerID, senderID, postID, propositionID := concludedExchange(env)

	// A second concluded exchange between the same two people.
	skill := env.store.addSkill("Piano")
	secondPost := env.store.addPost(ownerID, skill.ID, true)
	secondProposition := env.store.addProposition(secondPost.ID, senderID, ownerID, "accepted")

	_, err := env.reviews.CreateReview(nil, ownerID, &dto.CreateReviewRequest{
		PostID:        postID,
		PropositionID: propositionID,
		Grade:         5,
		Title:         "First review",
		Comment:       "Patient and well prepared.",
	})
	require.NoError(t, err)

	_, err = env.reviews.CreateReview(nil, ownerID, &dto.CreateReviewRequest{
		PostID:        secondPost.ID,
		PropositionID: secondProposition.ID,
		Grade:         5,
		Title:         "Second review",
		Comment:       "Still great.",
	})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyReviewedUser)
}

func TestReviewService_UpdateReview_AuthorOnly(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	ownerID, _, postID, propositionID := concludedExchange(env)
	outsider := env.store.addUser("mallory", false)

	review, err := env.reviews.CreateReview(nil, ownerID, &dto.CreateReviewRequest{
		PostID:        postID,
		PropositionID: propositionID,
		Grade:         3,
		Title:         "Decent",
		Comment:       "Could be better.",
	})
	require.NoError(t, err)

	grade := 5
	_, err = env.reviews.UpdateReview(nil, review.ID, outsider.ID, &dto.UpdateReviewRequest{Grade: &grade})
	assert.ErrorIs(t, err, apperrors.ErrNotReviewAuthor)

	updated, err := env.reviews.UpdateReview(nil, review.ID, ownerID, &dto.UpdateReviewRequest{Grade: &grade})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Grade)
}

func TestReviewService_GetUserReviews_Stats(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	ownerID, senderID, postID, propositionID := concludedExchange(env)

	_, err := env.reviews.CreateReview(nil, ownerID, &dto.CreateReviewRequest{
		PostID:        postID,
		PropositionID: propositionID,
		Grade:         4,
		Title:         "Good",
		Comment:       "Solid exchange.",
	})
	require.NoError(t, err)

	reviews, stats, err := env.reviews.GetUserReviews(nil, senderID)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)
	assert.Equal(t, 4.0, stats.AverageGrade)
	assert.Equal(t, int64(1), stats.NbOfReviews)

	// The reviewer received nothing.
	reviews, stats, err = env.reviews.GetUserReviews(nil, ownerID)
	require.NoError(t, err)
	assert.Empty(t, reviews)
	assert.Zero(t, stats.AverageGrade)
	assert.Zero(t, stats.NbOfReviews)
}

func TestReviewService_GetLatestReviews_SkipsBannedAuthors(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	ownerID, _, postID, propositionID := concludedExchange(env)

	_, err := env.reviews.CreateReview(nil, ownerID, &dto.CreateReviewRequest{
		PostID:        postID,
		PropositionID: propositionID,
		Grade:         5,
		Title:         "Great exchange",
		Comment:       "Patient and well prepared.",
	})
	require.NoError(t, err)

	// The author gets banned afterwards; the review drops out of the feed.
	env.store.users[ownerID].IsBanned = true

	reviews, err := env.reviews.GetLatestReviews(nil, 6)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}
