package services

import (
	"testing"

	"skillswap_backend/internal/services/dto"
	"skillswap_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_CreatePost(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	user := env.store.addUser("alice", false)
	skill := env.store.addSkill("Guitar")

	post, err := env.posts.CreatePost(nil, user.ID, &dto.CreatePostRequest{
		Title:   "Guitar lessons wanted",
		Content: "I teach French in return.",
		SkillID: skill.ID,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, post.ID)
	assert.Equal(t, user.ID, post.UserID)
	assert.Equal(t, skill.ID, post.SkillID)
	assert.False(t, post.IsClosed)
}

func TestPostService_CreatePost_UnknownSkill(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	user := env.store.addUser("alice", false)

	_, err := env.posts.CreatePost(nil, user.ID, &dto.CreatePostRequest{
		Title:   "Guitar lessons wanted",
		Content: "I teach French in return.",
		SkillID: "00000000-0000-0000-0000-000000000000",
	})

	assert.ErrorIs(t, err, apperrors.ErrSkillNotFound)
}

func TestPostService_CreatePost_QuotaExceeded(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	user := env.store.addUser("alice", false)
	for i := 0; i < 10; i++ {
		skill := env.store.addSkill("Skill")
		env.store.addPost(user.ID, skill.ID, false)
	}
	extra := env.store.addSkill("One too many")

	_, err := env.posts.CreatePost(nil, user.ID, &dto.CreatePostRequest{
		Title:   "Eleventh post",
		Content: "Should be rejected.",
		SkillID: extra.ID,
	})

	assert.ErrorIs(t, err, apperrors.ErrPostQuotaExceeded)
}

func TestPostService_CreatePost_DuplicateSkill(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	user := env.store.addUser("alice", false)
	skill := env.store.addSkill("Guitar")
	env.store.addPost(user.ID, skill.ID, false)

	_, err := env.posts.CreatePost(nil, user.ID, &dto.CreatePostRequest{
		Title:   "Second guitar post",
		Content: "Same skill again.",
		SkillID: skill.ID,
	})

	assert.ErrorIs(t, err, apperrors.ErrDuplicateSkill)
}

func TestPostService_CreatePost_BannedUser(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	user := env.store.addUser("troll", true)
	skill := env.store.addSkill("Guitar")

	_, err := env.posts.CreatePost(nil, user.ID, &dto.CreatePostRequest{
		Title:   "Guitar lessons wanted",
		Content: "I teach French in return.",
		SkillID: skill.ID,
	})

	assert.ErrorIs(t, err, apperrors.ErrUserBanned)
}

func TestPostService_DeletePost_NotOwner(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	owner := env.store.addUser("alice", false)
	other := env.store.addUser("bob", false)
	skill := env.store.addSkill("Guitar")
	post := env.store.addPost(owner.ID, skill.ID, false)

	err := env.posts.DeletePost(nil, post.ID, other.ID)

	assert.ErrorIs(t, err, apperrors.ErrNotPostOwner)
}

func TestPostService_DeletePost_CascadesPropositions(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	owner := env.store.addUser("alice", false)
	sender := env.store.addUser("bob", false)
	skill := env.store.addSkill("Guitar")
	post := env.store.addPost(owner.ID, skill.ID, false)
	proposition := env.store.addProposition(post.ID, sender.ID, owner.ID, "pending")

	require.NoError(t, env.posts.DeletePost(nil, post.ID, owner.ID))

	_, err := env.propositions.MarkFinished(nil, proposition.ID, sender.ID)
	assert.ErrorIs(t, err, apperrors.ErrPropositionNotFound)
}

func TestPostService_DeletePost_AfterReview(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	ownerID, senderID, postID, propositionID := concludedExchange(env)

	review, err := env.reviews.CreateReview(nil, ownerID, &dto.CreateReviewRequest{
		PostID:        postID,
		PropositionID: propositionID,
		Grade:         5,
		Title:         "Great exchange",
		Comment:       "Patient and well prepared.",
	})
	require.NoError(t, err)

	require.NoError(t, env.posts.DeletePost(nil, postID, ownerID))

	// The proposition is gone, the review survives detached and the
	// sender keeps their rating.
	_, err = env.propositions.MarkFinished(nil, propositionID, senderID)
	assert.ErrorIs(t, err, apperrors.ErrPropositionNotFound)

	env.store.mu.Lock()
	stored := env.store.reviews[review.ID]
	env.store.mu.Unlock()
	require.NotNil(t, stored)
	assert.Nil(t, stored.PropositionID)

	_, stats, err := env.reviews.GetUserReviews(nil, senderID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.NbOfReviews)
	assert.Equal(t, 5.0, stats.AverageGrade)
}

func TestPostService_GetPosts_IncludesAuthorRating(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	alice := env.store.addUser("alice", false)
	carol := env.store.addUser("carol", false)
	skill := env.store.addSkill("Guitar")
	open := env.store.addPost(alice.ID, skill.ID, false)

	// Alice earned a review as the accepted sender on Carol's concluded post.
	closedSkill := env.store.addSkill("Piano")
	closedPost := env.store.addPost(carol.ID, closedSkill.ID, true)
	accepted := env.store.addProposition(closedPost.ID, alice.ID, carol.ID, "accepted")
	_, err := env.reviews.CreateReview(nil, carol.ID, &dto.CreateReviewRequest{
		PostID:        closedPost.ID,
		PropositionID: accepted.ID,
		Grade:         4,
		Title:         "Great teacher",
		Comment:       "Learned a lot.",
	})
	require.NoError(t, err)

	posts, err := env.posts.GetPosts(nil)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	for _, post := range posts {
		require.NotNil(t, post.Author)
		if post.ID == open.ID {
			assert.Equal(t, 4.0, post.Author.AverageGrade)
			assert.Equal(t, int64(1), post.Author.NbOfReviews)
		} else {
			assert.Zero(t, post.Author.NbOfReviews)
		}
	}
}
