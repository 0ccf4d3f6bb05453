package services

import (
	"sync"
	"testing"

	"skillswap_backend/internal/models"
	"skillswap_backend/internal/services/dto"
	"skillswap_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropositionService_Submit(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	owner := env.store.addUser("alice", false)
	sender := env.store.addUser("bob", false)
	skill := env.store.addSkill("Guitar")
	post := env.store.addPost(owner.ID, skill.ID, false)

	proposition, err := env.propositions.SubmitProposition(nil, post.ID, sender.ID, &dto.CreatePropositionRequest{
		Content: "I can teach you Spanish.",
	})

	require.NoError(t, err)
	assert.Equal(t, models.PropositionStatePending, proposition.State)
	assert.Equal(t, sender.ID, proposition.SenderID)
	assert.Equal(t, owner.ID, proposition.ReceiverID)
}

func TestPropositionService_Submit_OwnPost(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	owner := env.store.addUser("alice", false)
	skill := env.store.addSkill("Guitar")
	post := env.store.addPost(owner.ID, skill.ID, false)

	_, err := env.propositions.SubmitProposition(nil, post.ID, owner.ID, &dto.CreatePropositionRequest{
		Content: "Replying to myself.",
	})

	assert.ErrorIs(t, err, apperrors.ErrSelfProposition)
}

func TestPropositionService_Submit_ClosedPost(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	owner := env.store.addUser("alice", false)
	sender := env.store.addUser("bob", false)
	skill := env.store.addSkill("Guitar")
	post := env.store.addPost(owner.ID, skill.ID, true)

	_, err := env.propositions.SubmitProposition(nil, post.ID, sender.ID, &dto.CreatePropositionRequest{
		Content: "Too late.",
	})

	assert.ErrorIs(t, err, apperrors.ErrPostClosed)
}

func TestPropositionService_Submit_DuplicatePending(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	owner := env.store.addUser("alice", false)
	sender := env.store.addUser("bob", false)
	skill := env.store.addSkill("Guitar")
	post := env.store.addPost(owner.ID, skill.ID, false)
	env.store.addProposition(post.ID, sender.ID, owner.ID, "pending")

	_, err := env.propositions.SubmitProposition(nil, post.ID, sender.ID, &dto.CreatePropositionRequest{
		Content: "Second attempt.",
	})

	assert.ErrorIs(t, err, apperrors.ErrDuplicateProposition)
}

func TestPropositionService_Submit_ConcurrentDuplicate(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	owner := env.store.addUser("alice", false)
	sender := env.store.addUser("bob", false)
	skill := env.store.addSkill("Guitar")
	post := env.store.addPost(owner.ID, skill.ID, false)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.propositions.SubmitProposition(nil, post.ID, sender.ID, &dto.CreatePropositionRequest{
				Content: "Racing myself.",
			})
		}(i)
	}
	wg.Wait()

	var successes, duplicates int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case assert.ErrorIs(t, err, apperrors.ErrDuplicateProposition):
			duplicates++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, duplicates)

	env.store.mu.Lock()
	var pending int
	for _, proposition := range env.store.propositions {
		if proposition.PostID == post.ID && proposition.SenderID == sender.ID &&
			proposition.State == models.PropositionStatePending {
			pending++
		}
	}
	env.store.mu.Unlock()
	assert.Equal(t, 1, pending)
}

func TestPropositionService_Submit_UnknownPost(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	sender := env.store.addUser("bob", false)

	_, err := env.propositions.SubmitProposition(nil, "00000000-0000-0000-0000-000000000000", sender.ID, &dto.CreatePropositionRequest{
		Content: "Shouting into the void.",
	})

	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
}

func TestPropositionService_Accept(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	owner := env.store.addUser("alice", false)
	first := env.store.addUser("bob", false)
	second := env.store.addUser("carol", false)
	skill := env.store.addSkill("Guitar")
	post := env.store.addPost(owner.ID, skill.ID, false)
	winner := env.store.addProposition(post.ID, first.ID, owner.ID, "pending")
	loser := env.store.addProposition(post.ID, second.ID, owner.ID, "pending")

	accepted, err := env.propositions.AcceptProposition(nil, winner.ID, owner.ID)
	require.NoError(t, err)

	// Winner accepted, post closed, pending sibling rejected.
	assert.Equal(t, models.PropositionStateAccepted, accepted.State)
	assert.True(t, accepted.Post.IsClosed)

	sibling, err := env.propositions.MarkFinished(nil, loser.ID, second.ID)
	assert.Nil(t, sibling)
	assert.ErrorIs(t, err, apperrors.ErrPropositionNotAccepted)
	assert.Equal(t, models.PropositionStateRejected, env.store.propositions[loser.ID].State)
}

func TestPropositionService_Accept_NotPostOwner(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	owner := env.store.addUser("alice", false)
	sender := env.store.addUser("bob", false)
	outsider := env.store.addUser("mallory", false)
	skill := env.store.addSkill("Guitar")
	post := env.store.addPost(owner.ID, skill.ID, false)
	proposition := env.store.addProposition(post.ID, sender.ID, owner.ID, "pending")

	_, err := env.propositions.AcceptProposition(nil, proposition.ID, outsider.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotPostOwner)

	_, err = env.propositions.AcceptProposition(nil, proposition.ID, sender.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotPostOwner)
}

func TestPropositionService_Accept_ReceiverMismatch(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	owner := env.store.addUser("alice", false)
	sender := env.store.addUser("bob", false)
	stale := env.store.addUser("carol", false)
	skill := env.store.addSkill("Guitar")
	post := env.store.addPost(owner.ID, skill.ID, false)
	// Receiver recorded at creation no longer matches the post owner.
	proposition := env.store.addProposition(post.ID, sender.ID, stale.ID, "pending")

	_, err := env.propositions.AcceptProposition(nil, proposition.ID, owner.ID)

	assert.ErrorIs(t, err, apperrors.ErrReceiverMismatch)
}

func TestPropositionService_Accept_AlreadyDecided(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	owner := env.store.addUser("alice", false)
	sender := env.store.addUser("bob", false)
	skill := env.store.addSkill("Guitar")
	post := env.store.addPost(owner.ID, skill.ID, true)
	accepted := env.store.addProposition(post.ID, sender.ID, owner.ID, "accepted")
	rejected := env.store.addProposition(post.ID, sender.ID, owner.ID, "rejected")

	_, err := env.propositions.AcceptProposition(nil, accepted.ID, owner.ID)
	assert.ErrorIs(t, err, apperrors.ErrPropositionAccepted)

	_, err = env.propositions.AcceptProposition(nil, rejected.ID, owner.ID)
	assert.ErrorIs(t, err, apperrors.ErrPropositionRejected)
}

// TestPropositionService_Accept_Concurrent races two accepts on the same
// post. Exactly one must win; the other gets a conflict and no proposition
// is left half-transitioned.
func TestPropositionService_Accept_Concurrent(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	owner := env.store.addUser("alice", false)
	first := env.store.addUser("bob", false)
	second := env.store.addUser("carol", false)
	skill := env.store.addSkill("Guitar")
	post := env.store.addPost(owner.ID, skill.ID, false)
	propositionA := env.store.addProposition(post.ID, first.ID, owner.ID, "pending")
	propositionB := env.store.addProposition(post.ID, second.ID, owner.ID, "pending")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, id := range []string{propositionA.ID, propositionB.ID} {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			_, errs[i] = env.propositions.AcceptProposition(nil, id, owner.ID)
		}(i, id)
	}
	wg.Wait()

	var wins, conflicts int
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.CodeConflict, appErr.Code)
		conflicts++
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, 1, conflicts)

	// One accepted, one rejected, post closed.
	env.store.mu.Lock()
	defer env.store.mu.Unlock()
	states := map[models.PropositionState]int{}
	states[env.store.propositions[propositionA.ID].State]++
	states[env.store.propositions[propositionB.ID].State]++
	assert.Equal(t, 1, states[models.PropositionStateAccepted])
	assert.Equal(t, 1, states[models.PropositionStateRejected])
	assert.True(t, env.store.posts[post.ID].IsClosed)
}

func TestPropositionService_GetPostPropositions(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	owner := env.store.addUser("alice", false)
	sender := env.store.addUser("bob", false)
	skill := env.store.addSkill("Guitar")
	post := env.store.addPost(owner.ID, skill.ID, false)

	_, err := env.propositions.SubmitProposition(nil, post.ID, sender.ID, &dto.CreatePropositionRequest{
		Content: "interested",
	})
	require.NoError(t, err)

	propositions, err := env.propositions.GetPostPropositions(nil, post.ID, owner.ID)
	require.NoError(t, err)
	require.Len(t, propositions, 1)
	assert.Equal(t, models.PropositionStatePending, propositions[0].State)
	assert.Equal(t, sender.ID, propositions[0].SenderID)

	_, err = env.propositions.GetPostPropositions(nil, post.ID, sender.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotPostOwner)
}

func TestPropositionService_MarkFinished(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	owner := env.store.addUser("alice", false)
	sender := env.store.addUser("bob", false)
	outsider := env.store.addUser("mallory", false)
	skill := env.store.addSkill("Guitar")
	post := env.store.addPost(owner.ID, skill.ID, true)
	proposition := env.store.addProposition(post.ID, sender.ID, owner.ID, "accepted")

	_, err := env.propositions.MarkFinished(nil, proposition.ID, outsider.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotPropositionParty)

	fromSender, err := env.propositions.MarkFinished(nil, proposition.ID, sender.ID)
	require.NoError(t, err)
	assert.True(t, fromSender.IsFinishedBySender)
	assert.False(t, fromSender.IsFinishedByReceiver)

	fromReceiver, err := env.propositions.MarkFinished(nil, proposition.ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, fromReceiver.IsFinishedByReceiver)
}
