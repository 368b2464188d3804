package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"friend-service/internal/models"
	"friend-service/internal/repository"
	"friend-service/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.FriendRequestEvent
}

func (p *recordingPublisher) Publish(ctx context.Context, event models.FriendRequestEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []models.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.EventType, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type friendEnv struct {
	svc       *FriendService
	publisher *recordingPublisher
	clock     time.Time
	users     []*models.User
}

func newFriendEnv(t *testing.T, userCount int) *friendEnv {
	db := testutil.NewTestDB(t)
	userRepo := repository.NewUserRepository(db)
	env := &friendEnv{
		publisher: &recordingPublisher{},
		clock:     time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	env.svc = NewFriendService(repository.NewFriendRepository(db, false), userRepo, env.publisher, 3, time.Minute)
	env.svc.now = func() time.Time { return env.clock }

	for i := 0; i < userCount; i++ {
		u := &models.User{Email: string(rune('a'+i)) + "@example.com", Name: "User " + string(rune('A'+i)), Password: "x"}
		require.NoError(t, userRepo.Create(context.Background(), u))
		env.users = append(env.users, u)
	}
	return env
}

func (e *friendEnv) id(i int) uint { return e.users[i].ID }

func (e *friendEnv) advance(d time.Duration) { e.clock = e.clock.Add(d) }

func TestSendRequest(t *testing.T) {
	env := newFriendEnv(t, 2)
	ctx := context.Background()

	resp, err := env.svc.SendRequest(ctx, env.id(0), env.id(1))
	require.NoError(t, err)
	assert.Equal(t, models.FriendRequestPending, resp.Status)
	assert.Equal(t, "a@example.com", resp.Sender.Email)
	assert.Equal(t, "b@example.com", resp.Receiver.Email)
	assert.True(t, env.clock.Equal(resp.Timestamp))

	assert.Equal(t, []models.EventType{models.EventFriendRequestSent}, env.publisher.types())
	assert.Equal(t, env.id(1), env.publisher.events[0].Recipient())
}

func TestSendRequestValidationOrder(t *testing.T) {
	env := newFriendEnv(t, 5)
	ctx := context.Background()

	_, err := env.svc.SendRequest(ctx, env.id(0), 9999)
	assert.ErrorIs(t, err, ErrReceiverNotFound)

	_, err = env.svc.SendRequest(ctx, env.id(0), 0)
	assert.ErrorIs(t, err, ErrReceiverNotFound)

	_, err = env.svc.SendRequest(ctx, env.id(0), env.id(0))
	assert.ErrorIs(t, err, ErrSelfRequest)

	for i := 1; i <= 3; i++ {
		_, err = env.svc.SendRequest(ctx, env.id(0), env.id(i))
		require.NoError(t, err)
	}

	// a duplicate is reported as such even while rate limited
	_, err = env.svc.SendRequest(ctx, env.id(0), env.id(1))
	assert.ErrorIs(t, err, ErrRequestAlreadySent)

	_, err = env.svc.SendRequest(ctx, env.id(0), env.id(4))
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestSendRequestDuplicateIsDirectional(t *testing.T) {
	env := newFriendEnv(t, 2)
	ctx := context.Background()

	_, err := env.svc.SendRequest(ctx, env.id(0), env.id(1))
	require.NoError(t, err)

	_, err = env.svc.SendRequest(ctx, env.id(0), env.id(1))
	assert.ErrorIs(t, err, ErrRequestAlreadySent)

	_, err = env.svc.SendRequest(ctx, env.id(1), env.id(0))
	assert.NoError(t, err, "reverse direction is not a duplicate")
}

func TestSendRequestRateWindow(t *testing.T) {
	env := newFriendEnv(t, 6)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		_, err := env.svc.SendRequest(ctx, env.id(0), env.id(i))
		require.NoError(t, err)
		env.advance(10 * time.Second)
	}

	// 30s after the first send: three in the window
	_, err := env.svc.SendRequest(ctx, env.id(0), env.id(4))
	assert.ErrorIs(t, err, ErrRateLimited)

	// the first send leaves the window after 60s
	env.advance(31 * time.Second)
	_, err = env.svc.SendRequest(ctx, env.id(0), env.id(4))
	assert.NoError(t, err)

	// rate limiting is per sender
	_, err = env.svc.SendRequest(ctx, env.id(5), env.id(1))
	assert.NoError(t, err)
}

func TestSendRequestSpacedOutNeverLimited(t *testing.T) {
	env := newFriendEnv(t, 6)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		_, err := env.svc.SendRequest(ctx, env.id(0), env.id(i))
		require.NoError(t, err)
		env.advance(61 * time.Second)
	}
}

func TestAcceptRequest(t *testing.T) {
	env := newFriendEnv(t, 3)
	ctx := context.Background()

	req, err := env.svc.SendRequest(ctx, env.id(0), env.id(1))
	require.NoError(t, err)

	assert.ErrorIs(t, env.svc.AcceptRequest(ctx, env.id(1), req.ID+100), ErrRequestNotFound)
	assert.ErrorIs(t, env.svc.AcceptRequest(ctx, env.id(0), req.ID), ErrNotReceiver)
	assert.ErrorIs(t, env.svc.AcceptRequest(ctx, env.id(2), req.ID), ErrNotReceiver)

	require.NoError(t, env.svc.AcceptRequest(ctx, env.id(1), req.ID))

	err = env.svc.AcceptRequest(ctx, env.id(1), req.ID)
	assert.ErrorIs(t, err, ErrFriendshipExists)

	got, err := env.svc.GetReceived(ctx, env.id(1), req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FriendRequestAccepted, got.Status)

	assert.Equal(t, []models.EventType{models.EventFriendRequestSent, models.EventFriendRequestAccepted}, env.publisher.types())
	assert.Equal(t, env.id(0), env.publisher.events[1].Recipient())
}

func TestAcceptReverseRequestAfterFriendship(t *testing.T) {
	env := newFriendEnv(t, 2)
	ctx := context.Background()

	ab, err := env.svc.SendRequest(ctx, env.id(0), env.id(1))
	require.NoError(t, err)
	ba, err := env.svc.SendRequest(ctx, env.id(1), env.id(0))
	require.NoError(t, err)

	require.NoError(t, env.svc.AcceptRequest(ctx, env.id(1), ab.ID))
	assert.ErrorIs(t, env.svc.AcceptRequest(ctx, env.id(0), ba.ID), ErrFriendshipExists)
}

func TestAcceptRejectedRequestFails(t *testing.T) {
	env := newFriendEnv(t, 2)
	ctx := context.Background()

	req, err := env.svc.SendRequest(ctx, env.id(0), env.id(1))
	require.NoError(t, err)
	require.NoError(t, env.svc.RejectRequest(ctx, env.id(1), req.ID))

	assert.ErrorIs(t, env.svc.AcceptRequest(ctx, env.id(1), req.ID), ErrNotPending)

	friends, err := env.svc.ListFriends(ctx, env.id(0))
	require.NoError(t, err)
	assert.Empty(t, friends)
}

func TestRejectRequest(t *testing.T) {
	env := newFriendEnv(t, 3)
	ctx := context.Background()

	req, err := env.svc.SendRequest(ctx, env.id(0), env.id(1))
	require.NoError(t, err)

	assert.ErrorIs(t, env.svc.RejectRequest(ctx, env.id(1), req.ID+100), ErrRequestNotFound)
	assert.ErrorIs(t, env.svc.RejectRequest(ctx, env.id(2), req.ID), ErrNotReceiver)

	require.NoError(t, env.svc.RejectRequest(ctx, env.id(1), req.ID))
	assert.ErrorIs(t, env.svc.RejectRequest(ctx, env.id(1), req.ID), ErrAlreadyRejected)

	assert.Equal(t, []models.EventType{models.EventFriendRequestSent, models.EventFriendRequestRejected}, env.publisher.types())
}

func TestRejectAcceptedRequest(t *testing.T) {
	env := newFriendEnv(t, 2)
	ctx := context.Background()

	req, err := env.svc.SendRequest(ctx, env.id(0), env.id(1))
	require.NoError(t, err)
	require.NoError(t, env.svc.AcceptRequest(ctx, env.id(1), req.ID))

	require.NoError(t, env.svc.RejectRequest(ctx, env.id(1), req.ID))
	got, err := env.svc.GetReceived(ctx, env.id(1), req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FriendRequestRejected, got.Status)

	// the friendship outlives the rejection
	friends, err := env.svc.ListFriends(ctx, env.id(0))
	require.NoError(t, err)
	assert.Len(t, friends, 1)

	assert.ErrorIs(t, env.svc.RejectRequest(ctx, env.id(1), req.ID), ErrAlreadyRejected)
}

func TestListPending(t *testing.T) {
	env := newFriendEnv(t, 4)
	ctx := context.Background()

	_, err := env.svc.ListPending(ctx, env.id(0))
	assert.ErrorIs(t, err, ErrNoPendingRequests)

	r1, err := env.svc.SendRequest(ctx, env.id(1), env.id(0))
	require.NoError(t, err)
	env.advance(time.Second)
	r2, err := env.svc.SendRequest(ctx, env.id(2), env.id(0))
	require.NoError(t, err)
	r3, err := env.svc.SendRequest(ctx, env.id(3), env.id(0))
	require.NoError(t, err)
	require.NoError(t, env.svc.RejectRequest(ctx, env.id(0), r3.ID))

	pending, err := env.svc.ListPending(ctx, env.id(0))
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, r1.ID, pending[0].ID)
	assert.Equal(t, r2.ID, pending[1].ID)

	received, err := env.svc.ListReceived(ctx, env.id(0))
	require.NoError(t, err)
	assert.Len(t, received, 3)
}

func TestGetReceivedHidesOtherUsersRequests(t *testing.T) {
	env := newFriendEnv(t, 3)
	ctx := context.Background()

	req, err := env.svc.SendRequest(ctx, env.id(0), env.id(1))
	require.NoError(t, err)

	_, err = env.svc.GetReceived(ctx, env.id(2), req.ID)
	assert.ErrorIs(t, err, ErrRequestNotFound)

	_, err = env.svc.GetReceived(ctx, env.id(0), req.ID)
	assert.ErrorIs(t, err, ErrRequestNotFound, "the sender is not the addressee")
}

func TestListFriendsIsSymmetric(t *testing.T) {
	env := newFriendEnv(t, 3)
	ctx := context.Background()

	ab, err := env.svc.SendRequest(ctx, env.id(0), env.id(1))
	require.NoError(t, err)
	require.NoError(t, env.svc.AcceptRequest(ctx, env.id(1), ab.ID))

	ca, err := env.svc.SendRequest(ctx, env.id(2), env.id(0))
	require.NoError(t, err)
	require.NoError(t, env.svc.AcceptRequest(ctx, env.id(0), ca.ID))

	friendsOfA, err := env.svc.ListFriends(ctx, env.id(0))
	require.NoError(t, err)
	require.Len(t, friendsOfA, 2)
	assert.Equal(t, env.id(1), friendsOfA[0].ID)
	assert.Equal(t, env.id(2), friendsOfA[1].ID)

	friendsOfB, err := env.svc.ListFriends(ctx, env.id(1))
	require.NoError(t, err)
	require.Len(t, friendsOfB, 1)
	assert.Equal(t, env.id(0), friendsOfB[0].ID)
}
