package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MIA1kl/threads-api/models"
)

func TestFollowPublicAutoApproved(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", false)
	bob := createUser(t, db, "bob", false)

	status, err := svc.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, FollowStatusFollowed, status)

	following, err := svc.IsFollowing(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, following)
}

func TestFollowPrivateRequiresApproval(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", false)
	priv := createUser(t, db, "priv", true)

	status, err := svc.Follow(ctx, alice.ID, priv.ID)
	require.NoError(t, err)
	assert.Equal(t, FollowStatusRequested, status)

	following, err := svc.IsFollowing(ctx, alice.ID, priv.ID)
	require.NoError(t, err)
	assert.False(t, following, "pending edge must not count as following")

	pending, total, err := svc.PendingRequests(ctx, priv.ID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, pending, 1)
	assert.Equal(t, alice.ID, pending[0].User.ID)
	assert.False(t, pending[0].IsApproved)

	require.NoError(t, svc.ApproveFollow(ctx, priv.ID, alice.ID))

	following, err = svc.IsFollowing(ctx, alice.ID, priv.ID)
	require.NoError(t, err)
	assert.True(t, following)

	_, total, err = svc.PendingRequests(ctx, priv.ID, 1, 20)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestFollowIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", false)
	bob := createUser(t, db, "bob", false)

	for i := 0; i < 3; i++ {
		status, err := svc.Follow(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, FollowStatusFollowed, status)
	}

	var count int64
	require.NoError(t, db.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", alice.ID, bob.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count, "repeat follows must collapse to one edge")
}

func TestFollowRepeatWhilePendingStaysPending(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", false)
	priv := createUser(t, db, "priv", true)

	status, err := svc.Follow(ctx, alice.ID, priv.ID)
	require.NoError(t, err)
	assert.Equal(t, FollowStatusRequested, status)

	status, err = svc.Follow(ctx, alice.ID, priv.ID)
	require.NoError(t, err)
	assert.Equal(t, FollowStatusRequested, status)
}

func TestFollowSelf(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)

	alice := createUser(t, db, "alice", false)

	_, err := svc.Follow(context.Background(), alice.ID, alice.ID)
	assert.ErrorIs(t, err, ErrSelfFollow)
}

func TestFollowUnknownTarget(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)

	alice := createUser(t, db, "alice", false)

	_, err := svc.Follow(context.Background(), alice.ID, alice.ID+999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUnfollow(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", false)
	bob := createUser(t, db, "bob", false)

	_, err := svc.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Unfollow(ctx, alice.ID, bob.ID))

	following, err := svc.IsFollowing(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, following)

	// Removing a missing edge is not an error.
	require.NoError(t, svc.Unfollow(ctx, alice.ID, bob.ID))
}

func TestUnfollowDropsPendingRequest(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", false)
	priv := createUser(t, db, "priv", true)

	_, err := svc.Follow(ctx, alice.ID, priv.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Unfollow(ctx, alice.ID, priv.ID))

	_, total, err := svc.PendingRequests(ctx, priv.ID, 1, 20)
	require.NoError(t, err)
	assert.Zero(t, total, "withdrawing a request must clear the pending edge")
}

func TestApproveFollowMissing(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", false)
	bob := createUser(t, db, "bob", false)

	assert.ErrorIs(t, svc.ApproveFollow(ctx, bob.ID, alice.ID), ErrNotFound)

	// An already-approved edge is not pending, so approving again also misses.
	_, err := svc.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.ErrorIs(t, svc.ApproveFollow(ctx, bob.ID, alice.ID), ErrNotFound)
}

func TestRejectFollow(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", false)
	priv := createUser(t, db, "priv", true)

	assert.ErrorIs(t, svc.RejectFollow(ctx, priv.ID, alice.ID), ErrNotFound)

	_, err := svc.Follow(ctx, alice.ID, priv.ID)
	require.NoError(t, err)

	require.NoError(t, svc.RejectFollow(ctx, priv.ID, alice.ID))

	var count int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&count).Error)
	assert.Zero(t, count, "reject must delete the edge, not flip it")

	// The follower can request again after a rejection.
	status, err := svc.Follow(ctx, alice.ID, priv.ID)
	require.NoError(t, err)
	assert.Equal(t, FollowStatusRequested, status)
}

func TestFollowListings(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)
	ctx := context.Background()

	bob := createUser(t, db, "bob", false)
	a := createUser(t, db, "ann", false)
	b := createUser(t, db, "ben", false)
	c := createUser(t, db, "cal", false)

	for _, u := range []models.User{a, b, c} {
		_, err := svc.Follow(ctx, u.ID, bob.ID)
		require.NoError(t, err)
	}
	_, err := svc.Follow(ctx, bob.ID, a.ID)
	require.NoError(t, err)

	followers, total, err := svc.Followers(ctx, bob.ID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, followers, 3)
	assert.Equal(t, "ann", followers[0].User.Username)
	assert.Equal(t, "ben", followers[1].User.Username)
	assert.Equal(t, "cal", followers[2].User.Username)

	following, total, err := svc.Following(ctx, bob.ID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, following, 1)
	assert.Equal(t, a.ID, following[0].User.ID)

	// Pagination slices the same ordering.
	page2, total, err := svc.Followers(ctx, bob.ID, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page2, 1)
	assert.Equal(t, "cal", page2[0].User.Username)
}
