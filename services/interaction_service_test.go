package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/MIA1kl/threads-api/models"
)

func TestToggleThreadLike(t *testing.T) {
	db := newTestDB(t)
	content := NewContentService(db, NopNotifier{})
	svc := NewInteractionService(db, NopNotifier{})
	ctx := context.Background()

	author := createUser(t, db, "author", false)
	liker := createUser(t, db, "liker", false)
	thread := createThread(t, db, content, author.ID, "like me")

	liked, err := svc.ToggleThreadLike(ctx, liker.ID, thread.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	count, err := svc.ThreadLikeCount(ctx, thread.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	liked, err = svc.ToggleThreadLike(ctx, liker.ID, thread.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	count, err = svc.ThreadLikeCount(ctx, thread.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	// A fresh toggle after the round trip likes again.
	liked, err = svc.ToggleThreadLike(ctx, liker.ID, thread.ID)
	require.NoError(t, err)
	assert.True(t, liked)
}

func TestToggleThreadLikeUnknownThread(t *testing.T) {
	db := newTestDB(t)
	svc := NewInteractionService(db, NopNotifier{})

	liker := createUser(t, db, "liker", false)

	_, err := svc.ToggleThreadLike(context.Background(), liker.ID, 12345)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestThreadLikeSingleRowPerUser(t *testing.T) {
	db := newTestDB(t)
	content := NewContentService(db, NopNotifier{})
	svc := NewInteractionService(db, NopNotifier{})
	ctx := context.Background()

	author := createUser(t, db, "author", false)
	liker := createUser(t, db, "liker", false)
	thread := createThread(t, db, content, author.ID, "like me")

	// Odd number of toggles ends liked; the ledger holds exactly one row.
	for i := 0; i < 5; i++ {
		_, err := svc.ToggleThreadLike(ctx, liker.ID, thread.ID)
		require.NoError(t, err)
	}

	var rows int64
	require.NoError(t, db.Model(&models.Like{}).
		Where("user_id = ? AND thread_id = ?", liker.ID, thread.ID).
		Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestToggleCommentLikeKeepsCounterInStep(t *testing.T) {
	db := newTestDB(t)
	content := NewContentService(db, NopNotifier{})
	svc := NewInteractionService(db, NopNotifier{})
	ctx := context.Background()

	author := createUser(t, db, "author", false)
	a := createUser(t, db, "ann", false)
	b := createUser(t, db, "ben", false)
	thread := createThread(t, db, content, author.ID, "root")
	comment, err := content.CreateComment(ctx, author.ID, thread.ID, "first", nil)
	require.NoError(t, err)

	ledgerCount := func() int64 {
		var n int64
		require.NoError(t, db.Model(&models.CommentLike{}).
			Where("comment_id = ?", comment.ID).Count(&n).Error)
		return n
	}
	counter := func() int64 {
		n, err := svc.CommentLikeCount(ctx, comment.ID)
		require.NoError(t, err)
		return n
	}

	liked, err := svc.ToggleCommentLike(ctx, a.ID, comment.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, ledgerCount(), counter())
	assert.Equal(t, int64(1), counter())

	liked, err = svc.ToggleCommentLike(ctx, b.ID, comment.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, ledgerCount(), counter())
	assert.Equal(t, int64(2), counter())

	liked, err = svc.ToggleCommentLike(ctx, a.ID, comment.ID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, ledgerCount(), counter())
	assert.Equal(t, int64(1), counter())

	_, err = svc.ToggleCommentLike(ctx, b.ID, comment.ID)
	require.NoError(t, err)
	assert.Zero(t, counter())
}

func TestCommentUnlikeLostDeleteSkipsDecrement(t *testing.T) {
	db := newTestDB(t)
	content := NewContentService(db, NopNotifier{})
	svc := NewInteractionService(db, NopNotifier{})
	ctx := context.Background()

	author := createUser(t, db, "author", false)
	a := createUser(t, db, "ann", false)
	b := createUser(t, db, "ben", false)
	thread := createThread(t, db, content, author.ID, "root")
	comment, err := content.CreateComment(ctx, author.ID, thread.ID, "first", nil)
	require.NoError(t, err)

	_, err = svc.ToggleCommentLike(ctx, a.ID, comment.ID)
	require.NoError(t, err)
	_, err = svc.ToggleCommentLike(ctx, b.ID, comment.ID)
	require.NoError(t, err)

	// Yank ann's ledger row, and its counter share, right before the
	// toggle's own delete runs, the way an unlike that commits first would.
	// The toggle's delete then touches nothing and must not decrement.
	yanked := false
	require.NoError(t, db.Callback().Delete().Before("gorm:delete").Register("yank_comment_like", func(tx *gorm.DB) {
		if yanked || tx.Statement.Table != "comment_likes" {
			return
		}
		yanked = true
		sess := tx.Session(&gorm.Session{NewDB: true})
		sess.Exec("DELETE FROM comment_likes WHERE user_id = ? AND comment_id = ?", a.ID, comment.ID)
		sess.Exec("UPDATE comments SET likes_count = likes_count - 1 WHERE id = ?", comment.ID)
	}))
	t.Cleanup(func() { _ = db.Callback().Delete().Remove("yank_comment_like") })

	liked, err := svc.ToggleCommentLike(ctx, a.ID, comment.ID)
	require.NoError(t, err)
	assert.False(t, liked)
	require.True(t, yanked)

	var rows int64
	require.NoError(t, db.Model(&models.CommentLike{}).
		Where("comment_id = ?", comment.ID).Count(&rows).Error)
	count, err := svc.CommentLikeCount(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, rows, count)
	assert.Equal(t, int64(1), count)
}

func TestCommentLikeCounterNeverNegative(t *testing.T) {
	db := newTestDB(t)
	content := NewContentService(db, NopNotifier{})
	svc := NewInteractionService(db, NopNotifier{})
	ctx := context.Background()

	author := createUser(t, db, "author", false)
	liker := createUser(t, db, "liker", false)
	thread := createThread(t, db, content, author.ID, "root")
	comment, err := content.CreateComment(ctx, author.ID, thread.ID, "first", nil)
	require.NoError(t, err)

	// Sneak the ledger row out from under the counter, then unlike. The
	// clamped decrement must stop at zero.
	_, err = svc.ToggleCommentLike(ctx, liker.ID, comment.ID)
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Comment{}).
		Where("id = ?", comment.ID).
		UpdateColumn("likes_count", 0).Error)

	_, err = svc.ToggleCommentLike(ctx, liker.ID, comment.ID)
	require.NoError(t, err)

	count, err := svc.CommentLikeCount(ctx, comment.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestToggleCommentLikeUnknownComment(t *testing.T) {
	db := newTestDB(t)
	svc := NewInteractionService(db, NopNotifier{})

	liker := createUser(t, db, "liker", false)

	_, err := svc.ToggleCommentLike(context.Background(), liker.ID, 12345)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.CommentLikeCount(context.Background(), 12345)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestThreadLikers(t *testing.T) {
	db := newTestDB(t)
	content := NewContentService(db, NopNotifier{})
	svc := NewInteractionService(db, NopNotifier{})
	ctx := context.Background()

	author := createUser(t, db, "author", false)
	a := createUser(t, db, "ann", false)
	b := createUser(t, db, "ben", false)
	thread := createThread(t, db, content, author.ID, "popular")

	_, err := svc.ToggleThreadLike(ctx, a.ID, thread.ID)
	require.NoError(t, err)
	_, err = svc.ToggleThreadLike(ctx, b.ID, thread.ID)
	require.NoError(t, err)

	likers, err := svc.ThreadLikers(ctx, thread.ID)
	require.NoError(t, err)
	require.Len(t, likers, 2)
	assert.Equal(t, "ann", likers[0].Username)
	assert.Equal(t, "ben", likers[1].Username)

	// Unliking removes the user from the listing.
	_, err = svc.ToggleThreadLike(ctx, a.ID, thread.ID)
	require.NoError(t, err)

	likers, err = svc.ThreadLikers(ctx, thread.ID)
	require.NoError(t, err)
	require.Len(t, likers, 1)
	assert.Equal(t, "ben", likers[0].Username)

	_, err = svc.ThreadLikers(ctx, thread.ID+999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCommentLikers(t *testing.T) {
	db := newTestDB(t)
	content := NewContentService(db, NopNotifier{})
	svc := NewInteractionService(db, NopNotifier{})
	ctx := context.Background()

	author := createUser(t, db, "author", false)
	a := createUser(t, db, "ann", false)
	thread := createThread(t, db, content, author.ID, "root")
	comment, err := content.CreateComment(ctx, author.ID, thread.ID, "first", nil)
	require.NoError(t, err)

	_, err = svc.ToggleCommentLike(ctx, a.ID, comment.ID)
	require.NoError(t, err)

	likers, err := svc.CommentLikers(ctx, comment.ID)
	require.NoError(t, err)
	require.Len(t, likers, 1)
	assert.Equal(t, "ann", likers[0].Username)

	_, err = svc.CommentLikers(ctx, comment.ID+999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestThreadLikeNotifies(t *testing.T) {
	db := newTestDB(t)
	content := NewContentService(db, NopNotifier{})
	ctx := context.Background()

	recorder := &recordingNotifier{}
	svc := NewInteractionService(db, recorder)

	author := createUser(t, db, "author", false)
	liker := createUser(t, db, "liker", false)
	thread := createThread(t, db, content, author.ID, "notify me")

	_, err := svc.ToggleThreadLike(ctx, liker.ID, thread.ID)
	require.NoError(t, err)

	require.Len(t, recorder.events, 1)
	assert.Equal(t, EventThreadLiked, recorder.events[0].Type)
	assert.Equal(t, thread.ID, recorder.events[0].ThreadID)
	assert.Equal(t, liker.ID, recorder.events[0].ActorID)
}

type recordingNotifier struct {
	events []ThreadEvent
}

func (r *recordingNotifier) NotifyThreadUpdated(ctx context.Context, event ThreadEvent) {
	r.events = append(r.events, event)
}
