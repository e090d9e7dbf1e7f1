package services

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/MIA1kl/threads-api/models"
)

// InteractionService is the like ledger for threads and comments. Toggles are
// check-then-act inside a transaction, with the unique (user, target) indexes
// as the final word under races: a duplicate insert collapses onto the
// existing row instead of double-counting.
type InteractionService struct {
	DB       *gorm.DB
	Notifier ThreadNotifier
}

func NewInteractionService(db *gorm.DB, notifier ThreadNotifier) *InteractionService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &InteractionService{DB: db, Notifier: notifier}
}

// ToggleThreadLike likes the thread if the user hasn't, unlikes it if they
// have. Returns the resulting state.
func (s *InteractionService) ToggleThreadLike(ctx context.Context, userID, threadID uint) (bool, error) {
	var thread models.Thread
	if err := s.DB.WithContext(ctx).First(&thread, threadID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}

	liked := false
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Like
		result := tx.Where("user_id = ? AND thread_id = ?", userID, threadID).First(&existing)

		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			like := models.Like{UserID: userID, ThreadID: threadID}
			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "thread_id"}},
				DoNothing: true,
			}).Create(&like)
			if res.Error != nil {
				return res.Error
			}
			// RowsAffected == 0 means a concurrent like won; either way the
			// row exists now.
			liked = true
			return nil
		}
		if result.Error != nil {
			return result.Error
		}

		if err := tx.Delete(&existing).Error; err != nil {
			return err
		}
		liked = false
		return nil
	})
	if err != nil {
		return false, err
	}

	s.Notifier.NotifyThreadUpdated(ctx, ThreadEvent{
		Type:     EventThreadLiked,
		ThreadID: threadID,
		ActorID:  userID,
	})

	return liked, nil
}

// ToggleCommentLike mirrors ToggleThreadLike and keeps the denormalized
// counter on the comment in step inside the same transaction. The decrement is
// clamped so the counter can never go negative.
func (s *InteractionService) ToggleCommentLike(ctx context.Context, userID, commentID uint) (bool, error) {
	var comment models.Comment
	if err := s.DB.WithContext(ctx).First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}

	liked := false
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.CommentLike
		result := tx.Where("user_id = ? AND comment_id = ?", userID, commentID).First(&existing)

		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			like := models.CommentLike{UserID: userID, CommentID: commentID}
			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "comment_id"}},
				DoNothing: true,
			}).Create(&like)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				if err := tx.Model(&models.Comment{}).
					Where("id = ?", commentID).
					UpdateColumn("likes_count", gorm.Expr("likes_count + ?", 1)).Error; err != nil {
					return err
				}
			}
			liked = true
			return nil
		}
		if result.Error != nil {
			return result.Error
		}

		res := tx.Delete(&existing)
		if res.Error != nil {
			return res.Error
		}
		// Deleting nothing means a concurrent unlike already took the row
		// and its counter share with it.
		if res.RowsAffected > 0 {
			if err := tx.Model(&models.Comment{}).
				Where("id = ? AND likes_count > ?", commentID, 0).
				UpdateColumn("likes_count", gorm.Expr("likes_count - ?", 1)).Error; err != nil {
				return err
			}
		}
		liked = false
		return nil
	})
	if err != nil {
		return false, err
	}

	return liked, nil
}

// ThreadLikeCount is the authoritative like count: the ledger row count.
func (s *InteractionService) ThreadLikeCount(ctx context.Context, threadID uint) (int64, error) {
	var count int64
	err := s.DB.WithContext(ctx).
		Model(&models.Like{}).
		Where("thread_id = ?", threadID).
		Count(&count).Error
	return count, err
}

// CommentLikeCount reads the denormalized counter.
func (s *InteractionService) CommentLikeCount(ctx context.Context, commentID uint) (int64, error) {
	var comment models.Comment
	if err := s.DB.WithContext(ctx).First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return comment.LikesCount, nil
}

// ThreadLikers lists who liked a thread, in like order.
func (s *InteractionService) ThreadLikers(ctx context.Context, threadID uint) ([]UserSummary, error) {
	if err := s.requireThread(ctx, threadID); err != nil {
		return nil, err
	}
	return s.listLikers(ctx, "likes", "thread_id", threadID)
}

// CommentLikers lists who liked a comment, in like order.
func (s *InteractionService) CommentLikers(ctx context.Context, commentID uint) ([]UserSummary, error) {
	var comment models.Comment
	if err := s.DB.WithContext(ctx).First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.listLikers(ctx, "comment_likes", "comment_id", commentID)
}

func (s *InteractionService) requireThread(ctx context.Context, threadID uint) error {
	var thread models.Thread
	if err := s.DB.WithContext(ctx).First(&thread, threadID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *InteractionService) listLikers(ctx context.Context, table, column string, targetID uint) ([]UserSummary, error) {
	var users []models.User
	err := s.DB.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN "+table+" ON "+table+".user_id = users.id").
		Where(table+"."+column+" = ?", targetID).
		Order(table + ".id ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]UserSummary, len(users))
	for i, u := range users {
		summaries[i] = summarize(u)
	}
	return summaries, nil
}
