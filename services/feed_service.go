package services

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/MIA1kl/threads-api/models"
)

// visibleClause is the literal visibility law: a thread can be seen when the
// viewer authored it, follows the author on an approved edge, or the author is
// public. A union of the three, not a precedence chain. Bind order: viewerID,
// false, viewerID, true.
const visibleClause = `threads.author_id = ? OR users.is_private = ? OR EXISTS (
	SELECT 1 FROM follows
	WHERE follows.follower_id = ?
	  AND follows.following_id = threads.author_id
	  AND follows.is_approved = ?
)`

// FeedService resolves which threads a viewer may see, newest first.
type FeedService struct {
	DB *gorm.DB
}

func NewFeedService(db *gorm.DB) *FeedService {
	return &FeedService{DB: db}
}

// threadRow is the joined projection a feed query selects into.
type threadRow struct {
	ID                    uint           `gorm:"column:id"`
	Content               string         `gorm:"column:content"`
	MediaURLs             pq.StringArray `gorm:"column:media_urls;type:text[]"`
	QuotedThreadID        *uint          `gorm:"column:quoted_thread_id"`
	CreatedAt             time.Time      `gorm:"column:created_at"`
	AuthorID              uint           `gorm:"column:author_id"`
	AuthorUsername        string         `gorm:"column:author_username"`
	AuthorName            string         `gorm:"column:author_name"`
	AuthorProfilePicture  string         `gorm:"column:author_profile_picture"`
	AuthorIsPrivate       bool           `gorm:"column:author_is_private"`
	LikesCount            int64          `gorm:"column:likes_count"`
	CommentsCount         int64          `gorm:"column:comments_count"`
	LikedByUser           bool           `gorm:"column:liked_by_user"`
}

const threadSelect = `
	threads.id,
	threads.content,
	threads.media_urls,
	threads.quoted_thread_id,
	threads.created_at,
	users.id as author_id,
	users.username as author_username,
	users.name as author_name,
	users.profile_picture as author_profile_picture,
	users.is_private as author_is_private,
	(SELECT COUNT(*) FROM likes WHERE likes.thread_id = threads.id) as likes_count,
	(SELECT COUNT(*) FROM comments WHERE comments.thread_id = threads.id) as comments_count,
	EXISTS(SELECT 1 FROM likes WHERE likes.thread_id = threads.id AND likes.user_id = ?) as liked_by_user
`

// VisibleThreads pages through every thread the viewer may see, in reverse
// chronological order. Restartable: the same page always re-evaluates against
// current state.
func (s *FeedService) VisibleThreads(ctx context.Context, viewerID uint, page, pageSize int) ([]ThreadItem, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	base := s.DB.WithContext(ctx).
		Model(&models.Thread{}).
		Joins("JOIN users ON threads.author_id = users.id").
		Where(visibleClause, viewerID, false, viewerID, true)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []threadRow
	err := base.Session(&gorm.Session{}).
		Select(threadSelect, viewerID).
		Order("threads.created_at DESC, threads.id DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	items, err := s.buildItems(ctx, viewerID, rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// UserThreads lists one author's threads for a viewer, gated by the same law.
func (s *FeedService) UserThreads(ctx context.Context, viewerID, authorID uint, page, pageSize int) ([]ThreadItem, int64, error) {
	visible, err := s.CanViewAuthor(ctx, viewerID, authorID)
	if err != nil {
		return nil, 0, err
	}
	if !visible {
		return nil, 0, ErrPermissionDenied
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	var total int64
	if err := s.DB.WithContext(ctx).
		Model(&models.Thread{}).
		Where("author_id = ?", authorID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []threadRow
	err = s.DB.WithContext(ctx).
		Model(&models.Thread{}).
		Select(threadSelect, viewerID).
		Joins("JOIN users ON threads.author_id = users.id").
		Where("threads.author_id = ?", authorID).
		Order("threads.created_at DESC, threads.id DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	items, err := s.buildItems(ctx, viewerID, rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// CanViewAuthor evaluates the visibility law for a single author.
func (s *FeedService) CanViewAuthor(ctx context.Context, viewerID, authorID uint) (bool, error) {
	if viewerID == authorID {
		return true, nil
	}

	var author models.User
	if err := s.DB.WithContext(ctx).First(&author, authorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}
	if !author.IsPrivate {
		return true, nil
	}

	var count int64
	err := s.DB.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ? AND is_approved = ?", viewerID, authorID, true).
		Count(&count).Error
	return count > 0, err
}

func (s *FeedService) buildItems(ctx context.Context, viewerID uint, rows []threadRow) ([]ThreadItem, error) {
	items := make([]ThreadItem, len(rows))
	for i, row := range rows {
		item := ThreadItem{
			ID:        row.ID,
			Content:   row.Content,
			MediaURLs: row.MediaURLs,
			Author: UserSummary{
				ID:             row.AuthorID,
				Username:       row.AuthorUsername,
				Name:           row.AuthorName,
				ProfilePicture: row.AuthorProfilePicture,
				IsPrivate:      row.AuthorIsPrivate,
			},
			LikesCount:    row.LikesCount,
			CommentsCount: row.CommentsCount,
			LikedByUser:   row.LikedByUser,
			CreatedAt:     row.CreatedAt,
		}

		if row.QuotedThreadID != nil {
			quoted, err := s.quotedSummary(ctx, *row.QuotedThreadID)
			if err != nil {
				return nil, err
			}
			item.QuotedThread = quoted
		}

		mentions, err := s.threadMentions(ctx, row.ID)
		if err != nil {
			return nil, err
		}
		item.Mentions = mentions

		items[i] = item
	}
	return items, nil
}

func (s *FeedService) quotedSummary(ctx context.Context, threadID uint) (*QuotedThreadSummary, error) {
	var thread models.Thread
	err := s.DB.WithContext(ctx).
		Preload("Author").
		First(&thread, threadID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// The original is gone; the quoting thread stands alone.
			return nil, nil
		}
		return nil, err
	}
	return &QuotedThreadSummary{
		ID:        thread.ID,
		Author:    summarize(thread.Author),
		Content:   thread.Content,
		MediaURLs: thread.MediaURLs,
		CreatedAt: thread.CreatedAt,
	}, nil
}

func (s *FeedService) threadMentions(ctx context.Context, threadID uint) ([]string, error) {
	var usernames []string
	err := s.DB.WithContext(ctx).
		Model(&models.ThreadMention{}).
		Select("users.username").
		Joins("JOIN users ON users.id = thread_mentions.user_id").
		Where("thread_mentions.thread_id = ?", threadID).
		Order("thread_mentions.id ASC").
		Pluck("users.username", &usernames).Error
	return usernames, err
}
