package services

import (
	"context"
	"errors"
	"regexp"
	"unicode/utf8"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/MIA1kl/threads-api/models"
)

// MaxContentLength bounds thread and comment bodies, in runes.
const MaxContentLength = 200

var mentionPattern = regexp.MustCompile(`@(\w+)`)

// ContentService owns threads and comments: creation, quoting, reposting,
// deletion with the cascade rules, and the nested reply tree.
type ContentService struct {
	DB       *gorm.DB
	Notifier ThreadNotifier

	feed *FeedService
}

func NewContentService(db *gorm.DB, notifier ThreadNotifier) *ContentService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &ContentService{DB: db, Notifier: notifier, feed: NewFeedService(db)}
}

// CreateThread stores a new thread. Content may be blank (bare reposts and
// picture-only threads), but never over MaxContentLength. @handle tokens in
// the body are resolved to accounts and recorded as mentions; handles that
// don't resolve are skipped.
func (s *ContentService) CreateThread(ctx context.Context, authorID uint, content string, mediaURLs []string, quotedThreadID *uint) (*models.Thread, error) {
	if utf8.RuneCountInString(content) > MaxContentLength {
		return nil, ErrValidation
	}

	if quotedThreadID != nil {
		var quoted models.Thread
		if err := s.DB.WithContext(ctx).First(&quoted, *quotedThreadID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
	}

	thread := models.Thread{
		AuthorID:       authorID,
		Content:        content,
		MediaURLs:      mediaURLs,
		QuotedThreadID: quotedThreadID,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&thread).Error; err != nil {
			return err
		}
		return s.recordMentions(tx, &thread)
	})
	if err != nil {
		return nil, err
	}

	s.Notifier.NotifyThreadUpdated(ctx, ThreadEvent{
		Type:     EventThreadCreated,
		ThreadID: thread.ID,
		ActorID:  authorID,
	})

	return &thread, nil
}

// QuoteThread creates a new thread referencing the original plus new content.
func (s *ContentService) QuoteThread(ctx context.Context, authorID, originalID uint, content string, mediaURLs []string) (*models.Thread, error) {
	return s.CreateThread(ctx, authorID, content, mediaURLs, &originalID)
}

// RepostThread is a bare quote: reference only, no content of its own.
func (s *ContentService) RepostThread(ctx context.Context, authorID, originalID uint) (*models.Thread, error) {
	return s.CreateThread(ctx, authorID, "", nil, &originalID)
}

// GetThread returns the visibility-gated detail projection of one thread.
func (s *ContentService) GetThread(ctx context.Context, viewerID, threadID uint) (*ThreadItem, error) {
	var thread models.Thread
	if err := s.DB.WithContext(ctx).First(&thread, threadID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	visible, err := s.feed.CanViewAuthor(ctx, viewerID, thread.AuthorID)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, ErrPermissionDenied
	}

	// Single-thread projection, reusing the feed row shape.
	var rows []threadRow
	err = s.DB.WithContext(ctx).
		Model(&models.Thread{}).
		Select(threadSelect, viewerID).
		Joins("JOIN users ON threads.author_id = users.id").
		Where("threads.id = ?", threadID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}

	built, err := s.feed.buildItems(ctx, viewerID, rows)
	if err != nil {
		return nil, err
	}
	return &built[0], nil
}

// DeleteThread removes a thread and everything hanging off it. Only the author
// may delete. Quoting threads survive with their reference nulled.
func (s *ContentService) DeleteThread(ctx context.Context, actorID, threadID uint) error {
	var thread models.Thread
	if err := s.DB.WithContext(ctx).First(&thread, threadID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if thread.AuthorID != actorID {
		return ErrPermissionDenied
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var commentIDs []uint
		if err := tx.Model(&models.Comment{}).
			Where("thread_id = ?", threadID).
			Pluck("id", &commentIDs).Error; err != nil {
			return err
		}
		if len(commentIDs) > 0 {
			if err := tx.Where("comment_id IN ?", commentIDs).Delete(&models.CommentLike{}).Error; err != nil {
				return err
			}
			if err := tx.Where("thread_id = ?", threadID).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("thread_id = ?", threadID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("thread_id = ?", threadID).Delete(&models.ThreadMention{}).Error; err != nil {
			return err
		}
		// Weak reference: quoting threads keep living, pointing at nothing.
		if err := tx.Model(&models.Thread{}).
			Where("quoted_thread_id = ?", threadID).
			Update("quoted_thread_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&thread).Error
	})
	if err != nil {
		return err
	}

	s.Notifier.NotifyThreadUpdated(ctx, ThreadEvent{
		Type:     EventThreadDeleted,
		ThreadID: threadID,
		ActorID:  actorID,
	})

	return nil
}

// CreateComment adds a comment to a thread, optionally as a reply to a parent
// comment. The parent must belong to the same thread.
func (s *ContentService) CreateComment(ctx context.Context, authorID, threadID uint, content string, parentID *uint) (*models.Comment, error) {
	if content == "" || utf8.RuneCountInString(content) > MaxContentLength {
		return nil, ErrValidation
	}

	var thread models.Thread
	if err := s.DB.WithContext(ctx).First(&thread, threadID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if parentID != nil {
		var parent models.Comment
		if err := s.DB.WithContext(ctx).First(&parent, *parentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if parent.ThreadID != threadID {
			return nil, ErrValidation
		}
	}

	comment := models.Comment{
		ThreadID: threadID,
		AuthorID: authorID,
		ParentID: parentID,
		Content:  content,
	}
	if err := s.DB.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes a comment and its whole reply subtree. Allowed for the
// comment's author and for the thread's author.
func (s *ContentService) DeleteComment(ctx context.Context, actorID, commentID uint) error {
	var comment models.Comment
	if err := s.DB.WithContext(ctx).First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	var thread models.Thread
	if err := s.DB.WithContext(ctx).First(&thread, comment.ThreadID).Error; err != nil {
		return err
	}

	if comment.AuthorID != actorID && thread.AuthorID != actorID {
		return ErrPermissionDenied
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		subtree := []uint{comment.ID}
		frontier := []uint{comment.ID}
		for len(frontier) > 0 {
			var childIDs []uint
			if err := tx.Model(&models.Comment{}).
				Where("parent_id IN ?", frontier).
				Pluck("id", &childIDs).Error; err != nil {
				return err
			}
			subtree = append(subtree, childIDs...)
			frontier = childIDs
		}

		if err := tx.Where("comment_id IN ?", subtree).Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", subtree).Delete(&models.Comment{}).Error
	})
}

// ThreadComments returns the top-level comments of a thread with their nested
// replies, oldest first.
func (s *ContentService) ThreadComments(ctx context.Context, viewerID, threadID uint) ([]CommentNode, error) {
	var thread models.Thread
	if err := s.DB.WithContext(ctx).First(&thread, threadID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	nodes, err := s.commentForest(ctx, viewerID, threadID)
	if err != nil {
		return nil, err
	}
	return nodes[rootKey], nil
}

// Replies returns the direct children of a comment, each with its own nested
// replies. Finite (bounded by tree depth) and restartable per call.
func (s *ContentService) Replies(ctx context.Context, viewerID, commentID uint) ([]CommentNode, error) {
	var comment models.Comment
	if err := s.DB.WithContext(ctx).First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	nodes, err := s.commentForest(ctx, viewerID, comment.ThreadID)
	if err != nil {
		return nil, err
	}
	replies := nodes[comment.ID]
	if replies == nil {
		replies = []CommentNode{}
	}
	return replies, nil
}

// rootKey indexes top-level comments in the forest map.
const rootKey = uint(0)

// commentForest loads every comment of a thread once and assembles the reply
// tree in memory, keyed by parent id.
func (s *ContentService) commentForest(ctx context.Context, viewerID, threadID uint) (map[uint][]CommentNode, error) {
	var comments []models.Comment
	err := s.DB.WithContext(ctx).
		Preload("Author").
		Where("thread_id = ?", threadID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	likedSet := map[uint]bool{}
	if len(comments) > 0 {
		ids := make([]uint, len(comments))
		for i, c := range comments {
			ids[i] = c.ID
		}
		var likedIDs []uint
		if err := s.DB.WithContext(ctx).
			Model(&models.CommentLike{}).
			Where("user_id = ? AND comment_id IN ?", viewerID, ids).
			Pluck("comment_id", &likedIDs).Error; err != nil {
			return nil, err
		}
		for _, id := range likedIDs {
			likedSet[id] = true
		}
	}

	children := map[uint][]models.Comment{}
	for _, c := range comments {
		key := rootKey
		if c.ParentID != nil {
			key = *c.ParentID
		}
		children[key] = append(children[key], c)
	}

	forest := map[uint][]CommentNode{}
	var build func(parent uint) []CommentNode
	build = func(parent uint) []CommentNode {
		kids := children[parent]
		nodes := make([]CommentNode, len(kids))
		for i, c := range kids {
			nodes[i] = CommentNode{
				ID:          c.ID,
				Author:      summarize(c.Author),
				Content:     c.Content,
				LikesCount:  c.LikesCount,
				LikedByUser: likedSet[c.ID],
				CreatedAt:   c.CreatedAt,
				Replies:     build(c.ID),
			}
		}
		return nodes
	}
	for key := range children {
		forest[key] = build(key)
	}
	if _, ok := forest[rootKey]; !ok {
		forest[rootKey] = []CommentNode{}
	}
	return forest, nil
}

// recordMentions resolves @handle tokens in the thread body and stores them.
// Unknown handles are skipped without error.
func (s *ContentService) recordMentions(tx *gorm.DB, thread *models.Thread) error {
	matches := mentionPattern.FindAllStringSubmatch(thread.Content, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := map[string]bool{}
	for _, match := range matches {
		handle := match[1]
		if seen[handle] {
			continue
		}
		seen[handle] = true

		var user models.User
		if err := tx.Where("username = ?", handle).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return err
		}

		mention := models.ThreadMention{ThreadID: thread.ID, UserID: user.ID}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "thread_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).Create(&mention).Error; err != nil {
			return err
		}
	}
	return nil
}
