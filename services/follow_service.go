package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/MIA1kl/threads-api/models"
)

// FollowService owns the follow graph. Edges move NONE -> PENDING -> APPROVED,
// or straight to APPROVED for public targets. Unfollow and reject both drop the
// edge; an approved edge never goes back to pending.
type FollowService struct {
	DB *gorm.DB
}

func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{DB: db}
}

// Follow creates an edge from fromID to toID. Repeat calls are idempotent and
// report the current status of the surviving edge. The edge is auto-approved
// when the target account is public.
func (s *FollowService) Follow(ctx context.Context, fromID, toID uint) (FollowStatus, error) {
	if fromID == toID {
		return "", ErrSelfFollow
	}

	var target models.User
	if err := s.DB.WithContext(ctx).First(&target, toID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}

	edge := models.Follow{
		FollowerID:  fromID,
		FollowingID: toID,
		IsApproved:  !target.IsPrivate,
	}

	// The unique (follower, following) index is the concurrency guard: a
	// racing duplicate insert does nothing and the existing edge wins.
	result := s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "follower_id"}, {Name: "following_id"}},
			DoNothing: true,
		}).
		Create(&edge)
	if result.Error != nil {
		return "", result.Error
	}

	if result.RowsAffected == 0 {
		var existing models.Follow
		if err := s.DB.WithContext(ctx).
			Where("follower_id = ? AND following_id = ?", fromID, toID).
			First(&existing).Error; err != nil {
			return "", err
		}
		edge = existing
	}

	if edge.IsApproved {
		return FollowStatusFollowed, nil
	}
	return FollowStatusRequested, nil
}

// Unfollow removes the edge if present; removing a missing edge is a no-op.
func (s *FollowService) Unfollow(ctx context.Context, fromID, toID uint) error {
	return s.DB.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", fromID, toID).
		Delete(&models.Follow{}).Error
}

// ApproveFollow flips a pending edge targeting the actor to approved. Only the
// target of an edge can reach its approval, so the actor is the target by
// construction.
func (s *FollowService) ApproveFollow(ctx context.Context, actorID, followerID uint) error {
	result := s.DB.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ? AND is_approved = ?", followerID, actorID, false).
		Update("is_approved", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// RejectFollow drops a pending edge targeting the actor.
func (s *FollowService) RejectFollow(ctx context.Context, actorID, followerID uint) error {
	result := s.DB.WithContext(ctx).
		Where("follower_id = ? AND following_id = ? AND is_approved = ?", followerID, actorID, false).
		Delete(&models.Follow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IsFollowing reports whether an approved edge fromID -> toID exists.
func (s *FollowService) IsFollowing(ctx context.Context, fromID, toID uint) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ? AND is_approved = ?", fromID, toID, true).
		Count(&count).Error
	return count > 0, err
}

// Followers lists approved followers of userID in edge-creation order.
func (s *FollowService) Followers(ctx context.Context, userID uint, page, pageSize int) ([]FollowEntry, int64, error) {
	return s.listEdges(ctx, "follows.following_id = ? AND follows.is_approved = ?", "follows.follower_id", userID, true, page, pageSize)
}

// Following lists accounts userID has an approved edge to, in edge-creation order.
func (s *FollowService) Following(ctx context.Context, userID uint, page, pageSize int) ([]FollowEntry, int64, error) {
	return s.listEdges(ctx, "follows.follower_id = ? AND follows.is_approved = ?", "follows.following_id", userID, true, page, pageSize)
}

// PendingRequests lists edges awaiting userID's approval.
func (s *FollowService) PendingRequests(ctx context.Context, userID uint, page, pageSize int) ([]FollowEntry, int64, error) {
	return s.listEdges(ctx, "follows.following_id = ? AND follows.is_approved = ?", "follows.follower_id", userID, false, page, pageSize)
}

func (s *FollowService) listEdges(ctx context.Context, cond, userColumn string, userID uint, approved bool, page, pageSize int) ([]FollowEntry, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	var total int64
	if err := s.DB.WithContext(ctx).
		Model(&models.Follow{}).
		Where(cond, userID, approved).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []struct {
		UserID         uint      `gorm:"column:user_id"`
		Username       string    `gorm:"column:username"`
		Name           string    `gorm:"column:name"`
		ProfilePicture string    `gorm:"column:profile_picture"`
		IsPrivate      bool      `gorm:"column:is_private"`
		IsApproved     bool      `gorm:"column:is_approved"`
		FollowedAt     time.Time `gorm:"column:followed_at"`
	}

	err := s.DB.WithContext(ctx).
		Model(&models.Follow{}).
		Select("users.id as user_id, users.username, users.name, users.profile_picture, users.is_private, follows.is_approved, follows.created_at as followed_at").
		Joins("JOIN users ON users.id = "+userColumn).
		Where(cond, userID, approved).
		Order("follows.created_at ASC").
		Offset(offset).
		Limit(pageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	entries := make([]FollowEntry, len(rows))
	for i, row := range rows {
		entries[i] = FollowEntry{
			User: UserSummary{
				ID:             row.UserID,
				Username:       row.Username,
				Name:           row.Name,
				ProfilePicture: row.ProfilePicture,
				IsPrivate:      row.IsPrivate,
			},
			FollowedAt: row.FollowedAt,
			IsApproved: row.IsApproved,
		}
	}

	return entries, total, nil
}

func summarize(u models.User) UserSummary {
	return UserSummary{
		ID:             u.ID,
		Username:       u.Username,
		Name:           u.Name,
		ProfilePicture: u.ProfilePicture,
		IsPrivate:      u.IsPrivate,
	}
}
