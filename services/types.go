package services

import (
	"time"
)

// UserSummary is the public slice of a user embedded in listings.
type UserSummary struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	Name           string `json:"name"`
	ProfilePicture string `json:"profile_picture"`
	IsPrivate      bool   `json:"is_private"`
}

// FollowEntry is one row of a followers/following/pending listing.
type FollowEntry struct {
	User       UserSummary `json:"user"`
	FollowedAt time.Time   `json:"followed_at"`
	IsApproved bool        `json:"is_approved"`
}

// QuotedThreadSummary is the embedded view of a quoted thread. A deleted
// original leaves the quoting thread with a nil summary.
type QuotedThreadSummary struct {
	ID        uint        `json:"id"`
	Author    UserSummary `json:"author"`
	Content   string      `json:"content"`
	MediaURLs []string    `json:"media_urls"`
	CreatedAt time.Time   `json:"created_at"`
}

// ThreadItem is a feed/detail projection of a thread. Counts and LikedByUser
// are computed read paths over the ledger and graph, never stored.
type ThreadItem struct {
	ID            uint                 `json:"id"`
	Author        UserSummary          `json:"author"`
	Content       string               `json:"content"`
	MediaURLs     []string             `json:"media_urls"`
	QuotedThread  *QuotedThreadSummary `json:"quoted_thread,omitempty"`
	LikesCount    int64                `json:"likes_count"`
	CommentsCount int64                `json:"comments_count"`
	LikedByUser   bool                 `json:"liked_by_user"`
	Mentions      []string             `json:"mentions,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

// CommentNode is a comment with its nested replies, bounded by tree depth.
type CommentNode struct {
	ID          uint          `json:"id"`
	Author      UserSummary   `json:"author"`
	Content     string        `json:"content"`
	LikesCount  int64         `json:"likes_count"`
	LikedByUser bool          `json:"liked_by_user"`
	CreatedAt   time.Time     `json:"created_at"`
	Replies     []CommentNode `json:"replies"`
}

// FollowStatus is the outcome of a follow request.
type FollowStatus string

const (
	FollowStatusFollowed  FollowStatus = "followed"
	FollowStatusRequested FollowStatus = "requested"
)
