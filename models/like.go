package models

import (
	"time"
)

// Like is one user's like on a thread. The (user, thread) pair is unique: the
// index is the guard that keeps a racing double-like down to a single row.
type Like struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_thread" json:"user_id"`
	ThreadID  uint      `gorm:"not null;uniqueIndex:idx_like_user_thread" json:"thread_id"`
	CreatedAt time.Time `json:"created_at"`

	User   User   `json:"-" gorm:"foreignKey:UserID"`
	Thread Thread `json:"-" gorm:"foreignKey:ThreadID"`
}

// CommentLike mirrors Like for comments, unique per (user, comment).
type CommentLike struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_comment" json:"user_id"`
	CommentID uint      `gorm:"not null;uniqueIndex:idx_like_user_comment" json:"comment_id"`
	CreatedAt time.Time `json:"created_at"`

	User    User    `json:"-" gorm:"foreignKey:UserID"`
	Comment Comment `json:"-" gorm:"foreignKey:CommentID"`
}
