package models

import (
	"time"
)

// Comment belongs to a thread and optionally to a parent comment, forming a
// reply tree. Deleting a comment deletes its whole reply subtree. LikesCount
// is denormalized and kept equal to the CommentLike row count; it never goes
// below zero.
type Comment struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	ThreadID   uint      `gorm:"not null;index" json:"thread_id"`
	AuthorID   uint      `gorm:"not null;index" json:"author_id"`
	ParentID   *uint     `gorm:"index" json:"parent_id"`
	Content    string    `gorm:"type:text;size:200;not null" json:"content"`
	LikesCount int64     `gorm:"not null;default:0" json:"likes_count"`

	Author  User          `json:"-" gorm:"foreignKey:AuthorID"`
	Thread  Thread        `json:"-" gorm:"foreignKey:ThreadID"`
	Parent  *Comment      `json:"-" gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
	Replies []Comment     `json:"-" gorm:"foreignKey:ParentID"`
	Likes   []CommentLike `json:"-" gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE"`
}
