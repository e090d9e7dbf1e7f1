package models

import (
	"time"
)

// Follow is a directed edge: follower -> following. The pair is unique, so a
// concurrent duplicate follow loses on the index instead of creating a second
// edge. IsApproved starts false for private targets and true for public ones.
type Follow struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FollowerID  uint      `gorm:"not null;uniqueIndex:idx_follow_pair" json:"follower_id"`
	FollowingID uint      `gorm:"not null;uniqueIndex:idx_follow_pair" json:"following_id"`
	IsApproved  bool      `gorm:"not null;default:false" json:"is_approved"`
	CreatedAt   time.Time `json:"created_at"`

	Follower  User `json:"-" gorm:"foreignKey:FollowerID"`
	Following User `json:"-" gorm:"foreignKey:FollowingID"`
}
