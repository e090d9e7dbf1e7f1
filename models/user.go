package models

import (
	"time"
)

type User struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Username       string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	Password       string    `gorm:"not null" json:"-"` // bcrypt hash, never serialized
	Name           string    `gorm:"size:100" json:"name"`
	Bio            string    `json:"bio"`
	Link           string    `json:"link"`
	ProfilePicture string    `json:"profile_picture"`
	IsPrivate      bool      `gorm:"not null;default:false" json:"is_private"`

	Threads       []Thread       `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Comments      []Comment      `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Likes         []Like         `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CommentLikes  []CommentLike  `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Following     []Follow       `json:"-" gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE"`
	Followers     []Follow       `json:"-" gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE"`
	RefreshTokens []RefreshToken `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
