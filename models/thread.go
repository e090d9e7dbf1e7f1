package models

import (
	"time"

	"github.com/lib/pq"
)

// Thread is a top-level post. QuotedThreadID is a weak self-reference: deleting
// the quoted thread nulls the pointer on quoting threads, it never cascades.
type Thread struct {
	ID             uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt      time.Time      `json:"created_at"`
	AuthorID       uint           `gorm:"not null;index" json:"author_id"`
	Content        string         `gorm:"type:text;size:200" json:"content"`
	MediaURLs      pq.StringArray `gorm:"type:text[]" json:"media_urls"`
	QuotedThreadID *uint          `gorm:"index" json:"quoted_thread_id"`

	Author       User            `json:"-" gorm:"foreignKey:AuthorID"`
	QuotedThread *Thread         `json:"-" gorm:"foreignKey:QuotedThreadID;constraint:OnDelete:SET NULL"`
	Comments     []Comment       `json:"-" gorm:"foreignKey:ThreadID;constraint:OnDelete:CASCADE"`
	Likes        []Like          `json:"-" gorm:"foreignKey:ThreadID;constraint:OnDelete:CASCADE"`
	Mentions     []ThreadMention `json:"-" gorm:"foreignKey:ThreadID;constraint:OnDelete:CASCADE"`
}

// ThreadMention records one resolved @handle in a thread body.
type ThreadMention struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ThreadID  uint      `gorm:"not null;uniqueIndex:idx_thread_mention" json:"thread_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_thread_mention" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
