package models

import "time"

// MaxCommentDepth is the deepest allowed reply level. Top-level comments
// sit at depth 0, so threads hold at most five levels.
const MaxCommentDepth = 4

// Comment is a threaded event comment. ReplyCount denormalizes the number
// of direct children and is maintained inside the same transaction as
// every insert or delete that changes it.
type Comment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	EventID         uint      `gorm:"not null;index" json:"event_id"`
	AuthorID        uint      `gorm:"not null;index" json:"author_id"`
	ParentCommentID *uint     `gorm:"index" json:"parent_comment_id,omitempty"`
	Text            string    `gorm:"size:1000;not null" json:"text"`
	Depth           int       `gorm:"not null;default:0" json:"depth"`
	ReplyCount      int       `gorm:"not null;default:0" json:"reply_count"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Author  *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Replies []Comment `gorm:"foreignKey:ParentCommentID;constraint:OnDelete:CASCADE" json:"replies,omitempty"`
}
