package models

import "time"

// Review is a user's rating of an event, one per author per event.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EventID   uint      `gorm:"not null;uniqueIndex:idx_reviews_author_event;index" json:"event_id"`
	AuthorID  uint      `gorm:"not null;uniqueIndex:idx_reviews_author_event" json:"author_id"`
	Comment   string    `gorm:"size:1000;not null" json:"comment"`
	Rating    int       `gorm:"not null;check:chk_reviews_rating,rating >= 1 AND rating <= 5" json:"rating"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}
