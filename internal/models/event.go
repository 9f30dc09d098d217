package models

import "time"

type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	EventDate   time.Time `gorm:"not null;index" json:"event_date"`
	CategoryID  uint      `gorm:"not null;index" json:"category_id"`
	AuthorID    uint      `gorm:"not null;index" json:"author_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Category Category `gorm:"foreignKey:CategoryID" json:"category"`
	Author   User     `gorm:"foreignKey:AuthorID" json:"author"`

	Participations []Participation `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
	Comments       []Comment       `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
	Reviews        []Review        `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
	Tickets        []Ticket        `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
}
