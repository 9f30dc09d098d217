package models

import "time"

// Ticket records that a user holds admission to an event, one per user per
// event. Price is kept for record keeping only; no payment settlement
// happens here.
type Ticket struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_tickets_user_event" json:"user_id"`
	EventID     uint      `gorm:"not null;uniqueIndex:idx_tickets_user_event;index" json:"event_id"`
	Price       float64   `gorm:"type:decimal(10,2);not null;default:0" json:"price"`
	PurchasedAt time.Time `gorm:"autoCreateTime" json:"purchased_at"`

	User  *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}
