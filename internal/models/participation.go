package models

import "time"

type ParticipationStatus string

const (
	StatusGoing      ParticipationStatus = "going"
	StatusInterested ParticipationStatus = "interested"
	StatusNotGoing   ParticipationStatus = "not_going"
)

func (s ParticipationStatus) Valid() bool {
	switch s {
	case StatusGoing, StatusInterested, StatusNotGoing:
		return true
	}
	return false
}

// Participation is one user's attendance status for one event. The pair is
// unique; repeated status changes rewrite the same row.
type Participation struct {
	ID       uint                `gorm:"primaryKey" json:"id"`
	UserID   uint                `gorm:"not null;uniqueIndex:idx_participations_user_event" json:"user_id"`
	EventID  uint                `gorm:"not null;uniqueIndex:idx_participations_user_event;index" json:"event_id"`
	Status   ParticipationStatus `gorm:"type:varchar(20);not null;default:'interested'" json:"status"`
	JoinedAt time.Time           `gorm:"autoCreateTime" json:"joined_at"`

	User  *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}
