package models

import "time"

type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleOrganizer UserRole = "organizer"
	RoleAdmin     UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleUser, RoleOrganizer, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:150;not null" json:"name"`
	Email        string    `gorm:"size:150;uniqueIndex;not null" json:"email"`
	Bio          string    `gorm:"size:1000" json:"bio"`
	PasswordHash string    `gorm:"type:text;not null" json:"-"`
	Role         UserRole  `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Events         []Event         `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Participations []Participation `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Comments       []Comment       `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Reviews        []Review        `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Tickets        []Ticket        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Following      []Subscription  `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE" json:"-"`
	Followers      []Subscription  `gorm:"foreignKey:FolloweeID;constraint:OnDelete:CASCADE" json:"-"`
}
