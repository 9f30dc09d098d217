package services

import "gorm.io/gorm"

// Services bundles every domain service over one shared connection pool.
type Services struct {
	Users          *UserService
	Events         *EventService
	Categories     *CategoryService
	Participations *ParticipationService
	Subscriptions  *SubscriptionService
	Comments       *CommentService
	Reviews        *ReviewService
	Tickets        *TicketService
}

// New wires the service layer. ticketSecret keys admission code signatures.
func New(db *gorm.DB, ticketSecret string) *Services {
	comments := NewCommentService(db)
	return &Services{
		Users:          NewUserService(db, comments),
		Events:         NewEventService(db),
		Categories:     NewCategoryService(db),
		Participations: NewParticipationService(db),
		Subscriptions:  NewSubscriptionService(db),
		Comments:       comments,
		Reviews:        NewReviewService(db),
		Tickets:        NewTicketService(db, ticketSecret),
	}
}
