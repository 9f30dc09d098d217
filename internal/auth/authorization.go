package auth

import "github.com/eventsphere/backend/internal/models"

// Principal is the authenticated caller as resolved by the auth middleware.
type Principal struct {
	ID   uint
	Role models.UserRole
}

func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

// CanModifyResource allows the resource owner and admins.
func CanModifyResource(p Principal, ownerID uint) bool {
	return p.ID == ownerID || p.IsAdmin()
}

// CanCreateEvent allows organizers and admins.
func CanCreateEvent(p Principal) bool {
	return p.Role == models.RoleOrganizer || p.Role == models.RoleAdmin
}

// CanAccessTicket allows the ticket holder, the author of the ticket's
// event, and admins.
func CanAccessTicket(p Principal, holderID, eventAuthorID uint) bool {
	return p.ID == holderID || p.ID == eventAuthorID || p.IsAdmin()
}

// CanUpdateComment allows the author only. Admins may remove comments but
// never rewrite them.
func CanUpdateComment(p Principal, authorID uint) bool {
	return p.ID == authorID
}

// CanDeleteComment allows the author and admins.
func CanDeleteComment(p Principal, authorID uint) bool {
	return p.ID == authorID || p.IsAdmin()
}

// CanSetAccountControls gates changes to role and active status.
func CanSetAccountControls(p Principal) bool {
	return p.IsAdmin()
}
