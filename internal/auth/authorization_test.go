package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eventsphere/backend/internal/auth"
	"github.com/eventsphere/backend/internal/models"
)

var (
	admin     = auth.Principal{ID: 1, Role: models.RoleAdmin}
	organizer = auth.Principal{ID: 2, Role: models.RoleOrganizer}
	user      = auth.Principal{ID: 3, Role: models.RoleUser}
)

func TestCanModifyResource(t *testing.T) {
	assert.True(t, auth.CanModifyResource(user, user.ID))
	assert.False(t, auth.CanModifyResource(user, organizer.ID))
	assert.False(t, auth.CanModifyResource(organizer, user.ID))
	assert.True(t, auth.CanModifyResource(admin, user.ID))
}

func TestCanCreateEvent(t *testing.T) {
	assert.False(t, auth.CanCreateEvent(user))
	assert.True(t, auth.CanCreateEvent(organizer))
	assert.True(t, auth.CanCreateEvent(admin))
}

func TestCanAccessTicket(t *testing.T) {
	holderID := user.ID
	eventAuthorID := organizer.ID

	assert.True(t, auth.CanAccessTicket(user, holderID, eventAuthorID))
	assert.True(t, auth.CanAccessTicket(organizer, holderID, eventAuthorID))
	assert.True(t, auth.CanAccessTicket(admin, holderID, eventAuthorID))
	assert.False(t, auth.CanAccessTicket(auth.Principal{ID: 9, Role: models.RoleUser}, holderID, eventAuthorID))

	// Organizing some event is not enough, it has to be the ticket's event.
	assert.False(t, auth.CanAccessTicket(auth.Principal{ID: 8, Role: models.RoleOrganizer}, holderID, eventAuthorID))
}

func TestCommentPermissions(t *testing.T) {
	authorID := user.ID

	assert.True(t, auth.CanUpdateComment(user, authorID))
	assert.False(t, auth.CanUpdateComment(organizer, authorID))
	// Admins moderate by deleting, never by editing someone's words.
	assert.False(t, auth.CanUpdateComment(admin, authorID))

	assert.True(t, auth.CanDeleteComment(user, authorID))
	assert.False(t, auth.CanDeleteComment(organizer, authorID))
	assert.True(t, auth.CanDeleteComment(admin, authorID))
}

func TestCanSetAccountControls(t *testing.T) {
	assert.False(t, auth.CanSetAccountControls(user))
	assert.False(t, auth.CanSetAccountControls(organizer))
	assert.True(t, auth.CanSetAccountControls(admin))
}
