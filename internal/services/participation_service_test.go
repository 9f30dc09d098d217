//go:build integration

package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventsphere/backend/internal/apperrors"
	"github.com/eventsphere/backend/internal/models"
)

func TestSetStatusKeepsOneRowPerUserAndEvent(t *testing.T) {
	resetDB(t)
	ctx := context.Background()

	organizer := seedUser(t, "organizer@example.com", models.RoleOrganizer)
	attendee := seedUser(t, "attendee@example.com", models.RoleUser)
	category := seedCategory(t, "Music")
	event := seedEvent(t, organizer, category)

	first, err := svc.Participations.SetStatus(ctx, attendee.ID, event.ID, models.StatusGoing)
	require.NoError(t, err)
	assert.Equal(t, models.StatusGoing, first.Status)

	second, err := svc.Participations.SetStatus(ctx, attendee.ID, event.ID, models.StatusNotGoing)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, models.StatusNotGoing, second.Status)

	var count int64
	require.NoError(t, testDB.Model(&models.Participation{}).
		Where("user_id = ? AND event_id = ?", attendee.ID, event.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSetStatusRejectsUnknownEventAndStatus(t *testing.T) {
	resetDB(t)
	ctx := context.Background()

	attendee := seedUser(t, "attendee@example.com", models.RoleUser)

	_, err := svc.Participations.SetStatus(ctx, attendee.ID, 9999, models.StatusGoing)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	organizer := seedUser(t, "organizer@example.com", models.RoleOrganizer)
	event := seedEvent(t, organizer, seedCategory(t, "Music"))

	_, err = svc.Participations.SetStatus(ctx, attendee.ID, event.ID, models.ParticipationStatus("maybe"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)
}

func TestListForEventFiltersByStatus(t *testing.T) {
	resetDB(t)
	ctx := context.Background()

	organizer := seedUser(t, "organizer@example.com", models.RoleOrganizer)
	alice := seedUser(t, "alice@example.com", models.RoleUser)
	bob := seedUser(t, "bob@example.com", models.RoleUser)
	event := seedEvent(t, organizer, seedCategory(t, "Music"))

	_, err := svc.Participations.SetStatus(ctx, alice.ID, event.ID, models.StatusGoing)
	require.NoError(t, err)
	_, err = svc.Participations.SetStatus(ctx, bob.ID, event.ID, models.StatusInterested)
	require.NoError(t, err)

	all, total, err := svc.Participations.ListForEvent(ctx, event.ID, nil, 0, 100)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, all, 2)

	going := models.StatusGoing
	filtered, total, err := svc.Participations.ListForEvent(ctx, event.ID, &going, 0, 100)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, filtered, 1)
	assert.Equal(t, alice.ID, filtered[0].UserID)
	require.NotNil(t, filtered[0].User)
	assert.Equal(t, alice.ID, filtered[0].User.ID)

	_, _, err = svc.Participations.ListForEvent(ctx, 9999, nil, 0, 100)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListForUserReturnsEvents(t *testing.T) {
	resetDB(t)
	ctx := context.Background()

	organizer := seedUser(t, "organizer@example.com", models.RoleOrganizer)
	attendee := seedUser(t, "attendee@example.com", models.RoleUser)
	category := seedCategory(t, "Music")
	first := seedEvent(t, organizer, category)
	second := seedEvent(t, organizer, category)

	_, err := svc.Participations.SetStatus(ctx, attendee.ID, first.ID, models.StatusGoing)
	require.NoError(t, err)
	_, err = svc.Participations.SetStatus(ctx, attendee.ID, second.ID, models.StatusInterested)
	require.NoError(t, err)

	participations, total, err := svc.Participations.ListForUser(ctx, attendee.ID, 0, 100)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, participations, 2)
	for _, p := range participations {
		require.NotNil(t, p.Event)
		assert.NotEmpty(t, p.Event.Title)
	}
}

func TestParticipationDeletePermissions(t *testing.T) {
	resetDB(t)
	ctx := context.Background()

	organizer := seedUser(t, "organizer@example.com", models.RoleOrganizer)
	attendee := seedUser(t, "attendee@example.com", models.RoleUser)
	stranger := seedUser(t, "stranger@example.com", models.RoleUser)
	admin := seedUser(t, "admin@example.com", models.RoleAdmin)
	event := seedEvent(t, organizer, seedCategory(t, "Music"))

	participation, err := svc.Participations.SetStatus(ctx, attendee.ID, event.ID, models.StatusGoing)
	require.NoError(t, err)

	err = svc.Participations.Delete(ctx, asPrincipal(stranger), participation.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	err = svc.Participations.Delete(ctx, asPrincipal(attendee), participation.ID)
	require.NoError(t, err)

	err = svc.Participations.Delete(ctx, asPrincipal(attendee), participation.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	participation, err = svc.Participations.SetStatus(ctx, attendee.ID, event.ID, models.StatusGoing)
	require.NoError(t, err)

	err = svc.Participations.Delete(ctx, asPrincipal(admin), participation.ID)
	require.NoError(t, err)
}
