//go:build integration

package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventsphere/backend/internal/apperrors"
	"github.com/eventsphere/backend/internal/models"
	"github.com/eventsphere/backend/internal/services"
)

func TestEventCreateRequiresOrganizerOrAdmin(t *testing.T) {
	resetDB(t)
	ctx := context.Background()

	user := seedUser(t, "user@example.com", models.RoleUser)
	organizer := seedUser(t, "organizer@example.com", models.RoleOrganizer)
	admin := seedUser(t, "admin@example.com", models.RoleAdmin)
	category := seedCategory(t, "Music")

	create := services.EventCreate{
		Title:      "Concert",
		EventDate:  time.Date(2026, 10, 1, 20, 0, 0, 0, time.UTC),
		CategoryID: category.ID,
	}

	_, err := svc.Events.Create(ctx, asPrincipal(user), create)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	event, err := svc.Events.Create(ctx, asPrincipal(organizer), create)
	require.NoError(t, err)
	assert.Equal(t, organizer.ID, event.AuthorID)
	assert.Equal(t, category.ID, event.Category.ID)
	assert.Equal(t, organizer.ID, event.Author.ID)

	event, err = svc.Events.Create(ctx, asPrincipal(admin), create)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, event.AuthorID)
}

func TestEventCreateUnknownCategory(t *testing.T) {
	resetDB(t)
	ctx := context.Background()

	organizer := seedUser(t, "organizer@example.com", models.RoleOrganizer)

	_, err := svc.Events.Create(ctx, asPrincipal(organizer), services.EventCreate{
		Title:      "Concert",
		EventDate:  time.Date(2026, 10, 1, 20, 0, 0, 0, time.UTC),
		CategoryID: 9999,
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestEventListFilters(t *testing.T) {
	resetDB(t)
	ctx := context.Background()

	organizerA := seedUser(t, "a@example.com", models.RoleOrganizer)
	organizerB := seedUser(t, "b@example.com", models.RoleOrganizer)
	music := seedCategory(t, "Music")
	sports := seedCategory(t, "Sports")

	mkEvent := func(author *models.User, category *models.Category, date time.Time) *models.Event {
		event, err := svc.Events.Create(ctx, asPrincipal(author), services.EventCreate{
			Title:      "Event",
			EventDate:  date,
			CategoryID: category.ID,
		})
		require.NoError(t, err)
		return event
	}

	early := mkEvent(organizerA, music, time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC))
	middle := mkEvent(organizerA, sports, time.Date(2026, 9, 15, 18, 0, 0, 0, time.UTC))
	late := mkEvent(organizerB, music, time.Date(2026, 10, 1, 18, 0, 0, 0, time.UTC))

	all, total, err := svc.Events.List(ctx, services.EventFilter{}, 0, 100)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, all, 3)
	assert.Equal(t, early.ID, all[0].ID)
	assert.Equal(t, middle.ID, all[1].ID)
	assert.Equal(t, late.ID, all[2].ID)

	byCategory, total, err := svc.Events.List(ctx, services.EventFilter{CategoryID: &music.ID}, 0, 100)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, byCategory, 2)

	byAuthor, total, err := svc.Events.List(ctx, services.EventFilter{AuthorID: &organizerB.ID}, 0, 100)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, byAuthor, 1)
	assert.Equal(t, late.ID, byAuthor[0].ID)

	from := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	inRange, total, err := svc.Events.List(ctx, services.EventFilter{DateFrom: &from, DateTo: &to}, 0, 100)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, inRange, 1)
	assert.Equal(t, middle.ID, inRange[0].ID)
}

func TestEventUpdatePartial(t *testing.T) {
	resetDB(t)
	ctx := context.Background()

	organizer := seedUser(t, "organizer@example.com", models.RoleOrganizer)
	stranger := seedUser(t, "stranger@example.com", models.RoleUser)
	admin := seedUser(t, "admin@example.com", models.RoleAdmin)
	category := seedCategory(t, "Music")
	event := seedEvent(t, organizer, category)

	_, err := svc.Events.Update(ctx, asPrincipal(stranger), event.ID, services.EventUpdate{})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = svc.Events.Update(ctx, asPrincipal(organizer), event.ID, services.EventUpdate{})
	assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)

	title := "Renamed"
	updated, err := svc.Events.Update(ctx, asPrincipal(organizer), event.ID, services.EventUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, event.Description, updated.Description)
	assert.Equal(t, category.ID, updated.CategoryID)

	missing := uint(9999)
	_, err = svc.Events.Update(ctx, asPrincipal(organizer), event.ID, services.EventUpdate{CategoryID: &missing})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	other := seedCategory(t, "Sports")
	updated, err = svc.Events.Update(ctx, asPrincipal(admin), event.ID, services.EventUpdate{CategoryID: &other.ID})
	require.NoError(t, err)
	assert.Equal(t, other.ID, updated.CategoryID)
	assert.Equal(t, "Sports", updated.Category.Name)
}

func TestEventDeleteGuardedByDependents(t *testing.T) {
	resetDB(t)
	ctx := context.Background()

	organizer := seedUser(t, "organizer@example.com", models.RoleOrganizer)
	attendee := seedUser(t, "attendee@example.com", models.RoleUser)
	event := seedEvent(t, organizer, seedCategory(t, "Music"))

	participation, err := svc.Participations.SetStatus(ctx, attendee.ID, event.ID, models.StatusGoing)
	require.NoError(t, err)
	comment, err := svc.Comments.Create(ctx, services.CommentCreate{
		EventID: event.ID, AuthorID: attendee.ID, Text: "looking forward to it",
	})
	require.NoError(t, err)

	err = svc.Events.Delete(ctx, asPrincipal(organizer), event.ID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Contains(t, err.Error(), "1 participations, 0 tickets, 1 comments and 0 reviews")

	require.NoError(t, svc.Participations.Delete(ctx, asPrincipal(attendee), participation.ID))
	require.NoError(t, svc.Comments.Delete(ctx, asPrincipal(attendee), comment.ID))

	require.NoError(t, svc.Events.Delete(ctx, asPrincipal(organizer), event.ID))

	_, err = svc.Events.GetByID(ctx, event.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestEventDeletePermissions(t *testing.T) {
	resetDB(t)
	ctx := context.Background()

	organizer := seedUser(t, "organizer@example.com", models.RoleOrganizer)
	stranger := seedUser(t, "stranger@example.com", models.RoleUser)
	admin := seedUser(t, "admin@example.com", models.RoleAdmin)
	category := seedCategory(t, "Music")
	first := seedEvent(t, organizer, category)
	second := seedEvent(t, organizer, category)

	err := svc.Events.Delete(ctx, asPrincipal(stranger), first.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	require.NoError(t, svc.Events.Delete(ctx, asPrincipal(organizer), first.ID))
	require.NoError(t, svc.Events.Delete(ctx, asPrincipal(admin), second.ID))
}
