package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"syndiceasy/internal/adapters/persistence/models"
	"syndiceasy/internal/core/event"
	"syndiceasy/internal/core/feed"
)

func newTestEventService() (*EventService, *fakeEventRepo) {
	eventRepo := &fakeEventRepo{}
	notifications := NewNotificationService(
		&fakeNotificationRepo{}, event.NewBus(), nil, feed.DefaultReadTTL, feed.SystemClock())
	svc := NewEventService(eventRepo, newFakeBuildingRepo(), &fakeUserRepo{}, notifications)
	return svc, eventRepo
}

func TestPlanningListsUpcomingEvents(t *testing.T) {
	t.Parallel()

	svc, eventRepo := newTestEventService()
	starts := time.Now().Add(48 * time.Hour)
	require.NoError(t, eventRepo.Create(context.Background(), &models.Event{
		ID: 1, Title: "Assemblée générale", StartsAt: starts, CreatedBy: 3,
	}))

	events, err := svc.Planning(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, "Assemblée générale", events[0].Title)
}

func TestCreateEventRejectsEndBeforeStart(t *testing.T) {
	t.Parallel()

	svc, _ := newTestEventService()
	starts := time.Now().Add(24 * time.Hour)
	ends := starts.Add(-time.Hour)

	_, err := svc.CreateEvent(context.Background(), 3, &CreateEventInput{
		Title:    "Réunion",
		StartsAt: starts,
		EndsAt:   &ends,
	})
	require.ErrorIs(t, err, ErrInvalidEventEnd)
}
