package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"syndiceasy/internal/adapters/persistence/models"
	"syndiceasy/internal/adapters/persistence/repositories"
	"syndiceasy/internal/core/domain"

	"gorm.io/gorm"
)

// Event service errors
var (
	ErrEventNotFound   = errors.New("event not found")
	ErrInvalidEventEnd = errors.New("event ends before it starts")
)

// EventService handles calendar event business logic
type EventService struct {
	eventRepo     repositories.EventRepository
	buildingRepo  repositories.BuildingRepository
	userRepo      repositories.UserRepository
	notifications *NotificationService
}

// NewEventService creates a new event service
func NewEventService(
	eventRepo repositories.EventRepository,
	buildingRepo repositories.BuildingRepository,
	userRepo repositories.UserRepository,
	notifications *NotificationService,
) *EventService {
	return &EventService{
		eventRepo:     eventRepo,
		buildingRepo:  buildingRepo,
		userRepo:      userRepo,
		notifications: notifications,
	}
}

// CreateEventInput represents create event input
type CreateEventInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	BuildingID  *uint      `json:"building_id"`
	StartsAt    time.Time  `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
}

// UpdateEventInput represents update event input
type UpdateEventInput struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
}

// ListEvents lists events within a time window. A zero window defaults
// to the current month.
func (s *EventService) ListEvents(ctx context.Context, from, to time.Time) ([]*models.Event, error) {
	if from.IsZero() || to.IsZero() {
		now := time.Now()
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		to = from.AddDate(0, 1, 0)
	}
	return s.eventRepo.ListBetween(ctx, from, to)
}

const planningHorizon = 20

// Planning returns the next scheduled events, the staff schedule view.
func (s *EventService) Planning(ctx context.Context) ([]*models.Event, error) {
	return s.eventRepo.ListUpcoming(ctx, planningHorizon)
}

// GetEvent retrieves an event by ID
func (s *EventService) GetEvent(ctx context.Context, id uint) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

// CreateEvent creates an event and notifies the audience: residents of
// the building when one is set, every resident otherwise.
func (s *EventService) CreateEvent(ctx context.Context, creatorID uint, input *CreateEventInput) (*models.Event, error) {
	// 1. Validate window
	if input.EndsAt != nil && input.EndsAt.Before(input.StartsAt) {
		return nil, ErrInvalidEventEnd
	}

	// 2. Optional building scope
	if input.BuildingID != nil {
		if _, err := s.buildingRepo.GetByID(ctx, *input.BuildingID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrBuildingNotFound
			}
			return nil, err
		}
	}

	// 3. Create
	event := &models.Event{
		Title:       input.Title,
		Description: input.Description,
		BuildingID:  input.BuildingID,
		StartsAt:    input.StartsAt,
		EndsAt:      input.EndsAt,
		CreatedBy:   creatorID,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	// 4. Fan out to the audience
	audience, err := s.audienceFor(ctx, event)
	if err != nil {
		log.Printf("⚠️ Failed to resolve audience for event %d: %v", event.ID, err)
	} else {
		s.notifications.NotifyMany(ctx, audience,
			"Nouvel événement",
			fmt.Sprintf("« %s » le %s", event.Title, event.StartsAt.Format("02/01/2006 à 15:04")),
			models.NotifKindEvent,
		)
	}

	log.Printf("📅 Event created: %s (%s)", event.Title, event.StartsAt.Format(time.RFC3339))
	return event, nil
}

// UpdateEvent updates an event
func (s *EventService) UpdateEvent(ctx context.Context, id uint, input *UpdateEventInput) (*models.Event, error) {
	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		event.Title = *input.Title
	}
	if input.Description != nil {
		event.Description = *input.Description
	}
	if input.StartsAt != nil {
		event.StartsAt = *input.StartsAt
	}
	if input.EndsAt != nil {
		event.EndsAt = input.EndsAt
	}
	if event.EndsAt != nil && event.EndsAt.Before(event.StartsAt) {
		return nil, ErrInvalidEventEnd
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// DeleteEvent soft-deletes an event
func (s *EventService) DeleteEvent(ctx context.Context, id uint) error {
	if _, err := s.GetEvent(ctx, id); err != nil {
		return err
	}
	return s.eventRepo.Delete(ctx, id)
}

// SendReminders notifies the audience of events starting within the
// next 24 hours. Invoked by the cron scheduler.
func (s *EventService) SendReminders(ctx context.Context) error {
	now := time.Now()
	events, err := s.eventRepo.ListBetween(ctx, now, now.Add(24*time.Hour))
	if err != nil {
		return err
	}

	for _, event := range events {
		audience, err := s.audienceFor(ctx, event)
		if err != nil {
			log.Printf("⚠️ Failed to resolve audience for event %d: %v", event.ID, err)
			continue
		}
		s.notifications.NotifyMany(ctx, audience,
			"Rappel d'événement",
			fmt.Sprintf("« %s » commence le %s", event.Title, event.StartsAt.Format("02/01/2006 à 15:04")),
			models.NotifKindEvent,
		)
	}

	if len(events) > 0 {
		log.Printf("📅 Sent reminders for %d upcoming events", len(events))
	}
	return nil
}

// audienceFor resolves the resident user ids an event concerns.
func (s *EventService) audienceFor(ctx context.Context, event *models.Event) ([]uint, error) {
	if event.BuildingID != nil {
		apartments, err := s.buildingRepo.ListApartments(ctx, *event.BuildingID)
		if err != nil {
			return nil, err
		}
		var ids []uint
		for _, apartment := range apartments {
			if apartment.ResidentID != nil {
				ids = append(ids, *apartment.ResidentID)
			}
		}
		return ids, nil
	}

	residents, err := s.userRepo.ListByRole(ctx, string(domain.RoleResident))
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(residents))
	for _, r := range residents {
		ids = append(ids, r.ID)
	}
	return ids, nil
}
