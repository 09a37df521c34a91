package services

import (
	"context"
	"log"
	"sync"
	"time"

	"syndiceasy/internal/adapters/persistence/models"
	"syndiceasy/internal/adapters/persistence/repositories"
	"syndiceasy/internal/core/event"
	"syndiceasy/internal/core/feed"
)

const backlogLimit = 100

// NotificationService maintains the live notification channel of each
// user: an ordered, unique-by-id in-memory feed fed by the event bus,
// mirrored to connected websocket clients, with read state and timed
// removal handled by the feed's single expiry scheduler.
type NotificationService struct {
	repo  repositories.NotificationRepository
	bus   event.Bus
	push  Broadcaster
	ttl   time.Duration
	clock feed.Clock

	mu       sync.Mutex
	channels map[uint]*userChannel
}

type userChannel struct {
	userID uint
	feed   *feed.Feed
	unsub  func()
	wake   chan struct{}
	done   chan struct{}
	once   sync.Once
}

// NewNotificationService creates a new notification service
func NewNotificationService(
	repo repositories.NotificationRepository,
	bus event.Bus,
	push Broadcaster,
	ttl time.Duration,
	clock feed.Clock,
) *NotificationService {
	if push == nil {
		push = NopBroadcaster{}
	}
	return &NotificationService{
		repo:     repo,
		bus:      bus,
		push:     push,
		ttl:      ttl,
		clock:    clock,
		channels: make(map[uint]*userChannel),
	}
}

// Open starts the channel for a user: loads the persisted backlog into a
// fresh feed and subscribes to the event bus. Idempotent; a second Open
// for the same user returns the existing channel.
func (s *NotificationService) Open(ctx context.Context, userID uint) error {
	s.mu.Lock()
	if _, exists := s.channels[userID]; exists {
		s.mu.Unlock()
		return nil
	}

	ch := &userChannel{
		userID: userID,
		feed:   feed.New(s.ttl, s.clock),
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	s.channels[userID] = ch
	s.mu.Unlock()

	// 1. One-shot backlog fetch
	backlog, err := s.repo.ListByUser(ctx, userID, backlogLimit)
	if err != nil {
		s.mu.Lock()
		delete(s.channels, userID)
		s.mu.Unlock()
		return err
	}
	for _, n := range backlog {
		ch.feed.Append(toRecord(n))
	}

	// 2. Live subscription
	events, unsub := s.bus.Subscribe()
	ch.unsub = unsub
	go s.run(ch, events)

	log.Printf("🔔 Notification channel opened for user %d (%d backlog)", userID, len(backlog))
	return nil
}

// Close tears the channel down: the subscription is closed and all
// pending removal timers are abandoned with the feed.
func (s *NotificationService) Close(userID uint) {
	s.mu.Lock()
	ch, exists := s.channels[userID]
	if exists {
		delete(s.channels, userID)
	}
	s.mu.Unlock()

	if !exists {
		return
	}
	ch.once.Do(func() { close(ch.done) })
	if ch.unsub != nil {
		ch.unsub()
	}
	ch.feed.Close()
	log.Printf("🔕 Notification channel closed for user %d", userID)
}

// CloseAll tears down every open channel (shutdown path).
func (s *NotificationService) CloseAll() {
	s.mu.Lock()
	ids := make([]uint, 0, len(s.channels))
	for id := range s.channels {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	for _, id := range ids {
		s.Close(id)
	}
}

// Notify persists a notification and publishes it on the bus. All open
// channels see it; only the target user's channel keeps it.
func (s *NotificationService) Notify(ctx context.Context, userID uint, title, detail, kind string) error {
	n := &models.Notification{
		UserID: userID,
		Title:  title,
		Detail: detail,
		Kind:   kind,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}

	s.bus.Publish(event.Event{
		Type:      event.TypeNotification,
		UserID:    userID,
		Payload:   toRecord(n),
		Timestamp: time.Now(),
	})
	return nil
}

// NotifyMany fans one notification out to several users.
func (s *NotificationService) NotifyMany(ctx context.Context, userIDs []uint, title, detail, kind string) {
	for _, id := range userIDs {
		if err := s.Notify(ctx, id, title, detail, kind); err != nil {
			log.Printf("❌ Failed to notify user %d: %v", id, err)
		}
	}
}

// Records returns the user's visible notification list in arrival order.
func (s *NotificationService) Records(userID uint) []feed.Record {
	if ch := s.channel(userID); ch != nil {
		return ch.feed.Records()
	}
	return nil
}

// UnreadCount returns the badge value: open channels answer from memory,
// otherwise the repository is consulted.
func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int, error) {
	if ch := s.channel(userID); ch != nil {
		return ch.feed.UnreadCount(), nil
	}
	count, err := s.repo.CountUnreadByUser(ctx, userID)
	return int(count), err
}

// MarkAllRead handles the menu-dismissal batch: every unread record is
// marked read locally and ONE user-scoped request is written through to
// the store. Individual ids are not sent; see the repository contract.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) error {
	if ch := s.channel(userID); ch != nil {
		if flipped := ch.feed.MarkAllRead(); len(flipped) > 0 {
			// removal times changed, nudge the scheduler
			select {
			case ch.wake <- struct{}{}:
			default:
			}
		}
	}
	return s.repo.MarkAllReadByUser(ctx, userID)
}

func (s *NotificationService) channel(userID uint) *userChannel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.channels[userID]
}

// run is the channel's single scheduler loop: it appends bus events for
// this user and drains the feed's expiry queue when removals come due.
func (s *NotificationService) run(ch *userChannel, events <-chan event.Event) {
	for {
		var timerC <-chan time.Time
		if at, ok := ch.feed.NextExpiry(); ok {
			timerC = time.After(time.Until(at))
		}

		select {
		case e, ok := <-events:
			if !ok {
				return
			}
			if e.Type != event.TypeNotification || e.UserID != ch.userID {
				continue
			}
			rec, valid := e.Payload.(feed.Record)
			if !valid {
				continue
			}
			if ch.feed.Append(rec) {
				s.push.PushToUser(ch.userID, "notification", rec)
			}
		case <-timerC:
			if removed := ch.feed.ExpireDue(); len(removed) > 0 {
				s.push.PushToUser(ch.userID, "notification_removed", removed)
			}
		case <-ch.wake:
			// re-arm the timer against the new expiry queue head
		case <-ch.done:
			return
		}
	}
}

func toRecord(n *models.Notification) feed.Record {
	return feed.Record{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Detail:    n.Detail,
		Kind:      n.Kind,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
