package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"syndiceasy/internal/adapters/persistence/models"
	"syndiceasy/internal/core/event"
	"syndiceasy/internal/core/feed"
)

type fakeNotificationRepo struct {
	mu          sync.Mutex
	nextID      int64
	rows        []*models.Notification
	markedUsers []uint
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	n.ID = r.nextID
	n.CreatedAt = time.Now()
	clone := *n
	r.rows = append(r.rows, &clone)
	return nil
}

func (r *fakeNotificationRepo) ListByUser(_ context.Context, userID uint, limit int) ([]*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Notification
	for _, n := range r.rows {
		if n.UserID == userID {
			out = append(out, n)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkAllReadByUser(_ context.Context, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.markedUsers = append(r.markedUsers, userID)
	for _, n := range r.rows {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) CountUnreadByUser(_ context.Context, userID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, n := range r.rows {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) DeleteReadOlderThan(context.Context, time.Time) error {
	return nil
}

type capturingBroadcaster struct {
	mu     sync.Mutex
	pushes []string
}

func (b *capturingBroadcaster) PushToUser(_ uint, eventName string, _ interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pushes = append(b.pushes, eventName)
}

func (b *capturingBroadcaster) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pushes)
}

func newTestNotificationService(repo *fakeNotificationRepo, push Broadcaster) (*NotificationService, *event.InMemoryBus) {
	bus := event.NewBus()
	svc := NewNotificationService(repo, bus, push, feed.DefaultReadTTL, feed.SystemClock())
	return svc, bus
}

func TestNotificationServiceBacklogLoadedOnOpen(t *testing.T) {
	t.Parallel()

	repo := &fakeNotificationRepo{}
	svc, _ := newTestNotificationService(repo, nil)
	defer svc.CloseAll()

	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &models.Notification{UserID: 7, Title: "Réclamation traitée", Kind: models.NotifKindReclamation}))
	require.NoError(t, repo.Create(ctx, &models.Notification{UserID: 7, Title: "Nouvel événement", Kind: models.NotifKindEvent}))
	require.NoError(t, repo.Create(ctx, &models.Notification{UserID: 8, Title: "Autre résident", Kind: models.NotifKindEvent}))

	require.NoError(t, svc.Open(ctx, 7))

	records := svc.Records(7)
	require.Len(t, records, 2)
	require.Equal(t, "Réclamation traitée", records[0].Title)
	require.Equal(t, "Nouvel événement", records[1].Title)

	unread, err := svc.UnreadCount(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, 2, unread)
}

func TestNotificationServiceOpenIsIdempotent(t *testing.T) {
	t.Parallel()

	repo := &fakeNotificationRepo{}
	svc, _ := newTestNotificationService(repo, nil)
	defer svc.CloseAll()

	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &models.Notification{UserID: 3, Title: "Solde mis à jour", Kind: models.NotifKindCaisse}))

	require.NoError(t, svc.Open(ctx, 3))
	require.NoError(t, svc.Open(ctx, 3))

	require.Len(t, svc.Records(3), 1)
}

func TestNotificationServiceLiveDelivery(t *testing.T) {
	t.Parallel()

	repo := &fakeNotificationRepo{}
	push := &capturingBroadcaster{}
	svc, _ := newTestNotificationService(repo, push)
	defer svc.CloseAll()

	ctx := context.Background()
	require.NoError(t, svc.Open(ctx, 5))
	require.NoError(t, svc.Open(ctx, 6))

	require.NoError(t, svc.Notify(ctx, 5, "Nouvelle réclamation", "Fuite d'eau au 3ème", models.NotifKindReclamation))

	require.Eventually(t, func() bool {
		return len(svc.Records(5)) == 1
	}, time.Second, 10*time.Millisecond)

	// the other user's channel must not have kept it
	require.Empty(t, svc.Records(6))
	require.Equal(t, 1, push.count())
}

func TestNotificationServiceMarkAllRead(t *testing.T) {
	t.Parallel()

	repo := &fakeNotificationRepo{}
	svc, _ := newTestNotificationService(repo, nil)
	defer svc.CloseAll()

	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &models.Notification{UserID: 9, Title: "a", Kind: models.NotifKindSystem}))
	require.NoError(t, repo.Create(ctx, &models.Notification{UserID: 9, Title: "b", Kind: models.NotifKindSystem}))
	require.NoError(t, svc.Open(ctx, 9))

	require.NoError(t, svc.MarkAllRead(ctx, 9))

	unread, err := svc.UnreadCount(ctx, 9)
	require.NoError(t, err)
	require.Zero(t, unread)

	// one batched write-through, not one per record
	require.Equal(t, []uint{9}, repo.markedUsers)
}

func TestNotificationServiceUnreadCountWithoutChannel(t *testing.T) {
	t.Parallel()

	repo := &fakeNotificationRepo{}
	svc, _ := newTestNotificationService(repo, nil)

	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &models.Notification{UserID: 2, Title: "x", Kind: models.NotifKindSystem}))

	unread, err := svc.UnreadCount(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, 1, unread)
}

func TestNotificationServiceCloseStopsDelivery(t *testing.T) {
	t.Parallel()

	repo := &fakeNotificationRepo{}
	svc, _ := newTestNotificationService(repo, nil)

	ctx := context.Background()
	require.NoError(t, svc.Open(ctx, 4))
	svc.Close(4)

	require.NoError(t, svc.Notify(ctx, 4, "après fermeture", "", models.NotifKindSystem))
	require.Nil(t, svc.Records(4))
}
