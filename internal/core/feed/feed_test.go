package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestFeed() (*Feed, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	return New(5*time.Second, clock), clock
}

func rec(id int64) Record {
	return Record{ID: id, UserID: 9, Title: "title", Kind: "reclamation"}
}

func TestSystemClockTracksWallTime(t *testing.T) {
	t.Parallel()

	var clock Clock = SystemClock()
	require.WithinDuration(t, time.Now(), clock.Now(), time.Second)

	f := New(5*time.Second, nil)
	defer f.Close()
	require.True(t, f.Append(rec(1)))
	require.Equal(t, 1, f.UnreadCount())
}

func TestAppendRejectsDuplicateIDs(t *testing.T) {
	t.Parallel()

	f, _ := newTestFeed()
	require.True(t, f.Append(rec(1)))
	require.True(t, f.Append(rec(2)))
	require.False(t, f.Append(rec(1)))
	require.Equal(t, 2, f.Len())
}

func TestArrivalOrderPreserved(t *testing.T) {
	t.Parallel()

	f, _ := newTestFeed()
	for _, id := range []int64{5, 3, 9, 1} {
		f.Append(rec(id))
	}

	records := f.Records()
	require.Equal(t, []int64{5, 3, 9, 1}, []int64{records[0].ID, records[1].ID, records[2].ID, records[3].ID})
}

func TestUnreadCountTracksMarkAllRead(t *testing.T) {
	t.Parallel()

	f, _ := newTestFeed()
	f.Append(rec(1))
	f.Append(rec(2))
	f.Append(rec(3))
	require.Equal(t, 3, f.UnreadCount())

	flipped := f.MarkAllRead()
	require.Len(t, flipped, 3)
	require.Equal(t, 0, f.UnreadCount())

	// records stay visible until the ttl elapses
	require.Equal(t, 3, f.Len())
}

func TestExpiryRemovesExactlyOnceAfterTTL(t *testing.T) {
	t.Parallel()

	f, clock := newTestFeed()
	f.Append(rec(1))
	f.MarkAllRead()

	// not yet due
	clock.Advance(4 * time.Second)
	require.Empty(t, f.ExpireDue())
	require.Equal(t, 1, f.Len())

	clock.Advance(1 * time.Second)
	require.Equal(t, []int64{1}, f.ExpireDue())
	require.Equal(t, 0, f.Len())

	// a second drain is a no-op
	require.Empty(t, f.ExpireDue())
}

func TestMarkReadTwiceDoesNotDoubleSchedule(t *testing.T) {
	t.Parallel()

	f, clock := newTestFeed()
	f.Append(rec(1))
	require.Len(t, f.MarkAllRead(), 1)
	require.Empty(t, f.MarkAllRead())

	clock.Advance(6 * time.Second)
	require.Equal(t, []int64{1}, f.ExpireDue())
	require.Empty(t, f.ExpireDue())
}

func TestBatchOfThreeDisappearsTogether(t *testing.T) {
	t.Parallel()

	f, clock := newTestFeed()
	f.Append(rec(1))
	f.Append(rec(2))
	f.Append(rec(3))

	require.Len(t, f.MarkAllRead(), 3)
	require.Equal(t, 0, f.UnreadCount())

	clock.Advance(5*time.Second - time.Millisecond)
	require.Empty(t, f.ExpireDue())
	require.Equal(t, 3, f.Len())

	clock.Advance(time.Millisecond)
	require.Len(t, f.ExpireDue(), 3)
	require.Equal(t, 0, f.Len())
}

func TestLateArrivalsScheduleSeparately(t *testing.T) {
	t.Parallel()

	f, clock := newTestFeed()
	f.Append(rec(1))
	f.MarkAllRead()

	clock.Advance(3 * time.Second)
	f.Append(rec(2))
	f.MarkAllRead()

	next, ok := f.NextExpiry()
	require.True(t, ok)
	require.Equal(t, clock.Now().Add(2*time.Second), next)

	clock.Advance(2 * time.Second)
	require.Equal(t, []int64{1}, f.ExpireDue())

	clock.Advance(3 * time.Second)
	require.Equal(t, []int64{2}, f.ExpireDue())
}

func TestCloseAbandonsPendingRemovals(t *testing.T) {
	t.Parallel()

	f, clock := newTestFeed()
	f.Append(rec(1))
	f.MarkAllRead()
	f.Close()

	_, ok := f.NextExpiry()
	require.False(t, ok)

	clock.Advance(time.Minute)
	require.Empty(t, f.ExpireDue())
	require.False(t, f.Append(rec(2)))
}
