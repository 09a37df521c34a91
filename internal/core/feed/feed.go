package feed

import (
	"container/heap"
	"sync"
	"time"
)

// DefaultReadTTL is how long a record stays visible after being read.
const DefaultReadTTL = 5 * time.Second

// Record is one notification in a user's feed.
type Record struct {
	ID        int64     `json:"id"`
	UserID    uint      `json:"user_id"`
	Title     string    `json:"title"`
	Detail    string    `json:"detail"`
	Kind      string    `json:"kind"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// Clock abstracts time for tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall clock.
func SystemClock() Clock { return systemClock{} }

type expiry struct {
	at time.Time
	id int64
}

// expiryQueue is a min-heap of (fire-time, record id) pairs. One queue per
// feed replaces per-record timers, so pending removals can be inspected
// and abandoned in one place.
type expiryQueue []expiry

func (q expiryQueue) Len() int            { return len(q) }
func (q expiryQueue) Less(i, j int) bool  { return q[i].at.Before(q[j].at) }
func (q expiryQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *expiryQueue) Push(x interface{}) { *q = append(*q, x.(expiry)) }
func (q *expiryQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// Feed owns the ordered, unique-by-id notification list of a single user.
// Insertion order is arrival order and is never changed by read state.
type Feed struct {
	mu        sync.Mutex
	ttl       time.Duration
	clock     Clock
	records   []Record
	index     map[int64]int
	scheduled map[int64]bool
	queue     expiryQueue
	closed    bool
}

// New creates an empty feed. A zero ttl falls back to DefaultReadTTL and a
// nil clock to the system clock.
func New(ttl time.Duration, clock Clock) *Feed {
	if ttl <= 0 {
		ttl = DefaultReadTTL
	}
	if clock == nil {
		clock = SystemClock()
	}
	return &Feed{
		ttl:       ttl,
		clock:     clock,
		index:     make(map[int64]int),
		scheduled: make(map[int64]bool),
	}
}

// Append adds a record at the end of the list. Records whose id is already
// present are rejected; returns whether the record was added.
func (f *Feed) Append(rec Record) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return false
	}
	if _, exists := f.index[rec.ID]; exists {
		return false
	}
	f.index[rec.ID] = len(f.records)
	f.records = append(f.records, rec)
	return true
}

// Records returns the visible list in arrival order.
func (f *Feed) Records() []Record {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]Record, len(f.records))
	copy(out, f.records)
	return out
}

// Len returns the number of visible records.
func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

// UnreadCount counts records with IsRead=false.
func (f *Feed) UnreadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := 0
	for _, rec := range f.records {
		if !rec.IsRead {
			count++
		}
	}
	return count
}

// MarkAllRead flips every unread record to read and schedules its removal
// at now+ttl. A record with a pending removal is never scheduled twice.
// Returns the ids that transitioned.
func (f *Feed) MarkAllRead() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}

	fireAt := f.clock.Now().Add(f.ttl)
	var flipped []int64
	for i := range f.records {
		if f.records[i].IsRead {
			continue
		}
		f.records[i].IsRead = true
		flipped = append(flipped, f.records[i].ID)
		if !f.scheduled[f.records[i].ID] {
			f.scheduled[f.records[i].ID] = true
			heap.Push(&f.queue, expiry{at: fireAt, id: f.records[i].ID})
		}
	}
	return flipped
}

// NextExpiry returns the earliest pending removal time, if any.
func (f *Feed) NextExpiry() (time.Time, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return time.Time{}, false
	}
	return f.queue[0].at, true
}

// ExpireDue removes every record whose removal time has passed and returns
// their ids. Each record is removed at most once even if it was somehow
// queued twice.
func (f *Feed) ExpireDue() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}

	now := f.clock.Now()
	var removed []int64
	for len(f.queue) > 0 && !f.queue[0].at.After(now) {
		entry := heap.Pop(&f.queue).(expiry)
		if !f.scheduled[entry.id] {
			continue
		}
		delete(f.scheduled, entry.id)
		if f.removeLocked(entry.id) {
			removed = append(removed, entry.id)
		}
	}
	return removed
}

// Close abandons all pending removals and freezes the feed. Used on
// session teardown.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true
	f.queue = nil
	f.scheduled = make(map[int64]bool)
}

func (f *Feed) removeLocked(id int64) bool {
	pos, ok := f.index[id]
	if !ok {
		return false
	}
	f.records = append(f.records[:pos], f.records[pos+1:]...)
	delete(f.index, id)
	for i := pos; i < len(f.records); i++ {
		f.index[f.records[i].ID] = i
	}
	return true
}
