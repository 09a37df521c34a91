package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	ch1, unsub1 := bus.Subscribe()
	ch2, unsub2 := bus.Subscribe()
	defer unsub1()
	defer unsub2()

	bus.Publish(Event{ID: "e1", Type: TypeNotification, UserID: 3})

	for _, ch := range []<-chan Event{ch1, ch2} {
		select {
		case e := <-ch:
			require.Equal(t, "e1", e.ID)
			require.Equal(t, uint(3), e.UserID)
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive event")
		}
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	ch, unsub := bus.Subscribe()
	unsub()

	_, open := <-ch
	require.False(t, open)

	// publishing after unsubscribe must not panic
	bus.Publish(Event{ID: "e2", Type: TypeNotification})
}
