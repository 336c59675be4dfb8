package services

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubConn struct {
	events chan ListingEvent
}

func (c *stubConn) WriteJSON(v interface{}) error {
	if ev, ok := v.(ListingEvent); ok {
		c.events <- ev
	}
	return nil
}

func (c *stubConn) Close() error { return nil }

func TestFanOutReachesRegisteredConns(t *testing.T) {
	conn := &stubConn{events: make(chan ListingEvent, 1)}
	RegisterUpdatesConn("test-conn", conn)
	defer UnregisterUpdatesConn("test-conn")

	fanOut(ListingEvent{Type: "listing_changed", Kind: "sejour", ListingID: 3, Action: "updated"})

	select {
	case ev := <-conn.events:
		assert.Equal(t, "sejour", ev.Kind)
		assert.EqualValues(t, 3, ev.ListingID)
		assert.Equal(t, "updated", ev.Action)
	case <-time.After(time.Second):
		t.Fatal("event never delivered")
	}
}

func TestUnregisterStopsDelivery(t *testing.T) {
	conn := &stubConn{events: make(chan ListingEvent, 1)}
	RegisterUpdatesConn("gone", conn)
	UnregisterUpdatesConn("gone")

	fanOut(ListingEvent{Kind: "artisan", Action: "deleted"})

	select {
	case <-conn.events:
		t.Fatal("unregistered connection still received an event")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRegisterReplacesSameID(t *testing.T) {
	old := &stubConn{events: make(chan ListingEvent, 1)}
	fresh := &stubConn{events: make(chan ListingEvent, 1)}
	RegisterUpdatesConn("dup", old)
	RegisterUpdatesConn("dup", fresh)
	defer UnregisterUpdatesConn("dup")

	fanOut(ListingEvent{Kind: "caravane", Action: "created"})

	select {
	case ev := <-fresh.events:
		require.Equal(t, "caravane", ev.Kind)
	case <-time.After(time.Second):
		t.Fatal("replacement connection never received the event")
	}
	select {
	case <-old.events:
		t.Fatal("replaced connection still received an event")
	case <-time.After(50 * time.Millisecond):
	}
}

// overlapConn fails the test if WriteJSON is ever entered by two
// goroutines at once, the situation gorilla connections forbid.
type overlapConn struct {
	t        *testing.T
	inFlight int32
	writes   int32
}

func (c *overlapConn) WriteJSON(v interface{}) error {
	if atomic.AddInt32(&c.inFlight, 1) > 1 {
		c.t.Error("concurrent WriteJSON on the same connection")
	}
	time.Sleep(5 * time.Millisecond)
	atomic.AddInt32(&c.inFlight, -1)
	atomic.AddInt32(&c.writes, 1)
	return nil
}

func (c *overlapConn) Close() error { return nil }

func TestFanOutSerializesWritesPerConn(t *testing.T) {
	conn := &overlapConn{t: t}
	RegisterUpdatesConn("busy", conn)
	defer UnregisterUpdatesConn("busy")

	const events = 10
	for i := 0; i < events; i++ {
		fanOut(ListingEvent{Kind: "sejour", ListingID: int64(i), Action: "updated"})
	}

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&conn.writes) == events
	}, 2*time.Second, 10*time.Millisecond)
}
