package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/AymanChabbaki/safaria-sub000/internal/database"
)

// UpdatesChannel is the Redis pub/sub channel carrying listing changes.
const UpdatesChannel = "safaria:updates"

// ListingEvent is broadcast whenever an admin creates, updates or
// deletes a listing. Connected clients use it to refresh their caches.
type ListingEvent struct {
	Type      string    `json:"type"`
	Kind      string    `json:"kind"`
	ListingID int64     `json:"listing_id"`
	Action    string    `json:"action"` // created | updated | deleted
	Timestamp time.Time `json:"timestamp"`
}

// UpdatesConn is the minimal interface a WebSocket connection must
// satisfy for fan-out.
type UpdatesConn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// updatesClient pairs a connection with a write mutex. Gorilla allows
// only one concurrent writer per connection, and fan-out sends run on
// their own goroutines.
type updatesClient struct {
	writeMu sync.Mutex
	conn    UpdatesConn
}

func (c *updatesClient) send(event ListingEvent) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(event)
}

type updatesHub struct {
	mu    sync.RWMutex
	conns map[string]*updatesClient
}

var (
	hub             = &updatesHub{conns: make(map[string]*updatesClient)}
	subscriberStart sync.Once
)

// RegisterUpdatesConn adds a connection to the fan-out set, keyed by an
// opaque connection id. Replaces any previous connection with that id.
func RegisterUpdatesConn(id string, conn UpdatesConn) {
	hub.mu.Lock()
	hub.conns[id] = &updatesClient{conn: conn}
	hub.mu.Unlock()
}

// UnregisterUpdatesConn removes a connection.
func UnregisterUpdatesConn(id string) {
	hub.mu.Lock()
	delete(hub.conns, id)
	hub.mu.Unlock()
}

// PublishListingChange announces an admin write over Redis so every
// server instance fans it out to its own WebSocket clients.
func PublishListingChange(ctx context.Context, kind string, listingID int64, action string) {
	event := ListingEvent{
		Type:      "listing_changed",
		Kind:      kind,
		ListingID: listingID,
		Action:    action,
		Timestamp: time.Now().UTC(),
	}
	raw, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := database.RedisClient.Publish(ctx, UpdatesChannel, raw).Err(); err != nil {
		log.Printf("failed to publish listing event: %v", err)
	}
}

// StartUpdatesSubscriber subscribes to the updates channel and fans
// incoming events out to local WebSocket connections. Runs once; the
// goroutine lives for the life of the process.
func StartUpdatesSubscriber(ctx context.Context) {
	subscriberStart.Do(func() {
		go func() {
			sub := database.RedisClient.Subscribe(ctx, UpdatesChannel)
			defer sub.Close()
			for msg := range sub.Channel() {
				var event ListingEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					continue
				}
				fanOut(event)
			}
		}()
	})
}

func fanOut(event ListingEvent) {
	hub.mu.RLock()
	defer hub.mu.RUnlock()
	for id, client := range hub.conns {
		// Best-effort send; a dead connection is dropped by its reader.
		go func(id string, c *updatesClient) {
			if err := c.send(event); err != nil {
				log.Printf("error writing update event to %s: %v", id, err)
			}
		}(id, client)
	}
}
