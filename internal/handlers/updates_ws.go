package handlers

import (
	"net/http"

	"github.com/AymanChabbaki/safaria-sub000/internal/services"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var updatesUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS for WebSocket is handled at the HTTP layer already.
		return true
	},
}

// UpdatesWebSocket streams listing change events to the client. The
// feed is public: events carry only the listing kind, id and action, so
// any catalog page can refresh its cache without polling.
func UpdatesWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := updatesUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	id := uuid.New().String()
	services.RegisterUpdatesConn(id, conn)
	defer services.UnregisterUpdatesConn(id)

	// The read loop only watches for client disconnects; the feed is
	// one-way and inbound frames are discarded.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
