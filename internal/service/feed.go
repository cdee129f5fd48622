package service

import (
	"net/http"

	"github.com/gorilla/websocket"

	"cricket-auction/internal/logger"
	"cricket-auction/internal/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // the display page is served from another origin
	},
}

// FeedService upgrades display-page connections onto the live feed hub.
// Subscribers only receive committed settlement facts; no bidding traffic
// flows over this socket.
type FeedService struct {
	Hub *models.Hub
	Log *logger.Logger
}

// NewFeedService initializes the feed boundary over the hub.
func NewFeedService(hub *models.Hub) *FeedService {
	return &FeedService{Hub: hub, Log: logger.NewLogger("feed-service")}
}

// Subscribe handles an incoming WebSocket connection.
func (fs *FeedService) Subscribe(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		fs.Log.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := &models.Client{
		Hub:  fs.Hub,
		Conn: conn,
		Send: make(chan []byte, 256),
	}
	fs.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
