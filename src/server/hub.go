package server

import (
	"net/http"

	"wacc-calculator/src/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// -----------------------------------------------------------------------------
// Hub Pattern Implementation
// -----------------------------------------------------------------------------

// handleWebsockets is the main Hub loop: it owns the client set and fans
// completed calculations out to every connected listener.
func (s *WaccServer) handleWebsockets() {
	for {
		select {
		case client := <-s.register:
			s.stateMutex.Lock()
			s.clients[client] = struct{}{}
			latest := s.latestEvent
			s.stateMutex.Unlock()
			// Send the most recent calculation on connect
			client.send <- latest

		case client := <-s.unregister:
			s.stateMutex.Lock()
			if _, ok := s.clients[client]; ok {
				delete(s.clients, client)
				close(client.send)
			}
			s.stateMutex.Unlock()

		case event := <-s.broadcast:
			s.stateMutex.Lock()
			s.latestEvent = event
			for client := range s.clients {
				select {
				case client.send <- event:
					// Message sent successfully
				default:
					// Client too slow, disconnect to prevent Hub blocking
					delete(s.clients, client)
					close(client.send)
				}
			}
			s.stateMutex.Unlock()
		}
	}
}

// -----------------------------------------------------------------------------
// Data Exchange Interface Implementation
// -----------------------------------------------------------------------------

// Broadcast queues a completed calculation for fan-out.
func (s *WaccServer) Broadcast(event models.MCalculationEvent) {
	select {
	case s.broadcast <- event:
	default:
		s.Logger.Warning("Broadcast queue full, dropping event for %s", event.Symbol)
	}
}

// -----------------------------------------------------------------------------
// WebSocket Handlers
// -----------------------------------------------------------------------------

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// -----------------------------------------------------------------------------

func (s *WaccServer) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Logger.Info("Failed to upgrade websocket: %v", err)
		return
	}

	client := &Client{
		hub:  s,
		conn: conn,
		// Buffered channel to prevent blocking the Hub loop
		send: make(chan models.MCalculationEvent, 16),
	}

	s.register <- client

	// Start goroutines for reading/writing
	go client.writePump()
	go client.readPump()
}
