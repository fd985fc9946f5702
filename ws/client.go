package ws

import (
	"github.com/gorilla/websocket"

	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/logger"
)

// Client is one open socket. The event stream is one-way: the server pushes,
// inbound frames are drained only to detect disconnects.
type Client struct {
	ID      string
	UserID  string
	Conn    *websocket.Conn
	Send    chan Event
	Manager *WebSocketManager
}

func (c *Client) readPump() {
	defer func() {
		c.Manager.unregister <- c
		c.Conn.Close()
	}()

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.GetLogger().Debug("websocket read ended", "client_id", c.ID, "error", err.Error())
			}
			return
		}
	}
}

func (c *Client) writePump() {
	defer c.Conn.Close()

	for event := range c.Send {
		if err := c.Conn.WriteJSON(event); err != nil {
			logger.GetLogger().Debug("websocket write failed", "client_id", c.ID, "error", err.Error())
			return
		}
	}
	// Send channel closed by the manager; tell the peer we are done.
	c.Conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
