package realtime

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// UpgradeRequired: guard sebelum handler websocket — request non-upgrade
// ditolak 426.
func UpgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// EventLive meng-stream update registrasi sebuah event ke view organizer.
// Topic = event_id dari path param.
func EventLive(hub *Hub) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		topic := conn.Params("event_id")
		sub := hub.Subscribe(topic)
		defer hub.Unsubscribe(sub)

		done := make(chan struct{})
		go func() {
			// reader hanya untuk mendeteksi close dari sisi client
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case msg, ok := <-sub.C:
				if !ok {
					return
				}
				if err := conn.WriteJSON(msg); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	})
}
