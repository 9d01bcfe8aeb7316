package httpapi

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	eventsWriteWait  = 10 * time.Second
	eventsPongWait   = 60 * time.Second
	eventsPingPeriod = eventsPongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     checkOrigin,
}

// checkOrigin accepts same-origin requests and, with CORS enabled, the
// configured origins.
func checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if corsOpts != nil {
		for _, o := range corsOpts.AllowedOrigins {
			if o == "*" || o == origin {
				return true
			}
		}
	}
	return origin == "http://"+r.Host || origin == "https://"+r.Host
}

// events godoc
// @Summary      Stream batch progress events
// @Description  Websocket; every message is one types.Event as JSON.
// @Tags         events
// @Success      101
// @Router       /events [get]
func (h *handlers) events(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response
		return
	}
	defer conn.Close()
	ch, cancel := h.svc.Events()
	defer cancel()
	eventSubscribers.Inc()
	defer eventSubscribers.Dec()

	// reader: handles pongs and notices the client going away
	done := make(chan struct{})
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(eventsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(eventsPongWait))
	})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(eventsPingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-serverBaseCtx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(eventsWriteWait))
			return
		case e, ok := <-ch:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(eventsWriteWait))
			if err := conn.WriteJSON(e); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(eventsWriteWait)); err != nil {
				return
			}
		}
	}
}
