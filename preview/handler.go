package preview

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 5 * time.Second
	pongWait   = 10 * time.Second
)

// wireMessage is the JSON text frame of the stream.
type wireMessage struct {
	Type  string `json:"type"`
	Frame *int   `json:"frame,omitempty"`
	Log   string `json:"log,omitempty"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// Handler streams e to WebSocket clients.
func Handler(e *Engine) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			e.logger.Warn("preview: upgrade failed", "remote", r.RemoteAddr, "err", err)
			return
		}
		defer conn.Close()
		e.logger.Info("preview: client connected", "remote", r.RemoteAddr)

		msgs, cancel := e.Subscribe()
		defer cancel()

		done := make(chan struct{})
		go readLoop(conn, done)

		if err := writeText(conn, wireMessage{Type: "log", Log: "ready."}); err != nil {
			return
		}
		ping := time.NewTicker(pingPeriod)
		defer ping.Stop()
		for {
			select {
			case <-done:
				e.logger.Info("preview: client disconnected", "remote", r.RemoteAddr)
				return
			case <-r.Context().Done():
				return
			case <-ping.C:
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			case m, ok := <-msgs:
				if !ok {
					return
				}
				if err := writeMessage(conn, m); err != nil {
					e.logger.Debug("preview: write failed", "remote", r.RemoteAddr, "err", err)
					return
				}
			}
		}
	})
}

// readLoop drains client messages so control frames are handled, and
// closes done when the client goes away.
func readLoop(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writeMessage(conn *websocket.Conn, m Message) error {
	if m.Frame == nil {
		return writeText(conn, wireMessage{Type: "log", Log: m.Log})
	}
	f := m.Frame
	if f.PNG != nil {
		if err := writeText(conn, wireMessage{Type: "frame"}); err != nil {
			return err
		}
		if err := writeBinary(conn, f.PNG); err != nil {
			return err
		}
	}
	if f.Audio != nil {
		if err := writeText(conn, wireMessage{Type: "audio"}); err != nil {
			return err
		}
		if err := writeBinary(conn, f.Audio); err != nil {
			return err
		}
	}
	idx := f.Index
	return writeText(conn, wireMessage{Type: "sync", Frame: &idx})
}

func writeText(conn *websocket.Conn, m wireMessage) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, data)
}

func writeBinary(conn *websocket.Conn, data []byte) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.BinaryMessage, data)
}
