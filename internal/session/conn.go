package session

import (
	"context"
	"time"

	"github.com/dgallion1/deeptoc/internal/toc"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	maxMessage = 1 << 20
)

// inbound is what the reader goroutine hands to the owning loop.
type inbound struct {
	msg ClientMessage
	err error
}

// Run serves the session over conn until the client disconnects or ctx
// is done. It owns the session for its whole lifetime: messages, frame
// ticks and flushes all happen on the calling goroutine. The caller
// closes conn.
func (s *Session) Run(ctx context.Context, conn *websocket.Conn, frameInterval time.Duration) error {
	conn.SetReadLimit(maxMessage)

	if err := s.write(conn, Hello{Op: "hello", Session: s.ID, Version: toc.Version}); err != nil {
		return err
	}
	if err := s.flush(conn); err != nil {
		return err
	}

	done := make(chan struct{})
	defer close(done)
	in := make(chan inbound)
	go func() {
		for {
			_, data, err := conn.ReadMessage()
			var item inbound
			if err != nil {
				item.err = err
			} else if jerr := json.Unmarshal(data, &item.msg); jerr != nil {
				s.log.Warn("invalid client message", "error", jerr)
				continue
			}
			select {
			case in <- item:
			case <-done:
				return
			}
			if err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
			_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
			return nil

		case item := <-in:
			if item.err != nil {
				if websocket.IsUnexpectedCloseError(item.err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					s.log.Warn("session read", "error", item.err)
				}
				return nil
			}
			if err := s.Apply(item.msg); err != nil {
				s.log.Warn("client message rejected", "type", item.msg.Type, "error", err)
				continue
			}

		case <-ticker.C:
			if s.doc.PendingFrames() == 0 {
				continue
			}
			s.Tick()
		}

		if err := s.flush(conn); err != nil {
			return err
		}
	}
}

// flush sends queued operations as one JSON array frame.
func (s *Session) flush(conn *websocket.Conn) error {
	ops := s.Drain()
	if len(ops) == 0 {
		return nil
	}
	return s.write(conn, ops)
}

func (s *Session) write(conn *websocket.Conn, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, data)
}
