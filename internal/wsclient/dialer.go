package wsclient

import (
	"time"

	"github.com/fasthttp/websocket"
)

const dialTimeout = 10 * time.Second

type wsTransport struct {
	conn *websocket.Conn
}

func (t *wsTransport) ReadJSON(v any) error  { return t.conn.ReadJSON(v) }
func (t *wsTransport) WriteJSON(v any) error { return t.conn.WriteJSON(v) }
func (t *wsTransport) Close() error          { return t.conn.Close() }

// Dial connects to a ws:// or wss:// notification endpoint.
func Dial(url string) (Transport, error) {
	dialer := *websocket.DefaultDialer
	dialer.HandshakeTimeout = dialTimeout

	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	return &wsTransport{conn: conn}, nil
}
