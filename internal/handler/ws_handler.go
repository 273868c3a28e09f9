package handler

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"buildsite-be/internal/domain"
	"buildsite-be/internal/service/auth"
	"buildsite-be/internal/service/notification"
)

const (
	writeWait = 10 * time.Second
	pongWait  = 60 * time.Second
	// Must fire before the peer's read deadline does.
	pingPeriod = (pongWait * 9) / 10

	sendBufferSize = 32
)

var errSendBufferFull = errors.New("send buffer full")

// wsConn adapts a websocket connection to the notification registry.
// Push never blocks: a client that cannot drain its buffer loses the
// event and the failure is logged upstream.
type wsConn struct {
	id   string
	send chan domain.Envelope
}

func (c *wsConn) ID() string { return c.id }

func (c *wsConn) Push(ev domain.Envelope) error {
	select {
	case c.send <- ev:
		return nil
	default:
		return errSendBufferFull
	}
}

type WSHandler struct {
	authService         auth.Service
	notificationService notification.Service
}

func NewWSHandler(authService auth.Service, notificationService notification.Service) *WSHandler {
	return &WSHandler{
		authService:         authService,
		notificationService: notificationService,
	}
}

// Upgrade rejects plain HTTP requests before Fiber hands the connection
// to the websocket handler.
func (h *WSHandler) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Serve runs one notification channel. The first frame from the client
// must be an auth command carrying a valid access token; until it
// arrives nothing is delivered, and a bad token closes the connection.
func (h *WSHandler) Serve() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		wc := &wsConn{
			id:   uuid.NewString(),
			send: make(chan domain.Envelope, sendBufferSize),
		}

		h.notificationService.Connect(wc)
		defer h.notificationService.Disconnect(wc.id)

		done := make(chan struct{})
		defer close(done)
		go writeLoop(conn, wc.send, done)

		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})

		var first domain.ChannelCommand
		if err := conn.ReadJSON(&first); err != nil {
			return
		}
		if first.Type != domain.CmdAuth {
			writeClose(conn, websocket.ClosePolicyViolation, "auth required")
			return
		}

		user, err := h.authService.VerifyConnectionToken(context.Background(), first.Token)
		if err != nil {
			writeClose(conn, websocket.ClosePolicyViolation, "invalid token")
			return
		}
		if err := h.notificationService.Bind(wc.id, user.ID); err != nil {
			writeClose(conn, websocket.ClosePolicyViolation, "bind failed")
			return
		}

		for {
			var cmd domain.ChannelCommand
			if err := conn.ReadJSON(&cmd); err != nil {
				return
			}

			switch cmd.Type {
			case domain.CmdMarkRead:
				if cmd.NotificationID != "" {
					h.notificationService.MarkRead(user.ID, cmd.NotificationID)
				}
			case domain.CmdMarkAllRead:
				h.notificationService.MarkAllRead(user.ID)
			default:
				log.Printf("ws: ignoring unknown command %q from %s", cmd.Type, wc.id)
			}
		}
	})
}

func writeLoop(conn *websocket.Conn, send <-chan domain.Envelope, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case ev := <-send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func writeClose(conn *websocket.Conn, code int, reason string) {
	msg := websocket.FormatCloseMessage(code, reason)
	conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}
