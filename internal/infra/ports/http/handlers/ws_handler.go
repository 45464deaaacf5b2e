package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/jssrooms/backend/internal/application/config"
	"github.com/jssrooms/backend/internal/application/constant"
	"github.com/jssrooms/backend/internal/application/metric"
	"github.com/jssrooms/backend/internal/infra/appctx"
	"github.com/jssrooms/backend/internal/infra/ports/http/dto"
	"github.com/jssrooms/backend/internal/usecase"
)

const (
	readTimeout  = 60 * time.Second
	writeTimeout = 10 * time.Second
	pingInterval = 30 * time.Second
)

type WSHandler struct {
	upgrader *websocket.Upgrader

	broadcaster usecase.BroadcastUsecase
}

func NewWSHandler(cfg *config.Config, broadcaster usecase.BroadcastUsecase) *WSHandler {
	return &WSHandler{
		upgrader: &websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if cfg.Debug {
					return true
				}

				return r.Header.Get("Origin") == cfg.Domain
			},
		},
		broadcaster: broadcaster,
	}
}

// Handle runs one member's room session. Inbound frames are raw
// message text; outbound frames are dto.MessageFrame JSON. The
// membership is removed the moment the connection drops, the client
// sends into a dead room, or the room terminates.
func (h *WSHandler) Handle(c echo.Context) error {
	roomID := c.QueryParam("room")
	if roomID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "room is required"})
	}

	ctx := c.Request().Context()

	userID, ok := appctx.UserID(ctx)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid user"})
	}

	handle, _ := appctx.USN(ctx)

	// Join before the upgrade so an unavailable room is an ordinary
	// HTTP error instead of an instantly closing socket.
	sub, err := h.broadcaster.Join(ctx, roomID, userID, handle)
	if err != nil {
		return respondError(c, err)
	}

	ws, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.broadcaster.Leave(ctx, sub)
		slog.Error("websocket upgrade", slog.Any(constant.Error, err))
		return err
	}
	defer ws.Close()

	metric.IncrementWSActiveConnections()
	defer metric.DecrementWSActiveConnections()

	// Disconnect cleanup removes this connection's own membership and
	// nothing else; a reconnected user's new session is untouched.
	defer h.broadcaster.Leave(ctx, sub)

	if err = ws.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
		return err
	}
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(readTimeout))
	})

	go h.writeLoop(ws, sub)

	for {
		_, payload, err := ws.ReadMessage()
		if err != nil {
			h.logReadError(err, userID, roomID)
			return nil
		}

		content := strings.TrimSpace(string(payload))
		if content == "" {
			continue
		}

		if _, err = h.broadcaster.Send(ctx, roomID, userID, content); err != nil {
			// Room expired or closed mid-session; the broadcaster has
			// already dropped the membership, which ends the write
			// loop and closes the socket.
			return nil
		}
	}
}

// writeLoop is the connection's only writer: fan-out frames, pings and
// the terminal room_closed notice all leave through here.
func (h *WSHandler) writeLoop(ws *websocket.Conn, sub *usecase.Subscription) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case msg := <-sub.Messages():
			_ = ws.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := ws.WriteJSON(dto.NewMessageFrame(msg)); err != nil {
				return
			}

		case <-sub.Done():
			_ = ws.SetWriteDeadline(time.Now().Add(writeTimeout))
			if sub.Reason() == usecase.ReasonRoomClosed {
				_ = ws.WriteJSON(dto.MessageFrame{Type: dto.FrameRoomClosed})
			}
			_ = ws.WriteMessage(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, sub.Reason()),
			)
			_ = ws.Close()
			return

		case <-ticker.C:
			_ = ws.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *WSHandler) logReadError(err error, userID any, roomID string) {
	var closeErr *websocket.CloseError
	if errors.As(err, &closeErr) {
		switch closeErr.Code {
		case websocket.CloseNormalClosure, websocket.CloseGoingAway:
			slog.Info(
				"member disconnected",
				slog.Any(constant.UserID, userID),
				slog.String(constant.RoomID, roomID),
			)
			return
		}
	}

	slog.Error(
		"websocket read",
		slog.Any(constant.Error, err),
		slog.Any(constant.UserID, userID),
		slog.String(constant.RoomID, roomID),
	)
}
