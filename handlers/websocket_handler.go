package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gasesray/shottrack/live"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// В продакшене здесь должна быть проверка Origin.
		return true
	},
}

type WebSocketHandler struct {
	hub    *live.Hub
	logger *slog.Logger
}

func NewWebSocketHandler(hub *live.Hub, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, logger: logger}
}

// ServeWs подключает клиента к live-ленте конкретного матча.
// Клиент подключается к /ws/schedules/{scheduleID}.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := getIDFromURL(r, "scheduleID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// upgrader сам отправляет HTTP-ошибку клиенту.
		h.logger.Warn("websocket upgrade failed",
			slog.Int("schedule_id", scheduleID), slog.Any("error", err))
		return
	}

	client := &live.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: live.ScheduleRoom(scheduleID),
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
