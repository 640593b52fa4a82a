package handlers

import (
	"net/http"

	"github.com/Dosada05/tournament-admin/live"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CORS открыт для всех источников, websocket тоже
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WebSocketHandler struct {
	hub *live.Hub
	log zerolog.Logger
}

func NewWebSocketHandler(hub *live.Hub, logger zerolog.Logger) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, log: logger.With().Str("component", "websocket_handler").Logger()}
}

// ServeWs подписывает клиента на события одного матча.
// Клиент подключается к /ws/matches/{matchID}
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	matchID, err := uuidParam(r, "matchID")
	if err != nil {
		_ = writeJSON(w, http.StatusBadRequest, envelope{Message: err.Error()}, nil)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам отвечает клиенту ошибкой
		h.log.Warn().Err(err).Str("match_id", matchID.String()).Msg("failed to upgrade connection")
		return
	}

	client := live.NewClient(h.hub, conn, live.RoomForMatch(matchID))
	if !h.hub.Register(client) {
		_ = conn.Close()
		return
	}
	go client.WritePump()
	go client.ReadPump()
}
