package intake

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	intakeservice "github.com/solmerch/orderbot/internal/service/intake"
	"github.com/solmerch/orderbot/pkg/utils"
)

// WebSocketHandler runs the intake conversation over a persistent socket:
// the client sends events, the server answers with rendering instructions.
type WebSocketHandler struct {
	engine   *intakeservice.Engine
	upgrader websocket.Upgrader
}

// NewWebSocketHandler creates the websocket transport.
func NewWebSocketHandler(engine *intakeservice.Engine) *WebSocketHandler {
	return &WebSocketHandler{
		engine: engine,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterWebSocketRoutes mounts the socket endpoint.
func (h *WebSocketHandler) RegisterWebSocketRoutes(r chi.Router) {
	r.Get("/ws/{userID}", h.handleWebSocket)
}

type inboundEvent struct {
	Kind      string `json:"kind"`
	Payload   string `json:"payload"`
	Timestamp int64  `json:"timestamp"`
}

type outgoingFrame struct {
	Replies   []intakeservice.Reply `json:"replies,omitempty"`
	Error     string                `json:"error,omitempty"`
	Timestamp int64                 `json:"timestamp"`
}

func (h *WebSocketHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		utils.RespondError(w, http.StatusBadRequest, "userID is required")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed for %s: %v", userID, err)
		return
	}
	defer conn.Close()

	log.Printf("[ws] session opened for user=%s", userID)

	for {
		var ev inboundEvent
		if err := conn.ReadJSON(&ev); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] read error for %s: %v", userID, err)
			}
			return
		}

		replies, err := h.engine.HandleEvent(r.Context(), intakeservice.Event{
			UserID:  userID,
			Kind:    intakeservice.EventKind(ev.Kind),
			Payload: ev.Payload,
		})

		frame := outgoingFrame{Timestamp: time.Now().UnixMilli()}
		if err != nil {
			log.Printf("[ws] event for %s failed: %v", userID, err)
			frame.Error = "failed to process event"
		} else {
			frame.Replies = replies
		}

		if err := conn.WriteJSON(frame); err != nil {
			log.Printf("[ws] write error for %s: %v", userID, err)
			return
		}
	}
}
