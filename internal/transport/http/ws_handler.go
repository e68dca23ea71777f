package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"trivia-service/internal/app"
	"trivia-service/internal/domain"
	"trivia-service/internal/logger"

	"github.com/gorilla/websocket"
)

// DefaultTick is how often a live session samples its timer.
const DefaultTick = 250 * time.Millisecond

// WSHandler runs one play session per websocket connection.
type WSHandler struct {
	service  *app.PlayService
	tick     time.Duration
	log      *slog.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.PlayService, tick time.Duration, log *slog.Logger) *WSHandler {
	if tick <= 0 {
		tick = DefaultTick
	}
	return &WSHandler{
		service: service,
		tick:    tick,
		log:     logger.WithComponent(log, "ws"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	Input string `json:"input"`
}

type inputPayload struct {
	Text string `json:"text"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the request, starts a session for ?quizId= and plays it.
//
// Inbound: answer {input}, input {text}, end, giveup.
// Outbound: started, outcome, tick, finished, error.
//
// A single loop owns the connection writes and the session calls: it selects
// between inbound messages and the timer, so a tick and a submission are never
// handled at the same time. Once the session finished the timer stops.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	quizID := r.URL.Query().Get("quizId")
	playerName := r.URL.Query().Get("name")
	if quizID == "" {
		http.Error(w, "missing quizId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	view, err := h.service.Start(ctx, quizID, playerName)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	sessionID := view.SessionID
	// The session belongs to this connection; its result is already stored.
	defer h.service.Discard(context.Background(), sessionID)

	inbound := make(chan inboundMessage)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(inbound)
		for {
			var msg inboundMessage
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			select {
			case inbound <- msg:
			case <-done:
				return
			}
		}
	}()

	send := func(typ string, payload any) bool {
		if err := conn.WriteJSON(outboundMessage{Type: typ, Payload: payload}); err != nil {
			h.log.Debug("ws write failed", "session_id", sessionID, "error", err)
			return false
		}
		return true
	}

	if !send("started", view) {
		return
	}

	ticker := time.NewTicker(h.tick)
	defer ticker.Stop()
	ticks := ticker.C
	lastRemaining := view.RemainingSec

	finish := func(result *domain.PlayResult) bool {
		ticks = nil
		ticker.Stop()
		return send("finished", newResultView(*result))
	}

	for {
		select {
		case msg, open := <-inbound:
			if !open {
				return
			}
			if !h.handle(ctx, sessionID, msg, send, finish, ticks == nil) {
				return
			}

		case <-ticks:
			v, result, err := h.service.Tick(ctx, sessionID)
			if err != nil {
				send("error", errorPayload{Message: err.Error()})
				return
			}
			if result != nil {
				if !finish(result) {
					return
				}
				continue
			}
			if v.RemainingSec != lastRemaining {
				lastRemaining = v.RemainingSec
				if !send("tick", v) {
					return
				}
			}
		}
	}
}

// handle processes one inbound message. It returns false when the connection should close.
func (h *WSHandler) handle(
	ctx context.Context,
	sessionID string,
	msg inboundMessage,
	send func(string, any) bool,
	finish func(*domain.PlayResult) bool,
	finished bool,
) bool {
	switch msg.Type {
	case "answer":
		var payload answerPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return send("error", errorPayload{Message: "invalid answer payload"})
		}
		reply, err := h.service.Submit(ctx, sessionID, payload.Input)
		if err != nil {
			return send("error", errorPayload{Message: err.Error()})
		}
		if !send("outcome", reply) {
			return false
		}
		if reply.Result != nil && !finished {
			return finish(reply.Result)
		}
		return true

	case "input":
		var payload inputPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return send("error", errorPayload{Message: "invalid input payload"})
		}
		if err := h.service.SetInput(ctx, sessionID, payload.Text); err != nil {
			return send("error", errorPayload{Message: err.Error()})
		}
		return true

	case "end", "giveup":
		reason := domain.EndManual
		if msg.Type == "giveup" {
			reason = domain.EndGiveUp
		}
		result, err := h.service.End(ctx, sessionID, reason)
		if err != nil {
			return send("error", errorPayload{Message: err.Error()})
		}
		return finish(&result)

	default:
		return send("error", errorPayload{Message: "unsupported message type"})
	}
}
