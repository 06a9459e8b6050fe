package httpadapter

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	streamWriteTimeout = 10 * time.Second
	streamReadLimit    = 4096
)

var upgrader = websocket.Upgrader{
	// CORS is open for the demo front-end, so is the stream.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// streamEvent is sent for every snapshot change.
type streamEvent struct {
	Type    string          `json:"type"`
	Session sessionResponse `json:"session"`
}

// streamCommand lets a connected client act without a separate request.
type streamCommand struct {
	Action string `json:"action"`
	Text   string `json:"text"`
}

type streamAck struct {
	Type     string `json:"type"`
	Action   string `json:"action"`
	Accepted bool   `json:"accepted"`
	Error    string `json:"error,omitempty"`
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	id := sessionIDParam(r)
	log := loggerFor(r).With("session_id", id)

	// resolve before upgrading so unknown sessions get a plain 404
	updates, cancel, err := s.deps.Conversation.Subscribe(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer cancel()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("stream upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(streamReadLimit)

	acks := make(chan streamAck, 4)
	done := make(chan struct{})
	stopped := make(chan struct{})
	defer close(stopped)
	go func() {
		defer close(done)
		for {
			var cmd streamCommand
			if err := conn.ReadJSON(&cmd); err != nil {
				return
			}
			ack := s.applyStreamCommand(r, cmd)
			// every command gets its ack while the writer is alive
			select {
			case acks <- ack:
			case <-stopped:
				return
			}
		}
	}()

	log.Info("stream opened")
	defer log.Info("stream closed")

	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case ack := <-acks:
			if !writeStream(conn, ack) {
				return
			}
		case snap, ok := <-updates:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"),
					time.Now().Add(streamWriteTimeout))
				return
			}
			if !writeStream(conn, streamEvent{Type: "snapshot", Session: toSessionResponse(snap)}) {
				return
			}
		}
	}
}

func (s *Server) applyStreamCommand(r *http.Request, cmd streamCommand) streamAck {
	ack := streamAck{Type: "ack", Action: cmd.Action}
	id := sessionIDParam(r)
	ctx := r.Context()

	switch cmd.Action {
	case "option":
		out, err := s.deps.Conversation.SelectOption(ctx, id, cmd.Text)
		if err != nil {
			ack.Error = err.Error()
			return ack
		}
		ack.Accepted = out.Accepted
	case "message":
		out, err := s.deps.Conversation.SubmitFreeText(ctx, id, cmd.Text)
		if err != nil {
			ack.Error = err.Error()
			return ack
		}
		ack.Accepted = out.Accepted
	case "draft":
		if _, err := s.deps.Conversation.SetDraft(ctx, id, cmd.Text); err != nil {
			ack.Error = err.Error()
			return ack
		}
		ack.Accepted = true
	case "reset":
		if _, err := s.deps.Conversation.Reset(ctx, id); err != nil {
			ack.Error = err.Error()
			return ack
		}
		ack.Accepted = true
	default:
		ack.Error = "unsupported action"
	}
	return ack
}

func writeStream(conn *websocket.Conn, v any) bool {
	_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
	return conn.WriteJSON(v) == nil
}
