package httpadapter

import (
	"time"

	"github.com/PabloGalante/farum-demo/internal/app/conversation"
	"github.com/PabloGalante/farum-demo/internal/domain"
)

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type createSessionRequest struct {
	Scenario *int   `json:"scenario,omitempty"`
	Mode     string `json:"mode,omitempty"`
	Panel    string `json:"panel,omitempty"`
}

type textRequest struct {
	Text string `json:"text"`
}

type updateConfigRequest struct {
	Scenario *int    `json:"scenario,omitempty"`
	Mode     *string `json:"mode,omitempty"`
	Panel    *string `json:"panel,omitempty"`
}

type generateRequest struct {
	Prompt  string `json:"prompt"`
	Context string `json:"context,omitempty"`
}

type generateResponse struct {
	Text     string `json:"text"`
	Fallback bool   `json:"fallback"`
}

type calendarLinkRequest struct {
	Title           string    `json:"title"`
	Start           time.Time `json:"start"`
	DurationMinutes int       `json:"duration_minutes"`
}

type sessionResponse struct {
	ID         string             `json:"id"`
	Scenario   scenarioRef        `json:"scenario"`
	Mode       string             `json:"mode"`
	Panel      string             `json:"panel"`
	State      string             `json:"state"`
	Cursor     int                `json:"cursor"`
	Responding bool               `json:"responding"`
	InputOpen  bool               `json:"input_open"`
	Draft      string             `json:"draft"`
	Epoch      uint64             `json:"epoch"`
	Transcript []messageResponse  `json:"transcript"`
	Log        []logEntryResponse `json:"log"`
}

type scenarioRef struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Title string `json:"title"`
}

type optionResponse struct {
	Text      string `json:"text"`
	Sentiment string `json:"sentiment,omitempty"`
}

type messageResponse struct {
	ID      string           `json:"id"`
	Role    string           `json:"role"`
	Content string           `json:"content"`
	Options []optionResponse `json:"options,omitempty"`
	Time    time.Time        `json:"time"`
	Clock   string           `json:"clock"`
}

type logEntryResponse struct {
	ID      string    `json:"id"`
	Time    time.Time `json:"time"`
	Title   string    `json:"title"`
	Detail  string    `json:"detail,omitempty"`
	Payload any       `json:"payload,omitempty"`
}

type actionResponse struct {
	Accepted bool            `json:"accepted"`
	Session  sessionResponse `json:"session"`
}

// ─────────────────────────────────────────────
// Conversation Helpers
// ─────────────────────────────────────────────

func toSessionResponse(s conversation.Snapshot) sessionResponse {
	ref := scenarioRef{Index: s.Config.ScenarioIndex, Name: s.Scenario, Title: s.Title}
	return sessionResponse{
		ID:         string(s.ID),
		Scenario:   ref,
		Mode:       string(s.Mode),
		Panel:      string(s.Config.Panel),
		State:      string(s.State),
		Cursor:     s.Cursor,
		Responding: s.Responding,
		InputOpen:  s.InputOpen(),
		Draft:      s.Draft,
		Epoch:      s.Epoch,
		Transcript: toMessagesResponse(s.Transcript),
		Log:        toLogResponse(s.Log),
	}
}

func toMessageResponse(m domain.Message) messageResponse {
	var opts []optionResponse
	for _, o := range m.Options {
		opts = append(opts, optionResponse{Text: o.Text, Sentiment: string(o.Sentiment)})
	}
	return messageResponse{
		ID:      string(m.ID),
		Role:    string(m.Role),
		Content: m.Content,
		Options: opts,
		Time:    m.Time,
		Clock:   m.Clock(),
	}
}

func toMessagesResponse(msgs []domain.Message) []messageResponse {
	out := make([]messageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessageResponse(m))
	}
	return out
}

func toLogResponse(entries []domain.LogEntry) []logEntryResponse {
	out := make([]logEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, logEntryResponse{
			ID:      string(e.ID),
			Time:    e.Time,
			Title:   e.Title,
			Detail:  e.Detail,
			Payload: e.Payload,
		})
	}
	return out
}
