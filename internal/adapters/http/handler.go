package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/PabloGalante/farum-demo/internal/adapters/calendar"
	"github.com/PabloGalante/farum-demo/internal/app/assist"
	"github.com/PabloGalante/farum-demo/internal/app/conversation"
	"github.com/PabloGalante/farum-demo/internal/app/workflow"
	"github.com/PabloGalante/farum-demo/internal/domain"
	"github.com/PabloGalante/farum-demo/internal/scenario"
)

// ScenarioLister is the read side of the scenario store.
type ScenarioLister interface {
	List() []scenario.Summary
}

// Deps are the collaborators served over HTTP. Only Conversation and
// Scenarios are required.
type Deps struct {
	Conversation *conversation.Service
	Scenarios    ScenarioLister
	Assist       *assist.Service
	Calendar     *calendar.Generator
	Workflows    workflow.Executor

	// Used when a create request leaves them out.
	DefaultScenario int
	DefaultMode     domain.InteractionMode
}

type Server struct {
	deps Deps
}

func NewServer(deps Deps) http.Handler {
	if deps.Assist == nil {
		deps.Assist = assist.NewService(nil, 0)
	}
	if deps.Workflows == nil {
		deps.Workflows = workflow.NewStubExecutor()
	}
	s := &Server{deps: deps}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(withRequestContext)
	r.Use(withLogging)
	r.Use(withCORS)

	r.Get("/healthz", s.handleHealth)
	r.Get("/scenarios", s.handleListScenarios)

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.handleListSessions)
		r.Post("/", s.handleCreateSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleDeleteSession)
			r.Post("/options", s.handleSelectOption)
			r.Post("/messages", s.handleSendMessage)
			r.Put("/draft", s.handleSetDraft)
			r.Post("/reset", s.handleReset)
			r.Put("/config", s.handleUpdateConfig)
			r.Get("/stream", s.handleStream)
		})
	})

	r.Post("/generate", s.handleGenerate)
	r.Post("/calendar/links", s.handleCalendarLink)
	r.Post("/workflows/execute", s.handleExecuteWorkflow)

	return r
}

func sessionIDParam(r *http.Request) domain.SessionID {
	return domain.SessionID(chi.URLParam(r, "sessionID"))
}

// ─────────────────────────────────────────────
// Session handlers
// ─────────────────────────────────────────────

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"service":   "farum-demo",
		"scenarios": len(s.deps.Scenarios.List()),
		"generator": s.deps.Assist.Configured(),
	})
}

func (s *Server) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"scenarios": s.deps.Scenarios.List(),
	})
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	snaps := s.deps.Conversation.ListSessions(r.Context())
	sessions := make([]sessionResponse, 0, len(snaps))
	for _, snap := range snaps {
		sessions = append(sessions, toSessionResponse(snap))
	}
	writeJSON(w, http.StatusOK, map[string]any{"sessions": sessions})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	in := conversation.StartSessionInput{
		ScenarioIndex: s.deps.DefaultScenario,
		Mode:          s.deps.DefaultMode,
		Panel:         domain.Panel(req.Panel),
	}
	if req.Scenario != nil {
		in.ScenarioIndex = *req.Scenario
	}
	if req.Mode != "" {
		in.Mode = parseInteractionMode(req.Mode)
	}

	out, err := s.deps.Conversation.StartSession(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSessionResponse(out.Session))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	snap, err := s.deps.Conversation.GetSession(r.Context(), sessionIDParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(snap))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Conversation.EndSession(r.Context(), sessionIDParam(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSelectOption(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	out, err := s.deps.Conversation.SelectOption(r.Context(), sessionIDParam(r), req.Text)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, actionResponse{
		Accepted: out.Accepted,
		Session:  toSessionResponse(out.Session),
	})
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	out, err := s.deps.Conversation.SubmitFreeText(r.Context(), sessionIDParam(r), req.Text)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, actionResponse{
		Accepted: out.Accepted,
		Session:  toSessionResponse(out.Session),
	})
}

func (s *Server) handleSetDraft(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	snap, err := s.deps.Conversation.SetDraft(r.Context(), sessionIDParam(r), req.Text)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(snap))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	snap, err := s.deps.Conversation.Reset(r.Context(), sessionIDParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(snap))
}

func (s *Server) handleUpdateConfig(w http.ResponseWriter, r *http.Request) {
	var req updateConfigRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	upd := conversation.ConfigUpdate{ScenarioIndex: req.Scenario}
	if req.Mode != nil {
		mode := parseInteractionMode(*req.Mode)
		upd.Mode = &mode
	}
	if req.Panel != nil {
		panel := domain.Panel(*req.Panel)
		upd.Panel = &panel
	}

	snap, err := s.deps.Conversation.UpdateConfig(r.Context(), sessionIDParam(r), upd)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(snap))
}

// parseInteractionMode accepts a few spellings; unknown values pass
// through so the service rejects them.
func parseInteractionMode(s string) domain.InteractionMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "interactive", "live":
		return domain.ModeInteractive
	case "playback", "replay":
		return domain.ModePlayback
	default:
		return domain.InteractionMode(s)
	}
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Body == nil || r.ContentLength == 0 {
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		badRequest(w, "invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": msg,
	})
}

// writeError maps domain errors to status codes.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidMode), errors.Is(err, domain.ErrInvalidArgument):
		badRequest(w, err.Error())
	case errors.Is(err, domain.ErrAlreadyExists):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrNotConfigured):
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
	default:
		loggerFor(r).Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "internal server error",
		})
	}
}
