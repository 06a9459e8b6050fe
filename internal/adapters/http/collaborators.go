package httpadapter

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PabloGalante/farum-demo/internal/app/workflow"
	"github.com/PabloGalante/farum-demo/internal/domain"
)

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		badRequest(w, "prompt is required")
		return
	}

	res := s.deps.Assist.Generate(r.Context(), req.Prompt, req.Context)
	writeJSON(w, http.StatusOK, generateResponse{Text: res.Text, Fallback: res.Fallback})
}

func (s *Server) handleCalendarLink(w http.ResponseWriter, r *http.Request) {
	if s.deps.Calendar == nil {
		writeError(w, r, fmt.Errorf("calendar links: %w", domain.ErrNotConfigured))
		return
	}

	var req calendarLinkRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	meeting, err := s.deps.Calendar.Generate(req.Title, req.Start, time.Duration(req.DurationMinutes)*time.Minute)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, meeting)
}

func (s *Server) handleExecuteWorkflow(w http.ResponseWriter, r *http.Request) {
	var req workflow.Request
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := s.deps.Workflows.Execute(r.Context(), req)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, domain.ErrInvalidArgument) {
			status = http.StatusBadRequest
		}
		loggerFor(r).Warn("workflow execution failed", "workflow_id", req.WorkflowID, "error", err)
		writeJSON(w, status, workflow.ErrorResult(err))
		return
	}
	writeJSON(w, http.StatusOK, res)
}
