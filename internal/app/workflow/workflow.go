// Package workflow is the client side of the remote workflow executor.
// The executor behind it is a stub that always reports success.
package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/PabloGalante/farum-demo/internal/domain"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Request names the workflow to run and the context it runs with.
type Request struct {
	WorkflowID string         `json:"workflow_id"`
	Context    map[string]any `json:"context,omitempty"`
}

// Result is the executor's answer.
type Result struct {
	Status string         `json:"status"`
	Result map[string]any `json:"result,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// Executor runs workflows.
type Executor interface {
	Execute(ctx context.Context, req Request) (Result, error)
}

// StubExecutor reports synthetic success for every valid request.
type StubExecutor struct {
	now   func() time.Time
	newID func() string
}

func NewStubExecutor() *StubExecutor {
	return &StubExecutor{
		now:   time.Now,
		newID: uuid.NewString,
	}
}

func (e *StubExecutor) Execute(ctx context.Context, req Request) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if strings.TrimSpace(req.WorkflowID) == "" {
		return Result{}, fmt.Errorf("workflow: workflowId is required: %w", domain.ErrInvalidArgument)
	}

	return Result{
		Status: StatusSuccess,
		Result: map[string]any{
			"execution_id": e.newID(),
			"workflow_id":  req.WorkflowID,
			"executed_at":  e.now().UTC().Format(time.RFC3339),
			"context_keys": len(req.Context),
			"simulated":    true,
		},
	}, nil
}

// ErrorResult turns an execution error into the payload shown to callers.
func ErrorResult(err error) Result {
	return Result{Status: StatusError, Error: err.Error()}
}
