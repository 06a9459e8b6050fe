package memory_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/PabloGalante/farum-demo/internal/adapters/storage/memory"
	"github.com/PabloGalante/farum-demo/internal/app/conversation"
	"github.com/PabloGalante/farum-demo/internal/clock"
	"github.com/PabloGalante/farum-demo/internal/domain"
	"github.com/PabloGalante/farum-demo/internal/scenario"
)

func newController(t *testing.T, id domain.SessionID) *conversation.Controller {
	t.Helper()

	scenarios, err := scenario.LoadEmbedded()
	if err != nil {
		t.Fatalf("LoadEmbedded failed: %v", err)
	}
	c, err := conversation.NewController(id, scenarios, conversation.Config{}, conversation.Options{
		Scheduler: clock.NewManual(clock.Real{}.Now()),
	})
	if err != nil {
		t.Fatalf("NewController failed: %v", err)
	}
	return c
}

func TestSessionStoreLifecycle(t *testing.T) {
	store := memory.NewSessionStore()

	if err := store.CreateSession(newController(t, "b")); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if err := store.CreateSession(newController(t, "a")); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if err := store.CreateSession(newController(t, "a")); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	if diff := cmp.Diff([]domain.SessionID{"a", "b"}, store.ListSessions()); diff != "" {
		t.Errorf("ListSessions mismatch (-want +got):\n%s", diff)
	}

	got, err := store.GetSession("a")
	if err != nil || got.ID() != "a" {
		t.Fatalf("GetSession(a) = %v, %v", got, err)
	}

	if err := store.DeleteSession("a"); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	if _, err := store.GetSession("a"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.DeleteSession("a"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
