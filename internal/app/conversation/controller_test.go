package conversation_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/PabloGalante/farum-demo/internal/app/conversation"
	"github.com/PabloGalante/farum-demo/internal/clock"
	"github.com/PabloGalante/farum-demo/internal/domain"
	"github.com/PabloGalante/farum-demo/internal/scenario"
)

func newController(t *testing.T, cfg conversation.Config) (*conversation.Controller, *scenario.Store, *clock.Manual) {
	t.Helper()
	store, err := scenario.LoadEmbedded()
	if err != nil {
		t.Fatalf("LoadEmbedded failed: %v", err)
	}
	mc := clock.NewManual(start)
	c, err := conversation.NewController("test", store, cfg, conversation.Options{Scheduler: mc})
	if err != nil {
		t.Fatalf("NewController failed: %v", err)
	}
	return c, store, mc
}

func TestNewControllerDefaults(t *testing.T) {
	c, store, _ := newController(t, conversation.Config{})

	want := conversation.Config{ScenarioIndex: 0, Mode: domain.ModeInteractive, Panel: domain.PanelConversation}
	if diff := cmp.Diff(want, c.Config()); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}

	sc, _ := store.Get(0)
	snap := c.Snapshot()
	if snap.ID != "test" || snap.Scenario != sc.Name {
		t.Errorf("unexpected snapshot identity %q / %q", snap.ID, snap.Scenario)
	}
	if snap.State != domain.StateAwaitingOption {
		t.Errorf("state = %s, want awaiting_option", snap.State)
	}
}

func TestNewControllerErrors(t *testing.T) {
	store, _ := scenario.LoadEmbedded()

	_, err := conversation.NewController("x", store, conversation.Config{ScenarioIndex: 42}, conversation.Options{})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	_, err = conversation.NewController("x", store, conversation.Config{Mode: "karaoke"}, conversation.Options{})
	if !errors.Is(err, domain.ErrInvalidMode) {
		t.Errorf("expected ErrInvalidMode, got %v", err)
	}
}

func TestSelectScenarioNotFoundLeavesStateUntouched(t *testing.T) {
	c, _, _ := newController(t, conversation.Config{})
	c.SelectOption("Yes, count me in!")
	before := c.Snapshot()

	if err := c.SelectScenario(99); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	after := c.Snapshot()
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("failed SelectScenario mutated state (-before +after):\n%s", diff)
	}
}

func TestSelectScenarioCancelsPendingResponse(t *testing.T) {
	c, store, mc := newController(t, conversation.Config{})
	c.SelectOption("Yes, count me in!")

	if err := c.SelectScenario(2); err != nil {
		t.Fatalf("SelectScenario failed: %v", err)
	}
	mc.Advance(5 * time.Second)

	sc, _ := store.Get(2)
	snap := c.Snapshot()
	if diff := cmp.Diff([]string{"agent: " + sc.Steps[0].Content}, lines(snap.Transcript)); diff != "" {
		t.Errorf("transcript mismatch (-want +got):\n%s", diff)
	}
	if snap.Config.ScenarioIndex != 2 || snap.Scenario != sc.Name {
		t.Errorf("scenario not switched: %+v", snap.Config)
	}
	if diff := cmp.Diff([]string{conversation.LogSessionStarted}, titles(snap.Log)); diff != "" {
		t.Errorf("log must be reseeded (-want +got):\n%s", diff)
	}
}

func TestSetModeSwitchesToPlayback(t *testing.T) {
	c, store, mc := newController(t, conversation.Config{ScenarioIndex: 1})
	c.SelectOption("Book a demo")

	if err := c.SetMode(domain.ModePlayback); err != nil {
		t.Fatalf("SetMode failed: %v", err)
	}
	mc.Advance(5 * time.Second)

	sc, _ := store.Get(1)
	snap := c.Snapshot()
	if len(snap.Transcript) != len(sc.Messages) {
		t.Fatalf("transcript has %d messages, want %d", len(snap.Transcript), len(sc.Messages))
	}
	if snap.Mode != domain.ModePlayback || snap.State != domain.StateIdle {
		t.Errorf("mode/state = %s/%s", snap.Mode, snap.State)
	}
	if len(snap.Log) != len(sc.Logs)+1 {
		t.Errorf("log has %d entries, want %d", len(snap.Log), len(sc.Logs)+1)
	}

	if err := c.SetMode("bogus"); !errors.Is(err, domain.ErrInvalidMode) {
		t.Errorf("expected ErrInvalidMode, got %v", err)
	}
	if c.Config().Mode != domain.ModePlayback {
		t.Errorf("invalid mode changed config")
	}
}

func TestApplyOnlyReinitializesOnChange(t *testing.T) {
	c, _, mc := newController(t, conversation.Config{})
	c.SelectOption("Yes, count me in!")
	mc.Advance(time.Second)
	before := len(c.Snapshot().Transcript)

	cfg := c.Config()
	cfg.Panel = domain.PanelActivity
	if err := c.Apply(cfg); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if got := len(c.Snapshot().Transcript); got != before {
		t.Errorf("panel change re-initialized session: %d -> %d messages", before, got)
	}
	if c.Config().Panel != domain.PanelActivity {
		t.Errorf("panel not applied")
	}

	cfg.ScenarioIndex = 1
	if err := c.Apply(cfg); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if got := len(c.Snapshot().Transcript); got != 1 {
		t.Errorf("scenario change must re-initialize, got %d messages", got)
	}
}

func TestSubscribeReceivesUpdates(t *testing.T) {
	c, _, mc := newController(t, conversation.Config{})

	updates, cancel := c.Subscribe()
	defer cancel()

	first := <-updates
	if first.State != domain.StateAwaitingOption {
		t.Fatalf("initial snapshot state = %s", first.State)
	}

	c.SelectOption("Not interested")
	if snap := <-updates; snap.State != domain.StateResponding {
		t.Errorf("expected responding snapshot, got %s", snap.State)
	}

	mc.Advance(time.Second)
	if snap := <-updates; snap.State != domain.StateFreeformOpen {
		t.Errorf("expected freeform snapshot, got %s", snap.State)
	}

	cancel()
	if _, ok := <-updates; ok {
		t.Errorf("expected channel to be closed after cancel")
	}
}

func TestCloseEndsSubscriptions(t *testing.T) {
	c, _, mc := newController(t, conversation.Config{})
	updates, _ := c.Subscribe()
	<-updates

	c.SelectOption("Not interested")
	<-updates
	c.Close()

	for range updates {
	}
	if mc.Pending() != 0 {
		t.Errorf("close must cancel pending responses, %d left", mc.Pending())
	}
}

func TestSubscriberEndsOnLatestSnapshot(t *testing.T) {
	c, _, _ := newController(t, conversation.Config{})

	updates, cancel := c.Subscribe()
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.SetDraft(fmt.Sprintf("draft %d", i))
		}(i)
	}
	wg.Wait()

	var last conversation.Snapshot
	for drained := false; !drained; {
		select {
		case snap := <-updates:
			last = snap
		default:
			drained = true
		}
	}
	if want := c.Snapshot().Draft; last.Draft != want {
		t.Errorf("last delivered draft = %q, want %q", last.Draft, want)
	}
}
