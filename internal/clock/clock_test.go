package clock_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/PabloGalante/farum-demo/internal/clock"
)

func TestManualRunsDueTasksInOrder(t *testing.T) {
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	m := clock.NewManual(start)

	var got []string
	m.AfterFunc(1200*time.Millisecond, func() { got = append(got, "late") })
	m.AfterFunc(1000*time.Millisecond, func() { got = append(got, "early") })

	m.Advance(999 * time.Millisecond)
	if len(got) != 0 {
		t.Fatalf("expected nothing to run yet, got %v", got)
	}

	m.Advance(time.Second)
	if diff := cmp.Diff([]string{"early", "late"}, got); diff != "" {
		t.Errorf("run order mismatch (-want +got):\n%s", diff)
	}
	if !m.Now().Equal(start.Add(1999 * time.Millisecond)) {
		t.Errorf("unexpected clock time %v", m.Now())
	}
}

func TestManualStopCancelsTask(t *testing.T) {
	m := clock.NewManual(time.Unix(0, 0))

	ran := false
	stop := m.AfterFunc(time.Second, func() { ran = true })

	if !stop() {
		t.Fatalf("expected first stop to report pending task")
	}
	if stop() {
		t.Fatalf("expected second stop to report false")
	}

	m.Advance(2 * time.Second)
	if ran {
		t.Fatalf("stopped task must not run")
	}
	if m.Pending() != 0 {
		t.Fatalf("expected no pending tasks, got %d", m.Pending())
	}
}

func TestManualTaskSchedulingTask(t *testing.T) {
	m := clock.NewManual(time.Unix(0, 0))

	var got []string
	m.AfterFunc(time.Second, func() {
		got = append(got, "first")
		m.AfterFunc(time.Second, func() { got = append(got, "second") })
	})

	m.Advance(3 * time.Second)
	if diff := cmp.Diff([]string{"first", "second"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
