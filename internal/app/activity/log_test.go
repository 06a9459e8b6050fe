package activity_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/PabloGalante/farum-demo/internal/app/activity"
)

func TestAppendKeepsOrderAndStampsTime(t *testing.T) {
	now := time.Date(2024, 3, 2, 9, 30, 0, 0, time.UTC)
	log := activity.NewLog(func() time.Time { return now })

	log.Append("Session started", "webinar_followup", nil)
	now = now.Add(time.Minute)
	log.Append("Option selected", "Yes, sign me up", map[string]string{"k": "v"})

	entries := log.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	titles := []string{entries[0].Title, entries[1].Title}
	if diff := cmp.Diff([]string{"Session started", "Option selected"}, titles); diff != "" {
		t.Errorf("titles mismatch (-want +got):\n%s", diff)
	}
	if !entries[1].Time.After(entries[0].Time) {
		t.Errorf("expected second entry to be later")
	}
	if entries[0].ID == "" || entries[0].ID == entries[1].ID {
		t.Errorf("expected distinct non-empty ids, got %q and %q", entries[0].ID, entries[1].ID)
	}
}

func TestEntriesReturnsCopy(t *testing.T) {
	log := activity.NewLog(nil)
	log.Append("a", "", nil)

	entries := log.Entries()
	entries[0].Title = "mutated"

	if got := log.Entries()[0].Title; got != "a" {
		t.Fatalf("log entry was mutated through copy: %q", got)
	}
}

func TestClearEmptiesLog(t *testing.T) {
	log := activity.NewLog(nil)
	log.Append("a", "", nil)
	log.Append("b", "", nil)

	log.Clear()

	if log.Len() != 0 || len(log.Entries()) != 0 {
		t.Fatalf("expected empty log after Clear")
	}

	log.Append("c", "", nil)
	if log.Len() != 1 {
		t.Fatalf("expected log to accept entries after Clear")
	}
}
