package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/PabloGalante/farum-demo/internal/app/conversation"
	"github.com/PabloGalante/farum-demo/internal/domain"
)

// renderer prints transcript messages it has not printed yet.
type renderer struct {
	out     io.Writer
	printed int
	epoch   uint64
}

func (r *renderer) messages(snap conversation.Snapshot) {
	if snap.Epoch != r.epoch {
		// transcript was rebuilt
		r.epoch = snap.Epoch
		r.printed = 0
	}
	if len(snap.Transcript) <= r.printed {
		return
	}
	for _, m := range snap.Transcript[r.printed:] {
		fmt.Fprintf(r.out, "[%s] %s: %s\n", m.Clock(), m.Role, m.Content)
		for i, o := range m.Options {
			fmt.Fprintf(r.out, "    %d) %s\n", i+1, o.Text)
		}
	}
	r.printed = len(snap.Transcript)
}

func (r *renderer) log(entries []domain.LogEntry) {
	fmt.Fprintln(r.out, "Activity:")
	for _, e := range entries {
		line := fmt.Sprintf("  %s  %s", e.Time.Local().Format("15:04:05"), e.Title)
		if e.Detail != "" {
			line += " - " + e.Detail
		}
		if e.Payload != nil {
			if b, err := json.Marshal(e.Payload); err == nil {
				line += " " + string(b)
			}
		}
		fmt.Fprintln(r.out, line)
	}
}
