package conversation

import "github.com/PabloGalante/farum-demo/internal/domain"

// Snapshot is a point-in-time copy of a session for display.
type Snapshot struct {
	ID         domain.SessionID
	Config     Config
	Scenario   string
	Title      string
	Mode       domain.InteractionMode
	State      domain.SessionState
	Cursor     int
	Responding bool
	Draft      string
	Epoch      uint64
	Transcript []domain.Message
	Log        []domain.LogEntry
}

// InputOpen reports whether the host should show a free-text box.
func (s Snapshot) InputOpen() bool {
	return s.State == domain.StateFreeformOpen || (s.State == domain.StateIdle && s.Mode == domain.ModeInteractive && !s.hasPendingOptions())
}

func (s Snapshot) hasPendingOptions() bool {
	if len(s.Transcript) == 0 {
		return false
	}
	last := s.Transcript[len(s.Transcript)-1]
	return last.Role == domain.RoleAgent && last.HasOptions()
}
