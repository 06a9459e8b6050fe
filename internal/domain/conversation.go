package domain

// Message is a transcript entry. Once appended it is never modified.
type Message struct {
	ID      MessageID
	Role    Role
	Content string
	Options []Option
	Time    Timestamp
}

// Clock renders the message time the way the chat view shows it.
func (m Message) Clock() string {
	return m.Time.Local().Format("15:04")
}

// HasOptions reports whether the message offers choices to the user.
func (m Message) HasOptions() bool {
	return len(m.Options) > 0
}

// LogEntry is one activity log record.
type LogEntry struct {
	ID      EntryID
	Time    Timestamp
	Title   string
	Detail  string
	Payload any
}
