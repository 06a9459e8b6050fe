package domain

import "time"

type SessionID string
type MessageID string
type EntryID string

type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// InteractionMode decides whether user actions drive the script or the
// scenario's precomputed transcript is shown as-is.
type InteractionMode string

const (
	ModeInteractive InteractionMode = "interactive"
	ModePlayback    InteractionMode = "playback"
)

// Valid reports whether m is a known mode.
func (m InteractionMode) Valid() bool {
	return m == ModeInteractive || m == ModePlayback
}

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// SessionState is the observable state of a conversation session.
type SessionState string

const (
	StateIdle           SessionState = "idle"
	StateAwaitingOption SessionState = "awaiting_option"
	StateResponding     SessionState = "responding"
	StateFreeformOpen   SessionState = "freeform_open"
)

// Panel is the dashboard panel the host UI has focused. It is carried
// with the session config but never affects conversation logic.
type Panel string

const (
	PanelConversation Panel = "conversation"
	PanelActivity     Panel = "activity"
)

type Timestamp = time.Time
