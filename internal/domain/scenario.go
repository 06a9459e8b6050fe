package domain

// Option is a selectable reply. Sentiment is only used for styling;
// branching matches on Text alone.
type Option struct {
	Text      string    `json:"text" yaml:"text"`
	Sentiment Sentiment `json:"sentiment" yaml:"sentiment"`
}

// Step is one scripted turn. A step without a Trigger is a default
// continuation; a step with one is only eligible right after the option
// with the same text was chosen.
type Step struct {
	Speaker Role     `json:"speaker" yaml:"speaker"`
	Content string   `json:"content" yaml:"content"`
	Options []Option `json:"options,omitempty" yaml:"options,omitempty"`
	Trigger string   `json:"trigger,omitempty" yaml:"trigger,omitempty"`
}

// ScriptedMessage is an entry of a scenario's canned playback transcript.
type ScriptedMessage struct {
	Role    Role     `json:"role" yaml:"role"`
	Content string   `json:"content" yaml:"content"`
	Options []Option `json:"options,omitempty" yaml:"options,omitempty"`
}

// ScriptedLog is an entry of a scenario's precomputed playback log.
type ScriptedLog struct {
	Title   string `json:"title" yaml:"title"`
	Detail  string `json:"detail" yaml:"detail"`
	Payload string `json:"payload,omitempty" yaml:"payload,omitempty"`
}

// Scenario is a named dialogue script. It is immutable once loaded.
type Scenario struct {
	Name     string            `json:"name" yaml:"name"`
	Title    string            `json:"title" yaml:"title"`
	Steps    []Step            `json:"steps" yaml:"steps"`
	Messages []ScriptedMessage `json:"messages,omitempty" yaml:"messages,omitempty"`
	Logs     []ScriptedLog     `json:"logs,omitempty" yaml:"logs,omitempty"`
}

// Clone returns a deep copy of s.
func (s Scenario) Clone() Scenario {
	out := s
	out.Steps = make([]Step, len(s.Steps))
	for i, st := range s.Steps {
		st.Options = cloneOptions(st.Options)
		out.Steps[i] = st
	}
	if s.Messages != nil {
		out.Messages = make([]ScriptedMessage, len(s.Messages))
		for i, m := range s.Messages {
			m.Options = cloneOptions(m.Options)
			out.Messages[i] = m
		}
	}
	if s.Logs != nil {
		out.Logs = append([]ScriptedLog(nil), s.Logs...)
	}
	return out
}

func cloneOptions(opts []Option) []Option {
	if opts == nil {
		return nil
	}
	return append([]Option(nil), opts...)
}
