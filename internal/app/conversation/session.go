package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/PabloGalante/farum-demo/internal/app/activity"
	"github.com/PabloGalante/farum-demo/internal/app/assist"
	"github.com/PabloGalante/farum-demo/internal/app/intent"
	"github.com/PabloGalante/farum-demo/internal/clock"
	"github.com/PabloGalante/farum-demo/internal/domain"
	"github.com/PabloGalante/farum-demo/internal/observability"
)

const (
	DefaultOptionLatency   = 1000 * time.Millisecond
	DefaultFreeTextLatency = 1200 * time.Millisecond
	DefaultGenerateTimeout = 8 * time.Second

	// contextMessages bounds the transcript tail handed to the generator.
	contextMessages = 10
)

// Activity log titles.
const (
	LogSessionStarted   = "Session started"
	LogSessionReset     = "Session reset"
	LogOptionSelected   = "Option selected"
	LogScriptedResponse = "Scripted response"
	LogFreeform         = "Transitioned to free-form"
	LogMessageSent      = "Message sent"
	LogResponse         = "Response generated"
)

// Options tunes a Session. Zero values fall back to the defaults.
type Options struct {
	Scheduler       clock.Scheduler
	Generator       domain.Generator
	OptionLatency   time.Duration
	FreeTextLatency time.Duration
	GenerateTimeout time.Duration
	Logger          *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Scheduler == nil {
		o.Scheduler = clock.Real{}
	}
	if o.OptionLatency <= 0 {
		o.OptionLatency = DefaultOptionLatency
	}
	if o.FreeTextLatency <= 0 {
		o.FreeTextLatency = DefaultFreeTextLatency
	}
	if o.GenerateTimeout <= 0 {
		o.GenerateTimeout = DefaultGenerateTimeout
	}
	if o.Logger == nil {
		o.Logger = observability.Logger()
	}
	return o
}

// Session is a live conversation over one scenario.
//
// All state changes happen under mu, so the session behaves as a single
// logical timeline even though delayed responses fire on timer goroutines.
// Every delayed response carries the epoch it was scheduled in and is
// dropped if the session was re-initialized in the meantime.
type Session struct {
	mu sync.Mutex

	opts   Options
	log    *activity.Log
	assist *assist.Service

	scenario   domain.Scenario
	mode       domain.InteractionMode
	transcript []domain.Message
	cursor     int
	responding bool
	acted      bool
	draft      string
	epoch      uint64
	stop       func() bool

	onChange func()
}

// NewSession returns an uninitialized session writing to log.
func NewSession(log *activity.Log, opts Options) *Session {
	opts = opts.withDefaults()
	return &Session{
		opts:   opts,
		log:    log,
		assist: assist.NewService(opts.Generator, opts.GenerateTimeout),
	}
}

// Initialize discards any state and starts scenario in mode.
func (s *Session) Initialize(scenario domain.Scenario, mode domain.InteractionMode) {
	s.mu.Lock()
	s.initializeLocked(scenario, mode)
	s.mu.Unlock()

	s.notify()
}

// Reset restarts the current scenario and mode.
func (s *Session) Reset() {
	s.mu.Lock()
	s.initializeLocked(s.scenario, s.mode)
	s.log.Append(LogSessionReset, s.scenario.Name, nil)
	s.mu.Unlock()

	s.notify()
}

// Close cancels any pending response. The session stays readable.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelPendingLocked()
	s.responding = false
}

func (s *Session) initializeLocked(scenario domain.Scenario, mode domain.InteractionMode) {
	s.cancelPendingLocked()

	s.scenario = scenario
	s.mode = mode
	s.transcript = nil
	s.cursor = 0
	s.responding = false
	s.acted = false
	s.draft = ""

	now := s.opts.Scheduler.Now()

	switch mode {
	case domain.ModePlayback:
		for _, m := range scenario.Messages {
			s.transcript = append(s.transcript, newMessage(m.Role, m.Content, m.Options, now))
		}
	default:
		if len(scenario.Steps) > 0 {
			s.transcript = append(s.transcript, stepMessage(scenario.Steps[0], now))
		}
	}

	s.log.Clear()
	s.log.Append(LogSessionStarted, fmt.Sprintf("%s (%s)", scenario.Title, mode), map[string]any{
		"scenario": scenario.Name,
		"mode":     string(mode),
	})
	if mode == domain.ModePlayback {
		for _, l := range scenario.Logs {
			var payload any
			if l.Payload != "" {
				payload = l.Payload
			}
			s.log.Append(l.Title, l.Detail, payload)
		}
	}

	s.opts.Logger.Debug("session initialized",
		"scenario", scenario.Name,
		"mode", mode,
		"epoch", s.epoch,
	)
}

// cancelPendingLocked invalidates every scheduled continuation.
func (s *Session) cancelPendingLocked() {
	s.epoch++
	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
}

// SelectOption records the user's choice and schedules the scripted
// answer. It reports false when the session cannot take an option now.
func (s *Session) SelectOption(text string) bool {
	s.mu.Lock()
	if s.mode != domain.ModeInteractive || s.responding || strings.TrimSpace(text) == "" || !s.pendingOptionsLocked() {
		s.mu.Unlock()
		return false
	}

	s.transcript = append(s.transcript, newMessage(domain.RoleUser, text, nil, s.opts.Scheduler.Now()))
	s.log.Append(LogOptionSelected, text, nil)
	s.responding = true
	s.acted = true

	epoch := s.epoch
	s.stop = s.opts.Scheduler.AfterFunc(s.opts.OptionLatency, func() {
		s.resolveOption(epoch, text)
	})
	s.mu.Unlock()

	s.notify()
	return true
}

func (s *Session) resolveOption(epoch uint64, text string) {
	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		return
	}

	run := branchRun(s.scenario.Steps, s.cursor, text)
	now := s.opts.Scheduler.Now()
	for _, idx := range run {
		s.transcript = append(s.transcript, stepMessage(s.scenario.Steps[idx], now))
	}

	if len(run) > 0 {
		s.cursor = run[len(run)-1]
		s.log.Append(LogScriptedResponse, fmt.Sprintf("%d scripted step(s) for %q", len(run), text), map[string]any{
			"steps":  run,
			"cursor": s.cursor,
		})
	} else {
		s.log.Append(LogFreeform, fmt.Sprintf("no scripted branch for %q", text), nil)
	}

	s.responding = false
	s.stop = nil
	s.mu.Unlock()

	s.notify()
}

// SubmitFreeText sends typed text once the script has no options on
// offer. Blank text and calls in the wrong state are ignored.
func (s *Session) SubmitFreeText(text string) bool {
	text = strings.TrimSpace(text)

	s.mu.Lock()
	if text == "" || s.mode != domain.ModeInteractive || s.responding || s.pendingOptionsLocked() {
		s.mu.Unlock()
		return false
	}

	s.transcript = append(s.transcript, newMessage(domain.RoleUser, text, nil, s.opts.Scheduler.Now()))
	s.draft = ""
	s.log.Append(LogMessageSent, text, nil)
	s.responding = true
	s.acted = true

	epoch := s.epoch
	s.stop = s.opts.Scheduler.AfterFunc(s.opts.FreeTextLatency, func() {
		s.resolveFreeText(epoch, text)
	})
	s.mu.Unlock()

	s.notify()
	return true
}

func (s *Session) resolveFreeText(epoch uint64, text string) {
	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		return
	}
	convContext := s.contextLocked()
	s.mu.Unlock()

	reply := intent.Classify(text)
	content, source := reply.Content, "classifier"
	if s.assist.Configured() {
		if res := s.assist.Generate(context.Background(), text, convContext); !res.Fallback {
			content, source = res.Text, "generator"
		}
	}

	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		return
	}
	s.transcript = append(s.transcript, newMessage(domain.RoleAgent, content, reply.Options, s.opts.Scheduler.Now()))
	s.log.Append(LogResponse, fmt.Sprintf("intent %s via %s", reply.Rule, source), map[string]any{
		"intent":  reply.Rule,
		"source":  source,
		"options": len(reply.Options),
	})
	s.responding = false
	s.stop = nil
	s.mu.Unlock()

	s.notify()
}

// contextLocked renders the transcript tail as "role: content" lines.
func (s *Session) contextLocked() string {
	msgs := s.transcript
	if len(msgs) > contextMessages {
		msgs = msgs[len(msgs)-contextMessages:]
	}
	var b strings.Builder
	for _, m := range msgs {
		b.WriteString(string(m.Role))
		b.WriteString(": ")
		b.WriteString(m.Content)
		b.WriteString("\n")
	}
	return b.String()
}

// SetDraft stores the text the user is typing.
func (s *Session) SetDraft(text string) {
	s.mu.Lock()
	s.draft = text
	s.mu.Unlock()

	s.notify()
}

// pendingOptionsLocked reports whether the latest message is an agent
// turn still waiting for one of its options to be picked.
func (s *Session) pendingOptionsLocked() bool {
	if len(s.transcript) == 0 {
		return false
	}
	last := s.transcript[len(s.transcript)-1]
	return last.Role == domain.RoleAgent && last.HasOptions()
}

func (s *Session) stateLocked() domain.SessionState {
	switch {
	case s.responding:
		return domain.StateResponding
	case s.mode == domain.ModePlayback:
		return domain.StateIdle
	case s.pendingOptionsLocked():
		return domain.StateAwaitingOption
	case !s.acted:
		return domain.StateIdle
	default:
		return domain.StateFreeformOpen
	}
}

func (s *Session) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// Snapshot returns a consistent copy of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	transcript := make([]domain.Message, len(s.transcript))
	copy(transcript, s.transcript)

	return Snapshot{
		Scenario:   s.scenario.Name,
		Title:      s.scenario.Title,
		Mode:       s.mode,
		State:      s.stateLocked(),
		Cursor:     s.cursor,
		Responding: s.responding,
		Draft:      s.draft,
		Epoch:      s.epoch,
		Transcript: transcript,
		Log:        s.log.Entries(),
	}
}

func (s *Session) setOnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

func (s *Session) notify() {
	s.mu.Lock()
	fn := s.onChange
	s.mu.Unlock()

	if fn != nil {
		fn()
	}
}

func stepMessage(step domain.Step, at time.Time) domain.Message {
	return newMessage(step.Speaker, step.Content, step.Options, at)
}

func newMessage(role domain.Role, content string, options []domain.Option, at time.Time) domain.Message {
	var opts []domain.Option
	if len(options) > 0 {
		opts = append([]domain.Option(nil), options...)
	}
	return domain.Message{
		ID:      domain.MessageID(uuid.NewString()),
		Role:    role,
		Content: content,
		Options: opts,
		Time:    at,
	}
}
