package conversation

import (
	"fmt"
	"sync"

	"github.com/PabloGalante/farum-demo/internal/app/activity"
	"github.com/PabloGalante/farum-demo/internal/domain"
)

// Config is the host-facing selection driving a controller.
type Config struct {
	ScenarioIndex int
	Mode          domain.InteractionMode
	Panel         domain.Panel
}

func (c Config) withDefaults() Config {
	if c.Mode == "" {
		c.Mode = domain.ModeInteractive
	}
	if c.Panel == "" {
		c.Panel = domain.PanelConversation
	}
	return c
}

// subscriberBuffer is the number of snapshots a slow subscriber may lag
// behind. Past that its oldest pending snapshot is dropped.
const subscriberBuffer = 16

// Controller owns one session and its activity log for a Config, and
// re-initializes the session whenever the scenario or mode changes.
type Controller struct {
	// opMu serializes config changes. sendMu orders snapshot-and-send so
	// subscribers see snapshots in the order they were taken. mu guards
	// the fields below and is never held while the session notifies.
	opMu   sync.Mutex
	sendMu sync.Mutex
	mu     sync.Mutex

	id      domain.SessionID
	source  domain.ScenarioSource
	cfg     Config
	log     *activity.Log
	session *Session

	subs    map[int]chan Snapshot
	nextSub int
	closed  bool
}

// NewController resolves cfg against source and initializes the session.
func NewController(id domain.SessionID, source domain.ScenarioSource, cfg Config, opts Options) (*Controller, error) {
	cfg = cfg.withDefaults()
	if !cfg.Mode.Valid() {
		return nil, fmt.Errorf("mode %q: %w", cfg.Mode, domain.ErrInvalidMode)
	}
	sc, err := source.Get(cfg.ScenarioIndex)
	if err != nil {
		return nil, err
	}

	opts = opts.withDefaults()
	log := activity.NewLog(opts.Scheduler.Now)

	c := &Controller{
		id:      id,
		source:  source,
		cfg:     cfg,
		log:     log,
		session: NewSession(log, opts),
		subs:    make(map[int]chan Snapshot),
	}
	c.session.Initialize(sc, cfg.Mode)
	c.session.setOnChange(c.broadcast)
	return c, nil
}

func (c *Controller) ID() domain.SessionID {
	return c.id
}

func (c *Controller) Config() Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg
}

// SelectScenario switches to the scenario at index. On error nothing changes.
func (c *Controller) SelectScenario(index int) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	sc, err := c.source.Get(index)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.cfg.ScenarioIndex = index
	mode := c.cfg.Mode
	c.mu.Unlock()

	c.session.Initialize(sc, mode)
	return nil
}

// SetMode switches the interaction mode of the current scenario.
func (c *Controller) SetMode(mode domain.InteractionMode) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if !mode.Valid() {
		return fmt.Errorf("mode %q: %w", mode, domain.ErrInvalidMode)
	}
	sc, err := c.source.Get(c.Config().ScenarioIndex)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.cfg.Mode = mode
	c.mu.Unlock()

	c.session.Initialize(sc, mode)
	return nil
}

func (c *Controller) SetPanel(panel domain.Panel) {
	c.mu.Lock()
	c.cfg.Panel = panel
	c.mu.Unlock()

	c.broadcast()
}

// Apply moves to cfg, re-initializing only if the scenario or mode changed.
func (c *Controller) Apply(cfg Config) error {
	cfg = cfg.withDefaults()

	c.opMu.Lock()
	defer c.opMu.Unlock()

	if !cfg.Mode.Valid() {
		return fmt.Errorf("mode %q: %w", cfg.Mode, domain.ErrInvalidMode)
	}
	sc, err := c.source.Get(cfg.ScenarioIndex)
	if err != nil {
		return err
	}

	c.mu.Lock()
	reinit := cfg.ScenarioIndex != c.cfg.ScenarioIndex || cfg.Mode != c.cfg.Mode
	c.cfg = cfg
	c.mu.Unlock()

	if reinit {
		c.session.Initialize(sc, cfg.Mode)
	} else {
		c.broadcast()
	}
	return nil
}

func (c *Controller) Reset() {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	c.session.Reset()
}

func (c *Controller) SelectOption(text string) bool {
	return c.session.SelectOption(text)
}

func (c *Controller) SubmitFreeText(text string) bool {
	return c.session.SubmitFreeText(text)
}

func (c *Controller) SetDraft(text string) {
	c.session.SetDraft(text)
}

func (c *Controller) State() domain.SessionState {
	return c.session.State()
}

func (c *Controller) Snapshot() Snapshot {
	snap := c.session.Snapshot()
	snap.ID = c.id
	snap.Config = c.Config()
	return snap
}

// Subscribe returns a channel receiving a snapshot after every change,
// starting with the current one, and a function to stop receiving.
func (c *Controller) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, subscriberBuffer)

	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	ch <- c.Snapshot()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	c.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if sub, ok := c.subs[id]; ok {
				delete(c.subs, id)
				close(sub)
			}
		})
	}
}

// Close cancels pending responses and ends all subscriptions.
func (c *Controller) Close() {
	c.session.Close()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	for id, ch := range c.subs {
		delete(c.subs, id)
		close(ch)
	}
}

func (c *Controller) broadcast() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	snap := c.Snapshot()

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ch := range c.subs {
		select {
		case ch <- snap:
			continue
		default:
		}
		// full: drop the oldest so the newest state always arrives
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}
