// Package calendar builds meeting identifiers and calendar-invite links.
package calendar

import (
	"fmt"
	"math/rand"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PabloGalante/farum-demo/internal/domain"
)

const (
	calendarBase     = "https://calendar.google.com/calendar/render"
	calendarDateForm = "20060102T150405Z"
	passcodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	passcodeLength   = 6
	DefaultDuration  = 30 * time.Minute
)

type Meeting struct {
	ID          string    `json:"id"`
	Passcode    string    `json:"passcode"`
	JoinURL     string    `json:"join_url"`
	CalendarURL string    `json:"calendar_url"`
	Title       string    `json:"title"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
}

// Generator is safe for concurrent use. Two generators with the same
// non-zero seed produce the same sequence of meetings.
type Generator struct {
	host string

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewGenerator uses seed as the random source; 0 seeds from the clock.
func NewGenerator(host string, seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if host == "" {
		host = "meet.example.com"
	}
	return &Generator{
		host: strings.TrimSuffix(host, "/"),
		rnd:  rand.New(rand.NewSource(seed)),
	}
}

func (g *Generator) Generate(title string, start time.Time, duration time.Duration) (Meeting, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Meeting{}, fmt.Errorf("calendar: title is required: %w", domain.ErrInvalidArgument)
	}
	if start.IsZero() {
		return Meeting{}, fmt.Errorf("calendar: start is required: %w", domain.ErrInvalidArgument)
	}
	if duration < 0 {
		return Meeting{}, fmt.Errorf("calendar: negative duration: %w", domain.ErrInvalidArgument)
	}
	if duration == 0 {
		duration = DefaultDuration
	}

	g.mu.Lock()
	digits := g.digits(10)
	pass := g.passcode()
	g.mu.Unlock()

	id := digits[:3] + " " + digits[3:6] + " " + digits[6:]
	join := fmt.Sprintf("https://%s/j/%s?pwd=%s", g.host, digits, pass)
	end := start.Add(duration)

	details := fmt.Sprintf("Join: %s\nMeeting ID: %s\nPasscode: %s", join, id, pass)
	q := url.Values{}
	q.Set("action", "TEMPLATE")
	q.Set("text", title)
	q.Set("dates", start.UTC().Format(calendarDateForm)+"/"+end.UTC().Format(calendarDateForm))
	q.Set("details", details)
	q.Set("location", join)

	return Meeting{
		ID:          id,
		Passcode:    pass,
		JoinURL:     join,
		CalendarURL: calendarBase + "?" + q.Encode(),
		Title:       title,
		Start:       start,
		End:         end,
	}, nil
}

func (g *Generator) digits(n int) string {
	var b strings.Builder
	// first digit is never zero
	b.WriteByte(byte('1' + g.rnd.Intn(9)))
	for i := 1; i < n; i++ {
		b.WriteByte(byte('0' + g.rnd.Intn(10)))
	}
	return b.String()
}

func (g *Generator) passcode() string {
	b := make([]byte, passcodeLength)
	for i := range b {
		b[i] = passcodeAlphabet[g.rnd.Intn(len(passcodeAlphabet))]
	}
	return string(b)
}
