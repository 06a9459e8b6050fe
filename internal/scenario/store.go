// Package scenario holds the read-only catalog of scripted dialogues.
package scenario

import (
	"embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/PabloGalante/farum-demo/internal/domain"
)

//go:embed scenarios.yaml
var embedded embed.FS

const embeddedFile = "scenarios.yaml"

type catalog struct {
	Scenarios []domain.Scenario `yaml:"scenarios"`
}

// Store is an ordered, immutable list of scenarios.
type Store struct {
	scenarios []domain.Scenario
}

// Summary describes a scenario without its script.
type Summary struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Title string `json:"title"`
	Steps int    `json:"steps"`
}

// NewStore builds a store from scenarios, copying them so later changes
// by the caller are not observed.
func NewStore(scenarios []domain.Scenario) (*Store, error) {
	out := make([]domain.Scenario, 0, len(scenarios))
	for i, s := range scenarios {
		if err := validate(s); err != nil {
			return nil, fmt.Errorf("scenario %d (%q): %w", i, s.Name, err)
		}
		out = append(out, s.Clone())
	}
	return &Store{scenarios: out}, nil
}

// LoadEmbedded parses the catalog compiled into the binary.
func LoadEmbedded() (*Store, error) {
	data, err := embedded.ReadFile(embeddedFile)
	if err != nil {
		return nil, fmt.Errorf("read embedded scenarios: %w", err)
	}
	return Parse(data)
}

// LoadFile parses a catalog from path.
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenarios file %q: %w", path, err)
	}
	return Parse(data)
}

// Load reads path when it is set and the embedded catalog otherwise.
func Load(path string) (*Store, error) {
	if path == "" {
		return LoadEmbedded()
	}
	return LoadFile(path)
}

// Parse decodes a YAML catalog.
func Parse(data []byte) (*Store, error) {
	var c catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse scenarios: %w", err)
	}
	return NewStore(c.Scenarios)
}

// Get returns a copy of the scenario at index.
func (s *Store) Get(index int) (domain.Scenario, error) {
	if index < 0 || index >= len(s.scenarios) {
		return domain.Scenario{}, fmt.Errorf("scenario index %d: %w", index, domain.ErrNotFound)
	}
	return s.scenarios[index].Clone(), nil
}

func (s *Store) Len() int {
	return len(s.scenarios)
}

// List returns summaries in catalog order.
func (s *Store) List() []Summary {
	out := make([]Summary, 0, len(s.scenarios))
	for i, sc := range s.scenarios {
		out = append(out, Summary{
			Index: i,
			Name:  sc.Name,
			Title: sc.Title,
			Steps: len(sc.Steps),
		})
	}
	return out
}

func validate(s domain.Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required: %w", domain.ErrInvalidArgument)
	}
	// an interactive session opens with the first step
	if len(s.Steps) == 0 {
		return fmt.Errorf("at least one step is required: %w", domain.ErrInvalidArgument)
	}
	for i, st := range s.Steps {
		if st.Speaker != domain.RoleAgent && st.Speaker != domain.RoleUser {
			return fmt.Errorf("step %d: unknown speaker %q: %w", i, st.Speaker, domain.ErrInvalidArgument)
		}
	}
	return nil
}
