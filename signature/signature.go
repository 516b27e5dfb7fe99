// Package signature keeps the contributor signatures shown in the signatures scene
package signature

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/luna-scenes/palette"
)

// ErrEmptyName rejects blank signature names
var ErrEmptyName = errors.New("signature name is empty")

// Signature is one named contributor
type Signature struct {
	ID        uuid.UUID   `toml:"id"`
	Name      string      `toml:"name"`
	Color     palette.RGB `toml:"color"`
	Timestamp time.Time   `toml:"timestamp"`
}

// Initial is the set shown when nothing was saved yet
var Initial = []struct {
	Name  string
	Color palette.RGB
}{
	{"Luna", palette.Teal},
	{"Gaia", palette.Gold},
	{"Cosmos", palette.Violet},
	{"Nyx", palette.Rose},
	{"Astra", palette.Sky},
}

type file struct {
	Signatures []Signature `toml:"signature"`
}

// Store holds every signature in memory and persists the most recent ones
type Store struct {
	mu   sync.Mutex
	all  []Signature
	path string
	keep int
	now  func() time.Time
	log  zerolog.Logger
}

// NewStore creates a store persisting the last keep signatures to path
// An empty path keeps signatures in memory only
func NewStore(path string, keep int, now func() time.Time, log zerolog.Logger) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{path: path, keep: keep, now: now, log: log}
}

// Load reads saved signatures, seeding the initial set when none exist
func (s *Store) Load() error {
	saved, err := s.read()
	if err != nil {
		return err
	}
	if len(saved) > 0 {
		s.mu.Lock()
		s.all = saved
		s.mu.Unlock()
		s.log.Info().Int("count", len(saved)).Str("path", s.path).Msg("signatures loaded")
		return nil
	}
	for _, in := range Initial {
		if _, err := s.Add(in.Name, in.Color); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) read() ([]Signature, error) {
	if s.path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read signatures: %w", err)
	}
	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode signatures %s: %w", s.path, err)
	}
	return f.Signatures, nil
}

// Add records a new signature and persists the recent set
func (s *Store) Add(name string, color palette.RGB) (Signature, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Signature{}, ErrEmptyName
	}
	sig := Signature{
		ID:        uuid.New(),
		Name:      name,
		Color:     color,
		Timestamp: s.now().UTC(),
	}

	s.mu.Lock()
	s.all = append(s.all, sig)
	recent := s.recentLocked()
	s.mu.Unlock()

	s.log.Info().Str("id", sig.ID.String()).Str("name", name).Msg("signature added")
	if err := s.write(recent); err != nil {
		return sig, err
	}
	return sig, nil
}

// All returns every signature in insertion order
func (s *Store) All() []Signature {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Signature(nil), s.all...)
}

// Len returns the number of signatures held in memory
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.all)
}

func (s *Store) recentLocked() []Signature {
	if s.keep <= 0 || len(s.all) <= s.keep {
		return append([]Signature(nil), s.all...)
	}
	return append([]Signature(nil), s.all[len(s.all)-s.keep:]...)
}

// write replaces the file atomically through a temp file in the same directory
func (s *Store) write(sigs []Signature) error {
	if s.path == "" {
		return nil
	}
	data, err := toml.Marshal(file{Signatures: sigs})
	if err != nil {
		return fmt.Errorf("encode signatures: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create signature dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".signatures-*")
	if err != nil {
		return fmt.Errorf("write signatures: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write signatures: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write signatures: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write signatures: %w", err)
	}
	return nil
}
