// Package jokes persists the dad-joke name/answer pairs. The whole
// mapping lives in one YAML file; every mutating call re-reads the file,
// applies the change, and rewrites it, so the file stays the source of
// truth across process restarts. A store-level mutex serializes mutators
// to keep two concurrent calls from losing each other's write.
package jokes

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

var (
	// ErrAlreadyExists is returned by Add when the name is taken. The
	// stored answer is left untouched: first write wins.
	ErrAlreadyExists = errors.New("joke already exists")
	// ErrNotFound is returned by Delete for an absent name.
	ErrNotFound = errors.New("joke not found")
)

// Store owns the backing file. It is the sole writer of that file while
// the process runs.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore returns a store over the file at path. The file does not have
// to exist yet; an absent file is an empty store.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the full mapping from disk. A missing file is not an error,
// it is simply empty (first run).
func (s *Store) Load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read joke file: %w", err)
	}
	jokes := map[string]string{}
	if err := yaml.Unmarshal(data, &jokes); err != nil {
		return nil, fmt.Errorf("parse joke file: %w", err)
	}
	if jokes == nil {
		jokes = map[string]string{}
	}
	return jokes, nil
}

// save rewrites the whole file from the mapping.
func (s *Store) save(jokes map[string]string) error {
	data, err := yaml.Marshal(jokes)
	if err != nil {
		return fmt.Errorf("encode joke file: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write joke file: %w", err)
	}
	return nil
}

// Add inserts a new joke and persists. Fails with ErrAlreadyExists if
// name is taken, leaving the file unchanged.
func (s *Store) Add(name, answer string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	jokes, err := s.Load()
	if err != nil {
		return err
	}
	if _, ok := jokes[name]; ok {
		return fmt.Errorf("%w: %q", ErrAlreadyExists, name)
	}
	jokes[name] = answer
	return s.save(jokes)
}

// GetByName returns the answer for name, if present.
func (s *Store) GetByName(name string) (string, bool, error) {
	jokes, err := s.Load()
	if err != nil {
		return "", false, err
	}
	answer, ok := jokes[name]
	return answer, ok, nil
}

// GetRandom picks one joke uniformly at random. ok is false when the
// store is empty.
func (s *Store) GetRandom() (name, answer string, ok bool, err error) {
	jokes, err := s.Load()
	if err != nil {
		return "", "", false, err
	}
	if len(jokes) == 0 {
		return "", "", false, nil
	}
	names := make([]string, 0, len(jokes))
	for n := range jokes {
		names = append(names, n)
	}
	name = names[rand.IntN(len(names))]
	return name, jokes[name], true, nil
}

// Delete removes a joke and persists. Fails with ErrNotFound if name is
// absent, leaving the file unchanged.
func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	jokes, err := s.Load()
	if err != nil {
		return err
	}
	if _, ok := jokes[name]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	delete(jokes, name)
	return s.save(jokes)
}
