package game

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrUnknownSpecies is returned when a species name is not registered.
	ErrUnknownSpecies = errors.New("unknown species")

	// ErrInvariant wraps the panics raised when the world would become
	// inconsistent, such as killing an animal twice.
	ErrInvariant = errors.New("simulation invariant violated")
)

// invariant panics with an error wrapping ErrInvariant.
func invariant(format string, args ...any) {
	panic(fmt.Errorf("%w: %s", ErrInvariant, fmt.Sprintf(format, args...)))
}

// Species describes one kind of animal. NewBehavior is called once per
// animal, so behaviors may keep per-animal state.
type Species struct {
	Name        string
	NewBehavior func() Behavior
}

// Registry maps species names to their definitions.
type Registry struct {
	species map[string]Species
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{species: make(map[string]Species)}
}

// Register adds or replaces a species.
func (r *Registry) Register(s Species) error {
	if s.Name == "" {
		return errors.New("species name is empty")
	}
	if s.NewBehavior == nil {
		return fmt.Errorf("species %q has no behavior", s.Name)
	}
	r.species[s.Name] = s
	return nil
}

// Lookup returns the species registered under name.
func (r *Registry) Lookup(name string) (Species, error) {
	s, ok := r.species[name]
	if !ok {
		return Species{}, fmt.Errorf("%w: %q", ErrUnknownSpecies, name)
	}
	return s, nil
}

// Names returns the registered species names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.species))
	for name := range r.species {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
