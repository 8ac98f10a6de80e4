package strategy

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownStrategy indicates a lookup by an unregistered strategy name.
var ErrUnknownStrategy = errors.New("unknown strategy")

// Registry holds the available strategies keyed by name. Populated once at
// construction and read-only afterwards, so lookups need no locking.
type Registry struct {
	strategies map[string]Strategy
}

// NewRegistry builds a registry with all built-in strategies configured from
// the given thresholds.
func NewRegistry(cfg Thresholds) *Registry {
	r := &Registry{strategies: make(map[string]Strategy)}
	r.register(NewMizan(cfg.Mizan))
	r.register(NewGraham(cfg.Graham))
	r.register(NewLynch(cfg.Lynch))
	return r
}

func (r *Registry) register(s Strategy) {
	r.strategies[s.Name()] = s
}

// Get returns the strategy with the given name. Unknown names produce an
// error listing every valid choice.
func (r *Registry) Get(name string) (Strategy, error) {
	s, ok := r.strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w %q: valid strategies are %s",
			ErrUnknownStrategy, name, strings.Join(r.Names(), ", "))
	}
	return s, nil
}

// Names returns every registered strategy name in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every registered strategy ordered by name.
func (r *Registry) All() []Strategy {
	all := make([]Strategy, 0, len(r.strategies))
	for _, name := range r.Names() {
		all = append(all, r.strategies[name])
	}
	return all
}
