// Package provider tracks, per content domain, which upstream provider is
// currently selected. Rotation is purely reactive: an adapter rotates after
// a failed call, there is no proactive health checking. Selection lives in
// memory only and resets to the default provider on restart.
package provider

import (
	"fmt"
	"sync"

	"github.com/vrickster/vault/internal/constants"
)

// Domain is a content category with its own provider set.
type Domain string

const (
	DomainAnime  Domain = "anime"
	DomainMovies Domain = "movies"
	DomainManga  Domain = "manga"
)

type state struct {
	providers []string
	current   int
}

// Registry holds the ordered provider list and current selection for each
// domain. Safe for concurrent use.
type Registry struct {
	mu     sync.Mutex
	states map[Domain]*state
}

// NewRegistry creates a registry seeded with the default provider lists.
func NewRegistry() *Registry {
	return NewRegistryWith(map[Domain][]string{
		DomainAnime:  constants.AnimeProviders,
		DomainMovies: constants.MovieProviders,
		DomainManga:  constants.MangaProviders,
	})
}

// NewRegistryWith creates a registry from explicit provider lists. The
// first provider in each list is the initial selection.
func NewRegistryWith(lists map[Domain][]string) *Registry {
	states := make(map[Domain]*state, len(lists))
	for d, providers := range lists {
		states[d] = &state{providers: append([]string(nil), providers...)}
	}
	return &Registry{states: states}
}

// Current returns the currently selected provider for the domain.
func (r *Registry) Current(d Domain) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.mustState(d)
	return s.providers[s.current]
}

// Rotate advances the domain circularly to its next provider and returns
// the new selection.
func (r *Registry) Rotate(d Domain) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.mustState(d)
	s.current = (s.current + 1) % len(s.providers)
	return s.providers[s.current]
}

// Providers returns the fixed rotation order for the domain.
func (r *Registry) Providers(d Domain) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.mustState(d)
	return append([]string(nil), s.providers...)
}

func (r *Registry) mustState(d Domain) *state {
	s, ok := r.states[d]
	if !ok || len(s.providers) == 0 {
		panic(fmt.Sprintf("provider: no providers registered for domain %q", d))
	}
	return s
}
