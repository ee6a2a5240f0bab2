// Package traitregistry indexes traits by normalized token and answers batch
// "which traits does this candidate match" queries. It owns no matching
// logic; every decision is delegated to a Matcher.
package traitregistry

import (
	"fmt"
	"sort"
	"sync"

	traitmatch "github.com/traitmatch/traitmatch-go"
	"github.com/traitmatch/traitmatch-go/traitname"
)

// Matcher decides trait satisfaction. *traitmatch.Engine implements it.
type Matcher interface {
	Satisfies(candidate any, trait traitmatch.TraitSpec, policy traitmatch.TypeCompatPolicy) (bool, error)
}

// MatcherFunc adapts a function to the Matcher interface.
type MatcherFunc func(candidate any, trait traitmatch.TraitSpec, policy traitmatch.TypeCompatPolicy) (bool, error)

// Satisfies calls f.
func (f MatcherFunc) Satisfies(candidate any, trait traitmatch.TraitSpec, policy traitmatch.TypeCompatPolicy) (bool, error) {
	return f(candidate, trait, policy)
}

// Registry is a thread-safe token → trait index.
type Registry struct {
	mu      sync.RWMutex
	traits  map[string]traitmatch.TraitSpec
	matcher Matcher
}

// Option configures a Registry.
type Option func(*Registry)

// WithMatcher replaces the default matcher (the shared traitmatch engine).
func WithMatcher(m Matcher) Option {
	return func(r *Registry) {
		if m != nil {
			r.matcher = m
		}
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		traits:  make(map[string]traitmatch.TraitSpec),
		matcher: MatcherFunc(traitmatch.Satisfies),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Register indexes a trait under the normalized token. Registering an already
// registered token fails; use Unregister first to replace.
func (r *Registry) Register(token string, trait traitmatch.TraitSpec) error {
	normalized, err := traitname.Normalize(token)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.traits[normalized]; exists {
		return fmt.Errorf("trait registry: token %q already registered", normalized)
	}
	r.traits[normalized] = trait
	return nil
}

// Unregister removes a token, reporting whether it was present.
func (r *Registry) Unregister(token string) bool {
	normalized, err := traitname.Normalize(token)
	if err != nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.traits[normalized]; !exists {
		return false
	}
	delete(r.traits, normalized)
	return true
}

// Get looks up a trait by token.
func (r *Registry) Get(token string) (traitmatch.TraitSpec, bool) {
	normalized, err := traitname.Normalize(token)
	if err != nil {
		return traitmatch.TraitSpec{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	trait, ok := r.traits[normalized]
	return trait, ok
}

// Tokens returns all registered tokens, sorted.
func (r *Registry) Tokens() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.traits))
	for token := range r.traits {
		out = append(out, token)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of registered traits.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.traits)
}

// Matching returns the sorted tokens of every registered trait the candidate
// satisfies under the policy. A candidate no trait can normalize propagates
// the matcher's error.
func (r *Registry) Matching(candidate any, policy traitmatch.TypeCompatPolicy) ([]string, error) {
	r.mu.RLock()
	snapshot := make(map[string]traitmatch.TraitSpec, len(r.traits))
	for token, trait := range r.traits {
		snapshot[token] = trait
	}
	r.mu.RUnlock()

	tokens := make([]string, 0, len(snapshot))
	for token := range snapshot {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)

	var matched []string
	for _, token := range tokens {
		ok, err := r.matcher.Satisfies(candidate, snapshot[token], policy)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, token)
		}
	}
	return matched, nil
}
