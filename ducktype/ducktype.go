// Package ducktype adapts a trait and policy into a type-membership
// predicate, the structural analogue of an "is instance of" test. The adapter
// is deliberately thin: all decisions come from the core engine, and a
// candidate the engine cannot normalize is simply not an instance.
package ducktype

import (
	"reflect"
	"sync"

	traitmatch "github.com/traitmatch/traitmatch-go"
)

// DuckType is a reusable membership predicate for one (trait, policy) pair.
type DuckType struct {
	name   string
	trait  traitmatch.TraitSpec
	policy traitmatch.TypeCompatPolicy
}

// Option configures a DuckType.
type Option func(*DuckType)

// WithName overrides the adapter's display name. The default is the trait's
// name.
func WithName(name string) Option {
	return func(d *DuckType) { d.name = name }
}

// adapters caches one adapter per (trait fingerprint, policy, name), so
// repeated For calls with the same inputs return the identical instance.
var adapters sync.Map // string → *DuckType

// For returns the membership adapter for a trait under a policy.
func For(trait traitmatch.TraitSpec, policy traitmatch.TypeCompatPolicy, opts ...Option) *DuckType {
	d := &DuckType{name: trait.Name(), trait: trait, policy: policy}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	key := trait.Fingerprint() + "|" + policy.Fingerprint() + "|" + d.name
	if cached, ok := adapters.Load(key); ok {
		return cached.(*DuckType)
	}
	actual, _ := adapters.LoadOrStore(key, d)
	return actual.(*DuckType)
}

// Name returns the adapter's display name.
func (d *DuckType) Name() string { return d.name }

// Trait returns the adapted trait.
func (d *DuckType) Trait() traitmatch.TraitSpec { return d.trait }

// Instance reports whether the value structurally satisfies the trait.
// Unnormalizable candidates are not instances; no error escapes.
func (d *DuckType) Instance(v any) bool {
	ok, err := traitmatch.Satisfies(v, d.trait, d.policy)
	return err == nil && ok
}

// Type reports whether the struct type structurally satisfies the trait.
func (d *DuckType) Type(t reflect.Type) bool {
	if t == nil {
		return false
	}
	ok, err := traitmatch.Satisfies(t, d.trait, d.policy)
	return err == nil && ok
}
