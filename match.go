package traitmatch

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/traitmatch/traitmatch-go/fieldcache"
	"github.com/traitmatch/traitmatch-go/fingerprint"
)

// Mismatch pairs the declared and observed type displays for one field.
type Mismatch struct {
	Declared string `json:"declared"`
	Observed string `json:"observed"`
}

// Diagnostic is the structured result of Explain. It is derived per call and
// owned by the caller; nothing is persisted.
type Diagnostic struct {
	OK                 bool                `json:"ok"`
	Missing            []string            `json:"missing,omitempty"`
	TypeMismatches     map[string]Mismatch `json:"type_mismatches,omitempty"`
	FailedRequirements []string            `json:"failed_requirements,omitempty"`
}

// Engine evaluates candidates against traits. It owns a normalization cache;
// all methods are safe for concurrent use.
type Engine struct {
	logger *zap.Logger
	cache  *fieldcache.Cache[map[string]FieldView]
}

type engineConfig struct {
	logger    *zap.Logger
	cacheOpts []fieldcache.Option
}

// Option configures an Engine.
type Option func(*engineConfig)

// WithLogger sets a logger for debug traces of shape classification and cache
// outcomes. The default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *engineConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithCacheSize bounds the cache's LRU path for value-shaped candidates.
func WithCacheSize(n int) Option {
	return func(c *engineConfig) {
		c.cacheOpts = append(c.cacheOpts, fieldcache.WithMaxEntries(n))
	}
}

// WithCacheMetrics exposes the engine cache's counters as Prometheus metrics.
func WithCacheMetrics(reg prometheus.Registerer, component string) Option {
	return func(c *engineConfig) {
		c.cacheOpts = append(c.cacheOpts, fieldcache.WithMetrics(reg, component))
	}
}

// NewEngine creates an engine.
func NewEngine(opts ...Option) *Engine {
	cfg := engineConfig{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Engine{
		logger: cfg.logger,
		cache:  fieldcache.New[map[string]FieldView](cfg.cacheOpts...),
	}
}

// Satisfies reports whether the candidate structurally satisfies the trait
// under the policy. It short-circuits on the first failure. A candidate whose
// shape cannot be normalized yields a *NormalizationError, never a silent
// false.
func (e *Engine) Satisfies(candidate any, trait TraitSpec, policy TypeCompatPolicy) (bool, error) {
	fields, err := e.canonical(candidate, policy)
	if err != nil {
		return false, err
	}
	for _, f := range trait.fields {
		view, ok := fields[f.Name]
		if !ok || !view.Present {
			if f.Required {
				return false, nil
			}
			continue
		}
		if !Compatible(f.Type, view.Type, policy) {
			return false, nil
		}
	}
	return true, nil
}

// Explain evaluates every trait field and returns a full diagnostic. Unlike
// Satisfies it never short-circuits, so the report is total.
func (e *Engine) Explain(candidate any, trait TraitSpec, policy TypeCompatPolicy) (Diagnostic, error) {
	fields, err := e.canonical(candidate, policy)
	if err != nil {
		return Diagnostic{}, err
	}

	diag := Diagnostic{OK: true}
	for _, f := range trait.fields {
		view, ok := fields[f.Name]
		if !ok || !view.Present {
			if f.Required {
				diag.OK = false
				diag.Missing = append(diag.Missing, f.Name)
				diag.FailedRequirements = append(diag.FailedRequirements,
					fmt.Sprintf("%s: missing required field", f.Name))
			}
			continue
		}
		if !Compatible(f.Type, view.Type, policy) {
			diag.OK = false
			if diag.TypeMismatches == nil {
				diag.TypeMismatches = map[string]Mismatch{}
			}
			diag.TypeMismatches[f.Name] = Mismatch{
				Declared: f.Type.String(),
				Observed: view.Type.String(),
			}
			diag.FailedRequirements = append(diag.FailedRequirements,
				fmt.Sprintf("%s: declared %s, observed %s", f.Name, f.Type, view.Type))
		}
	}
	sort.Strings(diag.Missing)
	return diag, nil
}

// CacheStats returns a snapshot of the engine cache's counters.
func (e *Engine) CacheStats() fieldcache.Summary {
	return e.cache.Stats().Summary()
}

// ClearCache drops all cached canonicalizations and resets the counters.
func (e *Engine) ClearCache() {
	e.cache.Clear()
	e.cache.Stats().Reset()
}

func (e *Engine) canonical(candidate any, policy TypeCompatPolicy) (map[string]FieldView, error) {
	kind, err := ClassifyShape(candidate, policy)
	if err != nil {
		e.logger.Debug("candidate shape unrecognized", zap.String("candidate", describeCandidate(candidate)), zap.Error(err))
		return nil, err
	}
	e.logger.Debug("classified candidate",
		zap.String("candidate", describeCandidate(candidate)),
		zap.Stringer("shape", kind))

	key, cacheable := cacheKeyFor(candidate, kind, policy)
	if !cacheable {
		fields, err := normalizeAs(candidate, kind, policy)
		if err != nil {
			return nil, err
		}
		return fields, nil
	}
	return e.cache.GetOrCompute(key, func() (map[string]FieldView, error) {
		return normalizeAs(candidate, kind, policy)
	})
}

// cacheKeyFor derives the cache key for a classified candidate. Type-shaped
// candidates key by identity (their reflect.Type); value-shaped candidates
// key by content fingerprint on the bounded path. Candidates whose
// canonicalization depends on per-instance values that identity cannot
// capture are not cached.
func cacheKeyFor(candidate any, kind ShapeKind, policy TypeCompatPolicy) (fieldcache.Key, bool) {
	key := fieldcache.Key{Shape: int(kind), Policy: policy.Fingerprint()}

	switch kind {
	case ShapeDeclaredSchema:
		key.Ident = reflect.TypeOf(candidate)
		return key, key.Ident != nil
	case ShapeStructType:
		key.Ident = derefType(candidate.(reflect.Type))
		return key, true
	case ShapeStructValue:
		t := reflect.TypeOf(candidate)
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		// Interface-typed fields resolve per value, so such structs cannot
		// key by type alone.
		for _, f := range collectStructFields(t) {
			if f.typ.Kind() == reflect.Interface {
				return fieldcache.Key{}, false
			}
		}
		key.Ident = t
		return key, true
	case ShapeMapSchema, ShapeMapData:
		token, ok := mapToken(candidate, kind)
		if !ok {
			return fieldcache.Key{}, false
		}
		key.Token = token
		return key, true
	default:
		return fieldcache.Key{}, false
	}
}

func mapToken(candidate any, kind ShapeKind) (string, bool) {
	tokens := map[string]string{}
	switch m := candidate.(type) {
	case map[string]TypeExpr:
		for name, expr := range m {
			if expr == nil {
				return "", false
			}
			tokens[name] = expr.token()
		}
	case map[string]reflect.Type:
		for name, t := range m {
			if t == nil {
				return "", false
			}
			tokens[name] = fingerprint.Type(t)
		}
	case map[string]any:
		for name, v := range m {
			if kind == ShapeMapSchema {
				expr, ok := exprFromAny(v)
				if !ok {
					return "", false
				}
				tokens[name] = expr.token()
				continue
			}
			if v == nil {
				tokens[name] = "*"
				continue
			}
			tokens[name] = fingerprint.Type(reflect.TypeOf(v))
		}
	default:
		return "", false
	}
	return fingerprint.Fields(tokens), true
}

var defaultEngine = NewEngine()

// Satisfies evaluates the candidate against the trait on a shared default
// engine.
func Satisfies(candidate any, trait TraitSpec, policy TypeCompatPolicy) (bool, error) {
	return defaultEngine.Satisfies(candidate, trait, policy)
}

// Explain evaluates the candidate against the trait on a shared default
// engine and returns the full diagnostic.
func Explain(candidate any, trait TraitSpec, policy TypeCompatPolicy) (Diagnostic, error) {
	return defaultEngine.Explain(candidate, trait, policy)
}

// CacheStats returns the default engine's cache counters.
func CacheStats() fieldcache.Summary {
	return defaultEngine.CacheStats()
}

// ClearCache clears the default engine's cache.
func ClearCache() {
	defaultEngine.ClearCache()
}
