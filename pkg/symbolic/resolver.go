package symbolic

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/dd0wney/sdfv-volume/pkg/logging"
	"github.com/dd0wney/sdfv-volume/pkg/metrics"
	"github.com/dd0wney/sdfv-volume/pkg/validation"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of parsed expressions kept in memory
const DefaultCacheSize = 1024

// Resolution is the outcome of an interactive resolve. Exactly one of
// Value (with Ok set), Missing or Err is meaningful.
type Resolution struct {
	Value   float64
	Ok      bool
	Missing []string
	Err     error
}

// NeedsInput reports whether the user must supply symbol values
func (r Resolution) NeedsInput() bool {
	return !r.Ok && len(r.Missing) > 0
}

// Resolver evaluates symbolic expressions against a global symbol table
// and caller-provided scopes.
type Resolver struct {
	mu      sync.RWMutex
	symbols SymbolMap
	cache   *lru.Cache[string, Expr]
	logger  logging.Logger
	metrics *metrics.Registry
}

// Option configures a Resolver
type Option func(*resolverOptions)

type resolverOptions struct {
	cacheSize int
	logger    logging.Logger
	metrics   *metrics.Registry
	symbols   SymbolMap
}

// WithCacheSize sets the parsed-expression cache capacity
func WithCacheSize(n int) Option {
	return func(o *resolverOptions) { o.cacheSize = n }
}

// WithLogger sets the logger
func WithLogger(l logging.Logger) Option {
	return func(o *resolverOptions) { o.logger = l }
}

// WithMetrics sets the metrics registry
func WithMetrics(m *metrics.Registry) Option {
	return func(o *resolverOptions) { o.metrics = m }
}

// WithSymbols seeds the global symbol table
func WithSymbols(symbols SymbolMap) Option {
	return func(o *resolverOptions) { o.symbols = symbols }
}

// NewResolver creates a resolver
func NewResolver(opts ...Option) (*Resolver, error) {
	o := resolverOptions{cacheSize: DefaultCacheSize}
	for _, opt := range opts {
		opt(&o)
	}

	if o.logger == nil {
		o.logger = logging.NewNopLogger()
	}
	if o.metrics == nil {
		o.metrics = metrics.DefaultRegistry()
	}

	cache, err := lru.New[string, Expr](o.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create expression cache: %w", err)
	}

	r := &Resolver{
		symbols: make(SymbolMap),
		cache:   cache,
		logger:  o.logger.With(logging.Component("resolver")),
		metrics: o.metrics,
	}
	for _, name := range o.symbols.Names() {
		v := o.symbols[name]
		if math.IsNaN(v) {
			if err := r.Declare(name); err != nil {
				return nil, err
			}
			continue
		}
		if err := r.Define(name, v); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Define sets the global value of a symbol
func (r *Resolver) Define(name string, value float64) error {
	if err := validation.ValidateSymbolName(name); err != nil {
		return err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: symbol %s", ErrNonFinite, name)
	}

	r.mu.Lock()
	r.symbols[name] = value
	r.mu.Unlock()

	r.logger.Debug("symbol defined", logging.Symbol(name), logging.Float64("value", value))
	return nil
}

// Declare registers a symbol without a value. A declared symbol still
// has to be supplied before expressions using it can be evaluated.
func (r *Resolver) Declare(name string) error {
	if err := validation.ValidateSymbolName(name); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.symbols[name]; !ok {
		r.symbols[name] = Undefined
	}
	return nil
}

// CurrentScope returns a copy of the global symbol table
func (r *Resolver) CurrentScope() SymbolMap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.symbols.Clone()
}

// Compile parses expr, consulting the cache first
func (r *Resolver) Compile(expr string) (Expr, error) {
	if parsed, ok := r.cache.Get(expr); ok {
		r.metrics.RecordCacheLookup(true)
		return parsed, nil
	}
	r.metrics.RecordCacheLookup(false)

	parsed, err := Parse(expr)
	if err != nil {
		return nil, err
	}
	r.cache.Add(expr, parsed)
	return parsed, nil
}

// FreeSymbols returns the sorted names referenced by expr
func (r *Resolver) FreeSymbols(expr string) ([]string, error) {
	parsed, err := r.Compile(expr)
	if err != nil {
		return nil, err
	}
	return freeSymbols(parsed), nil
}

func freeSymbols(e Expr) []string {
	set := make(map[string]struct{})
	e.collectSymbols(set)
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Evaluate computes expr. Symbols are looked up in scope first, then in the
// global table; a name declared Undefined in scope is not looked up further.
func (r *Resolver) Evaluate(expr string, scope SymbolMap) (float64, error) {
	parsed, err := r.Compile(expr)
	if err != nil {
		r.metrics.RecordResolverError(errorKind(err))
		return 0, err
	}

	v, err := parsed.Eval(r.effectiveScope(scope))
	if err != nil {
		r.metrics.RecordResolverError(errorKind(err))
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		r.metrics.RecordResolverError(errorKind(ErrNonFinite))
		return 0, fmt.Errorf("%w: %s", ErrNonFinite, expr)
	}
	return v, nil
}

// Resolve evaluates expr without prompting; any failure yields ok=false
func (r *Resolver) Resolve(expr string, scope SymbolMap) (float64, bool) {
	v, err := r.Evaluate(expr, scope)
	if err != nil {
		r.logger.Debug("expression unresolved", logging.Expression(expr), logging.Error(err))
		return 0, false
	}
	return v, true
}

// ResolveInteractive evaluates expr, and when symbols are missing returns
// their names so the caller can ask the user for them.
func (r *Resolver) ResolveInteractive(expr string, scope SymbolMap) Resolution {
	parsed, err := r.Compile(expr)
	if err != nil {
		r.metrics.RecordResolverError(errorKind(err))
		return Resolution{Err: err}
	}

	effective := r.effectiveScope(scope)
	if missing := effective.Missing(freeSymbols(parsed)); len(missing) > 0 {
		r.logger.Debug("expression needs input",
			logging.Expression(expr),
			logging.Symbols(missing))
		return Resolution{Missing: missing}
	}

	v, err := r.Evaluate(expr, scope)
	if err != nil {
		return Resolution{Err: err}
	}
	return Resolution{Value: v, Ok: true}
}

// effectiveScope layers scope over the global symbols
func (r *Resolver) effectiveScope(scope SymbolMap) SymbolMap {
	merged := scope.Clone()
	r.mu.RLock()
	merged.Merge(r.symbols)
	r.mu.RUnlock()
	return merged
}

// CacheLen reports how many parsed expressions are cached
func (r *Resolver) CacheLen() int {
	return r.cache.Len()
}
