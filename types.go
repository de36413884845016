package coll

import (
	"time"

	"github.com/goliatone/go-collection/pkg/activity"
)

// EqualityFunc reports whether two elements represent the same value. It gates
// snapshot publication and drives value-based lookups (IndexOf, Contains,
// RemoveFirst). The zero value falls back to language identity.
type EqualityFunc[T any] func(a, b T) bool

// BeforeChangeFunc runs before a candidate snapshot is published. Returning
// false vetoes the mutation and leaves the live snapshot untouched.
type BeforeChangeFunc[T any] func(prev, next *Snapshot[T]) bool

// AfterChangeFunc runs exactly once after each successful publish.
type AfterChangeFunc[T any] func(prev, next *Snapshot[T])

// ChangeFunc receives publish notifications for subscribers registered via
// Collection.OnChange.
type ChangeFunc[T any] func(prev, next *Snapshot[T])

// Source produces the current snapshot of an ordered sequence. Collection and
// View both implement it, so derived views can stack.
type Source[T any] interface {
	Snapshot() *Snapshot[T]
}

// ItemContext carries inputs needed when evaluating an expression against a
// single element.
type ItemContext struct {
	Item     any
	Index    int
	Now      *time.Time
	Args     map[string]any
	Metadata map[string]any
}

func (ctx ItemContext) withDefaultNow() ItemContext {
	if ctx.Now != nil {
		return ctx
	}
	now := time.Now()
	ctx.Now = &now
	return ctx
}

func (ctx ItemContext) timestamp() time.Time {
	ctx = ctx.withDefaultNow()
	return *ctx.Now
}

func (ctx ItemContext) withDefaultMaps() ItemContext {
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	if ctx.Metadata == nil {
		ctx.Metadata = map[string]any{}
	}
	return ctx
}

// Evaluator executes predicate expressions against item contexts.
type Evaluator interface {
	Evaluate(ctx ItemContext, expr string) (any, error)
	Compile(expr string, opts ...CompileOption) (CompiledRule, error)
}

// CompiledRule represents a reusable expression program.
type CompiledRule interface {
	Evaluate(ctx ItemContext) (any, error)
}

// CompileOption configures evaluator compile behaviour.
type CompileOption interface {
	applyCompileOption(*compileConfig)
}

type compileConfig struct{}

type compileOptionFunc func(*compileConfig)

func (f compileOptionFunc) applyCompileOption(cfg *compileConfig) {
	if f != nil {
		f(cfg)
	}
}

// Option configures a Collection at construction time.
type Option[T any] func(*config[T])

type config[T any] struct {
	name          string
	equality      EqualityFunc[T]
	before        BeforeChangeFunc[T]
	after         AfterChangeFunc[T]
	evaluator     Evaluator
	programCache  ProgramCache
	functions     *FunctionRegistry
	logger        DiagnosticLogger
	emitter       *activity.Emitter
	activityActor string
}

func applyOptions[T any](opts []Option[T]) config[T] {
	cfg := config[T]{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithName assigns a stable identifier used as the object ID on emitted
// activity events. Defaults to a random UUID.
func WithName[T any](name string) Option[T] {
	return func(cfg *config[T]) {
		cfg.name = name
	}
}

// WithEquality configures the equality function used for change detection and
// value-based lookups.
func WithEquality[T any](eq EqualityFunc[T]) Option[T] {
	return func(cfg *config[T]) {
		cfg.equality = eq
	}
}

// WithBeforeChange registers a veto hook consulted before every publish.
func WithBeforeChange[T any](fn BeforeChangeFunc[T]) Option[T] {
	return func(cfg *config[T]) {
		cfg.before = fn
	}
}

// WithAfterChange registers a hook that runs after every successful publish.
func WithAfterChange[T any](fn AfterChangeFunc[T]) Option[T] {
	return func(cfg *config[T]) {
		cfg.after = fn
	}
}

// WithEvaluator configures the evaluator backing expression operations.
func WithEvaluator[T any](e Evaluator) Option[T] {
	return func(cfg *config[T]) {
		cfg.evaluator = e
	}
}

// WithProgramCache registers a cache for compiled expression programs.
func WithProgramCache[T any](cache ProgramCache) Option[T] {
	return func(cfg *config[T]) {
		cfg.programCache = cache
	}
}

// WithFunctionRegistry configures custom functions callable from expressions.
func WithFunctionRegistry[T any](registry *FunctionRegistry) Option[T] {
	return func(cfg *config[T]) {
		if registry == nil {
			return
		}
		cfg.functions = registry.Clone()
	}
}

// WithCustomFunction registers fn under name for expression operations.
func WithCustomFunction[T any](name string, fn Function) Option[T] {
	return func(cfg *config[T]) {
		if cfg.functions == nil {
			cfg.functions = NewFunctionRegistry()
		}
		_ = cfg.functions.Register(name, fn)
	}
}

// WithActivityEmitter attaches an activity emitter notified on every publish.
func WithActivityEmitter[T any](emitter *activity.Emitter) Option[T] {
	return func(cfg *config[T]) {
		cfg.emitter = emitter
	}
}

// WithActivityActor sets the actor ID stamped on emitted activity events.
func WithActivityActor[T any](actorID string) Option[T] {
	return func(cfg *config[T]) {
		cfg.activityActor = actorID
	}
}
