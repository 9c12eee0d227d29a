package fetch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "idle":
		*s = StatusIdle
	case "loading":
		*s = StatusLoading
	case "success":
		*s = StatusSuccess
	case "error":
		*s = StatusError
	default:
		return fmt.Errorf("fetch: unknown status %q", text)
	}
	return nil
}

// State is what a view renders. At most one of Result and Error is set.
type State[R any] struct {
	Status     Status `json:"status"`
	Loading    bool   `json:"loading"`
	Result     *R     `json:"result,omitempty"`
	Error      string `json:"error,omitempty"`
	ErrorKind  Kind   `json:"-"`
	Generation uint64 `json:"generation"`
}

// Func performs the network call for one query.
type Func[Q, R any] func(ctx context.Context, q Q) (R, error)

type Option[Q, R any] func(*Controller[Q, R])

// WithValidator runs fn before any request. A non-nil error other than
// ErrSkip becomes the visible error and no request is made.
func WithValidator[Q, R any](fn func(Q) error) Option[Q, R] {
	return func(c *Controller[Q, R]) { c.validate = fn }
}

// WithOnSuccess registers a hook called when a successful result is applied.
// It runs with the controller locked and must not call back into it.
func WithOnSuccess[Q, R any](fn func(context.Context, Q, R)) Option[Q, R] {
	return func(c *Controller[Q, R]) { c.onSuccess = fn }
}

func WithLogger[Q, R any](logger *zap.Logger) Option[Q, R] {
	return func(c *Controller[Q, R]) { c.logger = logger }
}

// Controller drives the idle -> loading -> success/error cycle for one view.
// Every Execute starts a new generation and cancels the previous request;
// only the latest generation may change the visible state.
type Controller[Q, R any] struct {
	name      string
	fetch     Func[Q, R]
	validate  func(Q) error
	onSuccess func(context.Context, Q, R)
	logger    *zap.Logger
	tracer    trace.Tracer

	mu     sync.Mutex
	state  State[R]
	gen    uint64
	cancel context.CancelFunc
}

func New[Q, R any](name string, fn Func[Q, R], opts ...Option[Q, R]) *Controller[Q, R] {
	c := &Controller[Q, R]{
		name:   name,
		fetch:  fn,
		logger: zap.NewNop(),
		tracer: otel.Tracer(name),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(zap.String("controller", name))
	return c
}

// Snapshot returns a copy of the current state.
func (c *Controller[Q, R]) Snapshot() State[R] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Execute validates q, runs the fetch and returns the state as it stands
// once this call resolves. When a newer Execute started meanwhile, the
// returned state belongs to that newer call.
func (c *Controller[Q, R]) Execute(ctx context.Context, q Q) State[R] {
	ctx, span := c.tracer.Start(ctx, c.name+": execute")
	defer span.End()

	if c.validate != nil {
		if err := c.validate(q); err != nil {
			if errors.Is(err, ErrSkip) {
				span.AddEvent("skipped")
				return c.Snapshot()
			}
			c.logger.Info("Rejected input", zap.String("reason", Message(err)))
			span.RecordError(err)
			span.SetStatus(codes.Error, KindValidation.String())
			return c.reject(err)
		}
	}

	reqCtx, gen := c.begin(ctx)
	span.SetAttributes(attribute.Int64("fetch.generation", int64(gen)))

	res, err := c.fetch(reqCtx, q)

	state, applied := c.finish(ctx, gen, q, res, err)
	if !applied {
		c.logger.Debug("Discarding stale response", zap.Uint64("generation", gen), zap.Uint64("current", state.Generation))
		span.AddEvent("stale response discarded")
		return state
	}

	if err != nil {
		kind := KindOf(err)
		c.logger.Warn("Fetch failed", zap.Stringer("kind", kind), zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, kind.String())
		return state
	}

	span.SetStatus(codes.Ok, "")
	return state
}

func (c *Controller[Q, R]) begin(ctx context.Context) (context.Context, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	if c.cancel != nil {
		c.cancel()
	}
	reqCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.state = State[R]{Status: StatusLoading, Loading: true, Generation: c.gen}
	return reqCtx, c.gen
}

func (c *Controller[Q, R]) finish(ctx context.Context, gen uint64, q Q, res R, err error) (State[R], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		return c.state, false
	}
	c.cancel()
	c.cancel = nil

	if err != nil {
		c.state = State[R]{Status: StatusError, Error: Message(err), ErrorKind: KindOf(err), Generation: gen}
		return c.state, true
	}

	c.state = State[R]{Status: StatusSuccess, Result: &res, Generation: gen}
	if c.onSuccess != nil {
		c.onSuccess(ctx, q, res)
	}
	return c.state, true
}

// reject supersedes any in-flight request with a local validation error.
func (c *Controller[Q, R]) reject(err error) State[R] {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.state = State[R]{Status: StatusError, Error: Message(err), ErrorKind: KindOf(err), Generation: c.gen}
	return c.state
}
