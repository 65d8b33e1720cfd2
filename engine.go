package glyphfix

import (
	"log/slog"
	"sync/atomic"
)

// Engine runs one correction tool against a document. It is synchronous and
// not reentrant: a Preview or Apply started while another is in flight
// fails with ErrBusy.
type Engine struct {
	settings Settings
	opts     engineOptions
	running  atomic.Bool
}

// New validates settings and returns an Engine.
func New(settings Settings, opts ...Option) (*Engine, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine{settings: settings, opts: o}, nil
}

// Settings returns the engine's settings.
func (e *Engine) Settings() Settings { return e.settings }

func (e *Engine) logger() *slog.Logger {
	if e.opts.logger != nil {
		return e.opts.logger
	}
	return Logger()
}

func (e *Engine) codec(doc Document) TransformCodec {
	if e.opts.codec != nil {
		return e.opts.codec
	}
	return NewHostCodec(doc)
}

func (e *Engine) acquire() error {
	if !e.running.CompareAndSwap(false, true) {
		return ErrBusy
	}
	return nil
}

func (e *Engine) release() { e.running.Store(false) }

// Plan resolves the scope against doc and scans it. Nothing is written.
func (e *Engine) Plan(doc Document) (*Plan, error) {
	if err := e.acquire(); err != nil {
		return nil, err
	}
	defer e.release()
	return e.plan(doc)
}

func (e *Engine) plan(doc Document) (*Plan, error) {
	scope, err := ResolveScope(doc, e.settings.Scope, e.settings.Masters)
	if err != nil {
		return nil, err
	}
	return scan(doc, e.codec(doc), e.settings, scope, e.opts, e.logger()), nil
}

// Preview returns the report for the current state of doc. It may be
// called any number of times; it never mutates the document.
func (e *Engine) Preview(doc Document) (string, error) {
	p, err := e.Plan(doc)
	if err != nil {
		return "", err
	}
	return Report(p), nil
}

// Apply plans against a snapshot of doc and commits every planned
// correction in one undo group. Per-component write failures are counted
// in the Result, not returned. The returned error is a UserInputError when
// the scope is unusable, or wraps ErrHostUnavailable when the batch was
// cut short.
func (e *Engine) Apply(doc Document) (Result, error) {
	if err := e.acquire(); err != nil {
		return Result{}, err
	}
	defer e.release()

	p, err := e.plan(doc)
	if err != nil {
		return Result{}, err
	}
	res, err := commit(doc, e.codec(doc), p, e.logger())
	e.logger().Info(Summary(e.settings, res))
	return res, err
}

// ApplyPlan commits a plan computed earlier, for hosts that show a preview
// and then let the operator confirm it. The plan is not re-derived.
func (e *Engine) ApplyPlan(doc Document, p *Plan) (Result, error) {
	if err := e.acquire(); err != nil {
		return Result{}, err
	}
	defer e.release()
	return commit(doc, e.codec(doc), p, e.logger())
}
