package glyphfix

import "log/slog"

// DefaultProgressInterval is the number of layers between progress checkpoints.
const DefaultProgressInterval = 250

// Option configures an Engine during creation.
//
// Example:
//
//	eng, err := glyphfix.New(settings,
//	    glyphfix.WithLogger(logger),
//	    glyphfix.WithProgress(func(p glyphfix.Progress) { bar.Set(p.Layers, p.Total) }),
//	)
type Option func(*engineOptions)

// engineOptions holds optional configuration for Engine creation.
type engineOptions struct {
	codec    TransformCodec
	logger   *slog.Logger
	progress func(Progress)
	interval int
}

// defaultOptions returns the default engine options.
func defaultOptions() engineOptions {
	return engineOptions{
		codec:    nil, // HostCodec bound to the run's document if nil
		logger:   nil, // package Logger() if nil
		interval: DefaultProgressInterval,
	}
}

// WithCodec replaces the default HostCodec. Tests use it to install spies;
// hosts use it to adapt components that do not implement Component directly.
func WithCodec(c TransformCodec) Option {
	return func(o *engineOptions) {
		o.codec = c
	}
}

// WithLogger sets a logger for this engine instead of the package logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *engineOptions) {
		o.logger = l
	}
}

// WithProgress installs a callback invoked at scan checkpoints. It runs
// synchronously on the caller's goroutine.
func WithProgress(fn func(Progress)) Option {
	return func(o *engineOptions) {
		o.progress = fn
	}
}

// WithProgressInterval sets how many layers pass between checkpoints.
// Values <= 0 restore DefaultProgressInterval.
func WithProgressInterval(n int) Option {
	return func(o *engineOptions) {
		if n <= 0 {
			n = DefaultProgressInterval
		}
		o.interval = n
	}
}
