package core

import "log/slog"

// Option applies configuration to a Machine via functional options pattern.
type Option func(*options)

type options struct {
	logger    *slog.Logger
	publisher Publisher
	persister Persister
}

func defaultOptions() options {
	return options{logger: slog.New(slog.DiscardHandler)}
}

// WithLogger configures the Machine with a structured logger.
// Ignored events and committed transitions are logged at Debug.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithPublisher configures the Machine with a transition Publisher.
func WithPublisher(p Publisher) Option {
	return func(o *options) {
		o.publisher = p
	}
}

// WithPersister configures the Machine with a record Persister.
func WithPersister(p Persister) Option {
	return func(o *options) {
		o.persister = p
	}
}
