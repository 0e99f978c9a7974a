package extensibility

import (
	"log/slog"
	"time"

	"github.com/comalice/headlessx/internal/primitives"
)

// TraceDispatch wraps next so every event is logged with its duration and
// outcome. A nil logger returns next unchanged.
func TraceDispatch(next primitives.Dispatch, logger *slog.Logger, attrs ...any) primitives.Dispatch {
	if logger == nil {
		return next
	}
	logger = logger.With(attrs...)
	return func(evt primitives.Event) error {
		start := time.Now()
		err := next(evt)
		if err != nil {
			logger.Warn("dispatch failed", "event", evt.Type, "elapsed", time.Since(start), "error", err)
			return err
		}
		logger.Debug("dispatch", "event", evt.Type, "elapsed", time.Since(start))
		return nil
	}
}

// Tracing returns TraceDispatch as a decorator for Chain.
func Tracing(logger *slog.Logger, attrs ...any) func(primitives.Dispatch) primitives.Dispatch {
	return func(next primitives.Dispatch) primitives.Dispatch {
		return TraceDispatch(next, logger, attrs...)
	}
}

// Chain applies decorators so the first one is outermost.
func Chain(d primitives.Dispatch, decorators ...func(primitives.Dispatch) primitives.Dispatch) primitives.Dispatch {
	for i := len(decorators) - 1; i >= 0; i-- {
		d = decorators[i](d)
	}
	return d
}
