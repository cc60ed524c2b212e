package profilesync

import (
	"time"

	"github.com/dmitrijs2005/fuel/internal/clock"
	"github.com/dmitrijs2005/fuel/internal/logging"
)

const (
	DefaultDebounce    = time.Second
	DefaultSaveTimeout = 10 * time.Second
)

type Option func(*Coordinator)

func WithClock(c clock.Clock) Option {
	return func(co *Coordinator) { co.clock = c }
}

// WithDebounce sets the quiet period between the last edit and the save.
func WithDebounce(d time.Duration) Option {
	return func(co *Coordinator) {
		if d > 0 {
			co.debounce = d
		}
	}
}

// WithSaveTimeout bounds each remote save started by the debounce timer.
func WithSaveTimeout(d time.Duration) Option {
	return func(co *Coordinator) {
		if d > 0 {
			co.saveTimeout = d
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(co *Coordinator) { co.logger = l }
}
