package history

import (
	"codeberg.org/mutker/healthtrack/internal/errors"
	"codeberg.org/mutker/healthtrack/internal/logger"
)

// Locator picks which backend holds, or will hold, the history file.
type Locator struct {
	backends []Backend
}

// NewLocator returns a Locator trying backends in the given order.
func NewLocator(backends ...Backend) *Locator {
	return &Locator{backends: backends}
}

// Resolve returns the first backend whose history file already exists.
// Failing that, it returns the first backend that accepts a write probe.
// Probes only open and close the file.
func (l *Locator) Resolve() (Backend, error) {
	errFactory := errors.New()

	if len(l.backends) == 0 {
		return nil, errFactory.New(ErrNoBackends)
	}

	for _, b := range l.backends {
		if b.Exists() {
			logger.Debug().Str("backend", b.Name()).Msg("Found existing history file")
			return b, nil
		}
	}

	for _, b := range l.backends {
		w, err := b.OpenWrite()
		if err != nil {
			logger.Debug().Err(err).Str("backend", b.Name()).Msg("Write probe failed")
			continue
		}
		if err := w.Close(); err != nil {
			logger.Debug().Err(err).Str("backend", b.Name()).Msg("Write probe close failed")
			continue
		}
		logger.Debug().Str("backend", b.Name()).Msg("Created new history file")
		return b, nil
	}

	names := make([]string, 0, len(l.backends))
	for _, b := range l.backends {
		names = append(names, b.Name())
	}

	return nil, errFactory.WithData(ErrStorageUnavailable, names)
}
