package history

import (
	"io"

	"codeberg.org/mutker/healthtrack/internal/errors"
	"codeberg.org/mutker/healthtrack/internal/logger"
)

// Store is a bounded, oldest-first sequence of snapshots loaded from one backend.
// It is not safe for concurrent use and is never cached between operations.
type Store struct {
	backend Backend
	records []Record
}

// Load resolves the history location and reads its records. It fails only
// when no backend is usable; an absent or unreadable file loads as empty.
func Load(locator *Locator) (*Store, error) {
	backend, err := locator.Resolve()
	if err != nil {
		return nil, err
	}

	return LoadFrom(backend), nil
}

// LoadFrom reads the records held by backend.
func LoadFrom(backend Backend) *Store {
	s := &Store{backend: backend}

	r, err := backend.OpenRead()
	if err != nil {
		logger.Debug().Err(err).Str("backend", backend.Name()).Msg("No readable history file")
		return s
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		logger.Warn().Err(err).Str("backend", backend.Name()).Msg("Failed to read history file")
		return s
	}

	hdr, records := Decode(data)
	if len(data) > 0 && !hdr.Valid() {
		logger.Warn().
			Str("backend", backend.Name()).
			Int("size", len(data)).
			Msg("History file has an unrecognized header, starting empty")
	}

	s.records = records
	logger.Debug().
		Str("backend", backend.Name()).
		Int("count", len(records)).
		Msg("History loaded")

	return s
}

// Location names the backend this store reads from and writes to.
func (s *Store) Location() string {
	return s.backend.Name()
}

// Len returns the number of stored snapshots.
func (s *Store) Len() int {
	return len(s.records)
}

// Records returns a copy of the stored snapshots, oldest first.
func (s *Store) Records() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Latest returns the newest snapshot.
func (s *Store) Latest() (Record, bool) {
	if len(s.records) == 0 {
		return Record{}, false
	}
	return s.records[len(s.records)-1], true
}

// Previous returns the snapshot before the newest one.
func (s *Store) Previous() (Record, bool) {
	if len(s.records) < 2 {
		return Record{}, false
	}
	return s.records[len(s.records)-2], true
}

// NextRunNumber derives the next run number from the stored snapshots, so a
// lost history file restarts numbering at 1.
func (s *Store) NextRunNumber() uint32 {
	last, ok := s.Latest()
	if !ok {
		return 1
	}
	return last.RunNumber + 1
}

// Append adds rec as the newest snapshot, first evicting the oldest one
// when the store already holds MaxSnapshots.
func (s *Store) Append(rec Record) error {
	if last, ok := s.Latest(); ok && rec.RunNumber < last.RunNumber {
		return errors.New().WithData(ErrRunNumberDecreased, struct {
			Last uint32
			Next uint32
		}{
			Last: last.RunNumber,
			Next: rec.RunNumber,
		})
	}

	if len(s.records) >= MaxSnapshots {
		evicted := s.records[0]
		copy(s.records, s.records[1:])
		s.records = s.records[:MaxSnapshots-1]
		logger.Debug().Uint32("run_number", evicted.RunNumber).Msg("Evicted oldest snapshot")
	}

	s.records = append(s.records, rec)

	return nil
}

// Persist writes the whole sequence back, replacing the file's content.
// On failure the in-memory sequence is left as it was.
func (s *Store) Persist() error {
	errFactory := errors.New()

	w, err := s.backend.OpenWrite()
	if err != nil {
		return errFactory.Wrap(ErrPersistFailed, err)
	}

	if _, err := w.Write(Encode(s.records)); err != nil {
		w.Close()
		return errFactory.Wrap(ErrPersistFailed, err)
	}

	if err := w.Close(); err != nil {
		return errFactory.Wrap(ErrPersistFailed, err)
	}

	logger.Debug().
		Str("backend", s.backend.Name()).
		Int("count", len(s.records)).
		Msg("History persisted")

	return nil
}
