package metrics

import (
	"context"

	"codeberg.org/mutker/healthtrack/internal/errors"
	"codeberg.org/mutker/healthtrack/internal/logger"
)

type service struct {
	repo Repository
	cfg  Config
}

// No-op implementation
type noopMirror struct{}

func NewService(cfg Config, log logger.Logger) (Mirror, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}

	// If mirroring is disabled, return a no-op mirror
	if !cfg.Enabled {
		log.Debug().Msg("Snapshot mirror disabled, using no-op mirror")
		return &noopMirror{}, nil
	}

	repo, err := NewRepository(cfg, log)
	if err != nil {
		log.Debug().Err(err).Msg("Failed to create snapshot repository")
		return nil, err
	}

	log.Debug().
		Str("db_path", cfg.DBPath).
		Bool("enabled", cfg.Enabled).
		Msg("Snapshot mirror initialized successfully")

	return &service{
		repo: repo,
		cfg:  cfg,
	}, nil
}

func (s *service) Record(ctx context.Context, entry *Entry) error {
	errFactory := errors.New()

	if entry == nil {
		return errFactory.WithMessage(ErrMirrorSnapshot, "nil snapshot entry")
	}

	select {
	case <-ctx.Done():
		return errFactory.Wrap(ErrOperationTimeout, ctx.Err())
	default:
		if err := s.repo.Insert(ctx, entry); err != nil {
			return errFactory.Wrap(ErrMirrorSnapshot, err)
		}
	}

	return nil
}

func (s *service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *service) Close() error {
	errFactory := errors.New()

	if err := s.repo.Close(); err != nil {
		return errFactory.Wrap(ErrStorageClose, err)
	}
	return nil
}

func (*noopMirror) Record(_ context.Context, _ *Entry) error {
	return nil
}

func (*noopMirror) Count(_ context.Context) (int, error) {
	return 0, nil
}

func (*noopMirror) Close() error {
	return nil
}
