package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"codeberg.org/mutker/healthtrack/internal/config"
	"codeberg.org/mutker/healthtrack/internal/errors"
	"codeberg.org/mutker/healthtrack/internal/history"
	"codeberg.org/mutker/healthtrack/internal/logger"
	"codeberg.org/mutker/healthtrack/internal/metrics"
	"codeberg.org/mutker/healthtrack/internal/probe"
	"codeberg.org/mutker/healthtrack/internal/tracker"
	"codeberg.org/mutker/healthtrack/internal/ui"
)

const usage = `Usage: healthtrack [flags] <command>

Commands:
  save       Collect a snapshot and append it to the history
  review     Show the latest snapshot, changes since the previous run and the timeline
  timeline   Show the recent snapshot timeline
`

var (
	cfg     *config.Config
	printer *ui.Printer
)

func init() {
	var err error
	cfg, err = config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	level, _ := logger.ParseLevel(cfg.LogLevel)
	logger.Init(level, logger.IsService())
	logger.Debug().Msg("Config loaded")

	printer = ui.New(os.Stdout, cfg.NoColor)
}

func main() {
	if len(cfg.Args) != 1 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	mirror, err := metrics.NewService(cfg.MetricsConfig(), logger.Default())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize snapshot mirror")
	}
	defer func() {
		if err := mirror.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close snapshot mirror")
		}
	}()

	host, err := probe.NewHost(cfg.ProbeConfig())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize host probe")
	}

	locator := history.NewLocator(history.FileBackends(cfg.Storage.Paths)...)
	svc := tracker.NewService(locator, host, mirror)

	var runErr error
	switch cmd := cfg.Args[0]; cmd {
	case "save":
		runErr = save(ctx, svc)
	case "review":
		runErr = review(ctx, svc)
	case "timeline":
		runErr = timeline(ctx, svc)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		os.Exit(2)
	}

	if runErr != nil {
		var appErr errors.Error
		if errors.As(runErr, &appErr) {
			logger.ErrorWithCode(appErr).Msg("command failed")
		} else {
			logger.Error().Err(runErr).Msg("command failed")
		}
		mirror.Close()
		os.Exit(1)
	}
}

func save(ctx context.Context, svc *tracker.Service) error {
	res, err := svc.SaveSnapshot(ctx)
	if errors.HasCode(err, history.ErrStorageUnavailable) {
		printer.Warn("No storage available for history tracking")
		return err
	}
	if err == nil || errors.HasCode(err, history.ErrPersistFailed) {
		printer.SaveResult(res)
	}
	return err
}

func review(ctx context.Context, svc *tracker.Service) error {
	rev, err := svc.LatestWithTrend(ctx)
	switch {
	case errors.HasCode(err, history.ErrStorageUnavailable):
		printer.Err("No history file found on any storage device")
		printer.Blank()
		printer.Info("Run 'healthtrack save' at least twice")
		printer.Info("to start tracking changes.")
		return err
	case errors.HasCode(err, tracker.ErrNoHistory):
		printer.Warn("History file is empty or corrupted")
		printer.Info("Save snapshots to start building history.")
		return nil
	case err != nil:
		return err
	}

	printer.Review(rev, cfg.Probe.CapacityClusters, cfg.Probe.CapacityInodes)

	if err := timeline(ctx, svc); err != nil {
		return err
	}

	printer.Blank()
	printer.OK("History review complete")
	return nil
}

func timeline(ctx context.Context, svc *tracker.Service) error {
	rows, err := svc.Timeline(ctx)
	if err != nil {
		return err
	}
	printer.Timeline(rows)
	return nil
}
