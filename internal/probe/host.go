package probe

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"codeberg.org/mutker/healthtrack/internal/errors"
	"codeberg.org/mutker/healthtrack/internal/history"
	"codeberg.org/mutker/healthtrack/internal/logger"
	"golang.org/x/sys/unix"
)

// Host probes the local machine. Each probe that fails leaves its fields
// at their zero value; only a failed usage query is reported, through
// Metrics.UsageReadable.
type Host struct {
	cfg Config
}

func NewHost(cfg Config) (*Host, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Host{cfg: cfg}, nil
}

func (h *Host) Collect(ctx context.Context) (history.Metrics, error) {
	if err := ctx.Err(); err != nil {
		return history.Metrics{}, errors.New().Wrap(ErrProbeCancelled, err)
	}

	m := history.Metrics{
		CapacityClusters: h.cfg.CapacityClusters,
		CapacityInodes:   h.cfg.CapacityInodes,
	}

	if usage, err := StatUsage(h.cfg.Root); err != nil {
		logger.Warn().Err(err).Str("root", h.cfg.Root).Msg("Storage usage unreadable")
	} else {
		m.UsageReadable = true
		m.ClustersUsed = scale(usage.BlocksUsed, usage.BlocksTotal, h.cfg.CapacityClusters)
		m.InodesUsed = scale(usage.InodesUsed, usage.InodesTotal, h.cfg.CapacityInodes)
	}

	m.FirmwareTotal, m.FirmwareStub, m.FirmwareCustom = countFirmware(h.cfg.FirmwareDir)
	m.HWRevision = readCode(h.cfg.HWRevisionFile)
	m.BootloaderVersion = readCode(h.cfg.BootloaderFile)
	m.HasPrimaryDevice = dirReadable(h.cfg.PrimaryMount)
	m.HasSecondaryDevice = dirReadable(h.cfg.SecondaryMount)
	m.InputCountA = countInputs(h.cfg.InputGlobA)
	m.InputCountB = countInputs(h.cfg.InputGlobB)

	logger.Debug().
		Bool("usage_readable", m.UsageReadable).
		Uint32("clusters_used", m.ClustersUsed).
		Uint32("inodes_used", m.InodesUsed).
		Uint32("firmware_total", m.FirmwareTotal).
		Uint32("firmware_stub", m.FirmwareStub).
		Bool("primary_device", m.HasPrimaryDevice).
		Bool("secondary_device", m.HasSecondaryDevice).
		Msg("Host metrics collected")

	return m, nil
}

// StatUsage queries block and inode usage of the filesystem holding path.
func StatUsage(path string) (Usage, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return Usage{}, errors.New().Wrap(ErrUsageUnreadable, err)
	}

	return Usage{
		BlocksTotal: st.Blocks,
		BlocksUsed:  st.Blocks - st.Bfree,
		InodesTotal: st.Files,
		InodesUsed:  st.Files - st.Ffree,
	}, nil
}

// scale maps used/total onto a fixed capacity so that the health score
// thresholds apply to filesystems of any size.
func scale(used, total uint64, capacity uint32) uint32 {
	if total == 0 {
		return 0
	}
	return uint32(min(used, total) * uint64(capacity) / total)
}

func countFirmware(dir string) (total, stub, custom uint32) {
	if dir == "" {
		return 0, 0, 0
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Debug().Err(err).Str("dir", dir).Msg("Firmware inventory unavailable")
		return 0, 0, 0
	}

	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		total++

		if info, err := e.Info(); err == nil && info.Size() == 0 {
			stub++
		}

		name := strings.ToLower(e.Name())
		if strings.Contains(name, "cios") || strings.Contains(name, "custom") {
			custom++
		}
	}

	return total, stub, custom
}

// readCode extracts the digits of a version file as an opaque code.
func readCode(path string) uint32 {
	if path == "" {
		return 0
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}

	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, string(data))

	code, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		return 0
	}
	return uint32(code)
}

func dirReadable(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.ReadDir(path)
	return err == nil
}

func countInputs(pattern string) uint8 {
	if pattern == "" {
		return 0
	}
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return 0
	}
	return uint8(min(len(matches), history.MaxInputDevices))
}
