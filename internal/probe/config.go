package probe

import "codeberg.org/mutker/healthtrack/internal/errors"

const (
	defaultCapacityClusters = 2048
	defaultCapacityInodes   = 6143
	defaultHWRevisionFile   = "/sys/class/dmi/id/board_version"
	defaultBootloaderFile   = "/sys/class/dmi/id/bios_version"
)

type Config struct {
	// Root is the filesystem whose usage is measured
	Root             string
	CapacityClusters uint32
	CapacityInodes   uint32

	// FirmwareDir holds one entry per installed firmware slot
	FirmwareDir string

	HWRevisionFile string
	BootloaderFile string

	PrimaryMount   string
	SecondaryMount string

	InputGlobA string
	InputGlobB string
}

func DefaultConfig() Config {
	return Config{
		Root:             "/",
		CapacityClusters: defaultCapacityClusters,
		CapacityInodes:   defaultCapacityInodes,
		FirmwareDir:      "/lib/firmware",
		HWRevisionFile:   defaultHWRevisionFile,
		BootloaderFile:   defaultBootloaderFile,
		PrimaryMount:     "/media/sd",
		SecondaryMount:   "/media/usb",
		InputGlobA:       "/dev/input/js*",
		InputGlobB:       "/dev/hidraw*",
	}
}

func (c Config) Validate() error {
	errFactory := errors.New()

	if c.Root == "" {
		return errFactory.New(ErrInvalidRoot)
	}
	if c.CapacityClusters == 0 || c.CapacityInodes == 0 {
		return errFactory.WithData(errors.ErrInvalidCapacity, struct {
			Clusters uint32
			Inodes   uint32
		}{
			Clusters: c.CapacityClusters,
			Inodes:   c.CapacityInodes,
		})
	}
	return nil
}
