package history

import "io"

// Backend is one candidate location for the history file.
type Backend interface {
	// Name identifies the location in logs and user output
	Name() string

	// Exists reports whether the history file can be opened for reading
	Exists() bool

	// OpenRead opens the history file for reading
	OpenRead() (io.ReadCloser, error)

	// OpenWrite opens the history file for writing, replacing prior content
	OpenWrite() (io.WriteCloser, error)
}

// Header is the fixed-size preamble of a history file.
type Header struct {
	Magic    uint32
	Version  uint32
	Count    uint32
	Reserved uint32
}

// Valid reports whether the header was written by this layout version.
func (h Header) Valid() bool {
	return h.Magic == FileMagic && h.Version == FileVersion
}

// Record is one system-health snapshot as stored in the history file.
type Record struct {
	RunNumber uint32

	// Storage usage
	ClustersUsed uint32
	InodesUsed   uint32
	HealthScore  int32

	// Firmware inventory
	FirmwareTotal  uint32
	FirmwareStub   uint32
	FirmwareCustom uint32

	// Hardware identity
	HWRevision        uint32
	BootloaderVersion uint32

	// Device presence
	HasPrimaryDevice   bool
	HasSecondaryDevice bool

	// Reserved, never measured
	NetworkOK bool

	// Input devices, each 0..MaxInputDevices
	InputCountA uint8
	InputCountB uint8
}

// HealthKnown reports whether the health score was measured.
func (r Record) HealthKnown() bool {
	return r.HealthScore != UnknownHealth
}

// Metrics is the bundle supplied by the system probes for one snapshot.
// It carries every Record field except the run number.
type Metrics struct {
	// UsageReadable is false when the storage usage query failed
	UsageReadable    bool
	ClustersUsed     uint32
	InodesUsed       uint32
	CapacityClusters uint32
	CapacityInodes   uint32

	FirmwareTotal  uint32
	FirmwareStub   uint32
	FirmwareCustom uint32

	HWRevision        uint32
	BootloaderVersion uint32

	HasPrimaryDevice   bool
	HasSecondaryDevice bool

	InputCountA uint8
	InputCountB uint8
}
