package history

// History file layout constants.
// These values define the on-disk format and MUST NOT be configurable.
const (
	// FileMagic identifies a history file ("WMHC").
	FileMagic uint32 = 0x574D4843

	// FileVersion is the only layout version this package reads or writes.
	FileVersion uint32 = 1

	// MaxSnapshots bounds the number of records kept in a history file.
	MaxSnapshots = 50

	// HeaderSize is the encoded size of Header in bytes.
	HeaderSize = 16

	// RecordSize is the encoded size of Record in bytes.
	RecordSize = 44

	// MaxInputDevices bounds each of the input-device counts.
	MaxInputDevices = 4

	// UnknownHealth marks a snapshot whose storage usage could not be read.
	UnknownHealth int32 = -1

	// DefaultFileName is the history file name placed on each storage device.
	DefaultFileName = "HealthTrack_History.dat"
)

const defaultFilePerm = 0o644

// DefaultPaths returns the candidate history file locations in preference order.
func DefaultPaths() []string {
	return []string{
		"/media/sd/" + DefaultFileName,
		"/media/usb/" + DefaultFileName,
	}
}
