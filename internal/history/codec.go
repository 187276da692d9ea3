package history

import "encoding/binary"

// byteOrder is the history file's integer encoding. Files are written
// big-endian so they stay readable by the console tooling that shares them.
var byteOrder = binary.BigEndian

// Decode parses a history file. A missing, truncated or foreign header
// yields an empty history; it is never an error. At most MaxSnapshots
// complete records are read and anything after them is ignored.
func Decode(data []byte) (Header, []Record) {
	if len(data) < HeaderSize {
		return Header{}, nil
	}

	hdr := Header{
		Magic:    byteOrder.Uint32(data[0:4]),
		Version:  byteOrder.Uint32(data[4:8]),
		Count:    byteOrder.Uint32(data[8:12]),
		Reserved: byteOrder.Uint32(data[12:16]),
	}
	if !hdr.Valid() {
		return Header{}, nil
	}

	count := int(min(hdr.Count, MaxSnapshots))
	available := (len(data) - HeaderSize) / RecordSize
	count = min(count, available)

	records := make([]Record, 0, count)
	for i := 0; i < count; i++ {
		off := HeaderSize + i*RecordSize
		records = append(records, decodeRecord(data[off:off+RecordSize]))
	}
	hdr.Count = uint32(count)

	return hdr, records
}

// Encode serializes records into a complete history file. The header is
// always derived from the records; the reserved word is written as zero.
func Encode(records []Record) []byte {
	buf := make([]byte, HeaderSize+len(records)*RecordSize)

	byteOrder.PutUint32(buf[0:4], FileMagic)
	byteOrder.PutUint32(buf[4:8], FileVersion)
	byteOrder.PutUint32(buf[8:12], uint32(len(records)))
	byteOrder.PutUint32(buf[12:16], 0)

	for i, rec := range records {
		off := HeaderSize + i*RecordSize
		encodeRecord(buf[off:off+RecordSize], rec)
	}

	return buf
}

func decodeRecord(b []byte) Record {
	return Record{
		RunNumber:          byteOrder.Uint32(b[0:4]),
		ClustersUsed:       byteOrder.Uint32(b[4:8]),
		InodesUsed:         byteOrder.Uint32(b[8:12]),
		HealthScore:        int32(byteOrder.Uint32(b[12:16])),
		FirmwareTotal:      byteOrder.Uint32(b[16:20]),
		FirmwareStub:       byteOrder.Uint32(b[20:24]),
		FirmwareCustom:     byteOrder.Uint32(b[24:28]),
		HWRevision:         byteOrder.Uint32(b[28:32]),
		BootloaderVersion:  byteOrder.Uint32(b[32:36]),
		HasPrimaryDevice:   b[36] != 0,
		HasSecondaryDevice: b[37] != 0,
		NetworkOK:          b[38] != 0,
		InputCountA:        b[39],
		InputCountB:        b[40],
		// b[41:44] is padding
	}
}

func encodeRecord(b []byte, rec Record) {
	byteOrder.PutUint32(b[0:4], rec.RunNumber)
	byteOrder.PutUint32(b[4:8], rec.ClustersUsed)
	byteOrder.PutUint32(b[8:12], rec.InodesUsed)
	byteOrder.PutUint32(b[12:16], uint32(rec.HealthScore))
	byteOrder.PutUint32(b[16:20], rec.FirmwareTotal)
	byteOrder.PutUint32(b[20:24], rec.FirmwareStub)
	byteOrder.PutUint32(b[24:28], rec.FirmwareCustom)
	byteOrder.PutUint32(b[28:32], rec.HWRevision)
	byteOrder.PutUint32(b[32:36], rec.BootloaderVersion)
	b[36] = boolToByte(rec.HasPrimaryDevice)
	b[37] = boolToByte(rec.HasSecondaryDevice)
	b[38] = boolToByte(rec.NetworkOK)
	b[39] = rec.InputCountA
	b[40] = rec.InputCountB
	b[41], b[42], b[43] = 0, 0, 0
}

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
