package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthScore(t *testing.T) {
	tests := []struct {
		name     string
		clusters uint32
		inodes   uint32
		want     int32
	}{
		{"idle", 100, 100, 100},
		{"clusters exactly 75%", 1536, 0, 100},
		{"clusters above 75%", 1537, 0, 95},
		{"clusters above 85%", 1750, 0, 85},
		{"clusters above 95%", 1950, 0, 70},
		{"inodes above 85%", 0, 5300, 85},
		{"both above 95%", 2048, 6143, 40},
		{"clusters 85 inodes 75", 1750, 4700, 80},
	}

	for _, tt := range tests {
		got := HealthScore(tt.clusters, 2048, tt.inodes, 6143)
		assert.Equal(t, tt.want, got, tt.name)
	}
}

func TestHealthScoreZeroCapacity(t *testing.T) {
	assert.Equal(t, int32(100), HealthScore(5000, 0, 5000, 0))
}

func TestCollectCopiesBundle(t *testing.T) {
	m := Metrics{
		UsageReadable:      true,
		ClustersUsed:       1950,
		InodesUsed:         100,
		CapacityClusters:   2048,
		CapacityInodes:     6143,
		FirmwareTotal:      42,
		FirmwareStub:       5,
		FirmwareCustom:     3,
		HWRevision:         0x21,
		BootloaderVersion:  5,
		HasPrimaryDevice:   true,
		HasSecondaryDevice: true,
		InputCountA:        2,
		InputCountB:        9,
	}

	rec := Collect(m, 12)

	assert.Equal(t, Record{
		RunNumber:          12,
		ClustersUsed:       1950,
		InodesUsed:         100,
		HealthScore:        70,
		FirmwareTotal:      42,
		FirmwareStub:       5,
		FirmwareCustom:     3,
		HWRevision:         0x21,
		BootloaderVersion:  5,
		HasPrimaryDevice:   true,
		HasSecondaryDevice: true,
		NetworkOK:          false,
		InputCountA:        2,
		InputCountB:        MaxInputDevices,
	}, rec)
}

func TestCollectUnreadableUsage(t *testing.T) {
	rec := Collect(Metrics{ClustersUsed: 2048, CapacityClusters: 2048}, 1)

	assert.Equal(t, UnknownHealth, rec.HealthScore)
	assert.False(t, rec.HealthKnown())
	assert.Zero(t, rec.ClustersUsed)

	empty := Collect(Metrics{}, 3)
	assert.Equal(t, Record{RunNumber: 3, HealthScore: UnknownHealth}, empty)
}
