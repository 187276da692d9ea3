package history

// Usage thresholds, in percent, and the health penalty for crossing each.
var healthPenalties = []struct {
	above   float64
	penalty int32
}{
	{95, 30},
	{85, 15},
	{75, 5},
}

// Collect builds the snapshot for run number run from a probe bundle.
func Collect(m Metrics, run uint32) Record {
	rec := Record{
		RunNumber:          run,
		HealthScore:        UnknownHealth,
		FirmwareTotal:      m.FirmwareTotal,
		FirmwareStub:       m.FirmwareStub,
		FirmwareCustom:     m.FirmwareCustom,
		HWRevision:         m.HWRevision,
		BootloaderVersion:  m.BootloaderVersion,
		HasPrimaryDevice:   m.HasPrimaryDevice,
		HasSecondaryDevice: m.HasSecondaryDevice,
		NetworkOK:          false,
		InputCountA:        min(m.InputCountA, MaxInputDevices),
		InputCountB:        min(m.InputCountB, MaxInputDevices),
	}

	if m.UsageReadable {
		rec.ClustersUsed = m.ClustersUsed
		rec.InodesUsed = m.InodesUsed
		rec.HealthScore = HealthScore(m.ClustersUsed, m.CapacityClusters, m.InodesUsed, m.CapacityInodes)
	}

	return rec
}

// HealthScore rates storage pressure from 0 to 100. Cluster and inode usage
// are penalized independently; a zero capacity contributes no penalty.
func HealthScore(clustersUsed, capacityClusters, inodesUsed, capacityInodes uint32) int32 {
	score := int32(100)
	score -= usagePenalty(UsagePercent(clustersUsed, capacityClusters))
	score -= usagePenalty(UsagePercent(inodesUsed, capacityInodes))

	return max(score, 0)
}

// UsagePercent returns used as a percentage of capacity.
func UsagePercent(used, capacity uint32) float64 {
	if capacity == 0 {
		return 0
	}
	return float64(used) * 100 / float64(capacity)
}

func usagePenalty(pct float64) int32 {
	for _, p := range healthPenalties {
		if pct > p.above {
			return p.penalty
		}
	}
	return 0
}
