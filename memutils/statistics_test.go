package memutils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetailedStatisticsExtremes(t *testing.T) {
	var stats DetailedStatistics
	stats.Clear()

	require.Equal(t, math.MaxInt, stats.AllocationSizeMin)

	stats.AddAllocation(512, false)
	stats.AddAllocation(64, true)
	stats.AddAllocation(4096, true)

	require.Equal(t, 3, stats.AllocationCount)
	require.Equal(t, 4672, stats.AllocationBytes)
	require.Equal(t, 2, stats.StreamAttachedCount)
	require.Equal(t, 64, stats.AllocationSizeMin)
	require.Equal(t, 4096, stats.AllocationSizeMax)
}

func TestDetailedStatisticsMerge(t *testing.T) {
	var total, device0, device1 DetailedStatistics
	total.Clear()
	device0.Clear()
	device1.Clear()

	device0.AddAllocation(100, false)
	device1.AddAllocation(10, true)
	device1.AddAllocation(1000, false)

	total.AddDetailedStatistics(&device0)
	total.AddDetailedStatistics(&device1)

	require.Equal(t, 3, total.AllocationCount)
	require.Equal(t, 1110, total.AllocationBytes)
	require.Equal(t, 1, total.StreamAttachedCount)
	require.Equal(t, 10, total.AllocationSizeMin)
	require.Equal(t, 1000, total.AllocationSizeMax)
}

func TestStatisticsAddRemove(t *testing.T) {
	var stats Statistics

	stats.AddAllocation(256)
	stats.AddAllocation(128)
	stats.RemoveAllocation(256)

	require.Equal(t, Statistics{AllocationCount: 1, AllocationBytes: 128}, stats)

	stats.Clear()
	require.Zero(t, stats.AllocationCount)
	require.Zero(t, stats.AllocationBytes)
}
