package memutils

import "math"

// Statistics are running totals for a set of live allocations
type Statistics struct {
	AllocationCount int
	AllocationBytes int
}

func (s *Statistics) Clear() {
	s.AllocationCount = 0
	s.AllocationBytes = 0
}

func (s *Statistics) AddAllocation(size int) {
	s.AllocationCount++
	s.AllocationBytes += size
}

func (s *Statistics) RemoveAllocation(size int) {
	s.AllocationCount--
	s.AllocationBytes -= size
}

func (s *Statistics) AddStatistics(other *Statistics) {
	s.AllocationCount += other.AllocationCount
	s.AllocationBytes += other.AllocationBytes
}

// DetailedStatistics are computed by visiting every live allocation, so unlike Statistics
// they can report extremes
type DetailedStatistics struct {
	Statistics
	// StreamAttachedCount is the number of allocations associated with a stream
	StreamAttachedCount int
	AllocationSizeMin   int
	AllocationSizeMax   int
}

func (s *DetailedStatistics) Clear() {
	s.Statistics.Clear()
	s.StreamAttachedCount = 0
	s.AllocationSizeMin = math.MaxInt
	s.AllocationSizeMax = 0
}

func (s *DetailedStatistics) AddAllocation(size int, streamAttached bool) {
	s.Statistics.AddAllocation(size)

	if streamAttached {
		s.StreamAttachedCount++
	}

	if size < s.AllocationSizeMin {
		s.AllocationSizeMin = size
	}

	if size > s.AllocationSizeMax {
		s.AllocationSizeMax = size
	}
}

func (s *DetailedStatistics) AddDetailedStatistics(other *DetailedStatistics) {
	s.Statistics.AddStatistics(&other.Statistics)
	s.StreamAttachedCount += other.StreamAttachedCount

	if other.AllocationSizeMin < s.AllocationSizeMin {
		s.AllocationSizeMin = other.AllocationSizeMin
	}

	if other.AllocationSizeMax > s.AllocationSizeMax {
		s.AllocationSizeMax = other.AllocationSizeMax
	}
}
