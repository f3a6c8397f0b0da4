// Package metrics exports allocator statistics to Prometheus.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vkngwrapper/managed/tum"
)

const (
	descLiveAllocations = iota
	descLiveAllocationBytes
	descStreamAttachedAllocations
	descDriverCalls
	descDriverFailures
)

var (
	descriptors = []*prometheus.Desc{
		descLiveAllocations: prometheus.NewDesc(
			"tum_live_allocations",
			"Number of live allocations tracked by the allocator.",
			[]string{
				"device",
			},
			nil,
		),
		descLiveAllocationBytes: prometheus.NewDesc(
			"tum_live_allocation_bytes",
			"Bytes of unified memory held by live allocations.",
			[]string{
				"device",
			},
			nil,
		),
		descStreamAttachedAllocations: prometheus.NewDesc(
			"tum_stream_attached_allocations",
			"Number of live allocations attached to a stream.",
			[]string{
				"device",
			},
			nil,
		),
		descDriverCalls: prometheus.NewDesc(
			"tum_driver_calls_total",
			"Calls made to the unified memory driver.",
			[]string{
				"operation",
			},
			nil,
		),
		descDriverFailures: prometheus.NewDesc(
			"tum_driver_failures_total",
			"Calls to the unified memory driver that returned an error.",
			[]string{
				"operation",
			},
			nil,
		),
	}
)

// Source is what the collector reads on every scrape. *tum.Allocator implements it.
type Source interface {
	CalculateStatistics() tum.AllocatorStatistics
	DriverCounters() tum.DriverCounters
}

// Collector implements prometheus.Collector over an allocator
type Collector struct {
	source Source
}

var _ prometheus.Collector = &Collector{}

func NewCollector(source Source) *Collector {
	return &Collector{source: source}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range descriptors {
		ch <- d
	}
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	stats := c.source.CalculateStatistics()
	for device, deviceStats := range stats.Devices {
		label := strconv.Itoa(device)

		ch <- prometheus.MustNewConstMetric(
			descriptors[descLiveAllocations],
			prometheus.GaugeValue,
			float64(deviceStats.AllocationCount),
			label,
		)
		ch <- prometheus.MustNewConstMetric(
			descriptors[descLiveAllocationBytes],
			prometheus.GaugeValue,
			float64(deviceStats.AllocationBytes),
			label,
		)
		ch <- prometheus.MustNewConstMetric(
			descriptors[descStreamAttachedAllocations],
			prometheus.GaugeValue,
			float64(deviceStats.StreamAttachedCount),
			label,
		)
	}

	counters := c.source.DriverCounters()
	for _, op := range tum.DriverOperations() {
		ch <- prometheus.MustNewConstMetric(
			descriptors[descDriverCalls],
			prometheus.CounterValue,
			float64(counters.Calls[op]),
			op.String(),
		)
		ch <- prometheus.MustNewConstMetric(
			descriptors[descDriverFailures],
			prometheus.CounterValue,
			float64(counters.Failures[op]),
			op.String(),
		)
	}
}
