package tum

import (
	"strconv"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/managed/memutils"
	"github.com/vkngwrapper/managed/tum/internal/unified"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/exp/slog"
)

type (
	// DriverOperation names a kind of call made to the underlying driver
	DriverOperation = unified.Operation
	// DriverCounters counts the calls made to the underlying driver, and how many failed,
	// indexed by DriverOperation
	DriverCounters = unified.Counters
)

const (
	DriverOperationAllocate = unified.OperationAllocate
	DriverOperationAttach   = unified.OperationAttach
	DriverOperationFree     = unified.OperationFree
	DriverOperationPrefetch = unified.OperationPrefetch
)

// DriverOperations lists every DriverOperation
func DriverOperations() []DriverOperation {
	return unified.Operations()
}

// AllocatorStatistics describes the live allocations at one point in time
type AllocatorStatistics struct {
	Total   memutils.DetailedStatistics
	Devices map[int]*memutils.DetailedStatistics
}

// CalculateStatistics summarizes the live allocations in total and per device
func (a *Allocator) CalculateStatistics() AllocatorStatistics {
	a.logger.Debug("Allocator::CalculateStatistics")

	return summarize(a.Snapshot())
}

func summarize(records []Record) AllocatorStatistics {
	stats := AllocatorStatistics{
		Devices: make(map[int]*memutils.DetailedStatistics),
	}
	stats.Total.Clear()

	for _, record := range records {
		deviceStats, ok := stats.Devices[record.Device]
		if !ok {
			deviceStats = &memutils.DetailedStatistics{}
			deviceStats.Clear()
			stats.Devices[record.Device] = deviceStats
		}

		deviceStats.AddAllocation(record.Size, record.HasStream())
	}

	for _, deviceStats := range stats.Devices {
		stats.Total.AddDetailedStatistics(deviceStats)
	}

	return stats
}

// DriverCounters returns how many calls of each kind have been made to the underlying driver
func (a *Allocator) DriverCounters() DriverCounters {
	return a.memory.Counters()
}

func printDetailedStatistics(json *jwriter.ObjectState, stats *memutils.DetailedStatistics) {
	json.Name("AllocationCount").Int(stats.AllocationCount)
	json.Name("AllocationBytes").Int(stats.AllocationBytes)
	json.Name("StreamAttachedCount").Int(stats.StreamAttachedCount)

	if stats.AllocationCount > 0 {
		json.Name("AllocationSizeMin").Int(stats.AllocationSizeMin)
		json.Name("AllocationSizeMax").Int(stats.AllocationSizeMax)
	}
}

// BuildStatsString returns a JSON document summarizing live allocations and driver calls. If
// detailed is true, every live allocation is listed under its device.
func (a *Allocator) BuildStatsString(detailed bool) string {
	a.logger.Debug("Allocator::BuildStatsString", slog.Bool("Detailed", detailed))

	records := a.Snapshot()
	stats := summarize(records)
	counters := a.DriverCounters()

	writer := jwriter.NewWriter()
	root := writer.Object()

	{
		general := root.Name("General").Object()
		general.Name("Flags").String(a.createFlags.String())
		general.Name("Synchronized").Bool(a.tableMutex.Enabled())
		general.End()
	}

	{
		total := root.Name("Total").Object()
		printDetailedStatistics(&total, &stats.Total)
		total.End()
	}

	{
		driverObj := root.Name("Driver").Object()
		for _, op := range DriverOperations() {
			opObj := driverObj.Name(op.String()).Object()
			opObj.Name("Calls").Int(int(counters.Calls[op]))
			opObj.Name("Failures").Int(int(counters.Failures[op]))
			opObj.End()
		}
		driverObj.End()
	}

	devices := maps.Keys(stats.Devices)
	slices.Sort(devices)

	devicesObj := root.Name("Devices").Object()
	for _, device := range devices {
		deviceObj := devicesObj.Name(strconv.Itoa(device)).Object()

		statsObj := deviceObj.Name("Stats").Object()
		printDetailedStatistics(&statsObj, stats.Devices[device])
		statsObj.End()

		if detailed {
			allocations := deviceObj.Name("Allocations").Array()
			for _, record := range records {
				if record.Device != device {
					continue
				}

				obj := allocations.Object()
				record.printParameters(&obj)
				obj.End()
			}
			allocations.End()
		}

		deviceObj.End()
	}
	devicesObj.End()

	root.End()

	return string(writer.Bytes())
}
