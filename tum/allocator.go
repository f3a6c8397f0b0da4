package tum

import (
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
	"github.com/hashicorp/go-multierror"
	"github.com/vkngwrapper/managed/driver"
	"github.com/vkngwrapper/managed/memutils"
	"github.com/vkngwrapper/managed/tum/internal/unified"
	"github.com/vkngwrapper/managed/tum/internal/utils"
	"golang.org/x/exp/slices"
	"golang.org/x/exp/slog"
)

// Allocator hands out unified memory from a driver.Driver and records the provenance of every
// live allocation so that all of them can later be prefetched to their device. It performs no
// caching: every Allocate is a fresh request to the driver and every Free returns memory to it.
//
// An Allocator is safe for concurrent use unless it was created with
// AllocatorCreateExternallySynchronized.
type Allocator struct {
	logger      *slog.Logger
	registry    driver.Registry
	createFlags CreateFlags
	initialized atomic.Bool

	memory *unified.Memory

	// tableMutex guards table and stats
	tableMutex utils.OptionalMutex
	table      *swiss.Map[Handle, Record]
	stats      memutils.Statistics
}

var _ driver.HostAllocator = &Allocator{}

// Allocate requests size bytes of unified memory for device and, if stream is not NoStream,
// attaches it to stream. A size of zero returns NullHandle without touching the driver.
//
// Failures from the driver are marked ErrAllocationFailure. If attaching to the stream fails,
// the memory has still been allocated but is not tracked.
func (a *Allocator) Allocate(size int, device int, stream Stream) (Handle, error) {
	a.logger.Debug("Allocator::Allocate", slog.Int("Size", size), slog.Int("Device", device), slog.String("Stream", stream.String()))

	if size == 0 {
		return NullHandle, nil
	}
	if size < 0 {
		return NullHandle, errors.Mark(errors.Newf("cannot allocate a negative number of bytes: %d", size), ErrAllocationFailure)
	}

	handle, err := a.memory.Allocate(size, device, stream)
	if err != nil {
		a.logger.Debug("  Allocator::Allocate FAILED", slog.String("Handle", handle.String()), slog.Any("error", err))
		return NullHandle, errors.Mark(err, ErrAllocationFailure)
	}

	record := Record{
		Handle: handle,
		Size:   size,
		Device: device,
		Stream: stream,
	}

	err = a.tableMutex.Do(func() error {
		if a.table.Has(handle) {
			return errors.Mark(errors.Newf("handle %s is already tracked", handle), ErrDuplicateHandle)
		}

		a.table.Put(handle, record)
		a.stats.AddAllocation(size)
		return nil
	})
	if err != nil {
		a.logger.Error("driver handed out memory that is still live", slog.String("Handle", handle.String()))
		return NullHandle, err
	}

	memutils.DebugValidate(a)

	return handle, nil
}

// Free stops tracking handle and returns its memory to the driver. Freeing NullHandle is a
// no-op. The remaining parameters mirror the host's release signature and are not needed to
// identify the allocation.
//
// A handle this allocator is not tracking fails with ErrUnknownHandle and leaves the table
// untouched. The record is removed before the driver is asked to release the memory, so a driver
// failure, marked ErrReleaseFailure, leaves the handle untracked.
func (a *Allocator) Free(handle Handle, size int, device int, stream Stream) error {
	a.logger.Debug("Allocator::Free", slog.String("Handle", handle.String()), slog.Int("Size", size), slog.Int("Device", device), slog.String("Stream", stream.String()))

	if handle == NullHandle {
		return nil
	}

	var record Record
	err := a.tableMutex.Do(func() error {
		var ok bool
		record, ok = a.table.Get(handle)
		if !ok {
			return errors.Wrapf(ErrUnknownHandle, "handle %s", handle)
		}

		a.table.Delete(handle)
		a.stats.RemoveAllocation(record.Size)
		return nil
	})
	if err != nil {
		a.logger.Debug("  Allocator::Free FAILED", slog.Any("error", err))
		return err
	}

	memutils.DebugValidate(a)

	err = a.memory.Free(handle, record.Size, record.Device)
	if err != nil {
		a.logger.Debug("  Allocator::Free FAILED", slog.Any("error", err))
		return errors.Mark(err, ErrReleaseFailure)
	}

	return nil
}

// Prefetch asks the driver to migrate every live allocation to the device it was allocated for,
// using its recorded size and stream. The table stays locked for the whole sweep, so Allocate
// and Free block until it finishes.
//
// By default the sweep stops at the first failure. With AllocatorCreatePrefetchBestEffort every
// allocation is attempted and all failures are returned together. Either way the result is
// marked ErrPrefetchFailure.
func (a *Allocator) Prefetch() error {
	a.logger.Debug("Allocator::Prefetch")

	bestEffort := a.createFlags&AllocatorCreatePrefetchBestEffort != 0

	var failures *multierror.Error
	err := a.tableMutex.Do(func() error {
		var sweepErr error
		a.table.Iter(func(handle Handle, record Record) (stop bool) {
			err := a.memory.Prefetch(handle, record.Size, record.Device, record.Stream)
			if err == nil {
				return false
			}

			if !bestEffort {
				sweepErr = err
				return true
			}

			failures = multierror.Append(failures, err)
			return false
		})

		if sweepErr != nil {
			return sweepErr
		}
		return failures.ErrorOrNil()
	})
	if err != nil {
		a.logger.Debug("  Allocator::Prefetch FAILED", slog.Any("error", err))
		return errors.Mark(err, ErrPrefetchFailure)
	}

	return nil
}

// Snapshot returns a copy of every live record, ordered by handle
func (a *Allocator) Snapshot() []Record {
	a.tableMutex.Lock()
	records := make([]Record, 0, a.table.Count())
	a.table.Iter(func(handle Handle, record Record) (stop bool) {
		records = append(records, record)
		return false
	})
	a.tableMutex.Unlock()

	slices.SortFunc(records, func(left, right Record) bool {
		return left.Handle < right.Handle
	})

	return records
}

// Lookup returns the record for handle, if this allocator is tracking it
func (a *Allocator) Lookup(handle Handle) (Record, bool) {
	a.tableMutex.Lock()
	defer a.tableMutex.Unlock()

	return a.table.Get(handle)
}

// Count returns the number of live allocations
func (a *Allocator) Count() int {
	a.tableMutex.Lock()
	defer a.tableMutex.Unlock()

	return a.table.Count()
}

// Initialized reports whether construction has completed. It lets an Allocator be reported
// by a driver.Registry. A nil Allocator is not initialized.
func (a *Allocator) Initialized() bool {
	if a == nil {
		return false
	}
	return a.initialized.Load()
}

// IsReady reports whether the host's currently active allocator, which need not be this one,
// has finished initializing. It returns false if no registry was provided.
func (a *Allocator) IsReady() bool {
	return IsReady(a.registry)
}

// IsReady reports whether the registry has an active allocator and that allocator has
// finished initializing
func IsReady(registry driver.Registry) bool {
	if registry == nil {
		return false
	}

	active, ok := registry.CurrentAllocator()
	if !ok || active == nil {
		return false
	}

	return active.Initialized()
}

// Validate checks that the running statistics agree with the allocation table
func (a *Allocator) Validate() error {
	a.tableMutex.Lock()
	defer a.tableMutex.Unlock()

	var actual memutils.Statistics
	a.table.Iter(func(handle Handle, record Record) (stop bool) {
		actual.AddAllocation(record.Size)
		return false
	})

	if actual.AllocationCount != a.stats.AllocationCount {
		return errors.Errorf("the allocator records %d live allocations but the table holds %d", a.stats.AllocationCount, actual.AllocationCount)
	}
	if actual.AllocationBytes != a.stats.AllocationBytes {
		return errors.Errorf("the allocator records %d live bytes but the table holds %d", a.stats.AllocationBytes, actual.AllocationBytes)
	}

	return nil
}
