// Package plugin exposes the process allocator through entry points shaped like a host framework's
// pluggable allocator contract. The host contract has no error channel, so Malloc and Release panic
// on any failure: a failed allocation, a double free or a foreign pointer aborts the caller.
//
// Only Malloc and Release build the process allocator. The diagnostic functions may be called at
// any time, including before Enable, without fixing its settings.
package plugin

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/managed/driver"
	"github.com/vkngwrapper/managed/tum"
	"golang.org/x/exp/slog"
)

// swapped out by tests
var (
	defaultAllocator       = tum.Default
	currentAllocator       = tum.Current
	enabledRegistry        = tum.EnabledRegistry
	maxSize          int64 = math.MaxInt
)

func mustAllocator() *tum.Allocator {
	allocator, err := defaultAllocator()
	if err != nil {
		panic(err)
	}
	return allocator
}

func hostSize(size int64) (int, error) {
	if size > maxSize {
		return 0, errors.Newf("size %d does not fit in an int", size)
	}
	return int(size), nil
}

// Enable configures the process allocator. It must be called before the host first allocates.
func Enable(logger *slog.Logger, drv driver.Driver, options tum.CreateOptions) error {
	return tum.Enable(logger, drv, options)
}

// Malloc allocates size bytes of unified memory for device, attached to stream when stream is
// nonzero, and returns its address. A size of zero returns 0.
func Malloc(size int64, device int, stream uintptr) uintptr {
	n, err := hostSize(size)
	if err != nil {
		panic(errors.Mark(err, tum.ErrAllocationFailure))
	}

	handle, err := mustAllocator().Allocate(n, device, driver.Stream(stream))
	if err != nil {
		panic(err)
	}
	return uintptr(handle)
}

// Release frees memory returned by Malloc. Releasing 0 is a no-op.
func Release(ptr uintptr, size int64, device int, stream uintptr) {
	n, err := hostSize(size)
	if err != nil {
		// Malloc never hands out an allocation this large
		panic(errors.Mark(err, tum.ErrUnknownHandle))
	}

	err = mustAllocator().Free(driver.Handle(ptr), n, device, driver.Stream(stream))
	if err != nil {
		panic(err)
	}
}

// IsReady reports whether the host's active allocator, as seen through the registry passed to
// Enable, has finished initializing
func IsReady() bool {
	return tum.IsReady(enabledRegistry())
}

// Prefetch migrates every live allocation to its device. Before the first allocation there is
// nothing to migrate.
func Prefetch() error {
	allocator, ok := currentAllocator()
	if !ok {
		return nil
	}
	return allocator.Prefetch()
}

// Snapshot returns every live allocation, ordered by address
func Snapshot() []tum.Record {
	allocator, ok := currentAllocator()
	if !ok {
		return nil
	}
	return allocator.Snapshot()
}
