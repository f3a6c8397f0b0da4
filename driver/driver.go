package driver

import "fmt"

//go:generate mockgen -source driver.go -destination ../mocks/driver.go -package mocks

// Handle is an opaque, address-sized identifier for a region of unified memory
type Handle uintptr

// NullHandle is the empty handle. It is returned for zero-byte allocations and freeing it is a no-op.
const NullHandle Handle = 0

func (h Handle) String() string {
	return fmt.Sprintf("0x%x", uintptr(h))
}

// Stream identifies an ordered queue of device work. NoStream indicates that memory is not
// attached to any stream-ordered context.
type Stream uintptr

// NoStream is the absent stream
const NoStream Stream = 0

func (s Stream) String() string {
	if s == NoStream {
		return "none"
	}
	return fmt.Sprintf("0x%x", uintptr(s))
}

// Driver is the underlying unified-memory primitive. Implementations report failures through
// their error returns and must be safe to call from multiple goroutines.
type Driver interface {
	// MallocManaged allocates size bytes of memory addressable from both host and device
	MallocManaged(size int) (Handle, error)
	// StreamAttach associates an allocation with a stream for migration and visibility tracking
	StreamAttach(stream Stream, handle Handle, size int) error
	// Free releases memory previously returned by MallocManaged
	Free(handle Handle) error
	// PrefetchAsync schedules migration of size bytes at handle to be resident near device
	PrefetchAsync(handle Handle, size int, device int, stream Stream) error
}

// HostAllocator is the view the host framework's registry has of whichever allocator it
// is currently using
type HostAllocator interface {
	Initialized() bool
}

// Registry is the host framework's allocator registry
type Registry interface {
	// CurrentAllocator returns the active allocator, or false if none is active
	CurrentAllocator() (HostAllocator, bool)
}

// StaticRegistry is a Registry that always reports the same allocator. A nil Active means
// no allocator is active.
type StaticRegistry struct {
	Active HostAllocator
}

func (r StaticRegistry) CurrentAllocator() (HostAllocator, bool) {
	if r.Active == nil {
		return nil, false
	}
	return r.Active, true
}
