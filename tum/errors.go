package tum

import "github.com/cockroachdb/errors"

var (
	// ErrAllocationFailure marks errors from the underlying primitive while allocating
	// memory or attaching it to a stream
	ErrAllocationFailure = errors.New("allocation failure")
	// ErrUnknownHandle marks an attempt to free memory that this allocator is not tracking,
	// either because it never issued the handle or because it was already freed
	ErrUnknownHandle = errors.New("memory was not allocated by this allocator")
	// ErrPrefetchFailure marks errors from the underlying primitive during a prefetch sweep
	ErrPrefetchFailure = errors.New("prefetch failure")
	// ErrReleaseFailure marks errors from the underlying primitive while releasing memory
	// that had already been removed from the allocation table
	ErrReleaseFailure = errors.New("release failure")
	// ErrDuplicateHandle marks a handle returned by the underlying primitive that is still
	// tracked as live
	ErrDuplicateHandle = errors.New("underlying allocator returned a live handle")

	// ErrNotEnabled is returned by Default when Enable was not called before first use
	ErrNotEnabled = errors.New("the process allocator was used before it was enabled")
	// ErrAlreadyInitialized is returned by Enable once the process allocator has been built
	ErrAlreadyInitialized = errors.New("the process allocator has already been initialized")
)
