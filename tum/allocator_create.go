package tum

import (
	"strings"

	"github.com/dolthub/swiss"
	"github.com/vkngwrapper/managed/driver"
	"github.com/vkngwrapper/managed/tum/internal/unified"
	"golang.org/x/exp/slog"
)

// CreateFlags indicate specific allocator behaviors to activate or deactivate
type CreateFlags int32

var allocatorCreateFlagsMapping = map[CreateFlags]string{}

func (f CreateFlags) Register(str string) {
	allocatorCreateFlagsMapping[f] = str
}

func (f CreateFlags) String() string {
	if f == 0 {
		return "None"
	}

	var names []string
	for bit := CreateFlags(1); bit != 0 && bit <= f; bit <<= 1 {
		if f&bit == 0 {
			continue
		}
		name, ok := allocatorCreateFlagsMapping[bit]
		if !ok {
			name = "Unknown"
		}
		names = append(names, name)
	}
	return strings.Join(names, "|")
}

const (
	// AllocatorCreateExternallySynchronized ensures that the allocation table will not be synchronized
	// internally. The consumer must guarantee the allocator is used from only one thread at a time or
	// is synchronized by some other mechanism.
	AllocatorCreateExternallySynchronized CreateFlags = 1 << iota
	// AllocatorCreatePrefetchBestEffort makes Prefetch issue a migration request for every live
	// allocation even after one has failed, returning all the failures together. Without it,
	// Prefetch stops at the first failure.
	AllocatorCreatePrefetchBestEffort
)

func init() {
	AllocatorCreateExternallySynchronized.Register("AllocatorCreateExternallySynchronized")
	AllocatorCreatePrefetchBestEffort.Register("AllocatorCreatePrefetchBestEffort")
}

const (
	// defaultInitialTableCapacity is the number of records the allocation table is sized for when
	// CreateOptions does not say otherwise
	defaultInitialTableCapacity = 1024
)

// CreateOptions contains optional settings when creating an allocator
type CreateOptions struct {
	// Flags indicates specific allocator behaviors to activate or deactivate
	Flags CreateFlags

	// Registry is the host framework's allocator registry, consulted by IsReady. It may be
	// left nil, in which case IsReady always reports false.
	Registry driver.Registry

	// MemoryCallbackOptions is an optional set of callbacks that will be executed when memory is
	// handed out by or returned to the underlying primitive
	MemoryCallbackOptions *MemoryCallbackOptions

	// InitialTableCapacity is the number of live allocations the table is sized for up front.
	// Zero selects a default.
	InitialTableCapacity int
}

// New creates a new Allocator over the provided driver
//
// logger - Receives debug output for every operation. If nil, slog.Default() is used
//
// drv - The underlying unified memory primitive
//
// options - Optional parameters: it is valid to leave all the fields blank
func New(logger *slog.Logger, drv driver.Driver, options CreateOptions) (*Allocator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	useMutex := options.Flags&AllocatorCreateExternallySynchronized == 0

	capacity := options.InitialTableCapacity
	if capacity <= 0 {
		capacity = defaultInitialTableCapacity
	}

	allocator := &Allocator{
		logger:      logger,
		registry:    options.Registry,
		createFlags: options.Flags,
		table:       swiss.NewMap[Handle, Record](uint32(capacity)),
	}

	allocator.tableMutex.Init(useMutex)

	var err error
	allocator.memory, err = unified.NewMemory(drv, &memoryCallbacks{
		Callbacks: options.MemoryCallbackOptions,
		Allocator: allocator,
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("Allocator::New",
		slog.String("Flags", options.Flags.String()),
		slog.Int("InitialTableCapacity", capacity),
	)

	allocator.initialized.Store(true)
	return allocator, nil
}
