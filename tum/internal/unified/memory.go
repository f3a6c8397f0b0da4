package unified

import (
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/managed/driver"
)

// Operation names a kind of call made to the underlying driver
type Operation int

const (
	OperationAllocate Operation = iota
	OperationAttach
	OperationFree
	OperationPrefetch

	operationCount
)

var operationNames = [operationCount]string{
	OperationAllocate: "allocate",
	OperationAttach:   "attach",
	OperationFree:     "free",
	OperationPrefetch: "prefetch",
}

func (o Operation) String() string {
	if o < 0 || o >= operationCount {
		return "unknown"
	}
	return operationNames[o]
}

// Operations lists every Operation in order
func Operations() []Operation {
	ops := make([]Operation, operationCount)
	for i := range ops {
		ops[i] = Operation(i)
	}
	return ops
}

// Counters is a point-in-time read of the calls made to the driver. Both arrays are
// indexed by Operation.
type Counters struct {
	Calls    [operationCount]int64
	Failures [operationCount]int64
}

type MemoryCallbacks interface {
	Allocate(handle driver.Handle, size int, device int, stream driver.Stream)
	Free(handle driver.Handle, size int, device int)
}

// Memory issues calls to a driver.Driver and keeps count of them. It holds no per-allocation
// state: tracking which handles are live is the allocator's job.
type Memory struct {
	calls    [operationCount]atomic.Int64
	failures [operationCount]atomic.Int64

	driver          driver.Driver
	memoryCallbacks MemoryCallbacks
}

func NewMemory(drv driver.Driver, memoryCallbacks MemoryCallbacks) (*Memory, error) {
	if drv == nil {
		return nil, errors.New("a driver must be provided")
	}

	return &Memory{
		driver:          drv,
		memoryCallbacks: memoryCallbacks,
	}, nil
}

func (m *Memory) record(op Operation, err error) error {
	m.calls[op].Add(1)
	if err != nil {
		m.failures[op].Add(1)
	}
	return err
}

// Allocate requests size bytes of managed memory and, if stream is not driver.NoStream,
// attaches the memory to it. If the attach fails the memory remains allocated and its
// handle is returned alongside the error, but the allocate callback is not called.
func (m *Memory) Allocate(size int, device int, stream driver.Stream) (driver.Handle, error) {
	handle, err := m.driver.MallocManaged(size)
	if err == nil && handle == driver.NullHandle {
		err = errors.New("driver returned a null handle")
	}
	err = m.record(OperationAllocate, err)
	if err != nil {
		return driver.NullHandle, errors.Wrapf(err, "allocating %d bytes of managed memory", size)
	}

	if stream != driver.NoStream {
		err = m.record(OperationAttach, m.driver.StreamAttach(stream, handle, size))
		if err != nil {
			return handle, errors.Wrapf(err, "attaching %s to stream %s", handle, stream)
		}
	}

	if m.memoryCallbacks != nil {
		m.memoryCallbacks.Allocate(handle, size, device, stream)
	}

	return handle, nil
}

func (m *Memory) Free(handle driver.Handle, size int, device int) error {
	err := m.record(OperationFree, m.driver.Free(handle))
	if err != nil {
		return errors.Wrapf(err, "freeing %s", handle)
	}

	if m.memoryCallbacks != nil {
		m.memoryCallbacks.Free(handle, size, device)
	}

	return nil
}

func (m *Memory) Prefetch(handle driver.Handle, size int, device int, stream driver.Stream) error {
	err := m.record(OperationPrefetch, m.driver.PrefetchAsync(handle, size, device, stream))
	return errors.Wrapf(err, "prefetching %s (%d bytes) to device %d", handle, size, device)
}

func (m *Memory) Counters() Counters {
	var counters Counters
	for op := Operation(0); op < operationCount; op++ {
		counters.Calls[op] = m.calls[op].Load()
		counters.Failures[op] = m.failures[op].Load()
	}
	return counters
}
