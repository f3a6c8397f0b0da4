package tum

// AllocateMemoryCallback is called after the underlying primitive has handed out memory and, if
// a stream was requested, attached it. It is not called for memory whose attach failed.
type AllocateMemoryCallback func(
	allocator *Allocator,
	handle Handle,
	size int,
	device int,
	stream Stream,
	userData interface{},
)

// FreeMemoryCallback is called after memory has been returned to the underlying primitive
type FreeMemoryCallback func(
	allocator *Allocator,
	handle Handle,
	size int,
	device int,
	userData interface{},
)

type MemoryCallbackOptions struct {
	Allocate AllocateMemoryCallback
	Free     FreeMemoryCallback
	UserData interface{}
}

type memoryCallbacks struct {
	Callbacks *MemoryCallbackOptions
	Allocator *Allocator
}

func (c *memoryCallbacks) Allocate(
	handle Handle,
	size int,
	device int,
	stream Stream,
) {
	if c.Callbacks != nil && c.Callbacks.Allocate != nil {
		c.Callbacks.Allocate(c.Allocator, handle, size, device, stream, c.Callbacks.UserData)
	}
}

func (c *memoryCallbacks) Free(
	handle Handle,
	size int,
	device int,
) {
	if c.Callbacks != nil && c.Callbacks.Free != nil {
		c.Callbacks.Free(c.Allocator, handle, size, device, c.Callbacks.UserData)
	}
}
