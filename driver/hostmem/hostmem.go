//go:build unix

// Package hostmem implements driver.Driver over anonymous host mappings. It stands in for a
// device runtime on machines without one: "unified" memory is ordinary process memory and
// prefetching only asks the kernel to fault the pages in.
package hostmem

import (
	"sync"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
	"github.com/vkngwrapper/managed/driver"
	"golang.org/x/sys/unix"
)

// ErrOutOfMemory is returned when an allocation would exceed Options.Limit
var ErrOutOfMemory = errors.New("out of memory")

// ErrInvalidValue is returned for handles, sizes, devices or streams the driver does not recognize
var ErrInvalidValue = errors.New("invalid value")

type Options struct {
	// DeviceCount is the number of devices PrefetchAsync accepts. Zero means one device.
	DeviceCount int
	// Limit is the maximum number of bytes that may be mapped at once. Zero means no limit.
	Limit int
}

type mapping struct {
	data   []byte
	stream driver.Stream
}

type Driver struct {
	deviceCount int
	limit       int

	mutex    sync.Mutex
	mapped   int
	mappings *swiss.Map[driver.Handle, *mapping]
}

var _ driver.Driver = &Driver{}

func New(options Options) *Driver {
	deviceCount := options.DeviceCount
	if deviceCount <= 0 {
		deviceCount = 1
	}

	return &Driver{
		deviceCount: deviceCount,
		limit:       options.Limit,
		mappings:    swiss.NewMap[driver.Handle, *mapping](16),
	}
}

func (d *Driver) MallocManaged(size int) (driver.Handle, error) {
	if size <= 0 {
		return driver.NullHandle, errors.Wrapf(ErrInvalidValue, "size %d", size)
	}

	d.mutex.Lock()
	if d.limit > 0 && d.mapped+size > d.limit {
		d.mutex.Unlock()
		return driver.NullHandle, errors.Wrapf(ErrOutOfMemory, "%d bytes requested with %d of %d bytes in use", size, d.mapped, d.limit)
	}
	d.mapped += size
	d.mutex.Unlock()

	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		d.mutex.Lock()
		d.mapped -= size
		d.mutex.Unlock()
		return driver.NullHandle, errors.Wrap(err, "mmap")
	}

	handle := driver.Handle(unsafe.Pointer(&data[0]))

	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.mappings.Put(handle, &mapping{data: data})
	return handle, nil
}

func (d *Driver) StreamAttach(stream driver.Stream, handle driver.Handle, size int) error {
	if stream == driver.NoStream {
		return errors.Wrap(ErrInvalidValue, "cannot attach to the null stream")
	}

	d.mutex.Lock()
	defer d.mutex.Unlock()

	m, ok := d.mappings.Get(handle)
	if !ok {
		return errors.Wrapf(ErrInvalidValue, "handle %s is not mapped", handle)
	}
	if size > len(m.data) {
		return errors.Wrapf(ErrInvalidValue, "attach length %d exceeds mapping of %d bytes", size, len(m.data))
	}

	m.stream = stream
	return nil
}

func (d *Driver) Free(handle driver.Handle) error {
	d.mutex.Lock()
	m, ok := d.mappings.Get(handle)
	if !ok {
		d.mutex.Unlock()
		return errors.Wrapf(ErrInvalidValue, "handle %s is not mapped", handle)
	}
	d.mappings.Delete(handle)
	d.mapped -= len(m.data)
	d.mutex.Unlock()

	return errors.Wrap(unix.Munmap(m.data), "munmap")
}

func (d *Driver) PrefetchAsync(handle driver.Handle, size int, device int, stream driver.Stream) error {
	if device < 0 || device >= d.deviceCount {
		return errors.Wrapf(ErrInvalidValue, "device %d out of range [0, %d)", device, d.deviceCount)
	}

	d.mutex.Lock()
	defer d.mutex.Unlock()

	m, ok := d.mappings.Get(handle)
	if !ok {
		return errors.Wrapf(ErrInvalidValue, "handle %s is not mapped", handle)
	}
	if stream != driver.NoStream && m.stream != stream {
		return errors.Wrapf(ErrInvalidValue, "handle %s is not attached to stream %s", handle, stream)
	}
	if size <= 0 || size > len(m.data) {
		return errors.Wrapf(ErrInvalidValue, "prefetch length %d for mapping of %d bytes", size, len(m.data))
	}

	return errors.Wrap(unix.Madvise(m.data[:size], unix.MADV_WILLNEED), "madvise")
}

// MappedBytes returns the number of bytes currently mapped by this driver
func (d *Driver) MappedBytes() int {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	return d.mapped
}

// Bytes returns the memory behind a live handle, or nil if the handle is not mapped
func (d *Driver) Bytes(handle driver.Handle) []byte {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	m, ok := d.mappings.Get(handle)
	if !ok {
		return nil
	}
	return m.data
}
