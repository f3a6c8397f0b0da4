//go:build cuda

// Package cuda implements driver.Driver over the CUDA runtime's managed memory API.
package cuda

// #cgo LDFLAGS: -lcudart
// #include <cuda_runtime_api.h>
import "C"
import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/managed/driver"
)

// Error is a cudaError_t returned by the runtime
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func check(result C.cudaError_t) error {
	if result == C.cudaSuccess {
		return nil
	}

	return &Error{
		Code:    int(result),
		Message: C.GoString(C.cudaGetErrorString(result)),
	}
}

type Driver struct{}

var _ driver.Driver = Driver{}

func New() Driver {
	return Driver{}
}

func (Driver) MallocManaged(size int) (driver.Handle, error) {
	var ptr unsafe.Pointer
	err := check(C.cudaMallocManaged(&ptr, C.size_t(size), C.cudaMemAttachGlobal))
	if err != nil {
		return driver.NullHandle, errors.Wrapf(err, "cudaMallocManaged(%d)", size)
	}

	return driver.Handle(ptr), nil
}

func (Driver) StreamAttach(stream driver.Stream, handle driver.Handle, size int) error {
	err := check(C.cudaStreamAttachMemAsync(
		C.cudaStream_t(unsafe.Pointer(stream)),
		unsafe.Pointer(handle),
		C.size_t(size),
		C.cudaMemAttachSingle,
	))
	return errors.Wrapf(err, "cudaStreamAttachMemAsync(%s, %s)", stream, handle)
}

func (Driver) Free(handle driver.Handle) error {
	err := check(C.cudaFree(unsafe.Pointer(handle)))
	return errors.Wrapf(err, "cudaFree(%s)", handle)
}

func (Driver) PrefetchAsync(handle driver.Handle, size int, device int, stream driver.Stream) error {
	err := check(C.cudaMemPrefetchAsync(
		unsafe.Pointer(handle),
		C.size_t(size),
		C.int(device),
		C.cudaStream_t(unsafe.Pointer(stream)),
	))
	return errors.Wrapf(err, "cudaMemPrefetchAsync(%s, %d, %d)", handle, size, device)
}

// DeviceCount reports the number of CUDA devices visible to the process
func DeviceCount() (int, error) {
	var count C.int
	err := check(C.cudaGetDeviceCount(&count))
	if err != nil {
		return 0, errors.Wrap(err, "cudaGetDeviceCount")
	}
	return int(count), nil
}
