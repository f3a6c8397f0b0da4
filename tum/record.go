package tum

import (
	"fmt"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/managed/driver"
)

type (
	Handle = driver.Handle
	Stream = driver.Stream
)

const (
	NullHandle = driver.NullHandle
	NoStream   = driver.NoStream
)

// Record is the provenance the allocator keeps for one live allocation
type Record struct {
	Handle Handle
	// Size is the number of bytes requested
	Size int
	// Device is the device context the allocation was made for
	Device int
	// Stream is the stream the allocation was attached to, or NoStream
	Stream Stream
}

func (r Record) HasStream() bool {
	return r.Stream != NoStream
}

func (r Record) String() string {
	return fmt.Sprintf("%s: %d bytes, device %d, stream %s", r.Handle, r.Size, r.Device, r.Stream)
}

func (r Record) printParameters(json *jwriter.ObjectState) {
	json.Name("Handle").String(r.Handle.String())
	json.Name("Size").Int(r.Size)
	json.Name("Device").Int(r.Device)
	if r.HasStream() {
		json.Name("Stream").String(r.Stream.String())
	}
}
