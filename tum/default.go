package tum

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/managed/driver"
	"golang.org/x/exp/slog"
)

type processAllocator struct {
	// mutex guards factory, registry, built and allocator
	mutex    sync.Mutex
	factory  func() (*Allocator, error)
	registry driver.Registry
	built    bool

	once      sync.Once
	allocator *Allocator
	err       error
}

var process = &processAllocator{}

// Enable sets up the process-wide allocator returned by Default. The allocator itself is not
// built until Default is first called. Enable may be called again to replace the settings until
// then; afterward it returns ErrAlreadyInitialized.
func Enable(logger *slog.Logger, drv driver.Driver, options CreateOptions) error {
	return process.enable(options.Registry, func() (*Allocator, error) {
		return New(logger, drv, options)
	})
}

// Default returns the process-wide allocator, building it on first call from the settings
// passed to Enable. The first call's outcome is final: if Enable had not been called, this and
// every later call returns ErrNotEnabled. The allocator is never torn down.
func Default() (*Allocator, error) {
	return process.get()
}

// Current returns the process-wide allocator if Default has already built it. Unlike Default it
// never builds the allocator, so it is safe to call before Enable.
func Current() (*Allocator, bool) {
	return process.current()
}

// EnabledRegistry returns the registry passed to the most recent Enable, or nil
func EnabledRegistry() driver.Registry {
	process.mutex.Lock()
	defer process.mutex.Unlock()

	return process.registry
}

func (p *processAllocator) enable(registry driver.Registry, factory func() (*Allocator, error)) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.built {
		return ErrAlreadyInitialized
	}

	p.factory = factory
	p.registry = registry
	return nil
}

func (p *processAllocator) get() (*Allocator, error) {
	p.once.Do(func() {
		p.mutex.Lock()
		factory := p.factory
		p.built = true
		p.mutex.Unlock()

		if factory == nil {
			p.err = ErrNotEnabled
			return
		}

		allocator, err := factory()
		if err != nil {
			p.err = errors.Wrap(err, "building the process allocator")
			return
		}

		p.mutex.Lock()
		p.allocator = allocator
		p.mutex.Unlock()
	})

	return p.allocator, p.err
}

func (p *processAllocator) current() (*Allocator, bool) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return p.allocator, p.allocator != nil
}
