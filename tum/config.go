package tum

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/managed/driver"
	"sigs.k8s.io/yaml"
)

// PrefetchMode selects how Prefetch handles a failed migration request
type PrefetchMode string

const (
	// PrefetchStrict stops the sweep at the first failure
	PrefetchStrict PrefetchMode = "strict"
	// PrefetchBestEffort attempts every allocation and reports all failures
	PrefetchBestEffort PrefetchMode = "best-effort"
)

// Config is the serializable subset of CreateOptions
type Config struct {
	// ExternallySynchronized disables the allocation table's mutex
	ExternallySynchronized bool `json:"externallySynchronized,omitempty"`
	// PrefetchMode is PrefetchStrict if left empty
	PrefetchMode PrefetchMode `json:"prefetchMode,omitempty"`
	// InitialTableCapacity is the number of live allocations the table is sized for up front
	InitialTableCapacity int `json:"initialTableCapacity,omitempty"`
}

// ParseConfig reads a Config from YAML or JSON. Unknown fields are rejected.
func ParseConfig(data []byte) (Config, error) {
	var config Config
	err := yaml.UnmarshalStrict(data, &config)
	if err != nil {
		return Config{}, errors.Wrap(err, "parsing allocator config")
	}

	return config, config.Validate()
}

func (c Config) Validate() error {
	switch c.PrefetchMode {
	case "", PrefetchStrict, PrefetchBestEffort:
	default:
		return errors.Newf("unknown prefetchMode %q, expected %q or %q", c.PrefetchMode, PrefetchStrict, PrefetchBestEffort)
	}

	if c.InitialTableCapacity < 0 {
		return errors.Newf("initialTableCapacity must not be negative, got %d", c.InitialTableCapacity)
	}

	return nil
}

// CreateOptions converts the config into options for New or Enable
func (c Config) CreateOptions(registry driver.Registry) (CreateOptions, error) {
	err := c.Validate()
	if err != nil {
		return CreateOptions{}, err
	}

	options := CreateOptions{
		Registry:             registry,
		InitialTableCapacity: c.InitialTableCapacity,
	}

	if c.ExternallySynchronized {
		options.Flags |= AllocatorCreateExternallySynchronized
	}
	if c.PrefetchMode == PrefetchBestEffort {
		options.Flags |= AllocatorCreatePrefetchBestEffort
	}

	return options, nil
}
