package metrics

import (
	"io"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/managed/driver"
	"github.com/vkngwrapper/managed/mocks"
	"github.com/vkngwrapper/managed/tum"
	"go.uber.org/mock/gomock"
	"golang.org/x/exp/slog"
)

func TestCollector(t *testing.T) {
	ctrl := gomock.NewController(t)
	drv := mocks.NewMockDriver(ctrl)

	allocator, err := tum.New(slog.New(slog.NewTextHandler(io.Discard)), drv, tum.CreateOptions{})
	require.NoError(t, err)

	drv.EXPECT().MallocManaged(1024).Return(driver.Handle(0x1000), nil)
	drv.EXPECT().MallocManaged(512).Return(driver.Handle(0x2000), nil)
	drv.EXPECT().StreamAttach(driver.Stream(3), driver.Handle(0x2000), 512).Return(nil)

	_, err = allocator.Allocate(1024, 0, tum.NoStream)
	require.NoError(t, err)
	_, err = allocator.Allocate(512, 0, 3)
	require.NoError(t, err)

	collector := NewCollector(allocator)

	registry := prometheus.NewPedanticRegistry()
	require.NoError(t, registry.Register(collector))

	// three gauges for the one device in use plus two counters for each of the four operations
	require.Equal(t, 3+2*4, testutil.CollectAndCount(collector))

	expected := `
# HELP tum_live_allocation_bytes Bytes of unified memory held by live allocations.
# TYPE tum_live_allocation_bytes gauge
tum_live_allocation_bytes{device="0"} 1536
# HELP tum_stream_attached_allocations Number of live allocations attached to a stream.
# TYPE tum_stream_attached_allocations gauge
tum_stream_attached_allocations{device="0"} 1
# HELP tum_driver_calls_total Calls made to the unified memory driver.
# TYPE tum_driver_calls_total counter
tum_driver_calls_total{operation="allocate"} 2
tum_driver_calls_total{operation="attach"} 1
tum_driver_calls_total{operation="free"} 0
tum_driver_calls_total{operation="prefetch"} 0
`
	require.NoError(t, testutil.CollectAndCompare(collector, strings.NewReader(expected),
		"tum_live_allocation_bytes", "tum_stream_attached_allocations", "tum_driver_calls_total"))
}

func TestCollectorEmptyAllocator(t *testing.T) {
	ctrl := gomock.NewController(t)

	allocator, err := tum.New(slog.New(slog.NewTextHandler(io.Discard)), mocks.NewMockDriver(ctrl), tum.CreateOptions{})
	require.NoError(t, err)

	require.Equal(t, 2*4, testutil.CollectAndCount(NewCollector(allocator)))
}
