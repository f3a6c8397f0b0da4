package tum

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestConcurrentAllocateFree(t *testing.T) {
	const workers = 16
	const perWorker = 200

	ctrl := gomock.NewController(t)
	drv, allocator := readyAllocator(t, ctrl, CreateOptions{})
	sequentialHandles(drv)
	drv.EXPECT().Free(gomock.Any()).Return(nil).AnyTimes()

	kept := make([][]Handle, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for worker := 0; worker < workers; worker++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()

			for i := 0; i < perWorker; i++ {
				handle, err := allocator.Allocate(1+i, worker%4, NoStream)
				if err != nil {
					errs[worker] = err
					return
				}

				if i%2 == 0 {
					err = allocator.Free(handle, 1+i, worker%4, NoStream)
					if err != nil {
						errs[worker] = err
						return
					}
					continue
				}

				kept[worker] = append(kept[worker], handle)
			}
		}(worker)
	}
	wg.Wait()

	expected := make(map[Handle]struct{})
	for worker := 0; worker < workers; worker++ {
		require.NoError(t, errs[worker])
		for _, handle := range kept[worker] {
			expected[handle] = struct{}{}
		}
	}

	require.Len(t, expected, workers*perWorker/2)
	require.Equal(t, expected, snapshotHandles(allocator))
	require.Equal(t, len(expected), allocator.Count())
	require.NoError(t, allocator.Validate())
}

func TestConcurrentPrefetchAndAllocate(t *testing.T) {
	ctrl := gomock.NewController(t)
	drv, allocator := readyAllocator(t, ctrl, CreateOptions{})
	sequentialHandles(drv)
	drv.EXPECT().PrefetchAsync(gomock.Any(), gomock.Any(), gomock.Any(), NoStream).Return(nil).AnyTimes()

	var wg sync.WaitGroup
	errs := make(chan error, 64)

	for worker := 0; worker < 4; worker++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				_, err := allocator.Allocate(4096, 0, NoStream)
				if err != nil {
					errs <- err
					return
				}
			}
		}()
		go func() {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				err := allocator.Prefetch()
				if err != nil {
					errs <- err
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	require.Equal(t, 200, allocator.Count())
}
