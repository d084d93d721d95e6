package bigarray

import (
	"context"
	"fmt"
)

// MemoryAcquirer is an interface for acquiring memory from the host pool.
type MemoryAcquirer interface {
	AcquireMemory(ctx context.Context, amount int64) error
	ReleaseMemory(amount int64)
}

const bytesPerInt64 = 8

// Int64 is a large int64 array whose backing memory is accounted against a
// host memory pool. It is created with a fixed fill value and released back
// to the pool exactly once via Release; callers are responsible for not
// using the array, or calling Release again, afterwards.
type Int64 struct {
	data     []int64
	fill     int64
	acquirer MemoryAcquirer
}

// NewInt64 allocates an array of the given length, pre-filled with fill.
func NewInt64(ctx context.Context, acquirer MemoryAcquirer, length int64, fill int64) (*Int64, error) {
	if length < 0 {
		return nil, fmt.Errorf("bigarray: negative length %d", length)
	}

	if acquirer != nil {
		if err := acquirer.AcquireMemory(ctx, length*bytesPerInt64); err != nil {
			return nil, fmt.Errorf("bigarray: acquire %d bytes: %w", length*bytesPerInt64, err)
		}
	}

	data := make([]int64, length)
	if fill != 0 {
		for i := range data {
			data[i] = fill
		}
	}

	return &Int64{
		data:     data,
		fill:     fill,
		acquirer: acquirer,
	}, nil
}

// Len returns the array length.
func (a *Int64) Len() int64 {
	return int64(len(a.data))
}

// Get returns the element at index i.
func (a *Int64) Get(i int64) int64 {
	return a.data[i]
}

// Set stores v at index i.
func (a *Int64) Set(i int64, v int64) {
	a.data[i] = v
}

// Increment adds delta to the element at index i and returns the new value.
func (a *Int64) Increment(i int64, delta int64) int64 {
	a.data[i] += delta
	return a.data[i]
}

// Grow ensures the array holds at least minLen elements. New slots carry the
// construction-time fill value. Growth reallocates; old memory is returned
// to the pool.
func (a *Int64) Grow(ctx context.Context, minLen int64) error {
	if minLen <= int64(len(a.data)) {
		return nil
	}

	// Overallocate by 1/8th, as grow-on-demand callers tend to grow again.
	newLen := minLen + (minLen >> 3)

	if a.acquirer != nil {
		if err := a.acquirer.AcquireMemory(ctx, newLen*bytesPerInt64); err != nil {
			return fmt.Errorf("bigarray: grow to %d: %w", newLen, err)
		}
	}

	newData := make([]int64, newLen)
	copy(newData, a.data)
	if a.fill != 0 {
		for i := len(a.data); i < len(newData); i++ {
			newData[i] = a.fill
		}
	}

	if a.acquirer != nil {
		a.acquirer.ReleaseMemory(int64(len(a.data)) * bytesPerInt64)
	}
	a.data = newData
	return nil
}

// Release returns the backing memory to the pool. Must be called exactly
// once; the guard lives at the call site.
func (a *Int64) Release() {
	if a.acquirer != nil {
		a.acquirer.ReleaseMemory(int64(len(a.data)) * bytesPerInt64)
	}
	a.data = nil
}
