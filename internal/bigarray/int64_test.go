package bigarray

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// trackingAcquirer counts acquired bytes without enforcing a limit.
type trackingAcquirer struct {
	used int64
}

func (a *trackingAcquirer) AcquireMemory(_ context.Context, amount int64) error {
	a.used += amount
	return nil
}

func (a *trackingAcquirer) ReleaseMemory(amount int64) {
	a.used -= amount
}

func TestInt64_FillAndAccess(t *testing.T) {
	a, err := NewInt64(context.Background(), nil, 4, -1)
	require.NoError(t, err)

	assert.Equal(t, int64(4), a.Len())
	for i := int64(0); i < 4; i++ {
		assert.Equal(t, int64(-1), a.Get(i))
	}

	a.Set(2, 42)
	assert.Equal(t, int64(42), a.Get(2))

	assert.Equal(t, int64(43), a.Increment(2, 1))
}

func TestInt64_GrowKeepsFill(t *testing.T) {
	acq := &trackingAcquirer{}

	a, err := NewInt64(context.Background(), acq, 2, -1)
	require.NoError(t, err)
	a.Set(1, 7)

	require.NoError(t, a.Grow(context.Background(), 10))
	assert.GreaterOrEqual(t, a.Len(), int64(10))

	// Existing values survive, new slots carry the fill value.
	assert.Equal(t, int64(-1), a.Get(0))
	assert.Equal(t, int64(7), a.Get(1))
	for i := int64(2); i < a.Len(); i++ {
		assert.Equal(t, int64(-1), a.Get(i))
	}

	// Grow below current length is a no-op.
	before := a.Len()
	require.NoError(t, a.Grow(context.Background(), 3))
	assert.Equal(t, before, a.Len())
}

func TestInt64_ReleaseAccounting(t *testing.T) {
	acq := &trackingAcquirer{}

	a, err := NewInt64(context.Background(), acq, 16, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(16*8), acq.used)

	require.NoError(t, a.Grow(context.Background(), 32))
	assert.Equal(t, a.Len()*8, acq.used)

	a.Release()
	assert.Equal(t, int64(0), acq.used)
}

func TestInt64_NegativeLength(t *testing.T) {
	_, err := NewInt64(context.Background(), nil, -1, 0)
	assert.Error(t, err)
}
