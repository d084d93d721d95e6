package children

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/joingo"
	"github.com/hupe1980/joingo/model"
	"github.com/hupe1980/joingo/resource"
)

func TestOrdinalBucketIndex_FirstAssignmentIsPrimary(t *testing.T) {
	x, err := newOrdinalBucketIndex(context.Background(), nil, 4)
	require.NoError(t, err)

	require.NoError(t, x.assign(0, 10))
	require.NoError(t, x.assign(1, 10))
	require.NoError(t, x.assign(1, 20))
	require.NoError(t, x.assign(1, 30))

	primary, overflow := x.lookup(0)
	assert.Equal(t, model.BucketID(10), primary)
	assert.Empty(t, overflow)

	// Subsequent assignments land in overflow, in assignment order.
	primary, overflow = x.lookup(1)
	assert.Equal(t, model.BucketID(10), primary)
	assert.Equal(t, []model.BucketID{20, 30}, overflow)
}

func TestOrdinalBucketIndex_UnassignedOrdinal(t *testing.T) {
	x, err := newOrdinalBucketIndex(context.Background(), nil, 4)
	require.NoError(t, err)

	primary, overflow := x.lookup(3)
	assert.Equal(t, model.UnsetBucket, primary)
	assert.Empty(t, overflow)
}

func TestOrdinalBucketIndex_DuplicateAssignmentNotDeduplicated(t *testing.T) {
	x, err := newOrdinalBucketIndex(context.Background(), nil, 2)
	require.NoError(t, err)

	require.NoError(t, x.assign(0, 7))
	require.NoError(t, x.assign(0, 7))

	primary, overflow := x.lookup(0)
	assert.Equal(t, model.BucketID(7), primary)
	assert.Equal(t, []model.BucketID{7}, overflow)
}

func TestOrdinalBucketIndex_MultiFlagGatesOverflow(t *testing.T) {
	x, err := newOrdinalBucketIndex(context.Background(), nil, 2)
	require.NoError(t, err)

	require.NoError(t, x.assign(0, 1))
	assert.False(t, x.multi)

	require.NoError(t, x.assign(0, 2))
	assert.True(t, x.multi)
}

func TestOrdinalBucketIndex_OrdinalOutOfRange(t *testing.T) {
	x, err := newOrdinalBucketIndex(context.Background(), nil, 2)
	require.NoError(t, err)

	err = x.assign(2, 0)
	require.Error(t, err)

	var oor *joingo.ErrOrdinalOutOfRange
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, int64(2), oor.Ordinal)
	assert.Equal(t, int64(2), oor.MaxOrd)
}

func TestOrdinalBucketIndex_ReleaseAccounting(t *testing.T) {
	ctrl := resource.NewController(resource.Config{})

	x, err := newOrdinalBucketIndex(context.Background(), ctrl, 1024)
	require.NoError(t, err)
	assert.Equal(t, int64(1024*8), ctrl.MemoryUsage())

	// Overflow storage is accounted too.
	require.NoError(t, x.assign(0, 1))
	require.NoError(t, x.assign(0, 2))
	require.NoError(t, x.assign(0, 3))
	assert.Equal(t, int64(1024*8+2*8), ctrl.MemoryUsage())

	x.release()
	assert.Equal(t, int64(0), ctrl.MemoryUsage())
}
