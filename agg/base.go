package agg

import (
	"context"

	"github.com/hupe1980/joingo/internal/bigarray"
	"github.com/hupe1980/joingo/model"
)

// initialBucketCount sizes the doc-count array before the first growth.
const initialBucketCount = 1

// SingleBucketBase provides the bucket doc-count bookkeeping shared by
// single-bucket aggregators. Counts live in a pool-accounted array that
// grows with the highest bucket id observed.
type SingleBucketBase struct {
	name   string
	ctx    context.Context
	counts *bigarray.Int64
}

// NewSingleBucketBase creates the doc-count bookkeeping for one aggregator.
// ctx is the query-scoped context used for pool accounting.
func NewSingleBucketBase(ctx context.Context, name string, acquirer bigarray.MemoryAcquirer) (*SingleBucketBase, error) {
	counts, err := bigarray.NewInt64(ctx, acquirer, initialBucketCount, 0)
	if err != nil {
		return nil, err
	}
	return &SingleBucketBase{
		name:   name,
		ctx:    ctx,
		counts: counts,
	}, nil
}

// Name returns the aggregation name.
func (b *SingleBucketBase) Name() string { return b.name }

// CountBucketDoc records one document collected under the given bucket.
func (b *SingleBucketBase) CountBucketDoc(bucket model.BucketID) error {
	if err := b.counts.Grow(b.ctx, int64(bucket)+1); err != nil {
		return err
	}
	b.counts.Increment(int64(bucket), 1)
	return nil
}

// BucketDocCount returns the number of documents collected under bucket.
func (b *SingleBucketBase) BucketDocCount(bucket model.BucketID) int64 {
	if int64(bucket) >= b.counts.Len() {
		return 0
	}
	return b.counts.Get(int64(bucket))
}

// ReleaseCounts returns the doc-count array to the pool.
// Must be called exactly once, from the owning aggregator's Close.
func (b *SingleBucketBase) ReleaseCounts() {
	b.counts.Release()
}
