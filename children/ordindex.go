package children

import (
	"context"

	"github.com/hupe1980/joingo"
	"github.com/hupe1980/joingo/internal/bigarray"
	"github.com/hupe1980/joingo/model"
)

const bytesPerBucketID = 8

// ordinalBucketIndex maps parent join-field ordinals to the bucket(s) the
// parent document was assigned under by enclosing aggregations.
//
// The common case is exactly one bucket per parent ordinal, so the first
// assignment goes into a dense array and only subsequent assignments pay
// for the sparse overflow map. Duplicate assignments of the same bucket to
// one ordinal are stored as-is, matching the host framework's
// duplicate-collect semantics.
type ordinalBucketIndex struct {
	// primary[ord] holds the first bucket assigned to ord, or
	// model.UnsetBucket. Sized once at construction from the field's
	// global cardinality; never grows.
	primary *bigarray.Int64

	// overflow holds every bucket beyond the first, in assignment order.
	// Created lazily.
	overflow map[model.Ordinal][]model.BucketID

	// multi is set once any ordinal receives a second bucket. Replay
	// skips overflow lookups entirely while it is false.
	multi bool

	// overflowBytes tracks pool-accounted overflow storage.
	overflowBytes int64

	ctx      context.Context
	acquirer bigarray.MemoryAcquirer
}

// newOrdinalBucketIndex allocates the dense primary array for ordinals
// [0, maxOrd). ctx is the query-scoped context used for pool accounting.
func newOrdinalBucketIndex(ctx context.Context, acquirer bigarray.MemoryAcquirer, maxOrd int64) (*ordinalBucketIndex, error) {
	primary, err := bigarray.NewInt64(ctx, acquirer, maxOrd, int64(model.UnsetBucket))
	if err != nil {
		return nil, err
	}
	return &ordinalBucketIndex{
		primary:  primary,
		ctx:      ctx,
		acquirer: acquirer,
	}, nil
}

// assign records that the parent with the given ordinal was collected under
// bucket. Never called with an absent ordinal; an ordinal beyond the
// construction-time bound is a fatal precondition violation.
func (x *ordinalBucketIndex) assign(ord model.Ordinal, bucket model.BucketID) error {
	if err := x.checkBound(ord); err != nil {
		return err
	}

	if x.primary.Get(int64(ord)) == int64(model.UnsetBucket) {
		x.primary.Set(int64(ord), int64(bucket))
		return nil
	}

	if x.overflow == nil {
		x.overflow = make(map[model.Ordinal][]model.BucketID)
	}
	if x.acquirer != nil {
		if err := x.acquirer.AcquireMemory(x.ctx, bytesPerBucketID); err != nil {
			return err
		}
	}
	x.overflow[ord] = append(x.overflow[ord], bucket)
	x.overflowBytes += bytesPerBucketID
	x.multi = true
	return nil
}

// checkBound rejects ordinals beyond the construction-time cardinality.
// The field data that sized the index shares the global numbering, so a
// violation means inconsistent host state.
func (x *ordinalBucketIndex) checkBound(ord model.Ordinal) error {
	if int64(ord) >= x.primary.Len() {
		return &joingo.ErrOrdinalOutOfRange{Ordinal: int64(ord), MaxOrd: x.primary.Len()}
	}
	return nil
}

// lookup returns the primary bucket (model.UnsetBucket if the ordinal was
// never assigned) and the overflow buckets in assignment order. If primary
// is unset, overflow is empty: assignment never happens out of order.
func (x *ordinalBucketIndex) lookup(ord model.Ordinal) (model.BucketID, []model.BucketID) {
	primary := model.BucketID(x.primary.Get(int64(ord)))
	if !x.multi {
		return primary, nil
	}
	return primary, x.overflow[ord]
}

// release returns the primary array and overflow storage to the pool.
// Called exactly once, from the owning aggregator's Close.
func (x *ordinalBucketIndex) release() {
	x.primary.Release()
	if x.acquirer != nil && x.overflowBytes > 0 {
		x.acquirer.ReleaseMemory(x.overflowBytes)
	}
	x.overflow = nil
	x.overflowBytes = 0
}
