package children

import (
	"context"

	"github.com/hupe1980/joingo"
	"github.com/hupe1980/joingo/agg"
	"github.com/hupe1980/joingo/internal/bigarray"
	"github.com/hupe1980/joingo/model"
	"github.com/hupe1980/joingo/segment"
)

// Aggregator buckets child documents into the buckets their parent document
// was assigned under, using the two-phase ordinal-indexed join:
//
// During collection, every parent document event records its join-field
// ordinal's bucket assignment, and segments containing child matches are
// remembered. Parent and child may live in different segments and stream by
// in any order, so nothing about children can be decided yet.
//
// PostCollection then replays only the remembered segments: each live child
// document's ordinal is resolved with the same global numbering, looked up
// in the index, and routed into the parent's bucket(s) through the
// sub-aggregation collectors.
//
// One Aggregator instance serves one logical query execution; collection
// calls must be sequential relative to each other.
type Aggregator struct {
	*agg.SingleBucketBase

	ctx    context.Context
	logger *joingo.Logger

	parentType   string
	parentFilter segment.Filter
	childFilter  segment.Filter
	fieldData    segment.FieldData

	sub   agg.Subs
	index *ordinalBucketIndex

	// replay is keyed by segment id so repeated leaf-collector requests
	// for the same segment (one per ancestor bucket path) register it
	// once. Set to nil by PostCollection; any collection attempt after
	// that fails loudly.
	replay map[model.SegmentID]segment.Segment

	closed bool
}

// NewAggregator creates a children aggregator for a mapped, active join
// field. ctx is the query-scoped context; it bounds pool accounting for the
// ordinal index, which is sized upfront from maxOrd (one past the highest
// possible parent ordinal).
func NewAggregator(ctx context.Context, name string, parentType string, parentFilter, childFilter segment.Filter,
	fieldData segment.FieldData, maxOrd int64, sub agg.Subs, acquirer bigarray.MemoryAcquirer,
	logger *joingo.Logger) (*Aggregator, error) {
	base, err := agg.NewSingleBucketBase(ctx, name, acquirer)
	if err != nil {
		return nil, err
	}

	index, err := newOrdinalBucketIndex(ctx, acquirer, maxOrd)
	if err != nil {
		base.ReleaseCounts()
		return nil, err
	}

	if logger == nil {
		logger = joingo.NewLogger(nil)
	}

	return &Aggregator{
		SingleBucketBase: base,
		ctx:              ctx,
		logger:           logger.WithAggregation(name),
		parentType:       parentType,
		parentFilter:     parentFilter,
		childFilter:      childFilter,
		fieldData:        fieldData,
		sub:              sub,
		index:            index,
		replay:           make(map[model.SegmentID]segment.Segment),
	}, nil
}

// Ensure Aggregator implements agg.Aggregator
var _ agg.Aggregator = (*Aggregator)(nil)

// LeafCollector returns the first-pass collector for one segment. It may be
// requested multiple times for the same segment (once per ancestor bucket
// path); all returned collectors are thin views over the shared index and
// replay set.
func (a *Aggregator) LeafCollector(seg segment.Segment) (agg.Collector, error) {
	if a.replay == nil {
		return nil, joingo.ErrCollectionEnded
	}

	resolver, err := a.fieldData.GlobalOrdinals(a.parentType, seg)
	if err != nil {
		return nil, err
	}

	parentDocs, err := a.parentFilter.DocSet(seg)
	if err != nil {
		return nil, err
	}

	childDocs, err := a.childFilter.DocSet(seg)
	if err != nil {
		return nil, err
	}
	if childDocs != nil {
		a.replay[seg.ID()] = seg
	}

	return &leafCollector{
		agg:        a,
		resolver:   resolver,
		parentDocs: parentDocs,
	}, nil
}

// leafCollector is a stateless per-segment view over the aggregator's
// shared state.
type leafCollector struct {
	agg        *Aggregator
	resolver   segment.OrdinalResolver
	parentDocs segment.DocSet
}

func (c *leafCollector) Collect(doc uint32, bucket model.BucketID) error {
	a := c.agg
	if a.replay == nil {
		return joingo.ErrCollectionEnded
	}

	if c.parentDocs == nil || !c.parentDocs.Contains(doc) {
		return nil
	}

	ord := c.resolver.Ord(doc)
	if ord.Absent() {
		return nil
	}

	if err := a.index.assign(ord, bucket); err != nil {
		return err
	}

	// Doc counts carry parent-count semantics: one per recorded parent
	// assignment, not one per replayed child.
	return a.CountBucketDoc(bucket)
}

// PostCollection runs the replay pass exactly once. Every registered
// segment's live, child-matching documents are re-routed into the bucket(s)
// recorded for their parent ordinal.
func (a *Aggregator) PostCollection() error {
	if a.replay == nil {
		return joingo.ErrCollectionEnded
	}
	replay := a.replay
	a.replay = nil

	for _, seg := range replay {
		if err := a.replaySegment(seg); err != nil {
			return err
		}
	}
	return nil
}

func (a *Aggregator) replaySegment(seg segment.Segment) error {
	childDocs, err := a.childFilter.DocSet(seg)
	if err != nil {
		return err
	}
	if childDocs == nil {
		return nil
	}

	sub, err := a.sub.LeafCollector(seg)
	if err != nil {
		return err
	}

	resolver, err := a.fieldData.GlobalOrdinals(a.parentType, seg)
	if err != nil {
		return err
	}

	live := seg.LiveDocs()

	collected := 0
	for doc := range childDocs.Iterator() {
		if live != nil && !live.Contains(doc) {
			continue
		}

		ord := resolver.Ord(doc)
		if ord.Absent() {
			continue
		}
		if err := a.index.checkBound(ord); err != nil {
			return err
		}

		primary, overflow := a.index.lookup(ord)
		if primary == model.UnsetBucket {
			// The parent was never assigned to any bucket; it fell
			// outside the aggregation tree. Expected steady state.
			continue
		}

		if err := sub.Collect(doc, primary); err != nil {
			return err
		}
		collected++
		for _, bucket := range overflow {
			if err := sub.Collect(doc, bucket); err != nil {
				return err
			}
			collected++
		}
	}

	a.logger.LogReplay(a.ctx, uint64(seg.ID()), collected, nil)
	return nil
}

// BuildResult assembles the result for one owning bucket: the parent doc
// count recorded in the first pass plus the sub-aggregation tree
// accumulated via replay.
func (a *Aggregator) BuildResult(owning model.BucketID) (agg.Result, error) {
	sub, err := a.sub.BuildResults(owning)
	if err != nil {
		return nil, err
	}
	return &Result{
		name:     a.Name(),
		docCount: a.BucketDocCount(owning),
		sub:      sub,
	}, nil
}

// BuildEmptyResult returns the zero-count result with an empty
// sub-aggregation tree.
func (a *Aggregator) BuildEmptyResult() agg.Result {
	return &Result{
		name: a.Name(),
		sub:  a.sub.BuildEmptyResults(),
	}
}

// Close releases the ordinal index and doc counts back to the pool.
// A second Close returns ErrClosed without releasing anything twice.
func (a *Aggregator) Close() error {
	if a.closed {
		return joingo.ErrClosed
	}
	a.closed = true
	a.index.release()
	a.ReleaseCounts()
	return nil
}
