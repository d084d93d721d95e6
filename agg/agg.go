package agg

import (
	"github.com/hupe1980/joingo/model"
	"github.com/hupe1980/joingo/segment"
)

// Collector receives (document, bucket) events for one segment.
// The host pushes documents sequentially; collectors are not safe for
// concurrent use.
type Collector interface {
	Collect(doc uint32, bucket model.BucketID) error
}

// CollectorFunc adapts a function to the Collector interface.
type CollectorFunc func(doc uint32, bucket model.BucketID) error

// Collect calls the wrapped function.
func (f CollectorFunc) Collect(doc uint32, bucket model.BucketID) error {
	return f(doc, bucket)
}

// Aggregator is the contract between the host's query execution and a
// bucket aggregation.
//
// The host obtains a leaf collector per segment (possibly several times per
// segment, once per ancestor bucket path), pushes documents through them,
// fires PostCollection exactly once after every segment has completed, and
// then requests results per owning bucket.
type Aggregator interface {
	// LeafCollector returns the per-segment collector for the first pass.
	LeafCollector(seg segment.Segment) (Collector, error)

	// PostCollection is the end-of-collection hook. Deferred work (such
	// as replay passes) runs here. Invoked exactly once, before any
	// result is requested.
	PostCollection() error

	// BuildResult assembles the result for one owning bucket.
	BuildResult(owning model.BucketID) (Result, error)

	// BuildEmptyResult returns the zero-count result.
	BuildEmptyResult() Result

	// Close releases aggregator-owned resources back to the host pool.
	// Must be called exactly once; the guard lives at the call site.
	Close() error
}

// Result is a single aggregation result node.
type Result interface {
	// Name returns the aggregation name the result belongs to.
	Name() string
}

// Subs hands out per-segment collectors for the sub-aggregation tree and
// assembles its results. A parent bucket aggregation routes documents into
// buckets through these collectors.
type Subs interface {
	// LeafCollector returns the sub-aggregation collector for a segment.
	LeafCollector(seg segment.Segment) (Collector, error)

	// BuildResults assembles the sub-aggregation results under one
	// owning bucket.
	BuildResults(owning model.BucketID) ([]Result, error)

	// BuildEmptyResults returns the empty sub-aggregation tree.
	BuildEmptyResults() []Result
}

// NoopCollector discards all events.
var NoopCollector Collector = CollectorFunc(func(uint32, model.BucketID) error {
	return nil
})

// NoSubs is the empty sub-aggregation tree.
var NoSubs Subs = noSubs{}

type noSubs struct{}

func (noSubs) LeafCollector(segment.Segment) (Collector, error) { return NoopCollector, nil }
func (noSubs) BuildResults(model.BucketID) ([]Result, error)    { return nil, nil }
func (noSubs) BuildEmptyResults() []Result                      { return nil }
