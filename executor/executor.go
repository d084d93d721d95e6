// Package executor is a reference host driver for joingo aggregations. It
// owns the control flow the aggregator contract expects: per segment, push
// every matching live document through the first-pass collector; after all
// segments are exhausted, fire the end-of-collection hook exactly once;
// then assemble results.
//
// Independent queries may run in parallel; a single aggregator instance is
// always driven by one goroutine.
package executor

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/joingo"
	"github.com/hupe1980/joingo/agg"
	"github.com/hupe1980/joingo/model"
	"github.com/hupe1980/joingo/resource"
	"github.com/hupe1980/joingo/segment"
)

// Query is one aggregation execution over a set of segments.
type Query struct {
	// Segments to collect over.
	Segments []segment.Segment

	// Root selects the documents pushed through collection.
	// nil means every live document.
	Root segment.Filter

	// Aggregator receives the collection events.
	Aggregator agg.Aggregator

	// Bucket is the owning bucket the root collection runs under.
	// Zero for a top-level aggregation.
	Bucket model.BucketID
}

// Options configure an Executor.
type Options struct {
	Logger *joingo.Logger
}

// Executor drives queries against segments under the controller's
// concurrency and admission limits.
type Executor struct {
	ctrl   *resource.Controller
	logger *joingo.Logger
}

// New creates an Executor. ctrl may be nil for unlimited execution.
func New(ctrl *resource.Controller, optFns ...func(o *Options)) *Executor {
	opts := Options{
		Logger: joingo.NewLogger(nil),
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Executor{
		ctrl:   ctrl,
		logger: opts.Logger,
	}
}

// Run executes one query: sequential collection over every segment, the
// end-of-collection signal, then result assembly for the query's bucket.
func (e *Executor) Run(ctx context.Context, q Query) (agg.Result, error) {
	if e.ctrl != nil {
		if err := e.ctrl.AcquireQuery(ctx); err != nil {
			return nil, err
		}
		defer e.ctrl.ReleaseQuery()
	}

	for _, seg := range q.Segments {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := e.collectSegment(q, seg); err != nil {
			return nil, err
		}
	}

	if err := q.Aggregator.PostCollection(); err != nil {
		return nil, err
	}

	return q.Aggregator.BuildResult(q.Bucket)
}

func (e *Executor) collectSegment(q Query, seg segment.Segment) error {
	lc, err := q.Aggregator.LeafCollector(seg)
	if err != nil {
		return err
	}

	live := seg.LiveDocs()

	if q.Root != nil {
		matches, err := q.Root.DocSet(seg)
		if err != nil {
			return err
		}
		if matches == nil {
			return nil
		}
		for doc := range matches.Iterator() {
			if live != nil && !live.Contains(doc) {
				continue
			}
			if err := lc.Collect(doc, q.Bucket); err != nil {
				return err
			}
		}
		return nil
	}

	for doc := uint32(0); doc < seg.MaxDoc(); doc++ {
		if live != nil && !live.Contains(doc) {
			continue
		}
		if err := lc.Collect(doc, q.Bucket); err != nil {
			return err
		}
	}
	return nil
}

// RunQueries executes independent queries in parallel. Results are returned
// in query order. The first error cancels the remaining queries.
func (e *Executor) RunQueries(ctx context.Context, queries ...Query) ([]agg.Result, error) {
	results := make([]agg.Result, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	for i, q := range queries {
		g.Go(func() error {
			res, err := e.Run(gctx, q)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
