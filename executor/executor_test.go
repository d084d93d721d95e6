package executor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/joingo"
	"github.com/hupe1980/joingo/agg"
	"github.com/hupe1980/joingo/children"
	"github.com/hupe1980/joingo/mapping"
	"github.com/hupe1980/joingo/model"
	"github.com/hupe1980/joingo/resource"
	"github.com/hupe1980/joingo/segment"
)

// counterSubs counts collect calls per bucket.
type counterSubs struct {
	perBucket map[model.BucketID]int
}

func newCounterSubs() *counterSubs {
	return &counterSubs{perBucket: make(map[model.BucketID]int)}
}

func (s *counterSubs) LeafCollector(segment.Segment) (agg.Collector, error) {
	return agg.CollectorFunc(func(_ uint32, bucket model.BucketID) error {
		s.perBucket[bucket]++
		return nil
	}), nil
}

func (s *counterSubs) BuildResults(model.BucketID) ([]agg.Result, error) { return nil, nil }
func (s *counterSubs) BuildEmptyResults() []agg.Result                   { return nil }

// buildQuery assembles a two-segment index: segment 1 holds three parents
// (ordinals 0..2), segment 2 four children of those parents plus one
// document without a join value.
func buildQuery(t *testing.T, ctrl *resource.Controller, subs agg.Subs) Query {
	t.Helper()

	parents := segment.NewMemSegment(1, 3)
	kids := segment.NewMemSegment(2, 5)

	parentFilter := segment.NewDocSetFilter()
	parentFilter.Add(1, 0, 1, 2)

	childFilter := segment.NewDocSetFilter()
	childFilter.Add(2, 0, 1, 2, 3, 4)

	fd := segment.NewMemFieldData()
	fd.SetOrd("article", 1, 0, 0)
	fd.SetOrd("article", 1, 1, 1)
	fd.SetOrd("article", 1, 2, 2)
	fd.SetOrd("article", 2, 0, 0)
	fd.SetOrd("article", 2, 1, 1)
	fd.SetOrd("article", 2, 2, 1)
	fd.SetOrd("article", 2, 3, 2)

	reg := mapping.NewRegistry()
	reg.Register("comment", mapping.Join{
		ParentType:   "article",
		Active:       true,
		ParentFilter: parentFilter,
		ChildFilter:  childFilter,
		FieldData:    fd,
	})

	f := children.NewFactory("to-comments", children.NewTypeConfig("comment"),
		children.WithLogger(joingo.NoopLogger()))
	a, err := f.Create(context.Background(), reg, subs, ctrl)
	require.NoError(t, err)

	return Query{
		Segments:   []segment.Segment{parents, kids},
		Aggregator: a,
	}
}

func TestExecutor_Run(t *testing.T) {
	ctrl := resource.NewController(resource.Config{})
	subs := newCounterSubs()
	q := buildQuery(t, ctrl, subs)

	e := New(ctrl, func(o *Options) {
		o.Logger = joingo.NoopLogger()
	})

	res, err := e.Run(context.Background(), q)
	require.NoError(t, err)

	// All three parents were collected under the root bucket.
	assert.Equal(t, "to-comments", res.Name())
	assert.Equal(t, int64(3), res.(*children.Result).DocCount())

	// Four children carry a join value and were replayed once each.
	assert.Equal(t, 4, subs.perBucket[0])

	require.NoError(t, q.Aggregator.Close())
	assert.Equal(t, int64(0), ctrl.MemoryUsage())
}

func TestExecutor_RunQueriesParallel(t *testing.T) {
	ctrl := resource.NewController(resource.Config{MaxConcurrentQueries: 4})

	var queries []Query
	var subs []*counterSubs
	for range 4 {
		s := newCounterSubs()
		subs = append(subs, s)
		queries = append(queries, buildQuery(t, ctrl, s))
	}

	e := New(ctrl)

	results, err := e.RunQueries(context.Background(), queries...)
	require.NoError(t, err)
	require.Len(t, results, 4)

	for i, res := range results {
		assert.Equal(t, int64(3), res.(*children.Result).DocCount())
		assert.Equal(t, 4, subs[i].perBucket[0])
		require.NoError(t, queries[i].Aggregator.Close())
	}
	assert.Equal(t, int64(0), ctrl.MemoryUsage())
}

func TestExecutor_RootFilterScopesCollection(t *testing.T) {
	ctrl := resource.NewController(resource.Config{})
	subs := newCounterSubs()
	q := buildQuery(t, ctrl, subs)

	// Root matches only the first parent; the child segment still
	// registers for replay via the leaf-collector request.
	root := segment.NewDocSetFilter()
	root.Add(1, 0)
	q.Root = root

	e := New(ctrl)

	res, err := e.Run(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.(*children.Result).DocCount())

	// Only ordinal 0's child replays.
	assert.Equal(t, 1, subs.perBucket[0])

	require.NoError(t, q.Aggregator.Close())
}

func TestExecutor_ContextCanceled(t *testing.T) {
	ctrl := resource.NewController(resource.Config{})
	q := buildQuery(t, ctrl, newCounterSubs())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := New(ctrl)
	_, err := e.Run(ctx, q)
	assert.Error(t, err)
}
