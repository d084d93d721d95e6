package children

import (
	"context"

	"github.com/hupe1980/joingo"
	"github.com/hupe1980/joingo/agg"
	"github.com/hupe1980/joingo/internal/bigarray"
	"github.com/hupe1980/joingo/mapping"
	"github.com/hupe1980/joingo/model"
	"github.com/hupe1980/joingo/segment"
)

// Factory creates children aggregators from a TypeConfig, resolving the
// child type against the index's join-field mappings.
type Factory struct {
	name   string
	cfg    TypeConfig
	logger *joingo.Logger
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithLogger sets the logger passed to created aggregators.
func WithLogger(logger *joingo.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// NewFactory creates a Factory.
// name is the aggregation name reported in results.
func NewFactory(name string, cfg TypeConfig, optFns ...FactoryOption) *Factory {
	f := &Factory{
		name: name,
		cfg:  cfg,
	}
	for _, fn := range optFns {
		fn(f)
	}
	return f
}

// Name returns the aggregation name.
func (f *Factory) Name() string { return f.name }

// Config returns the configuration descriptor.
func (f *Factory) Config() TypeConfig { return f.cfg }

// Create resolves the configured child type against reg and builds the
// aggregator.
//
// An unknown child type degrades to a non-collecting aggregator producing
// only the empty result; that is not an error. A known type whose join
// field is inactive is a configuration error, raised here before any
// collection.
func (f *Factory) Create(ctx context.Context, reg *mapping.Registry, sub agg.Subs, acquirer bigarray.MemoryAcquirer) (agg.Aggregator, error) {
	if sub == nil {
		sub = agg.NoSubs
	}

	join, ok := reg.Lookup(f.cfg.ChildType())
	if !ok {
		return &nonCollecting{name: f.name, sub: sub}, nil
	}
	if !join.Active {
		return nil, joingo.NewErrJoinFieldInactive(f.cfg.ChildType())
	}

	maxOrd := join.FieldData.MaxOrdinal(join.ParentType)
	return NewAggregator(ctx, f.name, join.ParentType, join.ParentFilter, join.ChildFilter,
		join.FieldData, maxOrd, sub, acquirer, f.logger)
}

// nonCollecting is the unmapped-type aggregator: it collects nothing and
// only ever produces the empty result.
type nonCollecting struct {
	name string
	sub  agg.Subs
}

var _ agg.Aggregator = (*nonCollecting)(nil)

func (n *nonCollecting) LeafCollector(segment.Segment) (agg.Collector, error) {
	return agg.NoopCollector, nil
}

func (n *nonCollecting) PostCollection() error { return nil }

func (n *nonCollecting) BuildResult(model.BucketID) (agg.Result, error) {
	return n.BuildEmptyResult(), nil
}

func (n *nonCollecting) BuildEmptyResult() agg.Result {
	return &Result{
		name: n.name,
		sub:  n.sub.BuildEmptyResults(),
	}
}

func (n *nonCollecting) Close() error { return nil }
