package children

import (
	"github.com/hupe1980/joingo/agg"
)

// Result is the children aggregation result: the number of parent documents
// collected under the owning bucket and the sub-aggregation results
// accumulated from replayed child documents.
type Result struct {
	name     string
	docCount int64
	sub      []agg.Result
}

// Ensure Result implements agg.Result
var _ agg.Result = (*Result)(nil)

// Name returns the aggregation name.
func (r *Result) Name() string { return r.name }

// DocCount returns the parent document count.
func (r *Result) DocCount() int64 { return r.docCount }

// Sub returns the sub-aggregation results.
func (r *Result) Sub() []agg.Result { return r.sub }
