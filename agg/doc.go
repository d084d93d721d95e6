// Package agg defines the generic aggregation contracts between a host
// query execution and bucket aggregations: per-segment collectors, the
// end-of-collection hook, result assembly, and the single-bucket doc-count
// bookkeeping base.
package agg
