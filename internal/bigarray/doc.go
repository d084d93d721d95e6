// Package bigarray provides large, pool-accounted arrays.
//
// Aggregators size their dense ordinal indexes from a field's global
// cardinality, which can be large. Backing memory is acquired from the
// host's memory pool at construction and released exactly once when the
// owning aggregator closes.
package bigarray
