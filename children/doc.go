// Package children implements the parent-to-children join aggregation.
//
// Child documents are grouped into the aggregation buckets of the parent
// document they reference through a join field. Because a child's bucket is
// only known after its parent has been collected (possibly from a
// different, later-visited segment), the aggregation runs in two phases: a
// collection pass recording parent ordinal to bucket assignments in a
// dense-primary/sparse-overflow index, and a deferred replay pass that
// re-scans only the segments containing child matches and routes each live
// child into its parent's bucket(s).
//
// Only segment identity is buffered between the passes, never individual
// child documents: the replay re-derives child matches from the cached
// child filter, trading a second filtered iteration for bounded memory.
package children
