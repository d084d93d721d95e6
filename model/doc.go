// Package model defines core types used throughout joingo.
//
// # Identity Types
//
//   - SegmentID: unique identifier for a segment (uint64)
//   - Ordinal: dense, snapshot-global join-field value id (int64, -1 = absent)
//   - BucketID: aggregation bucket id assigned by an ancestor stage (int64)
//   - DocRef: physical address (SegmentID, segment-local doc id)
//
// Document ids are segment-local uint32 values, dense within a segment and
// transient across snapshots.
package model
