package model

import (
	"fmt"
)

// SegmentID is the unique identifier for a segment within one index snapshot.
type SegmentID uint64

// Ordinal is a dense, snapshot-global identifier for a distinct join-field
// value. Ordinals are assigned by the host's field-data layer; joingo only
// consumes them.
type Ordinal int64

// AbsentOrdinal means the document carries no join value.
const AbsentOrdinal Ordinal = -1

// Absent reports whether the ordinal denotes a missing join value.
func (o Ordinal) Absent() bool { return o < 0 }

// BucketID identifies an aggregation bucket assigned by an ancestor
// aggregation stage. Owned by the host aggregation framework.
type BucketID int64

// UnsetBucket marks a slot with no bucket assignment.
const UnsetBucket BucketID = -1

// DocRef identifies a document within one index snapshot.
type DocRef struct {
	Segment SegmentID
	Doc     uint32
}

// String returns a string representation of the DocRef.
func (r DocRef) String() string {
	return fmt.Sprintf("Doc(%d:%d)", r.Segment, r.Doc)
}
