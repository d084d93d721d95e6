package segment

import (
	"iter"

	"github.com/hupe1980/joingo/model"
)

// Segment is the interface for an immutable partition of the document set.
// Segments are independently iterable; document ids are segment-local and
// dense in [0, MaxDoc).
type Segment interface {
	// ID returns the segment identifier, unique within one index snapshot.
	ID() model.SegmentID

	// MaxDoc returns one past the highest document id in the segment.
	MaxDoc() uint32

	// LiveDocs returns the set of documents not marked deleted in the
	// current snapshot. A nil result means every document is live.
	LiveDocs() DocSet
}

// DocSet is an abstract, segment-local set of document ids.
// It is intentionally minimal: implementations may wrap roaring-like
// bitmaps, simple bitsets, or posting lists.
type DocSet interface {
	// Contains reports whether doc is present in the set.
	Contains(doc uint32) bool

	// Cardinality returns the number of documents in the set.
	Cardinality() uint64

	// Iterator iterates the set in ascending document id order.
	Iterator() iter.Seq[uint32]
}

// Filter is a normalized, cached document predicate (e.g. a type filter).
//
// DocSet evaluates the filter against one segment and returns the matching
// documents. A nil DocSet means the segment has no matches; both collection
// and replay use this as a cheap exit.
type Filter interface {
	DocSet(seg Segment) (DocSet, error)
}

// OrdinalResolver maps a document to its join-field ordinal within one
// segment. The numbering is global: the same field value resolves to the
// same ordinal in every segment of one index snapshot, so ordinals recorded
// during collection stay valid during replay.
type OrdinalResolver interface {
	// Ord returns the document's join-field ordinal,
	// or model.AbsentOrdinal if the document has no join value.
	Ord(doc uint32) model.Ordinal
}

// FieldData resolves join-field ordinals for a parent type.
// It is owned by the host's field-data layer.
type FieldData interface {
	// GlobalOrdinals returns the per-segment resolver for the parent
	// type's join field.
	GlobalOrdinals(parentType string, seg Segment) (OrdinalResolver, error)

	// MaxOrdinal returns one past the highest possible ordinal for the
	// parent type's join field, known upfront from the field's global
	// cardinality. It must be queryable before collection starts.
	MaxOrdinal(parentType string) int64
}
