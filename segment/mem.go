package segment

import (
	"github.com/hupe1980/joingo/model"
)

// MemSegment is an in-memory Segment implementation.
type MemSegment struct {
	id     model.SegmentID
	maxDoc uint32
	live   *RoaringDocSet // nil until the first delete
}

// NewMemSegment creates a segment with documents [0, maxDoc).
func NewMemSegment(id model.SegmentID, maxDoc uint32) *MemSegment {
	return &MemSegment{
		id:     id,
		maxDoc: maxDoc,
	}
}

// Ensure MemSegment implements Segment
var _ Segment = (*MemSegment)(nil)

// ID returns the segment identifier.
func (s *MemSegment) ID() model.SegmentID { return s.id }

// MaxDoc returns one past the highest document id.
func (s *MemSegment) MaxDoc() uint32 { return s.maxDoc }

// LiveDocs returns the live-document set, or nil if no document was deleted.
func (s *MemSegment) LiveDocs() DocSet {
	if s.live == nil {
		return nil
	}
	return s.live
}

// Delete marks a document as deleted.
func (s *MemSegment) Delete(doc uint32) {
	if s.live == nil {
		s.live = NewRoaringDocSet()
		s.live.rb.AddRange(0, uint64(s.maxDoc))
	}
	s.live.Remove(doc)
}

// DocSetFilter is an in-memory Filter backed by explicit per-segment
// document sets.
type DocSetFilter struct {
	sets map[model.SegmentID]*RoaringDocSet
}

// NewDocSetFilter creates an empty DocSetFilter.
func NewDocSetFilter() *DocSetFilter {
	return &DocSetFilter{
		sets: make(map[model.SegmentID]*RoaringDocSet),
	}
}

// Ensure DocSetFilter implements Filter
var _ Filter = (*DocSetFilter)(nil)

// Add marks the given documents as matching within a segment.
func (f *DocSetFilter) Add(id model.SegmentID, docs ...uint32) {
	set, ok := f.sets[id]
	if !ok {
		set = NewRoaringDocSet()
		f.sets[id] = set
	}
	for _, doc := range docs {
		set.Add(doc)
	}
}

// DocSet returns the matching documents for a segment,
// or nil if the segment has no matches.
func (f *DocSetFilter) DocSet(seg Segment) (DocSet, error) {
	set, ok := f.sets[seg.ID()]
	if !ok || set.IsEmpty() {
		return nil, nil
	}
	return set, nil
}

// MemFieldData is an in-memory FieldData implementation.
// Ordinals are registered per (parent type, segment, doc) and share one
// global numbering per parent type, mirroring the host contract.
type MemFieldData struct {
	maxOrds map[string]int64
	ords    map[string]map[model.SegmentID]map[uint32]model.Ordinal
}

// NewMemFieldData creates an empty MemFieldData.
func NewMemFieldData() *MemFieldData {
	return &MemFieldData{
		maxOrds: make(map[string]int64),
		ords:    make(map[string]map[model.SegmentID]map[uint32]model.Ordinal),
	}
}

// Ensure MemFieldData implements FieldData
var _ FieldData = (*MemFieldData)(nil)

// SetOrd registers the join-field ordinal for a document.
// The global maximum for the parent type grows automatically.
func (fd *MemFieldData) SetOrd(parentType string, id model.SegmentID, doc uint32, ord model.Ordinal) {
	segs, ok := fd.ords[parentType]
	if !ok {
		segs = make(map[model.SegmentID]map[uint32]model.Ordinal)
		fd.ords[parentType] = segs
	}
	docs, ok := segs[id]
	if !ok {
		docs = make(map[uint32]model.Ordinal)
		segs[id] = docs
	}
	docs[doc] = ord

	if !ord.Absent() && int64(ord)+1 > fd.maxOrds[parentType] {
		fd.maxOrds[parentType] = int64(ord) + 1
	}
}

// GlobalOrdinals returns the resolver for one segment.
func (fd *MemFieldData) GlobalOrdinals(parentType string, seg Segment) (OrdinalResolver, error) {
	return memResolver{docs: fd.ords[parentType][seg.ID()]}, nil
}

// MaxOrdinal returns one past the highest registered ordinal.
func (fd *MemFieldData) MaxOrdinal(parentType string) int64 {
	return fd.maxOrds[parentType]
}

type memResolver struct {
	docs map[uint32]model.Ordinal
}

func (r memResolver) Ord(doc uint32) model.Ordinal {
	ord, ok := r.docs[doc]
	if !ok {
		return model.AbsentOrdinal
	}
	return ord
}
