package segment

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// RoaringDocSet implements DocSet on top of a 32-bit Roaring bitmap.
// It wraps the official roaring implementation.
type RoaringDocSet struct {
	rb *roaring.Bitmap
}

// NewRoaringDocSet creates a new empty RoaringDocSet.
func NewRoaringDocSet() *RoaringDocSet {
	return &RoaringDocSet{
		rb: roaring.New(),
	}
}

// RoaringDocSetOf creates a RoaringDocSet containing the given documents.
func RoaringDocSetOf(docs ...uint32) *RoaringDocSet {
	return &RoaringDocSet{
		rb: roaring.BitmapOf(docs...),
	}
}

// Ensure RoaringDocSet implements DocSet
var _ DocSet = (*RoaringDocSet)(nil)

// Add adds a document to the set.
func (s *RoaringDocSet) Add(doc uint32) {
	s.rb.Add(doc)
}

// Remove removes a document from the set.
func (s *RoaringDocSet) Remove(doc uint32) {
	s.rb.Remove(doc)
}

// Contains checks if a document is in the set.
func (s *RoaringDocSet) Contains(doc uint32) bool {
	return s.rb.Contains(doc)
}

// IsEmpty returns true if the set is empty.
func (s *RoaringDocSet) IsEmpty() bool {
	return s.rb.IsEmpty()
}

// Cardinality returns the number of documents in the set.
func (s *RoaringDocSet) Cardinality() uint64 {
	return s.rb.GetCardinality()
}

// Clone returns a deep copy of the set.
func (s *RoaringDocSet) Clone() *RoaringDocSet {
	return &RoaringDocSet{
		rb: s.rb.Clone(),
	}
}

// Iterator returns an iterator over the set in ascending order.
func (s *RoaringDocSet) Iterator() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(it.Next()) {
				return
			}
		}
	}
}

// And computes the intersection of two sets.
func (s *RoaringDocSet) And(other *RoaringDocSet) {
	s.rb.And(other.rb)
}

// Or computes the union of two sets.
func (s *RoaringDocSet) Or(other *RoaringDocSet) {
	s.rb.Or(other.rb)
}
