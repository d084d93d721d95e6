// Package mapping holds the join-field mapping registry: for each child
// document type, the parent type it joins to, the normalized type filters,
// and the field data resolving join-field ordinals.
package mapping

import (
	"github.com/hupe1980/joingo/segment"
)

// Join describes the join-field mapping of one child document type.
type Join struct {
	// ParentType is the document type the join field points to.
	ParentType string

	// Active reports whether the join field is enabled for this type.
	// An inactive mapping is a configuration error at aggregation setup.
	Active bool

	// ParentFilter matches documents of the parent type.
	ParentFilter segment.Filter

	// ChildFilter matches documents of the child type.
	ChildFilter segment.Filter

	// FieldData resolves join-field ordinals for the parent type.
	FieldData segment.FieldData
}

// Registry maps child document types to their join mappings.
type Registry struct {
	joins map[string]Join
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		joins: make(map[string]Join),
	}
}

// Register adds or replaces the mapping for a child type.
func (r *Registry) Register(childType string, join Join) {
	r.joins[childType] = join
}

// Lookup returns the mapping for a child type.
// ok is false if the type is unknown to this index.
func (r *Registry) Lookup(childType string) (Join, bool) {
	join, ok := r.joins[childType]
	return join, ok
}
