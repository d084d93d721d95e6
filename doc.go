// Package joingo provides an ordinal-indexed parent/child join aggregation
// for segment-based document search engines.
//
// Joingo groups child documents into the same aggregation buckets as the
// parent document they reference through a join field, without requiring
// parent and child to be co-located or scanned together. It does this in
// two phases:
//
//  1. Collection: while parent documents stream by in arbitrary bucket
//     order, record which bucket(s) each parent join-field ordinal was
//     assigned to, and remember which segments contain child matches.
//  2. Replay: after all segments finish, revisit only the remembered
//     segments, resolve each live child document's ordinal, and re-route
//     it into its parent's bucket(s) via the sub-aggregation collector.
//
// # Quick Start
//
//	reg := mapping.NewRegistry()
//	reg.Register("comment", mapping.Join{
//	    ParentType:   "article",
//	    Active:       true,
//	    ParentFilter: parentFilter,
//	    ChildFilter:  childFilter,
//	    FieldData:    fieldData,
//	})
//
//	f := children.NewFactory("to-comments", children.NewTypeConfig("comment"))
//	a, err := f.Create(ctx, reg, subAggs, resource.NewController(resource.Config{}))
//	// drive collection via executor.Run, then:
//	res, err := a.BuildResult(0)
//
// The host engine is abstracted behind the segment package interfaces:
// segment iteration, document filters, live-document bitmaps and global
// ordinal resolution are supplied by the caller. In-memory reference
// implementations backed by Roaring bitmaps are provided for testing and
// embedding.
package joingo
