// Package segment defines the host-engine collaborator interfaces consumed
// by joingo aggregators: immutable document segments, document sets,
// normalized filters, and global-ordinal resolution for join fields.
//
// The package also ships in-memory reference implementations backed by
// Roaring bitmaps (MemSegment, DocSetFilter, MemFieldData). They are used
// by the executor and the test suites, and are suitable for embedding in
// hosts without their own segment machinery.
package segment
