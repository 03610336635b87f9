// Package mp4meta edits MP4 container metadata with minimal writes.
//
// mp4meta reads the tags, embedded artwork, and chapter markers of an
// MP4 file into a rich, nullable-aware TagSet, lets the caller mutate
// it field by field, and writes back only the fields that actually
// changed. The container file itself is accessed through a pluggable
// tag store driver, so the engine never touches the byte layout of the
// format directly.
//
// # Quick Start
//
// Loading and editing metadata:
//
//	tags, err := mp4meta.Load("movie.m4v")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	tags.Name = mp4meta.String("A Better Title")
//	tags.MediaKind = mp4meta.MediaKindMovie
//
//	if err := tags.Save(); err != nil {
//		log.Fatal(err)
//	}
//
// # Minimal Writes
//
// Save compares every field of the TagSet against a freshly fetched
// native snapshot and issues a store mutation only where the two
// differ. Saving a freshly loaded, unmodified TagSet performs zero
// mutations. Artwork is rewritten only after SetArtwork has been
// called, because image buffers are expensive to rewrite.
//
// # Optional Semantics
//
// The native tag record has no true optional type; it uses null
// pointers and reserved sentinel values instead. The TagSet models
// every scalar as a pointer (nil = absent) and every enumeration with
// an explicit NotSet member, so absent, zero, and false stay distinct:
//
//	tags.Compilation = mp4meta.Bool(false) // stored as explicit false
//	tags.Compilation = nil                 // cleared in the store
//
// # Chapters
//
// Chapters are an ordered sequence of (title, duration) records owned
// by the TagSet. On save the sequence is re-derived against the
// file's reference track: cumulative chapter time is clamped to the
// reference track duration and chapters past the budget are dropped.
//
// # Drivers
//
// The engine consumes the container through the Store interface.
// Register a driver once at startup with RegisterDriver, or pass one
// per call with WithDriver. The memstore package provides an
// in-memory reference driver used by the test suite.
//
// # Error Handling
//
// Fatal problems (missing driver, unreadable path, store-boundary
// failures) are returned as typed errors identifying the operation
// that failed. Recoverable problems (a malformed custom atom payload)
// are collected as warnings on the TagSet and never block the rest of
// the read.
//
// A failed save performs no rollback: mutations applied before the
// failure remain in effect, mirroring the non-transactional nature of
// the underlying store.
package mp4meta
