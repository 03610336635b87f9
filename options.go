package mp4meta

// Option configures behavior when loading tags.
//
// Options use the functional options pattern:
//
//	tags, err := mp4meta.Load("movie.m4v",
//	    mp4meta.WithoutChapters(),
//	)
type Option func(*loadOptions)

// loadOptions holds configuration for loading.
type loadOptions struct {
	driver       Driver // Overrides the registered driver
	skipChapters bool   // Don't read the chapter list
	skipArtwork  bool   // Don't read the artwork slot
}

// defaultLoadOptions returns the default configuration.
func defaultLoadOptions() *loadOptions {
	return &loadOptions{}
}

// WithDriver uses d instead of the driver installed with
// RegisterDriver, for this call only.
func WithDriver(d Driver) Option {
	return func(o *loadOptions) {
		o.driver = d
	}
}

// WithoutChapters skips reading the chapter list.
//
// The TagSet starts with no chapters; a later Save with an empty
// chapter sequence will still clear the file's chapters if it had any,
// so use this only for read-mostly workloads.
func WithoutChapters() Option {
	return func(o *loadOptions) {
		o.skipChapters = true
	}
}

// WithoutArtwork skips reading the artwork slot.
//
// Artwork blobs can be large; skipping them keeps read-only scans
// cheap. The artwork stays untouched on Save unless SetArtwork is
// called.
func WithoutArtwork() Option {
	return func(o *loadOptions) {
		o.skipArtwork = true
	}
}

// SaveOption configures behavior when saving tags.
type SaveOption func(*saveOptions)

// saveOptions holds configuration for saving.
type saveOptions struct {
	validate bool // Re-read after write to verify key fields
}

// defaultSaveOptions returns the default configuration for saving.
func defaultSaveOptions() *saveOptions {
	return &saveOptions{}
}

// WithValidation re-reads the file after saving and verifies key
// fields round-tripped.
//
// This adds a full load but gives confidence that the store applied
// the writes:
//
//	err := tags.Save(mp4meta.WithValidation())
func WithValidation() SaveOption {
	return func(o *saveOptions) {
		o.validate = true
	}
}
