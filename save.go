package mp4meta

import (
	"slices"
	"time"

	"github.com/simonhull/mp4meta/internal/optional"
)

// Save writes the changed fields back to the file the TagSet was
// loaded from.
//
// The save is one linear pass: scalar fields are diffed and applied
// first, then artwork, then the pending tag mutations are committed,
// then chapters and free-form items are reconciled. Composite fields
// come after scalars because chapter encoding depends on track
// bookkeeping established in the same pass.
//
// There is no rollback. If an operation fails mid-pass, everything
// applied before it stays applied; the file is left in an
// indeterminate-but-valid state and the returned StoreError names the
// failing operation.
//
// Options can be provided to customize save behavior:
//
//	err := tags.Save(mp4meta.WithValidation())
func (t *TagSet) Save(opts ...SaveOption) error {
	return t.SaveAs(t.path, opts...)
}

// SaveAs writes the changed fields to the container file at path.
// The diff still runs against that file's own current tags, so only
// fields differing from it are written.
func (t *TagSet) SaveAs(path string, opts ...SaveOption) error {
	options := defaultSaveOptions()
	for _, opt := range opts {
		opt(options)
	}

	driver := t.driver
	if driver == nil {
		driver = defaultDriver
	}
	if driver == nil {
		return &NoDriverError{Path: path}
	}

	st, err := driver.Modify(path)
	if err != nil {
		return &StoreError{Op: "modify", Path: path, Err: err}
	}
	defer st.Close() //nolint:errcheck // Best effort close; Commit reports the real outcome

	snap, err := st.FetchSnapshot()
	if err != nil {
		return &StoreError{Op: "fetch tags", Path: path, Err: err}
	}

	if err := t.applyScalars(st, snap); err != nil {
		return err
	}
	if err := t.applyArtwork(st, snap); err != nil {
		return err
	}
	if err := st.Commit(); err != nil {
		return &StoreError{Op: "commit", Path: path, Err: err}
	}
	if err := t.applyChapters(st); err != nil {
		return err
	}
	if err := applyAtom(st, ratingKind, t.Rating); err != nil {
		return &StoreError{Op: "apply rating item", Path: path, Err: err}
	}
	if err := applyAtom(st, movieKind, t.Movie); err != nil {
		return &StoreError{Op: "apply movie item", Path: path, Err: err}
	}

	// The artwork is persisted now; don't rewrite it on the next save
	// unless the caller touches it again.
	t.artworkEdited = false

	if options.validate {
		return t.validateSaved(path, driver)
	}
	return nil
}

// applyArtwork reconciles the single modeled artwork slot. Nothing is
// written unless SetArtwork was called since load: artwork buffers are
// expensive and must not be rewritten on unrelated saves.
func (t *TagSet) applyArtwork(st Store, snap *Snapshot) error {
	if !t.artworkEdited {
		return nil
	}

	had := len(snap.Artwork) > 0

	switch {
	case t.artwork != nil:
		raw := RawArtwork{
			Data:     slices.Clone(t.artwork.Data),
			TypeCode: t.artwork.Format.typeCode(),
		}
		if had {
			if err := st.SetArtwork(0, raw); err != nil {
				return t.storeErr("replace artwork", err)
			}
		} else {
			if err := st.AddArtwork(raw); err != nil {
				return t.storeErr("add artwork", err)
			}
		}
	case had:
		if err := st.RemoveArtwork(0); err != nil {
			return t.storeErr("remove artwork", err)
		}
	default:
		// Absent and no prior artwork: nothing to do.
	}
	return nil
}

// applyChapters re-derives the native chapter array from the model
// sequence. The store does not support incremental chapter edits, so
// any change rewrites the whole list:
//
//  1. delete existing chapters of every kind
//  2. scan tracks for the max track ID and the reference track
//     (first video track, else track 1), persist next-id = max+1
//  3. clamp cumulative duration to the reference track's total,
//     dropping chapters past the budget
//  4. submit the new QuickTime chapter array
//
// Precondition: the file contains at least one track. Writing
// chapters to a trackless file makes the reference duration undefined.
func (t *TagSet) applyChapters(st Store) error {
	current, err := st.Chapters(ChapterKindQuickTime)
	if err == nil && chaptersMatchRaw(t.Chapters, current) {
		return nil
	}

	tracks, err := st.Tracks()
	if err != nil {
		return t.storeErr("enumerate tracks", err)
	}

	var maxID, refID uint32
	for _, tr := range tracks {
		if tr.ID > maxID {
			maxID = tr.ID
		}
		if refID == 0 && tr.Type == TrackTypeVideo {
			refID = tr.ID
		}
	}
	if refID == 0 {
		refID = 1
	}

	if err := st.DeleteChapters(ChapterKindAny, refID); err != nil {
		return t.storeErr("delete chapters", err)
	}
	if err := st.SetNextTrackID(maxID + 1); err != nil {
		return t.storeErr("set next track id", err)
	}

	if len(t.Chapters) == 0 {
		return nil
	}

	refMS, err := st.TrackDurationMS(refID)
	if err != nil {
		return t.storeErr("read reference track duration", err)
	}

	var elapsed uint64
	raw := make([]RawChapter, 0, len(t.Chapters))
	for _, ch := range t.Chapters {
		if elapsed >= refMS {
			break // budget exhausted, remaining chapters are dropped
		}

		durMS := uint64(ch.Duration / time.Millisecond)
		if remaining := refMS - elapsed; durMS > remaining {
			durMS = remaining
		}

		raw = append(raw, RawChapter{
			Title:      encodeChapterTitle(ch.Title),
			DurationMS: uint32(durMS),
		})
		elapsed += durMS
	}

	if err := st.SetChapters(ChapterKindQuickTime, raw); err != nil {
		return t.storeErr("write chapters", err)
	}
	return nil
}

// validateSaved re-reads the file and verifies key fields round-tripped.
func (t *TagSet) validateSaved(path string, driver Driver) error {
	written, err := Load(path, WithDriver(driver))
	if err != nil {
		return &StoreError{Op: "re-open for validation", Path: path, Err: err}
	}

	checks := []struct {
		field     string
		got, want *string
	}{
		{"name", written.Name, t.Name},
		{"artist", written.Artist, t.Artist},
		{"album", written.Album, t.Album},
	}
	for _, c := range checks {
		if !optional.Equal(c.got, c.want) {
			return &ValidationError{
				Path:  path,
				Field: c.field,
				Got:   optional.Get(c.got, "<absent>"),
				Want:  optional.Get(c.want, "<absent>"),
			}
		}
	}
	return nil
}
