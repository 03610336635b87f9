// Package memstore provides an in-memory tag store driver.
//
// memstore implements the full mp4meta.Store contract against plain Go
// values instead of a container file. It exists for the test suite and
// for downstream code that needs a store fixture: every mutating
// operation increments a counter, so tests can assert that the engine
// writes exactly the fields that changed and nothing else.
//
//	driver := memstore.New()
//	driver.Put("movie.m4v", &memstore.File{
//	    Tracks: []memstore.Track{{ID: 1, Type: "vide", DurationMS: 60000}},
//	})
//
//	tags, err := mp4meta.Load("movie.m4v", mp4meta.WithDriver(driver))
//
// Like a real container file handle, a memstore handle is not safe for
// concurrent use. Distinct files may be accessed from distinct
// goroutines.
package memstore

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"

	"github.com/simonhull/mp4meta"
)

// ErrReadOnly is returned when a mutating operation is attempted on a
// handle obtained with Open rather than Modify.
var ErrReadOnly = errors.New("store opened read-only")

// Track describes one container track of a fixture file.
type Track struct {
	ID         uint32
	Type       string // "vide", "soun", "text", ...
	DurationMS uint64
}

// File is one in-memory container file: the native tag record plus the
// file-level structures the engine reconciles.
type File struct {
	// Tags is the persistent native tag record, artwork slots included.
	Tags mp4meta.Snapshot

	// Chapters holds the chapter arrays by kind.
	Chapters map[mp4meta.ChapterKind][]mp4meta.RawChapter

	// Tracks is the container track table.
	Tracks []Track

	// NextTrackID is the next-track-id bookkeeping field.
	NextTrackID uint32

	// Items holds the free-form metadata items.
	Items []mp4meta.RawItem

	// Mutations counts every mutating store call since the file was
	// created. A diff-minimal save of an unchanged TagSet leaves it
	// untouched.
	Mutations int
}

// Driver is an in-memory implementation of mp4meta.Driver keyed by
// path.
type Driver struct {
	files map[string]*File
}

// New creates an empty driver.
func New() *Driver {
	return &Driver{files: make(map[string]*File)}
}

// Put adds or replaces a fixture file at path.
func (d *Driver) Put(path string, f *File) {
	if f.Chapters == nil {
		f.Chapters = make(map[mp4meta.ChapterKind][]mp4meta.RawChapter)
	}
	d.files[path] = f
}

// File returns the fixture at path, or nil. Tests use it to inspect
// persisted state and the mutation counter.
func (d *Driver) File(path string) *File {
	return d.files[path]
}

// Open returns a read-only handle to the file at path.
func (d *Driver) Open(path string) (mp4meta.Store, error) {
	return d.open(path, true)
}

// Modify returns a read-write handle to the file at path.
func (d *Driver) Modify(path string) (mp4meta.Store, error) {
	return d.open(path, false)
}

func (d *Driver) open(path string, readonly bool) (mp4meta.Store, error) {
	f, ok := d.files[path]
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, fs.ErrNotExist)
	}
	return &store{
		file:     f,
		staged:   cloneSnapshot(f.Tags),
		readonly: readonly,
	}, nil
}

// store is one open handle. Scalar and artwork mutations act on a
// staged copy of the tag record and reach the file only on Commit;
// chapter, track, and item operations act on the file directly,
// matching the two-level contract of mp4meta.Store.
type store struct {
	file     *File
	staged   mp4meta.Snapshot
	readonly bool
}

// cloneSnapshot copies the record one level deep. Handles never mutate
// pointed-to values in place, they replace whole pointers, so sharing
// the pointees between clones is safe.
func cloneSnapshot(s mp4meta.Snapshot) mp4meta.Snapshot {
	c := s
	c.Artwork = slices.Clone(s.Artwork)
	return c
}

func (s *store) FetchSnapshot() (*mp4meta.Snapshot, error) {
	c := cloneSnapshot(s.staged)
	return &c, nil
}

func (s *store) mutate() error {
	if s.readonly {
		return ErrReadOnly
	}
	s.file.Mutations++
	return nil
}

func (s *store) SetString(f mp4meta.Field, v *string) error {
	slot := s.stringSlot(f)
	if slot == nil {
		return fmt.Errorf("%s is not a string field", f)
	}
	if err := s.mutate(); err != nil {
		return err
	}
	*slot = v
	return nil
}

// stringSlot maps a string field to its slot in the staged record,
// or nil when the field is not string-typed.
func (s *store) stringSlot(f mp4meta.Field) **string {
	t := &s.staged
	switch f {
	case mp4meta.FieldName:
		return &t.Name
	case mp4meta.FieldArtist:
		return &t.Artist
	case mp4meta.FieldAlbumArtist:
		return &t.AlbumArtist
	case mp4meta.FieldAlbum:
		return &t.Album
	case mp4meta.FieldGrouping:
		return &t.Grouping
	case mp4meta.FieldComposer:
		return &t.Composer
	case mp4meta.FieldComments:
		return &t.Comments
	case mp4meta.FieldGenre:
		return &t.Genre
	case mp4meta.FieldReleaseDate:
		return &t.ReleaseDate
	case mp4meta.FieldTVShow:
		return &t.TVShow
	case mp4meta.FieldTVNetwork:
		return &t.TVNetwork
	case mp4meta.FieldTVEpisodeID:
		return &t.TVEpisodeID
	case mp4meta.FieldDescription:
		return &t.Description
	case mp4meta.FieldLongDescription:
		return &t.LongDescription
	case mp4meta.FieldLyrics:
		return &t.Lyrics
	case mp4meta.FieldSortName:
		return &t.SortName
	case mp4meta.FieldSortArtist:
		return &t.SortArtist
	case mp4meta.FieldSortAlbumArtist:
		return &t.SortAlbumArtist
	case mp4meta.FieldSortAlbum:
		return &t.SortAlbum
	case mp4meta.FieldSortComposer:
		return &t.SortComposer
	case mp4meta.FieldSortTVShow:
		return &t.SortTVShow
	case mp4meta.FieldCopyright:
		return &t.Copyright
	case mp4meta.FieldEncodingTool:
		return &t.EncodingTool
	case mp4meta.FieldEncodedBy:
		return &t.EncodedBy
	case mp4meta.FieldPurchaseDate:
		return &t.PurchaseDate
	case mp4meta.FieldKeywords:
		return &t.Keywords
	case mp4meta.FieldCategory:
		return &t.Category
	case mp4meta.FieldITunesAccount:
		return &t.ITunesAccount
	case mp4meta.FieldXID:
		return &t.XID
	default:
		return nil
	}
}

func (s *store) SetUint8(f mp4meta.Field, v *uint8) error {
	t := &s.staged
	var slot **uint8
	switch f {
	case mp4meta.FieldMediaKind:
		slot = &t.MediaKind
	case mp4meta.FieldContentRating:
		slot = &t.ContentRating
	case mp4meta.FieldAccountKind:
		slot = &t.AccountKind
	default:
		return fmt.Errorf("%s is not a byte field", f)
	}
	if err := s.mutate(); err != nil {
		return err
	}
	*slot = v
	return nil
}

func (s *store) SetUint16(f mp4meta.Field, v *uint16) error {
	t := &s.staged
	var slot **uint16
	switch f {
	case mp4meta.FieldTempo:
		slot = &t.Tempo
	case mp4meta.FieldGenreType:
		slot = &t.GenreType
	default:
		return fmt.Errorf("%s is not a uint16 field", f)
	}
	if err := s.mutate(); err != nil {
		return err
	}
	*slot = v
	return nil
}

func (s *store) SetUint32(f mp4meta.Field, v *uint32) error {
	t := &s.staged
	var slot **uint32
	switch f {
	case mp4meta.FieldTVSeason:
		slot = &t.TVSeason
	case mp4meta.FieldTVEpisode:
		slot = &t.TVEpisode
	case mp4meta.FieldContentID:
		slot = &t.ContentID
	case mp4meta.FieldArtistID:
		slot = &t.ArtistID
	case mp4meta.FieldGenreID:
		slot = &t.GenreID
	case mp4meta.FieldCountry:
		slot = &t.Country
	default:
		return fmt.Errorf("%s is not a uint32 field", f)
	}
	if err := s.mutate(); err != nil {
		return err
	}
	*slot = v
	return nil
}

func (s *store) SetUint64(f mp4meta.Field, v *uint64) error {
	if f != mp4meta.FieldPlaylistID {
		return fmt.Errorf("%s is not a uint64 field", f)
	}
	if err := s.mutate(); err != nil {
		return err
	}
	s.staged.PlaylistID = v
	return nil
}

func (s *store) SetBool(f mp4meta.Field, v *bool) error {
	t := &s.staged
	var slot **bool
	switch f {
	case mp4meta.FieldCompilation:
		slot = &t.Compilation
	case mp4meta.FieldPodcast:
		slot = &t.Podcast
	case mp4meta.FieldHDVideo:
		slot = &t.HDVideo
	case mp4meta.FieldGapless:
		slot = &t.Gapless
	default:
		return fmt.Errorf("%s is not a flag field", f)
	}
	if err := s.mutate(); err != nil {
		return err
	}
	*slot = v
	return nil
}

func (s *store) SetPosition(f mp4meta.Field, v *mp4meta.Position) error {
	t := &s.staged
	var slot **mp4meta.Position
	switch f {
	case mp4meta.FieldTrack:
		slot = &t.Track
	case mp4meta.FieldDisc:
		slot = &t.Disc
	default:
		return fmt.Errorf("%s is not a pair field", f)
	}
	if err := s.mutate(); err != nil {
		return err
	}
	*slot = v
	return nil
}

func (s *store) SetArtwork(index int, art mp4meta.RawArtwork) error {
	if index < 0 || index >= len(s.staged.Artwork) {
		return fmt.Errorf("artwork slot %d out of range (%d slots)", index, len(s.staged.Artwork))
	}
	if err := s.mutate(); err != nil {
		return err
	}
	s.staged.Artwork[index] = art
	return nil
}

func (s *store) AddArtwork(art mp4meta.RawArtwork) error {
	if err := s.mutate(); err != nil {
		return err
	}
	s.staged.Artwork = append(s.staged.Artwork, art)
	return nil
}

func (s *store) RemoveArtwork(index int) error {
	if index < 0 || index >= len(s.staged.Artwork) {
		return fmt.Errorf("artwork slot %d out of range (%d slots)", index, len(s.staged.Artwork))
	}
	if err := s.mutate(); err != nil {
		return err
	}
	s.staged.Artwork = slices.Delete(s.staged.Artwork, index, index+1)
	return nil
}

// Commit flushes the staged tag record to the file. An uncommitted
// handle leaves the file unchanged when closed.
func (s *store) Commit() error {
	if s.readonly {
		return ErrReadOnly
	}
	s.file.Tags = cloneSnapshot(s.staged)
	return nil
}

func (s *store) Chapters(kind mp4meta.ChapterKind) ([]mp4meta.RawChapter, error) {
	if kind == mp4meta.ChapterKindAny {
		return nil, errors.New("chapter kind any is only valid for deletion")
	}
	return slices.Clone(s.file.Chapters[kind]), nil
}

func (s *store) SetChapters(kind mp4meta.ChapterKind, chapters []mp4meta.RawChapter) error {
	if kind == mp4meta.ChapterKindAny {
		return errors.New("chapter kind any is only valid for deletion")
	}
	if err := s.mutate(); err != nil {
		return err
	}
	s.file.Chapters[kind] = slices.Clone(chapters)
	return nil
}

func (s *store) DeleteChapters(kind mp4meta.ChapterKind, _ uint32) error {
	if err := s.mutate(); err != nil {
		return err
	}
	if kind == mp4meta.ChapterKindAny {
		clear(s.file.Chapters)
		return nil
	}
	delete(s.file.Chapters, kind)
	return nil
}

func (s *store) Tracks() ([]mp4meta.TrackInfo, error) {
	infos := make([]mp4meta.TrackInfo, 0, len(s.file.Tracks))
	for _, tr := range s.file.Tracks {
		infos = append(infos, mp4meta.TrackInfo{ID: tr.ID, Type: tr.Type})
	}
	return infos, nil
}

func (s *store) TrackDurationMS(id uint32) (uint64, error) {
	for _, tr := range s.file.Tracks {
		if tr.ID == id {
			return tr.DurationMS, nil
		}
	}
	return 0, fmt.Errorf("no track with id %d", id)
}

func (s *store) SetNextTrackID(id uint32) error {
	if err := s.mutate(); err != nil {
		return err
	}
	s.file.NextTrackID = id
	return nil
}

func (s *store) ItemsByMeaning(meaning, name string) ([]mp4meta.RawItem, error) {
	var items []mp4meta.RawItem
	for _, it := range s.file.Items {
		if it.Meaning == meaning && it.Name == name {
			items = append(items, it)
		}
	}
	return items, nil
}

func (s *store) AddItem(item mp4meta.RawItem) error {
	if err := s.mutate(); err != nil {
		return err
	}
	s.file.Items = append(s.file.Items, item)
	return nil
}

func (s *store) RemoveItems(meaning, name string) error {
	if s.readonly {
		return ErrReadOnly
	}
	kept := s.file.Items[:0:0]
	removed := 0
	for _, it := range s.file.Items {
		if it.Meaning == meaning && it.Name == name {
			removed++
			continue
		}
		kept = append(kept, it)
	}
	if removed > 0 {
		s.file.Items = kept
		s.file.Mutations++
	}
	return nil
}

func (s *store) Close() error {
	return nil
}
