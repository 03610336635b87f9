package mp4meta

import (
	"slices"

	"github.com/simonhull/mp4meta/internal/optional"
)

// TagSet is the full metadata of one container file.
//
// Every scalar field is optional: a nil pointer means the field is not
// present in the file, which is distinct from a present zero value or
// empty string. Enumerated fields use their NotSet member instead.
//
// A TagSet is populated wholesale by Load, mutated field by field, and
// flushed selectively by Save: only fields whose value differs from
// the file are written back.
//
// Track and disc numbering are index/total pairs that travel together.
// The model lets either half be set alone, but a half-set pair is
// materialized as fully absent: Save clears the store's pair unless
// both halves are present.
//
// A TagSet exclusively owns its Chapters slice and artwork for the
// duration of one load/modify/save cycle. It is not safe for
// concurrent use.
type TagSet struct {
	Name            *string
	Artist          *string
	AlbumArtist     *string
	Album           *string
	Grouping        *string
	Composer        *string
	Comments        *string
	Genre           *string
	ReleaseDate     *string
	TVShow          *string
	TVNetwork       *string
	TVEpisodeID     *string
	Description     *string
	LongDescription *string
	Lyrics          *string
	SortName        *string
	SortArtist      *string
	SortAlbumArtist *string
	SortAlbum       *string
	SortComposer    *string
	SortTVShow      *string
	Copyright       *string
	EncodingTool    *string
	EncodedBy       *string
	PurchaseDate    *string
	Keywords        *string
	Category        *string
	ITunesAccount   *string
	XID             *string

	TrackNumber *uint16
	TrackTotal  *uint16
	DiscNumber  *uint16
	DiscTotal   *uint16

	Tempo     *uint16
	GenreType *uint16

	TVSeason  *uint32
	TVEpisode *uint32
	ContentID *uint32
	ArtistID  *uint32
	GenreID   *uint32

	PlaylistID *uint64

	Compilation *bool
	Podcast     *bool
	HDVideo     *bool
	Gapless     *bool

	MediaKind     MediaKind
	ContentRating ContentRating
	AccountKind   AccountKind
	Country       Country

	// Chapters is the ordered chapter sequence. Insert, remove, and
	// reorder freely; Save re-derives the native chapter array from it.
	Chapters []Chapter

	// Rating is the structured content-rating item (iTunEXTC).
	Rating *RatingInfo

	// Movie is the structured movie-credits item (iTunMOVI).
	Movie *MovieInfo

	// Warnings encountered during loading (non-fatal issues).
	Warnings []Warning

	// artwork state; see Artwork and SetArtwork.
	artwork       *Artwork
	artworkEdited bool

	path   string
	driver Driver
}

// Pointer helpers for populating optional fields:
//
//	tags.Name = mp4meta.String("Title")
//	tags.Tempo = mp4meta.Uint16(120)

// String returns a pointer to s.
func String(s string) *string { return &s }

// Uint16 returns a pointer to v.
func Uint16(v uint16) *uint16 { return &v }

// Uint32 returns a pointer to v.
func Uint32(v uint32) *uint32 { return &v }

// Uint64 returns a pointer to v.
func Uint64(v uint64) *uint64 { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// Artwork returns the embedded artwork, or nil when the file has none.
// Only the first artwork slot is modeled even when the container holds
// several images.
//
// Reading never marks the artwork as edited.
func (t *TagSet) Artwork() *Artwork {
	return t.artwork
}

// SetArtwork replaces the artwork. Passing nil removes it on the next
// Save.
//
// Any call marks the artwork as edited, even when the new value equals
// the old one: image buffers are expensive, so the engine rewrites
// them only when the caller has touched this property.
func (t *TagSet) SetArtwork(a *Artwork) {
	t.artwork = a
	t.artworkEdited = true
}

// Path returns the path the TagSet was loaded from.
func (t *TagSet) Path() string {
	return t.path
}

// Clone creates a deep copy of the TagSet. The copy shares no pointers
// or slices with the original and starts with a clean artwork edited
// flag.
func (t *TagSet) Clone() *TagSet {
	if t == nil {
		return nil
	}

	clone := &TagSet{
		Name:            optional.Clone(t.Name),
		Artist:          optional.Clone(t.Artist),
		AlbumArtist:     optional.Clone(t.AlbumArtist),
		Album:           optional.Clone(t.Album),
		Grouping:        optional.Clone(t.Grouping),
		Composer:        optional.Clone(t.Composer),
		Comments:        optional.Clone(t.Comments),
		Genre:           optional.Clone(t.Genre),
		ReleaseDate:     optional.Clone(t.ReleaseDate),
		TVShow:          optional.Clone(t.TVShow),
		TVNetwork:       optional.Clone(t.TVNetwork),
		TVEpisodeID:     optional.Clone(t.TVEpisodeID),
		Description:     optional.Clone(t.Description),
		LongDescription: optional.Clone(t.LongDescription),
		Lyrics:          optional.Clone(t.Lyrics),
		SortName:        optional.Clone(t.SortName),
		SortArtist:      optional.Clone(t.SortArtist),
		SortAlbumArtist: optional.Clone(t.SortAlbumArtist),
		SortAlbum:       optional.Clone(t.SortAlbum),
		SortComposer:    optional.Clone(t.SortComposer),
		SortTVShow:      optional.Clone(t.SortTVShow),
		Copyright:       optional.Clone(t.Copyright),
		EncodingTool:    optional.Clone(t.EncodingTool),
		EncodedBy:       optional.Clone(t.EncodedBy),
		PurchaseDate:    optional.Clone(t.PurchaseDate),
		Keywords:        optional.Clone(t.Keywords),
		Category:        optional.Clone(t.Category),
		ITunesAccount:   optional.Clone(t.ITunesAccount),
		XID:             optional.Clone(t.XID),

		TrackNumber: optional.Clone(t.TrackNumber),
		TrackTotal:  optional.Clone(t.TrackTotal),
		DiscNumber:  optional.Clone(t.DiscNumber),
		DiscTotal:   optional.Clone(t.DiscTotal),
		Tempo:       optional.Clone(t.Tempo),
		GenreType:   optional.Clone(t.GenreType),
		TVSeason:    optional.Clone(t.TVSeason),
		TVEpisode:   optional.Clone(t.TVEpisode),
		ContentID:   optional.Clone(t.ContentID),
		ArtistID:    optional.Clone(t.ArtistID),
		GenreID:     optional.Clone(t.GenreID),
		PlaylistID:  optional.Clone(t.PlaylistID),

		Compilation: optional.Clone(t.Compilation),
		Podcast:     optional.Clone(t.Podcast),
		HDVideo:     optional.Clone(t.HDVideo),
		Gapless:     optional.Clone(t.Gapless),

		MediaKind:     t.MediaKind,
		ContentRating: t.ContentRating,
		AccountKind:   t.AccountKind,
		Country:       t.Country,

		Chapters: slices.Clone(t.Chapters),
		Rating:   t.Rating.Clone(),
		Movie:    t.Movie.Clone(),

		path:   t.path,
		driver: t.driver,
	}

	if t.artwork != nil {
		clone.artwork = &Artwork{
			Data:   slices.Clone(t.artwork.Data),
			Format: t.artwork.Format,
		}
	}

	return clone
}

// Equal reports whether two TagSets carry the same metadata.
//
// All scalar fields, chapters, artwork bytes, and custom items are
// compared. Warnings and the edited flag are ignored.
func (t *TagSet) Equal(other *TagSet) bool { //nolint:gocyclo // Equality requires comparing every tag field individually
	if t == nil && other == nil {
		return true
	}
	if t == nil || other == nil {
		return false
	}

	if !optional.Equal(t.Name, other.Name) ||
		!optional.Equal(t.Artist, other.Artist) ||
		!optional.Equal(t.AlbumArtist, other.AlbumArtist) ||
		!optional.Equal(t.Album, other.Album) ||
		!optional.Equal(t.Grouping, other.Grouping) ||
		!optional.Equal(t.Composer, other.Composer) ||
		!optional.Equal(t.Comments, other.Comments) ||
		!optional.Equal(t.Genre, other.Genre) ||
		!optional.Equal(t.ReleaseDate, other.ReleaseDate) ||
		!optional.Equal(t.TVShow, other.TVShow) ||
		!optional.Equal(t.TVNetwork, other.TVNetwork) ||
		!optional.Equal(t.TVEpisodeID, other.TVEpisodeID) ||
		!optional.Equal(t.Description, other.Description) ||
		!optional.Equal(t.LongDescription, other.LongDescription) ||
		!optional.Equal(t.Lyrics, other.Lyrics) ||
		!optional.Equal(t.SortName, other.SortName) ||
		!optional.Equal(t.SortArtist, other.SortArtist) ||
		!optional.Equal(t.SortAlbumArtist, other.SortAlbumArtist) ||
		!optional.Equal(t.SortAlbum, other.SortAlbum) ||
		!optional.Equal(t.SortComposer, other.SortComposer) ||
		!optional.Equal(t.SortTVShow, other.SortTVShow) ||
		!optional.Equal(t.Copyright, other.Copyright) ||
		!optional.Equal(t.EncodingTool, other.EncodingTool) ||
		!optional.Equal(t.EncodedBy, other.EncodedBy) ||
		!optional.Equal(t.PurchaseDate, other.PurchaseDate) ||
		!optional.Equal(t.Keywords, other.Keywords) ||
		!optional.Equal(t.Category, other.Category) ||
		!optional.Equal(t.ITunesAccount, other.ITunesAccount) ||
		!optional.Equal(t.XID, other.XID) {
		return false
	}

	if !optional.Equal(t.TrackNumber, other.TrackNumber) ||
		!optional.Equal(t.TrackTotal, other.TrackTotal) ||
		!optional.Equal(t.DiscNumber, other.DiscNumber) ||
		!optional.Equal(t.DiscTotal, other.DiscTotal) ||
		!optional.Equal(t.Tempo, other.Tempo) ||
		!optional.Equal(t.GenreType, other.GenreType) ||
		!optional.Equal(t.TVSeason, other.TVSeason) ||
		!optional.Equal(t.TVEpisode, other.TVEpisode) ||
		!optional.Equal(t.ContentID, other.ContentID) ||
		!optional.Equal(t.ArtistID, other.ArtistID) ||
		!optional.Equal(t.GenreID, other.GenreID) ||
		!optional.Equal(t.PlaylistID, other.PlaylistID) {
		return false
	}

	if !optional.Equal(t.Compilation, other.Compilation) ||
		!optional.Equal(t.Podcast, other.Podcast) ||
		!optional.Equal(t.HDVideo, other.HDVideo) ||
		!optional.Equal(t.Gapless, other.Gapless) {
		return false
	}

	if t.MediaKind != other.MediaKind ||
		t.ContentRating != other.ContentRating ||
		t.AccountKind != other.AccountKind ||
		t.Country != other.Country {
		return false
	}

	if !slices.Equal(t.Chapters, other.Chapters) {
		return false
	}

	if !t.Rating.Equal(other.Rating) || !t.Movie.Equal(other.Movie) {
		return false
	}

	return t.artwork.equal(other.artwork)
}
