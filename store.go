package mp4meta

// Field identifies one scalar or composite slot of the native tag
// record. Fields are the unit of the diff-and-apply pass: the engine
// issues at most one setter per field per save.
type Field int

const (
	FieldName Field = iota
	FieldArtist
	FieldAlbumArtist
	FieldAlbum
	FieldGrouping
	FieldComposer
	FieldComments
	FieldGenre
	FieldReleaseDate
	FieldTVShow
	FieldTVNetwork
	FieldTVEpisodeID
	FieldDescription
	FieldLongDescription
	FieldLyrics
	FieldSortName
	FieldSortArtist
	FieldSortAlbumArtist
	FieldSortAlbum
	FieldSortComposer
	FieldSortTVShow
	FieldCopyright
	FieldEncodingTool
	FieldEncodedBy
	FieldPurchaseDate
	FieldKeywords
	FieldCategory
	FieldITunesAccount
	FieldXID
	FieldTrack
	FieldDisc
	FieldTempo
	FieldGenreType
	FieldTVSeason
	FieldTVEpisode
	FieldContentID
	FieldArtistID
	FieldPlaylistID
	FieldGenreID
	FieldCountry
	FieldCompilation
	FieldPodcast
	FieldHDVideo
	FieldGapless
	FieldMediaKind
	FieldContentRating
	FieldAccountKind
)

var fieldNames = [...]string{
	"name", "artist", "album artist", "album", "grouping", "composer",
	"comments", "genre", "release date", "tv show", "tv network",
	"tv episode id", "description", "long description", "lyrics",
	"sort name", "sort artist", "sort album artist", "sort album",
	"sort composer", "sort tv show", "copyright", "encoding tool",
	"encoded by", "purchase date", "keywords", "category",
	"itunes account", "xid", "track", "disc", "tempo", "genre type",
	"tv season", "tv episode", "content id", "artist id", "playlist id",
	"genre id", "country", "compilation", "podcast", "hd video",
	"gapless", "media kind", "content rating", "account kind",
}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return "unknown field"
	}
	return fieldNames[f]
}

// Position is an index/total pair as stored natively for track and
// disc numbering. The pair travels as a unit: it is written whole and
// cleared whole.
type Position struct {
	Index uint16
	Total uint16
}

// RawArtwork is one native artwork slot: the opaque image bytes plus
// the container's basic-type code for the image encoding.
type RawArtwork struct {
	Data     []byte
	TypeCode uint32
}

// RawChapter is one entry of the native chapter array. Title holds at
// most 1024 bytes of UTF-8 or BOM-prefixed UTF-16, NUL terminated when
// shorter than the buffer.
type RawChapter struct {
	Title      []byte
	DurationMS uint32
}

// ChapterKind selects a native chapter encoding.
type ChapterKind int

const (
	// ChapterKindAny matches every chapter encoding. Valid only for
	// deletion.
	ChapterKindAny ChapterKind = iota
	// ChapterKindQuickTime is the QuickTime chapter text track
	// encoding. This is the only kind the engine reads and writes.
	ChapterKindQuickTime
	// ChapterKindNero is the Nero chpl encoding.
	ChapterKindNero
)

// TrackInfo describes one container track.
type TrackInfo struct {
	ID   uint32
	Type string // "vide", "soun", "text", ...
}

// TrackTypeVideo is the track type code of video tracks, used to pick
// the reference track for chapter timing.
const TrackTypeVideo = "vide"

// RawItem is a free-form metadata item addressed by its
// (meaning, name) pair rather than a fixed tag slot.
type RawItem struct {
	Meaning  string
	Name     string
	DataType uint32
	Data     []byte
}

// Snapshot is a full read of the native tag record. Every field uses
// nil for "not present in the file"; the engine diffs the TagSet
// against a Snapshot and never writes a field whose value is unchanged.
type Snapshot struct {
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

	Track *Position
	Disc  *Position

	Tempo     *uint16
	GenreType *uint16

	TVSeason  *uint32
	TVEpisode *uint32
	ContentID *uint32
	ArtistID  *uint32
	GenreID   *uint32
	Country   *uint32

	PlaylistID *uint64

	Compilation *bool
	Podcast     *bool
	HDVideo     *bool
	Gapless     *bool

	// Raw enumeration codes; a nil pointer is the "not set" sentinel.
	MediaKind     *uint8
	ContentRating *uint8
	AccountKind   *uint8

	// Native artwork slots in file order.
	Artwork []RawArtwork
}

// Store is the boundary to one open container file's metadata. The
// engine treats it as a black box: it fetches a Snapshot, issues
// narrow per-field setters for the fields that changed, and commits.
//
// Passing nil to a setter clears the field in the store.
//
// Scalar setters and artwork slot operations stage changes on the tag
// record; Commit flushes them to the file. Chapter, track, and item
// operations act on the file directly.
//
// A Store is not safe for concurrent use. All operations of one
// load/modify/save cycle run as a single linear pass.
type Store interface {
	FetchSnapshot() (*Snapshot, error)

	SetString(f Field, v *string) error
	SetUint8(f Field, v *uint8) error
	SetUint16(f Field, v *uint16) error
	SetUint32(f Field, v *uint32) error
	SetUint64(f Field, v *uint64) error
	SetBool(f Field, v *bool) error
	SetPosition(f Field, v *Position) error

	SetArtwork(index int, art RawArtwork) error
	AddArtwork(art RawArtwork) error
	RemoveArtwork(index int) error

	Commit() error

	Chapters(kind ChapterKind) ([]RawChapter, error)
	SetChapters(kind ChapterKind, chapters []RawChapter) error
	// DeleteChapters removes every chapter of the given kind. The
	// store resolves which track holds them; trackID is a hint for
	// stores that need one.
	DeleteChapters(kind ChapterKind, trackID uint32) error

	Tracks() ([]TrackInfo, error)
	TrackDurationMS(id uint32) (uint64, error)
	SetNextTrackID(id uint32) error

	ItemsByMeaning(meaning, name string) ([]RawItem, error)
	AddItem(item RawItem) error
	RemoveItems(meaning, name string) error

	Close() error
}

// Driver opens tag stores for container files. Open is for reading,
// Modify for read-write access.
type Driver interface {
	Open(path string) (Store, error)
	Modify(path string) (Store, error)
}

// defaultDriver is the process-wide driver used when no WithDriver
// option is given.
var defaultDriver Driver

// RegisterDriver installs the process-wide tag store driver.
//
// Call once at startup. Load and Save fail with NoDriverError when no
// driver is registered and none is supplied via WithDriver.
func RegisterDriver(d Driver) {
	defaultDriver = d
}
