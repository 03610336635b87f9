package mp4meta

// Enumerated tag fields share one shape: a typed constant set with an
// explicit NotSet member, plus a codec translating between the enum
// and the raw byte code the store understands. NotSet encodes to a nil
// pointer (the store's absence sentinel), never to a literal code,
// because 0 is a valid enumerant for most of these fields.

// MediaKind categorizes the content of the file (the stik atom).
type MediaKind int

const (
	MediaKindNotSet MediaKind = iota
	MediaKindHomeVideo
	MediaKindMusic
	MediaKindAudiobook
	MediaKindMusicVideo
	MediaKindMovie
	MediaKindTVShow
	MediaKindBooklet
	MediaKindRingtone
)

// mediaKindCodes maps each kind to its native storage code.
// Note that 0 is a valid code (home video), so the absent sentinel is
// the nil pointer, not zero.
var mediaKindCodes = map[MediaKind]uint8{
	MediaKindHomeVideo:  0,
	MediaKindMusic:      1,
	MediaKindAudiobook:  2,
	MediaKindMusicVideo: 6,
	MediaKindMovie:      9,
	MediaKindTVShow:     10,
	MediaKindBooklet:    11,
	MediaKindRingtone:   14,
}

func (k MediaKind) String() string {
	switch k {
	case MediaKindNotSet:
		return "Not set"
	case MediaKindHomeVideo:
		return "Home video"
	case MediaKindMusic:
		return "Music"
	case MediaKindAudiobook:
		return "Audiobook"
	case MediaKindMusicVideo:
		return "Music video"
	case MediaKindMovie:
		return "Movie"
	case MediaKindTVShow:
		return "TV show"
	case MediaKindBooklet:
		return "Booklet"
	case MediaKindRingtone:
		return "Ringtone"
	default:
		return "Unknown"
	}
}

// code translates the kind to its storage form; NotSet becomes nil.
func (k MediaKind) code() *uint8 {
	if c, ok := mediaKindCodes[k]; ok {
		return &c
	}
	return nil
}

// mediaKindFromCode decodes a raw storage code. Absent or unrecognized
// codes decode as NotSet, never as an error.
func mediaKindFromCode(raw *uint8) MediaKind {
	if raw == nil {
		return MediaKindNotSet
	}
	for k, c := range mediaKindCodes {
		if c == *raw {
			return k
		}
	}
	return MediaKindNotSet
}

// ContentRating is the advisory rating of the content (the rtng atom).
type ContentRating int

const (
	ContentRatingNotSet ContentRating = iota
	ContentRatingNone
	ContentRatingExplicit
	ContentRatingClean
)

var contentRatingCodes = map[ContentRating]uint8{
	ContentRatingNone:     0,
	ContentRatingExplicit: 1,
	ContentRatingClean:    2,
}

func (r ContentRating) String() string {
	switch r {
	case ContentRatingNotSet:
		return "Not set"
	case ContentRatingNone:
		return "None"
	case ContentRatingExplicit:
		return "Explicit"
	case ContentRatingClean:
		return "Clean"
	default:
		return "Unknown"
	}
}

func (r ContentRating) code() *uint8 {
	if c, ok := contentRatingCodes[r]; ok {
		return &c
	}
	return nil
}

func contentRatingFromCode(raw *uint8) ContentRating {
	if raw == nil {
		return ContentRatingNotSet
	}
	for r, c := range contentRatingCodes {
		if c == *raw {
			return r
		}
	}
	return ContentRatingNotSet
}

// AccountKind is the kind of media-store account that purchased the
// file (the akID atom).
type AccountKind int

const (
	AccountKindNotSet AccountKind = iota
	AccountKindITunes
	AccountKindAOL
)

var accountKindCodes = map[AccountKind]uint8{
	AccountKindITunes: 0,
	AccountKindAOL:    1,
}

func (k AccountKind) String() string {
	switch k {
	case AccountKindNotSet:
		return "Not set"
	case AccountKindITunes:
		return "iTunes"
	case AccountKindAOL:
		return "AOL"
	default:
		return "Unknown"
	}
}

func (k AccountKind) code() *uint8 {
	if c, ok := accountKindCodes[k]; ok {
		return &c
	}
	return nil
}

func accountKindFromCode(raw *uint8) AccountKind {
	if raw == nil {
		return AccountKindNotSet
	}
	for k, c := range accountKindCodes {
		if c == *raw {
			return k
		}
	}
	return AccountKindNotSet
}

// Country is the media-store storefront the file was purchased from
// (the sfID atom). Values are storefront identifiers; CountryNotSet is
// the absent sentinel and doubles as the default.
type Country uint32

const (
	CountryNotSet    Country = 0
	CountryUSA       Country = 143441
	CountryFrance    Country = 143442
	CountryGermany   Country = 143443
	CountryUK        Country = 143444
	CountryCanada    Country = 143455
	CountryAustralia Country = 143460
	CountryJapan     Country = 143462
)

func (c Country) String() string {
	switch c {
	case CountryNotSet:
		return "Not set"
	case CountryUSA:
		return "United States"
	case CountryFrance:
		return "France"
	case CountryGermany:
		return "Germany"
	case CountryUK:
		return "United Kingdom"
	case CountryCanada:
		return "Canada"
	case CountryAustralia:
		return "Australia"
	case CountryJapan:
		return "Japan"
	default:
		return "Unknown"
	}
}

func (c Country) code() *uint32 {
	if c == CountryNotSet {
		return nil
	}
	v := uint32(c)
	return &v
}

func countryFromCode(raw *uint32) Country {
	if raw == nil {
		return CountryNotSet
	}
	return Country(*raw)
}
