package mp4meta

import (
	"context"
	"fmt"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/mp4meta/internal/optional"
)

// Load reads the full metadata of the container file at path.
//
// The returned TagSet carries every tag field with proper optional
// semantics, the chapter sequence, and the first artwork slot. A load
// failure aborts the whole operation; no partial TagSet is returned.
//
// Recoverable issues (such as a malformed free-form item payload) do
// not fail the load; they are collected in TagSet.Warnings.
//
// Example:
//
//	tags, err := mp4meta.Load("movie.m4v")
//	if err != nil {
//		return err
//	}
//	if tags.Name != nil {
//		fmt.Println(*tags.Name)
//	}
func Load(path string, opts ...Option) (*TagSet, error) {
	options := defaultLoadOptions()
	for _, opt := range opts {
		opt(options)
	}

	driver := options.driver
	if driver == nil {
		driver = defaultDriver
	}
	if driver == nil {
		return nil, &NoDriverError{Path: path}
	}

	st, err := driver.Open(path)
	if err != nil {
		return nil, &StoreError{Op: "open", Path: path, Err: err}
	}
	defer st.Close() //nolint:errcheck // Read-only handle, best effort close

	snap, err := st.FetchSnapshot()
	if err != nil {
		return nil, &StoreError{Op: "fetch tags", Path: path, Err: err}
	}

	t := newTagSet(snap)
	t.path = path
	t.driver = driver

	if !options.skipArtwork && len(snap.Artwork) > 0 {
		slot := snap.Artwork[0]
		t.artwork = &Artwork{
			Data:   slices.Clone(slot.Data),
			Format: artworkFormatFromCode(slot.TypeCode, slot.Data),
		}
	}

	if !options.skipChapters {
		raw, err := st.Chapters(ChapterKindQuickTime)
		if err != nil {
			return nil, &StoreError{Op: "read chapters", Path: path, Err: err}
		}
		t.Chapters = decodeChapters(raw)
	}

	warn := func(stage string) func(string) {
		return func(msg string) {
			t.Warnings = append(t.Warnings, Warning{Stage: stage, Message: msg})
		}
	}

	if t.Rating, err = readAtom(st, ratingKind, warn("items")); err != nil {
		return nil, &StoreError{Op: "read rating item", Path: path, Err: err}
	}
	if t.Movie, err = readAtom(st, movieKind, warn("items")); err != nil {
		return nil, &StoreError{Op: "read movie item", Path: path, Err: err}
	}

	return t, nil
}

// LoadMany loads multiple files concurrently.
//
// Files are loaded in parallel using up to runtime.NumCPU() goroutines.
// Results are returned in the same order as the input paths. If any
// load fails, the whole call fails.
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//
//	all, err := mp4meta.LoadMany(ctx, paths...)
func LoadMany(ctx context.Context, paths ...string) ([]*TagSet, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*TagSet, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			t, err := Load(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = t
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// newTagSet materializes the native snapshot into the model, cloning
// every value so the TagSet never aliases store memory.
func newTagSet(snap *Snapshot) *TagSet {
	t := &TagSet{
		Name:            optional.Clone(snap.Name),
		Artist:          optional.Clone(snap.Artist),
		AlbumArtist:     optional.Clone(snap.AlbumArtist),
		Album:           optional.Clone(snap.Album),
		Grouping:        optional.Clone(snap.Grouping),
		Composer:        optional.Clone(snap.Composer),
		Comments:        optional.Clone(snap.Comments),
		Genre:           optional.Clone(snap.Genre),
		ReleaseDate:     optional.Clone(snap.ReleaseDate),
		TVShow:          optional.Clone(snap.TVShow),
		TVNetwork:       optional.Clone(snap.TVNetwork),
		TVEpisodeID:     optional.Clone(snap.TVEpisodeID),
		Description:     optional.Clone(snap.Description),
		LongDescription: optional.Clone(snap.LongDescription),
		Lyrics:          optional.Clone(snap.Lyrics),
		SortName:        optional.Clone(snap.SortName),
		SortArtist:      optional.Clone(snap.SortArtist),
		SortAlbumArtist: optional.Clone(snap.SortAlbumArtist),
		SortAlbum:       optional.Clone(snap.SortAlbum),
		SortComposer:    optional.Clone(snap.SortComposer),
		SortTVShow:      optional.Clone(snap.SortTVShow),
		Copyright:       optional.Clone(snap.Copyright),
		EncodingTool:    optional.Clone(snap.EncodingTool),
		EncodedBy:       optional.Clone(snap.EncodedBy),
		PurchaseDate:    optional.Clone(snap.PurchaseDate),
		Keywords:        optional.Clone(snap.Keywords),
		Category:        optional.Clone(snap.Category),
		ITunesAccount:   optional.Clone(snap.ITunesAccount),
		XID:             optional.Clone(snap.XID),

		Tempo:     optional.Clone(snap.Tempo),
		GenreType: optional.Clone(snap.GenreType),
		TVSeason:  optional.Clone(snap.TVSeason),
		TVEpisode: optional.Clone(snap.TVEpisode),
		ContentID: optional.Clone(snap.ContentID),
		ArtistID:  optional.Clone(snap.ArtistID),
		GenreID:   optional.Clone(snap.GenreID),

		PlaylistID: optional.Clone(snap.PlaylistID),

		Compilation: optional.Clone(snap.Compilation),
		Podcast:     optional.Clone(snap.Podcast),
		HDVideo:     optional.Clone(snap.HDVideo),
		Gapless:     optional.Clone(snap.Gapless),

		MediaKind:     mediaKindFromCode(snap.MediaKind),
		ContentRating: contentRatingFromCode(snap.ContentRating),
		AccountKind:   accountKindFromCode(snap.AccountKind),
		Country:       countryFromCode(snap.Country),
	}

	if snap.Track != nil {
		t.TrackNumber = optional.Of(snap.Track.Index)
		t.TrackTotal = optional.Of(snap.Track.Total)
	}
	if snap.Disc != nil {
		t.DiscNumber = optional.Of(snap.Disc.Index)
		t.DiscTotal = optional.Of(snap.Disc.Total)
	}

	return t
}
