package mp4meta_test

import (
	"context"
	"errors"
	"io/fs"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/simonhull/mp4meta"
	"github.com/simonhull/mp4meta/memstore"
)

func u8(v uint8) *uint8 { return &v }

var jpegBytes = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}

// newFixture builds a driver holding one fully populated movie file.
func newFixture(t *testing.T) (*memstore.Driver, string) {
	t.Helper()

	moviePayload, err := (&mp4meta.MovieInfo{
		Directors: []string{"The Director"},
		Studio:    "Big Pictures",
	}).Encode()
	require.NoError(t, err)

	driver := memstore.New()
	driver.Put("movie.m4v", &memstore.File{
		Tags: mp4meta.Snapshot{
			Name:        mp4meta.String("The Film"),
			Artist:      mp4meta.String("Director Cut"),
			Album:       mp4meta.String("Box Set"),
			Genre:       mp4meta.String("Drama"),
			Track:       &mp4meta.Position{Index: 3, Total: 12},
			Disc:        &mp4meta.Position{Index: 1, Total: 2},
			Tempo:       mp4meta.Uint16(98),
			TVSeason:    mp4meta.Uint32(2),
			ContentID:   mp4meta.Uint32(77001),
			PlaylistID:  mp4meta.Uint64(900001),
			Compilation: mp4meta.Bool(false),
			HDVideo:     mp4meta.Bool(true),

			MediaKind:     u8(9), // movie
			ContentRating: u8(2), // clean
			AccountKind:   u8(0), // iTunes
			Country:       mp4meta.Uint32(143441),

			Artwork: []mp4meta.RawArtwork{{Data: jpegBytes, TypeCode: 13}},
		},
		Chapters: map[mp4meta.ChapterKind][]mp4meta.RawChapter{
			mp4meta.ChapterKindQuickTime: {
				{Title: []byte("Intro"), DurationMS: 60_000},
				{Title: []byte("Main"), DurationMS: 5_000_000},
			},
		},
		Tracks: []memstore.Track{
			{ID: 1, Type: "vide", DurationMS: 6_000_000},
			{ID: 2, Type: "soun", DurationMS: 6_000_000},
		},
		Items: []mp4meta.RawItem{
			{Meaning: "com.apple.iTunes", Name: "iTunEXTC", DataType: 1, Data: []byte("mpaa|PG-13|300|")},
			{Meaning: "com.apple.iTunes", Name: "iTunMOVI", DataType: 1, Data: moviePayload},
		},
	})
	return driver, "movie.m4v"
}

func TestLoadPopulatesModel(t *testing.T) {
	driver, path := newFixture(t)

	tags, err := mp4meta.Load(path, mp4meta.WithDriver(driver))
	require.NoError(t, err)
	assert.Empty(t, tags.Warnings)

	require.NotNil(t, tags.Name)
	assert.Equal(t, "The Film", *tags.Name)

	// Pairs split into their halves.
	require.NotNil(t, tags.TrackNumber)
	require.NotNil(t, tags.TrackTotal)
	assert.Equal(t, uint16(3), *tags.TrackNumber)
	assert.Equal(t, uint16(12), *tags.TrackTotal)

	// Tri-state flags keep explicit false distinct from absent.
	require.NotNil(t, tags.Compilation)
	assert.False(t, *tags.Compilation)
	assert.Nil(t, tags.Podcast)

	// Enumerations decode to variants, raw codes never leak.
	assert.Equal(t, mp4meta.MediaKindMovie, tags.MediaKind)
	assert.Equal(t, mp4meta.ContentRatingClean, tags.ContentRating)
	assert.Equal(t, mp4meta.AccountKindITunes, tags.AccountKind)
	assert.Equal(t, mp4meta.CountryUSA, tags.Country)

	require.NotNil(t, tags.Artwork())
	assert.Equal(t, mp4meta.ArtworkJPEG, tags.Artwork().Format)

	require.Len(t, tags.Chapters, 2)
	assert.Equal(t, "Intro", tags.Chapters[0].Title)
	assert.Equal(t, time.Minute, tags.Chapters[0].Duration)

	require.NotNil(t, tags.Rating)
	assert.Equal(t, "PG-13", tags.Rating.Rating)
	require.NotNil(t, tags.Movie)
	assert.Equal(t, "Big Pictures", tags.Movie.Studio)
}

func TestSaveUnchangedIssuesZeroMutations(t *testing.T) {
	driver, path := newFixture(t)

	tags, err := mp4meta.Load(path, mp4meta.WithDriver(driver))
	require.NoError(t, err)

	require.NoError(t, tags.Save())
	assert.Zero(t, driver.File(path).Mutations,
		"saving a freshly loaded TagSet must not touch the store")
}

func TestRoundTrip(t *testing.T) {
	driver, path := newFixture(t)

	tags, err := mp4meta.Load(path, mp4meta.WithDriver(driver))
	require.NoError(t, err)

	tags.Name = mp4meta.String("The Film: Redux")
	tags.Comments = mp4meta.String("") // present empty, not absent
	tags.Tempo = nil
	tags.Podcast = mp4meta.Bool(true)
	tags.MediaKind = mp4meta.MediaKindTVShow
	tags.Country = mp4meta.CountryJapan
	tags.Rating = &mp4meta.RatingInfo{Standard: "mpaa", Rating: "R", Score: 400}
	require.NoError(t, tags.Save())

	reloaded, err := mp4meta.Load(path, mp4meta.WithDriver(driver))
	require.NoError(t, err)
	assert.True(t, tags.Equal(reloaded), "every lossless field must round-trip")

	require.NotNil(t, reloaded.Comments)
	assert.Empty(t, *reloaded.Comments)
	assert.Nil(t, reloaded.Tempo)
}

func TestClearingStringField(t *testing.T) {
	driver, path := newFixture(t)

	tags, err := mp4meta.Load(path, mp4meta.WithDriver(driver))
	require.NoError(t, err)

	tags.Genre = nil
	require.NoError(t, tags.Save())

	assert.Nil(t, driver.File(path).Tags.Genre)
	assert.Equal(t, 1, driver.File(path).Mutations)
}

func TestHalfSetPairClearsWhole(t *testing.T) {
	driver, path := newFixture(t)

	tags, err := mp4meta.Load(path, mp4meta.WithDriver(driver))
	require.NoError(t, err)

	// Keep the index, drop the total: the pair must materialize as
	// fully absent, never half-set.
	tags.TrackTotal = nil
	require.NoError(t, tags.Save())

	// One clear operation, not two scalar writes.
	assert.Equal(t, 1, driver.File(path).Mutations)

	reloaded, err := mp4meta.Load(path, mp4meta.WithDriver(driver))
	require.NoError(t, err)
	assert.Nil(t, reloaded.TrackNumber)
	assert.Nil(t, reloaded.TrackTotal)
}

func TestPairRewrittenAsUnit(t *testing.T) {
	driver, path := newFixture(t)

	tags, err := mp4meta.Load(path, mp4meta.WithDriver(driver))
	require.NoError(t, err)

	tags.DiscNumber = mp4meta.Uint16(2)
	require.NoError(t, tags.Save())

	got := driver.File(path).Tags.Disc
	require.NotNil(t, got)
	assert.Equal(t, mp4meta.Position{Index: 2, Total: 2}, *got)
}

func TestEnumNotSetClears(t *testing.T) {
	driver, path := newFixture(t)

	tags, err := mp4meta.Load(path, mp4meta.WithDriver(driver))
	require.NoError(t, err)

	tags.MediaKind = mp4meta.MediaKindNotSet
	require.NoError(t, tags.Save())

	assert.Nil(t, driver.File(path).Tags.MediaKind,
		"not-set must clear the field, not write a code")
}

func TestChapterClamping(t *testing.T) {
	driver := memstore.New()
	driver.Put("clip.m4v", &memstore.File{
		Tracks: []memstore.Track{{ID: 1, Type: "vide", DurationMS: 60_000}},
	})

	tags, err := mp4meta.Load("clip.m4v", mp4meta.WithDriver(driver))
	require.NoError(t, err)

	tags.Chapters = []mp4meta.Chapter{
		{Title: "One", Duration: 30 * time.Second},
		{Title: "Two", Duration: 30 * time.Second},
		{Title: "Three", Duration: 30 * time.Second},
	}
	require.NoError(t, tags.Save())

	reloaded, err := mp4meta.Load("clip.m4v", mp4meta.WithDriver(driver))
	require.NoError(t, err)

	var total time.Duration
	for _, ch := range reloaded.Chapters {
		total += ch.Duration
	}
	assert.LessOrEqual(t, total, 60*time.Second)
	assert.Len(t, reloaded.Chapters, 2, "chapter past the budget is dropped")
}

func TestChapterPartialClamp(t *testing.T) {
	driver := memstore.New()
	driver.Put("clip.m4v", &memstore.File{
		Tracks: []memstore.Track{{ID: 1, Type: "vide", DurationMS: 45_000}},
	})

	tags, err := mp4meta.Load("clip.m4v", mp4meta.WithDriver(driver))
	require.NoError(t, err)

	tags.Chapters = []mp4meta.Chapter{
		{Title: "One", Duration: 30 * time.Second},
		{Title: "Two", Duration: 30 * time.Second},
	}
	require.NoError(t, tags.Save())

	reloaded, err := mp4meta.Load("clip.m4v", mp4meta.WithDriver(driver))
	require.NoError(t, err)
	require.Len(t, reloaded.Chapters, 2)
	assert.Equal(t, 30*time.Second, reloaded.Chapters[0].Duration)
	assert.Equal(t, 15*time.Second, reloaded.Chapters[1].Duration,
		"second chapter truncated to the remaining budget")
}

func TestChapterEditScenario(t *testing.T) {
	driver := memstore.New()
	driver.Put("audiobook.m4b", &memstore.File{
		Chapters: map[mp4meta.ChapterKind][]mp4meta.RawChapter{
			mp4meta.ChapterKindQuickTime: {
				{Title: []byte("Chapter 1"), DurationMS: 15_000},
				{Title: []byte("Chapter 2"), DurationMS: 15_000},
				{Title: []byte("Chapter 3"), DurationMS: 15_000},
				{Title: []byte("Chapter 4"), DurationMS: 15_000},
				{Title: []byte("Chapter 5"), DurationMS: 2_996},
			},
		},
		Tracks: []memstore.Track{{ID: 1, Type: "soun", DurationMS: 62_996}},
	})

	tags, err := mp4meta.Load("audiobook.m4b", mp4meta.WithDriver(driver))
	require.NoError(t, err)
	require.Len(t, tags.Chapters, 5)

	// Insert a new chapter at position 1 and shorten the chapter that
	// was second (now third) from 15s to 7s.
	inserted := mp4meta.Chapter{Title: "Inserted", Duration: 8 * time.Second}
	tags.Chapters = slices.Insert(tags.Chapters, 1, inserted)
	tags.Chapters[2].Duration = 7 * time.Second

	require.NoError(t, tags.Save())

	reloaded, err := mp4meta.Load("audiobook.m4b", mp4meta.WithDriver(driver))
	require.NoError(t, err)

	wantDurations := []time.Duration{
		15 * time.Second,
		8 * time.Second,
		7 * time.Second,
		15 * time.Second,
		15 * time.Second,
		2_996 * time.Millisecond,
	}
	require.Len(t, reloaded.Chapters, len(wantDurations))
	for i, want := range wantDurations {
		assert.Equal(t, want, reloaded.Chapters[i].Duration, "chapter %d", i)
	}
	assert.Equal(t, "Inserted", reloaded.Chapters[1].Title)
	assert.Equal(t, "Chapter 2", reloaded.Chapters[2].Title)
}

func TestChapterRewriteClearsOtherKinds(t *testing.T) {
	driver := memstore.New()
	driver.Put("mixed.m4v", &memstore.File{
		Chapters: map[mp4meta.ChapterKind][]mp4meta.RawChapter{
			mp4meta.ChapterKindQuickTime: {{Title: []byte("QT"), DurationMS: 10_000}},
			mp4meta.ChapterKindNero:      {{Title: []byte("Nero"), DurationMS: 10_000}},
		},
		Tracks: []memstore.Track{{ID: 5, Type: "vide", DurationMS: 100_000}},
	})

	tags, err := mp4meta.Load("mixed.m4v", mp4meta.WithDriver(driver))
	require.NoError(t, err)

	tags.Chapters[0].Title = "Renamed"
	require.NoError(t, tags.Save())

	file := driver.File("mixed.m4v")
	assert.Empty(t, file.Chapters[mp4meta.ChapterKindNero],
		"a rewrite removes chapters of every kind first")
	assert.Equal(t, uint32(6), file.NextTrackID, "next-id bookkeeping is max track id + 1")
}

func TestArtworkAbsentIsNoop(t *testing.T) {
	driver := memstore.New()
	driver.Put("bare.m4v", &memstore.File{
		Tracks: []memstore.Track{{ID: 1, Type: "vide", DurationMS: 1000}},
	})

	tags, err := mp4meta.Load("bare.m4v", mp4meta.WithDriver(driver))
	require.NoError(t, err)

	// No prior artwork: assigning absent must not attempt a removal.
	tags.SetArtwork(nil)
	require.NoError(t, tags.Save())
	assert.Zero(t, driver.File("bare.m4v").Mutations)
}

func TestArtworkLifecycle(t *testing.T) {
	t.Run("untouched artwork is never rewritten", func(t *testing.T) {
		driver, path := newFixture(t)

		tags, err := mp4meta.Load(path, mp4meta.WithDriver(driver))
		require.NoError(t, err)

		tags.Name = mp4meta.String("Renamed")
		require.NoError(t, tags.Save())
		assert.Equal(t, 1, driver.File(path).Mutations, "only the name write")
	})

	t.Run("replace existing slot", func(t *testing.T) {
		driver, path := newFixture(t)

		tags, err := mp4meta.Load(path, mp4meta.WithDriver(driver))
		require.NoError(t, err)

		tags.SetArtwork(mp4meta.NewArtwork([]byte("GIF89a....")))
		require.NoError(t, tags.Save())

		slots := driver.File(path).Tags.Artwork
		require.Len(t, slots, 1)
		assert.Equal(t, []byte("GIF89a...."), slots[0].Data)
	})

	t.Run("add when no prior artwork", func(t *testing.T) {
		driver := memstore.New()
		driver.Put("bare.m4v", &memstore.File{
			Tracks: []memstore.Track{{ID: 1, Type: "vide", DurationMS: 1000}},
		})

		tags, err := mp4meta.Load("bare.m4v", mp4meta.WithDriver(driver))
		require.NoError(t, err)

		tags.SetArtwork(mp4meta.NewArtwork(jpegBytes))
		require.NoError(t, tags.Save())
		assert.Len(t, driver.File("bare.m4v").Tags.Artwork, 1)
	})

	t.Run("remove existing slot", func(t *testing.T) {
		driver, path := newFixture(t)

		tags, err := mp4meta.Load(path, mp4meta.WithDriver(driver))
		require.NoError(t, err)

		tags.SetArtwork(nil)
		require.NoError(t, tags.Save())
		assert.Empty(t, driver.File(path).Tags.Artwork)
	})

	t.Run("second save does not rewrite", func(t *testing.T) {
		driver, path := newFixture(t)

		tags, err := mp4meta.Load(path, mp4meta.WithDriver(driver))
		require.NoError(t, err)

		tags.SetArtwork(mp4meta.NewArtwork(jpegBytes))
		require.NoError(t, tags.Save())
		before := driver.File(path).Mutations

		require.NoError(t, tags.Save())
		assert.Equal(t, before, driver.File(path).Mutations,
			"the edited flag resets after a successful save")
	})
}

func TestCustomItems(t *testing.T) {
	t.Run("changed rating rewrites exactly one item", func(t *testing.T) {
		driver, path := newFixture(t)

		tags, err := mp4meta.Load(path, mp4meta.WithDriver(driver))
		require.NoError(t, err)

		tags.Rating = &mp4meta.RatingInfo{Standard: "mpaa", Rating: "R", Score: 400}
		require.NoError(t, tags.Save())

		var ratings []mp4meta.RawItem
		for _, it := range driver.File(path).Items {
			if it.Name == "iTunEXTC" {
				ratings = append(ratings, it)
			}
		}
		require.Len(t, ratings, 1)
		assert.Equal(t, "mpaa|R|400|", string(ratings[0].Data))
	})

	t.Run("unchanged movie credits are not rewritten", func(t *testing.T) {
		driver, path := newFixture(t)

		tags, err := mp4meta.Load(path, mp4meta.WithDriver(driver))
		require.NoError(t, err)

		tags.Rating = nil // force an item pass, movie stays equal
		require.NoError(t, tags.Save())

		// Rating removal is the only item mutation.
		assert.Equal(t, 1, driver.File(path).Mutations)
	})

	t.Run("clearing removes the item", func(t *testing.T) {
		driver, path := newFixture(t)

		tags, err := mp4meta.Load(path, mp4meta.WithDriver(driver))
		require.NoError(t, err)

		tags.Movie = nil
		require.NoError(t, tags.Save())

		for _, it := range driver.File(path).Items {
			assert.NotEqual(t, "iTunMOVI", it.Name)
		}
	})

	t.Run("malformed payload reads as absent with a warning", func(t *testing.T) {
		driver := memstore.New()
		driver.Put("odd.m4v", &memstore.File{
			Tracks: []memstore.Track{{ID: 1, Type: "vide", DurationMS: 1000}},
			Items: []mp4meta.RawItem{
				{Meaning: "com.apple.iTunes", Name: "iTunEXTC", DataType: 1, Data: []byte("no separators")},
			},
		})

		tags, err := mp4meta.Load("odd.m4v", mp4meta.WithDriver(driver))
		require.NoError(t, err, "corrupt optional metadata must not block the read")
		assert.Nil(t, tags.Rating)
		require.Len(t, tags.Warnings, 1)
		assert.Equal(t, "items", tags.Warnings[0].Stage)
	})
}

func TestSaveWithValidation(t *testing.T) {
	driver, path := newFixture(t)

	tags, err := mp4meta.Load(path, mp4meta.WithDriver(driver))
	require.NoError(t, err)

	tags.Name = mp4meta.String("Validated Title")
	require.NoError(t, tags.Save(mp4meta.WithValidation()))
}

func TestLoadErrors(t *testing.T) {
	t.Run("no driver", func(t *testing.T) {
		_, err := mp4meta.Load("anything.m4v")
		var noDriver *mp4meta.NoDriverError
		require.ErrorAs(t, err, &noDriver)
	})

	t.Run("missing file fails fast", func(t *testing.T) {
		driver := memstore.New()
		_, err := mp4meta.Load("missing.m4v", mp4meta.WithDriver(driver))

		var storeErr *mp4meta.StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "open", storeErr.Op)
		assert.True(t, errors.Is(err, fs.ErrNotExist))
	})
}

func TestLoadMany(t *testing.T) {
	defer goleak.VerifyNone(t)

	driver, path := newFixture(t)
	driver.Put("second.m4v", &memstore.File{
		Tags:   mp4meta.Snapshot{Name: mp4meta.String("Second")},
		Tracks: []memstore.Track{{ID: 1, Type: "vide", DurationMS: 1000}},
	})
	mp4meta.RegisterDriver(driver)
	defer mp4meta.RegisterDriver(nil)

	t.Run("results keep input order", func(t *testing.T) {
		all, err := mp4meta.LoadMany(context.Background(), path, "second.m4v")
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "The Film", *all[0].Name)
		assert.Equal(t, "Second", *all[1].Name)
	})

	t.Run("one failure fails the batch", func(t *testing.T) {
		_, err := mp4meta.LoadMany(context.Background(), path, "missing.m4v")
		require.Error(t, err)
	})

	t.Run("empty input", func(t *testing.T) {
		all, err := mp4meta.LoadMany(context.Background())
		require.NoError(t, err)
		assert.Nil(t, all)
	})
}
