package mp4meta

import (
	"github.com/simonhull/mp4meta/internal/optional"
)

// The diff-and-apply pass. Every scalar field of the TagSet is
// compared against the freshly fetched snapshot; a setter is issued
// if and only if the two differ. Unconditional writes are forbidden:
// they churn the store and disturb native metadata the model never
// touched.
//
// There are no retries and no rollback. When a setter fails, the
// fields applied before it remain applied; the returned StoreError
// names the field so callers can tell how far the pass got.

// applyScalars diffs and applies every scalar and pair field.
func (t *TagSet) applyScalars(st Store, snap *Snapshot) error {
	if err := t.applyStrings(st, snap); err != nil {
		return err
	}
	if err := t.applyNumbers(st, snap); err != nil {
		return err
	}
	if err := t.applyFlags(st, snap); err != nil {
		return err
	}
	if err := t.applyEnums(st, snap); err != nil {
		return err
	}

	if err := t.applyPair(st, FieldTrack, snap.Track, t.TrackNumber, t.TrackTotal); err != nil {
		return err
	}
	return t.applyPair(st, FieldDisc, snap.Disc, t.DiscNumber, t.DiscTotal)
}

func (t *TagSet) applyStrings(st Store, snap *Snapshot) error {
	diffs := []struct {
		field     Field
		cur, want *string
	}{
		{FieldName, snap.Name, t.Name},
		{FieldArtist, snap.Artist, t.Artist},
		{FieldAlbumArtist, snap.AlbumArtist, t.AlbumArtist},
		{FieldAlbum, snap.Album, t.Album},
		{FieldGrouping, snap.Grouping, t.Grouping},
		{FieldComposer, snap.Composer, t.Composer},
		{FieldComments, snap.Comments, t.Comments},
		{FieldGenre, snap.Genre, t.Genre},
		{FieldReleaseDate, snap.ReleaseDate, t.ReleaseDate},
		{FieldTVShow, snap.TVShow, t.TVShow},
		{FieldTVNetwork, snap.TVNetwork, t.TVNetwork},
		{FieldTVEpisodeID, snap.TVEpisodeID, t.TVEpisodeID},
		{FieldDescription, snap.Description, t.Description},
		{FieldLongDescription, snap.LongDescription, t.LongDescription},
		{FieldLyrics, snap.Lyrics, t.Lyrics},
		{FieldSortName, snap.SortName, t.SortName},
		{FieldSortArtist, snap.SortArtist, t.SortArtist},
		{FieldSortAlbumArtist, snap.SortAlbumArtist, t.SortAlbumArtist},
		{FieldSortAlbum, snap.SortAlbum, t.SortAlbum},
		{FieldSortComposer, snap.SortComposer, t.SortComposer},
		{FieldSortTVShow, snap.SortTVShow, t.SortTVShow},
		{FieldCopyright, snap.Copyright, t.Copyright},
		{FieldEncodingTool, snap.EncodingTool, t.EncodingTool},
		{FieldEncodedBy, snap.EncodedBy, t.EncodedBy},
		{FieldPurchaseDate, snap.PurchaseDate, t.PurchaseDate},
		{FieldKeywords, snap.Keywords, t.Keywords},
		{FieldCategory, snap.Category, t.Category},
		{FieldITunesAccount, snap.ITunesAccount, t.ITunesAccount},
		{FieldXID, snap.XID, t.XID},
	}

	for _, d := range diffs {
		if optional.Equal(d.cur, d.want) {
			continue
		}
		if err := st.SetString(d.field, optional.Clone(d.want)); err != nil {
			return t.storeErr("set "+d.field.String(), err)
		}
	}
	return nil
}

func (t *TagSet) applyNumbers(st Store, snap *Snapshot) error {
	diffs16 := []struct {
		field     Field
		cur, want *uint16
	}{
		{FieldTempo, snap.Tempo, t.Tempo},
		{FieldGenreType, snap.GenreType, t.GenreType},
	}
	for _, d := range diffs16 {
		if optional.Equal(d.cur, d.want) {
			continue
		}
		if err := st.SetUint16(d.field, optional.Clone(d.want)); err != nil {
			return t.storeErr("set "+d.field.String(), err)
		}
	}

	diffs32 := []struct {
		field     Field
		cur, want *uint32
	}{
		{FieldTVSeason, snap.TVSeason, t.TVSeason},
		{FieldTVEpisode, snap.TVEpisode, t.TVEpisode},
		{FieldContentID, snap.ContentID, t.ContentID},
		{FieldArtistID, snap.ArtistID, t.ArtistID},
		{FieldGenreID, snap.GenreID, t.GenreID},
	}
	for _, d := range diffs32 {
		if optional.Equal(d.cur, d.want) {
			continue
		}
		if err := st.SetUint32(d.field, optional.Clone(d.want)); err != nil {
			return t.storeErr("set "+d.field.String(), err)
		}
	}

	if !optional.Equal(snap.PlaylistID, t.PlaylistID) {
		if err := st.SetUint64(FieldPlaylistID, optional.Clone(t.PlaylistID)); err != nil {
			return t.storeErr("set "+FieldPlaylistID.String(), err)
		}
	}
	return nil
}

func (t *TagSet) applyFlags(st Store, snap *Snapshot) error {
	diffs := []struct {
		field     Field
		cur, want *bool
	}{
		{FieldCompilation, snap.Compilation, t.Compilation},
		{FieldPodcast, snap.Podcast, t.Podcast},
		{FieldHDVideo, snap.HDVideo, t.HDVideo},
		{FieldGapless, snap.Gapless, t.Gapless},
	}

	for _, d := range diffs {
		if optional.Equal(d.cur, d.want) {
			continue
		}
		if err := st.SetBool(d.field, optional.Clone(d.want)); err != nil {
			return t.storeErr("set "+d.field.String(), err)
		}
	}
	return nil
}

// applyEnums compares decoded enum values, not raw codes, and
// translates back to the storage code only at write time. NotSet
// encodes to nil, never to a literal code.
func (t *TagSet) applyEnums(st Store, snap *Snapshot) error {
	if mediaKindFromCode(snap.MediaKind) != t.MediaKind {
		if err := st.SetUint8(FieldMediaKind, t.MediaKind.code()); err != nil {
			return t.storeErr("set "+FieldMediaKind.String(), err)
		}
	}
	if contentRatingFromCode(snap.ContentRating) != t.ContentRating {
		if err := st.SetUint8(FieldContentRating, t.ContentRating.code()); err != nil {
			return t.storeErr("set "+FieldContentRating.String(), err)
		}
	}
	if accountKindFromCode(snap.AccountKind) != t.AccountKind {
		if err := st.SetUint8(FieldAccountKind, t.AccountKind.code()); err != nil {
			return t.storeErr("set "+FieldAccountKind.String(), err)
		}
	}
	if countryFromCode(snap.Country) != t.Country {
		if err := st.SetUint32(FieldCountry, t.Country.code()); err != nil {
			return t.storeErr("set "+FieldCountry.String(), err)
		}
	}
	return nil
}

// applyPair reconciles one index/total pair. The pair is written as a
// unit: a half-set pair materializes as fully absent, and dropping to
// absent clears the store with a single clear operation.
func (t *TagSet) applyPair(st Store, field Field, cur *Position, index, total *uint16) error {
	var want *Position
	if index != nil && total != nil {
		want = &Position{Index: *index, Total: *total}
	}

	if optional.Equal(cur, want) {
		return nil
	}
	if err := st.SetPosition(field, optional.Clone(want)); err != nil {
		return t.storeErr("set "+field.String(), err)
	}
	return nil
}

func (t *TagSet) storeErr(op string, err error) error {
	return &StoreError{Op: op, Path: t.path, Err: err}
}
