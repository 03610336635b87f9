package mp4meta

import (
	"fmt"

	"github.com/simonhull/mp4meta/internal/itmf"
)

// RatingInfo is the structured content-rating item (iTunEXTC).
// Re-exported from internal/itmf, which owns the payload codec.
type RatingInfo = itmf.RatingInfo

// MovieInfo is the structured movie-credits item (iTunMOVI).
// Re-exported from internal/itmf, which owns the payload codec.
type MovieInfo = itmf.MovieInfo

// atomKind is the capability record of one free-form item kind: its
// (meaning, name) identity, the declared payload type code, and the
// byte codec. Kinds are resolved statically; no throwaway instances
// are needed to learn an identity.
type atomKind[T any] struct {
	meaning  string
	name     string
	dataType uint32
	decode   func([]byte) (*T, error)
	encode   func(*T) ([]byte, error)
	equal    func(*T, *T) bool
}

var ratingKind = atomKind[RatingInfo]{
	meaning:  itmf.MeaningITunes,
	name:     itmf.NameRating,
	dataType: itmf.TypeUTF8,
	decode:   itmf.DecodeRating,
	encode:   (*RatingInfo).Encode,
	equal:    (*RatingInfo).Equal,
}

var movieKind = atomKind[MovieInfo]{
	meaning:  itmf.MeaningITunes,
	name:     itmf.NameMovie,
	dataType: itmf.TypeUTF8,
	decode:   itmf.DecodeMovie,
	encode:   (*MovieInfo).Encode,
	equal:    (*MovieInfo).Equal,
}

// readAtom locates the kind's item in the store and decodes it.
// A missing item or a malformed payload both read as absent; only
// store-boundary failures surface as errors. Malformed payloads are
// reported through warn so the caller can record a Warning.
func readAtom[T any](st Store, kind atomKind[T], warn func(string)) (*T, error) {
	items, err := st.ItemsByMeaning(kind.meaning, kind.name)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	v, err := kind.decode(items[0].Data)
	if err != nil {
		warn(fmt.Sprintf("malformed %s payload: %v", kind.name, err))
		return nil, nil
	}
	return v, nil
}

// applyAtom reconciles the kind's item with the wanted value: when the
// stored value already matches, nothing is written; otherwise every
// matching item is removed and, if want is present, exactly one new
// item is inserted.
func applyAtom[T any](st Store, kind atomKind[T], want *T) error {
	current, err := readAtom(st, kind, func(string) {})
	if err != nil {
		return fmt.Errorf("read %s: %w", kind.name, err)
	}
	if kind.equal(current, want) {
		return nil
	}

	// Remove unconditionally: a malformed payload reads as absent but
	// its item still occupies the slot.
	if err := st.RemoveItems(kind.meaning, kind.name); err != nil {
		return fmt.Errorf("remove %s: %w", kind.name, err)
	}
	if want == nil {
		return nil
	}

	payload, err := kind.encode(want)
	if err != nil {
		return fmt.Errorf("encode %s: %w", kind.name, err)
	}
	if err := st.AddItem(RawItem{
		Meaning:  kind.meaning,
		Name:     kind.name,
		DataType: kind.dataType,
		Data:     payload,
	}); err != nil {
		return fmt.Errorf("add %s: %w", kind.name, err)
	}
	return nil
}
