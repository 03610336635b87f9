package mp4meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaKindCodec(t *testing.T) {
	t.Run("round-trips every kind", func(t *testing.T) {
		kinds := []MediaKind{
			MediaKindHomeVideo, MediaKindMusic, MediaKindAudiobook,
			MediaKindMusicVideo, MediaKindMovie, MediaKindTVShow,
			MediaKindBooklet, MediaKindRingtone,
		}
		for _, k := range kinds {
			assert.Equal(t, k, mediaKindFromCode(k.code()), "kind %s", k)
		}
	})

	t.Run("not set encodes to absent, not zero", func(t *testing.T) {
		// 0 is a valid code (home video), so NotSet must become nil.
		assert.Nil(t, MediaKindNotSet.code())

		code := MediaKindHomeVideo.code()
		require.NotNil(t, code)
		assert.Equal(t, uint8(0), *code)
	})

	t.Run("absent and unknown codes decode to not set", func(t *testing.T) {
		assert.Equal(t, MediaKindNotSet, mediaKindFromCode(nil))

		unknown := uint8(200)
		assert.Equal(t, MediaKindNotSet, mediaKindFromCode(&unknown))
	})
}

func TestContentRatingCodec(t *testing.T) {
	ratings := []ContentRating{ContentRatingNone, ContentRatingExplicit, ContentRatingClean}
	for _, r := range ratings {
		assert.Equal(t, r, contentRatingFromCode(r.code()), "rating %s", r)
	}

	assert.Nil(t, ContentRatingNotSet.code())
	assert.Equal(t, ContentRatingNotSet, contentRatingFromCode(nil))
}

func TestAccountKindCodec(t *testing.T) {
	kinds := []AccountKind{AccountKindITunes, AccountKindAOL}
	for _, k := range kinds {
		assert.Equal(t, k, accountKindFromCode(k.code()), "kind %s", k)
	}

	// iTunes stores as 0, so the sentinel must be the nil pointer.
	assert.Nil(t, AccountKindNotSet.code())
	assert.Equal(t, AccountKindNotSet, accountKindFromCode(nil))
}

func TestCountryCodec(t *testing.T) {
	code := CountryUK.code()
	require.NotNil(t, code)
	assert.Equal(t, uint32(143444), *code)
	assert.Equal(t, CountryUK, countryFromCode(code))

	assert.Nil(t, CountryNotSet.code())
	assert.Equal(t, CountryNotSet, countryFromCode(nil))

	// Unknown storefronts survive a round trip even without a named
	// constant.
	raw := uint32(143465)
	assert.Equal(t, Country(143465), countryFromCode(&raw))
}
