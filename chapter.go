package mp4meta

import (
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// Chapter represents one chapter marker: a title and how long the
// chapter lasts.
//
// The TagSet owns its chapter sequence for the load/modify/save cycle.
// Insert, remove, and reorder entries freely:
//
//	tags.Chapters = slices.Insert(tags.Chapters, 1, mp4meta.Chapter{
//	    Title:    "Intermission",
//	    Duration: 8 * time.Second,
//	})
//
// On save the cumulative duration is clamped to the reference track's
// total duration; chapters past the budget are dropped.
type Chapter struct {
	Title    string
	Duration time.Duration
}

// chapterTitleCap is the capacity of a native chapter title buffer.
// Longer titles are truncated on write.
const chapterTitleCap = 1024

// decodeChapterTitle converts a native title buffer to a UTF-8 string.
//
// The first two bytes are sniffed for a UTF-16 byte-order mark (0xFEFF
// or 0xFFFE); with a BOM the buffer decodes as UTF-16, otherwise as
// UTF-8. The result is cut at the first NUL terminator. Decoding is
// best effort and always produces some string.
func decodeChapterTitle(raw []byte) string {
	var title string

	if len(raw) >= 2 && ((raw[0] == 0xFE && raw[1] == 0xFF) || (raw[0] == 0xFF && raw[1] == 0xFE)) {
		dec := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
		decoded, err := dec.Bytes(raw)
		if err != nil {
			title = string(raw)
		} else {
			title = string(decoded)
		}
	} else {
		title = string(raw)
	}

	if i := strings.IndexByte(title, 0); i >= 0 {
		title = title[:i]
	}
	return title
}

// encodeChapterTitle produces the native UTF-8 title buffer, truncated
// to the fixed buffer capacity without splitting a rune.
func encodeChapterTitle(title string) []byte {
	b := []byte(title)
	if len(b) <= chapterTitleCap {
		return b
	}

	b = b[:chapterTitleCap]
	for len(b) > 0 && !utf8.Valid(b) {
		b = b[:len(b)-1]
	}
	return b
}

// decodeChapters converts the native chapter array to the model form.
func decodeChapters(raw []RawChapter) []Chapter {
	if len(raw) == 0 {
		return nil
	}

	chapters := make([]Chapter, 0, len(raw))
	for _, rc := range raw {
		chapters = append(chapters, Chapter{
			Title:    decodeChapterTitle(rc.Title),
			Duration: time.Duration(rc.DurationMS) * time.Millisecond,
		})
	}
	return chapters
}

// chaptersMatchRaw reports whether the model sequence equals the
// native array, compared at millisecond resolution after title
// decoding. Used to skip the chapter rewrite when nothing changed.
func chaptersMatchRaw(chapters []Chapter, raw []RawChapter) bool {
	if len(chapters) != len(raw) {
		return false
	}
	for i, ch := range chapters {
		if ch.Title != decodeChapterTitle(raw[i].Title) {
			return false
		}
		if uint32(ch.Duration/time.Millisecond) != raw[i].DurationMS {
			return false
		}
	}
	return true
}
