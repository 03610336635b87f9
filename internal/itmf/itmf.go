// Package itmf encodes and decodes free-form metadata item payloads.
//
// Free-form items live outside the fixed tag slots and are addressed
// by a (meaning, name) pair. Each logical kind supplies a byte codec
// for its payload; the engine treats the payloads as opaque otherwise.
package itmf

import (
	"fmt"
	"strconv"
	"strings"

	"howett.net/plist"
)

// Basic-type codes for item payloads.
const (
	// TypeUTF8 marks a payload as UTF-8 text.
	TypeUTF8 uint32 = 1
)

// Item kind identities. Each kind is addressed by a fixed
// (meaning, name) pair.
const (
	MeaningITunes = "com.apple.iTunes"

	NameRating = "iTunEXTC"
	NameMovie  = "iTunMOVI"
)

// RatingInfo is the structured content-rating item. Its payload is a
// pipe-separated text record: "standard|rating|score|annotation",
// e.g. "mpaa|PG-13|300|".
type RatingInfo struct {
	// Standard is the rating body, e.g. "mpaa", "us-tv".
	Standard string
	// Rating is the label within the standard, e.g. "PG-13".
	Rating string
	// Score is the numeric sort score of the rating.
	Score int
	// Annotation carries free-text qualifiers.
	Annotation string
}

// Clone returns an independent copy, preserving absence.
func (r *RatingInfo) Clone() *RatingInfo {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}

// Equal reports structural equality, treating two absent values as
// equal.
func (r *RatingInfo) Equal(other *RatingInfo) bool {
	if r == nil || other == nil {
		return r == other
	}
	return *r == *other
}

// Encode serializes the rating to its payload form.
func (r *RatingInfo) Encode() ([]byte, error) {
	return fmt.Appendf(nil, "%s|%s|%d|%s", r.Standard, r.Rating, r.Score, r.Annotation), nil
}

// DecodeRating parses a rating payload. Malformed payloads return an
// error; the caller treats that as "value absent".
func DecodeRating(data []byte) (*RatingInfo, error) {
	parts := strings.SplitN(string(data), "|", 4)
	if len(parts) < 2 {
		return nil, fmt.Errorf("rating payload %q: want at least standard|rating", data)
	}

	r := &RatingInfo{
		Standard: parts[0],
		Rating:   parts[1],
	}
	if len(parts) > 2 {
		// Score is optional and tolerated when malformed.
		if score, err := strconv.Atoi(parts[2]); err == nil {
			r.Score = score
		}
	}
	if len(parts) > 3 {
		r.Annotation = parts[3]
	}
	return r, nil
}

// MovieInfo is the structured movie-credits item. Its payload is an
// XML property list with arrays of {name: ...} dictionaries.
type MovieInfo struct {
	Cast          []string
	Directors     []string
	Producers     []string
	Screenwriters []string
	Studio        string
}

// Clone returns an independent copy, preserving absence.
func (m *MovieInfo) Clone() *MovieInfo {
	if m == nil {
		return nil
	}
	return &MovieInfo{
		Cast:          append([]string(nil), m.Cast...),
		Directors:     append([]string(nil), m.Directors...),
		Producers:     append([]string(nil), m.Producers...),
		Screenwriters: append([]string(nil), m.Screenwriters...),
		Studio:        m.Studio,
	}
}

// Equal reports structural equality, treating two absent values as
// equal. Credit lists compare element-wise in order.
func (m *MovieInfo) Equal(other *MovieInfo) bool {
	if m == nil || other == nil {
		return m == other
	}
	return stringsEqual(m.Cast, other.Cast) &&
		stringsEqual(m.Directors, other.Directors) &&
		stringsEqual(m.Producers, other.Producers) &&
		stringsEqual(m.Screenwriters, other.Screenwriters) &&
		m.Studio == other.Studio
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// moviePlist is the on-disk shape of the iTunMOVI property list.
type moviePlist struct {
	Cast          []plistPerson `plist:"cast,omitempty"`
	Directors     []plistPerson `plist:"directors,omitempty"`
	Producers     []plistPerson `plist:"producers,omitempty"`
	Screenwriters []plistPerson `plist:"screenwriters,omitempty"`
	Studio        string        `plist:"studio,omitempty"`
}

type plistPerson struct {
	Name string `plist:"name"`
}

// Encode serializes the credits to an XML property list.
func (m *MovieInfo) Encode() ([]byte, error) {
	p := moviePlist{
		Cast:          toPersons(m.Cast),
		Directors:     toPersons(m.Directors),
		Producers:     toPersons(m.Producers),
		Screenwriters: toPersons(m.Screenwriters),
		Studio:        m.Studio,
	}
	return plist.MarshalIndent(p, plist.XMLFormat, "\t")
}

// DecodeMovie parses a movie-credits payload. Malformed payloads
// return an error; the caller treats that as "value absent".
func DecodeMovie(data []byte) (*MovieInfo, error) {
	var p moviePlist
	if _, err := plist.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("movie payload: %w", err)
	}
	return &MovieInfo{
		Cast:          fromPersons(p.Cast),
		Directors:     fromPersons(p.Directors),
		Producers:     fromPersons(p.Producers),
		Screenwriters: fromPersons(p.Screenwriters),
		Studio:        p.Studio,
	}, nil
}

func toPersons(names []string) []plistPerson {
	if len(names) == 0 {
		return nil
	}
	persons := make([]plistPerson, len(names))
	for i, n := range names {
		persons[i] = plistPerson{Name: n}
	}
	return persons
}

func fromPersons(persons []plistPerson) []string {
	if len(persons) == 0 {
		return nil
	}
	names := make([]string, len(persons))
	for i, p := range persons {
		names[i] = p.Name
	}
	return names
}
