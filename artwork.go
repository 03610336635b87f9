package mp4meta

import (
	"bytes"
	"fmt"
)

// ArtworkFormat is the detected encoding of an artwork blob.
//
// The engine never decodes image data; it only classifies the blob so
// the store can record the right basic-type code, and passes the bytes
// through opaquely.
type ArtworkFormat int

const (
	ArtworkUnknown ArtworkFormat = iota
	ArtworkBMP
	ArtworkGIF
	ArtworkJPEG
	ArtworkPNG
)

func (f ArtworkFormat) String() string {
	switch f {
	case ArtworkBMP:
		return "BMP"
	case ArtworkGIF:
		return "GIF"
	case ArtworkJPEG:
		return "JPEG"
	case ArtworkPNG:
		return "PNG"
	default:
		return "Unknown"
	}
}

// Native basic-type codes for image payloads.
const (
	typeCodeImplicit uint32 = 0
	typeCodeGIF      uint32 = 12
	typeCodeJPEG     uint32 = 13
	typeCodePNG      uint32 = 14
	typeCodeBMP      uint32 = 27
)

// Artwork is the single modeled artwork image: opaque bytes plus the
// detected encoding.
type Artwork struct {
	Data   []byte
	Format ArtworkFormat
}

// NewArtwork builds an Artwork, classifying the format from the blob's
// magic bytes.
func NewArtwork(data []byte) *Artwork {
	return &Artwork{
		Data:   data,
		Format: DetectArtworkFormat(data),
	}
}

// String returns a human-readable description of the artwork.
//
// Example output: "JPEG artwork (245KB)"
func (a *Artwork) String() string {
	return fmt.Sprintf("%s artwork (%s)", a.Format, formatSize(len(a.Data)))
}

func (a *Artwork) equal(other *Artwork) bool {
	if a == nil || other == nil {
		return a == other
	}
	return a.Format == other.Format && bytes.Equal(a.Data, other.Data)
}

// DetectArtworkFormat classifies an image blob from its magic bytes.
//
// Unrecognized blobs classify as ArtworkUnknown; classification never
// fails.
func DetectArtworkFormat(data []byte) ArtworkFormat {
	switch {
	case len(data) >= 2 && data[0] == 'B' && data[1] == 'M':
		return ArtworkBMP
	case len(data) >= 4 && string(data[:4]) == "GIF8":
		return ArtworkGIF
	case len(data) >= 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF:
		return ArtworkJPEG
	case len(data) >= 8 && bytes.Equal(data[:8], pngSignature):
		return ArtworkPNG
	default:
		return ArtworkUnknown
	}
}

var pngSignature = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

// artworkFormatFromCode decodes the store's basic-type code, falling
// back to magic-byte sniffing when the code is implicit or unknown.
func artworkFormatFromCode(code uint32, data []byte) ArtworkFormat {
	switch code {
	case typeCodeBMP:
		return ArtworkBMP
	case typeCodeGIF:
		return ArtworkGIF
	case typeCodeJPEG:
		return ArtworkJPEG
	case typeCodePNG:
		return ArtworkPNG
	default:
		return DetectArtworkFormat(data)
	}
}

// typeCode translates the format back to the store's basic-type code.
// Unknown formats are stored as implicit, leaving interpretation to
// the reader.
func (f ArtworkFormat) typeCode() uint32 {
	switch f {
	case ArtworkBMP:
		return typeCodeBMP
	case ArtworkGIF:
		return typeCodeGIF
	case ArtworkJPEG:
		return typeCodeJPEG
	case ArtworkPNG:
		return typeCodePNG
	default:
		return typeCodeImplicit
	}
}

// formatSize formats byte size in human-readable form.
func formatSize(bytes int) string {
	const (
		KB = 1024
		MB = 1024 * KB
	)

	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1fMB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%dKB", bytes/KB)
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}
