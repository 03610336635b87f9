// Command tagdump prints the metadata of a media file using an
// independent reader (github.com/dhowden/tag). Useful for
// cross-checking what a tag store driver wrote against what a third
// party reads back.
package main

import (
	"fmt"
	"os"

	"github.com/dhowden/tag"

	"github.com/simonhull/mp4meta"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: tagdump <file.m4v>")
		os.Exit(1)
	}
	if os.Args[1] == "-version" {
		fmt.Println(mp4meta.GetVersionInfo())
		return
	}

	f, err := os.Open(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Format:       %s (%s)\n", m.Format(), m.FileType())
	printIfSet("Title", m.Title())
	printIfSet("Album", m.Album())
	printIfSet("Artist", m.Artist())
	printIfSet("Album artist", m.AlbumArtist())
	printIfSet("Composer", m.Composer())
	printIfSet("Genre", m.Genre())
	if m.Year() != 0 {
		fmt.Printf("Year:         %d\n", m.Year())
	}
	if n, total := m.Track(); n != 0 || total != 0 {
		fmt.Printf("Track:        %d/%d\n", n, total)
	}
	if n, total := m.Disc(); n != 0 || total != 0 {
		fmt.Printf("Disc:         %d/%d\n", n, total)
	}
	if pic := m.Picture(); pic != nil {
		fmt.Printf("Artwork:      %s, %d bytes\n", pic.MIMEType, len(pic.Data))
	}

	fmt.Printf("\nRaw tags (%d):\n", len(m.Raw()))
	for key, value := range m.Raw() {
		switch v := value.(type) {
		case string:
			fmt.Printf("  %-12s %q\n", key, v)
		case *tag.Picture:
			fmt.Printf("  %-12s <%s, %d bytes>\n", key, v.MIMEType, len(v.Data))
		default:
			fmt.Printf("  %-12s %v\n", key, v)
		}
	}
}

func printIfSet(label, value string) {
	if value != "" {
		fmt.Printf("%-13s %s\n", label+":", value)
	}
}
