package scan

import (
	"regexp"
	"strconv"
	"strings"
)

// trackPrefixRe captures a leading track number and whatever follows the
// separator run after it.
var trackPrefixRe = regexp.MustCompile(`^\s*(\d+)\s*[-._]*\s*(.*)$`)

var titleSeparators = strings.NewReplacer("-", " ", "_", " ")

// ExtractMetadata derives a track number and a display title from a raw
// filename like "03 - Song_Name.mp3". The extension is dropped, a
// leading digit run becomes the track number, and separator characters
// in the remainder collapse into single spaces. Pure function: the same
// filename always yields the same pair, which keeps rescans idempotent.
func ExtractMetadata(filename string) (trackNumber *int, title string) {
	base := filename
	if idx := strings.LastIndex(base, "."); idx >= 0 {
		base = base[:idx]
	}

	working := base
	if m := trackPrefixRe.FindStringSubmatch(base); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			trackNumber = &n
			working = m[2]
		}
	}

	title = strings.Join(strings.Fields(titleSeparators.Replace(working)), " ")
	return trackNumber, title
}
