package scan

import "strings"

// InferTaxonomy maps a folder-name path (ordered from just below the
// library root down to the file's parent folder) to an (artist, album)
// pair. The rule is positional: the file's parent folder is the album
// and the folder above it is the artist; anything higher (genre folders
// and the like) is ignored. A single folder plays both roles, so a flat
// folder of songs becomes a one-album "artist".
//
// This is a heuristic over folder layout, not tag data. Libraries that
// do not follow an Artist/Album hierarchy get wrong or duplicated
// artists; that trade-off is deliberate, because the rule is
// deterministic and repeated scans converge on the same rows.
func InferTaxonomy(path []string) (artist, album string, ok bool) {
	names := make([]string, 0, len(path))
	for _, name := range path {
		if strings.TrimSpace(name) != "" {
			names = append(names, name)
		}
	}

	switch n := len(names); n {
	case 0:
		return "", "", false
	case 1:
		return names[0], names[0], true
	default:
		return names[n-2], names[n-1], true
	}
}
