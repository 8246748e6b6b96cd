package drive

import (
	"fmt"
	"strings"
)

// MimeFolder is the MIME type Drive assigns to folders.
const MimeFolder = "application/vnd.google-apps.folder"

// Audio and image types the scanner recognizes. Anything else in a
// library folder is ignored.
var (
	AudioMimeTypes = []string{"audio/mpeg", "audio/flac", "audio/wav"}
	ImageMimeTypes = []string{"image/jpeg", "image/png"}
)

// escapeName makes an arbitrary display name safe inside a single-quoted
// Drive query string literal.
func escapeName(name string) string {
	name = strings.ReplaceAll(name, `\`, `\\`)
	return strings.ReplaceAll(name, `'`, `\'`)
}

func mimeDisjunction(mimeTypes []string) string {
	parts := make([]string, len(mimeTypes))
	for i, m := range mimeTypes {
		parts[i] = fmt.Sprintf("mimeType='%s'", m)
	}
	return strings.Join(parts, " or ")
}

// FoldersInQuery selects the non-trashed subfolders of a folder. The
// special id "root" selects the top level of the user's Drive.
func FoldersInQuery(folderID string) string {
	return fmt.Sprintf("mimeType='%s' and '%s' in parents and trashed=false", MimeFolder, folderID)
}

// AudioInFoldersQuery selects the audio files sitting directly inside any
// of the given folders. Parent predicates are OR-combined so a single
// query covers a whole batch of folders.
func AudioInFoldersQuery(folderIDs []string) string {
	parents := make([]string, len(folderIDs))
	for i, id := range folderIDs {
		parents[i] = fmt.Sprintf("'%s' in parents", id)
	}
	return fmt.Sprintf("(%s) and (%s) and trashed=false",
		strings.Join(parents, " or "), mimeDisjunction(AudioMimeTypes))
}

// ImagesInFolderQuery selects the cover-art candidates inside a folder.
func ImagesInFolderQuery(folderID string) string {
	return fmt.Sprintf("'%s' in parents and (%s) and trashed=false",
		folderID, mimeDisjunction(ImageMimeTypes))
}

// FoldersNamedQuery selects folders whose name matches exactly. Used by
// the covers-only scan to map album names back to folders.
func FoldersNamedQuery(name string) string {
	return fmt.Sprintf("mimeType='%s' and name='%s' and trashed=false", MimeFolder, escapeName(name))
}
