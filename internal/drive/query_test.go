package drive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldersInQuery(t *testing.T) {
	q := FoldersInQuery("abc123")
	assert.Equal(t, "mimeType='application/vnd.google-apps.folder' and 'abc123' in parents and trashed=false", q)
}

func TestAudioInFoldersQueryBatchesParents(t *testing.T) {
	q := AudioInFoldersQuery([]string{"f1", "f2", "f3"})
	assert.Equal(t,
		"('f1' in parents or 'f2' in parents or 'f3' in parents) and "+
			"(mimeType='audio/mpeg' or mimeType='audio/flac' or mimeType='audio/wav') and trashed=false",
		q)
}

func TestImagesInFolderQuery(t *testing.T) {
	q := ImagesInFolderQuery("f1")
	assert.Equal(t, "'f1' in parents and (mimeType='image/jpeg' or mimeType='image/png') and trashed=false", q)
}

func TestFoldersNamedQueryEscapesQuotes(t *testing.T) {
	q := FoldersNamedQuery(`Guns N' Roses`)
	assert.Equal(t, `mimeType='application/vnd.google-apps.folder' and name='Guns N\' Roses' and trashed=false`, q)
}
