package scan

import (
	"context"
	"fmt"

	"github.com/palgatox64/sonusitory/internal/db"
	"github.com/palgatox64/sonusitory/internal/drive"
)

// Mode selects the scan strategy. Modes are mutually exclusive per run.
type Mode string

const (
	// ModeFull enumerates every audio file under the root.
	ModeFull Mode = "full"
	// ModeQuick skips files already present in the catalog.
	ModeQuick Mode = "quick"
	// ModeCovers skips song discovery and only fills in missing album art.
	ModeCovers Mode = "covers_only"
)

// Steps advertised through the progress callback while a scan runs.
const (
	StepFolders = "folders"
	StepSongs   = "songs"
	StepCovers  = "covers"
)

// TreeClient is the slice of the remote file-tree API the scanner
// consumes. drive.Client satisfies it; tests use fakes.
type TreeClient interface {
	List(ctx context.Context, query string, pageSize int64, pageToken string) (files []drive.FileMeta, nextPageToken string, err error)
	Get(ctx context.Context, fileID, fields string) (drive.FileMeta, error)
}

// TreeFactory builds a per-user tree client from the user's stored
// credential token.
type TreeFactory func(ctx context.Context, tokenJSON string) (TreeClient, error)

// Catalog is the store contract the scanner writes through. All
// mutations are keyed on natural keys so concurrent or repeated scans
// converge instead of duplicating rows.
type Catalog interface {
	UserCredential(ctx context.Context, userID string) (tokenJSON string, err error)
	RootFolderID(ctx context.Context, userID string) (string, error)
	SongFileIDs(ctx context.Context, userID string) (map[string]bool, error)
	GetOrCreateArtist(ctx context.Context, userID, name string) (int64, error)
	GetOrCreateAlbum(ctx context.Context, userID string, artistID int64, name string) (int64, error)
	UpsertSong(ctx context.Context, song db.SongUpsert) (created bool, err error)
	SetAlbumCover(ctx context.Context, userID, albumName, coverFileID string) (updated int64, err error)
	AlbumsMissingCover(ctx context.Context, userID string) ([]db.Album, error)
}

// ProgressFunc receives progress updates as the scan advances. Total is
// zero when the extent of a step is not yet known.
type ProgressFunc func(step string, current, total int)

// ErrKind tags the setup failures that abort a scan before any
// traversal. Every later error degrades to a logged skip instead.
type ErrKind string

const (
	ErrKindCredential ErrKind = "missing_credential"
	ErrKindRootFolder ErrKind = "missing_root_folder"
	ErrKindTreeClient ErrKind = "tree_client"
	ErrKindCatalog    ErrKind = "catalog"
	ErrKindCanceled   ErrKind = "canceled"
)

// SetupError wraps a fatal pre-traversal failure with its kind tag.
type SetupError struct {
	Kind ErrKind
	Err  error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("scan setup failed (%s): %v", e.Kind, e.Err)
}

func (e *SetupError) Unwrap() error { return e.Err }

// Result is the terminal payload of a successful scan.
type Result struct {
	Mode         Mode   `json:"mode"`
	SongsCreated int    `json:"songs_created"`
	CoversFound  int    `json:"covers_found"`
	Message      string `json:"message"`
}
