package scan

import "go.uber.org/zap"

// Tunables for how the scanner batches work against the Drive API.
const (
	// DefaultFolderBatchSize is how many folder ids share one combined
	// audio query. Drive rejects queries past a few thousand characters,
	// so the batch stays small.
	DefaultFolderBatchSize = 20

	// DefaultPageSize is the page size for folder and audio listings,
	// the maximum Drive allows.
	DefaultPageSize = 1000

	// coverPageSize bounds how many image candidates one album folder
	// contributes. Covers live next to the audio, a handful per folder.
	coverPageSize = 10

	// coverFolderPageSize is the page size for folder-by-name lookups in
	// covers-only mode, paginated to exhaustion.
	coverFolderPageSize = 100
)

// coverFilenames is the allow-list of conventional cover art names,
// matched case-insensitively against candidates before falling back to
// the first image in the folder.
var coverFilenames = map[string]bool{
	"cover.jpg":    true,
	"cover.png":    true,
	"folder.jpg":   true,
	"albumart.jpg": true,
}

// Config carries the orchestrator's dependencies and tunables
// explicitly; the scanner keeps no process-wide state.
type Config struct {
	FolderBatchSize int
	PageSize        int64
	Logger          *zap.Logger
	Metrics         *Metrics
}

func (c Config) withDefaults() Config {
	if c.FolderBatchSize <= 0 {
		c.FolderBatchSize = DefaultFolderBatchSize
	}
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}
