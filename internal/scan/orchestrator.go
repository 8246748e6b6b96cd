package scan

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/palgatox64/sonusitory/internal/db"
	"github.com/palgatox64/sonusitory/internal/drive"
)

// Orchestrator coordinates one library scan at a time: it enumerates the
// remote folder tree, resolves each audio file to an artist/album pair,
// upserts the catalog and sweeps album folders for cover art. It holds
// no per-run state, so one orchestrator serves any number of sequential
// or concurrent runs.
type Orchestrator struct {
	catalog Catalog
	newTree TreeFactory
	config  Config
}

func NewOrchestrator(catalog Catalog, newTree TreeFactory, config Config) *Orchestrator {
	return &Orchestrator{
		catalog: catalog,
		newTree: newTree,
		config:  config.withDefaults(),
	}
}

// Run executes a scan for one user. Only failures while resolving the
// stored credential, the root folder or the tree client surface as
// errors; every error past that point is logged and skipped so a single
// bad file or folder never aborts the batch. Cancellation is honored
// between folder batches.
func (o *Orchestrator) Run(ctx context.Context, userID string, mode Mode, progress ProgressFunc) (*Result, error) {
	if progress == nil {
		progress = func(string, int, int) {}
	}
	start := time.Now()
	logger := o.config.Logger.With(zap.String("userId", userID), zap.String("mode", string(mode)))

	tokenJSON, err := o.catalog.UserCredential(ctx, userID)
	if err != nil {
		return nil, &SetupError{Kind: ErrKindCredential, Err: err}
	}
	rootID, err := o.catalog.RootFolderID(ctx, userID)
	if err != nil {
		return nil, &SetupError{Kind: ErrKindRootFolder, Err: err}
	}
	if rootID == "" {
		return nil, &SetupError{Kind: ErrKindRootFolder, Err: errors.New("no root folder configured")}
	}
	tree, err := o.newTree(ctx, tokenJSON)
	if err != nil {
		return nil, &SetupError{Kind: ErrKindTreeClient, Err: err}
	}

	run := &scanRun{
		tree:         tree,
		catalog:      o.catalog,
		config:       o.config,
		logger:       logger,
		metrics:      o.config.Metrics,
		progress:     progress,
		userID:       userID,
		rootID:       rootID,
		mode:         mode,
		coverFolders: make(map[string]bool),
	}
	run.resolver = newPathResolver(run, logger)

	var result *Result
	if mode == ModeCovers {
		result, err = run.coversOnly(ctx)
	} else {
		result, err = run.scanSongs(ctx)
	}
	if err != nil {
		return nil, err
	}

	o.config.Metrics.observeDuration(time.Since(start))
	logger.Info("scan complete",
		zap.Int("songsCreated", result.SongsCreated),
		zap.Int("coversFound", result.CoversFound),
		zap.Duration("duration", time.Since(start)))
	return result, nil
}

// scanRun is the state of a single scan invocation. It is owned by one
// goroutine for its whole life, so none of it is synchronized.
type scanRun struct {
	tree     TreeClient
	catalog  Catalog
	resolver *pathResolver
	config   Config
	logger   *zap.Logger
	metrics  *Metrics
	progress ProgressFunc

	userID string
	rootID string
	mode   Mode

	// known is the snapshot of already-catalogued file ids (quick mode).
	known map[string]bool
	// coverFolders collects the album folders eligible for the cover
	// sweep; which folders qualify depends on the mode.
	coverFolders map[string]bool

	songsCreated int
	coversFound  int
}

// List and Get satisfy TreeClient, wrapping the real client with call
// accounting. The resolver goes through these too.
func (run *scanRun) List(ctx context.Context, query string, pageSize int64, pageToken string) ([]drive.FileMeta, string, error) {
	run.metrics.incAPICalls()
	files, next, err := run.tree.List(ctx, query, pageSize, pageToken)
	if err != nil {
		run.metrics.incAPIErrors()
	}
	return files, next, err
}

func (run *scanRun) Get(ctx context.Context, fileID, fields string) (drive.FileMeta, error) {
	run.metrics.incAPICalls()
	file, err := run.tree.Get(ctx, fileID, fields)
	if err != nil {
		run.metrics.incAPIErrors()
	}
	return file, err
}

// scanSongs drives the full and quick modes: discover folders, list
// audio in folder batches, process each file, then sweep covers.
func (run *scanRun) scanSongs(ctx context.Context) (*Result, error) {
	run.progress(StepFolders, 0, 0)
	folders := run.discoverFolders(ctx)
	run.logger.Info("folder discovery complete", zap.Int("folders", len(folders)))

	if run.mode == ModeQuick {
		known, err := run.catalog.SongFileIDs(ctx, run.userID)
		if err != nil {
			// Degrades to a full-shaped pass; upserts stay idempotent.
			run.logger.Error("could not snapshot known file ids, quick scan will revisit everything", zap.Error(err))
			known = make(map[string]bool)
		}
		run.known = known
	}

	batchSize := run.config.FolderBatchSize
	totalBatches := (len(folders) + batchSize - 1) / batchSize
	for i := 0; i < len(folders); i += batchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		batchNum := i/batchSize + 1
		run.progress(StepSongs, batchNum, totalBatches)

		end := i + batchSize
		if end > len(folders) {
			end = len(folders)
		}
		run.processAudioBatch(ctx, folders[i:end], batchNum)
	}

	run.sweepCovers(ctx, setToSlice(run.coverFolders))

	result := &Result{
		Mode:         run.mode,
		SongsCreated: run.songsCreated,
		CoversFound:  run.coversFound,
	}
	if run.mode == ModeQuick {
		result.Message = fmt.Sprintf("¡Escaneo rápido completado! Se añadieron %d canciones nuevas y se encontraron %d portadas.",
			run.songsCreated, run.coversFound)
	} else {
		result.Message = fmt.Sprintf("¡Escaneo completado! Se crearon %d canciones nuevas y se encontraron %d portadas.",
			run.songsCreated, run.coversFound)
	}
	return result, nil
}

// discoverFolders walks the folder tree downward from the root with an
// explicit work list, so depth is bounded by the tree and not the
// stack. Listing failures cost only that folder's subtree. Child
// listings carry name and parent, which pre-warms the resolver cache.
func (run *scanRun) discoverFolders(ctx context.Context) []string {
	all := []string{run.rootID}
	queue := []string{run.rootID}
	for len(queue) > 0 {
		folderID := queue[0]
		queue = queue[1:]

		query := drive.FoldersInQuery(folderID)
		pageToken := ""
		for {
			files, next, err := run.List(ctx, query, run.config.PageSize, pageToken)
			if err != nil {
				run.logger.Warn("subfolder listing failed",
					zap.String("folderId", folderID),
					zap.Error(err))
				break
			}
			for _, f := range files {
				all = append(all, f.ID)
				queue = append(queue, f.ID)
				run.resolver.seed(f.ID, f.Name, folderID)
			}
			if next == "" {
				break
			}
			pageToken = next
		}
	}
	return all
}

// processAudioBatch lists the audio files across one batch of folders
// and processes every file. A failed page abandons the rest of this
// batch's pagination but nothing more.
func (run *scanRun) processAudioBatch(ctx context.Context, folderIDs []string, batchNum int) {
	query := drive.AudioInFoldersQuery(folderIDs)
	pageToken := ""
	for {
		files, next, err := run.List(ctx, query, run.config.PageSize, pageToken)
		if err != nil {
			run.logger.Error("audio listing failed, abandoning batch",
				zap.Int("batch", batchNum),
				zap.Error(err))
			return
		}
		for _, file := range files {
			run.processAudioFile(ctx, file)
		}
		if next == "" {
			return
		}
		pageToken = next
	}
}

// processAudioFile runs the per-file pipeline: parent, path, taxonomy,
// catalog upserts, cover-folder bookkeeping. Every failure is logged
// with the file's identity and swallowed.
func (run *scanRun) processAudioFile(ctx context.Context, file drive.FileMeta) {
	if run.mode == ModeQuick && run.known[file.ID] {
		return
	}
	if len(file.Parents) == 0 {
		run.logger.Warn("audio file has no parent folder, skipping",
			zap.String("fileId", file.ID),
			zap.String("name", file.Name))
		return
	}
	parentID := file.Parents[0]

	path, reachedRoot := run.resolver.resolvePath(ctx, parentID, run.rootID)
	if !reachedRoot {
		run.logger.Debug("file outside configured root, skipping",
			zap.String("fileId", file.ID),
			zap.String("name", file.Name))
		return
	}
	artistName, albumName, ok := InferTaxonomy(path)
	if !ok {
		run.logger.Debug("no artist/album inferable for file, skipping",
			zap.String("fileId", file.ID),
			zap.String("name", file.Name))
		return
	}

	artistID, err := run.catalog.GetOrCreateArtist(ctx, run.userID, artistName)
	if err != nil {
		run.itemError("artist upsert failed", file, err)
		return
	}
	albumID, err := run.catalog.GetOrCreateAlbum(ctx, run.userID, artistID, albumName)
	if err != nil {
		run.itemError("album upsert failed", file, err)
		return
	}

	trackNumber, title := ExtractMetadata(file.Name)
	mimeType := file.MimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	created, err := run.catalog.UpsertSong(ctx, db.SongUpsert{
		UserID:      run.userID,
		DriveFileID: file.ID,
		Name:        file.Name,
		Title:       title,
		TrackNumber: trackNumber,
		MimeType:    mimeType,
		ArtistID:    artistID,
		AlbumID:     albumID,
	})
	if err != nil {
		run.itemError("song upsert failed", file, err)
		return
	}
	if created {
		run.songsCreated++
		run.metrics.incSongsCreated()
	}

	// Full mode sweeps every album folder that held audio this run;
	// quick mode only the folders newly created songs came from.
	if run.mode == ModeFull || created {
		run.coverFolders[parentID] = true
	}
	run.metrics.incFilesProcessed()
}

func (run *scanRun) itemError(msg string, file drive.FileMeta, err error) {
	run.metrics.incItemErrors()
	run.logger.Error(msg,
		zap.String("fileId", file.ID),
		zap.String("name", file.Name),
		zap.Error(err))
}

// coversOnly seeds the cover sweep from albums missing art, resolving
// candidate folders by exact name match under the root. Two albums
// sharing a name resolve to the same folders; the name-keyed cover
// update then touches both, which is the accepted ambiguity of this
// mode.
func (run *scanRun) coversOnly(ctx context.Context) (*Result, error) {
	albums, err := run.catalog.AlbumsMissingCover(ctx, run.userID)
	if err != nil {
		return nil, &SetupError{Kind: ErrKindCatalog, Err: err}
	}
	run.logger.Info("albums missing covers", zap.Int("albums", len(albums)))
	run.progress(StepCovers, 0, len(albums))

	var folders []string
	seen := make(map[string]bool)
	for _, album := range albums {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		query := drive.FoldersNamedQuery(album.Name)
		pageToken := ""
		for {
			files, next, err := run.List(ctx, query, coverFolderPageSize, pageToken)
			if err != nil {
				run.logger.Warn("folder lookup by album name failed",
					zap.String("album", album.Name),
					zap.Error(err))
				break
			}
			for _, f := range files {
				if seen[f.ID] {
					continue
				}
				seen[f.ID] = true
				if _, reachedRoot := run.resolver.resolvePath(ctx, f.ID, run.rootID); !reachedRoot {
					continue
				}
				folders = append(folders, f.ID)
			}
			if next == "" {
				break
			}
			pageToken = next
		}
	}

	run.sweepCovers(ctx, folders)

	return &Result{
		Mode:        run.mode,
		CoversFound: run.coversFound,
		Message: fmt.Sprintf("¡Búsqueda de portadas completada! Se encontraron %d portadas nuevas.",
			run.coversFound),
	}, nil
}

// sweepCovers searches each candidate folder for images and records the
// best one as the matching album's cover. Per-folder failures never
// block the rest of the sweep.
func (run *scanRun) sweepCovers(ctx context.Context, folderIDs []string) {
	total := len(folderIDs)
	run.logger.Info("sweeping album folders for covers", zap.Int("folders", total))
	for i, folderID := range folderIDs {
		run.progress(StepCovers, i+1, total)
		run.searchCoverInFolder(ctx, folderID)
	}
}

func (run *scanRun) searchCoverInFolder(ctx context.Context, folderID string) {
	images, _, err := run.List(ctx, drive.ImagesInFolderQuery(folderID), coverPageSize, "")
	if err != nil {
		run.logger.Warn("cover search failed",
			zap.String("folderId", folderID),
			zap.Error(err))
		return
	}
	if len(images) == 0 {
		return
	}

	cover := images[0]
	for _, img := range images {
		if coverFilenames[strings.ToLower(img.Name)] {
			cover = img
			break
		}
	}

	meta, err := run.resolver.lookup(ctx, folderID)
	if err != nil {
		run.logger.Warn("could not resolve album folder name for cover",
			zap.String("folderId", folderID),
			zap.Error(err))
		return
	}
	updated, err := run.catalog.SetAlbumCover(ctx, run.userID, meta.name, cover.ID)
	if err != nil {
		run.logger.Error("setting album cover failed",
			zap.String("album", meta.name),
			zap.String("coverFileId", cover.ID),
			zap.Error(err))
		return
	}
	if updated > 0 {
		run.coversFound++
		run.metrics.incCoversFound()
	}
}

func setToSlice(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}
