package service

import (
	"context"
	"io"
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/palgatox64/sonusitory/internal/db"
	"github.com/palgatox64/sonusitory/internal/drive"
	"github.com/palgatox64/sonusitory/internal/jobs"
)

// DriveClient is the slice of the Drive API the handlers use directly:
// folder listing for setup and file download for streaming.
type DriveClient interface {
	List(ctx context.Context, query string, pageSize int64, pageToken string) ([]drive.FileMeta, string, error)
	Download(ctx context.Context, fileID string) (io.ReadCloser, int64, string, error)
}

type driveClientFactory func(ctx context.Context, tokenJSON string) (DriveClient, error)

// Service wires the HTTP handlers to the catalog, the scan runner and
// the Drive API.
type Service struct {
	db        *db.DB
	runner    *jobs.Runner
	status    *jobs.StatusStore
	driveCfg  *drive.Config
	newClient driveClientFactory
}

func New(database *db.DB, runner *jobs.Runner, status *jobs.StatusStore, driveCfg *drive.Config) *Service {
	s := &Service{
		db:       database,
		runner:   runner,
		status:   status,
		driveCfg: driveCfg,
	}
	s.newClient = func(ctx context.Context, tokenJSON string) (DriveClient, error) {
		return drive.NewClient(ctx, driveCfg, tokenJSON, logger)
	}
	return s
}

// Router builds the gin engine with logging, recovery, CORS and API key
// validation. Home, health and the OAuth callback stay open.
func (s *Service) Router(l *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(ginzap.Ginzap(l, time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(l, true))
	router.Use(CORSMiddleware())
	router.Use(APIKeyMiddleware("/", "/health", "/metrics", "/api/v1/auth/callback"))

	router.GET("/", s.HomeHandler)
	router.GET("/health", s.HealthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	{
		api.GET("/auth/connect", s.ConnectHandler)
		api.GET("/auth/callback", s.CallbackHandler)
		api.GET("/drive/folders", s.ListFoldersHandler)
		api.POST("/drive/folder", s.SetRootFolderHandler)
		api.POST("/unlink", s.UnlinkHandler)

		api.POST("/scan", s.StartScanHandler)
		api.POST("/scan/quick", s.StartQuickScanHandler)
		api.POST("/scan/covers", s.StartCoverScanHandler)
		api.GET("/scan/status/:taskId", s.TaskStatusHandler)

		api.GET("/artists", s.ArtistsHandler)
		api.GET("/artists/:artistId/albums", s.ArtistAlbumsHandler)
		api.GET("/albums/:albumId/songs", s.AlbumSongsHandler)
		api.GET("/albums/:albumId/cover", s.AlbumCoverHandler)
		api.GET("/songs/:songId/stream", s.StreamSongHandler)

		api.GET("/songs/liked", s.LikedSongsHandler)
		api.POST("/songs/:songId/like", s.ToggleLikeHandler)

		api.GET("/playlists", s.PlaylistsHandler)
		api.POST("/playlists", s.CreatePlaylistHandler)
		api.DELETE("/playlists/:playlistId", s.DeletePlaylistHandler)
		api.POST("/playlists/:playlistId/cover", s.SetPlaylistCoverHandler)
		api.GET("/playlists/:playlistId/songs", s.PlaylistSongsHandler)
		api.POST("/playlists/:playlistId/songs/:songId", s.AddSongToPlaylistHandler)
		api.DELETE("/playlists/:playlistId/songs/:songId", s.RemoveSongFromPlaylistHandler)
	}

	return router
}

func (s *Service) HomeHandler(c *gin.Context) {
	c.String(http.StatusOK, "Sonusitory Backend")
}

func (s *Service) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// requireUser extracts the user id from the query string. Responds 400
// and returns false when missing.
func requireUser(c *gin.Context) (string, bool) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing user_id"})
		return "", false
	}
	return userID, true
}

// userDriveClient builds a Drive client from the user's stored
// credential. Responds on error and returns false.
func (s *Service) userDriveClient(c *gin.Context, userID string) (DriveClient, bool) {
	tokenJSON, err := s.db.UserCredential(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Google Drive is not connected for this user"})
		return nil, false
	}
	client, err := s.newClient(c.Request.Context(), tokenJSON)
	if err != nil {
		logger.Error("building drive client failed", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error connecting to Google Drive"})
		return nil, false
	}
	return client, true
}
