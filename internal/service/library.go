package service

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// sendBody streams a proxied Drive response. Chunked upstream replies
// report a negative length, which must not leak into Content-Length.
func sendBody(c *gin.Context, size int64, contentType string, body io.Reader) {
	if size < 0 {
		c.Header("Content-Type", contentType)
		c.Status(http.StatusOK)
		_, _ = io.Copy(c.Writer, body)
		return
	}
	c.DataFromReader(http.StatusOK, size, contentType, body, nil)
}

// pathID parses a numeric path parameter. Responds 400 and returns
// false on garbage.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}

func (s *Service) ArtistsHandler(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	artists, err := s.db.UserArtists(c.Request.Context(), userID)
	if err != nil {
		logger.Error("listing artists failed", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing artists"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"artists": artists})
}

func (s *Service) ArtistAlbumsHandler(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	artistID, ok := pathID(c, "artistId")
	if !ok {
		return
	}

	albums, err := s.db.ArtistAlbums(c.Request.Context(), userID, artistID)
	if err != nil {
		logger.Error("listing albums failed", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing albums"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"albums": albums})
}

func (s *Service) AlbumSongsHandler(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	albumID, ok := pathID(c, "albumId")
	if !ok {
		return
	}

	songs, err := s.db.AlbumSongs(c.Request.Context(), userID, albumID)
	if err != nil {
		logger.Error("listing album songs failed", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing songs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"songs": songs})
}

// AlbumCoverHandler proxies the album's cover image from Drive.
func (s *Service) AlbumCoverHandler(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	albumID, ok := pathID(c, "albumId")
	if !ok {
		return
	}

	album, err := s.db.AlbumByID(c.Request.Context(), userID, albumID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Album not found"})
		return
	}
	if album.CoverFileID == nil || *album.CoverFileID == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Album has no cover"})
		return
	}

	client, ok := s.userDriveClient(c, userID)
	if !ok {
		return
	}
	body, size, contentType, err := client.Download(c.Request.Context(), *album.CoverFileID)
	if err != nil {
		logger.Error("downloading cover failed",
			zap.String("userId", userID),
			zap.String("coverFileId", *album.CoverFileID),
			zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Error downloading cover"})
		return
	}
	defer body.Close()

	if contentType == "" {
		contentType = "image/jpeg"
	}
	c.Header("Cache-Control", "public, max-age=86400")
	sendBody(c, size, contentType, body)
}

// StreamSongHandler proxies the audio file from Drive to the player.
func (s *Service) StreamSongHandler(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	songID, ok := pathID(c, "songId")
	if !ok {
		return
	}

	song, err := s.db.SongByID(c.Request.Context(), userID, songID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Song not found"})
		return
	}

	client, ok := s.userDriveClient(c, userID)
	if !ok {
		return
	}
	body, size, contentType, err := client.Download(c.Request.Context(), song.DriveFileID)
	if err != nil {
		logger.Error("downloading song failed",
			zap.String("userId", userID),
			zap.String("driveFileId", song.DriveFileID),
			zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Error downloading song"})
		return
	}
	defer body.Close()

	if contentType == "" {
		contentType = song.MimeType
	}
	c.Header("Accept-Ranges", "bytes")
	sendBody(c, size, contentType, body)
}
