package service

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (s *Service) PlaylistsHandler(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	playlists, err := s.db.UserPlaylists(c.Request.Context(), userID)
	if err != nil {
		logger.Error("listing playlists failed", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing playlists"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"playlists": playlists})
}

func (s *Service) CreatePlaylistHandler(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing name"})
		return
	}

	playlist, err := s.db.CreatePlaylist(c.Request.Context(), userID, name)
	if err != nil {
		logger.Error("creating playlist failed", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating playlist"})
		return
	}
	c.JSON(http.StatusCreated, playlist)
}

func (s *Service) SetPlaylistCoverHandler(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	playlistID, ok := pathID(c, "playlistId")
	if !ok {
		return
	}
	coverURL := c.Query("url")
	if coverURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing url"})
		return
	}

	if err := s.db.SetPlaylistCover(c.Request.Context(), userID, playlistID, coverURL); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Playlist not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (s *Service) DeletePlaylistHandler(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	playlistID, ok := pathID(c, "playlistId")
	if !ok {
		return
	}

	if err := s.db.DeletePlaylist(c.Request.Context(), userID, playlistID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Playlist not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (s *Service) PlaylistSongsHandler(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	playlistID, ok := pathID(c, "playlistId")
	if !ok {
		return
	}

	songs, err := s.db.PlaylistSongs(c.Request.Context(), userID, playlistID)
	if err != nil {
		logger.Error("listing playlist songs failed", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing playlist songs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"songs": songs})
}

func (s *Service) AddSongToPlaylistHandler(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	playlistID, ok := pathID(c, "playlistId")
	if !ok {
		return
	}
	songID, ok := pathID(c, "songId")
	if !ok {
		return
	}

	if err := s.db.AddSongToPlaylist(c.Request.Context(), userID, playlistID, songID); err != nil {
		logger.Error("adding song to playlist failed", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error adding song to playlist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (s *Service) RemoveSongFromPlaylistHandler(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	playlistID, ok := pathID(c, "playlistId")
	if !ok {
		return
	}
	songID, ok := pathID(c, "songId")
	if !ok {
		return
	}

	if err := s.db.RemoveSongFromPlaylist(c.Request.Context(), userID, playlistID, songID); err != nil {
		logger.Error("removing song from playlist failed", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error removing song from playlist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (s *Service) LikedSongsHandler(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	songs, err := s.db.LikedSongs(c.Request.Context(), userID)
	if err != nil {
		logger.Error("listing liked songs failed", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing liked songs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"songs": songs})
}

func (s *Service) ToggleLikeHandler(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	songID, ok := pathID(c, "songId")
	if !ok {
		return
	}

	liked, err := s.db.ToggleLike(c.Request.Context(), userID, songID)
	if err != nil {
		logger.Error("toggling like failed", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error toggling like"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked})
}
