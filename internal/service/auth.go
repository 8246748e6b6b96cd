package service

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/palgatox64/sonusitory/internal/db"
	"github.com/palgatox64/sonusitory/internal/drive"
)

// ConnectHandler starts the OAuth consent flow. The user id rides along
// as the state parameter so the callback knows whose credential it is
// storing. Offline access with forced approval guarantees a refresh
// token even on reconnects.
func (s *Service) ConnectHandler(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	authURL := s.driveCfg.OAuth().AuthCodeURL(userID,
		oauth2.AccessTypeOffline,
		oauth2.ApprovalForce)
	c.JSON(http.StatusOK, gin.H{"auth_url": authURL})
}

// CallbackHandler receives the OAuth redirect, exchanges the code and
// stores the credential.
func (s *Service) CallbackHandler(c *gin.Context) {
	code := c.Query("code")
	userID := c.Query("state")
	if code == "" || userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing code or state"})
		return
	}

	oauthCfg := s.driveCfg.OAuth()
	token, err := oauthCfg.Exchange(c.Request.Context(), code)
	if err != nil {
		logger.Error("oauth code exchange failed", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Error exchanging authorization code"})
		return
	}

	if err := s.db.SaveUser(c.Request.Context(), &db.AppUser{ID: userID}); err != nil {
		logger.Error("saving user failed", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving user"})
		return
	}

	tokenJSON, err := drive.FormatToken(s.driveCfg, token)
	if err != nil {
		logger.Error("serializing token failed", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error storing credential"})
		return
	}
	if err := s.db.SaveCredential(c.Request.Context(), userID, tokenJSON); err != nil {
		logger.Error("saving credential failed", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error storing credential"})
		return
	}

	logger.Info("google drive connected", zap.String("userId", userID))
	c.Header("Content-Type", "text/html")
	c.String(http.StatusOK, "<html><body>Google Drive conectado. Ya puedes cerrar esta ventana.</body></html>")
}

// ListFoldersHandler lists the folders at the top level of the user's
// Drive, for picking the music library root.
func (s *Service) ListFoldersHandler(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	client, ok := s.userDriveClient(c, userID)
	if !ok {
		return
	}

	var folders []drive.FileMeta
	pageToken := ""
	for {
		page, next, err := client.List(c.Request.Context(), drive.FoldersInQuery("root"), 1000, pageToken)
		if err != nil {
			logger.Error("listing drive folders failed", zap.String("userId", userID), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Error listing Drive folders"})
			return
		}
		folders = append(folders, page...)
		if next == "" {
			break
		}
		pageToken = next
	}

	c.JSON(http.StatusOK, gin.H{"folders": folders})
}

// SetRootFolderHandler records which Drive folder holds the music
// library.
func (s *Service) SetRootFolderHandler(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	folderID := c.Query("folder_id")
	if folderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing folder_id"})
		return
	}

	if err := s.db.SetRootFolder(c.Request.Context(), userID, folderID); err != nil {
		logger.Error("setting root folder failed", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error setting root folder"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// UnlinkHandler removes the credential and tears down the user's whole
// catalog.
func (s *Service) UnlinkHandler(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := s.db.DisconnectLibrary(c.Request.Context(), userID); err != nil {
		logger.Error("disconnecting library failed", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error disconnecting library"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
