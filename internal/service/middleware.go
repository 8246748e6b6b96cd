package service

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// APIKeyMiddleware validates the shared API key on every route except
// the excluded paths. The OAuth callback must stay excluded because
// Google redirects the browser there without our headers.
func APIKeyMiddleware(excludedPaths ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		currentPath := c.Request.URL.Path
		for _, excludedPath := range excludedPaths {
			// Root is exact-match only, a prefix match would open everything.
			if currentPath == excludedPath || (excludedPath != "/" && strings.HasPrefix(currentPath, excludedPath)) {
				c.Next()
				return
			}
		}

		expectedAPIKey := os.Getenv("SONUSITORY_API_KEY")
		if expectedAPIKey == "" {
			logger.Error("API key not configured in environment")
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "API key validation is not properly configured",
			})
			c.Abort()
			return
		}

		apiKey := c.GetHeader("X-API-Key")
		if apiKey == "" {
			apiKey = c.Query("api_key")
		}

		if apiKey == "" {
			logger.Warn("API key missing",
				zap.String("path", currentPath),
				zap.String("method", c.Request.Method),
				zap.String("ip", c.ClientIP()))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "API key required"})
			c.Abort()
			return
		}

		if apiKey != expectedAPIKey {
			logger.Warn("Invalid API key provided",
				zap.String("path", currentPath),
				zap.String("method", c.Request.Method),
				zap.String("ip", c.ClientIP()))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// CORSMiddleware opens the API to the browser frontend.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, X-API-Key")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
