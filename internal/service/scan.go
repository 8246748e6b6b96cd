package service

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/palgatox64/sonusitory/internal/scan"
)

func (s *Service) StartScanHandler(c *gin.Context) {
	s.startScan(c, scan.ModeFull)
}

func (s *Service) StartQuickScanHandler(c *gin.Context) {
	s.startScan(c, scan.ModeQuick)
}

func (s *Service) StartCoverScanHandler(c *gin.Context) {
	s.startScan(c, scan.ModeCovers)
}

func (s *Service) startScan(c *gin.Context, mode scan.Mode) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	jobID, err := s.runner.Submit(userID, mode)
	if err != nil {
		logger.Warn("scan submission rejected",
			zap.String("userId", userID),
			zap.String("mode", string(mode)),
			zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"task_id": jobID})
}

// TaskStatusHandler reports the latest known state of a scan job. The
// frontend polls this until the state turns terminal.
func (s *Service) TaskStatusHandler(c *gin.Context) {
	jobID := c.Param("taskId")
	c.JSON(http.StatusOK, s.status.Get(jobID))
}
