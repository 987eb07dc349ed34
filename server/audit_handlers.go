package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultAuditLimit = 20
	maxAuditLimit     = 100
)

// auditTrail returns the most recent admin mutations recorded against an
// entity, newest first.
func (s *Server) auditTrail(c *gin.Context) {
	limit := int64(defaultAuditLimit)
	if v, err := strconv.ParseInt(c.Query("limit"), 10, 64); err == nil && v >= 1 && v <= maxAuditLimit {
		limit = v
	}

	logs, err := s.audit.AuditTrail(c.Request.Context(), c.Param("entityId"), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
