// File: internal/stats/handler.go
package stats

import (
	"craftmarket_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for platform statistics.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new stats handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterAdminRoutes sets up the stats routes on the admin group. The
// group is expected to already carry authentication and role middleware.
func (h *Handler) RegisterAdminRoutes(adminGroup *gin.RouterGroup) {
	adminGroup.GET("/stats", h.getPlatformStats)
}

func (h *Handler) getPlatformStats(c *gin.Context) {
	platformStats, err := h.service.GetPlatformStats(c.Request.Context(), common.GetPrincipalFromContext(c))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Platform statistics retrieved successfully", platformStats)
}
