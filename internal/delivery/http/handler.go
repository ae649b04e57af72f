package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shadematch/backend/internal/catalog"
	"github.com/shadematch/backend/internal/domain"
	"github.com/shadematch/backend/internal/usecase"
)

const (
	serviceName    = "shadematch-backend"
	serviceVersion = "1.0.0"
)

// Services groups the use cases the handler serves. Nil fields make the
// matching endpoints answer 503.
type Services struct {
	Recommendations *usecase.RecommendationService
	Saved           *usecase.SavedService
	Links           *usecase.ShoppingLinkResolver
	Catalog         *catalog.Catalog
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	services Services
	logger   *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(services Services, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		services: services,
		logger:   logger.Named("http"),
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	response := gin.H{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
	}
	if cat := h.services.Catalog; cat != nil {
		response["catalog"] = gin.H{
			"version": cat.Version(),
			"base":    len(cat.Base()),
			"premium": len(cat.Premium()),
			"total":   cat.Len(),
		}
	}
	c.JSON(http.StatusOK, response)
}

// MatchFoundations handles POST /api/v1/matches
func (h *Handler) MatchFoundations(c *gin.Context) {
	if h.services.Recommendations == nil {
		notConfigured(c, "recommendation service")
		return
	}

	var req domain.MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: undertone and skinTone are required",
		})
		return
	}

	recommendation, err := h.services.Recommendations.Recommend(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, recommendation)
}

// ShoppingLink handles GET /api/v1/shopping-link?brand=&shade=
func (h *Handler) ShoppingLink(c *gin.Context) {
	if h.services.Links == nil {
		notConfigured(c, "shopping link resolver")
		return
	}

	brand := strings.TrimSpace(c.Query("brand"))
	shade := strings.TrimSpace(c.Query("shade"))
	if brand == "" || shade == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: brand and shade query parameters are required",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"brand": brand,
		"shade": shade,
		"url":   h.services.Links.ResolveShoppingURL(brand, shade),
	})
}

// ListSaved handles GET /api/v1/users/:userId/saved
func (h *Handler) ListSaved(c *gin.Context) {
	if h.services.Saved == nil {
		notConfigured(c, "saved foundations")
		return
	}

	saved, err := h.services.Saved.List(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved": saved})
}

// SaveFoundation handles POST /api/v1/users/:userId/saved
func (h *Handler) SaveFoundation(c *gin.Context) {
	if h.services.Saved == nil {
		notConfigured(c, "saved foundations")
		return
	}

	var req domain.SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: brand and shadeName are required",
		})
		return
	}

	saved, err := h.services.Saved.Save(c.Request.Context(), c.Param("userId"), req.Brand, req.ShadeName)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, saved)
}

// RemoveSaved handles DELETE /api/v1/users/:userId/saved
func (h *Handler) RemoveSaved(c *gin.Context) {
	if h.services.Saved == nil {
		notConfigured(c, "saved foundations")
		return
	}

	var req domain.SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: brand and shadeName are required",
		})
		return
	}

	if err := h.services.Saved.Remove(c.Request.Context(), c.Param("userId"), req.Brand, req.ShadeName); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func notConfigured(c *gin.Context, what string) {
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"error": what + " not configured",
	})
}

// writeError maps domain errors onto HTTP status codes
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument), errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	default:
		h.logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", requestID(c)),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
