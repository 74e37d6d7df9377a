package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/visionscan/backend/internal/domain"
)

// maxImageBase64Len caps the accepted image payload (5MB of base64 text).
const maxImageBase64Len = 5_000_000

// DetectionRunner runs one detection pipeline invocation.
type DetectionRunner interface {
	RunDetection(ctx context.Context, sessionID, imageBase64 string) (*domain.DetectionReport, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	detection DetectionRunner
	inventory domain.InventoryRepository
	sessions  domain.SessionRepository
}

// NewHandler creates a new HTTP handler
func NewHandler(detection DetectionRunner, inventory domain.InventoryRepository, sessions domain.SessionRepository) *Handler {
	return &Handler{
		detection: detection,
		inventory: inventory,
		sessions:  sessions,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "visionscan-backend",
		"version": "1.0.0",
	})
}

// detectRequest is the body of the detect-from-image endpoint.
type detectRequest struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
}

// DetectFromImage handles POST /sessions/:id/scan/detect-from-image.
// It validates the payload, runs the detection pipeline and maps pipeline
// errors onto HTTP statuses.
func (h *Handler) DetectFromImage(c *gin.Context) {
	sessionID := c.Param("id")

	var req detectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image_base64 is required"})
		return
	}

	if len(req.ImageBase64) > maxImageBase64Len {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image too large (max 5MB)"})
		return
	}
	if !isBase64(req.ImageBase64) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid base64 encoding"})
		return
	}

	report, err := h.detection.RunDetection(c.Request.Context(), sessionID, req.ImageBase64)
	if err != nil {
		h.renderDetectionError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// renderDetectionError maps pipeline errors onto HTTP statuses. Transport
// failures against the model all surface as 503: the client should try again
// later, the server will not retry on its behalf.
func (h *Handler) renderDetectionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
	case errors.Is(err, domain.ErrSessionNotActive):
		c.JSON(http.StatusBadRequest, gin.H{"error": "session is not active"})
	case errors.Is(err, domain.ErrEmptyInventory):
		c.JSON(http.StatusBadRequest, gin.H{"error": "no inventory items available for matching"})
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrModelUnavailable),
		errors.Is(err, domain.ErrDetectionTimeout),
		errors.Is(err, domain.ErrModelAPIFailure):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "detection service unavailable"})
	default:
		log.Printf("[HTTP] unexpected detection error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "detection failed"})
	}
}

// isBase64 reports whether s uses only the standard base64 alphabet,
// including padding.
func isBase64(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z':
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case c == '+' || c == '/' || c == '=':
		default:
			return false
		}
	}
	return true
}

// CreateSession handles POST /sessions
func (h *Handler) CreateSession(c *gin.Context) {
	session, err := h.sessions.Create(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}
	c.JSON(http.StatusCreated, session)
}

// GetSession handles GET /sessions/:id
func (h *Handler) GetSession(c *gin.Context) {
	session, err := h.sessions.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, session)
}

// sessionStatusRequest is the body of the session status endpoint.
type sessionStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetSessionStatus handles POST /sessions/:id/status
func (h *Handler) SetSessionStatus(c *gin.Context) {
	var req sessionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	session, err := h.sessions.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		case errors.Is(err, domain.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update session"})
		}
		return
	}
	c.JSON(http.StatusOK, session)
}

// createInventoryRequest is the body of the inventory create endpoint.
type createInventoryRequest struct {
	SKU      string   `json:"sku" binding:"required"`
	Name     string   `json:"name" binding:"required"`
	Category string   `json:"category"`
	Price    float64  `json:"price"`
	Stock    int      `json:"stock"`
	Aliases  []string `json:"aliases"`
}

// CreateInventory handles POST /inventory
func (h *Handler) CreateInventory(c *gin.Context) {
	var req createInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sku and name are required"})
		return
	}

	record, err := h.inventory.Create(c.Request.Context(), domain.InventoryRecord{
		SKU:      req.SKU,
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Stock:    req.Stock,
		Aliases:  req.Aliases,
	})
	if err != nil {
		if errors.Is(err, domain.ErrSKUExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "sku already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create inventory item"})
		return
	}
	c.JSON(http.StatusCreated, record)
}

// ListInventory handles GET /inventory with limit/offset pagination
func (h *Handler) ListInventory(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offset"})
		return
	}

	items, total, err := h.inventory.List(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list inventory"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": total,
	})
}

// GetInventory handles GET /inventory/:id
func (h *Handler) GetInventory(c *gin.Context) {
	record, err := h.inventory.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "inventory item not found"})
		return
	}
	c.JSON(http.StatusOK, record)
}

// UpdateInventory handles PUT /inventory/:id
func (h *Handler) UpdateInventory(c *gin.Context) {
	var update domain.InventoryUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid update payload"})
		return
	}

	record, err := h.inventory.Update(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		if errors.Is(err, domain.ErrInventoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "inventory item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update inventory item"})
		return
	}
	c.JSON(http.StatusOK, record)
}
