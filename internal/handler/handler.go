package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"snipurl-platform/internal/alias"
	"snipurl-platform/internal/security"
	"snipurl-platform/internal/service"
	"snipurl-platform/internal/store"
)

// LinkHandler exposes the link lifecycle, redirect and analytics surface.
type LinkHandler struct {
	links     *service.LinkService
	redirects *service.RedirectService
	analytics *service.AnalyticsService
	baseURL   string
}

func NewLinkHandler(links *service.LinkService, redirects *service.RedirectService, analytics *service.AnalyticsService, baseURL string) *LinkHandler {
	return &LinkHandler{
		links:     links,
		redirects: redirects,
		analytics: analytics,
		baseURL:   baseURL,
	}
}

// HealthCheck godoc
// @Summary Service liveness probe
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *LinkHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now()})
}

type CreateLinkRequest struct {
	OriginalURL string `json:"original_url" binding:"required" example:"https://example.com/some/long/path"`
	Alias       string `json:"alias,omitempty" example:"my-link"`
	Name        string `json:"name,omitempty" example:"Example"`
}

type CreateLinkResponse struct {
	ID       string `json:"id"`
	Alias    string `json:"alias"`
	ShortURL string `json:"short_url" example:"http://localhost:8080/my-link"`
}

// CreateLink godoc
// @Summary Create a short link
// @Description Shortens a URL, optionally with a custom alias and display name
// @Tags Links
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param link body CreateLinkRequest true "link to create"
// @Success 201 {object} CreateLinkResponse
// @Failure 400 {object} map[string]string "validation error"
// @Failure 409 {object} map[string]string "alias conflict"
// @Router /api/links [post]
func (h *LinkHandler) CreateLink(c *gin.Context) {
	var req CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	link, err := h.links.Create(c.Request.Context(), service.CreateInput{
		OriginalURL: req.OriginalURL,
		Alias:       req.Alias,
		Name:        req.Name,
	})
	if err != nil {
		h.writeLinkError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreateLinkResponse{
		ID:       link.ID,
		Alias:    link.Alias,
		ShortURL: h.baseURL + "/" + link.Alias,
	})
}

type UpdateLinkRequest struct {
	Name        *string `json:"name,omitempty"`
	OriginalURL *string `json:"original_url,omitempty"`
}

// UpdateLink godoc
// @Summary Update a link's name or destination
// @Tags Links
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "link id"
// @Param link body UpdateLinkRequest true "fields to update"
// @Success 200 {object} model.Link
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/links/{id} [put]
func (h *LinkHandler) UpdateLink(c *gin.Context) {
	var req UpdateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	link, err := h.links.Update(c.Request.Context(), c.Param("id"), service.UpdateInput{
		Name:        req.Name,
		OriginalURL: req.OriginalURL,
	})
	if err != nil {
		h.writeLinkError(c, err)
		return
	}

	h.redirects.InvalidateAlias(c.Request.Context(), link.Alias)
	c.JSON(http.StatusOK, link)
}

// DeleteLink godoc
// @Summary Delete a link
// @Description Idempotent; deleting an unknown id still answers 204
// @Tags Links
// @Security ApiKeyAuth
// @Param id path string true "link id"
// @Success 204
// @Router /api/links/{id} [delete]
func (h *LinkHandler) DeleteLink(c *gin.Context) {
	id := c.Param("id")

	// Look the alias up first so the cache entry can be dropped too. A missing
	// link is fine, delete is idempotent.
	if link, err := h.links.Get(c.Request.Context(), id); err == nil {
		h.redirects.InvalidateAlias(c.Request.Context(), link.Alias)
	}

	if err := h.links.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.Status(http.StatusNoContent)
}

// ListLinks godoc
// @Summary List all links, most recent first
// @Tags Links
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} model.Link
// @Router /api/links [get]
func (h *LinkHandler) ListLinks(c *gin.Context) {
	links, err := h.links.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "listing links failed"})
		return
	}
	c.JSON(http.StatusOK, links)
}

// Redirect godoc
// @Summary Follow a short link
// @Description 302 to the destination; the click is recorded asynchronously
// @Tags Redirect
// @Param alias path string true "alias"
// @Success 302
// @Failure 404 {object} map[string]string
// @Router /{alias} [get]
func (h *LinkHandler) Redirect(c *gin.Context) {
	destination, err := h.redirects.ResolveDestination(c.Request.Context(), c.Param("alias"), c.ClientIP())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "link not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "resolving link failed"})
		return
	}
	c.Redirect(http.StatusFound, destination)
}

type ResolveResponse struct {
	OriginalURL string `json:"original_url"`
	Name        string `json:"name"`
	Clicks      int64  `json:"clicks"`
}

// ResolveAlias godoc
// @Summary Resolve an alias to its destination and metadata
// @Description JSON variant of the redirect; the click is recorded asynchronously
// @Tags Redirect
// @Produce json
// @Param alias path string true "alias"
// @Success 200 {object} ResolveResponse
// @Failure 404 {object} map[string]string
// @Router /api/redirect/{alias} [get]
func (h *LinkHandler) ResolveAlias(c *gin.Context) {
	link, err := h.redirects.Resolve(c.Request.Context(), c.Param("alias"), c.ClientIP())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "link not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "resolving link failed"})
		return
	}
	c.JSON(http.StatusOK, ResolveResponse{
		OriginalURL: link.OriginalURL,
		Name:        link.Name,
		Clicks:      link.Clicks,
	})
}

// Analytics godoc
// @Summary Dashboard analytics snapshot
// @Tags Analytics
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} service.Summary
// @Router /api/analytics [get]
func (h *LinkHandler) Analytics(c *gin.Context) {
	summary, err := h.analytics.Summarize(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "computing analytics failed"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Stats godoc
// @Summary Link and click totals
// @Tags Analytics
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} service.UserStats
// @Router /api/stats [get]
func (h *LinkHandler) Stats(c *gin.Context) {
	stats, err := h.analytics.UserStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "computing stats failed"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// writeLinkError maps lifecycle errors onto the HTTP boundary.
func (h *LinkHandler) writeLinkError(c *gin.Context, err error) {
	var validationErr *security.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.Is(err, store.ErrAliasTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "alias already taken"})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "link not found"})
	case errors.Is(err, alias.ErrGenerationExhausted):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not allocate an alias, try again"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
