package handler

import (
	"github.com/gin-gonic/gin"
	directoryapp "github.com/tsvs/backend/internal/application/directory"
)

// DirectoryHandler serves one reference list, regions or departments
type DirectoryHandler struct {
	BaseHandler
	service *directoryapp.Service
}

// NewDirectoryHandler creates a handler bound to one directory kind
func NewDirectoryHandler(service *directoryapp.Service) *DirectoryHandler {
	return &DirectoryHandler{service: service}
}

// RegisterRoutes mounts the directory routes on group
func (h *DirectoryHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("", h.Create)
	group.GET("", h.List)
	group.GET("/active", h.ListActive)
	group.GET("/:id", h.GetByID)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
	group.POST("/:id/disable", h.Disable)
}

// Create godoc
// @Summary      Create a directory entry
// @Tags         directory
// @Accept       json
// @Produce      json
// @Success      201 {object} dto.Response{data=directoryapp.EntryDTO}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /regions [post]
// @Router       /departments [post]
func (h *DirectoryHandler) Create(c *gin.Context) {
	var req directoryapp.CreateEntryInput
	if !h.bindJSON(c, &req) {
		return
	}

	entry, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, entry)
}

// List returns every entry
func (h *DirectoryHandler) List(c *gin.Context) {
	entries, err := h.service.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// ListActive returns active entries only
func (h *DirectoryHandler) ListActive(c *gin.Context) {
	entries, err := h.service.ListActive(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// GetByID returns one entry
func (h *DirectoryHandler) GetByID(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	entry, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

// Update replaces title and is_active
func (h *DirectoryHandler) Update(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req directoryapp.UpdateEntryInput
	if !h.bindJSON(c, &req) {
		return
	}

	entry, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

// Delete removes an entry
func (h *DirectoryHandler) Delete(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Disable deactivates an entry
func (h *DirectoryHandler) Disable(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.service.Disable(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
