package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	licenseapp "github.com/tsvs/backend/internal/application/license"
	"github.com/tsvs/backend/internal/domain/shared"
	"github.com/tsvs/backend/internal/interfaces/http/dto"
	"github.com/tsvs/backend/internal/interfaces/http/middleware"
)

// licenseUploadField is the multipart field carrying a license file
const licenseUploadField = "file"

// LicenseHandler serves the license registry
type LicenseHandler struct {
	BaseHandler
	regions     *licenseapp.LookupService
	quantities  *licenseapp.LookupService
	items       *licenseapp.ItemService
	attachments *licenseapp.AttachmentService
}

// NewLicenseHandler creates a new LicenseHandler
func NewLicenseHandler(
	regions *licenseapp.LookupService,
	quantities *licenseapp.LookupService,
	items *licenseapp.ItemService,
	attachments *licenseapp.AttachmentService,
) *LicenseHandler {
	return &LicenseHandler{
		regions:     regions,
		quantities:  quantities,
		items:       items,
		attachments: attachments,
	}
}

// ListItemsQuery holds the registry list query string
type ListItemsQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=200"`
	RegionID string `form:"region_id" binding:"omitempty,uuid"`
	Active   *bool  `form:"active"`
	Query    string `form:"q" binding:"omitempty,max=255"`
}

// RegisterRoutes mounts the license routes on group
func (h *LicenseHandler) RegisterRoutes(group *gin.RouterGroup) {
	registerLookup(group.Group("/regions"), &h.BaseHandler, h.regions)
	registerLookup(group.Group("/quantities"), &h.BaseHandler, h.quantities)

	items := group.Group("/items")
	{
		items.POST("", h.CreateItem)
		items.GET("", h.ListItems)
		items.GET("/:id", h.GetItem)
		items.PUT("/:id", h.UpdateItem)
		items.DELETE("/:id", h.DeleteItem)
		items.POST("/:id/files", h.UploadFile)
		items.GET("/:id/files", h.ListFiles)
	}

	group.DELETE("/files/:id", h.DeleteFile)
}

// registerLookup mounts CRUD routes for a region or quantity list
func registerLookup(group *gin.RouterGroup, h *BaseHandler, svc *licenseapp.LookupService) {
	group.POST("", func(c *gin.Context) {
		var req licenseapp.LookupInput
		if !h.bindJSON(c, &req) {
			return
		}
		lookup, err := svc.Create(c.Request.Context(), req)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Created(c, lookup)
	})

	group.GET("", func(c *gin.Context) {
		lookups, err := svc.List(c.Request.Context())
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, lookups)
	})

	group.GET("/:id", func(c *gin.Context) {
		id, ok := h.parseIDParam(c, "id")
		if !ok {
			return
		}
		lookup, err := svc.GetByID(c.Request.Context(), id)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, lookup)
	})

	group.PUT("/:id", func(c *gin.Context) {
		id, ok := h.parseIDParam(c, "id")
		if !ok {
			return
		}
		var req licenseapp.LookupInput
		if !h.bindJSON(c, &req) {
			return
		}
		lookup, err := svc.Update(c.Request.Context(), id, req)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, lookup)
	})

	group.DELETE("/:id", func(c *gin.Context) {
		id, ok := h.parseIDParam(c, "id")
		if !ok {
			return
		}
		lookup, err := svc.Delete(c.Request.Context(), id)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, lookup)
	})
}

// CreateItem godoc
// @Summary      Register a license
// @Tags         license
// @Accept       json
// @Produce      json
// @Success      201 {object} dto.Response{data=licenseapp.ItemDTO}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /license/items [post]
func (h *LicenseHandler) CreateItem(c *gin.Context) {
	var req licenseapp.ItemInput
	if !h.bindJSON(c, &req) {
		return
	}
	item, err := h.items.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// ListItems godoc
// @Summary      Page through the registry
// @Tags         license
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        region_id query string false "Region filter"
// @Param        active query bool false "Active filter"
// @Param        q query string false "Matches name_entity, full_name or contract_number"
// @Security     BearerAuth
// @Router       /license/items [get]
func (h *LicenseHandler) ListItems(c *gin.Context) {
	var q ListItemsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filter := shared.DefaultFilter()
	if q.Page > 0 {
		filter.Page = q.Page
	}
	if q.PageSize > 0 {
		filter.PageSize = q.PageSize
	}
	filter.Search = q.Query

	input := licenseapp.ListItemsInput{Filter: filter, Active: q.Active}
	if q.RegionID != "" {
		regionID := uuid.MustParse(q.RegionID)
		input.RegionID = &regionID
	}

	list, err := h.items.List(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, list.Items, list.Total, list.Page, list.PageSize)
}

func (h *LicenseHandler) GetItem(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	item, err := h.items.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

func (h *LicenseHandler) UpdateItem(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	var req licenseapp.ItemInput
	if !h.bindJSON(c, &req) {
		return
	}
	item, err := h.items.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// DeleteItem soft deletes a license and returns its final state
func (h *LicenseHandler) DeleteItem(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	item, err := h.items.Delete(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// UploadFile godoc
// @Summary      Attach a file to a license
// @Tags         license
// @Accept       multipart/form-data
// @Param        file formData file true "Attachment"
// @Success      201 {object} dto.Response{data=licenseapp.AttachmentDTO}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /license/items/{id}/files [post]
func (h *LicenseHandler) UploadFile(c *gin.Context) {
	licenseID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	fh, err := c.FormFile(licenseUploadField)
	if err != nil {
		if c.Request.MultipartForm == nil {
			h.multipartError(c, err)
			return
		}
		h.ErrorWithCode(c, dto.ErrCodeInvalidInput, "No file uploaded")
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.ErrorWithCode(c, dto.ErrCodeUploadFailed, "Failed to read "+fh.Filename)
		return
	}
	defer f.Close()

	attachment, err := h.attachments.Upload(c.Request.Context(), licenseID, licenseapp.UploadFile{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, attachment)
}

func (h *LicenseHandler) ListFiles(c *gin.Context) {
	licenseID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	files, err := h.attachments.List(c.Request.Context(), licenseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, files)
}

// DeleteFile removes the stored object and its row
func (h *LicenseHandler) DeleteFile(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.attachments.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
