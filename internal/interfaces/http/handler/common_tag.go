package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	tagapp "github.com/workhive/todos-backend/internal/application/tag"
)

// CommonTagHandler handles the operator surface for shared tags. Every route
// sits behind the admin-key middleware.
type CommonTagHandler struct {
	BaseHandler
	commonTagService *tagapp.CommonTagService
	adminKey         gin.HandlerFunc
}

// NewCommonTagHandler creates a new CommonTagHandler
func NewCommonTagHandler(commonTagService *tagapp.CommonTagService, adminKey gin.HandlerFunc) *CommonTagHandler {
	return &CommonTagHandler{
		commonTagService: commonTagService,
		adminKey:         adminKey,
	}
}

// RegisterRoutes registers common-tag routes on the given group
func (h *CommonTagHandler) RegisterRoutes(rg *gin.RouterGroup) {
	commonTags := rg.Group("/common-tags")
	commonTags.Use(h.adminKey)
	{
		commonTags.GET("", h.List)
		commonTags.GET("/all", h.ListAll)
		commonTags.POST("", h.Create)
		commonTags.GET("/:id", h.GetByID)
		commonTags.PUT("/:id", h.Rename)
		commonTags.DELETE("/:id", h.Delete)
	}
}

// List returns all common tags
func (h *CommonTagHandler) List(c *gin.Context) {
	tags, err := h.commonTagService.ListCommon(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, tags)
}

// ListAll returns every tag in the system, owned tags included
func (h *CommonTagHandler) ListAll(c *gin.Context) {
	tags, err := h.commonTagService.ListAll(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, tags)
}

// GetByID returns a common tag
func (h *CommonTagHandler) GetByID(c *gin.Context) {
	tagID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tag ID format")
		return
	}

	tag, err := h.commonTagService.GetCommonTag(c.Request.Context(), tagID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, tag)
}

// Create creates a tag visible to every user
func (h *CommonTagHandler) Create(c *gin.Context) {
	var req tagapp.CreateCommonTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	tag, err := h.commonTagService.CreateCommonTag(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, tag)
}

// Rename renames a common tag
func (h *CommonTagHandler) Rename(c *gin.Context) {
	tagID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tag ID format")
		return
	}

	var req tagapp.RenameTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	tag, err := h.commonTagService.RenameCommonTag(c.Request.Context(), tagID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, tag)
}

// Delete deletes a common tag
func (h *CommonTagHandler) Delete(c *gin.Context) {
	tagID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tag ID format")
		return
	}

	if err := h.commonTagService.DeleteCommonTag(c.Request.Context(), tagID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
