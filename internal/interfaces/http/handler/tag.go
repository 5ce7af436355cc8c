package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	tagapp "github.com/workhive/todos-backend/internal/application/tag"
)

// TagHandler handles tag-related API endpoints
type TagHandler struct {
	BaseHandler
	tagService       *tagapp.TagService
	analyticsService *tagapp.TagAnalyticsService
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(tagService *tagapp.TagService, analyticsService *tagapp.TagAnalyticsService) *TagHandler {
	return &TagHandler{
		tagService:       tagService,
		analyticsService: analyticsService,
	}
}

// RegisterRoutes registers tag routes on the given group
func (h *TagHandler) RegisterRoutes(rg *gin.RouterGroup) {
	tags := rg.Group("/tags")
	{
		tags.GET("", h.List)
		tags.POST("", h.Create)
		tags.GET("/:id", h.GetByID)
		tags.PUT("/:id", h.Rename)
		tags.DELETE("/:id", h.Delete)
		tags.POST("/analytics", h.AnalyzeEfforts)
	}
}

// List returns every tag visible to the caller: common tags, the managers'
// team tags, and the caller's own tags
func (h *TagHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tags, err := h.tagService.Resolve(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, tags)
}

// GetByID returns a single tag
func (h *TagHandler) GetByID(c *gin.Context) {
	tagID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tag ID format")
		return
	}

	tag, err := h.tagService.GetTag(c.Request.Context(), tagID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, tag)
}

// Create creates a tag owned by the caller
func (h *TagHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var req tagapp.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	tag, err := h.tagService.CreateTag(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, tag)
}

// Rename renames a tag owned by the caller
func (h *TagHandler) Rename(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

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

	tag, err := h.tagService.RenameTag(c.Request.Context(), userID, tagID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, tag)
}

// Delete deletes a tag owned by the caller
func (h *TagHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tagID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tag ID format")
		return
	}

	if err := h.tagService.DeleteTag(c.Request.Context(), userID, tagID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// AnalyzeEfforts computes per-tag effort rollups for the caller over a date
// window
func (h *TagHandler) AnalyzeEfforts(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var req tagapp.AnalyzeEffortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.analyticsService.AnalyzeEfforts(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}
