package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/hengrui/sitecms-backend/internal/common"
	"github.com/hengrui/sitecms-backend/internal/domain"
	"github.com/hengrui/sitecms-backend/internal/middleware"
	"github.com/hengrui/sitecms-backend/internal/service"
	"github.com/hengrui/sitecms-backend/pkg/ginutil"
)

// PageContentHandler handles HTTP requests for live page content
type PageContentHandler struct {
	service service.PageContentService
}

// NewPageContentHandler creates a new PageContentHandler
func NewPageContentHandler(service service.PageContentService) *PageContentHandler {
	return &PageContentHandler{service: service}
}

// GetPage godoc
// @Summary      Page sections
// @Description  Returns all active sections of a page for the public site
// @Tags         pages
// @Produce      json
// @Param        page_key  path  string  true  "Page key (home, about, contact, ...)"
// @Success      200  {object}  common.APIResponse{data=[]domain.PageContent}
// @Router       /pages/{page_key} [get]
func (h *PageContentHandler) GetPage(c *gin.Context) {
	contents, err := h.service.GetPage(c.Request.Context(), c.Param("page_key"))
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to fetch page content", err)
		return
	}

	common.SuccessResponse(c, contents, nil)
}

// GetSection godoc
// @Summary      Single page section
// @Tags         pages
// @Produce      json
// @Param        page_key     path  string  true  "Page key"
// @Param        section_key  path  string  true  "Section key"
// @Success      200  {object}  common.APIResponse{data=domain.PageContent}
// @Failure      404  {object}  common.APIResponse
// @Router       /pages/{page_key}/{section_key} [get]
func (h *PageContentHandler) GetSection(c *gin.Context) {
	content, err := h.service.GetSection(c.Param("page_key"), c.Param("section_key"))
	if err != nil {
		if errors.Is(err, common.ErrContentNotFound) {
			common.ErrorResponse(c, 404, "Section not found", err)
			return
		}
		common.ErrorResponse(c, 500, "Failed to fetch section", err)
		return
	}

	common.SuccessResponse(c, content, nil)
}

// UpsertContent godoc
// @Summary      Create or update a page section
// @Description  Writes the live projection and records a content version
// @Tags         pages
// @Accept       json
// @Produce      json
// @Param        request  body  domain.PageContentRequest  true  "Section content"
// @Success      200  {object}  common.APIResponse{data=domain.PageContent}
// @Failure      400  {object}  common.APIResponse
// @Security     BearerAuth
// @Router       /admin/pages [put]
func (h *PageContentHandler) UpsertContent(c *gin.Context) {
	var req domain.PageContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	content, err := h.service.Upsert(c.Request.Context(), &req, middleware.GetUserID(c))
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to save page content", err)
		return
	}

	middleware.CountVersionCreated()
	common.SuccessResponse(c, content, nil)
}

// DeleteContent godoc
// @Summary      Delete a page section
// @Tags         pages
// @Produce      json
// @Param        id  path  int  true  "Page content ID"
// @Success      200  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Security     BearerAuth
// @Router       /admin/pages/{id} [delete]
func (h *PageContentHandler) DeleteContent(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid content ID", err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, common.ErrContentNotFound) {
			common.ErrorResponse(c, 404, "Content not found", err)
			return
		}
		common.ErrorResponse(c, 500, "Failed to delete content", err)
		return
	}

	common.SuccessResponse(c, gin.H{"message": "Content deleted"}, nil)
}
