package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/hengrui/sitecms-backend/internal/common"
	"github.com/hengrui/sitecms-backend/internal/domain"
	"github.com/hengrui/sitecms-backend/internal/service"
	"github.com/hengrui/sitecms-backend/pkg/ginutil"
)

// InquiryHandler handles HTTP requests for contact inquiries
type InquiryHandler struct {
	service service.InquiryService
}

// NewInquiryHandler creates a new InquiryHandler
func NewInquiryHandler(service service.InquiryService) *InquiryHandler {
	return &InquiryHandler{service: service}
}

// SubmitInquiry godoc
// @Summary      Submit a contact inquiry
// @Tags         inquiries
// @Accept       json
// @Produce      json
// @Param        request  body  domain.InquiryRequest  true  "Inquiry"
// @Success      201  {object}  common.APIResponse{data=domain.Inquiry}
// @Failure      400  {object}  common.APIResponse
// @Router       /inquiries [post]
func (h *InquiryHandler) SubmitInquiry(c *gin.Context) {
	var req domain.InquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	inquiry, err := h.service.Submit(&req, c.ClientIP())
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to submit inquiry", err)
		return
	}

	common.CreatedResponse(c, inquiry)
}

// ListInquiries godoc
// @Summary      Admin inquiry list
// @Tags         inquiries
// @Produce      json
// @Param        status  query  string  false  "Status filter (new, read, closed, spam)"
// @Param        page    query  int     false  "Page number"
// @Param        limit   query  int     false  "Items per page"
// @Success      200  {object}  common.APIResponse{data=[]domain.Inquiry}
// @Security     BearerAuth
// @Router       /admin/inquiries [get]
func (h *InquiryHandler) ListInquiries(c *gin.Context) {
	page := ginutil.QueryInt(c, "page", 1)
	limit := ginutil.QueryInt(c, "limit", 20)

	inquiries, meta, err := h.service.List(c.Query("status"), page, limit)
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to fetch inquiries", err)
		return
	}

	common.SuccessResponse(c, inquiries, meta)
}

// UpdateInquiryStatus godoc
// @Summary      Update inquiry status
// @Tags         inquiries
// @Accept       json
// @Produce      json
// @Param        id       path  int  true  "Inquiry ID"
// @Param        request  body  object{status=string}  true  "New status"
// @Success      200  {object}  common.APIResponse
// @Failure      400  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Security     BearerAuth
// @Router       /admin/inquiries/{id}/status [patch]
func (h *InquiryHandler) UpdateInquiryStatus(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid inquiry ID", err)
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	if err := h.service.UpdateStatus(id, req.Status); err != nil {
		switch {
		case errors.Is(err, common.ErrInvalidInput):
			common.ErrorResponse(c, 400, "Invalid status", err)
		case errors.Is(err, common.ErrInquiryNotFound):
			common.ErrorResponse(c, 404, "Inquiry not found", err)
		default:
			common.ErrorResponse(c, 500, "Failed to update inquiry", err)
		}
		return
	}

	common.SuccessResponse(c, gin.H{"message": "Inquiry updated"}, nil)
}
