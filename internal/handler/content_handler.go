package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hengrui/sitecms-backend/internal/common"
	"github.com/hengrui/sitecms-backend/internal/domain"
	"github.com/hengrui/sitecms-backend/internal/middleware"
	"github.com/hengrui/sitecms-backend/internal/service"
	"github.com/hengrui/sitecms-backend/pkg/ginutil"
)

// ContentHandler handles HTTP requests for content versions and approvals
type ContentHandler struct {
	service service.ContentService
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(service service.ContentService) *ContentHandler {
	return &ContentHandler{service: service}
}

// CreateVersion godoc
// @Summary      Record a content version
// @Description  Snapshots the given body as the next version of a page section
// @Tags         content-versions
// @Accept       json
// @Produce      json
// @Param        id       path      int                    true  "Page content ID"
// @Param        request  body      domain.VersionRequest  true  "Version body"
// @Success      201  {object}  common.APIResponse{data=domain.ContentVersion}
// @Failure      400  {object}  common.APIResponse
// @Security     BearerAuth
// @Router       /admin/contents/{id}/versions [post]
func (h *ContentHandler) CreateVersion(c *gin.Context) {
	contentID, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid content ID", err)
		return
	}

	var req domain.VersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	body := &domain.VersionBody{
		ContentZh:   req.ContentZh,
		ContentEn:   req.ContentEn,
		ContentRu:   req.ContentRu,
		ContentType: req.ContentType,
		MetaData:    req.MetaData,
	}

	version, err := h.service.CreateVersion(contentID, body, middleware.GetUserID(c), req.ChangeDescription, req.ChangeType)
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to record version", err)
		return
	}

	middleware.CountVersionCreated()
	common.CreatedResponse(c, version)
}

// ListVersions godoc
// @Summary      List version history
// @Description  Returns all versions of a page section, newest first
// @Tags         content-versions
// @Produce      json
// @Param        id  path  int  true  "Page content ID"
// @Success      200  {object}  common.APIResponse{data=[]domain.ContentVersion}
// @Failure      400  {object}  common.APIResponse
// @Security     BearerAuth
// @Router       /admin/contents/{id}/versions [get]
func (h *ContentHandler) ListVersions(c *gin.Context) {
	contentID, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid content ID", err)
		return
	}

	versions, err := h.service.ListVersions(contentID)
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to fetch versions", err)
		return
	}

	common.SuccessResponse(c, versions, nil)
}

// GetVersion godoc
// @Summary      Get a content version
// @Tags         content-versions
// @Produce      json
// @Param        version_id  path  string  true  "Version ID"
// @Success      200  {object}  common.APIResponse{data=domain.ContentVersion}
// @Failure      404  {object}  common.APIResponse
// @Security     BearerAuth
// @Router       /admin/versions/{version_id} [get]
func (h *ContentHandler) GetVersion(c *gin.Context) {
	version, err := h.service.GetVersion(c.Param("version_id"))
	if err != nil {
		if errors.Is(err, common.ErrVersionNotFound) {
			common.ErrorResponse(c, 404, "Version not found", err)
			return
		}
		common.ErrorResponse(c, 500, "Failed to fetch version", err)
		return
	}

	common.SuccessResponse(c, version, nil)
}

// RestoreVersion godoc
// @Summary      Restore a content version
// @Description  Appends a new version mirroring the old snapshot and updates the live page content
// @Tags         content-versions
// @Produce      json
// @Param        version_id  path  string  true  "Version ID"
// @Success      201  {object}  common.APIResponse{data=domain.ContentVersion}
// @Failure      404  {object}  common.APIResponse
// @Security     BearerAuth
// @Router       /admin/versions/{version_id}/restore [post]
func (h *ContentHandler) RestoreVersion(c *gin.Context) {
	restored, err := h.service.RestoreVersion(c.Param("version_id"), middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, common.ErrVersionNotFound) {
			common.ErrorResponse(c, 404, "Version not found", err)
			return
		}
		common.ErrorResponse(c, 500, "Failed to restore version", err)
		return
	}

	middleware.CountVersionCreated()
	common.CreatedResponse(c, restored)
}

// SubmitApproval godoc
// @Summary      Submit a version for approval
// @Tags         content-approvals
// @Accept       json
// @Produce      json
// @Param        request  body  domain.SubmitApprovalRequest  true  "Content and version to review"
// @Success      201  {object}  common.APIResponse{data=domain.ContentApproval}
// @Failure      400  {object}  common.APIResponse
// @Failure      403  {object}  common.APIResponse
// @Security     BearerAuth
// @Router       /admin/approvals [post]
func (h *ContentHandler) SubmitApproval(c *gin.Context) {
	var req domain.SubmitApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	approval, err := h.service.SubmitForApproval(req.ContentID, req.VersionID, middleware.GetUserID(c))
	if err != nil {
		h.approvalError(c, err, "Failed to submit for approval")
		return
	}

	common.CreatedResponse(c, approval)
}

// GetApproval godoc
// @Summary      Get an approval record
// @Tags         content-approvals
// @Produce      json
// @Param        approval_id  path  string  true  "Approval ID"
// @Success      200  {object}  common.APIResponse{data=domain.ContentApproval}
// @Failure      404  {object}  common.APIResponse
// @Security     BearerAuth
// @Router       /admin/approvals/{approval_id} [get]
func (h *ContentHandler) GetApproval(c *gin.Context) {
	approval, err := h.service.GetApproval(c.Param("approval_id"))
	if err != nil {
		h.approvalError(c, err, "Failed to fetch approval")
		return
	}

	common.SuccessResponse(c, approval, nil)
}

// ListApprovals godoc
// @Summary      List approvals for a page section
// @Tags         content-approvals
// @Produce      json
// @Param        id  path  int  true  "Page content ID"
// @Success      200  {object}  common.APIResponse{data=[]domain.ContentApproval}
// @Failure      400  {object}  common.APIResponse
// @Security     BearerAuth
// @Router       /admin/contents/{id}/approvals [get]
func (h *ContentHandler) ListApprovals(c *gin.Context) {
	contentID, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid content ID", err)
		return
	}

	approvals, err := h.service.ListApprovals(contentID)
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to fetch approvals", err)
		return
	}

	common.SuccessResponse(c, approvals, nil)
}

// ListPendingApprovals godoc
// @Summary      Pending approval worklist
// @Description  Returns all pending approvals joined with their version snapshots
// @Tags         content-approvals
// @Produce      json
// @Success      200  {object}  common.APIResponse{data=[]domain.PendingApproval}
// @Security     BearerAuth
// @Router       /admin/approvals/pending [get]
func (h *ContentHandler) ListPendingApprovals(c *gin.Context) {
	pending, err := h.service.ListPendingApprovals()
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to fetch pending approvals", err)
		return
	}

	common.SuccessResponse(c, pending, nil)
}

// ApproveContent godoc
// @Summary      Approve pending content
// @Tags         content-approvals
// @Accept       json
// @Produce      json
// @Param        approval_id  path  string                         true   "Approval ID"
// @Param        request      body  domain.ResolveApprovalRequest  false  "Reviewer notes"
// @Success      200  {object}  common.APIResponse{data=domain.ContentApproval}
// @Failure      403  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Failure      409  {object}  common.APIResponse
// @Security     BearerAuth
// @Router       /admin/approvals/{approval_id}/approve [post]
func (h *ContentHandler) ApproveContent(c *gin.Context) {
	h.resolveApproval(c, h.service.Approve)
}

// RejectContent godoc
// @Summary      Reject pending content
// @Tags         content-approvals
// @Accept       json
// @Produce      json
// @Param        approval_id  path  string                         true   "Approval ID"
// @Param        request      body  domain.ResolveApprovalRequest  false  "Reviewer notes"
// @Success      200  {object}  common.APIResponse{data=domain.ContentApproval}
// @Failure      403  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Failure      409  {object}  common.APIResponse
// @Security     BearerAuth
// @Router       /admin/approvals/{approval_id}/reject [post]
func (h *ContentHandler) RejectContent(c *gin.Context) {
	h.resolveApproval(c, h.service.Reject)
}

func (h *ContentHandler) resolveApproval(c *gin.Context, resolve func(approvalID, approverID, notes string) (*domain.ContentApproval, error)) {
	var req domain.ResolveApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	approval, err := resolve(c.Param("approval_id"), middleware.GetUserID(c), req.Notes)
	if err != nil {
		h.approvalError(c, err, "Failed to resolve approval")
		return
	}

	common.SuccessResponse(c, approval, nil)
}

func (h *ContentHandler) approvalError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, common.ErrApprovalNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "Approval not found", err)
	case errors.Is(err, common.ErrApprovalResolved):
		common.ErrorResponse(c, http.StatusConflict, "Approval already resolved", err)
	case errors.Is(err, common.ErrPermissionDenied):
		common.ErrorResponse(c, http.StatusForbidden, "Permission denied", err)
	default:
		common.ErrorResponse(c, http.StatusInternalServerError, fallback, err)
	}
}
