package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/velmark/marketops-backend/internal/services"
)

type AssetStatusHandler struct {
	svc services.AssetStatusService
}

func NewAssetStatusHandler(svc services.AssetStatusService) *AssetStatusHandler {
	return &AssetStatusHandler{svc: svc}
}

// GET /api/assets/:id/status
func (h *AssetStatusHandler) GetStatus(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}

	view, err := h.svc.GetStatus(c.Request.Context(), assetID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, view)
}

// PATCH /api/assets/:id/qc-status
func (h *AssetStatusHandler) UpdateQCStatus(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}

	var body struct {
		QCStatus  string  `json:"qc_status"`
		QCRemarks *string `json:"qc_remarks,omitempty"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}

	view, err := h.svc.UpdateQCStatus(c.Request.Context(), assetID, body.QCStatus, body.QCRemarks)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, view)
}

// PATCH /api/assets/:id/workflow-stage
func (h *AssetStatusHandler) UpdateWorkflowStage(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}

	var body struct {
		WorkflowStage string `json:"workflow_stage"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}

	view, err := h.svc.UpdateWorkflowStage(c.Request.Context(), assetID, body.WorkflowStage)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, view)
}

// PATCH /api/assets/:id/linking-status
func (h *AssetStatusHandler) UpdateLinkingStatus(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}

	var body struct {
		LinkingActive *bool `json:"linking_active"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.LinkingActive == nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}

	view, err := h.svc.UpdateLinkingStatus(c.Request.Context(), assetID, *body.LinkingActive)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, view)
}

// GET /api/assets/:id/status-history
func (h *AssetStatusHandler) GetStatusHistory(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	history, err := h.svc.GetStatusHistory(c.Request.Context(), assetID, limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"history": history})
}
