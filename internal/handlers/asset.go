package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/velmark/marketops-backend/internal/services"
)

type AssetHandler struct {
	svc services.AssetService
}

func NewAssetHandler(svc services.AssetService) *AssetHandler {
	return &AssetHandler{svc: svc}
}

// POST /api/assets
func (h *AssetHandler) Create(c *gin.Context) {
	var body services.CreateAssetInput
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}

	asset, err := h.svc.Create(c.Request.Context(), body)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"asset": asset})
}

// GET /api/assets/:id
func (h *AssetHandler) Get(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}

	asset, err := h.svc.Get(c.Request.Context(), assetID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"asset": asset})
}

// GET /api/assets
func (h *AssetHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	assets, err := h.svc.List(c.Request.Context(), limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"assets": assets})
}
