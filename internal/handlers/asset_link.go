package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/velmark/marketops-backend/internal/services"
)

type AssetLinkHandler struct {
	svc services.AssetLinkingService
}

func NewAssetLinkHandler(svc services.AssetLinkingService) *AssetLinkHandler {
	return &AssetLinkHandler{svc: svc}
}

type linkBody struct {
	ServiceID    string  `json:"service_id"`
	SubServiceID *string `json:"sub_service_id,omitempty"`
}

func (b linkBody) ids() (uuid.UUID, *uuid.UUID, error) {
	serviceID, err := uuid.Parse(b.ServiceID)
	if err != nil {
		return uuid.Nil, nil, err
	}
	if b.SubServiceID == nil {
		return serviceID, nil, nil
	}
	subServiceID, err := uuid.Parse(*b.SubServiceID)
	if err != nil {
		return uuid.Nil, nil, err
	}
	return serviceID, &subServiceID, nil
}

// POST /api/assets/:id/links/static
func (h *AssetLinkHandler) LinkStatic(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	var body linkBody
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	serviceID, subServiceID, err := body.ids()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}

	link, err := h.svc.LinkStatic(c.Request.Context(), assetID, serviceID, subServiceID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"link": link})
}

// POST /api/assets/:id/links
func (h *AssetLinkHandler) LinkDynamic(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	var body linkBody
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	serviceID, subServiceID, err := body.ids()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}

	link, err := h.svc.LinkDynamic(c.Request.Context(), assetID, serviceID, subServiceID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"link": link})
}

// DELETE /api/assets/:id/links
func (h *AssetLinkHandler) Unlink(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	var body linkBody
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	serviceID, subServiceID, err := body.ids()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}

	if err := h.svc.Unlink(c.Request.Context(), assetID, serviceID, subServiceID); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"unlinked": true})
}

// GET /api/assets/:id/links/static
func (h *AssetLinkHandler) GetAssetStaticLinks(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}

	links, err := h.svc.GetAssetStaticLinks(c.Request.Context(), assetID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"static_links": links})
}

// GET /api/assets/:id/links/is-static?service_id=...&sub_service_id=...
func (h *AssetLinkHandler) IsStatic(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	serviceID, err := uuid.Parse(c.Query("service_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	var subServiceID *uuid.UUID
	if raw := c.Query("sub_service_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_argument", err)
			return
		}
		subServiceID = &id
	}

	isStatic, err := h.svc.IsStatic(c.Request.Context(), assetID, serviceID, subServiceID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"is_static": isStatic})
}

// GET /api/services/:id/assets?sub_service_id=...
func (h *AssetLinkHandler) GetLinkedAssets(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	var subServiceID *uuid.UUID
	if raw := c.Query("sub_service_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_argument", err)
			return
		}
		subServiceID = &id
	}

	assets, err := h.svc.GetLinkedAssets(c.Request.Context(), serviceID, subServiceID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"assets": assets})
}

// GET /api/services/:id/assets/count
func (h *AssetLinkHandler) CountLinkedAssets(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}

	count, err := h.svc.CountLinkedAssets(c.Request.Context(), serviceID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"count": count})
}
