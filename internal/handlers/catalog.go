package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/velmark/marketops-backend/internal/services"
)

type CatalogHandler struct {
	svc services.CatalogService
}

func NewCatalogHandler(svc services.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// GET /api/services
func (h *CatalogHandler) ListServices(c *gin.Context) {
	servicesList, err := h.svc.ListServices(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"services": servicesList})
}

// GET /api/services/:id/sub-services
func (h *CatalogHandler) ListSubServices(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}

	subServices, err := h.svc.ListSubServices(c.Request.Context(), serviceID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"sub_services": subServices})
}

// POST /api/services
func (h *CatalogHandler) UpsertService(c *gin.Context) {
	var body struct {
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}

	service, err := h.svc.UpsertService(c.Request.Context(), body.Name, body.Description)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"service": service})
}

// POST /api/services/:id/sub-services
func (h *CatalogHandler) UpsertSubService(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	var body struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}

	sub, err := h.svc.UpsertSubService(c.Request.Context(), serviceID, body.Name)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"sub_service": sub})
}
