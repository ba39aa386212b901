package handler

import (
	"net/http"

	"github.com/Nikjeremic/potrosnjaSmole/internal/apierror"
	"github.com/Nikjeremic/potrosnjaSmole/internal/dto"
	"github.com/Nikjeremic/potrosnjaSmole/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InventoryHandler struct{ svc service.InventoryService }

func NewInventoryHandler(svc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

func (h *InventoryHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventoryHandler) GetByMaterialID(c *gin.Context) {
	materialID, err := uuid.Parse(c.Param("materialId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Neispravan ID"))
		return
	}
	resp, err := h.svc.GetByMaterialID(c.Request.Context(), materialID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventoryHandler) CreateForMaterial(c *gin.Context) {
	materialID, err := uuid.Parse(c.Param("materialId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Neispravan ID"))
		return
	}
	var req dto.CreateInventoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateForMaterial(c.Request.Context(), materialID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *InventoryHandler) UpdateByMaterialID(c *gin.Context) {
	materialID, err := uuid.Parse(c.Param("materialId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Neispravan ID"))
		return
	}
	var req dto.UpdateInventoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateByMaterialID(c.Request.Context(), materialID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventoryHandler) DeleteByMaterialID(c *gin.Context) {
	materialID, err := uuid.Parse(c.Param("materialId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Neispravan ID"))
		return
	}
	if err := h.svc.DeleteByMaterialID(c.Request.Context(), materialID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Inventar je obrisan"})
}

func (h *InventoryHandler) DeleteByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Neispravan ID"))
		return
	}
	if err := h.svc.DeleteByID(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Inventar je obrisan"})
}
