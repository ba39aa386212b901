package handler

import (
	"net/http"

	"github.com/Nikjeremic/potrosnjaSmole/internal/apierror"
	"github.com/Nikjeremic/potrosnjaSmole/internal/dto"
	"github.com/Nikjeremic/potrosnjaSmole/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DisposalsHandler struct{ svc service.DisposalService }

func NewDisposalsHandler(svc service.DisposalService) *DisposalsHandler {
	return &DisposalsHandler{svc: svc}
}

func (h *DisposalsHandler) Create(c *gin.Context) {
	var req dto.CreateDisposalRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req, actorID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *DisposalsHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DisposalsHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Neispravan ID"))
		return
	}
	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DisposalsHandler) ListByMaterialID(c *gin.Context) {
	materialID, err := uuid.Parse(c.Param("materialId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Neispravan ID"))
		return
	}
	resp, err := h.svc.ListByMaterialID(c.Request.Context(), materialID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DisposalsHandler) ListByReason(c *gin.Context) {
	resp, err := h.svc.ListByReason(c.Request.Context(), c.Param("reason"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DisposalsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Neispravan ID"))
		return
	}
	var req dto.UpdateDisposalRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req, actorID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DisposalsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Neispravan ID"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id, actorID(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rashodovanje je obrisano"})
}
