package handler

import (
	"net/http"

	"github.com/Nikjeremic/potrosnjaSmole/internal/apierror"
	"github.com/Nikjeremic/potrosnjaSmole/internal/dto"
	"github.com/Nikjeremic/potrosnjaSmole/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ConsumptionHandler struct{ svc service.ConsumptionService }

func NewConsumptionHandler(svc service.ConsumptionService) *ConsumptionHandler {
	return &ConsumptionHandler{svc: svc}
}

// Create godoc
// @Summary Evidentiranje potrošnje
// @Tags consumption
// @Accept json
// @Produce json
// @Param body body dto.CreateConsumptionRequest true "Potrošnja"
// @Success 201 {object} dto.ConsumptionResponse
// @Failure 400 {object} apierror.APIError
// @Router /consumption [post]
func (h *ConsumptionHandler) Create(c *gin.Context) {
	var req dto.CreateConsumptionRequest
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

func (h *ConsumptionHandler) List(c *gin.Context) {
	var filter dto.ConsumptionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Neispravni parametri upita"))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ConsumptionHandler) GetByID(c *gin.Context) {
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

func (h *ConsumptionHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Neispravan ID"))
		return
	}
	var req dto.UpdateConsumptionRequest
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

func (h *ConsumptionHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Neispravan ID"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id, actorID(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Zapis potrošnje je obrisan"})
}
