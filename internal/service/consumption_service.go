package service

import (
	"context"
	"time"

	"github.com/Nikjeremic/potrosnjaSmole/internal/dto"
	"github.com/Nikjeremic/potrosnjaSmole/internal/model"
	"github.com/Nikjeremic/potrosnjaSmole/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConsumptionService records production usage. The caller provides a resin
// and a usage count; the material, weight per usage and total consumption
// are resolved from the resin and frozen onto the record.
type ConsumptionService interface {
	Create(ctx context.Context, req dto.CreateConsumptionRequest, actor uuid.UUID) (*dto.ConsumptionResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ConsumptionResponse, error)
	List(ctx context.Context, filter dto.ConsumptionFilter) ([]dto.ConsumptionResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateConsumptionRequest, actor uuid.UUID) (*dto.ConsumptionResponse, error)
	Delete(ctx context.Context, id uuid.UUID, actor uuid.UUID) error
}

type consumptionService struct {
	consumptions repository.ConsumptionRepository
	resins       repository.ResinRepository
	ledger       *StockLedger
}

func NewConsumptionService(consumptions repository.ConsumptionRepository, resins repository.ResinRepository, ledger *StockLedger) ConsumptionService {
	return &consumptionService{consumptions: consumptions, resins: resins, ledger: ledger}
}

func (s *consumptionService) Create(ctx context.Context, req dto.CreateConsumptionRequest, actor uuid.UUID) (*dto.ConsumptionResponse, error) {
	resinID, err := uuid.Parse(req.ResinID)
	if err != nil {
		return nil, notFound(msgResinNotFound)
	}
	resin, err := s.resins.FindByID(ctx, resinID)
	if err != nil {
		return nil, notFound(msgResinNotFound)
	}

	total := resin.Weight.Mul(req.UsageCount)
	c := &model.Consumption{
		Date:             req.Date,
		Shift:            req.Shift,
		EmployeeName:     req.EmployeeName,
		ResinID:          resin.ID,
		ResinName:        resin.Name,
		MaterialID:       resin.MaterialID,
		MaterialName:     resin.MaterialName,
		ResinWeight:      resin.Weight,
		UsageCount:       req.UsageCount,
		TotalConsumption: total,
	}

	err = s.ledger.ApplyCreate(ctx, KindConsumption, resin.MaterialID, total, actor, func(tx *gorm.DB) error {
		return s.consumptions.CreateTx(tx, c)
	})
	if err != nil {
		return nil, err
	}
	return consumptionToResponse(c), nil
}

func (s *consumptionService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ConsumptionResponse, error) {
	c, err := s.consumptions.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(msgConsumptionNotFound)
	}
	return consumptionToResponse(c), nil
}

func (s *consumptionService) List(ctx context.Context, filter dto.ConsumptionFilter) ([]dto.ConsumptionResponse, error) {
	rows, err := s.consumptions.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ConsumptionResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, *consumptionToResponse(&rows[i]))
	}
	return resp, nil
}

func (s *consumptionService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateConsumptionRequest, actor uuid.UUID) (*dto.ConsumptionResponse, error) {
	c, err := s.consumptions.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(msgConsumptionNotFound)
	}

	oldMaterialID := c.MaterialID
	oldTotal := c.TotalConsumption

	if req.Date != nil {
		c.Date = *req.Date
	}
	if req.Shift != nil {
		c.Shift = *req.Shift
	}
	if req.EmployeeName != nil {
		c.EmployeeName = *req.EmployeeName
	}
	// Switching resin re-freezes the resin-derived fields, possibly moving
	// the record to another material.
	if req.ResinID != nil {
		resinID, err := uuid.Parse(*req.ResinID)
		if err != nil {
			return nil, notFound(msgResinNotFound)
		}
		resin, err := s.resins.FindByID(ctx, resinID)
		if err != nil {
			return nil, notFound(msgResinNotFound)
		}
		c.ResinID = resin.ID
		c.ResinName = resin.Name
		c.MaterialID = resin.MaterialID
		c.MaterialName = resin.MaterialName
		c.ResinWeight = resin.Weight
	}
	if req.UsageCount != nil {
		c.UsageCount = *req.UsageCount
	}
	c.TotalConsumption = c.ResinWeight.Mul(c.UsageCount)

	err = s.ledger.ApplyUpdate(ctx, KindConsumption, oldMaterialID, c.MaterialID, oldTotal, c.TotalConsumption, actor, func(tx *gorm.DB) error {
		return s.consumptions.UpdateTx(tx, c)
	})
	if err != nil {
		return nil, err
	}
	return consumptionToResponse(c), nil
}

func (s *consumptionService) Delete(ctx context.Context, id uuid.UUID, actor uuid.UUID) error {
	c, err := s.consumptions.FindByID(ctx, id)
	if err != nil {
		return notFound(msgConsumptionNotFound)
	}
	return s.ledger.ApplyDelete(ctx, KindConsumption, c.MaterialID, c.TotalConsumption, actor, func(tx *gorm.DB) error {
		return s.consumptions.DeleteTx(tx, id)
	})
}

func consumptionToResponse(c *model.Consumption) *dto.ConsumptionResponse {
	return &dto.ConsumptionResponse{
		ID:               c.ID.String(),
		Date:             c.Date,
		Shift:            c.Shift,
		EmployeeName:     c.EmployeeName,
		ResinID:          c.ResinID.String(),
		ResinName:        c.ResinName,
		MaterialID:       c.MaterialID.String(),
		MaterialName:     c.MaterialName,
		ResinWeight:      c.ResinWeight,
		UsageCount:       c.UsageCount,
		TotalConsumption: c.TotalConsumption,
		CreatedAt:        c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        c.UpdatedAt.Format(time.RFC3339),
	}
}
