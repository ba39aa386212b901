package service

import (
	"context"
	"time"

	"github.com/Nikjeremic/potrosnjaSmole/internal/dto"
	"github.com/Nikjeremic/potrosnjaSmole/internal/model"
	"github.com/Nikjeremic/potrosnjaSmole/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// MaterialService owns the material catalog: creation auto-provisions the
// inventory mirror, updates keep it synchronized, deletion is guarded by
// referential checks against every transaction type.
type MaterialService interface {
	Create(ctx context.Context, req dto.CreateMaterialRequest, actor uuid.UUID) (*dto.MaterialResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.MaterialResponse, error)
	List(ctx context.Context) ([]dto.MaterialResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateMaterialRequest, actor uuid.UUID) (*dto.MaterialResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type materialService struct {
	materials    repository.MaterialRepository
	inventory    repository.InventoryRepository
	resins       repository.ResinRepository
	consumptions repository.ConsumptionRepository
	receipts     repository.ReceiptRepository
	disposals    repository.DisposalRepository
	ledger       *StockLedger
}

func NewMaterialService(
	materials repository.MaterialRepository,
	inventory repository.InventoryRepository,
	resins repository.ResinRepository,
	consumptions repository.ConsumptionRepository,
	receipts repository.ReceiptRepository,
	disposals repository.DisposalRepository,
	ledger *StockLedger,
) MaterialService {
	return &materialService{
		materials:    materials,
		inventory:    inventory,
		resins:       resins,
		consumptions: consumptions,
		receipts:     receipts,
		disposals:    disposals,
		ledger:       ledger,
	}
}

func (s *materialService) Create(ctx context.Context, req dto.CreateMaterialRequest, actor uuid.UUID) (*dto.MaterialResponse, error) {
	if _, err := s.materials.FindByName(ctx, req.Name); err == nil {
		return nil, conflictf("Materijal sa ovim nazivom već postoji")
	}

	unit := req.Unit
	if unit == "" {
		unit = "kg"
	}
	m := &model.Material{
		Name:            req.Name,
		TotalWeight:     req.TotalWeight,
		ConsumedWeight:  decimal.Zero,
		AvailableWeight: req.TotalWeight,
		Unit:            unit,
		CreatedBy:       actor,
		UpdatedBy:       actor,
	}
	if err := s.materials.Create(ctx, m); err != nil {
		return nil, err
	}

	// Auto-provision the inventory mirror. A failure here does not fail
	// material creation; the material simply lives without a mirror and
	// later inventory lookups report not-found as a normal condition.
	inv := &model.Inventory{
		MaterialID:      m.ID,
		MaterialName:    m.Name,
		TotalWeight:     m.TotalWeight,
		ConsumedWeight:  decimal.Zero,
		AvailableWeight: m.TotalWeight,
		Unit:            m.Unit,
	}
	if err := s.inventory.Create(ctx, inv); err != nil {
		log.Error().Str("material", m.Name).Err(err).Msg("failed to auto-create inventory for material")
	}

	return materialToResponse(m), nil
}

func (s *materialService) GetByID(ctx context.Context, id uuid.UUID) (*dto.MaterialResponse, error) {
	m, err := s.materials.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(msgMaterialNotFound)
	}
	return materialToResponse(m), nil
}

func (s *materialService) List(ctx context.Context) ([]dto.MaterialResponse, error) {
	materials, err := s.materials.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MaterialResponse, 0, len(materials))
	for i := range materials {
		resp = append(resp, *materialToResponse(&materials[i]))
	}
	return resp, nil
}

func (s *materialService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateMaterialRequest, actor uuid.UUID) (*dto.MaterialResponse, error) {
	// The read-mutate-save below holds the material's ledger lock:
	// a ledger transaction landing between the read and the save would
	// otherwise be erased by the stale weights written back here.
	var m *model.Material
	err := s.ledger.Locked(id, func() error {
		var err error
		m, err = s.materials.FindByID(ctx, id)
		if err != nil {
			return notFound(msgMaterialNotFound)
		}

		if req.Name != nil {
			m.Name = *req.Name
		}
		if req.TotalWeight != nil {
			m.TotalWeight = *req.TotalWeight
		}
		if req.Unit != nil {
			m.Unit = *req.Unit
		}
		// Derived field is recomputed unconditionally on every save: a manual
		// totalWeight correction moves availableWeight without touching
		// consumedWeight.
		m.AvailableWeight = m.TotalWeight.Sub(m.ConsumedWeight)
		m.UpdatedBy = actor

		if err := s.materials.Update(ctx, m); err != nil {
			return err
		}

		// Mirror name/total/unit into the inventory row. Best effort.
		inv, invErr := s.inventory.FindByMaterialID(ctx, id)
		if invErr == nil {
			if req.Name != nil {
				inv.MaterialName = *req.Name
			}
			if req.TotalWeight != nil {
				inv.TotalWeight = *req.TotalWeight
			}
			if req.Unit != nil {
				inv.Unit = *req.Unit
			}
			inv.AvailableWeight = inv.TotalWeight.Sub(inv.ConsumedWeight)
			if err := s.inventory.Update(ctx, inv); err != nil {
				log.Error().Str("material", m.Name).Err(err).Msg("failed to sync inventory after material update")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return materialToResponse(m), nil
}

func (s *materialService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.materials.FindByID(ctx, id); err != nil {
		return notFound(msgMaterialNotFound)
	}

	resinCount, err := s.resins.CountByMaterialID(ctx, id)
	if err != nil {
		return err
	}
	if resinCount > 0 {
		return conflictf("Materijal se koristi u %d sarza(i). Prvo obrišite sarze koje koriste ovaj materijal.", resinCount)
	}

	consumptionCount, err := s.consumptions.CountByMaterialID(ctx, id)
	if err != nil {
		return err
	}
	if consumptionCount > 0 {
		return conflictf("Materijal se koristi u %d zapisa potrošnje. Prvo obrišite zapise potrošnje koji koriste ovaj materijal.", consumptionCount)
	}

	receiptCount, err := s.receipts.CountByMaterialID(ctx, id)
	if err != nil {
		return err
	}
	if receiptCount > 0 {
		return conflictf("Materijal se koristi u %d prijemnica. Prvo obrišite prijemnice koje koriste ovaj materijal.", receiptCount)
	}

	disposalCount, err := s.disposals.CountByMaterialID(ctx, id)
	if err != nil {
		return err
	}
	if disposalCount > 0 {
		return conflictf("Materijal se koristi u %d rashodovanja. Prvo obrišite rashodovanja koja koriste ovaj materijal.", disposalCount)
	}

	if err := s.inventory.DeleteByMaterialID(ctx, id); err != nil {
		return err
	}
	return s.materials.Delete(ctx, id)
}

func materialToResponse(m *model.Material) *dto.MaterialResponse {
	return &dto.MaterialResponse{
		ID:              m.ID.String(),
		Name:            m.Name,
		TotalWeight:     m.TotalWeight,
		ConsumedWeight:  m.ConsumedWeight,
		AvailableWeight: m.AvailableWeight,
		Unit:            m.Unit,
		CreatedBy:       userToRef(m.Creator),
		UpdatedBy:       userToRef(m.Updater),
		CreatedAt:       m.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       m.UpdatedAt.Format(time.RFC3339),
	}
}

func userToRef(u *model.User) *dto.UserRef {
	if u == nil {
		return nil
	}
	return &dto.UserRef{
		ID:        u.ID.String(),
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
