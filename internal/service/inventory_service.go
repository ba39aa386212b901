package service

import (
	"context"
	"time"

	"github.com/Nikjeremic/potrosnjaSmole/internal/dto"
	"github.com/Nikjeremic/potrosnjaSmole/internal/model"
	"github.com/Nikjeremic/potrosnjaSmole/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryService manages the stock mirror rows. All endpoints address a
// row by the owning material's id except delete-by-row-id.
type InventoryService interface {
	List(ctx context.Context) ([]dto.InventoryResponse, error)
	GetByMaterialID(ctx context.Context, materialID uuid.UUID) (*dto.InventoryResponse, error)
	CreateForMaterial(ctx context.Context, materialID uuid.UUID, req dto.CreateInventoryRequest) (*dto.InventoryResponse, error)
	UpdateByMaterialID(ctx context.Context, materialID uuid.UUID, req dto.UpdateInventoryRequest) (*dto.InventoryResponse, error)
	DeleteByMaterialID(ctx context.Context, materialID uuid.UUID) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type inventoryService struct {
	inventory repository.InventoryRepository
	materials repository.MaterialRepository
}

func NewInventoryService(inventory repository.InventoryRepository, materials repository.MaterialRepository) InventoryService {
	return &inventoryService{inventory: inventory, materials: materials}
}

func (s *inventoryService) List(ctx context.Context) ([]dto.InventoryResponse, error) {
	rows, err := s.inventory.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.InventoryResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, *inventoryToResponse(&rows[i]))
	}
	return resp, nil
}

func (s *inventoryService) GetByMaterialID(ctx context.Context, materialID uuid.UUID) (*dto.InventoryResponse, error) {
	inv, err := s.inventory.FindByMaterialID(ctx, materialID)
	if err != nil {
		return nil, notFoundf("Inventar za materijal sa ID %s nije pronađen. Možda treba kreirati inventar za ovaj materijal.", materialID)
	}
	return inventoryToResponse(inv), nil
}

func (s *inventoryService) CreateForMaterial(ctx context.Context, materialID uuid.UUID, req dto.CreateInventoryRequest) (*dto.InventoryResponse, error) {
	m, err := s.materials.FindByID(ctx, materialID)
	if err != nil {
		return nil, notFound(msgMaterialNotFound)
	}
	if _, err := s.inventory.FindByMaterialID(ctx, materialID); err == nil {
		return nil, conflictf("Inventar za ovaj materijal već postoji")
	}

	inv := &model.Inventory{
		MaterialID:      m.ID,
		MaterialName:    m.Name,
		TotalWeight:     req.TotalWeight,
		ConsumedWeight:  decimal.Zero,
		AvailableWeight: req.TotalWeight,
		Unit:            m.Unit,
	}
	if err := s.inventory.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inventoryToResponse(inv), nil
}

func (s *inventoryService) UpdateByMaterialID(ctx context.Context, materialID uuid.UUID, req dto.UpdateInventoryRequest) (*dto.InventoryResponse, error) {
	inv, err := s.inventory.FindByMaterialID(ctx, materialID)
	if err != nil {
		return nil, notFoundf("Inventar za materijal sa ID %s nije pronađen. Možda treba kreirati inventar za ovaj materijal.", materialID)
	}

	inv.TotalWeight = req.TotalWeight
	inv.AvailableWeight = inv.TotalWeight.Sub(inv.ConsumedWeight)
	if err := s.inventory.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inventoryToResponse(inv), nil
}

func (s *inventoryService) DeleteByMaterialID(ctx context.Context, materialID uuid.UUID) error {
	if _, err := s.inventory.FindByMaterialID(ctx, materialID); err != nil {
		return notFoundf("Inventar za materijal sa ID %s nije pronađen. Možda treba kreirati inventar za ovaj materijal.", materialID)
	}
	return s.inventory.DeleteByMaterialID(ctx, materialID)
}

func (s *inventoryService) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if _, err := s.inventory.FindByID(ctx, id); err != nil {
		return notFound("Inventar nije pronađen")
	}
	return s.inventory.DeleteByID(ctx, id)
}

func inventoryToResponse(inv *model.Inventory) *dto.InventoryResponse {
	return &dto.InventoryResponse{
		ID:              inv.ID.String(),
		MaterialID:      inv.MaterialID.String(),
		MaterialName:    inv.MaterialName,
		TotalWeight:     inv.TotalWeight,
		ConsumedWeight:  inv.ConsumedWeight,
		AvailableWeight: inv.AvailableWeight,
		Unit:            inv.Unit,
		LastUpdated:     inv.LastUpdated.Format(time.RFC3339),
	}
}
