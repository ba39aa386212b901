package repository

import (
	"context"
	"time"

	"github.com/Nikjeremic/potrosnjaSmole/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InventoryRepository interface {
	Create(ctx context.Context, inv *model.Inventory) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Inventory, error)
	FindByMaterialID(ctx context.Context, materialID uuid.UUID) (*model.Inventory, error)
	List(ctx context.Context) ([]model.Inventory, error)
	Update(ctx context.Context, inv *model.Inventory) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
	DeleteByMaterialID(ctx context.Context, materialID uuid.UUID) error

	// AddWeights mirrors MaterialRepository.AddWeights for the inventory
	// row keyed by material id. Single atomic UPDATE, invariant preserved.
	AddWeights(ctx context.Context, materialID uuid.UUID, totalDelta, consumedDelta decimal.Decimal) error
}

type inventoryRepo struct{ db *gorm.DB }

func NewInventoryRepository(db *gorm.DB) InventoryRepository { return &inventoryRepo{db: db} }

func (r *inventoryRepo) Create(ctx context.Context, inv *model.Inventory) error {
	inv.LastUpdated = time.Now()
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *inventoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Inventory, error) {
	var inv model.Inventory
	err := r.db.WithContext(ctx).First(&inv, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *inventoryRepo) FindByMaterialID(ctx context.Context, materialID uuid.UUID) (*model.Inventory, error) {
	var inv model.Inventory
	err := r.db.WithContext(ctx).Where("material_id = ?", materialID).First(&inv).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *inventoryRepo) List(ctx context.Context) ([]model.Inventory, error) {
	var rows []model.Inventory
	err := r.db.WithContext(ctx).Order("material_name ASC").Find(&rows).Error
	return rows, err
}

func (r *inventoryRepo) Update(ctx context.Context, inv *model.Inventory) error {
	inv.LastUpdated = time.Now()
	return r.db.WithContext(ctx).Save(inv).Error
}

func (r *inventoryRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Inventory{}, "id = ?", id).Error
}

func (r *inventoryRepo) DeleteByMaterialID(ctx context.Context, materialID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("material_id = ?", materialID).Delete(&model.Inventory{}).Error
}

func (r *inventoryRepo) AddWeights(ctx context.Context, materialID uuid.UUID, totalDelta, consumedDelta decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&model.Inventory{}).
		Where("material_id = ?", materialID).
		Updates(map[string]interface{}{
			"total_weight":     gorm.Expr("total_weight + ?", totalDelta),
			"consumed_weight":  gorm.Expr("consumed_weight + ?", consumedDelta),
			"available_weight": gorm.Expr("(total_weight + ?) - (consumed_weight + ?)", totalDelta, consumedDelta),
			"last_updated":     time.Now(),
		}).Error
}
