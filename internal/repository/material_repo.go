package repository

import (
	"context"

	"github.com/Nikjeremic/potrosnjaSmole/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MaterialRepository is the data access contract for materials.
// Services depend on this interface, not on the concrete GORM
// implementation, enabling unit testing via in-memory stubs.
type MaterialRepository interface {
	Create(ctx context.Context, m *model.Material) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Material, error)
	FindByName(ctx context.Context, name string) (*model.Material, error)
	List(ctx context.Context) ([]model.Material, error)
	Update(ctx context.Context, m *model.Material) error
	Delete(ctx context.Context, id uuid.UUID) error

	// AddWeights applies weight deltas as a single atomic UPDATE.
	// available_weight is recomputed in the same statement so the
	// total - consumed invariant can never be observed broken, and
	// concurrent transactions never lose increments.
	AddWeights(ctx context.Context, id uuid.UUID, totalDelta, consumedDelta decimal.Decimal, updatedBy uuid.UUID) error
	AddWeightsTx(tx *gorm.DB, id uuid.UUID, totalDelta, consumedDelta decimal.Decimal, updatedBy uuid.UUID) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type materialRepo struct{ db *gorm.DB }

func NewMaterialRepository(db *gorm.DB) MaterialRepository { return &materialRepo{db: db} }

func (r *materialRepo) Create(ctx context.Context, m *model.Material) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *materialRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Material, error) {
	var m model.Material
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *materialRepo) FindByName(ctx context.Context, name string) (*model.Material, error) {
	var m model.Material
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *materialRepo) List(ctx context.Context) ([]model.Material, error) {
	var materials []model.Material
	err := r.db.WithContext(ctx).
		Preload("Creator").Preload("Updater").
		Order("name ASC").
		Find(&materials).Error
	return materials, err
}

func (r *materialRepo) Update(ctx context.Context, m *model.Material) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *materialRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Material{}, "id = ?", id).Error
}

func (r *materialRepo) AddWeights(ctx context.Context, id uuid.UUID, totalDelta, consumedDelta decimal.Decimal, updatedBy uuid.UUID) error {
	return r.AddWeightsTx(r.db.WithContext(ctx), id, totalDelta, consumedDelta, updatedBy)
}

func (r *materialRepo) AddWeightsTx(tx *gorm.DB, id uuid.UUID, totalDelta, consumedDelta decimal.Decimal, updatedBy uuid.UUID) error {
	return tx.Model(&model.Material{}).Where("id = ?", id).Updates(map[string]interface{}{
		"total_weight":     gorm.Expr("total_weight + ?", totalDelta),
		"consumed_weight":  gorm.Expr("consumed_weight + ?", consumedDelta),
		"available_weight": gorm.Expr("(total_weight + ?) - (consumed_weight + ?)", totalDelta, consumedDelta),
		"updated_by":       updatedBy,
	}).Error
}

func (r *materialRepo) DB() *gorm.DB { return r.db }
