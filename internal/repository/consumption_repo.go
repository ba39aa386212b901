package repository

import (
	"context"

	"github.com/Nikjeremic/potrosnjaSmole/internal/dto"
	"github.com/Nikjeremic/potrosnjaSmole/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConsumptionRepository interface {
	CreateTx(tx *gorm.DB, c *model.Consumption) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Consumption, error)
	List(ctx context.Context, filter dto.ConsumptionFilter) ([]model.Consumption, error)
	UpdateTx(tx *gorm.DB, c *model.Consumption) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	CountByMaterialID(ctx context.Context, materialID uuid.UUID) (int64, error)
}

type consumptionRepo struct{ db *gorm.DB }

func NewConsumptionRepository(db *gorm.DB) ConsumptionRepository { return &consumptionRepo{db: db} }

func (r *consumptionRepo) CreateTx(tx *gorm.DB, c *model.Consumption) error {
	return tx.Create(c).Error
}

func (r *consumptionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Consumption, error) {
	var c model.Consumption
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *consumptionRepo) List(ctx context.Context, filter dto.ConsumptionFilter) ([]model.Consumption, error) {
	q := r.db.WithContext(ctx).Model(&model.Consumption{})
	if filter.Date != "" {
		q = q.Where("date = ?", filter.Date)
	}
	var rows []model.Consumption
	err := q.Order("date DESC, shift ASC").Find(&rows).Error
	return rows, err
}

func (r *consumptionRepo) UpdateTx(tx *gorm.DB, c *model.Consumption) error {
	return tx.Save(c).Error
}

func (r *consumptionRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Consumption{}, "id = ?", id).Error
}

func (r *consumptionRepo) CountByMaterialID(ctx context.Context, materialID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Consumption{}).
		Where("material_id = ?", materialID).Count(&n).Error
	return n, err
}
