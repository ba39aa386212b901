package repository

import (
	"context"

	"github.com/Nikjeremic/potrosnjaSmole/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DisposalRepository interface {
	CreateTx(tx *gorm.DB, d *model.Disposal) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Disposal, error)
	List(ctx context.Context) ([]model.Disposal, error)
	ListByMaterialID(ctx context.Context, materialID uuid.UUID) ([]model.Disposal, error)
	ListByReason(ctx context.Context, reason string) ([]model.Disposal, error)
	UpdateTx(tx *gorm.DB, d *model.Disposal) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	CountByMaterialID(ctx context.Context, materialID uuid.UUID) (int64, error)
}

type disposalRepo struct{ db *gorm.DB }

func NewDisposalRepository(db *gorm.DB) DisposalRepository { return &disposalRepo{db: db} }

func (r *disposalRepo) CreateTx(tx *gorm.DB, d *model.Disposal) error {
	return tx.Create(d).Error
}

func (r *disposalRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Disposal, error) {
	var d model.Disposal
	err := r.db.WithContext(ctx).Preload("Creator").First(&d, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *disposalRepo) List(ctx context.Context) ([]model.Disposal, error) {
	var rows []model.Disposal
	err := r.db.WithContext(ctx).Preload("Creator").
		Order("disposal_date DESC, disposal_time DESC").Find(&rows).Error
	return rows, err
}

func (r *disposalRepo) ListByMaterialID(ctx context.Context, materialID uuid.UUID) ([]model.Disposal, error) {
	var rows []model.Disposal
	err := r.db.WithContext(ctx).Preload("Creator").
		Where("material_id = ?", materialID).
		Order("disposal_date DESC, disposal_time DESC").Find(&rows).Error
	return rows, err
}

func (r *disposalRepo) ListByReason(ctx context.Context, reason string) ([]model.Disposal, error) {
	var rows []model.Disposal
	err := r.db.WithContext(ctx).Preload("Creator").
		Where("reason = ?", reason).
		Order("disposal_date DESC, disposal_time DESC").Find(&rows).Error
	return rows, err
}

func (r *disposalRepo) UpdateTx(tx *gorm.DB, d *model.Disposal) error {
	return tx.Save(d).Error
}

func (r *disposalRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Disposal{}, "id = ?", id).Error
}

func (r *disposalRepo) CountByMaterialID(ctx context.Context, materialID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Disposal{}).
		Where("material_id = ?", materialID).Count(&n).Error
	return n, err
}
