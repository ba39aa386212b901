package repository

import (
	"context"

	"github.com/Nikjeremic/potrosnjaSmole/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReceiptRepository interface {
	CreateTx(tx *gorm.DB, rec *model.Receipt) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Receipt, error)
	List(ctx context.Context) ([]model.Receipt, error)
	ListByMaterialID(ctx context.Context, materialID uuid.UUID) ([]model.Receipt, error)
	UpdateTx(tx *gorm.DB, rec *model.Receipt) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	CountByMaterialID(ctx context.Context, materialID uuid.UUID) (int64, error)
}

type receiptRepo struct{ db *gorm.DB }

func NewReceiptRepository(db *gorm.DB) ReceiptRepository { return &receiptRepo{db: db} }

func (r *receiptRepo) CreateTx(tx *gorm.DB, rec *model.Receipt) error {
	return tx.Create(rec).Error
}

func (r *receiptRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Receipt, error) {
	var rec model.Receipt
	err := r.db.WithContext(ctx).Preload("Creator").First(&rec, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *receiptRepo) List(ctx context.Context) ([]model.Receipt, error) {
	var rows []model.Receipt
	err := r.db.WithContext(ctx).Preload("Creator").
		Order("receipt_date DESC, receipt_time DESC").Find(&rows).Error
	return rows, err
}

func (r *receiptRepo) ListByMaterialID(ctx context.Context, materialID uuid.UUID) ([]model.Receipt, error) {
	var rows []model.Receipt
	err := r.db.WithContext(ctx).Preload("Creator").
		Where("material_id = ?", materialID).
		Order("receipt_date DESC, receipt_time DESC").Find(&rows).Error
	return rows, err
}

func (r *receiptRepo) UpdateTx(tx *gorm.DB, rec *model.Receipt) error {
	return tx.Save(rec).Error
}

func (r *receiptRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Receipt{}, "id = ?", id).Error
}

func (r *receiptRepo) CountByMaterialID(ctx context.Context, materialID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Receipt{}).
		Where("material_id = ?", materialID).Count(&n).Error
	return n, err
}
