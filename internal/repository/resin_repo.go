package repository

import (
	"context"

	"github.com/Nikjeremic/potrosnjaSmole/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ResinRepository interface {
	Create(ctx context.Context, r *model.Resin) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Resin, error)
	FindByName(ctx context.Context, name string) (*model.Resin, error)
	List(ctx context.Context) ([]model.Resin, error)
	Update(ctx context.Context, r *model.Resin) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByMaterialID(ctx context.Context, materialID uuid.UUID) (int64, error)
}

type resinRepo struct{ db *gorm.DB }

func NewResinRepository(db *gorm.DB) ResinRepository { return &resinRepo{db: db} }

func (r *resinRepo) Create(ctx context.Context, res *model.Resin) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *resinRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Resin, error) {
	var res model.Resin
	err := r.db.WithContext(ctx).First(&res, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *resinRepo) FindByName(ctx context.Context, name string) (*model.Resin, error) {
	var res model.Resin
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&res).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *resinRepo) List(ctx context.Context) ([]model.Resin, error) {
	var resins []model.Resin
	err := r.db.WithContext(ctx).Order("name ASC").Find(&resins).Error
	return resins, err
}

func (r *resinRepo) Update(ctx context.Context, res *model.Resin) error {
	return r.db.WithContext(ctx).Save(res).Error
}

func (r *resinRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Resin{}, "id = ?", id).Error
}

func (r *resinRepo) CountByMaterialID(ctx context.Context, materialID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Resin{}).
		Where("material_id = ?", materialID).Count(&n).Error
	return n, err
}
