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

// DisposalService records write-offs. Like consumption, a disposal draws
// down available weight and is guarded by the stock ledger.
type DisposalService interface {
	Create(ctx context.Context, req dto.CreateDisposalRequest, actor uuid.UUID) (*dto.DisposalResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.DisposalResponse, error)
	List(ctx context.Context) ([]dto.DisposalResponse, error)
	ListByMaterialID(ctx context.Context, materialID uuid.UUID) ([]dto.DisposalResponse, error)
	ListByReason(ctx context.Context, reason string) ([]dto.DisposalResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateDisposalRequest, actor uuid.UUID) (*dto.DisposalResponse, error)
	Delete(ctx context.Context, id uuid.UUID, actor uuid.UUID) error
}

type disposalService struct {
	disposals repository.DisposalRepository
	materials repository.MaterialRepository
	ledger    *StockLedger
}

func NewDisposalService(disposals repository.DisposalRepository, materials repository.MaterialRepository, ledger *StockLedger) DisposalService {
	return &disposalService{disposals: disposals, materials: materials, ledger: ledger}
}

func (s *disposalService) Create(ctx context.Context, req dto.CreateDisposalRequest, actor uuid.UUID) (*dto.DisposalResponse, error) {
	materialID, err := uuid.Parse(req.MaterialID)
	if err != nil {
		return nil, notFound(msgMaterialNotFound)
	}
	m, err := s.materials.FindByID(ctx, materialID)
	if err != nil {
		return nil, notFound(msgMaterialNotFound)
	}
	date, err := time.Parse("2006-01-02", req.DisposalDate)
	if err != nil {
		return nil, conflictf("Neispravan datum rashodovanja")
	}

	unit := req.Unit
	if unit == "" {
		unit = m.Unit
	}
	d := &model.Disposal{
		MaterialID:   m.ID,
		MaterialName: m.Name,
		DisposalDate: date,
		DisposalTime: req.DisposalTime,
		Reason:       req.Reason,
		Quantity:     req.Quantity,
		Unit:         unit,
		Description:  req.Description,
		Location:     req.Location,
		CreatedBy:    actor,
	}

	err = s.ledger.ApplyCreate(ctx, KindDisposal, m.ID, req.Quantity, actor, func(tx *gorm.DB) error {
		return s.disposals.CreateTx(tx, d)
	})
	if err != nil {
		return nil, err
	}
	return disposalToResponse(d), nil
}

func (s *disposalService) GetByID(ctx context.Context, id uuid.UUID) (*dto.DisposalResponse, error) {
	d, err := s.disposals.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(msgDisposalNotFound)
	}
	return disposalToResponse(d), nil
}

func (s *disposalService) List(ctx context.Context) ([]dto.DisposalResponse, error) {
	rows, err := s.disposals.List(ctx)
	if err != nil {
		return nil, err
	}
	return disposalsToResponses(rows), nil
}

func (s *disposalService) ListByMaterialID(ctx context.Context, materialID uuid.UUID) ([]dto.DisposalResponse, error) {
	rows, err := s.disposals.ListByMaterialID(ctx, materialID)
	if err != nil {
		return nil, err
	}
	return disposalsToResponses(rows), nil
}

func (s *disposalService) ListByReason(ctx context.Context, reason string) ([]dto.DisposalResponse, error) {
	valid := false
	for _, r := range model.DisposalReasons {
		if r == reason {
			valid = true
			break
		}
	}
	if !valid {
		return nil, conflictf("Nepoznat razlog rashodovanja: %s", reason)
	}
	rows, err := s.disposals.ListByReason(ctx, reason)
	if err != nil {
		return nil, err
	}
	return disposalsToResponses(rows), nil
}

func (s *disposalService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateDisposalRequest, actor uuid.UUID) (*dto.DisposalResponse, error) {
	d, err := s.disposals.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(msgDisposalNotFound)
	}

	oldMaterialID := d.MaterialID
	oldQty := d.Quantity

	if req.MaterialID != nil {
		materialID, err := uuid.Parse(*req.MaterialID)
		if err != nil {
			return nil, notFound(msgMaterialNotFound)
		}
		m, err := s.materials.FindByID(ctx, materialID)
		if err != nil {
			return nil, notFound(msgMaterialNotFound)
		}
		d.MaterialID = m.ID
		d.MaterialName = m.Name
	}
	if req.DisposalDate != nil {
		date, err := time.Parse("2006-01-02", *req.DisposalDate)
		if err != nil {
			return nil, conflictf("Neispravan datum rashodovanja")
		}
		d.DisposalDate = date
	}
	if req.DisposalTime != nil {
		d.DisposalTime = *req.DisposalTime
	}
	if req.Reason != nil {
		d.Reason = *req.Reason
	}
	if req.Quantity != nil {
		d.Quantity = *req.Quantity
	}
	if req.Unit != nil {
		d.Unit = *req.Unit
	}
	if req.Description != nil {
		d.Description = *req.Description
	}
	if req.Location != nil {
		d.Location = *req.Location
	}

	err = s.ledger.ApplyUpdate(ctx, KindDisposal, oldMaterialID, d.MaterialID, oldQty, d.Quantity, actor, func(tx *gorm.DB) error {
		return s.disposals.UpdateTx(tx, d)
	})
	if err != nil {
		return nil, err
	}
	return disposalToResponse(d), nil
}

func (s *disposalService) Delete(ctx context.Context, id uuid.UUID, actor uuid.UUID) error {
	d, err := s.disposals.FindByID(ctx, id)
	if err != nil {
		return notFound(msgDisposalNotFound)
	}
	return s.ledger.ApplyDelete(ctx, KindDisposal, d.MaterialID, d.Quantity, actor, func(tx *gorm.DB) error {
		return s.disposals.DeleteTx(tx, id)
	})
}

func disposalToResponse(d *model.Disposal) *dto.DisposalResponse {
	return &dto.DisposalResponse{
		ID:           d.ID.String(),
		MaterialID:   d.MaterialID.String(),
		MaterialName: d.MaterialName,
		DisposalDate: d.DisposalDate.Format("2006-01-02"),
		DisposalTime: d.DisposalTime,
		Reason:       d.Reason,
		Quantity:     d.Quantity,
		Unit:         d.Unit,
		Description:  d.Description,
		Location:     d.Location,
		CreatedBy:    userToRef(d.Creator),
		CreatedAt:    d.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    d.UpdatedAt.Format(time.RFC3339),
	}
}

func disposalsToResponses(rows []model.Disposal) []dto.DisposalResponse {
	resp := make([]dto.DisposalResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, *disposalToResponse(&rows[i]))
	}
	return resp
}
