package service

import (
	"context"
	"time"

	"github.com/Nikjeremic/potrosnjaSmole/internal/dto"
	"github.com/Nikjeremic/potrosnjaSmole/internal/model"
	"github.com/Nikjeremic/potrosnjaSmole/internal/repository"

	"github.com/google/uuid"
)

// ResinService manages batch recipes. Names are unique; the owning
// material's name is denormalized onto the resin at every write.
type ResinService interface {
	Create(ctx context.Context, req dto.CreateResinRequest) (*dto.ResinResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ResinResponse, error)
	List(ctx context.Context) ([]dto.ResinResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateResinRequest) (*dto.ResinResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type resinService struct {
	resins    repository.ResinRepository
	materials repository.MaterialRepository
}

func NewResinService(resins repository.ResinRepository, materials repository.MaterialRepository) ResinService {
	return &resinService{resins: resins, materials: materials}
}

func (s *resinService) Create(ctx context.Context, req dto.CreateResinRequest) (*dto.ResinResponse, error) {
	if _, err := s.resins.FindByName(ctx, req.Name); err == nil {
		return nil, conflictf("Sarza sa ovim nazivom već postoji")
	}

	materialID, err := uuid.Parse(req.MaterialID)
	if err != nil {
		return nil, notFound(msgMaterialNotFound)
	}
	m, err := s.materials.FindByID(ctx, materialID)
	if err != nil {
		return nil, notFound(msgMaterialNotFound)
	}

	r := &model.Resin{
		Name:         req.Name,
		MaterialID:   m.ID,
		MaterialName: m.Name,
		Weight:       req.Weight,
	}
	if err := s.resins.Create(ctx, r); err != nil {
		return nil, err
	}
	return resinToResponse(r), nil
}

func (s *resinService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ResinResponse, error) {
	r, err := s.resins.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(msgResinNotFound)
	}
	return resinToResponse(r), nil
}

func (s *resinService) List(ctx context.Context) ([]dto.ResinResponse, error) {
	resins, err := s.resins.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ResinResponse, 0, len(resins))
	for i := range resins {
		resp = append(resp, *resinToResponse(&resins[i]))
	}
	return resp, nil
}

func (s *resinService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateResinRequest) (*dto.ResinResponse, error) {
	r, err := s.resins.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(msgResinNotFound)
	}

	if req.Name != nil && *req.Name != r.Name {
		if _, err := s.resins.FindByName(ctx, *req.Name); err == nil {
			return nil, conflictf("Sarza sa ovim nazivom već postoji")
		}
		r.Name = *req.Name
	}
	if req.MaterialID != nil {
		materialID, err := uuid.Parse(*req.MaterialID)
		if err != nil {
			return nil, notFound(msgMaterialNotFound)
		}
		m, err := s.materials.FindByID(ctx, materialID)
		if err != nil {
			return nil, notFound(msgMaterialNotFound)
		}
		r.MaterialID = m.ID
		r.MaterialName = m.Name
	}
	if req.Weight != nil {
		r.Weight = *req.Weight
	}

	if err := s.resins.Update(ctx, r); err != nil {
		return nil, err
	}
	return resinToResponse(r), nil
}

func (s *resinService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.resins.FindByID(ctx, id); err != nil {
		return notFound(msgResinNotFound)
	}
	return s.resins.Delete(ctx, id)
}

func resinToResponse(r *model.Resin) *dto.ResinResponse {
	return &dto.ResinResponse{
		ID:           r.ID.String(),
		Name:         r.Name,
		MaterialID:   r.MaterialID.String(),
		MaterialName: r.MaterialName,
		Weight:       r.Weight,
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    r.UpdatedAt.Format(time.RFC3339),
	}
}
