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

// ReceiptPDFGenerator renders a delivery note document for download.
// Satisfied by *infra.PDFGenerator.
type ReceiptPDFGenerator interface {
	ReceiptPDF(rec *model.Receipt) ([]byte, error)
}

// ReceiptService records inbound deliveries. Every mutation goes through
// the stock ledger so material weights move together with the record.
type ReceiptService interface {
	Create(ctx context.Context, req dto.CreateReceiptRequest, actor uuid.UUID) (*dto.ReceiptResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ReceiptResponse, error)
	List(ctx context.Context) ([]dto.ReceiptResponse, error)
	ListByMaterialID(ctx context.Context, materialID uuid.UUID) ([]dto.ReceiptResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateReceiptRequest, actor uuid.UUID) (*dto.ReceiptResponse, error)
	Delete(ctx context.Context, id uuid.UUID, actor uuid.UUID) error
	GeneratePDF(ctx context.Context, id uuid.UUID) ([]byte, string, error)
}

type receiptService struct {
	receipts  repository.ReceiptRepository
	materials repository.MaterialRepository
	ledger    *StockLedger
	pdf       ReceiptPDFGenerator
}

func NewReceiptService(receipts repository.ReceiptRepository, materials repository.MaterialRepository, ledger *StockLedger, pdf ReceiptPDFGenerator) ReceiptService {
	return &receiptService{receipts: receipts, materials: materials, ledger: ledger, pdf: pdf}
}

func (s *receiptService) Create(ctx context.Context, req dto.CreateReceiptRequest, actor uuid.UUID) (*dto.ReceiptResponse, error) {
	materialID, err := uuid.Parse(req.MaterialID)
	if err != nil {
		return nil, notFound(msgMaterialNotFound)
	}
	m, err := s.materials.FindByID(ctx, materialID)
	if err != nil {
		return nil, notFound(msgMaterialNotFound)
	}
	date, err := time.Parse("2006-01-02", req.ReceiptDate)
	if err != nil {
		return nil, conflictf("Neispravan datum prijemnice")
	}

	unit := req.Unit
	if unit == "" {
		unit = m.Unit
	}
	rec := &model.Receipt{
		MaterialID:   m.ID,
		MaterialName: m.Name,
		ReceiptDate:  date,
		ReceiptTime:  req.ReceiptTime,
		Transporter:  req.Transporter,
		Quantity:     req.Quantity,
		Unit:         unit,
		Notes:        req.Notes,
		CreatedBy:    actor,
	}

	err = s.ledger.ApplyCreate(ctx, KindReceipt, m.ID, req.Quantity, actor, func(tx *gorm.DB) error {
		return s.receipts.CreateTx(tx, rec)
	})
	if err != nil {
		return nil, err
	}
	return receiptToResponse(rec), nil
}

func (s *receiptService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ReceiptResponse, error) {
	rec, err := s.receipts.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(msgReceiptNotFound)
	}
	return receiptToResponse(rec), nil
}

func (s *receiptService) List(ctx context.Context) ([]dto.ReceiptResponse, error) {
	rows, err := s.receipts.List(ctx)
	if err != nil {
		return nil, err
	}
	return receiptsToResponses(rows), nil
}

func (s *receiptService) ListByMaterialID(ctx context.Context, materialID uuid.UUID) ([]dto.ReceiptResponse, error) {
	rows, err := s.receipts.ListByMaterialID(ctx, materialID)
	if err != nil {
		return nil, err
	}
	return receiptsToResponses(rows), nil
}

func (s *receiptService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateReceiptRequest, actor uuid.UUID) (*dto.ReceiptResponse, error) {
	rec, err := s.receipts.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(msgReceiptNotFound)
	}

	oldMaterialID := rec.MaterialID
	oldQty := rec.Quantity

	if req.MaterialID != nil {
		materialID, err := uuid.Parse(*req.MaterialID)
		if err != nil {
			return nil, notFound(msgMaterialNotFound)
		}
		m, err := s.materials.FindByID(ctx, materialID)
		if err != nil {
			return nil, notFound(msgMaterialNotFound)
		}
		rec.MaterialID = m.ID
		rec.MaterialName = m.Name
	}
	if req.ReceiptDate != nil {
		date, err := time.Parse("2006-01-02", *req.ReceiptDate)
		if err != nil {
			return nil, conflictf("Neispravan datum prijemnice")
		}
		rec.ReceiptDate = date
	}
	if req.ReceiptTime != nil {
		rec.ReceiptTime = *req.ReceiptTime
	}
	if req.Transporter != nil {
		rec.Transporter = *req.Transporter
	}
	if req.Quantity != nil {
		rec.Quantity = *req.Quantity
	}
	if req.Unit != nil {
		rec.Unit = *req.Unit
	}
	if req.Notes != nil {
		rec.Notes = *req.Notes
	}

	err = s.ledger.ApplyUpdate(ctx, KindReceipt, oldMaterialID, rec.MaterialID, oldQty, rec.Quantity, actor, func(tx *gorm.DB) error {
		return s.receipts.UpdateTx(tx, rec)
	})
	if err != nil {
		return nil, err
	}
	return receiptToResponse(rec), nil
}

func (s *receiptService) Delete(ctx context.Context, id uuid.UUID, actor uuid.UUID) error {
	rec, err := s.receipts.FindByID(ctx, id)
	if err != nil {
		return notFound(msgReceiptNotFound)
	}
	return s.ledger.ApplyDelete(ctx, KindReceipt, rec.MaterialID, rec.Quantity, actor, func(tx *gorm.DB) error {
		return s.receipts.DeleteTx(tx, id)
	})
}

// GeneratePDF renders the delivery note and returns the document bytes
// along with a suggested file name.
func (s *receiptService) GeneratePDF(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	rec, err := s.receipts.FindByID(ctx, id)
	if err != nil {
		return nil, "", notFound(msgReceiptNotFound)
	}
	data, err := s.pdf.ReceiptPDF(rec)
	if err != nil {
		return nil, "", err
	}
	name := "prijemnica-" + rec.ReceiptDate.Format("2006-01-02") + "-" + rec.ID.String()[:8] + ".pdf"
	return data, name, nil
}

func receiptToResponse(rec *model.Receipt) *dto.ReceiptResponse {
	return &dto.ReceiptResponse{
		ID:           rec.ID.String(),
		MaterialID:   rec.MaterialID.String(),
		MaterialName: rec.MaterialName,
		ReceiptDate:  rec.ReceiptDate.Format("2006-01-02"),
		ReceiptTime:  rec.ReceiptTime,
		Transporter:  rec.Transporter,
		Quantity:     rec.Quantity,
		Unit:         rec.Unit,
		Notes:        rec.Notes,
		CreatedBy:    userToRef(rec.Creator),
		CreatedAt:    rec.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    rec.UpdatedAt.Format(time.RFC3339),
	}
}

func receiptsToResponses(rows []model.Receipt) []dto.ReceiptResponse {
	resp := make([]dto.ReceiptResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, *receiptToResponse(&rows[i]))
	}
	return resp
}
