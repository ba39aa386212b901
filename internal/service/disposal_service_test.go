package service

import (
	"context"
	"testing"

	"github.com/Nikjeremic/potrosnjaSmole/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type disposalFixture struct {
	*ledgerFixture
	disposals *stubDisposalRepo
	svc       DisposalService
}

func newDisposalFixture() *disposalFixture {
	f := &disposalFixture{
		ledgerFixture: newLedgerFixture("0"),
		disposals:     newStubDisposalRepo(),
	}
	f.svc = NewDisposalService(f.disposals, f.materials, f.ledger)
	return f
}

func TestDisposalCreateConsumesStock(t *testing.T) {
	f := newDisposalFixture()
	m := f.seedMaterial("PVC prah", "500", "100")

	resp, err := f.svc.Create(context.Background(), dto.CreateDisposalRequest{
		MaterialID:   m.ID.String(),
		DisposalDate: "2026-08-28",
		DisposalTime: "14:30",
		Reason:       "curenje",
		Quantity:     dec("60"),
		Location:     "Silos 3",
	}, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "curenje", resp.Reason)

	after := f.material(t, m.ID)
	assert.True(t, after.ConsumedWeight.Equal(dec("160")))
	assert.True(t, after.AvailableWeight.Equal(dec("340")))
}

func TestDisposalCreateInsufficientStock(t *testing.T) {
	f := newDisposalFixture()
	m := f.seedMaterial("PVC prah", "100", "80")

	_, err := f.svc.Create(context.Background(), dto.CreateDisposalRequest{
		MaterialID:   m.ID.String(),
		DisposalDate: "2026-08-28",
		DisposalTime: "14:30",
		Reason:       "silos_pukao",
		Quantity:     dec("30"),
	}, uuid.New())
	var insufficient *InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
}

func TestDisposalListByReasonRejectsUnknownReason(t *testing.T) {
	f := newDisposalFixture()

	_, err := f.svc.ListByReason(context.Background(), "poplava")
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Contains(t, conflict.Error(), "Nepoznat razlog rashodovanja")
}

func TestDisposalDeleteRestoresAvailability(t *testing.T) {
	f := newDisposalFixture()
	m := f.seedMaterial("PVC prah", "500", "0")
	actor := uuid.New()

	resp, err := f.svc.Create(context.Background(), dto.CreateDisposalRequest{
		MaterialID:   m.ID.String(),
		DisposalDate: "2026-08-28",
		DisposalTime: "14:30",
		Reason:       "ostalo",
		Quantity:     dec("120"),
	}, actor)
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(context.Background(), mustParse(t, resp.ID), actor))

	after := f.material(t, m.ID)
	assert.True(t, after.ConsumedWeight.IsZero())
	assert.True(t, after.AvailableWeight.Equal(dec("500")))
}
