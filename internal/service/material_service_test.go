package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Nikjeremic/potrosnjaSmole/internal/dto"
	"github.com/Nikjeremic/potrosnjaSmole/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type materialFixture struct {
	materials    *stubMaterialRepo
	inventory    *stubInventoryRepo
	resins       *stubResinRepo
	consumptions *stubConsumptionRepo
	receipts     *stubReceiptRepo
	disposals    *stubDisposalRepo
	ledger       *StockLedger
	svc          MaterialService
}

func newMaterialFixture() *materialFixture {
	f := &materialFixture{
		materials:    newStubMaterialRepo(),
		inventory:    newStubInventoryRepo(),
		resins:       newStubResinRepo(),
		consumptions: newStubConsumptionRepo(),
		receipts:     newStubReceiptRepo(),
		disposals:    newStubDisposalRepo(),
	}
	f.ledger = NewStockLedger(f.materials, f.inventory, nil, dec("0"))
	f.svc = NewMaterialService(f.materials, f.inventory, f.resins, f.consumptions, f.receipts, f.disposals, f.ledger)
	return f
}

func TestMaterialCreateAutoProvisionsInventory(t *testing.T) {
	f := newMaterialFixture()

	resp, err := f.svc.Create(context.Background(), dto.CreateMaterialRequest{
		Name:        "PVC prah",
		TotalWeight: dec("1000"),
	}, uuid.New())
	require.NoError(t, err)

	assert.Equal(t, "kg", resp.Unit, "unit defaults to kg")
	assert.True(t, resp.AvailableWeight.Equal(dec("1000")))
	assert.True(t, resp.ConsumedWeight.Equal(dec("0")))

	id, err := uuid.Parse(resp.ID)
	require.NoError(t, err)
	inv, err := f.inventory.FindByMaterialID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "PVC prah", inv.MaterialName)
	assert.True(t, inv.TotalWeight.Equal(dec("1000")))
}

func TestMaterialCreateDuplicateName(t *testing.T) {
	f := newMaterialFixture()
	f.materials.add(&model.Material{Name: "PVC prah", Unit: "kg"})

	_, err := f.svc.Create(context.Background(), dto.CreateMaterialRequest{Name: "PVC prah"}, uuid.New())
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestMaterialUpdateRecomputesAvailableAndSyncsMirror(t *testing.T) {
	f := newMaterialFixture()
	m := f.materials.add(&model.Material{Name: "Granulat", TotalWeight: dec("500"), ConsumedWeight: dec("200"), Unit: "kg"})
	require.NoError(t, f.inventory.Create(context.Background(), &model.Inventory{
		MaterialID: m.ID, MaterialName: m.Name,
		TotalWeight: dec("500"), ConsumedWeight: dec("200"), AvailableWeight: dec("300"), Unit: "kg",
	}))

	newTotal := dec("800")
	resp, err := f.svc.Update(context.Background(), m.ID, dto.UpdateMaterialRequest{TotalWeight: &newTotal}, uuid.New())
	require.NoError(t, err)

	// A total correction moves available, consumed stays untouched.
	assert.True(t, resp.AvailableWeight.Equal(dec("600")))
	assert.True(t, resp.ConsumedWeight.Equal(dec("200")))

	inv, err := f.inventory.FindByMaterialID(context.Background(), m.ID)
	require.NoError(t, err)
	assert.True(t, inv.TotalWeight.Equal(dec("800")))
	assert.True(t, inv.AvailableWeight.Equal(dec("600")))
}

func TestMaterialDeleteGuards(t *testing.T) {
	ctx := context.Background()
	actor := uuid.New()

	t.Run("blocked by resins", func(t *testing.T) {
		f := newMaterialFixture()
		m := f.materials.add(&model.Material{Name: "Smola A", Unit: "kg"})
		f.resins.add(&model.Resin{Name: "Sarza 1", MaterialID: m.ID})
		f.resins.add(&model.Resin{Name: "Sarza 2", MaterialID: m.ID})

		err := f.svc.Delete(ctx, m.ID)
		var conflict *ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Contains(t, conflict.Msg, "2 sarza(i)")
	})

	t.Run("blocked by consumptions", func(t *testing.T) {
		f := newMaterialFixture()
		m := f.materials.add(&model.Material{Name: "Smola A", Unit: "kg"})
		require.NoError(t, f.consumptions.CreateTx(nil, &model.Consumption{MaterialID: m.ID}))

		err := f.svc.Delete(ctx, m.ID)
		var conflict *ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Contains(t, conflict.Msg, "1 zapisa potrošnje")
	})

	t.Run("blocked by receipts", func(t *testing.T) {
		f := newMaterialFixture()
		m := f.materials.add(&model.Material{Name: "Smola A", Unit: "kg"})
		require.NoError(t, f.receipts.CreateTx(nil, &model.Receipt{MaterialID: m.ID, CreatedBy: actor}))

		err := f.svc.Delete(ctx, m.ID)
		var conflict *ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Contains(t, conflict.Msg, "1 prijemnica")
	})

	t.Run("blocked by disposals", func(t *testing.T) {
		f := newMaterialFixture()
		m := f.materials.add(&model.Material{Name: "Smola A", Unit: "kg"})
		require.NoError(t, f.disposals.CreateTx(nil, &model.Disposal{MaterialID: m.ID, Reason: "curenje", CreatedBy: actor}))

		err := f.svc.Delete(ctx, m.ID)
		var conflict *ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Contains(t, conflict.Msg, "1 rashodovanja")
	})

	t.Run("unreferenced material deletes with its inventory", func(t *testing.T) {
		f := newMaterialFixture()
		m := f.materials.add(&model.Material{Name: "Smola A", Unit: "kg"})
		require.NoError(t, f.inventory.Create(ctx, &model.Inventory{MaterialID: m.ID, MaterialName: m.Name}))

		require.NoError(t, f.svc.Delete(ctx, m.ID))

		_, err := f.materials.FindByID(ctx, m.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		_, err = f.inventory.FindByMaterialID(ctx, m.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

// gatedMaterialRepo pauses the first FindByID until released, so a test
// can interleave a ledger transaction with an in-flight material update.
type gatedMaterialRepo struct {
	*stubMaterialRepo
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (r *gatedMaterialRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Material, error) {
	r.once.Do(func() {
		close(r.entered)
		<-r.release
	})
	return r.stubMaterialRepo.FindByID(ctx, id)
}

func TestMaterialUpdateDoesNotClobberConcurrentLedgerWrite(t *testing.T) {
	ctx := context.Background()
	materials := &gatedMaterialRepo{
		stubMaterialRepo: newStubMaterialRepo(),
		entered:          make(chan struct{}),
		release:          make(chan struct{}),
	}
	inventory := newStubInventoryRepo()
	ledger := NewStockLedger(materials, inventory, nil, dec("0"))
	svc := NewMaterialService(materials, inventory, newStubResinRepo(), newStubConsumptionRepo(), newStubReceiptRepo(), newStubDisposalRepo(), ledger)

	m := materials.add(&model.Material{Name: "PVC prah", TotalWeight: dec("1000"), Unit: "kg"})
	require.NoError(t, inventory.Create(ctx, &model.Inventory{
		MaterialID: m.ID, MaterialName: m.Name,
		TotalWeight: dec("1000"), AvailableWeight: dec("1000"), Unit: "kg",
	}))

	newTotal := dec("1200")
	updateDone := make(chan error, 1)
	go func() {
		_, err := svc.Update(ctx, m.ID, dto.UpdateMaterialRequest{TotalWeight: &newTotal}, uuid.New())
		updateDone <- err
	}()
	<-materials.entered // update is now inside its read-modify-write window

	consumeDone := make(chan error, 1)
	go func() {
		consumeDone <- ledger.ApplyCreate(ctx, KindConsumption, m.ID, dec("50"), uuid.New(), noPersist)
	}()

	// The consumption must wait for the update's lock instead of landing
	// inside the window and being erased by the stale save.
	time.Sleep(50 * time.Millisecond)
	close(materials.release)

	require.NoError(t, <-updateDone)
	require.NoError(t, <-consumeDone)

	after, err := materials.FindByID(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, after.ConsumedWeight.Equal(dec("50")), "consumption survived the material update, got %s", after.ConsumedWeight)
	assert.True(t, after.TotalWeight.Equal(dec("1200")))
	assert.True(t, after.AvailableWeight.Equal(dec("1150")))
}

func TestMaterialGetMissing(t *testing.T) {
	f := newMaterialFixture()
	_, err := f.svc.GetByID(context.Background(), uuid.New())
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Materijal nije pronađen", nf.Msg)
}
