package service

import (
	"bytes"
	"context"
	"sync"

	"github.com/Nikjeremic/potrosnjaSmole/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Kind classifies a stock transaction by which weight field it moves.
// A receipt adds to totalWeight; disposals and consumptions add to
// consumedWeight.
type Kind int

const (
	KindReceipt Kind = iota
	KindDisposal
	KindConsumption
)

// consumes reports whether this kind draws down available weight and is
// therefore subject to the availability guard.
func (k Kind) consumes() bool { return k != KindReceipt }

// deltas maps a quantity onto (totalWeight, consumedWeight) deltas.
func (k Kind) deltas(qty decimal.Decimal) (total, consumed decimal.Decimal) {
	if k == KindReceipt {
		return qty, decimal.Zero
	}
	return decimal.Zero, qty
}

// LowStockNotifier enqueues an alert when available weight drops under the
// configured threshold. Satisfied by *worker.Dispatcher; nil disables alerts.
type LowStockNotifier interface {
	EnqueueStockAlert(ctx context.Context, payload interface{}) error
}

// StockLedger owns every weight mutation on Material/Inventory pairs.
//
// Correctness model:
//   - a per-material mutex serializes the read-check-mutate sequence, so
//     availability guards cannot be raced past by concurrent requests;
//   - the weight write itself is a single atomic UPDATE with in-place
//     increments (never new = old + delta computed from a stale read), so
//     even writes outside the lock cannot lose updates;
//   - the transaction record and the Material weight update commit in one
//     database transaction. The Inventory mirror is synchronized
//     best-effort afterwards: a missing row or failed write is logged and
//     tolerated, never surfaced to the caller.
type StockLedger struct {
	materials repository.MaterialRepository
	inventory repository.InventoryRepository
	locks     keyedMutex
	notifier  LowStockNotifier
	threshold decimal.Decimal
}

func NewStockLedger(
	materials repository.MaterialRepository,
	inventory repository.InventoryRepository,
	notifier LowStockNotifier,
	alertThreshold decimal.Decimal,
) *StockLedger {
	return &StockLedger{
		materials: materials,
		inventory: inventory,
		notifier:  notifier,
		threshold: alertThreshold,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// Locked runs fn while holding the material's ledger lock. Code that
// read-modify-writes a Material outside the ledger (manual catalog
// edits) runs under it so its save cannot clobber a concurrent ledger
// transaction with stale weights.
func (l *StockLedger) Locked(materialID uuid.UUID, fn func() error) error {
	unlock := l.locks.lock(materialID)
	defer unlock()
	return fn()
}

// ApplyCreate records a new transaction of the given kind against a
// material. persist writes the transaction record itself and runs in the
// same database transaction as the material weight update.
func (l *StockLedger) ApplyCreate(ctx context.Context, kind Kind, materialID uuid.UUID, qty decimal.Decimal, actor uuid.UUID, persist func(tx *gorm.DB) error) error {
	unlock := l.locks.lock(materialID)
	defer unlock()

	m, err := l.materials.FindByID(ctx, materialID)
	if err != nil {
		return notFound(msgMaterialNotFound)
	}
	if kind.consumes() && m.AvailableWeight.LessThan(qty) {
		return &InsufficientStockError{Available: m.AvailableWeight, Requested: qty, Unit: m.Unit}
	}

	totalDelta, consumedDelta := kind.deltas(qty)
	if err := runTx(ctx, l.materials.DB(), func(tx *gorm.DB) error {
		if err := persist(tx); err != nil {
			return err
		}
		return l.materials.AddWeightsTx(tx, materialID, totalDelta, consumedDelta, actor)
	}); err != nil {
		return err
	}

	l.syncInventory(ctx, materialID, totalDelta, consumedDelta)
	l.checkLowStock(ctx, materialID)
	return nil
}

// ApplyUpdate re-applies a transaction whose quantity and/or material
// reference changed.
//
// Same material: the availability guard reconstructs the state as if the
// old quantity had never happened, then the diff is applied. This is the
// consumption-update pattern from the source system, applied uniformly to
// all three kinds.
//
// Material changed: the FULL old quantity is reversed from the old pair
// and the FULL new quantity applied to the new pair (not just the diff).
// Consuming kinds are guarded against the new material's availability;
// receipts are guarded against the old material's, since reversing an
// inbound delivery is what can drive a balance negative.
func (l *StockLedger) ApplyUpdate(ctx context.Context, kind Kind, oldMaterialID, newMaterialID uuid.UUID, oldQty, newQty decimal.Decimal, actor uuid.UUID, persist func(tx *gorm.DB) error) error {
	if oldMaterialID == newMaterialID {
		return l.updateSameMaterial(ctx, kind, oldMaterialID, oldQty, newQty, actor, persist)
	}
	return l.updateMovedMaterial(ctx, kind, oldMaterialID, newMaterialID, oldQty, newQty, actor, persist)
}

func (l *StockLedger) updateSameMaterial(ctx context.Context, kind Kind, materialID uuid.UUID, oldQty, newQty decimal.Decimal, actor uuid.UUID, persist func(tx *gorm.DB) error) error {
	unlock := l.locks.lock(materialID)
	defer unlock()

	m, err := l.materials.FindByID(ctx, materialID)
	if err != nil {
		return notFound(msgMaterialNotFound)
	}

	if kind.consumes() {
		// Availability as if the old consumption had not yet happened.
		reconstructed := m.AvailableWeight.Add(oldQty)
		if reconstructed.LessThan(newQty) {
			return &InsufficientStockError{Available: reconstructed, Requested: newQty, Unit: m.Unit}
		}
	} else {
		// Shrinking a receipt must not drive availability negative.
		reconstructed := m.AvailableWeight.Sub(oldQty).Add(newQty)
		if reconstructed.IsNegative() {
			return &InsufficientStockError{Available: m.AvailableWeight, Requested: oldQty.Sub(newQty), Unit: m.Unit}
		}
	}

	totalDelta, consumedDelta := kind.deltas(newQty.Sub(oldQty))
	if err := runTx(ctx, l.materials.DB(), func(tx *gorm.DB) error {
		if err := persist(tx); err != nil {
			return err
		}
		return l.materials.AddWeightsTx(tx, materialID, totalDelta, consumedDelta, actor)
	}); err != nil {
		return err
	}

	l.syncInventory(ctx, materialID, totalDelta, consumedDelta)
	l.checkLowStock(ctx, materialID)
	return nil
}

func (l *StockLedger) updateMovedMaterial(ctx context.Context, kind Kind, oldMaterialID, newMaterialID uuid.UUID, oldQty, newQty decimal.Decimal, actor uuid.UUID, persist func(tx *gorm.DB) error) error {
	unlock := l.locks.lockPair(oldMaterialID, newMaterialID)
	defer unlock()

	newM, err := l.materials.FindByID(ctx, newMaterialID)
	if err != nil {
		return notFound(msgMaterialNotFound)
	}

	// The old material may have been deleted out from under the record;
	// its reversal then has nowhere to land (0-row UPDATE), which matches
	// the source behavior of skipping a missing old material.
	oldM, oldErr := l.materials.FindByID(ctx, oldMaterialID)
	if oldErr != nil {
		log.Warn().
			Str("material_id", oldMaterialID.String()).
			Msg("ledger: old material missing during move, skipping reversal")
	}

	if kind.consumes() {
		if newM.AvailableWeight.LessThan(newQty) {
			return &InsufficientStockError{Available: newM.AvailableWeight, Requested: newQty, Unit: newM.Unit}
		}
	} else if oldM != nil && oldM.AvailableWeight.LessThan(oldQty) {
		return &InsufficientStockError{Available: oldM.AvailableWeight, Requested: oldQty, Unit: oldM.Unit}
	}

	oldTotal, oldConsumed := kind.deltas(oldQty)
	newTotal, newConsumed := kind.deltas(newQty)

	if err := runTx(ctx, l.materials.DB(), func(tx *gorm.DB) error {
		if err := persist(tx); err != nil {
			return err
		}
		if oldErr == nil {
			if err := l.materials.AddWeightsTx(tx, oldMaterialID, oldTotal.Neg(), oldConsumed.Neg(), actor); err != nil {
				return err
			}
		}
		return l.materials.AddWeightsTx(tx, newMaterialID, newTotal, newConsumed, actor)
	}); err != nil {
		return err
	}

	if oldErr == nil {
		l.syncInventory(ctx, oldMaterialID, oldTotal.Neg(), oldConsumed.Neg())
	}
	l.syncInventory(ctx, newMaterialID, newTotal, newConsumed)
	l.checkLowStock(ctx, newMaterialID)
	return nil
}

// ApplyDelete reverses a transaction's effect and removes its record.
// There is deliberately no lower-bound guard here: deleting against
// already-inconsistent data may drive weights negative, which the source
// system accepts. The weight reversal is issued before the record delete
// within the same transaction.
func (l *StockLedger) ApplyDelete(ctx context.Context, kind Kind, materialID uuid.UUID, qty decimal.Decimal, actor uuid.UUID, persist func(tx *gorm.DB) error) error {
	unlock := l.locks.lock(materialID)
	defer unlock()

	totalDelta, consumedDelta := kind.deltas(qty)
	if err := runTx(ctx, l.materials.DB(), func(tx *gorm.DB) error {
		if err := l.materials.AddWeightsTx(tx, materialID, totalDelta.Neg(), consumedDelta.Neg(), actor); err != nil {
			return err
		}
		return persist(tx)
	}); err != nil {
		return err
	}

	l.syncInventory(ctx, materialID, totalDelta.Neg(), consumedDelta.Neg())
	return nil
}

// syncInventory mirrors a weight delta onto the material's inventory row.
// Best effort: a missing row is a normal condition (materials may exist
// without inventory), and a failed write is logged, never propagated.
func (l *StockLedger) syncInventory(ctx context.Context, materialID uuid.UUID, totalDelta, consumedDelta decimal.Decimal) {
	if err := l.inventory.AddWeights(ctx, materialID, totalDelta, consumedDelta); err != nil {
		log.Error().
			Str("material_id", materialID.String()).
			Err(err).
			Msg("ledger: inventory sync failed, mirror may be stale")
	}
}

// checkLowStock enqueues an alert job when available weight has fallen
// under the configured threshold. Fire and forget.
func (l *StockLedger) checkLowStock(ctx context.Context, materialID uuid.UUID) {
	if l.notifier == nil || !l.threshold.IsPositive() {
		return
	}
	m, err := l.materials.FindByID(ctx, materialID)
	if err != nil || !m.AvailableWeight.LessThan(l.threshold) {
		return
	}
	payload := map[string]interface{}{
		"materialId":      m.ID.String(),
		"materialName":    m.Name,
		"availableWeight": m.AvailableWeight.String(),
		"unit":            m.Unit,
	}
	if err := l.notifier.EnqueueStockAlert(ctx, payload); err != nil {
		log.Error().Str("material", m.Name).Err(err).Msg("ledger: failed to enqueue low stock alert")
	}
}

// ── Per-material lock table ──────────────────────────────────────────────────
// One mutex per material id; the map only ever grows to the number of
// materials, so entries are not purged.

type keyedMutex struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func (k *keyedMutex) get(id uuid.UUID) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.locks == nil {
		k.locks = make(map[uuid.UUID]*sync.Mutex)
	}
	m, ok := k.locks[id]
	if !ok {
		m = &sync.Mutex{}
		k.locks[id] = m
	}
	return m
}

func (k *keyedMutex) lock(id uuid.UUID) func() {
	m := k.get(id)
	m.Lock()
	return m.Unlock
}

// lockPair acquires both material locks in a deterministic order so that
// two concurrent moves between the same pair cannot deadlock.
func (k *keyedMutex) lockPair(a, b uuid.UUID) func() {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}
	first, second := k.get(a), k.get(b)
	first.Lock()
	second.Lock()
	return func() {
		second.Unlock()
		first.Unlock()
	}
}
