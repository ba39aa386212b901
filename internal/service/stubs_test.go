package service

import (
	"context"
	"strings"
	"sync"

	"github.com/Nikjeremic/potrosnjaSmole/internal/dto"
	"github.com/Nikjeremic/potrosnjaSmole/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository stubs. DB() returns nil so the ledger's runTx helper
// invokes persistence callbacks directly, letting transaction semantics be
// exercised without a database.

// ── Materials ────────────────────────────────────────────────────────────────

type stubMaterialRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*model.Material
}

func newStubMaterialRepo() *stubMaterialRepo {
	return &stubMaterialRepo{items: map[uuid.UUID]*model.Material{}}
}

func (r *stubMaterialRepo) add(m *model.Material) *model.Material {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.AvailableWeight = m.TotalWeight.Sub(m.ConsumedWeight)
	cp := *m
	r.mu.Lock()
	r.items[m.ID] = &cp
	r.mu.Unlock()
	return m
}

func (r *stubMaterialRepo) Create(_ context.Context, m *model.Material) error {
	r.add(m)
	return nil
}

func (r *stubMaterialRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Material, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *stubMaterialRepo) FindByName(_ context.Context, name string) (*model.Material, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.items {
		if m.Name == name {
			cp := *m
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubMaterialRepo) List(_ context.Context) ([]model.Material, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Material, 0, len(r.items))
	for _, m := range r.items {
		out = append(out, *m)
	}
	return out, nil
}

func (r *stubMaterialRepo) Update(_ context.Context, m *model.Material) error {
	cp := *m
	r.mu.Lock()
	r.items[m.ID] = &cp
	r.mu.Unlock()
	return nil
}

func (r *stubMaterialRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	delete(r.items, id)
	r.mu.Unlock()
	return nil
}

func (r *stubMaterialRepo) AddWeights(_ context.Context, id uuid.UUID, totalDelta, consumedDelta decimal.Decimal, updatedBy uuid.UUID) error {
	return r.AddWeightsTx(nil, id, totalDelta, consumedDelta, updatedBy)
}

func (r *stubMaterialRepo) AddWeightsTx(_ *gorm.DB, id uuid.UUID, totalDelta, consumedDelta decimal.Decimal, updatedBy uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.items[id]
	if !ok {
		// A 0-row UPDATE is not an error.
		return nil
	}
	m.TotalWeight = m.TotalWeight.Add(totalDelta)
	m.ConsumedWeight = m.ConsumedWeight.Add(consumedDelta)
	m.AvailableWeight = m.TotalWeight.Sub(m.ConsumedWeight)
	m.UpdatedBy = updatedBy
	return nil
}

func (r *stubMaterialRepo) DB() *gorm.DB { return nil }

// ── Inventory ────────────────────────────────────────────────────────────────

type stubInventoryRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*model.Inventory // keyed by row id
}

func newStubInventoryRepo() *stubInventoryRepo {
	return &stubInventoryRepo{items: map[uuid.UUID]*model.Inventory{}}
}

func (r *stubInventoryRepo) Create(_ context.Context, inv *model.Inventory) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	cp := *inv
	r.mu.Lock()
	r.items[inv.ID] = &cp
	r.mu.Unlock()
	return nil
}

func (r *stubInventoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Inventory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *inv
	return &cp, nil
}

func (r *stubInventoryRepo) FindByMaterialID(_ context.Context, materialID uuid.UUID) (*model.Inventory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inv := range r.items {
		if inv.MaterialID == materialID {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubInventoryRepo) List(_ context.Context) ([]model.Inventory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Inventory, 0, len(r.items))
	for _, inv := range r.items {
		out = append(out, *inv)
	}
	return out, nil
}

func (r *stubInventoryRepo) Update(_ context.Context, inv *model.Inventory) error {
	cp := *inv
	r.mu.Lock()
	r.items[inv.ID] = &cp
	r.mu.Unlock()
	return nil
}

func (r *stubInventoryRepo) DeleteByID(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	delete(r.items, id)
	r.mu.Unlock()
	return nil
}

func (r *stubInventoryRepo) DeleteByMaterialID(_ context.Context, materialID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, inv := range r.items {
		if inv.MaterialID == materialID {
			delete(r.items, id)
		}
	}
	return nil
}

func (r *stubInventoryRepo) AddWeights(_ context.Context, materialID uuid.UUID, totalDelta, consumedDelta decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inv := range r.items {
		if inv.MaterialID == materialID {
			inv.TotalWeight = inv.TotalWeight.Add(totalDelta)
			inv.ConsumedWeight = inv.ConsumedWeight.Add(consumedDelta)
			inv.AvailableWeight = inv.TotalWeight.Sub(inv.ConsumedWeight)
			return nil
		}
	}
	return nil
}

// ── Resins ───────────────────────────────────────────────────────────────────

type stubResinRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*model.Resin
}

func newStubResinRepo() *stubResinRepo { return &stubResinRepo{items: map[uuid.UUID]*model.Resin{}} }

func (r *stubResinRepo) add(res *model.Resin) *model.Resin {
	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}
	cp := *res
	r.mu.Lock()
	r.items[res.ID] = &cp
	r.mu.Unlock()
	return res
}

func (r *stubResinRepo) Create(_ context.Context, res *model.Resin) error {
	r.add(res)
	return nil
}

func (r *stubResinRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Resin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *res
	return &cp, nil
}

func (r *stubResinRepo) FindByName(_ context.Context, name string) (*model.Resin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, res := range r.items {
		if res.Name == name {
			cp := *res
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubResinRepo) List(_ context.Context) ([]model.Resin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Resin, 0, len(r.items))
	for _, res := range r.items {
		out = append(out, *res)
	}
	return out, nil
}

func (r *stubResinRepo) Update(_ context.Context, res *model.Resin) error {
	cp := *res
	r.mu.Lock()
	r.items[res.ID] = &cp
	r.mu.Unlock()
	return nil
}

func (r *stubResinRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	delete(r.items, id)
	r.mu.Unlock()
	return nil
}

func (r *stubResinRepo) CountByMaterialID(_ context.Context, materialID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, res := range r.items {
		if res.MaterialID == materialID {
			n++
		}
	}
	return n, nil
}

// ── Consumptions ─────────────────────────────────────────────────────────────

type stubConsumptionRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*model.Consumption
}

func newStubConsumptionRepo() *stubConsumptionRepo {
	return &stubConsumptionRepo{items: map[uuid.UUID]*model.Consumption{}}
}

func (r *stubConsumptionRepo) CreateTx(_ *gorm.DB, c *model.Consumption) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cp := *c
	r.mu.Lock()
	r.items[c.ID] = &cp
	r.mu.Unlock()
	return nil
}

func (r *stubConsumptionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Consumption, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubConsumptionRepo) List(_ context.Context, filter dto.ConsumptionFilter) ([]model.Consumption, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Consumption, 0, len(r.items))
	for _, c := range r.items {
		if filter.Date != "" && c.Date != filter.Date {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubConsumptionRepo) UpdateTx(_ *gorm.DB, c *model.Consumption) error {
	cp := *c
	r.mu.Lock()
	r.items[c.ID] = &cp
	r.mu.Unlock()
	return nil
}

func (r *stubConsumptionRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	r.mu.Lock()
	delete(r.items, id)
	r.mu.Unlock()
	return nil
}

func (r *stubConsumptionRepo) CountByMaterialID(_ context.Context, materialID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, c := range r.items {
		if c.MaterialID == materialID {
			n++
		}
	}
	return n, nil
}

// ── Receipts ─────────────────────────────────────────────────────────────────

type stubReceiptRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*model.Receipt
}

func newStubReceiptRepo() *stubReceiptRepo {
	return &stubReceiptRepo{items: map[uuid.UUID]*model.Receipt{}}
}

func (r *stubReceiptRepo) CreateTx(_ *gorm.DB, rec *model.Receipt) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	cp := *rec
	r.mu.Lock()
	r.items[rec.ID] = &cp
	r.mu.Unlock()
	return nil
}

func (r *stubReceiptRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *rec
	return &cp, nil
}

func (r *stubReceiptRepo) List(_ context.Context) ([]model.Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Receipt, 0, len(r.items))
	for _, rec := range r.items {
		out = append(out, *rec)
	}
	return out, nil
}

func (r *stubReceiptRepo) ListByMaterialID(_ context.Context, materialID uuid.UUID) ([]model.Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Receipt
	for _, rec := range r.items {
		if rec.MaterialID == materialID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *stubReceiptRepo) UpdateTx(_ *gorm.DB, rec *model.Receipt) error {
	cp := *rec
	r.mu.Lock()
	r.items[rec.ID] = &cp
	r.mu.Unlock()
	return nil
}

func (r *stubReceiptRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	r.mu.Lock()
	delete(r.items, id)
	r.mu.Unlock()
	return nil
}

func (r *stubReceiptRepo) CountByMaterialID(_ context.Context, materialID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, rec := range r.items {
		if rec.MaterialID == materialID {
			n++
		}
	}
	return n, nil
}

// ── Disposals ────────────────────────────────────────────────────────────────

type stubDisposalRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*model.Disposal
}

func newStubDisposalRepo() *stubDisposalRepo {
	return &stubDisposalRepo{items: map[uuid.UUID]*model.Disposal{}}
}

func (r *stubDisposalRepo) CreateTx(_ *gorm.DB, d *model.Disposal) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	cp := *d
	r.mu.Lock()
	r.items[d.ID] = &cp
	r.mu.Unlock()
	return nil
}

func (r *stubDisposalRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Disposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *stubDisposalRepo) List(_ context.Context) ([]model.Disposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Disposal, 0, len(r.items))
	for _, d := range r.items {
		out = append(out, *d)
	}
	return out, nil
}

func (r *stubDisposalRepo) ListByMaterialID(_ context.Context, materialID uuid.UUID) ([]model.Disposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Disposal
	for _, d := range r.items {
		if d.MaterialID == materialID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *stubDisposalRepo) ListByReason(_ context.Context, reason string) ([]model.Disposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Disposal
	for _, d := range r.items {
		if d.Reason == reason {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *stubDisposalRepo) UpdateTx(_ *gorm.DB, d *model.Disposal) error {
	cp := *d
	r.mu.Lock()
	r.items[d.ID] = &cp
	r.mu.Unlock()
	return nil
}

func (r *stubDisposalRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	r.mu.Lock()
	delete(r.items, id)
	r.mu.Unlock()
	return nil
}

func (r *stubDisposalRepo) CountByMaterialID(_ context.Context, materialID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, d := range r.items {
		if d.MaterialID == materialID {
			n++
		}
	}
	return n, nil
}

// ── Users ────────────────────────────────────────────────────────────────────

type stubUserRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo { return &stubUserRepo{items: map[uuid.UUID]*model.User{}} }

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	cp := *u
	r.mu.Lock()
	r.items[u.ID] = &cp
	r.mu.Unlock()
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.items {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByUsernameOrEmail(_ context.Context, username, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.items {
		if u.Username == username || strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.User, 0, len(r.items))
	for _, u := range r.items {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	cp := *u
	r.mu.Lock()
	r.items[u.ID] = &cp
	r.mu.Unlock()
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	delete(r.items, id)
	r.mu.Unlock()
	return nil
}

// ── Notifier ─────────────────────────────────────────────────────────────────

type stubNotifier struct {
	mu       sync.Mutex
	payloads []interface{}
}

func (n *stubNotifier) EnqueueStockAlert(_ context.Context, payload interface{}) error {
	n.mu.Lock()
	n.payloads = append(n.payloads, payload)
	n.mu.Unlock()
	return nil
}

func (n *stubNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.payloads)
}
