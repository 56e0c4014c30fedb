package ticket_test

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/clinica-api/internal/application/ticket"
	"github.com/jhoicas/clinica-api/internal/domain"
	"github.com/jhoicas/clinica-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria con semántica transaccional: RunTicket guarda una copia del
// estado al empezar y la restaura si el callback devuelve error.
// ──────────────────────────────────────────────────────────────────────────────

type memState struct {
	tickets     map[string]entity.Ticket
	items       map[string]entity.TicketItem
	payments    map[string]entity.Payment
	debts       map[string]entity.DebtLedger
	order       map[string]int
	catalog     map[string]entity.CatalogItem
	defaultVAT  *entity.VATType
	stock       map[string]decimal.Decimal
	consumption map[string]decimal.Decimal
	methods     map[string]entity.PaymentMethodDefinition
	sessions    map[string]entity.CashSession
	clinics     map[string]entity.Clinic
	clients     map[string]bool
	users       map[string]bool
	seq         int
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *memState) clone() *memState {
	c := *s
	c.tickets = copyMap(s.tickets)
	c.items = copyMap(s.items)
	c.payments = copyMap(s.payments)
	c.debts = copyMap(s.debts)
	c.order = copyMap(s.order)
	c.catalog = copyMap(s.catalog)
	c.stock = copyMap(s.stock)
	c.consumption = copyMap(s.consumption)
	c.methods = copyMap(s.methods)
	c.sessions = copyMap(s.sessions)
	c.clinics = copyMap(s.clinics)
	c.clients = copyMap(s.clients)
	c.users = copyMap(s.users)
	return &c
}

func (s *memState) nextSeq(id string) {
	s.seq++
	s.order[id] = s.seq
}

type memStore struct {
	mu sync.Mutex
	st *memState
}

func newMemStore() *memStore {
	return &memStore{st: &memState{
		tickets:     map[string]entity.Ticket{},
		items:       map[string]entity.TicketItem{},
		payments:    map[string]entity.Payment{},
		debts:       map[string]entity.DebtLedger{},
		order:       map[string]int{},
		catalog:     map[string]entity.CatalogItem{},
		stock:       map[string]decimal.Decimal{},
		consumption: map[string]decimal.Decimal{},
		methods:     map[string]entity.PaymentMethodDefinition{},
		sessions:    map[string]entity.CashSession{},
		clinics:     map[string]entity.Clinic{},
		clients:     map[string]bool{},
		users:       map[string]bool{},
	}}
}

func (m *memStore) RunTicket(ctx context.Context, fn func(r ticket.Repos) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	backup := m.st.clone()
	repos := ticket.Repos{
		Tickets:        memTickets{m},
		Items:          memItems{m},
		Payments:       memPayments{m},
		Debts:          memDebts{m},
		Catalog:        memCatalog{m},
		Stock:          memStock{m},
		Consumption:    memConsumption{m},
		PaymentMethods: memMethods{m},
		CashSessions:   memSessions{m},
		Clinics:        memClinics{m},
		Parties:        memParties{m},
	}
	if err := fn(repos); err != nil {
		m.st = backup
		return err
	}
	return nil
}

func catalogKey(t entity.TicketItemType, id string) string { return string(t) + "|" + id }

func consumptionKey(k entity.ConsumptionKind, id string) string { return string(k) + "|" + id }

// ── tickets ──────────────────────────────────────────────────────────────────

type memTickets struct{ m *memStore }

func (r memTickets) GetByID(_ context.Context, systemID, id string) (*entity.Ticket, error) {
	t, ok := r.m.st.tickets[id]
	if !ok || t.SystemID != systemID {
		return nil, nil
	}
	return &t, nil
}

func (r memTickets) GetForUpdate(ctx context.Context, systemID, id string) (*entity.Ticket, error) {
	return r.GetByID(ctx, systemID, id)
}

func (r memTickets) UpdateHeader(_ context.Context, t *entity.Ticket) error {
	r.m.st.tickets[t.ID] = *t
	return nil
}

// ── líneas ───────────────────────────────────────────────────────────────────

type memItems struct{ m *memStore }

func (r memItems) Create(_ context.Context, it *entity.TicketItem) error {
	r.m.st.items[it.ID] = *it
	r.m.st.nextSeq(it.ID)
	return nil
}

func (r memItems) Update(_ context.Context, it *entity.TicketItem) error {
	r.m.st.items[it.ID] = *it
	return nil
}

func (r memItems) Delete(_ context.Context, id string) error {
	delete(r.m.st.items, id)
	return nil
}

func (r memItems) GetByID(_ context.Context, ticketID, id string) (*entity.TicketItem, error) {
	it, ok := r.m.st.items[id]
	if !ok || it.TicketID != ticketID {
		return nil, nil
	}
	return &it, nil
}

func (r memItems) ListByTicket(_ context.Context, ticketID string) ([]*entity.TicketItem, error) {
	var out []*entity.TicketItem
	for _, it := range r.m.st.items {
		if it.TicketID == ticketID {
			it := it
			out = append(out, &it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.m.st.order[out[i].ID] < r.m.st.order[out[j].ID] })
	return out, nil
}

// ── pagos ────────────────────────────────────────────────────────────────────

type memPayments struct{ m *memStore }

func (r memPayments) Create(_ context.Context, p *entity.Payment) error {
	r.m.st.payments[p.ID] = *p
	r.m.st.nextSeq(p.ID)
	return nil
}

func (r memPayments) Delete(_ context.Context, id string) error {
	delete(r.m.st.payments, id)
	return nil
}

func (r memPayments) GetByID(_ context.Context, ticketID, id string) (*entity.Payment, error) {
	p, ok := r.m.st.payments[id]
	if !ok || p.TicketID != ticketID {
		return nil, nil
	}
	return &p, nil
}

func (r memPayments) ListByTicket(_ context.Context, ticketID string) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.m.st.payments {
		if p.TicketID == ticketID {
			p := p
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.m.st.order[out[i].ID] < r.m.st.order[out[j].ID] })
	return out, nil
}

// ── deudas ───────────────────────────────────────────────────────────────────

type memDebts struct{ m *memStore }

func (r memDebts) FindOpenByTicket(_ context.Context, ticketID string) (*entity.DebtLedger, error) {
	for _, d := range r.m.st.debts {
		if d.TicketID == ticketID && d.IsOpen() {
			d := d
			return &d, nil
		}
	}
	return nil, nil
}

func (r memDebts) Create(_ context.Context, d *entity.DebtLedger) error {
	r.m.st.debts[d.ID] = *d
	r.m.st.nextSeq(d.ID)
	return nil
}

func (r memDebts) Update(_ context.Context, d *entity.DebtLedger) error {
	r.m.st.debts[d.ID] = *d
	return nil
}

func (r memDebts) ListByTicket(_ context.Context, ticketID string) ([]*entity.DebtLedger, error) {
	var out []*entity.DebtLedger
	for _, d := range r.m.st.debts {
		if d.TicketID == ticketID {
			d := d
			out = append(out, &d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.m.st.order[out[i].ID] < r.m.st.order[out[j].ID] })
	return out, nil
}

// ── catálogo, stock y consumos ───────────────────────────────────────────────

type memCatalog struct{ m *memStore }

func (r memCatalog) GetItem(_ context.Context, systemID string, t entity.TicketItemType, id, tariffID string) (*entity.CatalogItem, error) {
	it, ok := r.m.st.catalog[catalogKey(t, id)]
	if !ok || it.SystemID != systemID {
		return nil, nil
	}
	if it.TariffPrice != nil && it.TariffPrice.TariffID != tariffID {
		it.TariffPrice = nil
	}
	return &it, nil
}

func (r memCatalog) GetDefaultVAT(context.Context, string, string) (*entity.VATType, error) {
	return r.m.st.defaultVAT, nil
}

type memStock struct{ m *memStore }

func (r memStock) AdjustCurrentStock(_ context.Context, productID string, delta decimal.Decimal) (bool, error) {
	cur, ok := r.m.st.stock[productID]
	if !ok {
		return false, nil
	}
	r.m.st.stock[productID] = cur.Add(delta)
	return true, nil
}

type memConsumption struct{ m *memStore }

func (r memConsumption) Consume(_ context.Context, _ string, k entity.ConsumptionKind, id string, qty decimal.Decimal) error {
	key := consumptionKey(k, id)
	cur, ok := r.m.st.consumption[key]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.LessThan(qty) {
		return domain.ErrInsufficientConsumption
	}
	r.m.st.consumption[key] = cur.Sub(qty)
	return nil
}

func (r memConsumption) Restore(_ context.Context, _ string, k entity.ConsumptionKind, id string, qty decimal.Decimal) (bool, error) {
	key := consumptionKey(k, id)
	cur, ok := r.m.st.consumption[key]
	if !ok {
		return false, nil
	}
	r.m.st.consumption[key] = cur.Add(qty)
	return true, nil
}

// ── referencias ──────────────────────────────────────────────────────────────

type memMethods struct{ m *memStore }

func (r memMethods) GetByID(_ context.Context, systemID, id string) (*entity.PaymentMethodDefinition, error) {
	pm, ok := r.m.st.methods[id]
	if !ok || pm.SystemID != systemID {
		return nil, nil
	}
	return &pm, nil
}

type memSessions struct{ m *memStore }

func (r memSessions) FindOpen(_ context.Context, systemID, clinicID string) (*entity.CashSession, error) {
	for _, s := range r.m.st.sessions {
		if s.SystemID == systemID && s.ClinicID == clinicID && s.Status == entity.CashSessionStatusOpen {
			s := s
			return &s, nil
		}
	}
	return nil, nil
}

func (r memSessions) GetByID(_ context.Context, id string) (*entity.CashSession, error) {
	s, ok := r.m.st.sessions[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

type memClinics struct{ m *memStore }

func (r memClinics) GetByID(_ context.Context, id string) (*entity.Clinic, error) {
	c, ok := r.m.st.clinics[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

type memParties struct{ m *memStore }

func (r memParties) ClientExists(_ context.Context, _, id string) (bool, error) {
	return r.m.st.clients[id], nil
}

func (r memParties) UserExists(_ context.Context, _, id string) (bool, error) {
	return r.m.st.users[id], nil
}
