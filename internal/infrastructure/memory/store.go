package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
)

// Store is a fully in-memory domain.Store. Transaction takes a deep copy of
// the state, runs fn against a store bound to the copy and swaps the copy in
// only when fn succeeds, so a failed composite action leaves nothing behind.
type Store struct {
	mu   sync.Mutex
	data *state
}

type state struct {
	merchants map[string]*domain.Merchant
	orders    map[domain.OrderSide]map[uint64]*domain.Order
	deals     map[uint64]*domain.Deal
	dealsBySN map[string]uint64
	arbiters  map[string]*domain.Arbiter
	blacklist map[string]*domain.BlacklistEntry
	sequences map[string]uint64
}

func NewStore() *Store {
	return &Store{data: newState()}
}

func newState() *state {
	return &state{
		merchants: make(map[string]*domain.Merchant),
		orders: map[domain.OrderSide]map[uint64]*domain.Order{
			domain.SideBuy:  {},
			domain.SideSell: {},
		},
		deals:     make(map[uint64]*domain.Deal),
		dealsBySN: make(map[string]uint64),
		arbiters:  make(map[string]*domain.Arbiter),
		blacklist: make(map[string]*domain.BlacklistEntry),
		sequences: make(map[string]uint64),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.merchants {
		c.merchants[k] = cloneMerchant(v)
	}
	for side, book := range s.orders {
		for id, o := range book {
			c.orders[side][id] = cloneOrder(o)
		}
	}
	for id, d := range s.deals {
		cp := *d
		c.deals[id] = &cp
	}
	for sn, id := range s.dealsBySN {
		c.dealsBySN[sn] = id
	}
	for k, a := range s.arbiters {
		cp := *a
		c.arbiters[k] = &cp
	}
	for k, e := range s.blacklist {
		cp := *e
		c.blacklist[k] = &cp
	}
	for k, v := range s.sequences {
		c.sequences[k] = v
	}
	return c
}

func cloneMerchant(m *domain.Merchant) *domain.Merchant {
	cp := *m
	cp.Balances = make(map[string]domain.Balance, len(m.Balances))
	for sym, b := range m.Balances {
		cp.Balances[sym] = b
	}
	return &cp
}

func cloneOrder(o *domain.Order) *domain.Order {
	cp := *o
	cp.PayMethods = append([]string(nil), o.PayMethods...)
	return &cp
}

func (s *Store) Merchants() domain.MerchantRepository { return merchantRepo{s.data} }
func (s *Store) Orders() domain.OrderRepository       { return orderRepo{s.data} }
func (s *Store) Deals() domain.DealRepository         { return dealRepo{s.data} }
func (s *Store) Arbiters() domain.ArbiterRepository   { return arbiterRepo{s.data} }
func (s *Store) Blacklist() domain.BlacklistRepository {
	return blacklistRepo{s.data}
}
func (s *Store) Sequences() domain.SequenceRepository { return sequenceRepo{s.data} }

func (s *Store) Transaction(fn func(domain.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	scratch := &Store{data: s.data.clone()}
	if err := fn(scratch); err != nil {
		return err
	}
	s.data = scratch.data
	return nil
}

type merchantRepo struct{ s *state }

func (r merchantRepo) CreateMerchant(m *domain.Merchant) error {
	if _, ok := r.s.merchants[m.Account]; ok {
		return fmt.Errorf("%w: merchant %s", domain.ErrConflict, m.Account)
	}
	r.s.merchants[m.Account] = cloneMerchant(m)
	return nil
}

func (r merchantRepo) GetMerchant(account string) (*domain.Merchant, error) {
	m, ok := r.s.merchants[account]
	if !ok {
		return nil, fmt.Errorf("%w: merchant %s", domain.ErrNotFound, account)
	}
	return cloneMerchant(m), nil
}

func (r merchantRepo) UpdateMerchant(m *domain.Merchant) error {
	if _, ok := r.s.merchants[m.Account]; !ok {
		return fmt.Errorf("%w: merchant %s", domain.ErrNotFound, m.Account)
	}
	r.s.merchants[m.Account] = cloneMerchant(m)
	return nil
}

func (r merchantRepo) DeleteMerchant(account string) error {
	if _, ok := r.s.merchants[account]; !ok {
		return fmt.Errorf("%w: merchant %s", domain.ErrNotFound, account)
	}
	delete(r.s.merchants, account)
	return nil
}

type orderRepo struct{ s *state }

func (r orderRepo) CreateOrder(o *domain.Order) error {
	book := r.s.orders[o.Side]
	if _, ok := book[o.ID]; ok {
		return fmt.Errorf("%w: %s order %d", domain.ErrConflict, o.Side, o.ID)
	}
	book[o.ID] = cloneOrder(o)
	return nil
}

func (r orderRepo) GetOrder(side domain.OrderSide, orderID uint64) (*domain.Order, error) {
	o, ok := r.s.orders[side][orderID]
	if !ok {
		return nil, fmt.Errorf("%w: %s order %d", domain.ErrNotFound, side, orderID)
	}
	return cloneOrder(o), nil
}

func (r orderRepo) UpdateOrder(o *domain.Order) error {
	if _, ok := r.s.orders[o.Side][o.ID]; !ok {
		return fmt.Errorf("%w: %s order %d", domain.ErrNotFound, o.Side, o.ID)
	}
	r.s.orders[o.Side][o.ID] = cloneOrder(o)
	return nil
}

func (r orderRepo) ListOrdersByOwner(side domain.OrderSide, owner string, page, limit int) ([]*domain.Order, int64, error) {
	var all []*domain.Order
	for _, o := range r.s.orders[side] {
		if o.Owner == owner {
			all = append(all, cloneOrder(o))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return paginate(all, page, limit)
}

type dealRepo struct{ s *state }

func (r dealRepo) CreateDeal(d *domain.Deal) error {
	if _, ok := r.s.deals[d.ID]; ok {
		return fmt.Errorf("%w: deal %d", domain.ErrConflict, d.ID)
	}
	if _, ok := r.s.dealsBySN[d.OrderSN]; ok {
		return fmt.Errorf("%w: order_sn %q", domain.ErrConflict, d.OrderSN)
	}
	cp := *d
	r.s.deals[d.ID] = &cp
	r.s.dealsBySN[d.OrderSN] = d.ID
	return nil
}

func (r dealRepo) GetDeal(dealID uint64) (*domain.Deal, error) {
	d, ok := r.s.deals[dealID]
	if !ok {
		return nil, fmt.Errorf("%w: deal %d", domain.ErrNotFound, dealID)
	}
	cp := *d
	return &cp, nil
}

func (r dealRepo) GetDealByOrderSN(orderSN string) (*domain.Deal, error) {
	id, ok := r.s.dealsBySN[orderSN]
	if !ok {
		return nil, fmt.Errorf("%w: order_sn %q", domain.ErrNotFound, orderSN)
	}
	return r.GetDeal(id)
}

func (r dealRepo) UpdateDeal(d *domain.Deal) error {
	if _, ok := r.s.deals[d.ID]; !ok {
		return fmt.Errorf("%w: deal %d", domain.ErrNotFound, d.ID)
	}
	cp := *d
	r.s.deals[d.ID] = &cp
	return nil
}

func (r dealRepo) ListDealsByAccount(account string, page, limit int) ([]*domain.Deal, int64, error) {
	var all []*domain.Deal
	for _, d := range r.s.deals {
		if d.Maker == account || d.Taker == account {
			cp := *d
			all = append(all, &cp)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return paginate(all, page, limit)
}

type arbiterRepo struct{ s *state }

func (r arbiterRepo) CreateArbiter(a *domain.Arbiter) error {
	if _, ok := r.s.arbiters[a.Account]; ok {
		return fmt.Errorf("%w: arbiter %s", domain.ErrConflict, a.Account)
	}
	cp := *a
	r.s.arbiters[a.Account] = &cp
	return nil
}

func (r arbiterRepo) GetArbiter(account string) (*domain.Arbiter, error) {
	a, ok := r.s.arbiters[account]
	if !ok {
		return nil, fmt.Errorf("%w: arbiter %s", domain.ErrNotFound, account)
	}
	cp := *a
	return &cp, nil
}

func (r arbiterRepo) UpdateArbiter(a *domain.Arbiter) error {
	if _, ok := r.s.arbiters[a.Account]; !ok {
		return fmt.Errorf("%w: arbiter %s", domain.ErrNotFound, a.Account)
	}
	cp := *a
	r.s.arbiters[a.Account] = &cp
	return nil
}

func (r arbiterRepo) DeleteArbiter(account string) error {
	if _, ok := r.s.arbiters[account]; !ok {
		return fmt.Errorf("%w: arbiter %s", domain.ErrNotFound, account)
	}
	delete(r.s.arbiters, account)
	return nil
}

func (r arbiterRepo) ListArbiters() ([]*domain.Arbiter, error) {
	var all []*domain.Arbiter
	for _, a := range r.s.arbiters {
		cp := *a
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Seq < all[j].Seq })
	return all, nil
}

type blacklistRepo struct{ s *state }

func (r blacklistRepo) SetBlacklistEntry(e *domain.BlacklistEntry) error {
	cp := *e
	r.s.blacklist[e.Account] = &cp
	return nil
}

func (r blacklistRepo) GetBlacklistEntry(account string) (*domain.BlacklistEntry, error) {
	e, ok := r.s.blacklist[account]
	if !ok {
		return nil, fmt.Errorf("%w: blacklist entry %s", domain.ErrNotFound, account)
	}
	cp := *e
	return &cp, nil
}

func (r blacklistRepo) DeleteBlacklistEntry(account string) error {
	delete(r.s.blacklist, account)
	return nil
}

type sequenceRepo struct{ s *state }

func (r sequenceRepo) NextSequence(name string) (uint64, error) {
	r.s.sequences[name]++
	return r.s.sequences[name], nil
}

func paginate[T any](all []*T, page, limit int) ([]*T, int64, error) {
	total := int64(len(all))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = len(all)
		if limit == 0 {
			limit = 1
		}
	}
	start := (page - 1) * limit
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}
