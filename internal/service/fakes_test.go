package service_test

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"foodcart-service/internal/geo"
	"foodcart-service/internal/geocoder"
	"foodcart-service/internal/models"
	"foodcart-service/internal/repository"
	"foodcart-service/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ---- in-memory store ----

type menuKey struct{ restaurantID, productID uuid.UUID }

type memState struct {
	restaurants map[uuid.UUID]models.Restaurant
	categories  map[uuid.UUID]models.ProductCategory
	products    map[uuid.UUID]models.Product
	menu        map[menuKey]models.RestaurantMenuItem
	orders      map[uuid.UUID]models.Order
	items       map[uuid.UUID][]models.OrderItem
	candidates  map[uuid.UUID][]models.CandidateDistance
}

func newMemState() *memState {
	return &memState{
		restaurants: map[uuid.UUID]models.Restaurant{},
		categories:  map[uuid.UUID]models.ProductCategory{},
		products:    map[uuid.UUID]models.Product{},
		menu:        map[menuKey]models.RestaurantMenuItem{},
		orders:      map[uuid.UUID]models.Order{},
		items:       map[uuid.UUID][]models.OrderItem{},
		candidates:  map[uuid.UUID][]models.CandidateDistance{},
	}
}

func (s *memState) clone() *memState {
	c := &memState{
		restaurants: maps.Clone(s.restaurants),
		categories:  maps.Clone(s.categories),
		products:    maps.Clone(s.products),
		menu:        maps.Clone(s.menu),
		orders:      maps.Clone(s.orders),
		items:       make(map[uuid.UUID][]models.OrderItem, len(s.items)),
		candidates:  make(map[uuid.UUID][]models.CandidateDistance, len(s.candidates)),
	}
	for k, v := range s.items {
		c.items[k] = slices.Clone(v)
	}
	for k, v := range s.candidates {
		c.candidates[k] = slices.Clone(v)
	}
	return c
}

// memStore commits a cloned state on success and drops it on error.
// Transactions are serialized, which stands in for row locks.
type memStore struct {
	txMu  sync.Mutex
	mu    sync.Mutex
	state *memState
	txs   int
}

func newMemStore() *memStore { return &memStore{state: newMemState()} }

func (s *memStore) build(tx *memState) *repository.Repository {
	b := memBase{store: s, tx: tx}
	return &repository.Repository{
		Restaurants: memRestaurants{b},
		Categories:  memCategories{b},
		Products:    memProducts{b},
		Menu:        memMenu{b},
		Orders:      memOrders{b},
		OrderItems:  memOrderItems{b},
		Candidates:  memCandidates{b},
	}
}

func (s *memStore) Repos() *repository.Repository { return s.build(nil) }

func (s *memStore) WithTx(ctx context.Context, fn func(tx *repository.Repository) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	work := s.state.clone()
	s.txs++
	s.mu.Unlock()

	if err := fn(s.build(work)); err != nil {
		return err
	}
	s.mu.Lock()
	s.state = work
	s.mu.Unlock()
	return nil
}

func (s *memStore) snapshot() *memState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

var _ service.Store = (*memStore)(nil)

type memBase struct {
	store *memStore
	tx    *memState
}

func (b memBase) with(fn func(st *memState)) {
	if b.tx != nil {
		fn(b.tx)
		return
	}
	b.store.mu.Lock()
	defer b.store.mu.Unlock()
	fn(b.store.state)
}

func stamp(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// ---- restaurants ----

type memRestaurants struct{ memBase }

func (r memRestaurants) Create(_ context.Context, rest *models.Restaurant) error {
	stamp(&rest.ID)
	r.with(func(st *memState) { st.restaurants[rest.ID] = *rest })
	return nil
}

func (r memRestaurants) GetByID(_ context.Context, id uuid.UUID) (*models.Restaurant, error) {
	var out *models.Restaurant
	r.with(func(st *memState) {
		if v, ok := st.restaurants[id]; ok {
			out = &v
		}
	})
	return out, nil
}

func (r memRestaurants) GetByName(_ context.Context, name string) (*models.Restaurant, error) {
	var out *models.Restaurant
	r.with(func(st *memState) {
		for _, v := range st.restaurants {
			if v.Name == name {
				out = &v
				return
			}
		}
	})
	return out, nil
}

func sortedRestaurants(st *memState) []models.Restaurant {
	list := slices.Collect(maps.Values(st.restaurants))
	slices.SortFunc(list, func(a, b models.Restaurant) int { return cmp.Compare(a.Name, b.Name) })
	return list
}

func (r memRestaurants) List(_ context.Context) ([]models.Restaurant, error) {
	var out []models.Restaurant
	r.with(func(st *memState) { out = sortedRestaurants(st) })
	return out, nil
}

func (r memRestaurants) Update(_ context.Context, rest *models.Restaurant) error {
	r.with(func(st *memState) { st.restaurants[rest.ID] = *rest })
	return nil
}

func (r memRestaurants) SetCoordinates(_ context.Context, id uuid.UUID, c geo.Coordinates) error {
	r.with(func(st *memState) {
		v := st.restaurants[id]
		lon, lat := c.Lon, c.Lat
		v.Lon, v.Lat = &lon, &lat
		st.restaurants[id] = v
	})
	return nil
}

func (r memRestaurants) ListCoveringProducts(_ context.Context, productIDs []uuid.UUID) ([]models.Restaurant, error) {
	var out []models.Restaurant
	r.with(func(st *memState) {
		for _, rest := range sortedRestaurants(st) {
			if service.Covers(productIDs, availableOf(st, rest.ID)) {
				out = append(out, rest)
			}
		}
	})
	return out, nil
}

func availableOf(st *memState, restaurantID uuid.UUID) map[uuid.UUID]struct{} {
	set := map[uuid.UUID]struct{}{}
	for k, v := range st.menu {
		if k.restaurantID == restaurantID && v.Availability {
			set[k.productID] = struct{}{}
		}
	}
	return set
}

// ---- categories ----

type memCategories struct{ memBase }

func (r memCategories) Create(_ context.Context, c *models.ProductCategory) error {
	var err error
	r.with(func(st *memState) {
		for _, v := range st.categories {
			if v.Name == c.Name {
				err = fmt.Errorf("duplicate category %q", c.Name)
				return
			}
		}
		stamp(&c.ID)
		st.categories[c.ID] = *c
	})
	return err
}

func (r memCategories) GetByID(_ context.Context, id uuid.UUID) (*models.ProductCategory, error) {
	var out *models.ProductCategory
	r.with(func(st *memState) {
		if v, ok := st.categories[id]; ok {
			out = &v
		}
	})
	return out, nil
}

func (r memCategories) GetByName(_ context.Context, name string) (*models.ProductCategory, error) {
	var out *models.ProductCategory
	r.with(func(st *memState) {
		for _, v := range st.categories {
			if v.Name == name {
				out = &v
				return
			}
		}
	})
	return out, nil
}

// ---- products ----

type memProducts struct{ memBase }

func (r memProducts) Create(_ context.Context, p *models.Product) error {
	stamp(&p.ID)
	r.with(func(st *memState) { st.products[p.ID] = *p })
	return nil
}

func (r memProducts) GetByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	var out *models.Product
	r.with(func(st *memState) {
		if v, ok := st.products[id]; ok {
			out = &v
		}
	})
	return out, nil
}

func (r memProducts) GetByName(_ context.Context, name string) (*models.Product, error) {
	var out *models.Product
	r.with(func(st *memState) {
		for _, v := range st.products {
			if v.Name == name {
				out = &v
				return
			}
		}
	})
	return out, nil
}

func (r memProducts) GetByIDs(_ context.Context, ids []uuid.UUID) ([]models.Product, error) {
	var out []models.Product
	r.with(func(st *memState) {
		for _, id := range ids {
			if v, ok := st.products[id]; ok {
				out = append(out, v)
			}
		}
	})
	return out, nil
}

func (r memProducts) UpdatePrice(_ context.Context, id uuid.UUID, price decimal.Decimal) error {
	r.with(func(st *memState) {
		v := st.products[id]
		v.Price = price
		st.products[id] = v
	})
	return nil
}

func (r memProducts) ListAvailable(_ context.Context) ([]models.Product, error) {
	var out []models.Product
	r.with(func(st *memState) {
		seen := map[uuid.UUID]bool{}
		for k, v := range st.menu {
			if v.Availability && !seen[k.productID] {
				seen[k.productID] = true
				out = append(out, st.products[k.productID])
			}
		}
	})
	slices.SortFunc(out, func(a, b models.Product) int { return cmp.Compare(a.Name, b.Name) })
	return out, nil
}

// ---- menu ----

type memMenu struct{ memBase }

func (r memMenu) Upsert(_ context.Context, restaurantID, productID uuid.UUID, available bool) error {
	r.with(func(st *memState) {
		k := menuKey{restaurantID, productID}
		v, ok := st.menu[k]
		if !ok {
			v = models.RestaurantMenuItem{ID: uuid.New(), RestaurantID: restaurantID, ProductID: productID}
		}
		v.Availability = available
		st.menu[k] = v
	})
	return nil
}

func (r memMenu) ListByRestaurant(_ context.Context, restaurantID uuid.UUID) ([]models.RestaurantMenuItem, error) {
	var out []models.RestaurantMenuItem
	r.with(func(st *memState) {
		for k, v := range st.menu {
			if k.restaurantID == restaurantID {
				if p, ok := st.products[k.productID]; ok {
					v.Product = &p
				}
				out = append(out, v)
			}
		}
	})
	return out, nil
}

func (r memMenu) AvailableProductIDs(_ context.Context, restaurantID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	var out map[uuid.UUID]struct{}
	r.with(func(st *memState) { out = availableOf(st, restaurantID) })
	return out, nil
}

// ---- orders ----

type memOrders struct{ memBase }

func (r memOrders) Create(_ context.Context, o *models.Order) error {
	stamp(&o.ID)
	if o.Status == "" {
		o.Status = models.OrderStatusNotProcessed
	}
	if o.Payment == "" {
		o.Payment = models.PaymentCash
	}
	if o.RegisteredAt.IsZero() {
		o.RegisteredAt = time.Now().UTC()
	}
	row := *o
	row.Items, row.Candidates, row.PreparingRestaurant = nil, nil, nil
	r.with(func(st *memState) { st.orders[o.ID] = row })
	return nil
}

func hydrate(st *memState, o models.Order) *models.Order {
	o.Items = slices.Clone(st.items[o.ID])
	for i := range o.Items {
		if p, ok := st.products[o.Items[i].ProductID]; ok {
			o.Items[i].Product = &p
		}
	}
	if o.PreparingRestaurantID != nil {
		if rest, ok := st.restaurants[*o.PreparingRestaurantID]; ok {
			o.PreparingRestaurant = &rest
		}
	}
	return &o
}

func (r memOrders) GetByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	var out *models.Order
	r.with(func(st *memState) {
		if v, ok := st.orders[id]; ok {
			out = hydrate(st, v)
		}
	})
	return out, nil
}

func (r memOrders) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return r.GetByID(ctx, id)
}

func (r memOrders) UpdateAddress(_ context.Context, id uuid.UUID, address string) error {
	r.with(func(st *memState) {
		v := st.orders[id]
		v.Address = address
		st.orders[id] = v
	})
	return nil
}

func (r memOrders) SetPreparingRestaurant(_ context.Context, id uuid.UUID, restaurantID uuid.UUID) error {
	r.with(func(st *memState) {
		v := st.orders[id]
		v.PreparingRestaurantID = &restaurantID
		st.orders[id] = v
	})
	return nil
}

func (r memOrders) UpdateStatus(_ context.Context, id uuid.UUID, upd repository.StatusUpdate) error {
	r.with(func(st *memState) {
		v := st.orders[id]
		v.Status = upd.Status
		if upd.ProcessedAt != nil {
			v.ProcessedAt = upd.ProcessedAt
		}
		if upd.DeliveredAt != nil {
			v.DeliveredAt = upd.DeliveredAt
		}
		st.orders[id] = v
	})
	return nil
}

func (r memOrders) List(_ context.Context, f repository.OrderListFilter) ([]*models.Order, int64, error) {
	var all []*models.Order
	r.with(func(st *memState) {
		for _, v := range st.orders {
			if f.Status != nil && v.Status != *f.Status {
				continue
			}
			all = append(all, hydrate(st, v))
		}
	})
	slices.SortFunc(all, func(a, b *models.Order) int {
		if c := cmp.Compare(a.Status.Rank(), b.Status.Rank()); c != 0 {
			return c
		}
		return b.RegisteredAt.Compare(a.RegisteredAt)
	})
	total := int64(len(all))
	if f.Offset >= len(all) {
		return nil, total, nil
	}
	all = all[f.Offset:]
	if f.Limit > 0 && f.Limit < len(all) {
		all = all[:f.Limit]
	}
	return all, total, nil
}

func (r memOrders) ListAssignedUnprocessed(_ context.Context, limit int) ([]*models.Order, error) {
	var out []*models.Order
	r.with(func(st *memState) {
		for _, v := range st.orders {
			if v.Status == models.OrderStatusNotProcessed && v.PreparingRestaurantID != nil {
				out = append(out, hydrate(st, v))
			}
		}
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ---- order items ----

type memOrderItems struct{ memBase }

func (r memOrderItems) BulkCreate(_ context.Context, items []models.OrderItem) error {
	r.with(func(st *memState) {
		for i := range items {
			stamp(&items[i].ID)
			row := items[i]
			row.Product = nil
			st.items[row.OrderID] = append(st.items[row.OrderID], row)
		}
	})
	return nil
}

func (r memOrderItems) GetByOrderID(_ context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	var out []models.OrderItem
	r.with(func(st *memState) { out = slices.Clone(st.items[orderID]) })
	return out, nil
}

// ---- candidates ----

type memCandidates struct{ memBase }

func (r memCandidates) DeleteByOrderID(_ context.Context, orderID uuid.UUID) (int64, error) {
	var n int64
	r.with(func(st *memState) {
		n = int64(len(st.candidates[orderID]))
		delete(st.candidates, orderID)
	})
	return n, nil
}

func (r memCandidates) BulkCreate(_ context.Context, rows []models.CandidateDistance) error {
	var err error
	r.with(func(st *memState) {
		for i := range rows {
			for _, existing := range st.candidates[rows[i].OrderID] {
				if existing.RestaurantID == rows[i].RestaurantID {
					err = fmt.Errorf("duplicate candidate %s/%s", rows[i].OrderID, rows[i].RestaurantID)
					return
				}
			}
			stamp(&rows[i].ID)
			row := rows[i]
			row.Restaurant = nil
			st.candidates[row.OrderID] = append(st.candidates[row.OrderID], row)
		}
	})
	return err
}

func (r memCandidates) ListByOrderID(_ context.Context, orderID uuid.UUID) ([]models.CandidateDistance, error) {
	var out []models.CandidateDistance
	r.with(func(st *memState) {
		out = slices.Clone(st.candidates[orderID])
		for i := range out {
			rest := st.restaurants[out[i].RestaurantID]
			out[i].Restaurant = &rest
		}
	})
	slices.SortStableFunc(out, func(a, b models.CandidateDistance) int {
		switch {
		case a.DistanceMeters == nil && b.DistanceMeters != nil:
			return 1
		case a.DistanceMeters != nil && b.DistanceMeters == nil:
			return -1
		case a.DistanceMeters != nil && b.DistanceMeters != nil:
			if c := cmp.Compare(*a.DistanceMeters, *b.DistanceMeters); c != 0 {
				return c
			}
		}
		return cmp.Compare(a.Restaurant.Name, b.Restaurant.Name)
	})
	return out, nil
}

func (r memCandidates) Get(_ context.Context, orderID, restaurantID uuid.UUID) (*models.CandidateDistance, error) {
	var out *models.CandidateDistance
	r.with(func(st *memState) {
		for _, v := range st.candidates[orderID] {
			if v.RestaurantID == restaurantID {
				out = &v
				return
			}
		}
	})
	return out, nil
}

// ---- geocoder ----

type fakeGeocoder struct {
	mu     sync.Mutex
	coords map[string]geo.Coordinates
	calls  map[string]int

	inflight atomic.Int32
	peak     atomic.Int32
	delay    time.Duration
}

func newFakeGeocoder() *fakeGeocoder {
	return &fakeGeocoder{coords: map[string]geo.Coordinates{}, calls: map[string]int{}}
}

func (g *fakeGeocoder) set(address string, c geo.Coordinates) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.coords[address] = c
}

func (g *fakeGeocoder) callsFor(address string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[address]
}

func (g *fakeGeocoder) Resolve(ctx context.Context, address string) (geo.Coordinates, error) {
	n := g.inflight.Add(1)
	defer g.inflight.Add(-1)
	for {
		p := g.peak.Load()
		if n <= p || g.peak.CompareAndSwap(p, n) {
			break
		}
	}
	if g.delay > 0 {
		select {
		case <-time.After(g.delay):
		case <-ctx.Done():
			return geo.Coordinates{}, ctx.Err()
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls[address]++
	c, ok := g.coords[address]
	if !ok {
		return geo.Coordinates{}, fmt.Errorf("%w: no results for %q", geocoder.ErrUnresolvable, address)
	}
	return c, nil
}

// ---- events ----

type MockEventBus struct {
	mu       sync.Mutex
	Created  []service.OrderCreatedEvent
	Assigned []service.RestaurantAssignedEvent
	Changed  []service.StatusChangedEvent

	PublishOrderCreatedFunc func(ctx context.Context, e service.OrderCreatedEvent) error
}

func (m *MockEventBus) PublishOrderCreated(ctx context.Context, e service.OrderCreatedEvent) error {
	m.mu.Lock()
	m.Created = append(m.Created, e)
	m.mu.Unlock()
	if m.PublishOrderCreatedFunc != nil {
		return m.PublishOrderCreatedFunc(ctx, e)
	}
	return nil
}

func (m *MockEventBus) PublishRestaurantAssigned(_ context.Context, e service.RestaurantAssignedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Assigned = append(m.Assigned, e)
	return nil
}

func (m *MockEventBus) PublishStatusChanged(_ context.Context, e service.StatusChangedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Changed = append(m.Changed, e)
	return nil
}
