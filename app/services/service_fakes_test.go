package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rakhshan/go-storefront/app/models"
	"github.com/rakhshan/go-storefront/app/repositories"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// memStore is the shared in-memory state behind the fake repositories. The
// fake transactor snapshots it before a "transaction" and restores it when
// the transaction function fails, mirroring a database rollback.
type memStore struct {
	products   map[string]models.Product
	cartItems  map[string]models.CartItem
	orders     map[string]models.Order
	orderItems map[string]models.OrderItem
	users      map[string]models.User
	favorites  map[string]models.Favorite
	clock      time.Time
}

func newMemStore() *memStore {
	return &memStore{
		products:   make(map[string]models.Product),
		cartItems:  make(map[string]models.CartItem),
		orders:     make(map[string]models.Order),
		orderItems: make(map[string]models.OrderItem),
		users:      make(map[string]models.User),
		favorites:  make(map[string]models.Favorite),
		clock:      time.Unix(1700000000, 0),
	}
}

func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *memStore) addProduct(name string, price string) models.Product {
	p := models.Product{
		ID:    uuid.New().String(),
		Name:  name,
		Price: decimal.RequireFromString(price),
	}
	s.products[p.ID] = p
	return p
}

func copyMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *memStore) snapshot() *memStore {
	return &memStore{
		products:   copyMap(s.products),
		cartItems:  copyMap(s.cartItems),
		orders:     copyMap(s.orders),
		orderItems: copyMap(s.orderItems),
		users:      copyMap(s.users),
		favorites:  copyMap(s.favorites),
		clock:      s.clock,
	}
}

func (s *memStore) restore(snap *memStore) {
	s.products = snap.products
	s.cartItems = snap.cartItems
	s.orders = snap.orders
	s.orderItems = snap.orderItems
	s.users = snap.users
	s.favorites = snap.favorites
	s.clock = snap.clock
}

type fakeTransactor struct {
	store *memStore
}

func (t *fakeTransactor) WithinTransaction(_ context.Context, fn func(tx *gorm.DB) error) error {
	snap := t.store.snapshot()
	if err := fn(nil); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}

// --- cart items ---

type fakeCartItemRepo struct {
	store *memStore
}

var _ repositories.CartItemRepositoryImpl = (*fakeCartItemRepo)(nil)

func (r *fakeCartItemRepo) Add(_ context.Context, item *models.CartItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	item.CreatedAt = r.store.tick()
	r.store.cartItems[item.ID] = *item
	return nil
}

func (r *fakeCartItemRepo) Update(_ context.Context, item *models.CartItem) error {
	r.store.cartItems[item.ID] = *item
	return nil
}

func (r *fakeCartItemRepo) Delete(_ context.Context, id string) error {
	delete(r.store.cartItems, id)
	return nil
}

func (r *fakeCartItemRepo) GetByID(_ context.Context, id string) (*models.CartItem, error) {
	item, ok := r.store.cartItems[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (r *fakeCartItemRepo) GetByUserID(_ context.Context, userID string) ([]models.CartItem, error) {
	var items []models.CartItem
	for _, item := range r.store.cartItems {
		if item.UserID != userID {
			continue
		}
		if product, ok := r.store.products[item.ProductID]; ok {
			p := product
			item.Product = &p
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	return items, nil
}

func (r *fakeCartItemRepo) GetByUserAndProduct(_ context.Context, userID, productID string) (*models.CartItem, error) {
	for _, item := range r.store.cartItems {
		if item.UserID == userID && item.ProductID == productID {
			found := item
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeCartItemRepo) ClearForUser(_ context.Context, _ *gorm.DB, userID string) error {
	for id, item := range r.store.cartItems {
		if item.UserID == userID {
			delete(r.store.cartItems, id)
		}
	}
	return nil
}

// --- products ---

type fakeProductRepo struct {
	store *memStore
}

var _ repositories.ProductRepositoryImpl = (*fakeProductRepo)(nil)

func (r *fakeProductRepo) Search(_ context.Context, filter repositories.ProductFilter) ([]models.Product, error) {
	var products []models.Product
	for _, p := range r.store.products {
		if filter.Query != "" && !strings.Contains(p.Name, filter.Query) {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		products = append(products, p)
	}
	switch filter.Sort {
	case repositories.SortPriceAsc:
		sort.Slice(products, func(i, j int) bool { return products[i].Price.LessThan(products[j].Price) })
	case repositories.SortPriceDesc:
		sort.Slice(products, func(i, j int) bool { return products[i].Price.GreaterThan(products[j].Price) })
	}
	return products, nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*models.Product, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *fakeProductRepo) Create(_ context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	r.store.products[product.ID] = *product
	return nil
}

func (r *fakeProductRepo) Update(_ context.Context, product *models.Product) error {
	r.store.products[product.ID] = *product
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	delete(r.store.products, id)
	return nil
}

func (r *fakeProductRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.store.products)), nil
}

// --- orders ---

type fakeOrderRepo struct {
	store *memStore
}

var _ repositories.OrderRepository = (*fakeOrderRepo)(nil)

func (r *fakeOrderRepo) Create(_ context.Context, _ *gorm.DB, order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	order.CreatedAt = r.store.tick()
	r.store.orders[order.ID] = *order
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*models.Order, error) {
	order, ok := r.store.orders[id]
	if !ok {
		return nil, nil
	}
	return &order, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, orderID string, status string) error {
	order, ok := r.store.orders[orderID]
	if !ok {
		return nil
	}
	order.Status = status
	r.store.orders[orderID] = order
	return nil
}

func (r *fakeOrderRepo) GetAll(_ context.Context, usernameFilter string) ([]models.Order, error) {
	var orders []models.Order
	for _, order := range r.store.orders {
		owner, ok := r.store.users[order.UserID]
		if !ok {
			continue
		}
		if usernameFilter != "" && !strings.Contains(owner.Username, usernameFilter) {
			continue
		}
		order.User = owner
		orders = append(orders, order)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders, nil
}

func (r *fakeOrderRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.store.orders)), nil
}

func (r *fakeOrderRepo) SumTotalPrice(_ context.Context) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, order := range r.store.orders {
		sum = sum.Add(order.TotalPrice)
	}
	return sum, nil
}

// --- order items ---

type fakeOrderItemRepo struct {
	store    *memStore
	failWith error
}

var _ repositories.OrderItemRepository = (*fakeOrderItemRepo)(nil)

func (r *fakeOrderItemRepo) BulkCreate(_ context.Context, _ *gorm.DB, items []models.OrderItem) error {
	if r.failWith != nil {
		return r.failWith
	}
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.New().String()
		}
		r.store.orderItems[items[i].ID] = items[i]
	}
	return nil
}

func (r *fakeOrderItemRepo) GetByOrderID(_ context.Context, orderID string) ([]models.OrderItem, error) {
	var items []models.OrderItem
	for _, item := range r.store.orderItems {
		if item.OrderID == orderID {
			items = append(items, item)
		}
	}
	return items, nil
}

// --- users ---

type fakeUserRepo struct {
	store *memStore
}

var _ repositories.UserRepositoryImpl = (*fakeUserRepo)(nil)

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	hashPass, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	user.Password = string(hashPass)
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	r.store.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	user, ok := r.store.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range r.store.users {
		if user.Username == username {
			found := user
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.store.users)), nil
}

// --- favorites ---

type fakeFavoriteRepo struct {
	store *memStore
}

var _ repositories.FavoriteRepository = (*fakeFavoriteRepo)(nil)

func (r *fakeFavoriteRepo) Create(_ context.Context, favorite *models.Favorite) error {
	if favorite.ID == "" {
		favorite.ID = uuid.New().String()
	}
	favorite.CreatedAt = r.store.tick()
	r.store.favorites[favorite.ID] = *favorite
	return nil
}

func (r *fakeFavoriteRepo) Delete(_ context.Context, userID, productID string) error {
	for id, favorite := range r.store.favorites {
		if favorite.UserID == userID && favorite.ProductID == productID {
			delete(r.store.favorites, id)
		}
	}
	return nil
}

func (r *fakeFavoriteRepo) GetByUserAndProduct(_ context.Context, userID, productID string) (*models.Favorite, error) {
	for _, favorite := range r.store.favorites {
		if favorite.UserID == userID && favorite.ProductID == productID {
			found := favorite
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeFavoriteRepo) GetByUserID(_ context.Context, userID string) ([]models.Favorite, error) {
	var favorites []models.Favorite
	for _, favorite := range r.store.favorites {
		if favorite.UserID == userID {
			favorites = append(favorites, favorite)
		}
	}
	sort.Slice(favorites, func(i, j int) bool { return favorites[i].CreatedAt.After(favorites[j].CreatedAt) })
	return favorites, nil
}
