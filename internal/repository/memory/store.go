// internal/repository/memory/store.go
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/juggernaut03/kalakritBackend/internal/apperrors"
	"github.com/juggernaut03/kalakritBackend/internal/models"
)

// Store keeps every collection in process memory. It honors the same
// contracts as the Mongo repositories, including unique keys and the
// non-negative wallet, and is used for tests and local runs.
type Store struct {
	mu            sync.RWMutex
	users         []*models.User
	products      []*models.Product
	orders        []*models.Order
	notifications []*models.Notification
}

func NewStore() *Store {
	return &Store{}
}

type UserRepository struct{ s *Store }
type ProductRepository struct{ s *Store }
type OrderRepository struct{ s *Store }
type NotificationRepository struct{ s *Store }

func (s *Store) Users() *UserRepository                 { return &UserRepository{s} }
func (s *Store) Products() *ProductRepository           { return &ProductRepository{s} }
func (s *Store) Orders() *OrderRepository               { return &OrderRepository{s} }
func (s *Store) Notifications() *NotificationRepository { return &NotificationRepository{s} }

// Users

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Email == user.Email {
			return apperrors.New(apperrors.ErrConflict, "")
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	copied := *user
	r.s.users = append(r.s.users, &copied)
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, user := range r.s.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.New(apperrors.ErrNotFound, "")
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, user := range r.s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.New(apperrors.ErrNotFound, "")
}

func (r *UserRepository) IncrementWallet(ctx context.Context, id primitive.ObjectID, amount float64) (float64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, user := range r.s.users {
		if user.ID == id {
			next := user.Wallet + amount
			if next < 0 {
				return user.Wallet, apperrors.New(apperrors.ErrInsufficientFunds, "")
			}
			if amount > 0 && next > models.MaxWalletBalance {
				return user.Wallet, apperrors.New(apperrors.ErrInvalidInput, "")
			}
			user.Wallet = next
			return user.Wallet, nil
		}
	}
	return 0, apperrors.New(apperrors.ErrNotFound, "")
}

// Products

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	copied := *product
	copied.Images = append([]string(nil), product.Images...)
	r.s.products = append(r.s.products, &copied)
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, product := range r.s.products {
		if product.ID == id {
			copied := *product
			return &copied, nil
		}
	}
	return nil, apperrors.New(apperrors.ErrNotFound, "")
}

func (r *ProductRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	wanted := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	result := []models.Product{}
	for _, product := range r.s.products {
		if wanted[product.ID] {
			result = append(result, *product)
		}
	}
	return result, nil
}

// List returns matching products, newest first.
func (r *ProductRepository) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := []models.Product{}
	for _, product := range r.s.products {
		if filter.Category != "" && product.Category != filter.Category {
			continue
		}
		if !filter.Artisan.IsZero() && product.Artisan != filter.Artisan {
			continue
		}
		result = append(result, *product)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// Categories groups in insertion order; the first product seen in a
// category supplies its description and icon.
func (r *ProductRepository) Categories(ctx context.Context) ([]models.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	index := make(map[string]int)
	result := []models.Category{}
	for _, product := range r.s.products {
		i, ok := index[product.Category]
		if !ok {
			category := models.Category{Name: product.Category, Description: product.Description}
			if len(product.Images) > 0 {
				category.Icon = product.Images[0]
			}
			index[product.Category] = len(result)
			result = append(result, category)
			i = len(result) - 1
		}
		result[i].Products++
	}
	return result, nil
}

// Orders

func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	if err := order.BeforeInsert(time.Now()); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.orders {
		if existing.OrderNumber == order.OrderNumber {
			return apperrors.New(apperrors.ErrConflict, "")
		}
	}
	copied := *order
	copied.Products = append([]models.OrderItem(nil), order.Products...)
	r.s.orders = append(r.s.orders, &copied)
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, order := range r.s.orders {
		if order.ID == id {
			copied := *order
			return &copied, nil
		}
	}
	return nil, apperrors.New(apperrors.ErrNotFound, "")
}

func (r *OrderRepository) ListByBuyer(ctx context.Context, buyer primitive.ObjectID) ([]models.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := []models.Order{}
	for _, order := range r.s.orders {
		if order.Buyer == buyer {
			result = append(result, *order)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to models.OrderStatus, at time.Time) (*models.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, order := range r.s.orders {
		if order.ID == id && order.Status == from {
			order.Status = to
			updatedAt := at.UTC()
			order.UpdatedAt = &updatedAt
			copied := *order
			return &copied, nil
		}
	}
	return nil, apperrors.New(apperrors.ErrNotFound, "")
}

// Notifications

func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if notification.ID.IsZero() {
		notification.ID = primitive.NewObjectID()
	}
	copied := *notification
	r.s.notifications = append(r.s.notifications, &copied)
	return nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, user primitive.ObjectID) ([]models.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := []models.Notification{}
	for _, notification := range r.s.notifications {
		if notification.User == user {
			result = append(result, *notification)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id, user primitive.ObjectID) (*models.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, notification := range r.s.notifications {
		if notification.ID == id && notification.User == user {
			notification.Read = true
			copied := *notification
			return &copied, nil
		}
	}
	return nil, apperrors.New(apperrors.ErrNotFound, "")
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, user primitive.ObjectID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var updated int64
	for _, notification := range r.s.notifications {
		if notification.User == user && !notification.Read {
			notification.Read = true
			updated++
		}
	}
	return updated, nil
}
