// internal/services/repositories.go
package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/juggernaut03/kalakritBackend/internal/models"
)

// Repositories return apperrors kinds: ErrNotFound for a missing document,
// ErrConflict for a unique index violation.

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// IncrementWallet atomically adds amount and returns the new balance.
	// It fails with ErrInsufficientFunds when the result would be negative
	// and ErrInvalidInput when it would exceed models.MaxWalletBalance.
	IncrementWallet(ctx context.Context, id primitive.ObjectID, amount float64) (float64, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error)
	List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	Categories(ctx context.Context) ([]models.Category, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	ListByBuyer(ctx context.Context, buyer primitive.ObjectID) ([]models.Order, error)
	// UpdateStatus changes the status only if it still equals from.
	UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to models.OrderStatus, at time.Time) (*models.Order, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByUser(ctx context.Context, user primitive.ObjectID) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, user primitive.ObjectID) (*models.Notification, error)
	MarkAllRead(ctx context.Context, user primitive.ObjectID) (int64, error)
}

// Clock is swapped in tests.
type Clock func() time.Time
