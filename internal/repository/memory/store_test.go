package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/juggernaut03/kalakritBackend/internal/apperrors"
	"github.com/juggernaut03/kalakritBackend/internal/models"
)

func TestUserEmailIsUnique(t *testing.T) {
	users := NewStore().Users()
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &models.User{Email: "asha@example.com"}))
	err := users.Create(ctx, &models.User{Email: "asha@example.com"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = users.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestIncrementWalletNeverGoesNegative(t *testing.T) {
	users := NewStore().Users()
	ctx := context.Background()
	user := &models.User{Email: "ravi@example.com", Wallet: 100}
	require.NoError(t, users.Create(ctx, user))

	balance, err := users.IncrementWallet(ctx, user.ID, -150)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
	assert.Equal(t, 100.0, balance)

	balance, err = users.IncrementWallet(ctx, user.ID, -100)
	require.NoError(t, err)
	assert.Equal(t, 0.0, balance)

	_, err = users.IncrementWallet(ctx, primitive.NewObjectID(), 10)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestIncrementWalletStaysWithinLimit(t *testing.T) {
	users := NewStore().Users()
	ctx := context.Background()
	user := &models.User{Email: "ravi@example.com"}
	require.NoError(t, users.Create(ctx, user))

	for i := 0; i < 2; i++ {
		balance, err := users.IncrementWallet(ctx, user.ID, 1.7e308)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		assert.Equal(t, 0.0, balance)
	}

	balance, err := users.IncrementWallet(ctx, user.ID, models.MaxWalletBalance)
	require.NoError(t, err)
	assert.Equal(t, models.MaxWalletBalance, balance)

	_, err = users.IncrementWallet(ctx, user.ID, 1)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	balance, err = users.IncrementWallet(ctx, user.ID, -1)
	require.NoError(t, err)
	assert.Equal(t, models.MaxWalletBalance-1, balance)
}

func TestCategoriesFirstProductWins(t *testing.T) {
	products := NewStore().Products()
	ctx := context.Background()

	add := func(category, description string, images ...string) {
		require.NoError(t, products.Create(ctx, &models.Product{Category: category, Description: description, Images: images}))
	}
	add("Pottery", "Hand thrown clay", "https://img/pot1.jpg", "https://img/pot1b.jpg")
	add("Textile", "Block printed cotton")
	add("Pottery", "Glazed bowl", "https://img/pot2.jpg")

	categories, err := products.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)

	assert.Equal(t, models.Category{Name: "Pottery", Icon: "https://img/pot1.jpg", Description: "Hand thrown clay", Products: 2}, categories[0])
	assert.Equal(t, models.Category{Name: "Textile", Description: "Block printed cotton", Products: 1}, categories[1])
}

func TestOrderStatusCompareAndSet(t *testing.T) {
	orders := NewStore().Orders()
	ctx := context.Background()
	order := &models.Order{Buyer: primitive.NewObjectID()}
	require.NoError(t, orders.Create(ctx, order))
	require.NotEmpty(t, order.OrderNumber)

	updated, err := orders.UpdateStatus(ctx, order.ID, models.OrderStatusPending, models.OrderStatusProcessing, time.Now())
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, updated.Status)
	assert.NotNil(t, updated.UpdatedAt)

	_, err = orders.UpdateStatus(ctx, order.ID, models.OrderStatusPending, models.OrderStatusCancelled, time.Now())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	duplicate := &models.Order{Buyer: order.Buyer, OrderNumber: order.OrderNumber}
	assert.ErrorIs(t, orders.Create(ctx, duplicate), apperrors.ErrConflict)
}

func TestNotificationsScopedToOwner(t *testing.T) {
	notifications := NewStore().Notifications()
	ctx := context.Background()
	owner, stranger := primitive.NewObjectID(), primitive.NewObjectID()

	older := &models.Notification{User: owner, Type: models.NotificationTypeOrder, Message: "first"}
	older.CreatedAt = time.Now().Add(-time.Minute)
	newer := &models.Notification{User: owner, Type: models.NotificationTypeSystem, Message: "second"}
	newer.CreatedAt = time.Now()
	require.NoError(t, notifications.Create(ctx, older))
	require.NoError(t, notifications.Create(ctx, newer))

	list, err := notifications.ListByUser(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Message)

	_, err = notifications.MarkRead(ctx, older.ID, stranger)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	read, err := notifications.MarkRead(ctx, older.ID, owner)
	require.NoError(t, err)
	assert.True(t, read.Read)

	count, err := notifications.MarkAllRead(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
