package services

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juggernaut03/kalakritBackend/internal/apperrors"
	"github.com/juggernaut03/kalakritBackend/internal/models"
)

func TestWalletAddFunds(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	buyer := env.register("Ravi", "ravi@example.com", "buyer")

	balance, err := env.wallet.GetBalance(ctx, buyer.User.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, balance.Balance)

	balance, err = env.wallet.AddFunds(ctx, buyer.User.ID, &AddFundsRequest{Amount: number(100)})
	require.NoError(t, err)
	assert.Equal(t, 100.0, balance.Balance)

	balance, err = env.wallet.AddFunds(ctx, buyer.User.ID, &AddFundsRequest{Amount: number(50)})
	require.NoError(t, err)
	assert.Equal(t, 150.0, balance.Balance)

	balance, err = env.wallet.AddFunds(ctx, buyer.User.ID, &AddFundsRequest{Amount: number(-100)})
	require.NoError(t, err)
	assert.Equal(t, 50.0, balance.Balance)

	_, err = env.wallet.AddFunds(ctx, buyer.User.ID, &AddFundsRequest{Amount: number(-75)})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
	assert.Equal(t, 400, apperrors.StatusCode(err))

	balance, err = env.wallet.GetBalance(ctx, buyer.User.ID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, balance.Balance)

	notifications, err := env.notifications.GetNotifications(ctx, buyer.User.ID)
	require.NoError(t, err)
	assert.Len(t, notifications, 3)
	for _, n := range notifications {
		assert.Equal(t, models.NotificationTypePayment, n.Type)
	}
}

func TestWalletAddFundsValidation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	buyer := env.register("Ravi", "ravi@example.com", "buyer")

	_, err := env.wallet.AddFunds(ctx, buyer.User.ID, &AddFundsRequest{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = env.wallet.AddFunds(ctx, buyer.User.ID, &AddFundsRequest{Amount: number(math.Inf(1))})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = env.wallet.AddFunds(ctx, buyer.User.ID, &AddFundsRequest{Amount: number(math.NaN())})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = env.wallet.AddFunds(ctx, "65f000000000000000000000", &AddFundsRequest{Amount: number(10)})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestWalletAddFundsRejectsOverflow(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	buyer := env.register("Ravi", "ravi@example.com", "buyer")

	for i := 0; i < 2; i++ {
		_, err := env.wallet.AddFunds(ctx, buyer.User.ID, &AddFundsRequest{Amount: number(1.7e308)})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		assert.Equal(t, 400, apperrors.StatusCode(err))
	}

	balance, err := env.wallet.AddFunds(ctx, buyer.User.ID, &AddFundsRequest{Amount: number(models.MaxWalletBalance)})
	require.NoError(t, err)
	assert.Equal(t, models.MaxWalletBalance, balance.Balance)

	_, err = env.wallet.AddFunds(ctx, buyer.User.ID, &AddFundsRequest{Amount: number(0.01)})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	balance, err = env.wallet.GetBalance(ctx, buyer.User.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MaxWalletBalance, balance.Balance)
}
