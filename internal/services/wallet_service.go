// internal/services/wallet_service.go
package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/juggernaut03/kalakritBackend/internal/apperrors"
	"github.com/juggernaut03/kalakritBackend/internal/i18n"
	"github.com/juggernaut03/kalakritBackend/internal/metrics"
	"github.com/juggernaut03/kalakritBackend/internal/models"
)

type WalletService struct {
	users    UserRepository
	notifier Notifier
}

type AddFundsRequest struct {
	Amount *models.Number `json:"amount" validate:"required,finite"`
}

type BalanceResponse struct {
	Balance float64 `json:"balance"`
}

func NewWalletService(users UserRepository, notifier Notifier) *WalletService {
	return &WalletService{
		users:    users,
		notifier: notifier,
	}
}

func (s *WalletService) GetBalance(ctx context.Context, userID string) (*BalanceResponse, error) {
	id, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound(i18n.KeyUserNotFound)
		}
		return nil, err
	}
	return &BalanceResponse{Balance: user.Wallet}, nil
}

// AddFunds applies amount with a single atomic increment. Negative amounts
// are allowed as long as the balance stays at or above zero; credits may
// not push it past models.MaxWalletBalance.
func (s *WalletService) AddFunds(ctx context.Context, userID string, req *AddFundsRequest) (*BalanceResponse, error) {
	id, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	amount := req.Amount.Float()
	balance, err := s.users.IncrementWallet(ctx, id, amount)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInsufficientFunds):
			metrics.WalletCredits.WithLabelValues("rejected").Inc()
			return nil, apperrors.New(apperrors.ErrInsufficientFunds, i18n.KeyWalletInsufficientFunds)
		case errors.Is(err, apperrors.ErrInvalidInput):
			metrics.WalletCredits.WithLabelValues("rejected").Inc()
			return nil, apperrors.Validation(i18n.KeyWalletLimitExceeded, models.MaxWalletBalance)
		case errors.Is(err, apperrors.ErrNotFound):
			return nil, apperrors.NotFound(i18n.KeyUserNotFound)
		}
		return nil, err
	}

	metrics.WalletCredits.WithLabelValues("ok").Inc()
	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"amount":  amount,
		"balance": balance,
	}).Info("Wallet updated")

	if s.notifier != nil {
		s.notifier.Notify(ctx, id, models.NotificationTypePayment,
			i18n.T(i18n.DefaultLang, i18n.KeyWalletFundsAdded, amount, balance))
	}

	return &BalanceResponse{Balance: balance}, nil
}
