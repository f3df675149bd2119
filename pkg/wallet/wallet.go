// Package wallet is the only code path that changes an account balance. Every
// change is written together with the ledger entry that describes it.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chris/sportsbook-ledger/pkg/metrics"
	"github.com/chris/sportsbook-ledger/pkg/models"
	"github.com/chris/sportsbook-ledger/pkg/storage"
	"github.com/chris/sportsbook-ledger/pkg/websockets"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInvalidAmount is returned for a zero or negative amount.
var ErrInvalidAmount = errors.New("amount must be greater than zero")

const (
	defaultPaymentMethod    = "credit card"
	defaultWithdrawalMethod = "bank account"
	defaultBonusReason      = "Bonus awarded by admin"
)

// Entry describes the ledger record written with a balance change.
// Amount, account and timestamps are filled in by the service.
type Entry struct {
	Type          models.TransactionType
	WagerID       string
	Reference     string
	Description   string
	PaymentMethod string
}

// Result is the ledger entry written by an operation and the account state after it.
type Result struct {
	Transaction *models.Transaction `json:"transaction"`
	Wallet      models.Wallet       `json:"wallet"`
}

// Service implements balance reads and mutations.
type Service struct {
	store     storage.WalletStore
	publisher websockets.Publisher
	metrics   *metrics.Metrics
	log       *zap.Logger
	now       func() time.Time
}

// NewService creates a wallet Service.
func NewService(store storage.WalletStore, publisher websockets.Publisher, m *metrics.Metrics, log *zap.Logger) *Service {
	return &Service{store: store, publisher: publisher, metrics: m, log: log, now: time.Now}
}

// Balance returns the wallet of accountID.
func (s *Service) Balance(ctx context.Context, accountID string) (models.Wallet, error) {
	account, err := s.store.GetAccount(ctx, accountID)
	if err != nil {
		return models.Wallet{}, err
	}
	return account.Wallet, nil
}

// Credit increases the balance of accountID by amount.
func (s *Service) Credit(ctx context.Context, accountID string, amount models.Money, entry Entry) (*Result, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	return s.apply(ctx, accountID, amount, entry)
}

// Debit decreases the balance of accountID by amount. The store rejects the write
// with storage.ErrInsufficientFunds when amount exceeds the balance at commit time.
func (s *Service) Debit(ctx context.Context, accountID string, amount models.Money, entry Entry) (*Result, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	return s.apply(ctx, accountID, amount.Negated(), entry)
}

// Deposit simulates a successful payment into the wallet.
func (s *Service) Deposit(ctx context.Context, accountID string, amount models.Money, paymentMethod string) (*Result, error) {
	method := paymentMethod
	if method == "" {
		method = defaultPaymentMethod
	}
	return s.Credit(ctx, accountID, amount, Entry{
		Type:          models.TxDeposit,
		Reference:     fmt.Sprintf("DEP-%d", s.now().UnixMilli()),
		Description:   "Deposit via " + method,
		PaymentMethod: paymentMethod,
	})
}

// Withdraw simulates a payout from the wallet.
func (s *Service) Withdraw(ctx context.Context, accountID string, amount models.Money, withdrawalMethod string) (*Result, error) {
	method := withdrawalMethod
	if method == "" {
		method = defaultWithdrawalMethod
	}
	return s.Debit(ctx, accountID, amount, Entry{
		Type:          models.TxWithdrawal,
		Reference:     fmt.Sprintf("WIT-%d", s.now().UnixMilli()),
		Description:   "Withdrawal to " + method,
		PaymentMethod: withdrawalMethod,
	})
}

// Bonus credits an operator-awarded bonus.
func (s *Service) Bonus(ctx context.Context, accountID string, amount models.Money, reason string) (*Result, error) {
	if reason == "" {
		reason = defaultBonusReason
	}
	return s.Credit(ctx, accountID, amount, Entry{
		Type:        models.TxBonus,
		Reference:   fmt.Sprintf("BON-%d", s.now().UnixMilli()),
		Description: reason,
	})
}

func (s *Service) apply(ctx context.Context, accountID string, delta models.Money, entry Entry) (*Result, error) {
	currency := models.DefaultCurrency
	if account, err := s.store.GetAccount(ctx, accountID); err != nil {
		return nil, err
	} else if account.Wallet.Currency != "" {
		currency = account.Wallet.Currency
	}

	tx := &models.Transaction{
		Id:            uuid.New().String(),
		AccountId:     accountID,
		WagerId:       entry.WagerID,
		Type:          entry.Type,
		Amount:        delta,
		Currency:      currency,
		Status:        models.TxCompleted,
		Reference:     entry.Reference,
		Description:   entry.Description,
		PaymentMethod: entry.PaymentMethod,
		CreatedAt:     s.now().UTC(),
	}

	account, err := s.store.ApplyWalletEntry(ctx, accountID, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to apply %s to wallet: %w", entry.Type, err)
	}

	s.metrics.WalletOperations.WithLabelValues(string(entry.Type)).Inc()

	if err := s.publisher.Publish(ctx, websockets.WalletUpdate(tx, account)); err != nil {
		s.log.Error("failed to publish wallet update", zap.String("account_id", accountID), zap.Error(err))
	}

	return &Result{Transaction: tx, Wallet: account.Wallet}, nil
}
