package websockets

import (
	"github.com/chris/sportsbook-ledger/pkg/models"
)

// MessageType defines the type of a WebSocket message.
type MessageType string

const (
	// MessageTypeWalletUpdate is for messages that update wallet balances.
	MessageTypeWalletUpdate MessageType = "walletUpdate"
	// MessageTypeWagerSettled tells the bettor one of their wagers reached a final status.
	MessageTypeWagerSettled MessageType = "wagerSettled"
)

// Message represents a generic WebSocket message addressed to one account.
type Message struct {
	Type      MessageType `json:"type"`
	AccountID string      `json:"-"`
	Payload   interface{} `json:"payload"`
}

// WalletUpdatePayload is the payload for a walletUpdate message.
type WalletUpdatePayload struct {
	AccountID     string                 `json:"account_id"`
	TransactionID string                 `json:"transaction_id"`
	Type          models.TransactionType `json:"type"`
	Change        models.Money           `json:"change"`
	NewBalance    models.Money           `json:"new_balance"`
	Currency      string                 `json:"currency"`
}

// WagerSettledPayload is the payload for a wagerSettled message.
type WagerSettledPayload struct {
	WagerID       string             `json:"wager_id"`
	Status        models.WagerStatus `json:"status"`
	Result        models.WagerResult `json:"result"`
	SettledAmount models.Money       `json:"settled_amount"`
}

// WalletUpdate builds the walletUpdate message for a ledger entry and the resulting account state.
func WalletUpdate(entry *models.Transaction, account *models.Account) Message {
	return Message{
		Type:      MessageTypeWalletUpdate,
		AccountID: account.Id,
		Payload: WalletUpdatePayload{
			AccountID:     account.Id,
			TransactionID: entry.Id,
			Type:          entry.Type,
			Change:        entry.Amount,
			NewBalance:    account.Wallet.Balance,
			Currency:      account.Wallet.Currency,
		},
	}
}
