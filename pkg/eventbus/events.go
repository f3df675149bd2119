package eventbus

import (
	"github.com/chris/sportsbook-ledger/pkg/models"
)

const (
	TopicWagerPlaced  = "wager_placed"
	TopicWagerSettled = "wager_settled"
)

// WagerPlaced is emitted once a wager is funded and recorded.
type WagerPlaced struct {
	WagerID           string       `json:"wager_id"`
	AccountID         string       `json:"account_id"`
	EventID           string       `json:"event_id"`
	Selection         string       `json:"selection"`
	Odds              string       `json:"odds"`
	Stake             models.Money `json:"stake"`
	PotentialWinnings models.Money `json:"potential_winnings"`
	IsLiveBet         bool         `json:"is_live_bet"`
	TsUnixMs          int64        `json:"ts_unix_ms"`
}

// WagerSettled is emitted once a wager leaves the pending state.
type WagerSettled struct {
	WagerID       string             `json:"wager_id"`
	AccountID     string             `json:"account_id"`
	EventID       string             `json:"event_id"`
	Status        models.WagerStatus `json:"status"`
	Result        models.WagerResult `json:"result"`
	SettledAmount models.Money       `json:"settled_amount"`
	TsUnixMs      int64              `json:"ts_unix_ms"`
}

// NewWagerPlaced builds the event for w.
func NewWagerPlaced(w *models.Wager) WagerPlaced {
	return WagerPlaced{
		WagerID:           w.Id,
		AccountID:         w.AccountId,
		EventID:           w.EventId,
		Selection:         w.Selection,
		Odds:              w.Odds,
		Stake:             w.Stake,
		PotentialWinnings: w.PotentialWinnings,
		IsLiveBet:         w.IsLiveBet,
	}
}

// NewWagerSettled builds the event for a settled w.
func NewWagerSettled(w *models.Wager) WagerSettled {
	return WagerSettled{
		WagerID:       w.Id,
		AccountID:     w.AccountId,
		EventID:       w.EventId,
		Status:        w.Status,
		Result:        w.Result,
		SettledAmount: w.SettledAmount,
	}
}
