package models

import (
	"time"
)

// Role is the privilege level of an account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// DefaultCurrency is used for new wallets and ledger entries when none is configured.
const DefaultCurrency = "USD"

// Wallet is the monetary sub-record of an account.
type Wallet struct {
	Balance  Money  `json:"balance" dynamodbav:"balance"`
	Currency string `json:"currency" dynamodbav:"currency"`
}

// Account represents a bettor or an operator.
type Account struct {
	Id         string    `json:"id" dynamodbav:"id"`
	Username   string    `json:"username" dynamodbav:"username"`
	Email      string    `json:"email" dynamodbav:"email"`
	Role       Role      `json:"role" dynamodbav:"role"`
	IsVerified bool      `json:"is_verified" dynamodbav:"is_verified"`
	Wallet     Wallet    `json:"wallet" dynamodbav:"wallet"`
	Version    int64     `json:"version" dynamodbav:"version"`
	CreatedAt  time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

// EventStatus defines the lifecycle states of a sporting event.
type EventStatus string

const (
	EventUpcoming  EventStatus = "upcoming"
	EventLive      EventStatus = "live"
	EventCompleted EventStatus = "completed"
	EventCancelled EventStatus = "cancelled"
)

// AcceptsWagers reports whether bets may be placed on an event in this state.
func (s EventStatus) AcceptsWagers() bool {
	return s == EventUpcoming || s == EventLive
}

// Valid reports whether s is a known event status.
func (s EventStatus) Valid() bool {
	switch s {
	case EventUpcoming, EventLive, EventCompleted, EventCancelled:
		return true
	}
	return false
}

// Competitor is one side of an event together with its current decimal odds.
type Competitor struct {
	Name string `json:"name" dynamodbav:"name"`
	Logo string `json:"logo,omitempty" dynamodbav:"logo,omitempty"`
	Odds string `json:"odds" dynamodbav:"odds"`
}

// EventResult is filled in once an event is completed.
type EventResult struct {
	Winner string `json:"winner,omitempty" dynamodbav:"winner,omitempty"`
	Score  string `json:"score,omitempty" dynamodbav:"score,omitempty"`
}

// Event is a catalog entry that wagers are placed against.
type Event struct {
	Id          string       `json:"id" dynamodbav:"id"`
	Title       string       `json:"title" dynamodbav:"title"`
	League      string       `json:"league" dynamodbav:"league"`
	Description string       `json:"description,omitempty" dynamodbav:"description,omitempty"`
	Date        time.Time    `json:"date" dynamodbav:"date"`
	Time        string       `json:"time" dynamodbav:"time"`
	Competitors []Competitor `json:"competitors" dynamodbav:"competitors"`
	Venue       string       `json:"venue,omitempty" dynamodbav:"venue,omitempty"`
	IsFeatured  bool         `json:"is_featured" dynamodbav:"is_featured"`
	IsPopular   bool         `json:"is_popular" dynamodbav:"is_popular"`
	Status      EventStatus  `json:"status" dynamodbav:"status"`
	Result      *EventResult `json:"result,omitempty" dynamodbav:"result,omitempty"`
	CreatedAt   time.Time    `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" dynamodbav:"updated_at"`
}

// Competitor returns the competitor whose name matches selection.
func (e *Event) Competitor(selection string) (Competitor, bool) {
	for _, c := range e.Competitors {
		if c.Name == selection {
			return c, true
		}
	}
	return Competitor{}, false
}

// EventSummary is the denormalized copy of an event stored on each wager.
type EventSummary struct {
	Title  string    `json:"title" dynamodbav:"title"`
	League string    `json:"league" dynamodbav:"league"`
	Date   time.Time `json:"date" dynamodbav:"date"`
	Time   string    `json:"time" dynamodbav:"time"`
}

// Summary returns the wager-facing summary of the event.
func (e *Event) Summary() EventSummary {
	return EventSummary{Title: e.Title, League: e.League, Date: e.Date, Time: e.Time}
}

// WagerStatus defines the possible states of a wager.
type WagerStatus string

const (
	WagerPending  WagerStatus = "pending"
	WagerWon      WagerStatus = "won"
	WagerLost     WagerStatus = "lost"
	WagerCanceled WagerStatus = "canceled"
	WagerCashout  WagerStatus = "cashout"
	WagerVoid     WagerStatus = "void"
)

// Terminal reports whether no further transition is allowed out of s.
func (s WagerStatus) Terminal() bool {
	return s != WagerPending
}

// WagerResult is the outcome label recorded at settlement.
type WagerResult string

const (
	ResultNone WagerResult = ""
	ResultWin  WagerResult = "win"
	ResultLoss WagerResult = "loss"
	ResultVoid WagerResult = "void"
	ResultPush WagerResult = "push"
)

// Valid reports whether r is a known result label.
func (r WagerResult) Valid() bool {
	switch r {
	case ResultNone, ResultWin, ResultLoss, ResultVoid, ResultPush:
		return true
	}
	return false
}

// Wager is a stake placed on a selection at fixed odds.
type Wager struct {
	Id                string       `json:"id" dynamodbav:"id"`
	AccountId         string       `json:"account_id" dynamodbav:"account_id"`
	EventId           string       `json:"event_id" dynamodbav:"event_id"`
	Event             EventSummary `json:"event" dynamodbav:"event"`
	Selection         string       `json:"selection" dynamodbav:"selection"`
	Odds              string       `json:"odds" dynamodbav:"odds"`
	Stake             Money        `json:"stake" dynamodbav:"stake"`
	PotentialWinnings Money        `json:"potential_winnings" dynamodbav:"potential_winnings"`
	Status            WagerStatus  `json:"status" dynamodbav:"status"`
	Result            WagerResult  `json:"result" dynamodbav:"result"`
	SettledAmount     Money        `json:"settled_amount" dynamodbav:"settled_amount"`
	BetType           string       `json:"bet_type" dynamodbav:"bet_type"`
	IsLiveBet         bool         `json:"is_live_bet" dynamodbav:"is_live_bet"`
	CreatedAt         time.Time    `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at" dynamodbav:"updated_at"`
	SettledAt         *time.Time   `json:"settled_at,omitempty" dynamodbav:"settled_at,omitempty"`
}

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	TxDeposit     TransactionType = "deposit"
	TxWithdrawal  TransactionType = "withdrawal"
	TxBetPlaced   TransactionType = "bet_placed"
	TxBetWon      TransactionType = "bet_won"
	TxBetLost     TransactionType = "bet_lost"
	TxBetCanceled TransactionType = "bet_canceled"
	TxBetVoid     TransactionType = "bet_void"
	TxCashout     TransactionType = "cashout"
	TxBonus       TransactionType = "bonus"
)

// TransactionStatus defines the processing state of a ledger entry.
type TransactionStatus string

const (
	TxPending   TransactionStatus = "pending"
	TxCompleted TransactionStatus = "completed"
	TxFailed    TransactionStatus = "failed"
)

// Transaction is an append-only ledger entry describing one balance change.
type Transaction struct {
	Id            string            `json:"id" dynamodbav:"id"`
	AccountId     string            `json:"account_id" dynamodbav:"account_id"`
	WagerId       string            `json:"wager_id,omitempty" dynamodbav:"wager_id,omitempty"`
	Type          TransactionType   `json:"type" dynamodbav:"type"`
	Amount        Money             `json:"amount" dynamodbav:"amount"`
	Currency      string            `json:"currency" dynamodbav:"currency"`
	Status        TransactionStatus `json:"status" dynamodbav:"status"`
	Reference     string            `json:"reference,omitempty" dynamodbav:"reference,omitempty"`
	Description   string            `json:"description,omitempty" dynamodbav:"description,omitempty"`
	PaymentMethod string            `json:"payment_method,omitempty" dynamodbav:"payment_method,omitempty"`
	CreatedAt     time.Time         `json:"created_at" dynamodbav:"created_at"`
}

// Settlement describes the atomic resolution of a pending wager.
type Settlement struct {
	Wager       *Wager
	Status      WagerStatus
	Result      WagerResult
	Amount      Money
	Transaction *Transaction
	SettledAt   time.Time
}

// SettlementCommand is the queued instruction to settle one wager.
type SettlementCommand struct {
	WagerId string      `json:"wager_id"`
	Status  WagerStatus `json:"status"`
	Result  WagerResult `json:"result"`
	Amount  *Money      `json:"amount,omitempty"`
}
