package api

import (
	"time"

	"github.com/chris/sportsbook-ledger/pkg/catalog"
	"github.com/chris/sportsbook-ledger/pkg/models"
)

// PlaceBetRequest is the body of POST /bets.
type PlaceBetRequest struct {
	EventID   string       `json:"eventId" validate:"required"`
	Selection string       `json:"selection" validate:"required"`
	Odds      string       `json:"odds" validate:"required,numeric"`
	Stake     models.Money `json:"stake"`
}

// PlaceBetResponse is returned for an accepted (or replayed) wager.
type PlaceBetResponse struct {
	Data   *models.Wager `json:"data"`
	Wallet models.Wallet `json:"wallet"`
}

// SettleBetRequest is the body of PUT /bets/{id}/settle.
type SettleBetRequest struct {
	Status models.WagerStatus `json:"status" validate:"required,oneof=won lost canceled void cashout"`
	Result models.WagerResult `json:"result" validate:"omitempty,oneof=win loss void push"`
	Amount *models.Money      `json:"amount,omitempty"`
}

// DepositRequest is the body of POST /wallet/deposit.
type DepositRequest struct {
	Amount        models.Money `json:"amount"`
	PaymentMethod string       `json:"paymentMethod" validate:"omitempty,max=64"`
}

// WithdrawRequest is the body of POST /wallet/withdraw.
type WithdrawRequest struct {
	Amount           models.Money `json:"amount"`
	WithdrawalMethod string       `json:"withdrawalMethod" validate:"omitempty,max=64"`
}

// BonusRequest is the body of PUT /wallet/bonus/{userId}.
type BonusRequest struct {
	Amount models.Money `json:"amount"`
	Reason string       `json:"reason" validate:"omitempty,max=256"`
}

// CompetitorRequest is one side of an event in an EventRequest.
type CompetitorRequest struct {
	Name string `json:"name" validate:"required"`
	Logo string `json:"logo,omitempty"`
	Odds string `json:"odds" validate:"required,numeric"`
}

// EventRequest is the body of POST /events and PUT /events/{id}.
type EventRequest struct {
	Title       string              `json:"title" validate:"required"`
	League      string              `json:"league" validate:"required"`
	Description string              `json:"description,omitempty"`
	Date        time.Time           `json:"date" validate:"required"`
	Time        string              `json:"time" validate:"required"`
	Competitors []CompetitorRequest `json:"competitors" validate:"dive"`
	Venue       string              `json:"venue,omitempty"`
	IsFeatured  bool                `json:"isFeatured"`
	IsPopular   bool                `json:"isPopular"`
	Status      models.EventStatus  `json:"status,omitempty" validate:"omitempty,oneof=upcoming live completed cancelled"`
	Result      *models.EventResult `json:"result,omitempty"`
}

// ToInput converts the request to the catalog's input type.
func (r EventRequest) ToInput() catalog.EventInput {
	competitors := make([]models.Competitor, len(r.Competitors))
	for i, c := range r.Competitors {
		competitors[i] = models.Competitor{Name: c.Name, Logo: c.Logo, Odds: c.Odds}
	}
	return catalog.EventInput{
		Title:       r.Title,
		League:      r.League,
		Description: r.Description,
		Date:        r.Date,
		Time:        r.Time,
		Competitors: competitors,
		Venue:       r.Venue,
		IsFeatured:  r.IsFeatured,
		IsPopular:   r.IsPopular,
		Status:      r.Status,
		Result:      r.Result,
	}
}

// SettleEventResponse reports how many wagers an event settlement dispatched.
type SettleEventResponse struct {
	EventID string `json:"event_id"`
	Settled int    `json:"settled"`
}

// CreateAccountRequest is the body of POST /accounts.
type CreateAccountRequest struct {
	ID       string      `json:"id" validate:"required"`
	Username string      `json:"username" validate:"required"`
	Email    string      `json:"email,omitempty" validate:"omitempty,email"`
	Role     models.Role `json:"role,omitempty" validate:"omitempty,oneof=user admin"`
}

// UpdateAccountRequest is the body of PUT /accounts/{id}. Omitted fields are left unchanged.
type UpdateAccountRequest struct {
	Role       *models.Role `json:"role,omitempty" validate:"omitempty,oneof=user admin"`
	IsVerified *bool        `json:"isVerified,omitempty"`
}

// AccountStats summarizes an account's betting history.
type AccountStats struct {
	BetsCount   int          `json:"bets_count"`
	WonBets     int          `json:"won_bets"`
	TotalStaked models.Money `json:"total_staked"`
	TotalWon    models.Money `json:"total_won"`
}

// AccountDetail is returned by GET /accounts/{id}.
type AccountDetail struct {
	Account *models.Account `json:"account"`
	Stats   AccountStats    `json:"stats"`
}

// BettingStats counts an account's wagers by outcome. WinRate is a percentage.
type BettingStats struct {
	TotalBets  int     `json:"total_bets"`
	ActiveBets int     `json:"active_bets"`
	WonBets    int     `json:"won_bets"`
	LostBets   int     `json:"lost_bets"`
	WinRate    float64 `json:"win_rate"`
}

// FinancialStats totals the money an account has put through its wagers.
type FinancialStats struct {
	TotalStaked models.Money `json:"total_staked"`
	TotalWon    models.Money `json:"total_won"`
	Profit      models.Money `json:"profit"`
}

// RecentActivity holds the latest wagers and ledger entries of an account.
type RecentActivity struct {
	Bets         []models.Wager       `json:"bets"`
	Transactions []models.Transaction `json:"transactions"`
}

// StatsOverview is returned by GET /accounts/stats/overview.
type StatsOverview struct {
	BettingStats   BettingStats   `json:"betting_stats"`
	FinancialStats FinancialStats `json:"financial_stats"`
	RecentActivity RecentActivity `json:"recent_activity"`
}
