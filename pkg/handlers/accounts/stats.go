package accounts

import (
	"context"

	"github.com/chris/sportsbook-ledger/pkg/api"
	"github.com/chris/sportsbook-ledger/pkg/models"
	"github.com/chris/sportsbook-ledger/pkg/storage"
	"github.com/shopspring/decimal"
)

const (
	statsPageSize = 100
	recentLimit   = 5
)

// wagerHistory returns every wager the account has placed, newest first.
func (h *AccountsHandler) wagerHistory(ctx context.Context, accountID string) ([]models.Wager, error) {
	filter := storage.WagerFilter{AccountID: accountID}
	var all []models.Wager
	for page := 1; ; page++ {
		wagers, total, err := h.Store.ListWagers(ctx, filter, storage.Page{Number: page, Limit: statsPageSize})
		if err != nil {
			return nil, err
		}
		all = append(all, wagers...)
		if len(wagers) == 0 || len(all) >= total {
			return all, nil
		}
	}
}

// accountStats totals stakes over all wagers and settled amounts over won wagers.
func accountStats(wagers []models.Wager) api.AccountStats {
	stats := api.AccountStats{TotalStaked: models.ZeroMoney, TotalWon: models.ZeroMoney}
	for _, w := range wagers {
		stats.BetsCount++
		stats.TotalStaked = stats.TotalStaked.Plus(w.Stake)
		if w.Status == models.WagerWon {
			stats.WonBets++
			stats.TotalWon = stats.TotalWon.Plus(w.SettledAmount)
		}
	}
	return stats
}

func bettingStats(wagers []models.Wager) api.BettingStats {
	var stats api.BettingStats
	for _, w := range wagers {
		stats.TotalBets++
		switch w.Status {
		case models.WagerPending:
			stats.ActiveBets++
		case models.WagerWon:
			stats.WonBets++
		case models.WagerLost:
			stats.LostBets++
		}
	}
	if stats.TotalBets > 0 {
		rate := decimal.NewFromInt(int64(stats.WonBets)).
			Div(decimal.NewFromInt(int64(stats.TotalBets))).
			Mul(decimal.NewFromInt(100)).
			Round(2)
		stats.WinRate = rate.InexactFloat64()
	}
	return stats
}

func financialStats(stats api.AccountStats) api.FinancialStats {
	return api.FinancialStats{
		TotalStaked: stats.TotalStaked,
		TotalWon:    stats.TotalWon,
		Profit:      stats.TotalWon.Minus(stats.TotalStaked),
	}
}
