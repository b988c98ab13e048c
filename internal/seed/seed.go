// Package seed gives a new account sample transactions and platform revenue
// so the dashboard is not empty on first login.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"creator-finance/internal/ledger"
	"creator-finance/internal/models"
	"creator-finance/internal/platforms"
)

type sampleTransaction struct {
	source  string
	amount  string
	typ     string
	daysAgo int
}

var sampleTransactions = []sampleTransaction{
	{"YouTube Ad Revenue", "2450.00", models.TypeIncome, 1},
	{"Patreon Subscription", "1890.00", models.TypeIncome, 2},
	{"Video Equipment", "850.00", models.TypeExpense, 3},
	{"Twitch Donations", "567.50", models.TypeIncome, 4},
	{"Software Subscription", "99.99", models.TypeExpense, 5},
}

var samplePlatforms = []struct {
	name    string
	revenue string
}{
	{"YouTube", "5000.00"},
	{"Patreon", "3500.00"},
	{"Twitch", "2000.00"},
}

type Seeder struct {
	ledger    *ledger.Service
	platforms *platforms.Service
	loc       *time.Location
	now       func() time.Time
}

func New(l *ledger.Service, p *platforms.Service, loc *time.Location) *Seeder {
	if loc == nil {
		loc = time.UTC
	}
	return &Seeder{ledger: l, platforms: p, loc: loc, now: time.Now}
}

// Seed writes the sample rows through the same scoped operations a client would use.
func (s *Seeder) Seed(ctx context.Context, userID uint) error {
	today := s.now().In(s.loc)

	for _, st := range sampleTransactions {
		_, err := s.ledger.Add(ctx, userID, ledger.NewTransaction{
			Source: st.source,
			Amount: decimal.RequireFromString(st.amount),
			Type:   st.typ,
			Date:   today.AddDate(0, 0, -st.daysAgo).Format(models.DateLayout),
			Status: models.StatusCompleted,
		})
		if err != nil {
			return fmt.Errorf("seed transaction %q: %w", st.source, err)
		}
	}

	for _, sp := range samplePlatforms {
		_, err := s.platforms.Report(ctx, userID, platforms.RevenueReport{
			Platform: sp.name,
			Revenue:  decimal.RequireFromString(sp.revenue),
			Month:    int(today.Month()),
			Year:     today.Year(),
		})
		if err != nil {
			return fmt.Errorf("seed platform %q: %w", sp.name, err)
		}
	}
	return nil
}
