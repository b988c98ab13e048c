package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"creator-finance/internal/models"
)

// TrendMonths is how many calendar months MonthlyTrend covers, current included.
const TrendMonths = 6

// SumFilter narrows Sum. From is inclusive and To exclusive; empty bounds are open.
type SumFilter struct {
	Type string
	From string
	To   string
}

// Dashboard is the headline figures for the current calendar month.
type Dashboard struct {
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	MonthlyRevenue decimal.Decimal `json:"monthlyRevenue"`
	Expenses       decimal.Decimal `json:"expenses"`
	RevenueGrowth  float64         `json:"revenueGrowth"` // Percentage vs last month
	Subscribers    int             `json:"subscribers"`
}

type TrendPoint struct {
	Month    string          `json:"month"` // YYYY-MM
	Label    string          `json:"label"` // Jan, Feb, ...
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
}

// Sum adds up the amounts of the user's completed transactions matching f.
func (s *Service) Sum(ctx context.Context, userID uint, f SumFilter) (decimal.Decimal, error) {
	q := s.db.WithContext(ctx).Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND status = ?", userID, models.StatusCompleted)
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.From != "" {
		q = q.Where("date >= ?", f.From)
	}
	if f.To != "" {
		q = q.Where("date < ?", f.To)
	}

	var total decimal.Decimal
	if err := q.Row().Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum transactions: %w", err)
	}
	return total, nil
}

// Summary computes the dashboard figures relative to the current month.
// Name and Email are left for the caller.
func (s *Service) Summary(ctx context.Context, userID uint) (*Dashboard, error) {
	thisMonth := monthStart(s.now().In(s.loc))
	nextMonth := thisMonth.AddDate(0, 1, 0).Format(models.DateLayout)
	lastMonth := thisMonth.AddDate(0, -1, 0).Format(models.DateLayout)
	thisMonthStr := thisMonth.Format(models.DateLayout)

	var (
		res  Dashboard
		prev decimal.Decimal
		err  error
	)
	if res.TotalRevenue, err = s.Sum(ctx, userID, SumFilter{Type: models.TypeIncome}); err != nil {
		return nil, err
	}
	if res.MonthlyRevenue, err = s.Sum(ctx, userID, SumFilter{Type: models.TypeIncome, From: thisMonthStr, To: nextMonth}); err != nil {
		return nil, err
	}
	if res.Expenses, err = s.Sum(ctx, userID, SumFilter{Type: models.TypeExpense, From: thisMonthStr, To: nextMonth}); err != nil {
		return nil, err
	}
	if prev, err = s.Sum(ctx, userID, SumFilter{Type: models.TypeIncome, From: lastMonth, To: thisMonthStr}); err != nil {
		return nil, err
	}
	res.RevenueGrowth = RevenueGrowth(res.MonthlyRevenue, prev)
	return &res, nil
}

// RevenueGrowth is the month-over-month change in percent, rounded to one
// decimal. It is 0 when there was no previous revenue.
func RevenueGrowth(current, previous decimal.Decimal) float64 {
	if !previous.IsPositive() {
		return 0
	}
	growth, _ := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Round(1).Float64()
	return growth
}

// MonthlyTrend returns completed income and expense totals for each of the
// last TrendMonths months, oldest first. Months without activity are zero.
func (s *Service) MonthlyTrend(ctx context.Context, userID uint) ([]TrendPoint, error) {
	first := monthStart(s.now().In(s.loc)).AddDate(0, -(TrendMonths - 1), 0)

	var rows []TrendPoint
	err := s.db.WithContext(ctx).Model(&models.Transaction{}).
		Select(
			"substr(date, 1, 7) AS month, "+
				"COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) AS revenue, "+
				"COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) AS expenses",
			models.TypeIncome, models.TypeExpense,
		).
		Where("user_id = ? AND status = ? AND date >= ?", userID, models.StatusCompleted, first.Format(models.DateLayout)).
		Group("substr(date, 1, 7)").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("monthly trend: %w", err)
	}

	byMonth := make(map[string]TrendPoint, len(rows))
	for _, r := range rows {
		byMonth[r.Month] = r
	}

	points := make([]TrendPoint, 0, TrendMonths)
	for i := 0; i < TrendMonths; i++ {
		m := first.AddDate(0, i, 0)
		key := m.Format("2006-01")
		p, ok := byMonth[key]
		if !ok {
			p = TrendPoint{Month: key, Revenue: decimal.Zero, Expenses: decimal.Zero}
		}
		p.Label = m.Format("Jan")
		points = append(points, p)
	}
	return points, nil
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
