package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creator-finance/internal/models"
)

func (suite *LedgerTestSuite) TestSumFilters() {
	suite.add(suite.alice, "100", models.TypeIncome, "2025-10-01", "")
	suite.add(suite.alice, "50.25", models.TypeIncome, "2025-10-20", "")
	suite.add(suite.alice, "70", models.TypeIncome, "2025-10-05", models.StatusPending)
	suite.add(suite.alice, "30", models.TypeExpense, "2025-10-06", "")
	suite.add(suite.alice, "100", models.TypeIncome, "2025-09-30", "")
	suite.add(suite.bob, "999", models.TypeIncome, "2025-10-01", "")

	total, err := suite.svc.Sum(suite.ctx, suite.alice, SumFilter{Type: models.TypeIncome})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "250.25", total.StringFixed(2))

	october, err := suite.svc.Sum(suite.ctx, suite.alice, SumFilter{Type: models.TypeIncome, From: "2025-10-01", To: "2025-11-01"})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "150.25", october.StringFixed(2))

	none, err := suite.svc.Sum(suite.ctx, suite.alice, SumFilter{Type: models.TypeIncome, From: "2024-01-01", To: "2024-02-01"})
	require.NoError(suite.T(), err)
	assert.True(suite.T(), none.IsZero())
}

func (suite *LedgerTestSuite) TestSummary() {
	suite.add(suite.alice, "100", models.TypeIncome, "2025-10-01", "")
	suite.add(suite.alice, "50", models.TypeIncome, "2025-10-14", "")
	suite.add(suite.alice, "40", models.TypeExpense, "2025-10-03", "")
	suite.add(suite.alice, "25", models.TypeExpense, "2025-09-03", "")
	suite.add(suite.alice, "100", models.TypeIncome, "2025-09-10", "")

	dash, err := suite.svc.Summary(suite.ctx, suite.alice)
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), "250.00", dash.TotalRevenue.StringFixed(2))
	assert.Equal(suite.T(), "150.00", dash.MonthlyRevenue.StringFixed(2))
	assert.Equal(suite.T(), "40.00", dash.Expenses.StringFixed(2))
	assert.Equal(suite.T(), 50.0, dash.RevenueGrowth)
	assert.Zero(suite.T(), dash.Subscribers)
}

func (suite *LedgerTestSuite) TestSummaryAcrossYearBoundary() {
	suite.svc.now = func() time.Time { return time.Date(2026, time.January, 10, 9, 0, 0, 0, time.UTC) }
	suite.add(suite.alice, "200", models.TypeIncome, "2025-12-31", "")
	suite.add(suite.alice, "100", models.TypeIncome, "2026-01-02", "")

	dash, err := suite.svc.Summary(suite.ctx, suite.alice)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "100.00", dash.MonthlyRevenue.StringFixed(2))
	assert.Equal(suite.T(), -50.0, dash.RevenueGrowth)
}

func (suite *LedgerTestSuite) TestSummaryWithoutPreviousMonth() {
	suite.add(suite.alice, "150", models.TypeIncome, "2025-10-01", "")

	dash, err := suite.svc.Summary(suite.ctx, suite.alice)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0.0, dash.RevenueGrowth)
}

func (suite *LedgerTestSuite) TestMonthlyTrend() {
	suite.add(suite.alice, "100", models.TypeIncome, "2025-10-01", "")
	suite.add(suite.alice, "40", models.TypeExpense, "2025-10-03", "")
	suite.add(suite.alice, "80", models.TypeIncome, "2025-07-12", "")
	suite.add(suite.alice, "500", models.TypeIncome, "2025-04-30", "")
	suite.add(suite.alice, "60", models.TypeExpense, "2025-08-01", models.StatusCancelled)

	points, err := suite.svc.MonthlyTrend(suite.ctx, suite.alice)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), points, TrendMonths)

	months := make([]string, 0, len(points))
	for _, p := range points {
		months = append(months, p.Month)
	}
	assert.Equal(suite.T(), []string{"2025-05", "2025-06", "2025-07", "2025-08", "2025-09", "2025-10"}, months)

	assert.Equal(suite.T(), "Jul", points[2].Label)
	assert.Equal(suite.T(), "80.00", points[2].Revenue.StringFixed(2))
	assert.True(suite.T(), points[3].Expenses.IsZero(), "cancelled rows are excluded")
	assert.Equal(suite.T(), "100.00", points[5].Revenue.StringFixed(2))
	assert.Equal(suite.T(), "40.00", points[5].Expenses.StringFixed(2))
}

func TestRevenueGrowth(t *testing.T) {
	tests := []struct {
		current, previous string
		want              float64
	}{
		{"150", "100", 50.0},
		{"100", "0", 0},
		{"0", "0", 0},
		{"50", "100", -50.0},
		{"100", "300", -66.7},
		{"4340", "1890", 129.6},
	}
	for _, tt := range tests {
		got := RevenueGrowth(decimal.RequireFromString(tt.current), decimal.RequireFromString(tt.previous))
		assert.Equal(t, tt.want, got, "%s vs %s", tt.current, tt.previous)
	}
}
