// Package platforms keeps one running revenue figure per user, platform and
// calendar month. Reports for an existing key are added to it in a single
// upsert statement so concurrent reports cannot lose updates.
package platforms

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"creator-finance/internal/apperr"
	"creator-finance/internal/models"
)

const maxNameLen = 100

type Service struct {
	db  *gorm.DB
	loc *time.Location
	now func() time.Time
}

func NewService(db *gorm.DB, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{db: db, loc: loc, now: time.Now}
}

// RevenueReport is one revenue figure for a platform. Zero Month or Year
// means the current one.
type RevenueReport struct {
	Platform string
	Revenue  decimal.Decimal
	Month    int
	Year     int
}

// Share is a platform's summed revenue in a period.
type Share struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// Report adds r to the user's running figure for (platform, month, year),
// creating it on first report, and returns the merged row.
func (s *Service) Report(ctx context.Context, userID uint, r RevenueReport) (*models.PlatformRevenue, error) {
	name := strings.TrimSpace(r.Platform)
	if name == "" {
		return nil, apperr.Validation("platform_name is required")
	}
	if len(name) > maxNameLen {
		return nil, apperr.Validation("platform_name must be at most %d characters", maxNameLen)
	}
	revenue := models.Money(r.Revenue)
	if revenue.IsNegative() {
		return nil, apperr.Validation("revenue must not be negative")
	}
	if revenue.GreaterThan(models.MaxMoney) {
		return nil, apperr.Validation("revenue must be at most %s", models.MaxMoney.StringFixed(2))
	}
	month, year, err := s.period(r.Month, r.Year)
	if err != nil {
		return nil, err
	}

	row := models.PlatformRevenue{
		UserID:       userID,
		PlatformName: name,
		Revenue:      revenue,
		Month:        month,
		Year:         year,
	}
	var merged models.PlatformRevenue
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "platform_name"}, {Name: "month"}, {Name: "year"}},
			DoUpdates: []clause.Assignment{
				{Column: clause.Column{Name: "revenue"}, Value: gorm.Expr("platforms.revenue + excluded.revenue")},
				{Column: clause.Column{Name: "updated_at"}, Value: s.now()},
			},
		}).Create(&row).Error
		if err != nil {
			return err
		}
		return tx.Where("user_id = ? AND platform_name = ? AND month = ? AND year = ?", userID, name, month, year).
			First(&merged).Error
	})
	if err != nil {
		return nil, fmt.Errorf("record platform revenue: %w", err)
	}
	return &merged, nil
}

// Distribution sums revenue per platform for the period, largest first.
// Zero month or year means the current one.
func (s *Service) Distribution(ctx context.Context, userID uint, month, year int) ([]Share, error) {
	month, year, err := s.period(month, year)
	if err != nil {
		return nil, err
	}

	shares := make([]Share, 0)
	err = s.db.WithContext(ctx).Model(&models.PlatformRevenue{}).
		Select("platform_name AS name, COALESCE(SUM(revenue), 0) AS value").
		Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		Group("platform_name").
		Order("value DESC, name").
		Scan(&shares).Error
	if err != nil {
		return nil, fmt.Errorf("platform distribution: %w", err)
	}
	return shares, nil
}

func (s *Service) period(month, year int) (int, int, error) {
	now := s.now().In(s.loc)
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}
	if month < 1 || month > 12 {
		return 0, 0, apperr.Validation("month must be between 1 and 12")
	}
	if year < 1970 || year > 9999 {
		return 0, 0, apperr.Validation("year must be between 1970 and 9999")
	}
	return month, year, nil
}
