// Package ledger stores a user's income and expense transactions. Every query
// carries the owning user id in its WHERE clause; a row owned by someone else
// is indistinguishable from a missing one.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"creator-finance/internal/apperr"
	"creator-finance/internal/models"
)

// DefaultLimit is the List page size when the caller gives none.
const DefaultLimit = 10

// ErrTransactionNotFound is returned for ids that are missing or owned by someone else.
var ErrTransactionNotFound = apperr.NotFound("Transaction not found")

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

// NewTransaction is a validated-at-the-boundary add request. Date and Status
// are optional.
type NewTransaction struct {
	Source      string
	Amount      decimal.Decimal
	Type        string
	Date        string
	Status      string
	Description *string
}

// TransactionPatch carries only the fields the caller sent.
type TransactionPatch struct {
	Source      *string
	Amount      *decimal.Decimal
	Type        *string
	Status      *string
	Date        *string
	Description *string
}

func (s *Service) today() string {
	return s.now().In(s.loc).Format(models.DateLayout)
}

// List returns the user's transactions, newest date first. limit <= 0 returns all rows.
func (s *Service) List(ctx context.Context, userID uint, limit int) ([]models.Transaction, error) {
	txs := make([]models.Transaction, 0)
	q := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("date desc, id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

func (s *Service) Add(ctx context.Context, userID uint, in NewTransaction) (*models.Transaction, error) {
	source := strings.TrimSpace(in.Source)
	if source == "" {
		return nil, apperr.Validation("source is required")
	}
	amount, err := validAmount(in.Amount)
	if err != nil {
		return nil, err
	}
	if !models.ValidType(in.Type) {
		return nil, apperr.Validation("type must be income or expense")
	}
	status := in.Status
	if status == "" {
		status = models.StatusCompleted
	}
	if !models.ValidStatus(status) {
		return nil, apperr.Validation("status must be completed, pending or cancelled")
	}
	date := in.Date
	if date == "" {
		date = s.today()
	} else if err := validDate(date); err != nil {
		return nil, err
	}

	tx := models.Transaction{
		UserID:      userID,
		Source:      source,
		Amount:      amount,
		Type:        in.Type,
		Status:      status,
		Date:        date,
		Description: in.Description,
	}
	if err := s.db.WithContext(ctx).Create(&tx).Error; err != nil {
		return nil, fmt.Errorf("add transaction: %w", err)
	}
	return &tx, nil
}

// Update applies patch to the user's transaction id.
func (s *Service) Update(ctx context.Context, userID, id uint, patch TransactionPatch) (*models.Transaction, error) {
	updates, err := patch.columns()
	if err != nil {
		return nil, err
	}

	var tx models.Transaction
	err = s.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		if len(updates) > 0 {
			res := db.Model(&models.Transaction{}).Where("id = ? AND user_id = ?", id, userID).Updates(updates)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrTransactionNotFound
			}
		}
		return db.Where("id = ? AND user_id = ?", id, userID).First(&tx).Error
	})
	switch {
	case errors.Is(err, apperr.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrTransactionNotFound
	case err != nil:
		return nil, fmt.Errorf("update transaction: %w", err)
	}
	return &tx, nil
}

func (s *Service) Remove(ctx context.Context, userID, id uint) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Transaction{})
	if res.Error != nil {
		return fmt.Errorf("remove transaction: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

func (p TransactionPatch) columns() (map[string]interface{}, error) {
	updates := map[string]interface{}{}
	if p.Source != nil {
		source := strings.TrimSpace(*p.Source)
		if source == "" {
			return nil, apperr.Validation("source must not be empty")
		}
		updates["source"] = source
	}
	if p.Amount != nil {
		amount, err := validAmount(*p.Amount)
		if err != nil {
			return nil, err
		}
		updates["amount"] = amount
	}
	if p.Type != nil {
		if !models.ValidType(*p.Type) {
			return nil, apperr.Validation("type must be income or expense")
		}
		updates["type"] = *p.Type
	}
	if p.Status != nil {
		if !models.ValidStatus(*p.Status) {
			return nil, apperr.Validation("status must be completed, pending or cancelled")
		}
		updates["status"] = *p.Status
	}
	if p.Date != nil {
		if err := validDate(*p.Date); err != nil {
			return nil, err
		}
		updates["date"] = *p.Date
	}
	if p.Description != nil {
		updates["description"] = *p.Description
	}
	return updates, nil
}

func validAmount(d decimal.Decimal) (decimal.Decimal, error) {
	amount := models.Money(d)
	if !amount.IsPositive() {
		return decimal.Zero, apperr.Validation("amount must be a positive number")
	}
	if amount.GreaterThan(models.MaxMoney) {
		return decimal.Zero, apperr.Validation("amount must be at most %s", models.MaxMoney.StringFixed(2))
	}
	return amount, nil
}

func validDate(date string) error {
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return apperr.Validation("date must be formatted YYYY-MM-DD")
	}
	return nil
}
