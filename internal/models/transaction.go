package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypeIncome  = "income"
	TypeExpense = "expense"

	StatusCompleted = "completed"
	StatusPending   = "pending"
	StatusCancelled = "cancelled"

	// DateLayout is the wire and storage format of Transaction.Date.
	DateLayout = "2006-01-02"
)

type Transaction struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `gorm:"not null;index:idx_transactions_user_id" json:"user_id"`
	User        User            `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Source      string          `gorm:"size:255;not null" json:"source"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Type        string          `gorm:"size:50;not null;index:idx_transactions_type" json:"type"`
	Status      string          `gorm:"size:50;not null;default:completed;index:idx_transactions_status" json:"status"`
	Date        string          `gorm:"type:varchar(10);not null;index:idx_transactions_date" json:"date"`
	Description *string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func ValidType(t string) bool {
	return t == TypeIncome || t == TypeExpense
}

func ValidStatus(s string) bool {
	switch s {
	case StatusCompleted, StatusPending, StatusCancelled:
		return true
	}
	return false
}
