// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/zfinance/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
// Position is 1-based and keeps the collection order the caller saved.
type TransactionModel struct {
	Position    int             `gorm:"primaryKey;autoIncrement:false"`
	ID          string          `gorm:"type:varchar(64);not null;index"`
	Amount      decimal.Decimal `gorm:"type:numeric;not null"`
	Description string          `gorm:"type:varchar(255);not null"`
	Category    string          `gorm:"type:varchar(255);not null;index"`
	Date        string          `gorm:"type:varchar(10);not null;index"`
	Status      string          `gorm:"type:varchar(10);not null"`
	Type        string          `gorm:"type:varchar(10);not null"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime:false"`
	UpdatedAt   time.Time       `gorm:"not null;autoUpdateTime:false"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
// An unparsable date is loaded as the zero date.
func (m *TransactionModel) ToEntity() entity.Transaction {
	date, _ := entity.ParseDate(m.Date)
	return entity.Transaction{
		ID:          m.ID,
		Amount:      m.Amount,
		Description: m.Description,
		Category:    m.Category,
		Date:        date,
		Status:      entity.TransactionStatus(m.Status),
		Type:        entity.TransactionType(m.Type),
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

// TransactionFromEntity converts a domain Transaction entity to a TransactionModel.
func TransactionFromEntity(t entity.Transaction, position int) *TransactionModel {
	return &TransactionModel{
		Position:    position,
		ID:          t.ID,
		Amount:      t.Amount,
		Description: t.Description,
		Category:    t.Category,
		Date:        t.Date.String(),
		Status:      string(t.Status),
		Type:        string(t.Type),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
