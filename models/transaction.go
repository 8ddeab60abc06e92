package models

import "time"

const (
	FlowDebit  = "debit"
	FlowCredit = "credit"

	TxSignupBonus = "signup_bonus"
	TxInvestment  = "investment"
	TxProfitShare = "profit_share"
)

// Transaction is the ledger journal: every balance mutation writes exactly one
// row in the same database transaction that moved the money.
type Transaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Amount    float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	OrderID   string    `gorm:"type:varchar(191);not null;uniqueIndex" json:"order_id"`
	Flow      string    `gorm:"type:varchar(10);not null" json:"flow"`
	Type      string    `gorm:"type:varchar(50);not null" json:"type"`
	Message   *string   `gorm:"type:text" json:"message,omitempty"`
	Status    string    `gorm:"type:varchar(10);not null;default:'Success'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (Transaction) TableName() string {
	return "transactions"
}
