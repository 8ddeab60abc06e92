package models

import "time"

// Investment is the permanent receipt for an accepted investment. EquityPct is
// computed once at acceptance time and never recalculated. ReferenceID doubles
// as the idempotency key: replaying a request with the same key returns the
// stored row instead of debiting twice.
type Investment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ReferenceID string    `gorm:"type:char(36);not null;uniqueIndex" json:"reference_id"`
	ChannelID   uint      `gorm:"not null;index" json:"channel_id"`
	InvestorID  uint      `gorm:"not null;index" json:"investor_id"`
	Amount      float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	EquityPct   float64   `gorm:"type:decimal(8,4);not null" json:"equity_pct"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Investment) TableName() string {
	return "investments"
}
