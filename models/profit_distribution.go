package models

import "time"

const (
	RecipientCreator  = "creator"
	RecipientTeam     = "team"
	RecipientInvestor = "investor"
)

// ProfitDistribution records one declared profit event and how it was fanned
// out. Line amounts always sum to TotalProfit exactly; the creator line
// absorbs any rounding residue.
type ProfitDistribution struct {
	ID          uint               `gorm:"primaryKey" json:"id"`
	ReferenceID string             `gorm:"type:char(36);not null;uniqueIndex" json:"reference_id"`
	ChannelID   uint               `gorm:"not null;index" json:"channel_id"`
	TotalProfit float64            `gorm:"type:decimal(15,2);not null" json:"total_profit"`
	CreatedAt   time.Time          `json:"created_at"`
	Lines       []DistributionLine `gorm:"foreignKey:DistributionID" json:"lines"`
}

func (ProfitDistribution) TableName() string {
	return "profit_distributions"
}

type DistributionLine struct {
	ID             uint    `gorm:"primaryKey" json:"-"`
	DistributionID uint    `gorm:"not null;index" json:"-"`
	Seq            int     `gorm:"not null" json:"seq"`
	RecipientType  string  `gorm:"type:varchar(10);not null" json:"recipient_type"`
	RecipientID    uint    `gorm:"not null" json:"recipient_id"`
	Pct            float64 `gorm:"type:decimal(8,4);not null" json:"pct"`
	Amount         float64 `gorm:"type:decimal(15,2);not null" json:"amount"`
}

func (DistributionLine) TableName() string {
	return "distribution_lines"
}
