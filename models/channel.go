package models

import "time"

const (
	ChannelActive = "Active"
	ChannelClosed = "Closed"
)

// Channel is a creator's funding campaign. TotalRaised and EquityIssued are
// mutated only under the channel row lock; EquityIssued never exceeds
// EquityOffered. Status becomes Closed once the equity pool is exhausted and
// the channel stops accepting investments permanently.
type Channel struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:150;not null" json:"name"`
	Description   string    `gorm:"type:text" json:"description"`
	Category      string    `gorm:"size:50" json:"category"`
	CreatorID     uint      `gorm:"not null;index" json:"creator_id"`
	GoalAmount    float64   `gorm:"type:decimal(15,2);not null" json:"goal_amount"`
	EquityOffered float64   `gorm:"type:decimal(8,4);not null" json:"equity_offered"`
	TotalRaised   float64   `gorm:"type:decimal(15,2);not null;default:0" json:"total_raised"`
	EquityIssued  float64   `gorm:"type:decimal(8,4);not null;default:0" json:"equity_issued"`
	Status        string    `gorm:"type:varchar(10);not null;default:'Active'" json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"-"`
}

func (Channel) TableName() string {
	return "channels"
}
