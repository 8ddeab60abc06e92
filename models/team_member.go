package models

import "time"

// TeamMember is append-only: there is no edit or remove path, so the roster
// history stays auditable. The per-channel sum of SplitPct never exceeds 100.
type TeamMember struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ChannelID uint      `gorm:"not null;uniqueIndex:idx_channel_user" json:"channel_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_channel_user" json:"user_id"`
	Role      string    `gorm:"size:50;not null" json:"role"`
	SplitPct  float64   `gorm:"type:decimal(8,4);not null" json:"split_pct"`
	CreatedAt time.Time `json:"joined_at"`
}

func (TeamMember) TableName() string {
	return "team_members"
}
