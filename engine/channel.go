package engine

import (
	"errors"

	"creatorfund/models"
	"creatorfund/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateChannel validates the funding terms and persists a new active channel.
func (e *Engine) CreateChannel(creatorID uint, name, description, category string, goalAmount, equityOffered float64) (*models.Channel, error) {
	if goalAmount <= 0 {
		return nil, ErrInvalidAmount
	}
	if equityOffered <= 0 || equityOffered > 100 {
		return nil, ErrInvalidAmount
	}
	ch := models.Channel{
		Name:          name,
		Description:   description,
		Category:      category,
		CreatorID:     creatorID,
		GoalAmount:    utils.RoundCurrency(goalAmount),
		EquityOffered: utils.RoundPct(equityOffered),
		Status:        models.ChannelActive,
	}
	if err := e.db.Create(&ch).Error; err != nil {
		return nil, err
	}
	return &ch, nil
}

// lockChannel takes the channel row lock that serializes all mutating
// operations scoped to one channel.
func lockChannel(tx *gorm.DB, channelID uint) (*models.Channel, error) {
	var ch models.Channel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&ch, channelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ch, nil
}

// Summary is the read model for a channel's funding state.
type Summary struct {
	ChannelID     uint    `json:"channel_id"`
	Status        string  `json:"status"`
	GoalAmount    float64 `json:"goal_amount"`
	TotalRaised   float64 `json:"total_raised"`
	FundingPct    float64 `json:"funding_pct"`
	EquityOffered float64 `json:"equity_offered"`
	EquityIssued  float64 `json:"equity_issued"`
	TeamSplitPct  float64 `json:"team_split_pct"`
	InvestorCount int64   `json:"investor_count"`
	TeamCount     int64   `json:"team_count"`
}

// ChannelSummary derives the display state for a channel. The funding
// percentage is clamped for display only; the stored TotalRaised is never
// clamped, so an over-raised channel keeps its true total.
func (e *Engine) ChannelSummary(channelID uint) (*Summary, error) {
	var ch models.Channel
	if err := e.db.First(&ch, channelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	fundingPct := 0.0
	if ch.GoalAmount > 0 {
		fundingPct = ch.TotalRaised / ch.GoalAmount
		if fundingPct > 1 {
			fundingPct = 1
		}
		fundingPct *= 100
	}

	var investorCount, teamCount int64
	if err := e.db.Model(&models.Investment{}).Where("channel_id = ?", channelID).
		Distinct("investor_id").Count(&investorCount).Error; err != nil {
		return nil, err
	}
	if err := e.db.Model(&models.TeamMember{}).Where("channel_id = ?", channelID).
		Count(&teamCount).Error; err != nil {
		return nil, err
	}
	teamSplit, err := e.TotalSplit(channelID)
	if err != nil {
		return nil, err
	}

	return &Summary{
		ChannelID:     ch.ID,
		Status:        ch.Status,
		GoalAmount:    ch.GoalAmount,
		TotalRaised:   ch.TotalRaised,
		FundingPct:    utils.RoundPct(fundingPct),
		EquityOffered: ch.EquityOffered,
		EquityIssued:  ch.EquityIssued,
		TeamSplitPct:  teamSplit,
		InvestorCount: investorCount,
		TeamCount:     teamCount,
	}, nil
}
