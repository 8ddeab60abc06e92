package engine

import (
	"errors"

	"creatorfund/models"
	"creatorfund/utils"

	"gorm.io/gorm"
)

// AddTeamMember appends a member to a channel's roster. The split ceiling is
// checked under the channel lock, so two concurrent adds can never push the
// channel past 100%.
func (e *Engine) AddTeamMember(channelID, userID uint, role string, splitPct float64) (*models.TeamMember, error) {
	if splitPct <= 0 || splitPct > 100 {
		return nil, ErrInvalidSplit
	}

	var member models.TeamMember
	err := e.db.Transaction(func(tx *gorm.DB) error {
		if _, err := lockChannel(tx, channelID); err != nil {
			return err
		}

		var existing models.TeamMember
		err := tx.Where("channel_id = ? AND user_id = ?", channelID, userID).First(&existing).Error
		if err == nil {
			return ErrAlreadyMember
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var total float64
		if err := tx.Model(&models.TeamMember{}).Where("channel_id = ?", channelID).
			Select("COALESCE(SUM(split_pct),0)").Scan(&total).Error; err != nil {
			return err
		}
		if total+splitPct > 100+equityEpsilon {
			return ErrSplitCeilingExceeded
		}

		member = models.TeamMember{
			ChannelID: channelID,
			UserID:    userID,
			Role:      role,
			SplitPct:  utils.RoundPct(splitPct),
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// TotalSplit returns the sum of all roster splits for a channel.
func (e *Engine) TotalSplit(channelID uint) (float64, error) {
	var total float64
	err := e.db.Model(&models.TeamMember{}).Where("channel_id = ?", channelID).
		Select("COALESCE(SUM(split_pct),0)").Scan(&total).Error
	return total, err
}
