package engine

import (
	"errors"
	"fmt"

	"creatorfund/models"
	"creatorfund/utils"

	"gorm.io/gorm"
)

// Distribute fans a declared profit out to team members, investors and the
// creator. Team members receive their fixed split of the total; investors
// receive their absolute equity percentage of the total; the creator receives
// the remainder computed by subtraction, so the line amounts reconstitute the
// declared profit exactly even after per-line rounding.
func (e *Engine) Distribute(channelID uint, totalProfit float64, idempotencyKey string) (*models.ProfitDistribution, error) {
	if totalProfit <= 0 {
		return nil, ErrInvalidAmount
	}
	totalProfit = utils.RoundCurrency(totalProfit)

	refID := idempotencyKey
	if refID == "" {
		refID = utils.NewReferenceID()
	}

	var dist models.ProfitDistribution
	err := e.db.Transaction(func(tx *gorm.DB) error {
		if idempotencyKey != "" {
			var prior models.ProfitDistribution
			err := tx.Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("seq ASC") }).
				Where("reference_id = ?", idempotencyKey).First(&prior).Error
			if err == nil {
				if prior.ChannelID != channelID {
					return ErrIdempotencyConflict
				}
				dist = prior
				return nil
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		ch, err := lockChannel(tx, channelID)
		if err != nil {
			return err
		}

		var members []models.TeamMember
		if err := tx.Where("channel_id = ?", channelID).Order("id ASC").Find(&members).Error; err != nil {
			return err
		}
		var investments []models.Investment
		if err := tx.Where("channel_id = ?", channelID).Order("id ASC").Find(&investments).Error; err != nil {
			return err
		}

		// Aggregate equity per investor: one line per recipient no matter how
		// many receipts they hold.
		equityByInvestor := make(map[uint]float64)
		investorOrder := make([]uint, 0, len(investments))
		for _, inv := range investments {
			if _, seen := equityByInvestor[inv.InvestorID]; !seen {
				investorOrder = append(investorOrder, inv.InvestorID)
			}
			equityByInvestor[inv.InvestorID] = utils.RoundPct(equityByInvestor[inv.InvestorID] + inv.EquityPct)
		}

		var lines []models.DistributionLine
		allocated := 0.0
		allocatedPct := 0.0
		seq := 0

		for _, m := range members {
			amount := utils.RoundCurrency(totalProfit * m.SplitPct / 100)
			lines = append(lines, models.DistributionLine{
				Seq:           seq,
				RecipientType: models.RecipientTeam,
				RecipientID:   m.UserID,
				Pct:           m.SplitPct,
				Amount:        amount,
			})
			allocated = utils.RoundCurrency(allocated + amount)
			allocatedPct += m.SplitPct
			seq++
		}
		for _, investorID := range investorOrder {
			pct := equityByInvestor[investorID]
			amount := utils.RoundCurrency(totalProfit * pct / 100)
			lines = append(lines, models.DistributionLine{
				Seq:           seq,
				RecipientType: models.RecipientInvestor,
				RecipientID:   investorID,
				Pct:           pct,
				Amount:        amount,
			})
			allocated = utils.RoundCurrency(allocated + amount)
			allocatedPct += pct
			seq++
		}

		// The creator takes the remainder by subtraction, not 100%-shares, so
		// rounding residue always lands here and the sum stays exact.
		creatorAmount := utils.RoundCurrency(totalProfit - allocated)
		if creatorAmount < 0 {
			return ErrDistributionFailed
		}
		creatorPct := utils.RoundPct(100 - allocatedPct)
		if creatorPct < 0 {
			creatorPct = 0
		}
		lines = append(lines, models.DistributionLine{
			Seq:           seq,
			RecipientType: models.RecipientCreator,
			RecipientID:   ch.CreatorID,
			Pct:           creatorPct,
			Amount:        creatorAmount,
		})

		msg := fmt.Sprintf("Profit share from channel %s", ch.Name)
		for _, line := range lines {
			if _, err := credit(tx, line.RecipientID, line.Amount, models.TxProfitShare, msg); err != nil {
				if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidAmount) {
					return ErrDistributionFailed
				}
				return err
			}
		}

		dist = models.ProfitDistribution{
			ReferenceID: refID,
			ChannelID:   channelID,
			TotalProfit: totalProfit,
			Lines:       lines,
		}
		return tx.Create(&dist).Error
	})
	if err != nil {
		return nil, err
	}
	return &dist, nil
}
