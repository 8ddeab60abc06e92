package engine

import (
	"errors"
	"fmt"

	"creatorfund/models"
	"creatorfund/utils"

	"gorm.io/gorm"
)

// InvestResult carries the receipt plus the investor's post-debit balance.
type InvestResult struct {
	Investment models.Investment `json:"investment"`
	Balance    float64           `json:"balance"`
}

// Invest converts cash into an equity grant:
//
//	share = amount / goal_amount * equity_offered
//
// The debit, the capitalization update and the receipt are one transaction
// under the channel lock; if the equity pool cannot cover the share the whole
// transaction rolls back and the investor's balance is untouched. A non-empty
// idempotencyKey makes retries safe: the stored receipt is returned and no
// second debit happens. Keys are scoped to one investor and channel; replaying
// someone else's key, or the same key against another channel, is rejected.
func (e *Engine) Invest(investorID, channelID uint, amount float64, idempotencyKey string) (*InvestResult, error) {
	if amount < MinInvestment {
		return nil, ErrBelowMinimum
	}

	refID := idempotencyKey
	if refID == "" {
		refID = utils.NewReferenceID()
	}

	var result InvestResult
	err := e.db.Transaction(func(tx *gorm.DB) error {
		if idempotencyKey != "" {
			var prior models.Investment
			err := tx.Where("reference_id = ?", idempotencyKey).First(&prior).Error
			if err == nil {
				if prior.InvestorID != investorID || prior.ChannelID != channelID {
					return ErrIdempotencyConflict
				}
				var investor models.User
				if err := tx.First(&investor, investorID).Error; err != nil {
					return err
				}
				result = InvestResult{Investment: prior, Balance: investor.Balance}
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
		// A closed channel is one whose equity pool is spent, so the
		// rejection matches the exhaustion path.
		if ch.Status == models.ChannelClosed {
			return ErrEquityExhausted
		}

		share := utils.RoundPct(amount / ch.GoalAmount * ch.EquityOffered)
		if ch.EquityIssued+share > ch.EquityOffered+equityEpsilon {
			return ErrEquityExhausted
		}

		msg := fmt.Sprintf("Investment in channel %s", ch.Name)
		balance, err := debit(tx, investorID, amount, models.TxInvestment, msg)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"total_raised":  utils.RoundCurrency(ch.TotalRaised + amount),
			"equity_issued": utils.RoundPct(ch.EquityIssued + share),
		}
		// Equity pool exhausted: the channel soft-closes and rejects all
		// further investment. The cash goal is an independent ceiling and
		// never closes the channel on its own.
		if ch.EquityIssued+share >= ch.EquityOffered-equityEpsilon {
			updates["status"] = models.ChannelClosed
		}
		if err := tx.Model(ch).Updates(updates).Error; err != nil {
			return err
		}

		inv := models.Investment{
			ReferenceID: refID,
			ChannelID:   channelID,
			InvestorID:  investorID,
			Amount:      utils.RoundCurrency(amount),
			EquityPct:   share,
		}
		if err := tx.Create(&inv).Error; err != nil {
			return err
		}

		result = InvestResult{Investment: inv, Balance: balance}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
