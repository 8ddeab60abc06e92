package engine

import (
	"errors"

	"creatorfund/models"
	"creatorfund/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// debit locks the user row, checks the balance and decrements it, writing the
// journal row in the same transaction. Returns the new balance.
func debit(tx *gorm.DB, userID uint, amount float64, txType, msg string) (float64, error) {
	if amount < 0 {
		return 0, ErrInvalidAmount
	}
	var user models.User
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	if user.Balance < amount {
		return 0, ErrInsufficientFunds
	}
	newBalance := utils.RoundCurrency(user.Balance - amount)
	if err := tx.Model(&user).Update("balance", newBalance).Error; err != nil {
		return 0, err
	}
	if err := journal(tx, userID, amount, models.FlowDebit, txType, msg); err != nil {
		return 0, err
	}
	return newBalance, nil
}

// credit locks the user row and increments its balance. Credits cannot
// overdraft, but a negative amount is rejected so no caller can turn a credit
// into a hidden debit.
func credit(tx *gorm.DB, userID uint, amount float64, txType, msg string) (float64, error) {
	if amount < 0 {
		return 0, ErrInvalidAmount
	}
	var user models.User
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	newBalance := utils.RoundCurrency(user.Balance + amount)
	if err := tx.Model(&user).Update("balance", newBalance).Error; err != nil {
		return 0, err
	}
	if err := journal(tx, userID, amount, models.FlowCredit, txType, msg); err != nil {
		return 0, err
	}
	return newBalance, nil
}

func journal(tx *gorm.DB, userID uint, amount float64, flow, txType, msg string) error {
	row := models.Transaction{
		UserID:  userID,
		Amount:  amount,
		OrderID: utils.GenerateOrderID(userID),
		Flow:    flow,
		Type:    txType,
		Status:  "Success",
	}
	if msg != "" {
		row.Message = &msg
	}
	return tx.Create(&row).Error
}

// Credit applies a standalone credit outside any channel flow (signup bonus).
func (e *Engine) Credit(userID uint, amount float64, txType, msg string) (float64, error) {
	var balance float64
	err := e.db.Transaction(func(tx *gorm.DB) error {
		var err error
		balance, err = credit(tx, userID, amount, txType, msg)
		return err
	})
	return balance, err
}
