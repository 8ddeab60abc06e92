package engine

import (
	"testing"

	"creatorfund/models"

	"github.com/stretchr/testify/require"
)

func TestInvestGrantsProportionalEquity(t *testing.T) {
	db := setupTestDB(t)
	eng := New(db)
	creator := createUser(t, db, "creator", models.RoleCreator, 0)
	investor := createUser(t, db, "investor", models.RoleInvestor, 10000)
	ch := createChannel(t, eng, creator.ID, 50000, 20)

	result, err := eng.Invest(investor.ID, ch.ID, 5000, "")
	require.NoError(t, err)

	// 5000 / 50000 * 20 = 2.0% equity
	require.Equal(t, 2.0, result.Investment.EquityPct)
	require.Equal(t, 5000.0, result.Investment.Amount)
	require.Equal(t, 5000.0, result.Balance)
	require.Equal(t, 5000.0, balanceOf(t, db, investor.ID))

	var got models.Channel
	require.NoError(t, db.First(&got, ch.ID).Error)
	require.Equal(t, 5000.0, got.TotalRaised)
	require.Equal(t, 2.0, got.EquityIssued)
	require.Equal(t, models.ChannelActive, got.Status)

	var journal models.Transaction
	require.NoError(t, db.Where("user_id = ? AND type = ?", investor.ID, models.TxInvestment).First(&journal).Error)
	require.Equal(t, models.FlowDebit, journal.Flow)
	require.Equal(t, 5000.0, journal.Amount)
}

func TestInvestBelowMinimumRejected(t *testing.T) {
	db := setupTestDB(t)
	eng := New(db)
	creator := createUser(t, db, "creator", models.RoleCreator, 0)
	investor := createUser(t, db, "investor", models.RoleInvestor, 10000)
	ch := createChannel(t, eng, creator.ID, 50000, 20)

	_, err := eng.Invest(investor.ID, ch.ID, 499.99, "")
	require.ErrorIs(t, err, ErrBelowMinimum)
	require.Equal(t, 10000.0, balanceOf(t, db, investor.ID))
}

func TestInvestInsufficientFundsRollsBack(t *testing.T) {
	db := setupTestDB(t)
	eng := New(db)
	creator := createUser(t, db, "creator", models.RoleCreator, 0)
	investor := createUser(t, db, "broke", models.RoleInvestor, 600)
	ch := createChannel(t, eng, creator.ID, 50000, 20)

	_, err := eng.Invest(investor.ID, ch.ID, 5000, "")
	require.ErrorIs(t, err, ErrInsufficientFunds)
	require.Equal(t, 600.0, balanceOf(t, db, investor.ID))

	var count int64
	require.NoError(t, db.Model(&models.Investment{}).Where("channel_id = ?", ch.ID).Count(&count).Error)
	require.Zero(t, count)
}

func TestInvestEquityExhaustedRollsBackEverything(t *testing.T) {
	db := setupTestDB(t)
	eng := New(db)
	creator := createUser(t, db, "creator", models.RoleCreator, 0)
	first := createUser(t, db, "first", models.RoleInvestor, 50000)
	second := createUser(t, db, "second", models.RoleInvestor, 50000)
	ch := createChannel(t, eng, creator.ID, 50000, 20)

	// First investor takes 18% of the 20% pool.
	_, err := eng.Invest(first.ID, ch.ID, 45000, "")
	require.NoError(t, err)

	// 10000 would grant 4%, but only 2% remains. Nothing moves.
	_, err = eng.Invest(second.ID, ch.ID, 10000, "")
	require.ErrorIs(t, err, ErrEquityExhausted)
	require.Equal(t, 50000.0, balanceOf(t, db, second.ID))

	var got models.Channel
	require.NoError(t, db.First(&got, ch.ID).Error)
	require.Equal(t, 45000.0, got.TotalRaised)
	require.Equal(t, 18.0, got.EquityIssued)

	var count int64
	require.NoError(t, db.Model(&models.Transaction{}).Where("user_id = ?", second.ID).Count(&count).Error)
	require.Zero(t, count)
}

func TestInvestClosesChannelWhenPoolExhausted(t *testing.T) {
	db := setupTestDB(t)
	eng := New(db)
	creator := createUser(t, db, "creator", models.RoleCreator, 0)
	investor := createUser(t, db, "whale", models.RoleInvestor, 100000)
	late := createUser(t, db, "late", models.RoleInvestor, 10000)
	ch := createChannel(t, eng, creator.ID, 50000, 20)

	// Exactly fills the pool: 50000 / 50000 * 20 = 20%.
	result, err := eng.Invest(investor.ID, ch.ID, 50000, "")
	require.NoError(t, err)
	require.Equal(t, 20.0, result.Investment.EquityPct)

	var got models.Channel
	require.NoError(t, db.First(&got, ch.ID).Error)
	require.Equal(t, models.ChannelClosed, got.Status)
	require.Equal(t, 20.0, got.EquityIssued)

	// Closure is the exhausted-pool state, so late investors see the same
	// rejection the reservation path produces.
	_, err = eng.Invest(late.ID, ch.ID, 1000, "")
	require.ErrorIs(t, err, ErrEquityExhausted)
	require.Equal(t, 10000.0, balanceOf(t, db, late.ID))
}

func TestInvestOverGoalAllowedWhileEquityRemains(t *testing.T) {
	db := setupTestDB(t)
	eng := New(db)
	creator := createUser(t, db, "creator", models.RoleCreator, 0)
	investor := createUser(t, db, "eager", models.RoleInvestor, 200000)
	ch := createChannel(t, eng, creator.ID, 50000, 20)

	// 100000 raised against a 50000 goal still only consumes equity
	// proportionally; the cash goal is not a hard cap.
	_, err := eng.Invest(investor.ID, ch.ID, 40000, "")
	require.NoError(t, err)
	_, err = eng.Invest(investor.ID, ch.ID, 10000, "")
	require.NoError(t, err)

	var got models.Channel
	require.NoError(t, db.First(&got, ch.ID).Error)
	require.Equal(t, 50000.0, got.TotalRaised)
	require.Equal(t, models.ChannelClosed, got.Status)
}

func TestInvestIdempotentReplayDebitsOnce(t *testing.T) {
	db := setupTestDB(t)
	eng := New(db)
	creator := createUser(t, db, "creator", models.RoleCreator, 0)
	investor := createUser(t, db, "investor", models.RoleInvestor, 10000)
	ch := createChannel(t, eng, creator.ID, 50000, 20)

	key := "retry-key-001"
	first, err := eng.Invest(investor.ID, ch.ID, 5000, key)
	require.NoError(t, err)

	replay, err := eng.Invest(investor.ID, ch.ID, 5000, key)
	require.NoError(t, err)
	require.Equal(t, first.Investment.ID, replay.Investment.ID)
	require.Equal(t, first.Investment.ReferenceID, replay.Investment.ReferenceID)

	// One debit only.
	require.Equal(t, 5000.0, balanceOf(t, db, investor.ID))

	var count int64
	require.NoError(t, db.Model(&models.Investment{}).Where("channel_id = ?", ch.ID).Count(&count).Error)
	require.Equal(t, int64(1), count)

	var got models.Channel
	require.NoError(t, db.First(&got, ch.ID).Error)
	require.Equal(t, 5000.0, got.TotalRaised)
}

func TestInvestIdempotencyKeyScopedToInvestor(t *testing.T) {
	db := setupTestDB(t)
	eng := New(db)
	creator := createUser(t, db, "creator", models.RoleCreator, 0)
	alice := createUser(t, db, "alice", models.RoleInvestor, 10000)
	mallory := createUser(t, db, "mallory", models.RoleInvestor, 10000)
	ch := createChannel(t, eng, creator.ID, 50000, 20)

	key := "alices-key"
	first, err := eng.Invest(alice.ID, ch.ID, 5000, key)
	require.NoError(t, err)

	// Another investor replaying the key must not be handed Alice's receipt.
	_, err = eng.Invest(mallory.ID, ch.ID, 5000, key)
	require.ErrorIs(t, err, ErrIdempotencyConflict)
	require.Equal(t, 10000.0, balanceOf(t, db, mallory.ID))

	var count int64
	require.NoError(t, db.Model(&models.Investment{}).Where("channel_id = ?", ch.ID).Count(&count).Error)
	require.Equal(t, int64(1), count)

	// The key holder replaying against a different channel is rejected too.
	other := createChannel(t, eng, creator.ID, 50000, 20)
	_, err = eng.Invest(alice.ID, other.ID, 5000, key)
	require.ErrorIs(t, err, ErrIdempotencyConflict)

	// The legitimate replay still works.
	replay, err := eng.Invest(alice.ID, ch.ID, 5000, key)
	require.NoError(t, err)
	require.Equal(t, first.Investment.ID, replay.Investment.ID)
}

func TestInvestUnknownChannel(t *testing.T) {
	db := setupTestDB(t)
	eng := New(db)
	investor := createUser(t, db, "investor", models.RoleInvestor, 10000)

	_, err := eng.Invest(investor.ID, 999, 5000, "")
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, 10000.0, balanceOf(t, db, investor.ID))
}
