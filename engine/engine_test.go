package engine

import (
	"fmt"
	"testing"

	"creatorfund/database"
	"creatorfund/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, name, role string, balance float64) *models.User {
	t.Helper()
	user := models.User{
		Name:     name,
		Email:    fmt.Sprintf("%s-%s@example.com", name, uuid.NewString()[:8]),
		Password: "hashed",
		Role:     role,
		Balance:  balance,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createChannel(t *testing.T, eng *Engine, creatorID uint, goal, equity float64) *models.Channel {
	t.Helper()
	ch, err := eng.CreateChannel(creatorID, "Studio One", "indie film channel", "film", goal, equity)
	require.NoError(t, err)
	return ch
}

func balanceOf(t *testing.T, db *gorm.DB, userID uint) float64 {
	t.Helper()
	var user models.User
	require.NoError(t, db.First(&user, userID).Error)
	return user.Balance
}

func TestCreateChannelValidation(t *testing.T) {
	db := setupTestDB(t)
	eng := New(db)
	creator := createUser(t, db, "creator", models.RoleCreator, 0)

	_, err := eng.CreateChannel(creator.ID, "x", "", "", 0, 20)
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = eng.CreateChannel(creator.ID, "x", "", "", 50000, 0)
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = eng.CreateChannel(creator.ID, "x", "", "", 50000, 120)
	require.ErrorIs(t, err, ErrInvalidAmount)

	ch, err := eng.CreateChannel(creator.ID, "x", "", "", 50000, 20)
	require.NoError(t, err)
	require.Equal(t, models.ChannelActive, ch.Status)
	require.Zero(t, ch.TotalRaised)
	require.Zero(t, ch.EquityIssued)
}

func TestSignupBonusCreditWritesJournal(t *testing.T) {
	db := setupTestDB(t)
	eng := New(db)
	user := createUser(t, db, "newbie", models.RoleInvestor, 0)

	balance, err := eng.Credit(user.ID, 10000, models.TxSignupBonus, "Signup bonus")
	require.NoError(t, err)
	require.Equal(t, 10000.0, balance)
	require.Equal(t, 10000.0, balanceOf(t, db, user.ID))

	var rows []models.Transaction
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&rows).Error)
	require.Len(t, rows, 1)
	require.Equal(t, models.FlowCredit, rows[0].Flow)
	require.Equal(t, models.TxSignupBonus, rows[0].Type)
	require.Equal(t, 10000.0, rows[0].Amount)
}

func TestCreditRejectsNegativeAmount(t *testing.T) {
	db := setupTestDB(t)
	eng := New(db)
	user := createUser(t, db, "victim", models.RoleInvestor, 100)

	_, err := eng.Credit(user.ID, -50, models.TxSignupBonus, "")
	require.ErrorIs(t, err, ErrInvalidAmount)
	require.Equal(t, 100.0, balanceOf(t, db, user.ID))
}
