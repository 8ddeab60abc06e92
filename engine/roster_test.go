package engine

import (
	"testing"

	"creatorfund/models"

	"github.com/stretchr/testify/require"
)

func TestAddTeamMemberAndTotalSplit(t *testing.T) {
	db := setupTestDB(t)
	eng := New(db)
	creator := createUser(t, db, "creator", models.RoleCreator, 0)
	editor := createUser(t, db, "editor", models.RoleInvestor, 0)
	ch := createChannel(t, eng, creator.ID, 50000, 20)

	member, err := eng.AddTeamMember(ch.ID, editor.ID, "editor", 15)
	require.NoError(t, err)
	require.Equal(t, 15.0, member.SplitPct)

	total, err := eng.TotalSplit(ch.ID)
	require.NoError(t, err)
	require.Equal(t, 15.0, total)
}

func TestAddTeamMemberSplitCeiling(t *testing.T) {
	db := setupTestDB(t)
	eng := New(db)
	creator := createUser(t, db, "creator", models.RoleCreator, 0)
	editor := createUser(t, db, "editor", models.RoleInvestor, 0)
	composer := createUser(t, db, "composer", models.RoleInvestor, 0)
	ch := createChannel(t, eng, creator.ID, 50000, 20)

	_, err := eng.AddTeamMember(ch.ID, editor.ID, "editor", 15)
	require.NoError(t, err)

	// 15 + 90 > 100: rejected, roster unchanged.
	_, err = eng.AddTeamMember(ch.ID, composer.ID, "composer", 90)
	require.ErrorIs(t, err, ErrSplitCeilingExceeded)

	total, err := eng.TotalSplit(ch.ID)
	require.NoError(t, err)
	require.Equal(t, 15.0, total)

	var count int64
	require.NoError(t, db.Model(&models.TeamMember{}).Where("channel_id = ?", ch.ID).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestAddTeamMemberInvalidSplit(t *testing.T) {
	db := setupTestDB(t)
	eng := New(db)
	creator := createUser(t, db, "creator", models.RoleCreator, 0)
	editor := createUser(t, db, "editor", models.RoleInvestor, 0)
	ch := createChannel(t, eng, creator.ID, 50000, 20)

	_, err := eng.AddTeamMember(ch.ID, editor.ID, "editor", 0)
	require.ErrorIs(t, err, ErrInvalidSplit)
	_, err = eng.AddTeamMember(ch.ID, editor.ID, "editor", -5)
	require.ErrorIs(t, err, ErrInvalidSplit)
	_, err = eng.AddTeamMember(ch.ID, editor.ID, "editor", 100.5)
	require.ErrorIs(t, err, ErrInvalidSplit)
}

func TestAddTeamMemberDuplicateRejected(t *testing.T) {
	db := setupTestDB(t)
	eng := New(db)
	creator := createUser(t, db, "creator", models.RoleCreator, 0)
	editor := createUser(t, db, "editor", models.RoleInvestor, 0)
	ch := createChannel(t, eng, creator.ID, 50000, 20)

	_, err := eng.AddTeamMember(ch.ID, editor.ID, "editor", 10)
	require.NoError(t, err)

	_, err = eng.AddTeamMember(ch.ID, editor.ID, "colorist", 5)
	require.ErrorIs(t, err, ErrAlreadyMember)
}

func TestAddTeamMemberUnknownChannel(t *testing.T) {
	db := setupTestDB(t)
	eng := New(db)
	editor := createUser(t, db, "editor", models.RoleInvestor, 0)

	_, err := eng.AddTeamMember(404, editor.ID, "editor", 10)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestChannelSummary(t *testing.T) {
	db := setupTestDB(t)
	eng := New(db)
	creator := createUser(t, db, "creator", models.RoleCreator, 0)
	editor := createUser(t, db, "editor", models.RoleInvestor, 0)
	investor := createUser(t, db, "investor", models.RoleInvestor, 20000)
	ch := createChannel(t, eng, creator.ID, 50000, 20)

	_, err := eng.AddTeamMember(ch.ID, editor.ID, "editor", 15)
	require.NoError(t, err)
	_, err = eng.Invest(investor.ID, ch.ID, 5000, "")
	require.NoError(t, err)
	_, err = eng.Invest(investor.ID, ch.ID, 5000, "")
	require.NoError(t, err)

	summary, err := eng.ChannelSummary(ch.ID)
	require.NoError(t, err)
	require.Equal(t, ch.ID, summary.ChannelID)
	require.Equal(t, 10000.0, summary.TotalRaised)
	require.Equal(t, 20.0, summary.FundingPct)
	require.Equal(t, 4.0, summary.EquityIssued)
	require.Equal(t, 15.0, summary.TeamSplitPct)
	// Two receipts, one distinct investor.
	require.Equal(t, int64(1), summary.InvestorCount)
	require.Equal(t, int64(1), summary.TeamCount)

	_, err = eng.ChannelSummary(404)
	require.ErrorIs(t, err, ErrNotFound)
}
