package channels

import (
	"net/http"

	"creatorfund/database"
	"creatorfund/models"
	"creatorfund/utils"
)

// GET /api/channels/{id}/investors
//
// Returns one row per investor with their aggregate stake, not the raw
// receipt list.
func ListInvestorsHandler(w http.ResponseWriter, r *http.Request) {
	channelID, ok := channelIDFromPath(r)
	if !ok {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid channel id"})
		return
	}
	db := database.DB

	var ch models.Channel
	if err := db.Select("id").First(&ch, channelID).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Channel not found"})
		return
	}

	type investorRow struct {
		InvestorID    uint    `json:"investor_id"`
		Name          string  `json:"name"`
		TotalInvested float64 `json:"total_invested"`
		TotalEquity   float64 `json:"total_equity"`
		Investments   int64   `json:"investments"`
	}

	var rows []investorRow
	err := db.Model(&models.Investment{}).
		Select("investments.investor_id, users.name, COALESCE(SUM(investments.amount),0) AS total_invested, COALESCE(SUM(investments.equity_pct),0) AS total_equity, COUNT(investments.id) AS investments").
		Joins("JOIN users ON users.id = investments.investor_id").
		Where("investments.channel_id = ?", channelID).
		Group("investments.investor_id, users.name").
		Order("total_invested DESC").
		Scan(&rows).Error
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}
	if rows == nil {
		rows = []investorRow{}
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: rows})
}
