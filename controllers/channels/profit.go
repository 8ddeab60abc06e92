package channels

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"creatorfund/database"
	"creatorfund/engine"
	"creatorfund/middleware"
	"creatorfund/models"
	"creatorfund/utils"

	"gorm.io/gorm"
)

type DistributeProfitRequest struct {
	TotalProfit float64 `json:"total_profit" validate:"required"`
}

// POST /api/channels/{id}/profits
//
// Declares a profit and fans it out in one transaction. X-Idempotency-Key
// makes retries safe: the stored distribution is returned and nobody is
// credited twice.
func DistributeProfitHandler(w http.ResponseWriter, r *http.Request) {
	channelID, ok := channelIDFromPath(r)
	if !ok {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid channel id"})
		return
	}
	if _, ok := requireChannelOwner(w, r, channelID); !ok {
		return
	}

	var req DistributeProfitRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	idemKey := strings.TrimSpace(r.Header.Get("X-Idempotency-Key"))
	if len(idemKey) > 36 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "X-Idempotency-Key must be at most 36 characters"})
		return
	}

	eng := engine.New(database.DB)
	dist, err := eng.Distribute(channelID, req.TotalProfit, idemKey)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrInvalidAmount):
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Total profit must be positive"})
		case errors.Is(err, engine.ErrDistributionFailed):
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Distribution failed, no balances were changed"})
		case errors.Is(err, engine.ErrIdempotencyConflict):
			utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Idempotency key was already used for a different request"})
		case errors.Is(err, engine.ErrNotFound):
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Channel not found"})
		default:
			log.Printf("[profit] distribute error channel=%d: %v", channelID, err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		}
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Profit distributed", Data: dist})
}

// GET /api/channels/{id}/profits
func ListDistributionsHandler(w http.ResponseWriter, r *http.Request) {
	channelID, ok := channelIDFromPath(r)
	if !ok {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid channel id"})
		return
	}

	var ch models.Channel
	if err := database.DB.Select("id").First(&ch, channelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Channel not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	var distributions []models.ProfitDistribution
	err := database.DB.Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("seq ASC") }).
		Where("channel_id = ?", channelID).Order("id DESC").Find(&distributions).Error
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: distributions})
}
