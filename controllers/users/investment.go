package users

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"creatorfund/database"
	"creatorfund/engine"
	"creatorfund/middleware"
	"creatorfund/models"
	"creatorfund/utils"
)

type CreateInvestmentRequest struct {
	ChannelID uint    `json:"channel_id" validate:"required"`
	Amount    float64 `json:"amount" validate:"required"`
}

// POST /api/investments
//
// Retries are made safe by the X-Idempotency-Key header: replaying the same
// key returns the stored receipt without a second debit.
func CreateInvestmentHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	var req CreateInvestmentRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	idemKey := strings.TrimSpace(r.Header.Get("X-Idempotency-Key"))
	if len(idemKey) > 36 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "X-Idempotency-Key must be at most 36 characters"})
		return
	}

	eng := engine.New(database.DB)
	result, err := eng.Invest(uid, req.ChannelID, req.Amount, idemKey)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrBelowMinimum):
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Investment amount is below the minimum of ₹500"})
		case errors.Is(err, engine.ErrInsufficientFunds):
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Insufficient balance"})
		case errors.Is(err, engine.ErrEquityExhausted):
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Equity pool exhausted for this channel"})
		case errors.Is(err, engine.ErrIdempotencyConflict):
			utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Idempotency key was already used for a different request"})
		case errors.Is(err, engine.ErrNotFound):
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Channel not found"})
		default:
			log.Printf("[investment] invest error user=%d channel=%d: %v", uid, req.ChannelID, err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		}
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Investment successful",
		Data: map[string]interface{}{
			"investment": result.Investment,
			"balance":    result.Balance,
		},
	})
}

// GET /api/investments/my
func GetMyInvestmentsHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	db := database.DB

	var investments []models.Investment
	if err := db.Where("investor_id = ?", uid).Order("id DESC").Find(&investments).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	type investmentDTO struct {
		ID          uint    `json:"id"`
		ReferenceID string  `json:"reference_id"`
		ChannelID   uint    `json:"channel_id"`
		ChannelName string  `json:"channel_name"`
		Amount      float64 `json:"amount"`
		EquityPct   float64 `json:"equity_pct"`
		CreatedAt   string  `json:"created_at"`
	}

	channelNames := make(map[uint]string)
	items := make([]investmentDTO, 0, len(investments))
	for _, inv := range investments {
		name, ok := channelNames[inv.ChannelID]
		if !ok {
			var ch models.Channel
			if err := db.Select("name").First(&ch, inv.ChannelID).Error; err == nil {
				name = ch.Name
			}
			channelNames[inv.ChannelID] = name
		}
		items = append(items, investmentDTO{
			ID:          inv.ID,
			ReferenceID: inv.ReferenceID,
			ChannelID:   inv.ChannelID,
			ChannelName: name,
			Amount:      inv.Amount,
			EquityPct:   inv.EquityPct,
			CreatedAt:   inv.CreatedAt.Format(time.RFC3339),
		})
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: items})
}
