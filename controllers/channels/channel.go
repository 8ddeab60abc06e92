package channels

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"creatorfund/database"
	"creatorfund/engine"
	"creatorfund/middleware"
	"creatorfund/models"
	"creatorfund/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type CreateChannelRequest struct {
	Name          string  `json:"name" validate:"required"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	GoalAmount    float64 `json:"goal_amount" validate:"required"`
	EquityOffered float64 `json:"equity_offered" validate:"required"`
}

// channelIDFromPath parses the {id} path variable.
func channelIDFromPath(r *http.Request) (uint, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// POST /api/channels. Creator-only, enforced by RequireRole on the route.
func CreateChannelHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	var req CreateChannelRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Channel name must not be empty"})
		return
	}

	eng := engine.New(database.DB)
	ch, err := eng.CreateChannel(uid, req.Name, req.Description, req.Category, req.GoalAmount, req.EquityOffered)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidAmount) {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Goal amount must be positive and equity offered must be between 0 and 100"})
			return
		}
		log.Printf("[channel] create error creator=%d: %v", uid, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Channel created", Data: ch})
}

// GET /api/channels
func ListChannelsHandler(w http.ResponseWriter, r *http.Request) {
	db := database.DB

	status := strings.TrimSpace(r.URL.Query().Get("status"))
	category := strings.TrimSpace(r.URL.Query().Get("category"))

	query := db.Model(&models.Channel{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var channels []models.Channel
	if err := query.Order("id DESC").Find(&channels).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: channels})
}

// GET /api/channels/{id}
func GetChannelHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := channelIDFromPath(r)
	if !ok {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid channel id"})
		return
	}

	var ch models.Channel
	if err := database.DB.First(&ch, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Channel not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: ch})
}

// GET /api/channels/my
func GetMyChannelsHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	var channels []models.Channel
	if err := database.DB.Where("creator_id = ?", uid).Order("id DESC").Find(&channels).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: channels})
}

// GET /api/channels/{id}/summary
func GetChannelSummaryHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := channelIDFromPath(r)
	if !ok {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid channel id"})
		return
	}

	eng := engine.New(database.DB)
	summary, err := eng.ChannelSummary(id)
	if err != nil {
		if errors.Is(err, engine.ErrNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Channel not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: summary})
}
