package channels

import (
	"errors"
	"log"
	"net/http"

	"creatorfund/database"
	"creatorfund/engine"
	"creatorfund/middleware"
	"creatorfund/models"
	"creatorfund/utils"

	"gorm.io/gorm"
)

type AddTeamMemberRequest struct {
	UserID   uint    `json:"user_id" validate:"required"`
	Role     string  `json:"role" validate:"required"`
	SplitPct float64 `json:"split_pct" validate:"required"`
}

// requireChannelOwner loads the channel and checks the caller owns it.
func requireChannelOwner(w http.ResponseWriter, r *http.Request, channelID uint) (uint, bool) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return 0, false
	}
	var ch models.Channel
	if err := database.DB.Select("id, creator_id").First(&ch, channelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Channel not found"})
			return 0, false
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return 0, false
	}
	if ch.CreatorID != uid {
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Message: "Only the channel creator can do this"})
		return 0, false
	}
	return uid, true
}

// POST /api/channels/{id}/team
func AddTeamMemberHandler(w http.ResponseWriter, r *http.Request) {
	channelID, ok := channelIDFromPath(r)
	if !ok {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid channel id"})
		return
	}
	if _, ok := requireChannelOwner(w, r, channelID); !ok {
		return
	}

	var req AddTeamMemberRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	var member models.User
	if err := database.DB.Select("id").First(&member, req.UserID).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found"})
		return
	}

	eng := engine.New(database.DB)
	tm, err := eng.AddTeamMember(channelID, req.UserID, req.Role, req.SplitPct)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrInvalidSplit):
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Split percentage must be between 0 and 100"})
		case errors.Is(err, engine.ErrSplitCeilingExceeded):
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Team splits would exceed 100%"})
		case errors.Is(err, engine.ErrAlreadyMember):
			utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "User is already a team member"})
		case errors.Is(err, engine.ErrNotFound):
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Channel not found"})
		default:
			log.Printf("[team] add member error channel=%d user=%d: %v", channelID, req.UserID, err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		}
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Team member added", Data: tm})
}

// GET /api/channels/{id}/team
func ListTeamMembersHandler(w http.ResponseWriter, r *http.Request) {
	channelID, ok := channelIDFromPath(r)
	if !ok {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid channel id"})
		return
	}

	var ch models.Channel
	if err := database.DB.Select("id").First(&ch, channelID).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Channel not found"})
		return
	}

	var members []models.TeamMember
	if err := database.DB.Where("channel_id = ?", channelID).Order("id ASC").Find(&members).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	eng := engine.New(database.DB)
	totalSplit, err := eng.TotalSplit(channelID)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"members":     members,
			"total_split": totalSplit,
		},
	})
}
