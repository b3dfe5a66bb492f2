package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/ecotrack-backend/internal/http/response"
	"github.com/yungbote/ecotrack-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GET /api/me
func (uh *UserHandler) GetMe(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	u, err := uh.userService.GetMe(c.Request.Context(), userID)
	if err != nil {
		response.RespondServiceError(c, err, "load_user_failed")
		return
	}
	response.RespondOK(c, gin.H{"user": u})
}

// PATCH /api/me/profile
func (uh *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req struct {
		Region   *string `json:"region"`
		Role     *string `json:"role"`
		Language *string `json:"language"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	u, err := uh.userService.UpdateProfile(c.Request.Context(), userID, services.ProfileInput{
		Region:   req.Region,
		Role:     req.Role,
		Language: req.Language,
	})
	if err != nil {
		response.RespondServiceError(c, err, "update_profile_failed")
		return
	}
	response.RespondOK(c, gin.H{"user": u})
}

// DELETE /api/me
func (uh *UserHandler) DeleteMe(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	if err := uh.userService.DeleteAccount(c.Request.Context(), userID); err != nil {
		response.RespondServiceError(c, err, "delete_account_failed")
		return
	}
	c.Status(http.StatusNoContent)
}
