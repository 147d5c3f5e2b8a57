package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/service"
	"go.uber.org/zap"
)

// GetCurrentUser returns the signed-in account.
func (a *API) GetCurrentUser(c *gin.Context) {
	userID := currentUserID(c)
	user, err := a.users.Get(userID, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to load user")
		return
	}
	c.JSON(http.StatusOK, userPayload(*user))
}

// CreateUser adds another back-office account. Password is required here.
func (a *API) CreateUser(c *gin.Context) {
	var input service.UserInput
	if !bindJSON(c, &input, "Invalid user payload") {
		return
	}
	user, err := a.users.Create(input)
	if err != nil {
		respondServiceError(c, err, "Failed to create user")
		return
	}
	a.logger.Info("user created", zap.Uint("user_id", user.ID), zap.Uint("created_by", currentUserID(c)))
	c.JSON(http.StatusCreated, userPayload(*user))
}

// GetUser only exposes the caller's own account; other ids are 403.
func (a *API) GetUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	user, err := a.users.Get(currentUserID(c), id)
	if err != nil {
		respondServiceError(c, err, "Failed to load user")
		return
	}
	c.JSON(http.StatusOK, userPayload(*user))
}

// UpdateUser changes name, email and optionally the password.
func (a *API) UpdateUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input service.UserInput
	if !bindJSON(c, &input, "Invalid user payload") {
		return
	}
	user, err := a.users.Update(currentUserID(c), id, input)
	if err != nil {
		respondServiceError(c, err, "Failed to update user")
		return
	}
	c.JSON(http.StatusOK, userPayload(*user))
}
