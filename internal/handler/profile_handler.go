package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/service"
	"go.uber.org/zap"
)

// GetOwnProfile 当前账号的个人资料，还没有时返回 200 null
func (a *API) GetOwnProfile(c *gin.Context) {
	profile, err := a.profiles.ForUser(currentUserID(c))
	if errors.Is(err, service.ErrProfileNotFound) {
		c.JSON(http.StatusOK, nil)
		return
	}
	if err != nil {
		respondServiceError(c, err, "Failed to load profile")
		return
	}
	c.JSON(http.StatusOK, profilePayload(*profile))
}

// SaveOwnProfile 每个账号只有一份资料，已存在时就地更新；两种情况都返回 201
func (a *API) SaveOwnProfile(c *gin.Context) {
	var input service.ProfileInput
	if !bindJSON(c, &input, "Invalid profile payload") {
		return
	}

	profile, created, err := a.profiles.Upsert(currentUserID(c), input)
	if err != nil {
		respondServiceError(c, err, "Failed to save profile")
		return
	}
	if !created {
		a.logger.Debug("profile updated in place", zap.Uint("profile_id", profile.ID))
	}
	c.JSON(http.StatusCreated, profilePayload(*profile))
}

// GetProfile 资料属于其他账号时返回 403
func (a *API) GetProfile(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	profile, err := a.profiles.Get(currentUserID(c), id)
	if err != nil {
		respondServiceError(c, err, "Failed to load profile")
		return
	}
	c.JSON(http.StatusOK, profilePayload(*profile))
}

// UpdateProfile 所有权校验先于字段校验
func (a *API) UpdateProfile(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input service.ProfileInput
	if !bindJSON(c, &input, "Invalid profile payload") {
		return
	}
	profile, err := a.profiles.Update(currentUserID(c), id, input)
	if err != nil {
		respondServiceError(c, err, "Failed to update profile")
		return
	}
	c.JSON(http.StatusOK, profilePayload(*profile))
}

func (a *API) DeleteProfile(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := a.profiles.Delete(currentUserID(c), id); err != nil {
		respondServiceError(c, err, "Failed to delete profile")
		return
	}
	c.Status(http.StatusNoContent)
}
