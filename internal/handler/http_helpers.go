package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/ordering"
	"github.com/portfolio/internal/service"
	"github.com/portfolio/internal/validation"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// respondServiceError 将服务层错误映射为 HTTP 状态码。
func respondServiceError(c *gin.Context, err error, fallback string) {
	var missing *ordering.MissingError
	switch {
	case errors.Is(err, validation.ErrInvalid):
		fields := map[string][]string{}
		if verr, ok := validation.As(err); ok {
			fields = verr.Fields
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Validation failed", "errors": fields})
	case errors.As(err, &missing):
		c.JSON(http.StatusNotFound, gin.H{"error": missing.Error(), "missing_ids": missing.IDs})
	case errors.Is(err, service.ErrForbidden):
		respondError(c, http.StatusForbidden, "Unauthorized")
	case errors.Is(err, service.ErrNotFound), errors.Is(err, ordering.ErrNotFound):
		respondError(c, http.StatusNotFound, capitalize(err.Error()))
	default:
		c.Error(err)
		respondError(c, http.StatusInternalServerError, fallback)
	}
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

// bindReorder 读取 {"<key>": [{id, order}]}，也接受通用的 "items"。
func bindReorder(c *gin.Context, key string) ([]ordering.Position, bool) {
	var body map[string]json.RawMessage
	if !bindJSON(c, &body, "Invalid reorder payload") {
		return nil, false
	}

	raw, ok := body[key]
	if !ok {
		raw, ok = body["items"]
	}
	if !ok {
		respondServiceError(c, validation.Field(key, "is required"), "")
		return nil, false
	}

	var positions []ordering.Position
	if err := json.Unmarshal(raw, &positions); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid reorder payload")
		return nil, false
	}
	return positions, true
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

// idParam 解析路径中的 id，失败时直接返回 400。
func idParam(c *gin.Context) (uint, bool) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}

func parsePositiveInt(raw string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func capitalize(message string) string {
	if message == "" {
		return message
	}
	return strings.ToUpper(message[:1]) + message[1:]
}
