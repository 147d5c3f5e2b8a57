package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/service"
	"github.com/portfolio/internal/view"
)

// ListContent 返回内容块，可按 section 过滤
func (a *API) ListContent(c *gin.Context) {
	items, err := a.content.List(strings.TrimSpace(c.Query("section")))
	if err != nil {
		respondServiceError(c, err, "Failed to load content")
		return
	}
	c.JSON(http.StatusOK, mapPayload(items, contentPayload))
}

// GetContent 返回单个内容块，附带渲染后的 HTML 便于预览
func (a *API) GetContent(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	item, err := a.content.Get(id)
	if err != nil {
		respondServiceError(c, err, "Failed to load content")
		return
	}
	payload := contentPayload(*item)
	payload["rendered"] = string(view.RenderContent(*item))
	c.JSON(http.StatusOK, payload)
}

// CreateContent key 重复时返回 422
func (a *API) CreateContent(c *gin.Context) {
	var input service.ContentInput
	if !bindJSON(c, &input, "Invalid content payload") {
		return
	}
	item, err := a.content.Create(input)
	if err != nil {
		respondServiceError(c, err, "Failed to create content")
		return
	}
	c.JSON(http.StatusCreated, contentPayload(*item))
}

func (a *API) UpdateContent(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input service.ContentInput
	if !bindJSON(c, &input, "Invalid content payload") {
		return
	}
	item, err := a.content.Update(id, input)
	if err != nil {
		respondServiceError(c, err, "Failed to update content")
		return
	}
	c.JSON(http.StatusOK, contentPayload(*item))
}

func (a *API) DeleteContent(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := a.content.Delete(id); err != nil {
		respondServiceError(c, err, "Failed to delete content")
		return
	}
	c.Status(http.StatusNoContent)
}
