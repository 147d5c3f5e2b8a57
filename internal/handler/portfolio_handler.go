package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/service"
)

// ListPortfolioItems 按排序返回全部作品
func (a *API) ListPortfolioItems(c *gin.Context) {
	items, err := a.portfolio.List()
	if err != nil {
		respondServiceError(c, err, "Failed to load portfolio items")
		return
	}
	c.JSON(http.StatusOK, mapPayload(items, portfolioPayload))
}

// GetPortfolioItem 返回单个作品
func (a *API) GetPortfolioItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	item, err := a.portfolio.Get(id)
	if err != nil {
		respondServiceError(c, err, "Failed to load portfolio item")
		return
	}
	c.JSON(http.StatusOK, portfolioPayload(*item))
}

// CreatePortfolioItem 新增作品，is_active 缺省为 true
func (a *API) CreatePortfolioItem(c *gin.Context) {
	var input service.PortfolioInput
	if !bindJSON(c, &input, "Invalid portfolio item payload") {
		return
	}
	item, err := a.portfolio.Create(input)
	if err != nil {
		respondServiceError(c, err, "Failed to create portfolio item")
		return
	}
	c.JSON(http.StatusCreated, portfolioPayload(*item))
}

// UpdatePortfolioItem 整体更新作品
func (a *API) UpdatePortfolioItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input service.PortfolioInput
	if !bindJSON(c, &input, "Invalid portfolio item payload") {
		return
	}
	item, err := a.portfolio.Update(id, input)
	if err != nil {
		respondServiceError(c, err, "Failed to update portfolio item")
		return
	}
	c.JSON(http.StatusOK, portfolioPayload(*item))
}

// DeletePortfolioItem 删除作品
func (a *API) DeletePortfolioItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := a.portfolio.Delete(id); err != nil {
		respondServiceError(c, err, "Failed to delete portfolio item")
		return
	}
	c.Status(http.StatusNoContent)
}

// ReorderPortfolioItems 接收 {"portfolioItems": [{id, order}]}
func (a *API) ReorderPortfolioItems(c *gin.Context) {
	positions, ok := bindReorder(c, "portfolioItems")
	if !ok {
		return
	}
	if err := a.portfolio.Reorder(positions); err != nil {
		respondServiceError(c, err, "Failed to reorder portfolio items")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order updated"})
}
