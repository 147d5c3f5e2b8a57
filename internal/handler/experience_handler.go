package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/service"
)

// ListExperiences 按排序返回全部工作经历
func (a *API) ListExperiences(c *gin.Context) {
	items, err := a.experiences.List()
	if err != nil {
		respondServiceError(c, err, "Failed to load experiences")
		return
	}
	c.JSON(http.StatusOK, mapPayload(items, experiencePayload))
}

// GetExperience 返回单条经历
func (a *API) GetExperience(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	item, err := a.experiences.Get(id)
	if err != nil {
		respondServiceError(c, err, "Failed to load experience")
		return
	}
	c.JSON(http.StatusOK, experiencePayload(*item))
}

// CreateExperience 新增经历，未指定 order 时追加到末尾
func (a *API) CreateExperience(c *gin.Context) {
	var input service.ExperienceInput
	if !bindJSON(c, &input, "Invalid experience payload") {
		return
	}
	item, err := a.experiences.Create(input)
	if err != nil {
		respondServiceError(c, err, "Failed to create experience")
		return
	}
	c.JSON(http.StatusCreated, experiencePayload(*item))
}

// UpdateExperience 整体更新经历
func (a *API) UpdateExperience(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input service.ExperienceInput
	if !bindJSON(c, &input, "Invalid experience payload") {
		return
	}
	item, err := a.experiences.Update(id, input)
	if err != nil {
		respondServiceError(c, err, "Failed to update experience")
		return
	}
	c.JSON(http.StatusOK, experiencePayload(*item))
}

// DeleteExperience 删除经历
func (a *API) DeleteExperience(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := a.experiences.Delete(id); err != nil {
		respondServiceError(c, err, "Failed to delete experience")
		return
	}
	c.Status(http.StatusNoContent)
}

// ReorderExperiences 批量更新排序
func (a *API) ReorderExperiences(c *gin.Context) {
	positions, ok := bindReorder(c, "experiences")
	if !ok {
		return
	}
	if err := a.experiences.Reorder(positions); err != nil {
		respondServiceError(c, err, "Failed to reorder experiences")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order updated"})
}
