package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/service"
)

// ListSkills returns every skill in display order.
// ?featured=true limits the list to featured skills.
func (a *API) ListSkills(c *gin.Context) {
	list := a.skills.List
	if featured, _ := strconv.ParseBool(c.Query("featured")); featured {
		list = a.skills.ListFeatured
	}
	items, err := list()
	if err != nil {
		respondServiceError(c, err, "Failed to load skills")
		return
	}
	c.JSON(http.StatusOK, mapPayload(items, skillPayload))
}

// GetSkill returns one skill.
func (a *API) GetSkill(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	item, err := a.skills.Get(id)
	if err != nil {
		respondServiceError(c, err, "Failed to load skill")
		return
	}
	c.JSON(http.StatusOK, skillPayload(*item))
}

// CreateSkill appends a skill unless an explicit order is given.
func (a *API) CreateSkill(c *gin.Context) {
	var input service.SkillInput
	if !bindJSON(c, &input, "Invalid skill payload") {
		return
	}
	item, err := a.skills.Create(input)
	if err != nil {
		respondServiceError(c, err, "Failed to create skill")
		return
	}
	c.JSON(http.StatusCreated, skillPayload(*item))
}

// UpdateSkill replaces every field of a skill.
func (a *API) UpdateSkill(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input service.SkillInput
	if !bindJSON(c, &input, "Invalid skill payload") {
		return
	}
	item, err := a.skills.Update(id, input)
	if err != nil {
		respondServiceError(c, err, "Failed to update skill")
		return
	}
	c.JSON(http.StatusOK, skillPayload(*item))
}

// DeleteSkill removes a skill.
func (a *API) DeleteSkill(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := a.skills.Delete(id); err != nil {
		respondServiceError(c, err, "Failed to delete skill")
		return
	}
	c.Status(http.StatusNoContent)
}

// ReorderSkills accepts {"skills": [{id, order}]}.
func (a *API) ReorderSkills(c *gin.Context) {
	positions, ok := bindReorder(c, "skills")
	if !ok {
		return
	}
	if err := a.skills.Reorder(positions); err != nil {
		respondServiceError(c, err, "Failed to reorder skills")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order updated"})
}

// SkillCategories lists the distinct categories in use.
func (a *API) SkillCategories(c *gin.Context) {
	categories, err := a.skills.Categories()
	if err != nil {
		respondServiceError(c, err, "Failed to load skill categories")
		return
	}
	c.JSON(http.StatusOK, categories)
}
