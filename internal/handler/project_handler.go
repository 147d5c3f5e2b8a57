package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/service"
)

// ListProjects 后台项目列表，包含未启用的项目
func (a *API) ListProjects(c *gin.Context) {
	items, err := a.projects.List()
	if err != nil {
		respondServiceError(c, err, "Failed to load projects")
		return
	}
	c.JSON(http.StatusOK, mapPayload(items, projectPayload))
}

func (a *API) GetProject(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	item, err := a.projects.Get(id)
	if err != nil {
		respondServiceError(c, err, "Failed to load project")
		return
	}
	c.JSON(http.StatusOK, projectPayload(*item))
}

// CreateProject 新增项目
func (a *API) CreateProject(c *gin.Context) {
	var input service.ProjectInput
	if !bindJSON(c, &input, "Invalid project payload") {
		return
	}
	item, err := a.projects.Create(input)
	if err != nil {
		respondServiceError(c, err, "Failed to create project")
		return
	}
	c.JSON(http.StatusCreated, projectPayload(*item))
}

func (a *API) UpdateProject(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input service.ProjectInput
	if !bindJSON(c, &input, "Invalid project payload") {
		return
	}
	item, err := a.projects.Update(id, input)
	if err != nil {
		respondServiceError(c, err, "Failed to update project")
		return
	}
	c.JSON(http.StatusOK, projectPayload(*item))
}

func (a *API) DeleteProject(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := a.projects.Delete(id); err != nil {
		respondServiceError(c, err, "Failed to delete project")
		return
	}
	c.Status(http.StatusNoContent)
}

// ReorderProjects 批量更新项目排序
func (a *API) ReorderProjects(c *gin.Context) {
	positions, ok := bindReorder(c, "projects")
	if !ok {
		return
	}
	if err := a.projects.Reorder(positions); err != nil {
		respondServiceError(c, err, "Failed to reorder projects")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order updated"})
}
