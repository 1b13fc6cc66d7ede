package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"rodneysbrain/internal/models/request_models"
	"rodneysbrain/internal/services"
	"rodneysbrain/pkg/utils"
)

type ProjectController struct {
	projectService services.ProjectServiceInterface
}

func NewProjectController(projectService services.ProjectServiceInterface) *ProjectController {
	return &ProjectController{
		projectService: projectService,
	}
}

// CreateProject godoc
// @Summary Create a project
// @Tags Projects
// @Accept json
// @Produce json
// @Param request body request_models.CreateProjectRequest true "Project payload"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /projects [post]
func (p *ProjectController) CreateProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req request_models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	project, err := p.projectService.CreateProject(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, project, "Project created successfully")
}

// ListProjects godoc
// @Summary List the caller's projects, newest first
// @Tags Projects
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /projects [get]
func (p *ProjectController) ListProjects(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	projects, err := p.projectService.ListProjects(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, projects, "Projects fetched successfully")
}

func (p *ProjectController) GetProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, "Project not found")
		return
	}

	project, err := p.projectService.GetProject(c.Request.Context(), projectID, userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, project, "Project fetched successfully")
}

func (p *ProjectController) UpdateProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, "Project not found")
		return
	}

	var req request_models.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	project, err := p.projectService.UpdateProject(c.Request.Context(), projectID, userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, project, "Project updated successfully")
}

func (p *ProjectController) DeleteProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, "Project not found")
		return
	}

	if err := p.projectService.DeleteProject(c.Request.Context(), projectID, userID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Project deleted")
}

// GetPreview godoc
// @Summary Fetch a project's rendered preview document
// @Description Public route used by preview iframes and share links.
// @Tags Projects
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /preview/{id} [get]
func (p *ProjectController) GetPreview(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, "Project not found")
		return
	}

	preview, err := p.projectService.GetPreview(c.Request.Context(), projectID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, preview, "Preview fetched successfully")
}
