// api/controller/project_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	api_errors "github.com/projecthub-io/api/errors"
	"github.com/projecthub-io/api/middleware"
	"github.com/projecthub-io/api/model"
	"github.com/projecthub-io/api/service"
	"github.com/projecthub-io/api/util"
)

type ProjectController struct {
	projectService service.IProjectService
	memberService  service.IMemberService
}

func NewProjectController(projectService service.IProjectService, memberService service.IMemberService) *ProjectController {
	return &ProjectController{
		projectService: projectService,
		memberService:  memberService,
	}
}

// RegisterRoutes registers the API routes
func (pc *ProjectController) RegisterRoutes(r *gin.RouterGroup) {
	projects := r.Group("/projects")
	{
		projects.POST("", pc.CreateProject)
		projects.GET("", pc.ListMyProjects)
		projects.GET("/:id",
			middleware.RequireProjectRole(pc.memberService, model.RoleViewer), pc.GetProject)
		projects.GET("/:id/details",
			middleware.RequireProjectRole(pc.memberService, model.RoleViewer), pc.GetProjectDetails)
		projects.PUT("/:id",
			middleware.RequireProjectRole(pc.memberService, model.RoleEditor), pc.UpdateProject)
		projects.DELETE("/:id",
			middleware.RequireProjectRole(pc.memberService, model.RoleOwner), pc.DeleteProject)
	}
}

// CreateProject endpoint
func (pc *ProjectController) CreateProject(c *gin.Context) {
	var project model.Project
	if err := c.ShouldBindJSON(&project); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid project data", api_errors.ErrInvalidProjectData)
		return
	}
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", api_errors.ErrUnauthorized)
		return
	}

	created, err := pc.projectService.CreateProject(c.Request.Context(), project, userID)
	if err != nil {
		switch {
		case errors.Is(err, api_errors.ErrProjectConflict):
			util.RespondWithError(c, http.StatusConflict, "Project already exists", err)
		case errors.Is(err, api_errors.ErrInvalidProjectData):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid project data", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to create project", err)
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListMyProjects returns the caller's project memberships
func (pc *ProjectController) ListMyProjects(c *gin.Context) {
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	projects, err := pc.memberService.ListUserProjects(c.Request.Context(), userID)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list projects", err)
		return
	}
	if projects == nil {
		projects = []model.CachedProjectAccess{}
	}

	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// GetProject endpoint
func (pc *ProjectController) GetProject(c *gin.Context) {
	projectID := c.Param("id")

	project, err := pc.projectService.GetProject(c.Request.Context(), projectID)
	if err != nil {
		if errors.Is(err, api_errors.ErrProjectNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Project not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to get project", err)
		}
		return
	}

	c.JSON(http.StatusOK, project)
}

// GetProjectDetails returns the project with its member list
func (pc *ProjectController) GetProjectDetails(c *gin.Context) {
	projectID := c.Param("id")

	details, err := pc.projectService.GetProjectDetails(c.Request.Context(), projectID)
	if err != nil {
		if errors.Is(err, api_errors.ErrProjectNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Project not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to get project details", err)
		}
		return
	}

	c.JSON(http.StatusOK, details)
}

// UpdateProject endpoint
func (pc *ProjectController) UpdateProject(c *gin.Context) {
	projectID := c.Param("id")
	var project model.Project
	if err := c.ShouldBindJSON(&project); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid project data", err)
		return
	}
	project.ID = projectID

	updated, err := pc.projectService.UpdateProject(c.Request.Context(), project)
	if err != nil {
		switch {
		case errors.Is(err, api_errors.ErrProjectNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Project not found", err)
		case errors.Is(err, api_errors.ErrInvalidProjectData):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid project data", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to update project", err)
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteProject endpoint
func (pc *ProjectController) DeleteProject(c *gin.Context) {
	projectID := c.Param("id")

	if err := pc.projectService.DeleteProject(c.Request.Context(), projectID); err != nil {
		if errors.Is(err, api_errors.ErrProjectNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Project not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to delete project", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
