// api/controller/member_controller.go
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

type MemberController struct {
	memberService service.IMemberService
}

func NewMemberController(memberService service.IMemberService) *MemberController {
	return &MemberController{
		memberService: memberService,
	}
}

// RegisterRoutes registers the API routes
func (mc *MemberController) RegisterRoutes(r *gin.RouterGroup) {
	members := r.Group("/projects/:id/members")
	{
		members.GET("",
			middleware.RequireProjectRole(mc.memberService, model.RoleViewer), mc.ListMembers)
		members.POST("",
			middleware.RequireProjectRole(mc.memberService, model.RoleOwner), mc.AddMember)
		members.PUT("/:userId",
			middleware.RequireProjectRole(mc.memberService, model.RoleOwner), mc.UpdateMemberRole)
		members.DELETE("/:userId",
			middleware.RequireProjectRole(mc.memberService, model.RoleOwner), mc.RemoveMember)
	}
}

// ListMembers endpoint
func (mc *MemberController) ListMembers(c *gin.Context) {
	projectID := c.Param("id")

	members, err := mc.memberService.ListMembers(c.Request.Context(), projectID)
	if err != nil {
		if errors.Is(err, api_errors.ErrProjectNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Project not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to list members", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"members": members})
}

// AddMember endpoint
func (mc *MemberController) AddMember(c *gin.Context) {
	projectID := c.Param("id")
	var member model.ProjectMember
	if err := c.ShouldBindJSON(&member); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid member data", api_errors.ErrInvalidMemberData)
		return
	}
	member.ProjectID = projectID

	added, err := mc.memberService.AddMember(c.Request.Context(), member)
	if err != nil {
		switch {
		case errors.Is(err, api_errors.ErrMemberConflict):
			util.RespondWithError(c, http.StatusConflict, "Member already exists", err)
		case errors.Is(err, api_errors.ErrProjectNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Project not found", err)
		case errors.Is(err, api_errors.ErrInvalidMemberData):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid member data", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to add member", err)
		}
		return
	}

	c.JSON(http.StatusCreated, added)
}

// UpdateMemberRole endpoint
func (mc *MemberController) UpdateMemberRole(c *gin.Context) {
	projectID := c.Param("id")
	userID := c.Param("userId")

	var body struct {
		Role string `json:"role" binding:"required,oneof=owner editor viewer"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid member data", api_errors.ErrInvalidMemberData)
		return
	}

	updated, err := mc.memberService.UpdateMemberRole(c.Request.Context(), projectID, userID, body.Role)
	if err != nil {
		switch {
		case errors.Is(err, api_errors.ErrMemberNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Member not found", err)
		case errors.Is(err, api_errors.ErrInvalidMemberData):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid member data", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to update member role", err)
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

// RemoveMember endpoint
func (mc *MemberController) RemoveMember(c *gin.Context) {
	projectID := c.Param("id")
	userID := c.Param("userId")

	if err := mc.memberService.RemoveMember(c.Request.Context(), projectID, userID); err != nil {
		if errors.Is(err, api_errors.ErrMemberNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Member not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to remove member", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
