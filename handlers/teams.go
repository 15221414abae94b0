package handlers

import (
	"net/http"

	"bcal/middleware"
	"bcal/models"
	"bcal/utils"

	"github.com/gin-gonic/gin"
)

// ListTeamsHandler returns the organization's teams.
func (hb *HandlerBundle) ListTeamsHandler(c *gin.Context) {
	teams, err := hb.Teams.ListByOrg(c.GetString(middleware.CtxOrgID))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list teams", err.Error())
		return
	}
	c.JSON(http.StatusOK, teams)
}

// CreateTeamHandler creates a team within the organization.
func (hb *HandlerBundle) CreateTeamHandler(c *gin.Context) {
	var team models.Team
	if err := c.ShouldBindJSON(&team); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	team.OrganizationID = c.GetString(middleware.CtxOrgID)

	if err := hb.Teams.Create(c.GetString(middleware.CtxUserID), &team); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to create team", err.Error())
		return
	}
	c.JSON(http.StatusCreated, team)
}

// GetTeamHandler returns one team with its members.
func (hb *HandlerBundle) GetTeamHandler(c *gin.Context) {
	team, err := hb.Teams.VerifyTeamInOrg(c.Param("id"), c.GetString(middleware.CtxOrgID))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "unknown team", err.Error())
		return
	}
	members, err := hb.Teams.Members(team.ID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list members", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"team": team, "members": members})
}

// UpdateTeamHandler renames or describes a team.
func (hb *HandlerBundle) UpdateTeamHandler(c *gin.Context) {
	team, err := hb.Teams.VerifyTeamInOrg(c.Param("id"), c.GetString(middleware.CtxOrgID))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "unknown team", err.Error())
		return
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if req.Name != "" {
		team.Name = req.Name
	}
	team.Description = req.Description

	if err := hb.Teams.Update(team); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update team", err.Error())
		return
	}
	c.JSON(http.StatusOK, team)
}

// DeactivateTeamHandler soft-deletes a team.
func (hb *HandlerBundle) DeactivateTeamHandler(c *gin.Context) {
	team, err := hb.Teams.VerifyTeamInOrg(c.Param("id"), c.GetString(middleware.CtxOrgID))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "unknown team", err.Error())
		return
	}
	if err := hb.Teams.Deactivate(team.ID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to deactivate team", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deactivated"})
}

// AddTeamMemberHandler adds an organization user to a team.
func (hb *HandlerBundle) AddTeamMemberHandler(c *gin.Context) {
	team, err := hb.Teams.VerifyTeamInOrg(c.Param("id"), c.GetString(middleware.CtxOrgID))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "unknown team", err.Error())
		return
	}

	var req struct {
		UserID string `json:"user_id" binding:"required"`
		Role   string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	// The member must belong to the same organization.
	member, err := hb.Users.GetUserByID(req.UserID)
	if err != nil || member.OrganizationID != team.OrganizationID {
		utils.JSONError(c, http.StatusBadRequest, "user not in this organization", "")
		return
	}

	if err := hb.Teams.AddMember(c.GetString(middleware.CtxUserID), team.ID, req.UserID, req.Role); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to add member", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "added"})
}

// UpdateTeamMemberHandler changes a membership's role.
func (hb *HandlerBundle) UpdateTeamMemberHandler(c *gin.Context) {
	team, err := hb.Teams.VerifyTeamInOrg(c.Param("id"), c.GetString(middleware.CtxOrgID))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "unknown team", err.Error())
		return
	}

	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := hb.Teams.UpdateMemberRole(team.ID, c.Param("userId"), req.Role); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to update member", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// RemoveTeamMemberHandler deactivates a membership.
func (hb *HandlerBundle) RemoveTeamMemberHandler(c *gin.Context) {
	team, err := hb.Teams.VerifyTeamInOrg(c.Param("id"), c.GetString(middleware.CtxOrgID))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "unknown team", err.Error())
		return
	}
	if err := hb.Teams.RemoveMember(team.ID, c.Param("userId")); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to remove member", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}
