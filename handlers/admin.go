package handlers

import (
	"net/http"
	"time"

	"bcal/middleware"
	"bcal/models"
	"bcal/utils"

	"github.com/gin-gonic/gin"
)

// AdminStatsHandler returns the organization's dashboard counters: seats and
// teams in use, bookings this month, and the plan they count against.
func (hb *HandlerBundle) AdminStatsHandler(c *gin.Context) {
	orgID := c.GetString(middleware.CtxOrgID)

	org, err := hb.Orgs.Get(orgID)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "unknown organization", err.Error())
		return
	}

	users, err := hb.Usage.Counts.CountUsersByOrg(orgID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to count users", err.Error())
		return
	}
	teams, err := hb.Usage.Counts.CountTeamsByOrg(orgID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to count teams", err.Error())
		return
	}
	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	bookings, err := hb.Usage.Counts.CountBookingsByOrgSince(orgID, monthStart)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to count bookings", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"plan_tier":           org.PlanTier,
		"subscription_status": org.SubscriptionStatus,
		"users":               gin.H{"used": users, "max": org.MaxUsers},
		"teams":               gin.H{"used": teams, "max": org.MaxTeams},
		"bookings_this_month": bookings,
	})
}

// AdminListUsersHandler returns every user in the organization.
func (hb *HandlerBundle) AdminListUsersHandler(c *gin.Context) {
	users, err := hb.Users.ListByOrg(c.GetString(middleware.CtxOrgID))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list users", err.Error())
		return
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	c.JSON(http.StatusOK, users)
}

// AdminDeactivateUserHandler soft-deletes a user in the organization.
func (hb *HandlerBundle) AdminDeactivateUserHandler(c *gin.Context) {
	target, err := hb.Users.GetUserByID(c.Param("id"))
	if err != nil || target.OrganizationID != c.GetString(middleware.CtxOrgID) {
		utils.JSONError(c, http.StatusNotFound, "unknown user", "")
		return
	}
	if err := hb.Users.Deactivate(target.ID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to deactivate user", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deactivated"})
}

// AdminActivateUserHandler re-enables a deactivated user.
func (hb *HandlerBundle) AdminActivateUserHandler(c *gin.Context) {
	target, err := hb.Users.GetUserByID(c.Param("id"))
	if err != nil || target.OrganizationID != c.GetString(middleware.CtxOrgID) {
		utils.JSONError(c, http.StatusNotFound, "unknown user", "")
		return
	}
	target.IsActive = true
	if err := hb.Users.Update(target); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to activate user", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "activated"})
}

// AdminOverrideBookingStatusHandler forces a booking into a given status,
// bypassing the normal transition rules.
func (hb *HandlerBundle) AdminOverrideBookingStatusHandler(c *gin.Context) {
	b, err := hb.Bookings.Get(c.Param("id"))
	if err != nil || b.OrganizationID != c.GetString(middleware.CtxOrgID) {
		utils.JSONError(c, http.StatusNotFound, "booking not found", "")
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := hb.Bookings.OverrideStatus(b.ID, models.BookingStatus(req.Status)); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to override status", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}

// AdminAuditLogHandler returns the organization's newest audit entries.
func (hb *HandlerBundle) AdminAuditLogHandler(c *gin.Context) {
	entries, err := hb.Audit.List(c.GetString(middleware.CtxOrgID), limitParam(c))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list audit log", err.Error())
		return
	}
	c.JSON(http.StatusOK, entries)
}

// HealthHandler reports per-dependency health.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
