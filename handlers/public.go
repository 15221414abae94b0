package handlers

import (
	"errors"
	"net/http"
	"time"

	"bcal/middleware"
	"bcal/services/booking"
	"bcal/services/usage"
	"bcal/utils"

	"github.com/gin-gonic/gin"
)

// TeamAvailabilityHandler is the public booking-page listing: every bookable
// slot for the team on the requested day, attributed to an agent.
func (hb *HandlerBundle) TeamAvailabilityHandler(c *gin.Context) {
	day, ok := parseDay(c)
	if !ok {
		return
	}
	orgID := c.GetString(middleware.CtxOrgID)

	team, err := hb.Teams.VerifyTeamInOrg(c.Param("id"), orgID)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "unknown team", err.Error())
		return
	}

	slots, err := hb.Aggregator.TeamAvailability(team.ID, day)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to aggregate availability", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"team_id": team.ID,
		"date":    day.Format("2006-01-02"),
		"slots":   slots,
	})
}

// PublicTeamsHandler lists the tenant's active teams for the booking page.
func (hb *HandlerBundle) PublicTeamsHandler(c *gin.Context) {
	teams, err := hb.Teams.ListByOrg(c.GetString(middleware.CtxOrgID))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list teams", err.Error())
		return
	}
	out := make([]gin.H, 0, len(teams))
	for _, t := range teams {
		if !t.IsActive {
			continue
		}
		out = append(out, gin.H{"id": t.ID, "name": t.Name, "description": t.Description})
	}
	c.JSON(http.StatusOK, out)
}

// PublicUserSlotsHandler lists one agent's slots for a day, booked ones
// flagged. This is the single-user counterpart of the team listing.
func (hb *HandlerBundle) PublicUserSlotsHandler(c *gin.Context) {
	day, ok := parseDay(c)
	if !ok {
		return
	}

	agent, err := hb.Users.GetUserByID(c.Param("id"))
	if err != nil || agent.OrganizationID != c.GetString(middleware.CtxOrgID) || !agent.IsActive {
		utils.JSONError(c, http.StatusNotFound, "unknown user", "")
		return
	}

	slots, err := hb.Availability.UserSlots(agent.ID, day)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to build slots", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user_id": agent.ID,
		"date":    day.Format("2006-01-02"),
		"slots":   slots,
	})
}

// publicBookRequest is the wire form of a public booking submission.
type publicBookRequest struct {
	Start            time.Time `json:"start" binding:"required"`
	End              time.Time `json:"end" binding:"required"`
	Title            string    `json:"title" binding:"required"`
	Description      string    `json:"description"`
	MeetingType      string    `json:"meeting_type"`
	GuestName        string    `json:"guest_name" binding:"required"`
	GuestEmail       string    `json:"guest_email" binding:"required,email"`
	PreferredAgentID string    `json:"preferred_agent_id"`
}

// AssignAndBookHandler assigns the best available agent on the team and
// books the slot. A fully booked team answers 400 with no_agent_available,
// which the booking page treats as "pick another time".
func (hb *HandlerBundle) AssignAndBookHandler(c *gin.Context) {
	var req publicBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	orgID := c.GetString(middleware.CtxOrgID)

	team, err := hb.Teams.VerifyTeamInOrg(c.Param("id"), orgID)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "unknown team", err.Error())
		return
	}

	if hb.Usage != nil {
		if err := hb.Usage.CheckBookingQuota(orgID); err != nil {
			var limitErr *usage.LimitError
			if errors.As(err, &limitErr) {
				utils.JSONError(c, http.StatusPaymentRequired, "plan limit reached", limitErr.Error())
				return
			}
			utils.JSONError(c, http.StatusInternalServerError, "failed to check plan limits", err.Error())
			return
		}
	}

	result, err := hb.Bookings.AssignAndBook(c.Request.Context(), booking.AssignAndBookRequest{
		OrganizationID:   orgID,
		TeamID:           team.ID,
		Start:            req.Start,
		End:              req.End,
		Title:            req.Title,
		Description:      req.Description,
		MeetingType:      req.MeetingType,
		GuestName:        req.GuestName,
		GuestEmail:       req.GuestEmail,
		PreferredAgentID: req.PreferredAgentID,
	})
	if err != nil {
		if errors.Is(err, booking.ErrNoAgentAvailable) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no_agent_available"})
			return
		}
		if errors.Is(err, booking.ErrInvalidInterval) {
			utils.JSONError(c, http.StatusBadRequest, "invalid interval", err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "booking failed", err.Error())
		return
	}
	c.JSON(http.StatusCreated, result)
}

// PublicBrandingHandler exposes the tenant's white-label settings to the
// booking page.
func (hb *HandlerBundle) PublicBrandingHandler(c *gin.Context) {
	org, err := hb.Orgs.Get(c.GetString(middleware.CtxOrgID))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "unknown organization", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"name":     org.Name,
		"branding": org.Branding,
	})
}
