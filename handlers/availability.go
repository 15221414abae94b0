package handlers

import (
	"errors"
	"net/http"
	"time"

	"bcal/middleware"
	"bcal/models"
	"bcal/services/availability"
	"bcal/utils"

	"github.com/gin-gonic/gin"
)

// parseDay reads a required ?date=YYYY-MM-DD query parameter.
func parseDay(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing date", "expected ?date=YYYY-MM-DD")
		return time.Time{}, false
	}
	day, err := time.Parse("2006-01-02", raw)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid date", err.Error())
		return time.Time{}, false
	}
	return day, true
}

// ListAvailabilityHandler returns all of the caller's windows.
func (hb *HandlerBundle) ListAvailabilityHandler(c *gin.Context) {
	windows, err := hb.Availability.ListForUser(c.GetString(middleware.CtxUserID))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list availability", err.Error())
		return
	}
	c.JSON(http.StatusOK, windows)
}

// MySlotsHandler expands the caller's windows for one day. Every slot is
// returned with an availability flag, including booked ones.
func (hb *HandlerBundle) MySlotsHandler(c *gin.Context) {
	day, ok := parseDay(c)
	if !ok {
		return
	}
	slots, err := hb.Availability.UserSlots(c.GetString(middleware.CtxUserID), day)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to build slots", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": day.Format("2006-01-02"), "slots": slots})
}

// CreateAvailabilityHandler inserts a new weekly window for the caller.
func (hb *HandlerBundle) CreateAvailabilityHandler(c *gin.Context) {
	var av models.WeeklyAvailability
	if err := c.ShouldBindJSON(&av); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	av.UserID = c.GetString(middleware.CtxUserID)

	if err := hb.Availability.Create(&av); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, availability.ErrActiveWindowExists) {
			status = http.StatusConflict
		}
		utils.JSONError(c, status, "failed to create availability", err.Error())
		return
	}
	c.JSON(http.StatusCreated, av)
}

// UpdateAvailabilityHandler modifies one of the caller's windows.
func (hb *HandlerBundle) UpdateAvailabilityHandler(c *gin.Context) {
	var av models.WeeklyAvailability
	if err := c.ShouldBindJSON(&av); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	av.ID = c.Param("id")
	av.UserID = c.GetString(middleware.CtxUserID)

	if err := hb.Availability.Update(&av); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, availability.ErrActiveWindowExists) {
			status = http.StatusConflict
		}
		utils.JSONError(c, status, "failed to update availability", err.Error())
		return
	}
	c.JSON(http.StatusOK, av)
}

// DeleteAvailabilityHandler removes one of the caller's windows.
func (hb *HandlerBundle) DeleteAvailabilityHandler(c *gin.Context) {
	if err := hb.Availability.Delete(c.GetString(middleware.CtxUserID), c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to delete availability", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
