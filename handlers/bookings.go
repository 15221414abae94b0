package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"bcal/middleware"
	"bcal/services/booking"
	"bcal/utils"

	"github.com/gin-gonic/gin"
)

func limitParam(c *gin.Context) int64 {
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	if err != nil || limit < 1 || limit > 500 {
		return 50
	}
	return limit
}

// MyBookingsHandler lists bookings the caller hosts.
func (hb *HandlerBundle) MyBookingsHandler(c *gin.Context) {
	bookings, err := hb.Bookings.ListForHost(c.GetString(middleware.CtxUserID), limitParam(c))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// MyGuestBookingsHandler lists bookings where the caller is the guest.
func (hb *HandlerBundle) MyGuestBookingsHandler(c *gin.Context) {
	bookings, err := hb.Bookings.ListForGuest(c.GetString(middleware.CtxUserID), limitParam(c))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBookingHandler returns one booking the caller participates in.
func (hb *HandlerBundle) GetBookingHandler(c *gin.Context) {
	b, err := hb.Bookings.Get(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "booking not found", err.Error())
		return
	}
	userID := c.GetString(middleware.CtxUserID)
	if b.HostID != userID && b.GuestID != userID {
		utils.JSONError(c, http.StatusForbidden, "not a participant of this booking", "")
		return
	}
	c.JSON(http.StatusOK, b)
}

// BookWithHostHandler books a slot directly against the caller as host,
// used for manually entered meetings.
func (hb *HandlerBundle) BookWithHostHandler(c *gin.Context) {
	var req publicBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	result, err := hb.Bookings.BookWithHost(c.Request.Context(), c.GetString(middleware.CtxUserID), booking.AssignAndBookRequest{
		OrganizationID: c.GetString(middleware.CtxOrgID),
		Start:          req.Start,
		End:            req.End,
		Title:          req.Title,
		Description:    req.Description,
		MeetingType:    req.MeetingType,
		GuestName:      req.GuestName,
		GuestEmail:     req.GuestEmail,
	})
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "booking failed", err.Error())
		return
	}
	c.JSON(http.StatusCreated, result)
}

// UpdateBookingHandler lets the host change a booking's title or description.
func (hb *HandlerBundle) UpdateBookingHandler(c *gin.Context) {
	b, err := hb.Bookings.Get(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "booking not found", err.Error())
		return
	}
	if b.HostID != c.GetString(middleware.CtxUserID) {
		utils.JSONError(c, http.StatusForbidden, "only the host may update a booking", "")
		return
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	updated, err := hb.Bookings.Update(b.ID, req.Title, req.Description)
	if err != nil {
		if errors.Is(err, booking.ErrAlreadyTerminal) {
			utils.JSONError(c, http.StatusConflict, "booking already finished", err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to update booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, updated)
}

// CancelBookingHandler cancels a booking the caller participates in.
func (hb *HandlerBundle) CancelBookingHandler(c *gin.Context) {
	b, err := hb.Bookings.Get(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "booking not found", err.Error())
		return
	}
	userID := c.GetString(middleware.CtxUserID)
	if b.HostID != userID && b.GuestID != userID {
		utils.JSONError(c, http.StatusForbidden, "not a participant of this booking", "")
		return
	}

	if err := hb.Bookings.Cancel(b.ID); err != nil {
		if errors.Is(err, booking.ErrAlreadyTerminal) {
			utils.JSONError(c, http.StatusConflict, "booking already finished", err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to cancel booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}
