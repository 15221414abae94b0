package handlers

import (
	"errors"
	"net/http"
	"strings"

	"bcal/middleware"
	"bcal/models"
	"bcal/services/usage"
	"bcal/services/user"
	"bcal/utils"

	"github.com/gin-gonic/gin"
)

// SignUpHandler registers a user under the request's organization.
func (hb *HandlerBundle) SignUpHandler(c *gin.Context) {
	var req user.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	req.OrganizationID = c.GetString(middleware.CtxOrgID)

	if hb.Usage != nil {
		if err := hb.Usage.CheckUserLimit(req.OrganizationID); err != nil {
			var limitErr *usage.LimitError
			if errors.As(err, &limitErr) {
				utils.JSONError(c, http.StatusPaymentRequired, "plan limit reached", limitErr.Error())
				return
			}
			utils.JSONError(c, http.StatusInternalServerError, "failed to check plan limits", err.Error())
			return
		}
	}

	session, err := hb.Users.SignUp(req)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "sign-up failed", err.Error())
		return
	}
	if hb.Audit != nil {
		hb.Audit.Record(req.OrganizationID, session.User.ID, models.AuditUserCreated, session.User.ID, map[string]string{
			"ip": middleware.ClientIP(c),
		})
	}
	c.JSON(http.StatusCreated, session)
}

// SignInHandler authenticates a user and opens a session.
func (hb *HandlerBundle) SignInHandler(c *gin.Context) {
	var req user.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	req.OrganizationID = c.GetString(middleware.CtxOrgID)

	session, err := hb.Users.SignIn(req)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			utils.JSONError(c, http.StatusUnauthorized, "invalid credentials", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "sign-in failed", err.Error())
		return
	}
	if hb.Audit != nil {
		hb.Audit.Record(req.OrganizationID, session.User.ID, models.AuditUserSignIn, session.User.ID, map[string]string{
			"ip": middleware.ClientIP(c),
		})
	}
	c.JSON(http.StatusOK, session)
}

// SignOutHandler ends the current session.
func (hb *HandlerBundle) SignOutHandler(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if err := hb.Users.SignOut(token); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "sign-out failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "signed out"})
}

// MeHandler returns the session user.
func (hb *HandlerBundle) MeHandler(c *gin.Context) {
	u, err := hb.Users.GetUserByID(c.GetString(middleware.CtxUserID))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "user not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateFCMTokenHandler stores the caller's device push token.
func (hb *HandlerBundle) UpdateFCMTokenHandler(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if err := hb.Users.UpdateFCMToken(c.GetString(middleware.CtxUserID), req.Token); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update token", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
