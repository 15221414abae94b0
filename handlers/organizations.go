package handlers

import (
	"net/http"

	"bcal/middleware"
	"bcal/models"
	"bcal/services/organization"
	"bcal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// RegisterOrganizationHandler creates a new tenant with its owner. This is
// the one endpoint served outside tenant resolution.
func (hb *HandlerBundle) RegisterOrganizationHandler(c *gin.Context) {
	var req organization.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.OwnerPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to process password", err.Error())
		return
	}

	org, owner, err := hb.Orgs.Register(req, string(hash))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "registration failed", err.Error())
		return
	}

	owner.PasswordHash = ""
	c.JSON(http.StatusCreated, gin.H{"organization": org, "owner": owner})
}

// GetOrganizationHandler returns the caller's organization.
func (hb *HandlerBundle) GetOrganizationHandler(c *gin.Context) {
	org, err := hb.Orgs.Get(c.GetString(middleware.CtxOrgID))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "unknown organization", err.Error())
		return
	}
	c.JSON(http.StatusOK, org)
}

// UpdateOrganizationHandler renames the caller's organization.
func (hb *HandlerBundle) UpdateOrganizationHandler(c *gin.Context) {
	org, err := hb.Orgs.Get(c.GetString(middleware.CtxOrgID))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "unknown organization", err.Error())
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	org.Name = req.Name

	if err := hb.Orgs.Update(c.GetString(middleware.CtxUserID), org); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update organization", err.Error())
		return
	}
	c.JSON(http.StatusOK, org)
}

// UpdateBrandingHandler replaces the organization's white-label settings.
func (hb *HandlerBundle) UpdateBrandingHandler(c *gin.Context) {
	var branding models.Branding
	if err := c.ShouldBindJSON(&branding); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	org, err := hb.Orgs.UpdateBranding(c.GetString(middleware.CtxUserID), c.GetString(middleware.CtxOrgID), branding)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update branding", err.Error())
		return
	}
	c.JSON(http.StatusOK, org.Branding)
}

// UploadLogoHandler stores a tenant logo and returns its delivery URL.
func (hb *HandlerBundle) UploadLogoHandler(c *gin.Context) {
	fileHeader, err := c.FormFile("logo")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "missing logo file", err.Error())
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "unreadable logo file", err.Error())
		return
	}
	defer file.Close()

	url, err := hb.Orgs.UploadLogo(c.Request.Context(), c.GetString(middleware.CtxOrgID), file, fileHeader.Filename)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "logo upload failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"logo_url": url})
}

// BillingPortalHandler opens a Stripe billing portal session and returns its
// URL for the admin UI to redirect to.
func (hb *HandlerBundle) BillingPortalHandler(c *gin.Context) {
	org, err := hb.Orgs.Get(c.GetString(middleware.CtxOrgID))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "unknown organization", err.Error())
		return
	}

	var req struct {
		ReturnURL string `json:"return_url" binding:"required,url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	url, err := hb.Billing.PortalURL(org, req.ReturnURL)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to open billing portal", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// LicenseStatusHandler validates the organization's license key against the
// licensing server.
func (hb *HandlerBundle) LicenseStatusHandler(c *gin.Context) {
	org, err := hb.Orgs.Get(c.GetString(middleware.CtxOrgID))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "unknown organization", err.Error())
		return
	}

	verdict, err := hb.Licenses.Validate(c.Request.Context(), org)
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "license validation failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, verdict)
}

// SubscribeHandler starts the organization's paid subscription.
func (hb *HandlerBundle) SubscribeHandler(c *gin.Context) {
	org, err := hb.Orgs.Get(c.GetString(middleware.CtxOrgID))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "unknown organization", err.Error())
		return
	}

	actor, err := hb.Users.GetUserByID(c.GetString(middleware.CtxUserID))
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "unknown user", err.Error())
		return
	}

	if err := hb.Billing.EnsureCustomer(org, actor.Email); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "billing setup failed", err.Error())
		return
	}
	if err := hb.Billing.Subscribe(org); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "subscription failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscription_status": org.SubscriptionStatus})
}
