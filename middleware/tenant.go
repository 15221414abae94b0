package middleware

import (
	"net/http"
	"strings"

	"bcal/config"
	orgRepo "bcal/database/repository/organization"

	"github.com/gin-gonic/gin"
)

// CtxOrg holds the resolved organization record.
const CtxOrg = "org"

// TenantMiddleware resolves the request's organization from the subdomain,
// e.g. acme.bcal.io -> slug "acme". An X-Organization header overrides the
// host for API clients and local development.
func TenantMiddleware(orgs orgRepo.OrganizationRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.GetHeader("X-Organization")
		if slug == "" {
			slug = slugFromHost(c.Request.Host, config.AppConfig.BaseDomain)
		}
		if slug == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Unable to resolve organization"})
			return
		}

		org, err := orgs.GetBySlug(slug)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve organization"})
			return
		}
		if org == nil || !org.IsActive {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Unknown organization"})
			return
		}

		c.Set(CtxOrg, org)
		c.Set(CtxOrgID, org.ID)
		c.Next()
	}
}

// slugFromHost extracts the tenant slug from a host like acme.bcal.io:8080.
func slugFromHost(host, baseDomain string) string {
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	if baseDomain == "" || host == baseDomain {
		return ""
	}
	if !strings.HasSuffix(host, "."+baseDomain) {
		return ""
	}
	sub := strings.TrimSuffix(host, "."+baseDomain)
	// Nested subdomains are not tenants.
	if strings.Contains(sub, ".") {
		return ""
	}
	return sub
}
