package routes

import (
	"time"

	"bcal/handlers"
	"bcal/middleware"
	"bcal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterPlatformRoutes registers the endpoints served on the bare API host,
// before any tenant is resolved.
func RegisterPlatformRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.POST("/organizations/register", hb.RegisterOrganizationHandler)
		api.POST("/billing/webhook", hb.StripeWebhookHandler)
	}
}

// RegisterPublicRoutes registers the unauthenticated booking surface guests
// hit from a tenant's scheduling page.
func RegisterPublicRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/public")
	{
		api.Use(middleware.TenantMiddleware(hb.OrgRepo))
		api.GET("/branding", hb.PublicBrandingHandler)
		api.GET("/teams", hb.PublicTeamsHandler)
		api.GET("/teams/:id/availability", hb.TeamAvailabilityHandler)
		api.POST("/teams/:id/book", hb.AssignAndBookHandler)
		api.GET("/users/:id/slots", hb.PublicUserSlotsHandler)
	}
}

// RegisterAuthRoutes registers session endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.Use(middleware.TenantMiddleware(hb.OrgRepo))
		api.POST("/signup", hb.SignUpHandler)
		api.POST("/signin", hb.SignInHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo, hb.AuthCache))
		api.POST("/signout", hb.SignOutHandler)
		api.GET("/me", hb.MeHandler)
		api.PUT("/me/fcm-token", hb.UpdateFCMTokenHandler)
	}
}

// RegisterAvailabilityRoutes registers the signed-in agent's window and slot
// endpoints.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/availability")
	{
		api.Use(middleware.TenantMiddleware(hb.OrgRepo))
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo, hb.AuthCache))
		api.GET("", hb.ListAvailabilityHandler)
		api.GET("/slots", hb.MySlotsHandler)
		api.POST("", hb.CreateAvailabilityHandler)
		api.PUT("/:id", hb.UpdateAvailabilityHandler)
		api.DELETE("/:id", hb.DeleteAvailabilityHandler)
	}
}

// RegisterBookingRoutes registers endpoints for managing one's bookings.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.TenantMiddleware(hb.OrgRepo))
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo, hb.AuthCache))
		api.GET("", hb.MyBookingsHandler)
		api.GET("/guest", hb.MyGuestBookingsHandler)
		api.GET("/:id", hb.GetBookingHandler)
		api.POST("", hb.BookWithHostHandler)
		api.PUT("/:id", hb.UpdateBookingHandler)
		api.DELETE("/:id", hb.CancelBookingHandler)
	}
}

// RegisterAdminRoutes registers organization administration endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.TenantMiddleware(hb.OrgRepo))
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo, hb.AuthCache))
		api.Use(middleware.AdminOnly(hb.UserRepo))

		api.GET("/teams", hb.ListTeamsHandler)
		api.POST("/teams", hb.CreateTeamHandler)
		api.GET("/teams/:id", hb.GetTeamHandler)
		api.PUT("/teams/:id", hb.UpdateTeamHandler)
		api.DELETE("/teams/:id", hb.DeactivateTeamHandler)
		api.POST("/teams/:id/members", hb.AddTeamMemberHandler)
		api.PUT("/teams/:id/members/:userId", hb.UpdateTeamMemberHandler)
		api.DELETE("/teams/:id/members/:userId", hb.RemoveTeamMemberHandler)

		api.GET("/organization", hb.GetOrganizationHandler)
		api.PUT("/organization", hb.UpdateOrganizationHandler)
		api.PUT("/organization/branding", hb.UpdateBrandingHandler)
		api.POST("/organization/logo", hb.UploadLogoHandler)
		api.POST("/organization/subscribe", hb.SubscribeHandler)
		api.POST("/organization/billing-portal", hb.BillingPortalHandler)
		api.GET("/organization/license", hb.LicenseStatusHandler)

		api.GET("/stats", hb.AdminStatsHandler)
		api.GET("/users", hb.AdminListUsersHandler)
		api.PUT("/users/:id/activate", hb.AdminActivateUserHandler)
		api.DELETE("/users/:id", hb.AdminDeactivateUserHandler)
		api.PUT("/bookings/:id/status", hb.AdminOverrideBookingStatusHandler)
		api.GET("/audit", hb.AdminAuditLogHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Organization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware())

	RegisterPlatformRoutes(r, hb)
	RegisterPublicRoutes(r, hb)
	RegisterAuthRoutes(r, hb)
	RegisterAvailabilityRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
