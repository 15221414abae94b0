// File: bcal/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bcal/config"
	"bcal/cron"
	"bcal/database"
	auditRepoPkg "bcal/database/repository/audit"
	availabilityRepoPkg "bcal/database/repository/availability"
	bookingRepoPkg "bcal/database/repository/booking"
	orgRepoPkg "bcal/database/repository/organization"
	teamRepoPkg "bcal/database/repository/team"
	userRepoPkg "bcal/database/repository/user"
	"bcal/handlers"
	"bcal/routes"
	"bcal/services/audit"
	"bcal/services/availability"
	"bcal/services/billing"
	"bcal/services/booking"
	"bcal/services/calendar"
	"bcal/services/licensing"
	"bcal/services/notification"
	"bcal/services/organization"
	"bcal/services/scheduling"
	"bcal/services/tasks"
	"bcal/services/team"
	"bcal/services/usage"
	"bcal/services/user"
	"bcal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	utils.FirebaseInit()

	cloudinaryClient, err := utils.Cloudinary()
	if err != nil {
		// Logo uploads stay disabled; everything else runs.
		logger.Sugar().Warnf("main: cloudinary unavailable: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	orgRepo := orgRepoPkg.NewMongoOrgRepo()
	teamRepo := teamRepoPkg.NewMongoTeamRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	availabilityRepo := availabilityRepoPkg.NewMongoAvailabilityRepo()
	auditRepo := auditRepoPkg.NewMongoAuditRepo()

	// services.
	auditRecorder := &audit.Recorder{Repo: auditRepo}

	assignmentEngine := &scheduling.Engine{
		Members: teamRepo,
		Windows: availabilityRepo,
		Load:    bookingRepo,
		Agents:  userRepo,
		Policy:  scheduling.PolicyFromConfig(),
	}
	aggregator := &scheduling.Aggregator{
		Members:  teamRepo,
		Windows:  availabilityRepo,
		Agents:   userRepo,
		Bookings: bookingRepo,
		Cache:    utils.GetCacheClient(),
	}

	authProvider, err := user.NewAuthProvider()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize auth provider: %v", err)
	}
	userService := &user.DefaultUserService{
		Repo:      userRepo,
		Auth:      authProvider,
		AuthCache: utils.GetAuthCacheClient(),
	}

	usageTracker := &usage.Tracker{
		Orgs: orgRepo,
		Counts: &usage.RepoCounters{
			Users:    userRepo,
			Teams:    teamRepo,
			Bookings: bookingRepo,
		},
	}

	teamService := &team.DefaultTeamService{
		Repo:   teamRepo,
		Limits: usageTracker,
		Audit:  auditRecorder,
	}

	availabilityService := &availability.DefaultAvailabilityService{
		Repo:     availabilityRepo,
		Bookings: bookingRepo,
	}

	notificationService, err := notification.NewDefaultNotificationService(userService)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	bookingService := &booking.DefaultBookingService{
		Repo:      bookingRepo,
		Users:     userRepo,
		Assign:    assignmentEngine,
		Calendar:  calendar.NewService(config.AppConfig.BaseDomain),
		Audit:     auditRecorder,
		Reminders: tasks.NewScheduler(),
		Notify:    notificationService,
		Cache:     utils.GetCacheClient(),
	}

	orgService := &organization.DefaultOrganizationService{
		Repo:       orgRepo,
		Owners:     userRepo,
		Audit:      auditRecorder,
		Cloudinary: cloudinaryClient,
	}

	billingService := &billing.DefaultBillingService{Orgs: orgRepo}

	cron.InitReminderWorker(notificationService, bookingService)
	if err := bookingService.ScheduleUpcomingReminders(24 * time.Hour); err != nil {
		logger.Sugar().Warnf("main: failed to reschedule reminders: %v", err)
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo: userRepo,
		OrgRepo:  orgRepo,

		Users:        userService,
		Teams:        teamService,
		Availability: availabilityService,
		Bookings:     bookingService,
		Orgs:         orgService,
		Billing:      billingService,
		Aggregator:   aggregator,
		Usage:        usageTracker,
		Audit:        auditRecorder,
		Licenses:     licensing.NewClient(),

		AuthCache: utils.GetAuthCacheClient(),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(
		utils.GetCacheClient(),
		utils.GetAuthCacheClient(),
		database.MongoClient,
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
