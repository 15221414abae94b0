// File: bcal/handlers/bundle.go
package handlers

import (
	orgRepoPkg "bcal/database/repository/organization"
	userRepoPkg "bcal/database/repository/user"
	"bcal/services/audit"
	"bcal/services/availability"
	"bcal/services/billing"
	"bcal/services/booking"
	"bcal/services/licensing"
	"bcal/services/organization"
	"bcal/services/scheduling"
	"bcal/services/team"
	"bcal/services/usage"
	"bcal/services/user"

	"github.com/go-redis/redis/v8"
)

// HandlerBundle groups the services every endpoint handler needs. Routes
// receive one bundle and hang their handlers off it.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository
	OrgRepo  orgRepoPkg.OrganizationRepository

	Users        user.UserService
	Teams        team.TeamService
	Availability availability.AvailabilityService
	Bookings     booking.BookingService
	Orgs         organization.OrganizationService
	Billing      billing.BillingService
	Aggregator   *scheduling.Aggregator
	Usage        *usage.Tracker
	Audit        *audit.Recorder
	Licenses     *licensing.Client

	AuthCache *redis.Client
}
