package usage

import (
	"time"

	bookingRepo "bcal/database/repository/booking"
	teamRepo "bcal/database/repository/team"
	userRepo "bcal/database/repository/user"
)

// RepoCounters adapts the Mongo repositories to the Counters interface.
type RepoCounters struct {
	Users    userRepo.UserRepository
	Teams    teamRepo.TeamRepository
	Bookings bookingRepo.BookingRepository
}

func (c *RepoCounters) CountUsersByOrg(orgID string) (int64, error) {
	return c.Users.CountByOrg(orgID)
}

func (c *RepoCounters) CountTeamsByOrg(orgID string) (int64, error) {
	return c.Teams.CountByOrg(orgID)
}

func (c *RepoCounters) CountBookingsByOrgSince(orgID string, since time.Time) (int64, error) {
	return c.Bookings.CountByOrgSince(orgID, since)
}
