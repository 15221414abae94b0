package usage

import (
	"fmt"
	"time"

	"bcal/models"
)

// monthlyBookingQuota maps plan tiers to bookings per calendar month. Zero
// means unmetered.
var monthlyBookingQuota = map[string]int64{
	"trial":    50,
	"starter":  500,
	"business": 0,
}

// LimitError reports which plan limit was hit.
type LimitError struct {
	Resource string
	Limit    int64
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("%s limit of %d reached for this plan", e.Resource, e.Limit)
}

// OrgReader resolves the tenant whose limits are being checked.
type OrgReader interface {
	GetByID(id string) (*models.Organization, error)
}

// Counters are the usage counts the tracker needs.
type Counters interface {
	CountUsersByOrg(orgID string) (int64, error)
	CountTeamsByOrg(orgID string) (int64, error)
	CountBookingsByOrgSince(orgID string, since time.Time) (int64, error)
}

// Tracker enforces per-plan seat, team and booking limits.
type Tracker struct {
	Orgs   OrgReader
	Counts Counters
}

// CheckUserLimit returns a LimitError when the organization has no seats left.
func (t *Tracker) CheckUserLimit(orgID string) error {
	org, err := t.Orgs.GetByID(orgID)
	if err != nil {
		return err
	}
	if org.MaxUsers <= 0 {
		return nil
	}
	n, err := t.Counts.CountUsersByOrg(orgID)
	if err != nil {
		return err
	}
	if n >= int64(org.MaxUsers) {
		return &LimitError{Resource: "user", Limit: int64(org.MaxUsers)}
	}
	return nil
}

// CheckTeamLimit returns a LimitError when the organization cannot add teams.
func (t *Tracker) CheckTeamLimit(orgID string) error {
	org, err := t.Orgs.GetByID(orgID)
	if err != nil {
		return err
	}
	if org.MaxTeams <= 0 {
		return nil
	}
	n, err := t.Counts.CountTeamsByOrg(orgID)
	if err != nil {
		return err
	}
	if n >= int64(org.MaxTeams) {
		return &LimitError{Resource: "team", Limit: int64(org.MaxTeams)}
	}
	return nil
}

// CheckBookingQuota returns a LimitError when the organization has exhausted
// its monthly booking quota.
func (t *Tracker) CheckBookingQuota(orgID string) error {
	org, err := t.Orgs.GetByID(orgID)
	if err != nil {
		return err
	}
	quota, ok := monthlyBookingQuota[org.PlanTier]
	if !ok || quota <= 0 {
		return nil
	}
	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	n, err := t.Counts.CountBookingsByOrgSince(orgID, monthStart)
	if err != nil {
		return err
	}
	if n >= quota {
		return &LimitError{Resource: "booking", Limit: quota}
	}
	return nil
}
