package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "bcal/database/repository/booking"
	"bcal/models"
	"bcal/services/scheduling"
	"bcal/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// assignRetries bounds how often a lost insert race triggers reassignment.
const assignRetries = 3

// Assigner is the agent-selection step of the booking flow.
type Assigner interface {
	AssignAgent(req scheduling.AssignRequest) (*models.User, error)
}

// GuestDirectory resolves or creates guest accounts within an organization.
type GuestDirectory interface {
	GetByEmail(orgID, email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	Create(user *models.User) error
}

// InviteBuilder renders a calendar invite for a persisted booking.
type InviteBuilder interface {
	BuildInvite(b models.Booking, host, guest models.User) (string, error)
}

// Auditor records state-changing actions.
type Auditor interface {
	Record(orgID, actorID, action, targetID string, detail map[string]string)
}

// ReminderScheduler enqueues a booking reminder for later delivery.
type ReminderScheduler interface {
	ScheduleBookingReminder(b models.Booking) error
}

// Notifier pushes booking lifecycle notifications to the host.
type Notifier interface {
	NotifyBookingConfirmed(ctx context.Context, b models.Booking) error
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Repo      bookingRepo.BookingRepository
	Users     GuestDirectory
	Assign    Assigner
	Calendar  InviteBuilder
	Audit     Auditor
	Reminders ReminderScheduler
	Notify    Notifier
	// Cache is optional; when set, a committed booking drops the team's
	// cached slot listing for that day.
	Cache *redis.Client
}

// AssignAndBook runs the assignment engine and persists the booking against
// the chosen agent. The conflict condition is re-validated inside the insert
// transaction; losing that race triggers reassignment, since the engine will
// no longer see the losing agent as free.
func (s *DefaultBookingService) AssignAndBook(ctx context.Context, req AssignAndBookRequest) (*BookingResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < assignRetries; attempt++ {
		agent, err := s.Assign.AssignAgent(scheduling.AssignRequest{
			TeamID:           req.TeamID,
			Start:            req.Start,
			End:              req.End,
			MeetingType:      req.MeetingType,
			PreferredAgentID: req.PreferredAgentID,
		})
		if err != nil {
			return nil, err
		}
		if agent == nil {
			return nil, ErrNoAgentAvailable
		}

		result, err := s.book(ctx, *agent, req)
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			utils.GetLogger().Info("assignment race lost, retrying",
				zap.String("team_id", req.TeamID),
				zap.String("agent_id", agent.ID),
				zap.Int("attempt", attempt+1),
			)
			continue
		}
		if err == nil {
			s.invalidateTeamDay(ctx, req.TeamID, req.Start)
		}
		return result, err
	}
	return nil, ErrNoAgentAvailable
}

// invalidateTeamDay drops the team's cached slot listing for the booked day,
// so the taken slot disappears from the public listing before the TTL expires.
func (s *DefaultBookingService) invalidateTeamDay(ctx context.Context, teamID string, day time.Time) {
	if s.Cache == nil || teamID == "" {
		return
	}
	key := scheduling.TeamDayCacheKey(teamID, day)
	if err := s.Cache.Del(ctx, key).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate team availability cache",
			zap.String("team_id", teamID), zap.Error(err))
	}
}

// BookWithHost books a slot directly against a known host.
func (s *DefaultBookingService) BookWithHost(ctx context.Context, hostID string, req AssignAndBookRequest) (*BookingResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	host, err := s.Users.GetByID(hostID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve host %s: %w", hostID, err)
	}
	return s.book(ctx, *host, req)
}

// book persists the booking and runs the post-commit side effects.
func (s *DefaultBookingService) book(ctx context.Context, host models.User, req AssignAndBookRequest) (*BookingResult, error) {
	guest, err := s.resolveGuest(req)
	if err != nil {
		return nil, err
	}

	b := models.Booking{
		ID:             uuid.New().String(),
		OrganizationID: req.OrganizationID,
		HostID:         host.ID,
		GuestID:        guest.ID,
		Title:          req.Title,
		Description:    req.Description,
		StartTime:      req.Start.UTC(),
		EndTime:        req.End.UTC(),
		Status:         models.BookingConfirmed,
		GuestEmail:     guest.Email,
		GuestName:      guest.FullName,
		MeetingType:    req.MeetingType,
	}

	if err := s.Repo.CreateIfFree(ctx, &b); err != nil {
		return nil, err
	}

	result := &BookingResult{Booking: b, Host: host}
	if s.Calendar != nil {
		invite, err := s.Calendar.BuildInvite(b, host, *guest)
		if err != nil {
			utils.GetLogger().Warn("failed to build calendar invite",
				zap.String("booking_id", b.ID), zap.Error(err))
		} else {
			result.Invite = invite
		}
	}
	if s.Audit != nil {
		s.Audit.Record(b.OrganizationID, guest.ID, models.AuditBookingCreated, b.ID, map[string]string{
			"host_id": host.ID,
			"start":   b.StartTime.Format(time.RFC3339),
			"end":     b.EndTime.Format(time.RFC3339),
		})
	}
	if s.Reminders != nil {
		if err := s.Reminders.ScheduleBookingReminder(b); err != nil {
			utils.GetLogger().Warn("failed to schedule reminder",
				zap.String("booking_id", b.ID), zap.Error(err))
		}
	}
	if s.Notify != nil {
		if err := s.Notify.NotifyBookingConfirmed(ctx, b); err != nil {
			utils.GetLogger().Warn("failed to push booking confirmation",
				zap.String("booking_id", b.ID), zap.Error(err))
		}
	}
	return result, nil
}

// ScheduleUpcomingReminders re-enqueues reminders for blocking bookings that
// start within the window. Run at startup so reminders survive a flushed queue
// database; the per-booking task ID keeps re-enqueues idempotent.
func (s *DefaultBookingService) ScheduleUpcomingReminders(window time.Duration) error {
	if s.Reminders == nil {
		return nil
	}
	now := time.Now().UTC()
	upcoming, err := s.Repo.ListStartingBetween(now, now.Add(window))
	if err != nil {
		return err
	}
	for _, b := range upcoming {
		if err := s.Reminders.ScheduleBookingReminder(b); err != nil {
			utils.GetLogger().Warn("failed to reschedule reminder",
				zap.String("booking_id", b.ID), zap.Error(err))
		}
	}
	return nil
}

// resolveGuest finds the guest by email within the organization or creates a
// lightweight account for them.
func (s *DefaultBookingService) resolveGuest(req AssignAndBookRequest) (*models.User, error) {
	guest, err := s.Users.GetByEmail(req.OrganizationID, req.GuestEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to look up guest: %w", err)
	}
	if guest != nil {
		return guest, nil
	}

	guest = &models.User{
		ID:             uuid.New().String(),
		OrganizationID: req.OrganizationID,
		Email:          req.GuestEmail,
		FullName:       req.GuestName,
		Role:           models.RoleUser,
		IsActive:       true,
	}
	if err := s.Users.Create(guest); err != nil {
		return nil, fmt.Errorf("failed to create guest account: %w", err)
	}
	return guest, nil
}

// Cancel transitions a booking to cancelled.
func (s *DefaultBookingService) Cancel(bookingID string) error {
	b, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return err
	}
	if b.Status == models.BookingCancelled || b.Status == models.BookingCompleted {
		return ErrAlreadyTerminal
	}
	if err := s.Repo.UpdateStatus(bookingID, models.BookingCancelled); err != nil {
		return err
	}
	if s.Audit != nil {
		s.Audit.Record(b.OrganizationID, b.HostID, models.AuditBookingCancelled, b.ID, nil)
	}
	return nil
}

// Update replaces the booking's title and description. An empty title keeps
// the current one. Terminal bookings stay frozen.
func (s *DefaultBookingService) Update(bookingID, title, description string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status == models.BookingCancelled || b.Status == models.BookingCompleted {
		return nil, ErrAlreadyTerminal
	}
	if title == "" {
		title = b.Title
	}
	if err := s.Repo.UpdateDetails(bookingID, title, description); err != nil {
		return nil, err
	}
	b.Title = title
	b.Description = description
	return b, nil
}

// OverrideStatus forces a booking into the given status. Admin-only path, no
// transition validation beyond the status value itself.
func (s *DefaultBookingService) OverrideStatus(bookingID string, status models.BookingStatus) error {
	switch status {
	case models.BookingPending, models.BookingConfirmed, models.BookingCancelled, models.BookingCompleted:
	default:
		return fmt.Errorf("unknown booking status %q", status)
	}
	b, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return err
	}
	if err := s.Repo.UpdateStatus(bookingID, status); err != nil {
		return err
	}
	if s.Audit != nil && status == models.BookingCancelled {
		s.Audit.Record(b.OrganizationID, b.HostID, models.AuditBookingCancelled, b.ID, nil)
	}
	return nil
}

// Get returns one booking.
func (s *DefaultBookingService) Get(bookingID string) (*models.Booking, error) {
	return s.Repo.GetByID(bookingID)
}

// ListForHost returns the host's bookings, newest first.
func (s *DefaultBookingService) ListForHost(hostID string, limit int64) ([]models.Booking, error) {
	return s.Repo.ListForHost(hostID, limit)
}

// ListForGuest returns the guest's bookings, newest first.
func (s *DefaultBookingService) ListForGuest(guestID string, limit int64) ([]models.Booking, error) {
	return s.Repo.ListForGuest(guestID, limit)
}

func validateRequest(req AssignAndBookRequest) error {
	if !req.Start.Before(req.End) {
		return ErrInvalidInterval
	}
	if req.GuestEmail == "" {
		return fmt.Errorf("guest email is required")
	}
	return nil
}
