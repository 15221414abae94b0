package scheduling

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bcal/models"
	"bcal/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// OverlapReader is the booking lookup the aggregator needs.
type OverlapReader interface {
	ListOverlappingForHosts(hostIDs []string, start, end time.Time) ([]models.Booking, error)
}

// Aggregator fans slot generation out across a team's active members and
// merges the results into one per-team listing of bookable slots.
type Aggregator struct {
	Members  MemberReader
	Windows  WindowReader
	Agents   AgentReader
	Bookings OverlapReader
	// Cache is optional; when set, listings are cached briefly to absorb
	// public booking-page traffic.
	Cache *redis.Client
}

// TeamDayCacheKey is the cache key for one team's slot listing on one calendar
// day. Booking commits delete it so a just-taken slot drops out of the listing
// before the TTL expires.
func TeamDayCacheKey(teamID string, day time.Time) string {
	return fmt.Sprintf("%s%s:%s", utils.TeamAvailabilityCachePrefix, teamID, day.Format("2006-01-02"))
}

// TeamAvailability returns the team's bookable slots for one calendar day.
// Only available slots are emitted; the single-user listing is the path that
// reports unavailable slots with a flag. Slots are ordered by agent user_id
// first (the availability query's sort), then by start time within an agent.
func (a *Aggregator) TeamAvailability(teamID string, day time.Time) ([]models.AgentSlot, error) {
	cacheKey := TeamDayCacheKey(teamID, day)
	if a.Cache != nil {
		if cached, err := a.Cache.Get(context.Background(), cacheKey).Result(); err == nil && cached != "" {
			var slots []models.AgentSlot
			if err := json.Unmarshal([]byte(cached), &slots); err == nil {
				return slots, nil
			}
			// On unmarshal failure fall through to recomputation.
		}
	}

	memberIDs, err := a.Members.GetActiveMemberIDs(teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve team members: %w", err)
	}
	if len(memberIDs) == 0 {
		return []models.AgentSlot{}, nil
	}

	windows, err := a.Windows.GetActiveByUsersAndDay(memberIDs, WeekdayIndex(day))
	if err != nil {
		return nil, fmt.Errorf("failed to load availability: %w", err)
	}
	if len(windows) == 0 {
		return []models.AgentSlot{}, nil
	}

	users, err := a.Agents.GetManyByIDs(memberIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load agents: %w", err)
	}
	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		if u.IsActive {
			byID[u.ID] = u
		}
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.Add(24 * time.Hour)
	bookings, err := a.Bookings.ListOverlappingForHosts(memberIDs, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}
	byHost := make(map[string][]models.Booking)
	for _, b := range bookings {
		byHost[b.HostID] = append(byHost[b.HostID], b)
	}

	slots := []models.AgentSlot{}
	for _, w := range windows {
		agent, ok := byID[w.UserID]
		if !ok {
			continue
		}
		generated, err := GenerateSlots(w, day, byHost[w.UserID])
		if err != nil {
			utils.GetLogger().Warn("skipping malformed availability window",
				zap.String("availability_id", w.ID),
				zap.String("user_id", w.UserID),
				zap.Error(err),
			)
			continue
		}
		for _, s := range generated {
			if !s.Available {
				continue
			}
			slots = append(slots, models.AgentSlot{
				AgentID:         agent.ID,
				AgentName:       agent.FullName,
				AgentEmail:      agent.Email,
				Start:           s.Start,
				End:             s.End,
				MeetingType:     w.MeetingType,
				MeetingLocation: w.MeetingLocation,
				SlotDuration:    w.SlotDuration(),
			})
		}
	}

	if a.Cache != nil {
		if payload, err := json.Marshal(slots); err == nil {
			a.Cache.Set(context.Background(), cacheKey, payload, utils.TeamAvailabilityCacheTTL)
		}
	}
	return slots, nil
}
