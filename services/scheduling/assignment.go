package scheduling

import (
	"fmt"
	"sort"
	"time"

	"bcal/config"
	"bcal/models"
	"bcal/utils"

	"go.uber.org/zap"
)

// ScorePolicy holds the tunable constants of the load-balancing heuristic.
type ScorePolicy struct {
	// AvailabilityHourBonus is subtracted from the score per hour of the
	// agent's availability window. Longer windows rank higher.
	AvailabilityHourBonus float64
	// MeetingTypeBonus is subtracted when the agent's window carries a
	// non-general meeting type.
	MeetingTypeBonus float64
	// PreferredLoadThreshold is the daily booking count below which a
	// requested preferred agent wins over the score ranking.
	PreferredLoadThreshold int
}

// PolicyFromConfig builds the score policy from application configuration.
func PolicyFromConfig() ScorePolicy {
	return ScorePolicy{
		AvailabilityHourBonus:  config.AppConfig.AssignAvailabilityHourBonus,
		MeetingTypeBonus:       config.AppConfig.AssignMeetingTypeBonus,
		PreferredLoadThreshold: config.AppConfig.AssignPreferredLoadThreshold,
	}
}

// AssignRequest describes one agent-assignment query.
type AssignRequest struct {
	TeamID           string
	Start            time.Time
	End              time.Time
	MeetingType      string // optional filter; empty matches any window
	PreferredAgentID string // optional
}

// Candidate is one agent surviving conflict elimination, with its computed
// load and priority score. Lower score means higher priority.
type Candidate struct {
	Agent  models.User
	Window models.WeeklyAvailability
	Load   int64
	Score  float64
}

// MemberReader is the team-membership lookup the engine needs.
type MemberReader interface {
	GetActiveMemberIDs(teamID string) ([]string, error)
}

// WindowReader is the availability lookup the engine needs.
type WindowReader interface {
	GetActiveByUsersAndDay(userIDs []string, dayOfWeek int) ([]models.WeeklyAvailability, error)
}

// LoadReader is the booking-load lookup the engine needs.
type LoadReader interface {
	OverlappingCount(hostID string, start, end time.Time) (int64, error)
	CountStartingBetween(hostID string, start, end time.Time) (int64, error)
}

// AgentReader resolves candidate user records.
type AgentReader interface {
	GetManyByIDs(ids []string) ([]models.User, error)
}

// Engine ranks a team's agents for a requested slot. It is a pure
// read-then-decide step: the caller persists the booking and must re-validate
// the conflict at insert time.
type Engine struct {
	Members MemberReader
	Windows WindowReader
	Load    LoadReader
	Agents  AgentReader
	Policy  ScorePolicy
}

// AvailableAgents returns the conflict-free candidates for the requested
// slot, ranked by ascending score. Ties keep first-encountered order, which
// follows the availability query's user_id sort.
func (e *Engine) AvailableAgents(req AssignRequest) ([]Candidate, error) {
	slotStart, err := ParseClock(req.Start.Format("15:04"))
	if err != nil {
		return nil, err
	}
	slotEnd, err := ParseClock(req.End.Format("15:04"))
	if err != nil {
		return nil, err
	}

	memberIDs, err := e.Members.GetActiveMemberIDs(req.TeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve team members: %w", err)
	}
	if len(memberIDs) == 0 {
		return nil, nil
	}

	windows, err := e.Windows.GetActiveByUsersAndDay(memberIDs, WeekdayIndex(req.Start))
	if err != nil {
		return nil, fmt.Errorf("failed to load availability: %w", err)
	}

	// One covering window qualifies an agent; the first window seen per agent
	// is the one used for scoring.
	type hit struct {
		window models.WeeklyAvailability
		order  int
	}
	hits := make(map[string]hit)
	var ordered []string
	for _, w := range windows {
		wStart, err := ParseClock(w.StartTime)
		if err != nil {
			continue
		}
		wEnd, err := ParseClock(w.EndTime)
		if err != nil {
			continue
		}
		if wStart > slotStart || wEnd < slotEnd {
			continue
		}
		if req.MeetingType != "" && w.MeetingType != req.MeetingType {
			continue
		}
		if _, seen := hits[w.UserID]; !seen {
			hits[w.UserID] = hit{window: w, order: len(ordered)}
			ordered = append(ordered, w.UserID)
		}
	}
	if len(ordered) == 0 {
		return nil, nil
	}

	users, err := e.Agents.GetManyByIDs(ordered)
	if err != nil {
		return nil, fmt.Errorf("failed to load agents: %w", err)
	}
	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		if u.IsActive {
			byID[u.ID] = u
		}
	}

	dayStart := time.Date(req.Start.Year(), req.Start.Month(), req.Start.Day(), 0, 0, 0, 0, req.Start.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	var candidates []Candidate
	for _, id := range ordered {
		agent, ok := byID[id]
		if !ok {
			continue
		}
		conflicts, err := e.Load.OverlappingCount(id, req.Start, req.End)
		if err != nil {
			return nil, fmt.Errorf("conflict check for agent %s failed: %w", id, err)
		}
		if conflicts > 0 {
			continue
		}
		load, err := e.Load.CountStartingBetween(id, dayStart, dayEnd)
		if err != nil {
			return nil, fmt.Errorf("load count for agent %s failed: %w", id, err)
		}
		window := hits[id].window
		candidates = append(candidates, Candidate{
			Agent:  agent,
			Window: window,
			Load:   load,
			Score:  e.score(load, window),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score < candidates[j].Score
	})
	return candidates, nil
}

// AssignAgent returns the best agent for the requested slot, or nil when the
// team is fully booked for that interval. A preferred agent wins when it
// survives conflict elimination and its daily load is under the threshold.
func (e *Engine) AssignAgent(req AssignRequest) (*models.User, error) {
	candidates, err := e.AvailableAgents(req)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	if req.PreferredAgentID != "" {
		for _, c := range candidates {
			if c.Agent.ID == req.PreferredAgentID && c.Load < int64(e.Policy.PreferredLoadThreshold) {
				agent := c.Agent
				return &agent, nil
			}
		}
	}

	best := candidates[0]
	utils.GetLogger().Debug("agent assigned",
		zap.String("team_id", req.TeamID),
		zap.String("agent_id", best.Agent.ID),
		zap.Int64("load", best.Load),
		zap.Float64("score", best.Score),
	)
	agent := best.Agent
	return &agent, nil
}

// score implements the load-balancing heuristic. Base score is the agent's
// daily booking count; longer windows and specialised meeting types subtract
// a bonus. Lower is better.
func (e *Engine) score(load int64, window models.WeeklyAvailability) float64 {
	score := float64(load)
	score -= WindowHours(window) * e.Policy.AvailabilityHourBonus
	if window.MeetingType != "" && window.MeetingType != models.DefaultMeetingType {
		score -= e.Policy.MeetingTypeBonus
	}
	return score
}
