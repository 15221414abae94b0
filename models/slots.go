package models

import "time"

// Slot is one fixed-duration candidate meeting interval derived from an
// availability window. Available is false when the interval overlaps an
// existing pending or confirmed booking.
type Slot struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"is_available"`
}

// AgentSlot is a bookable slot attributed to a specific team member, as
// returned by the team availability listing. Only available slots are emitted
// on this path.
type AgentSlot struct {
	AgentID         string    `json:"agent_id"`
	AgentName       string    `json:"agent_name"`
	AgentEmail      string    `json:"agent_email"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	MeetingType     string    `json:"meeting_type"`
	MeetingLocation string    `json:"meeting_location,omitempty"`
	SlotDuration    int       `json:"slot_duration"`
}
