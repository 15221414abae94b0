package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson"
)

// Mongo stores datetimes at millisecond precision, so whole-second instants
// must come back exactly equal after a round trip.
func TestBookingBSONRoundTrip(t *testing.T) {
	start := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	in := Booking{
		ID:             "b-1",
		OrganizationID: "org-1",
		HostID:         "agent-1",
		GuestID:        "guest-1",
		Title:          "Intro call",
		Description:    "agenda attached",
		StartTime:      start,
		EndTime:        start.Add(30 * time.Minute),
		Status:         BookingConfirmed,
		GuestEmail:     "pat@example.com",
		GuestName:      "Pat Guest",
		MeetingType:    "general",
		CreatedAt:      start.Add(-time.Hour),
		UpdatedAt:      start.Add(-time.Hour),
	}

	raw, err := bson.Marshal(in)
	require.NoError(t, err)

	var out Booking
	require.NoError(t, bson.Unmarshal(raw, &out))

	assert.Equal(t, in.ID, out.ID)
	assert.Equal(t, in.Status, out.Status)
	assert.Equal(t, in.MeetingType, out.MeetingType)
	assert.True(t, in.StartTime.Equal(out.StartTime), "start time drifted: %v vs %v", in.StartTime, out.StartTime)
	assert.True(t, in.EndTime.Equal(out.EndTime), "end time drifted: %v vs %v", in.EndTime, out.EndTime)
	assert.True(t, in.CreatedAt.Equal(out.CreatedAt))
	assert.True(t, in.UpdatedAt.Equal(out.UpdatedAt))
	assert.True(t, out.Overlaps(start, start.Add(time.Minute)))
}
