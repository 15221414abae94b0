package calendar

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"bcal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedBooking() (models.Booking, models.User, models.User) {
	b := models.Booking{
		ID:        "b-1",
		Title:     "Intro call",
		StartTime: time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 8, 24, 10, 30, 0, 0, time.UTC),
	}
	host := models.User{FullName: "Agent One", Email: "one@acme.test"}
	guest := models.User{FullName: "Pat Guest", Email: "pat@example.com"}
	return b, host, guest
}

func TestBuildInvite(t *testing.T) {
	svc := NewService("bcal.io")
	svc.Now = func() time.Time { return time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC) }

	b, host, guest := fixedBooking()
	ics, err := svc.BuildInvite(b, host, guest)
	require.NoError(t, err)

	assert.Contains(t, ics, "METHOD:REQUEST")
	assert.Contains(t, ics, "UID:bcal-booking-b-1@bcal.io")
	assert.Contains(t, ics, "DTSTART:20260824T100000Z")
	assert.Contains(t, ics, "DTEND:20260824T103000Z")
	assert.Contains(t, ics, "ORGANIZER:mailto:one@acme.test")
	assert.Contains(t, ics, "ATTENDEE:mailto:pat@example.com")
	assert.Contains(t, ics, "TRIGGER:-PT15M")
	// Empty description falls back to the host's name.
	assert.Contains(t, ics, "DESCRIPTION:Meeting with Agent One")
	// RFC 5545 requires CRLF line endings.
	assert.True(t, strings.HasSuffix(ics, "END:VCALENDAR\r\n"))
}

func TestBuildCancellation(t *testing.T) {
	svc := NewService("bcal.io")
	b, host, guest := fixedBooking()

	ics, err := svc.BuildCancellation(b, host, guest)
	require.NoError(t, err)
	assert.Contains(t, ics, "METHOD:CANCEL")
	assert.Contains(t, ics, "SUMMARY:CANCELLED: Intro call")
	assert.NotContains(t, ics, "VALARM")
}

func TestEscapeText(t *testing.T) {
	svc := NewService("bcal.io")
	b, host, guest := fixedBooking()
	b.Title = "Sync; budget, Q3"

	ics, err := svc.BuildInvite(b, host, guest)
	require.NoError(t, err)
	assert.Contains(t, ics, `SUMMARY:Sync\; budget\, Q3`)
}

func TestFoldLine(t *testing.T) {
	short := "SUMMARY:Intro call"
	assert.Equal(t, short, foldLine(short))

	long := "DESCRIPTION:" + strings.Repeat("a", 200)
	folded := foldLine(long)
	for _, physical := range strings.Split(folded, "\r\n") {
		assert.LessOrEqual(t, len(physical), 75)
	}
	// Unfolding (stripping CRLF plus space) restores the content line.
	assert.Equal(t, long, strings.ReplaceAll(folded, "\r\n ", ""))
}

func TestFoldLineKeepsRunesIntact(t *testing.T) {
	long := "DESCRIPTION:" + strings.Repeat("é", 120)
	folded := foldLine(long)
	for _, physical := range strings.Split(folded, "\r\n") {
		assert.LessOrEqual(t, len(physical), 75)
		assert.True(t, utf8.ValidString(physical))
	}
	assert.Equal(t, long, strings.ReplaceAll(folded, "\r\n ", ""))
}

func TestBuildInviteFoldsLongDescription(t *testing.T) {
	svc := NewService("bcal.io")
	b, host, guest := fixedBooking()
	b.Description = strings.Repeat("quarterly planning and budget review ", 10)

	ics, err := svc.BuildInvite(b, host, guest)
	require.NoError(t, err)
	for _, physical := range strings.Split(ics, "\r\n") {
		assert.LessOrEqual(t, len(physical), 75)
	}
}

func TestBuildInviteRejectsEmptyInterval(t *testing.T) {
	svc := NewService("bcal.io")
	_, host, guest := fixedBooking()
	_, err := svc.BuildInvite(models.Booking{ID: "b-2"}, host, guest)
	assert.Error(t, err)
}
