package calendar

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"bcal/models"
)

// icsTimeLayout is the UTC timestamp form RFC 5545 expects.
const icsTimeLayout = "20060102T150405Z"

// Service renders RFC 5545 calendar payloads for bookings. The emitted
// fields stay minimal: one VEVENT with organizer, attendee and a 15-minute
// display alarm.
type Service struct {
	// ProdID identifies this product in the calendar header.
	ProdID string
	// UIDDomain suffixes event UIDs, e.g. "bcal.io".
	UIDDomain string
	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

// NewService returns a Service with production defaults.
func NewService(uidDomain string) *Service {
	return &Service{
		ProdID:    "-//BCal//Calendar Booking//EN",
		UIDDomain: uidDomain,
		Now:       time.Now,
	}
}

// BuildInvite renders a REQUEST payload for a confirmed booking.
func (s *Service) BuildInvite(b models.Booking, host, guest models.User) (string, error) {
	return s.render("REQUEST", b.Title, b, host, guest)
}

// BuildCancellation renders a CANCEL payload for a cancelled booking.
func (s *Service) BuildCancellation(b models.Booking, host, guest models.User) (string, error) {
	return s.render("CANCEL", "CANCELLED: "+b.Title, b, host, guest)
}

func (s *Service) render(method, summary string, b models.Booking, host, guest models.User) (string, error) {
	if b.StartTime.IsZero() || b.EndTime.IsZero() {
		return "", fmt.Errorf("booking %s has no interval", b.ID)
	}

	description := b.Description
	if description == "" {
		description = "Meeting with " + host.FullName
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	var sb strings.Builder
	line := func(format string, args ...interface{}) {
		sb.WriteString(foldLine(fmt.Sprintf(format, args...)))
		sb.WriteString("\r\n")
	}

	line("BEGIN:VCALENDAR")
	line("PRODID:%s", s.ProdID)
	line("VERSION:2.0")
	line("CALSCALE:GREGORIAN")
	line("METHOD:%s", method)
	line("BEGIN:VEVENT")
	line("UID:bcal-booking-%s@%s", b.ID, s.UIDDomain)
	line("DTSTAMP:%s", now().UTC().Format(icsTimeLayout))
	line("DTSTART:%s", b.StartTime.UTC().Format(icsTimeLayout))
	line("DTEND:%s", b.EndTime.UTC().Format(icsTimeLayout))
	line("SUMMARY:%s", escapeText(summary))
	line("DESCRIPTION:%s", escapeText(description))
	line("ORGANIZER:mailto:%s", host.Email)
	line("ATTENDEE:mailto:%s", guest.Email)
	if method == "REQUEST" {
		line("BEGIN:VALARM")
		line("ACTION:DISPLAY")
		line("DESCRIPTION:%s", escapeText("Reminder: "+b.Title))
		line("TRIGGER:-PT15M")
		line("END:VALARM")
	}
	line("END:VEVENT")
	line("END:VCALENDAR")
	return sb.String(), nil
}

// Content lines longer than 75 octets must be folded (RFC 5545 §3.1). The
// continuation's leading space counts against the limit, and splits must land
// on UTF-8 rune boundaries.
const (
	foldWidth         = 75
	continuationWidth = foldWidth - 1
)

func foldLine(s string) string {
	if len(s) <= foldWidth {
		return s
	}

	var sb strings.Builder
	width := foldWidth
	for len(s) > width {
		cut := width
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		sb.WriteString(s[:cut])
		sb.WriteString("\r\n ")
		s = s[cut:]
		width = continuationWidth
	}
	sb.WriteString(s)
	return sb.String()
}

// escapeText escapes the characters RFC 5545 treats specially in TEXT values.
func escapeText(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		";", `\;`,
		",", `\,`,
		"\n", `\n`,
	)
	return r.Replace(s)
}
