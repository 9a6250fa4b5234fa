// Package extract contains the pure pattern-matching functions that pull
// structured fragments out of free text. Every extractor is total: absent
// data comes back as a zero value, never as an error.
package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/trattoria-labs/tavolo/agent/restaurant"
	statex "github.com/trattoria-labs/tavolo/agent/state"
)

var (
	nameMarkerPattern = regexp.MustCompile(`(?i)nome|sono|mi chiamo`)
	namePattern       = regexp.MustCompile(`(?i)(?:nome|sono|mi chiamo)\s+(\w+)`)
	phoneMarker       = regexp.MustCompile(`\d{3}`)
	digitRuns         = regexp.MustCompile(`\d+`)
	emailPattern      = regexp.MustCompile(`\S+@\S+\.\S+`)

	partySizePattern  = regexp.MustCompile(`(?i)(\d+)\s*person`)
	datePattern       = regexp.MustCompile(`(?i)(lunedi|lunedì|martedi|martedì|mercoledi|mercoledì|giovedi|giovedì|venerdi|venerdì|sabato|domenica|\d{1,2}/\d{1,2})`)
	clockPattern      = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)
	spokenHourPattern = regexp.MustCompile(`(?i)\balle\s+(\d{1,2})\b`)
)

// OrderItems matches the message against the menu table by substring
// containment. Matching is case-sensitive over the raw message; unknown
// dishes are silently dropped and results follow table order, not input
// order.
func OrderItems(text string, menu []restaurant.MenuItem) []statex.OrderItem {
	var items []statex.OrderItem
	for _, entry := range menu {
		if strings.Contains(text, entry.Keyword) {
			items = append(items, statex.OrderItem{Name: entry.Name, Price: entry.Price})
		}
	}
	return items
}

// HasNameMarker reports whether the message carries a name marker word.
func HasNameMarker(text string) bool {
	return nameMarkerPattern.MatchString(text)
}

// Name takes the token right after a marker word, or falls back to the first
// whitespace-delimited token of the message.
func Name(text string) string {
	if m := namePattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// HasPhoneMarker reports whether the message contains 3 consecutive digits.
func HasPhoneMarker(text string) bool {
	return phoneMarker.MatchString(text)
}

// Phone concatenates every digit run in the message.
func Phone(text string) string {
	return strings.Join(digitRuns.FindAllString(text, -1), "")
}

// HasEmailMarker reports whether the message contains an "@".
func HasEmailMarker(text string) bool {
	return strings.Contains(text, "@")
}

// Email returns the first local@domain.tld-shaped substring, or "".
func Email(text string) string {
	return emailPattern.FindString(text)
}

// ReservationDetails holds whatever Reservation could find; zero values mean
// absent. No defaulting happens here.
type ReservationDetails struct {
	PartySize int
	Date      string
	Time      string
}

// Reservation pulls party size, date, and time out of the message. Time only
// matches an explicit H:MM clock or an "alle H" phrase, so a bare party-size
// digit is never mistaken for a time.
func Reservation(text string) ReservationDetails {
	var det ReservationDetails

	if m := partySizePattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			det.PartySize = n
		}
	}

	if m := datePattern.FindStringSubmatch(text); m != nil {
		det.Date = strings.ToLower(m[1])
	}

	if m := clockPattern.FindStringSubmatch(text); m != nil {
		det.Time = m[1] + ":" + m[2]
	} else if m := spokenHourPattern.FindStringSubmatch(text); m != nil {
		det.Time = fmt.Sprintf("%s:00", m[1])
	}

	return det
}
