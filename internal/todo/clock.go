package todo

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tj/go-naturaldate"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "03:04 PM"
)

var (
	clockDigits   = regexp.MustCompile(`(\d+):(\d+)`)
	clockMeridiem = regexp.MustCompile(`(?i)AM|PM`)
)

// To24Hour converts a 12-hour clock such as "01:00 PM" to "13:00". A missing
// meridiem is read as AM; an unreadable clock becomes "00:00".
func To24Hour(clock string) string {
	hours, minutes := "0", "00"
	if m := clockDigits.FindStringSubmatch(clock); m != nil {
		hours, minutes = m[1], m[2]
	}
	modifier := "AM"
	if m := clockMeridiem.FindString(clock); m != "" {
		modifier = strings.ToUpper(m)
	}
	h, _ := strconv.Atoi(hours)
	switch {
	case modifier == "PM" && h != 12:
		h += 12
	case modifier == "AM" && h == 12:
		h = 0
	}
	return fmt.Sprintf("%02d:%s", h, minutes)
}

// Instant combines a YYYY-MM-DD date and a 12-hour clock into one instant.
func Instant(date, clock string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout+" 15:04", date+" "+To24Hour(clock), loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// HasPassed reports whether the date lies before today and whether now is
// after the exact date and time. Both are false for unreadable input.
func HasPassed(date, clock string, now time.Time) (datePassed, timePassed bool) {
	day, err := time.ParseInLocation(DateLayout, date, now.Location())
	if err != nil {
		return false, false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	datePassed = today.After(day)
	if due, ok := Instant(date, clock, now.Location()); ok {
		timePassed = now.After(due)
	}
	return datePassed, timePassed
}

// ParseDateInput normalises user input to YYYY-MM-DD. Besides the canonical
// layout it accepts natural phrases like "tomorrow" or "next friday".
func ParseDateInput(input string, now time.Time) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", nil
	}
	if t, err := time.ParseInLocation(DateLayout, input, now.Location()); err == nil {
		return t.Format(DateLayout), nil
	}
	parsed, err := naturaldate.Parse(input, now, naturaldate.WithDirection(naturaldate.Future))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, input)
	}
	// naturaldate hands back the reference time when it finds no date at all.
	if sameDay(parsed, now) && !todayWords[strings.ToLower(input)] {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, input)
	}
	return parsed.Format(DateLayout), nil
}

var todayWords = map[string]bool{
	"today":   true,
	"now":     true,
	"tonight": true,
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}

var clockInputLayouts = []string{
	"3:04PM",
	"3PM",
	"15:04",
	"15",
}

// ParseClockInput normalises "3pm", "3:30 pm", "15:30" and similar to the
// stored "03:30 PM" form.
func ParseClockInput(input string) (string, error) {
	norm := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(input), " ", ""))
	if norm == "" {
		return "", nil
	}
	for _, layout := range clockInputLayouts {
		if t, err := time.Parse(layout, norm); err == nil {
			return t.Format(TimeLayout), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTime, input)
}
