// Package timeparse extracts a concrete point in time and a cleaned task
// description from free-form natural-language text, e.g.
// "remind me to call mom at 5pm" or "wake me in 30 minutes".
package timeparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	minutesRe = regexp.MustCompile(`(?:in|after) (\d+) minutes?`)
	hoursRe   = regexp.MustCompile(`(?:in|after) (\d+) hours?`)

	// Clock-time patterns, tried in order: "at 5pm", "at 5:30pm", "at 17:30",
	// bare "7am". The minute and period groups are optional per pattern.
	clockRes = []*regexp.Regexp{
		regexp.MustCompile(`at (\d{1,2})\s*(pm|am)`),
		regexp.MustCompile(`at (\d{1,2}):(\d{2})\s*(pm|am)?`),
		regexp.MustCompile(`(\d{1,2})\s*(pm|am)`),
	}

	triggers = []string{
		"remind me to",
		"reminder to",
		"remind me",
		"set a reminder to",
		"set reminder",
	}

	timeExprRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)in \d+ (?:minutes?|hours?)`),
		regexp.MustCompile(`(?i)at \d{1,2}(?::\d{2})?\s*(?:pm|am)?`),
		regexp.MustCompile(`(?i)tomorrow`),
		regexp.MustCompile(`(?i)after \d+ (?:minutes?|hours?)`),
	}
)

// ExtractDateTime finds the first recognized time expression in text, relative
// to now. Patterns are mutually exclusive and tried in a fixed priority order;
// they are never combined. Returns false when no pattern yields a usable time,
// including the documented ambiguity of a bare "tomorrow" with no clock time.
func ExtractDateTime(text string, now time.Time) (time.Time, bool) {
	lowered := strings.ToLower(text)

	if m := minutesRe.FindStringSubmatch(lowered); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return now.Add(time.Duration(n) * time.Minute), true
		}
	}

	if m := hoursRe.FindStringSubmatch(lowered); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return now.Add(time.Duration(n) * time.Hour), true
		}
	}

	if hour, minute, ok := parseClock(lowered); ok {
		candidate := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
		if candidate.After(now) {
			return candidate, true
		}
		// The time has already passed today; schedule for tomorrow.
		return candidate.AddDate(0, 0, 1), true
	}

	// "tomorrow" only produces a result when combined with a clock time.
	if strings.Contains(lowered, "tomorrow") {
		if hour, minute, ok := parseClock(lowered); ok {
			tomorrow := now.AddDate(0, 0, 1)
			return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), hour, minute, 0, 0, now.Location()), true
		}
	}

	return time.Time{}, false
}

// parseClock extracts a 24-hour clock time from already-lowercased text.
// 12-hour input is normalized ("12am" becomes hour 0, "12pm" stays 12).
// A normalized hour outside 0-23 (e.g. "25pm") fails the pattern silently
// rather than rolling over into an unintended date.
func parseClock(lowered string) (hour, minute int, ok bool) {
	for _, re := range clockRes {
		m := re.FindStringSubmatch(lowered)
		if m == nil {
			continue
		}

		h, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}

		min := 0
		period := ""
		for _, group := range m[2:] {
			if group == "" {
				continue
			}
			if group == "am" || group == "pm" {
				period = group
			} else if v, err := strconv.Atoi(group); err == nil {
				min = v
			}
		}

		if period == "pm" && h < 12 {
			h += 12
		} else if period == "am" && h == 12 {
			h = 0
		}

		if h > 23 || min > 59 {
			continue
		}
		return h, min, true
	}
	return 0, 0, false
}

// ExtractTaskText strips the first matching leading trigger phrase and every
// recognized time-expression substring from text, returning the minimal
// actionable phrase for use as a reminder title. May be empty if the input
// was nothing but triggers and time expressions.
func ExtractTaskText(text string) string {
	cleaned := text

	lowered := strings.ToLower(cleaned)
	for _, trigger := range triggers {
		if idx := strings.Index(lowered, trigger); idx >= 0 {
			cleaned = cleaned[:idx] + cleaned[idx+len(trigger):]
			break
		}
	}

	for _, re := range timeExprRes {
		cleaned = re.ReplaceAllString(cleaned, "")
	}

	return strings.TrimSpace(cleaned)
}
