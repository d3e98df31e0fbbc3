package schedule

import (
	"math"
	"strings"
	"time"
)

// Status is the derived visibility state of a schedule window.
type Status string

const (
	Off       Status = "off"
	Expired   Status = "expired"
	Scheduled Status = "scheduled"
	Upcoming  Status = "upcoming"
	Live      Status = "live"
)

// UpcomingThreshold is how close a same-day start has to be before the
// window reports Upcoming instead of Scheduled.
const UpcomingThreshold = 60 * time.Minute

const (
	dateLayout = "2006-01-02"
	endOfDay   = 23*3600 + 59*60
)

// Window is the active flag plus the optional date and daily time bounds
// shared by banners and offers. Empty strings mean "no bound".
type Window struct {
	IsActive  bool
	StartDate string
	EndDate   string
	StartTime string
	EndTime   string
}

// Windowed is implemented by anything governed by a Window.
type Windowed interface {
	ScheduleWindow() Window
}

// Result is the outcome of one evaluation. Only the fields relevant to
// Status are populated.
type Result struct {
	Status       Status `json:"status"`
	StartsOn     string `json:"starts_on,omitempty"`
	StartsAt     string `json:"starts_at,omitempty"`
	MinutesUntil int    `json:"minutes_until,omitempty"`
	LiveUntil    string `json:"live_until,omitempty"`
}

// Evaluate decides the status of w at now. Calendar date and time of day are
// taken from now in now's own location, so callers pass an instant from a
// Clock pinned to the reference zone.
func Evaluate(w Window, now time.Time) Result {
	if !w.IsActive {
		return Result{Status: Off}
	}

	today := now.Format(dateLayout)
	current := now.Hour()*3600 + now.Minute()*60 + now.Second()

	if end, ok := parseDate(w.EndDate); ok && today > end {
		return Result{Status: Expired}
	}
	if start, ok := parseDate(w.StartDate); ok && today < start {
		return Result{Status: Scheduled, StartsOn: start}
	}

	startSec, hasStart := parseClock(w.StartTime)
	endSec, hasEnd := parseClock(w.EndTime)
	if !hasEnd {
		endSec = endOfDay
	}

	if hasStart && current < startSec {
		wait := int(math.Ceil(float64(startSec-current) / 60))
		if time.Duration(wait)*time.Minute <= UpcomingThreshold {
			return Result{Status: Upcoming, MinutesUntil: wait}
		}
		return Result{Status: Scheduled, StartsOn: today, StartsAt: formatClock(startSec)}
	}

	// Inverted ranges (start after end) are compared literally and never wrap.
	if hasEnd && current > endSec {
		return Result{Status: Expired}
	}

	res := Result{Status: Live}
	if hasEnd {
		res.LiveUntil = formatClock(endSec)
	}
	return res
}

// IsVisible reports whether w is live at now.
func IsVisible(w Window, now time.Time) bool {
	return Evaluate(w, now).Status == Live
}

// Filter returns the items that are live at now, keeping their order.
func Filter[T Windowed](items []T, now time.Time) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if IsVisible(it.ScheduleWindow(), now) {
			out = append(out, it)
		}
	}
	return out
}

// parseDate normalises a date bound to YYYY-MM-DD. A full RFC3339 timestamp
// contributes its own calendar date. Anything else counts as unset.
func parseDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t.Format(dateLayout), true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format(dateLayout), true
	}
	return "", false
}

// parseClock returns seconds since midnight for HH:MM or HH:MM:SS.
func parseClock(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Hour()*3600 + t.Minute()*60 + t.Second(), true
		}
	}
	return 0, false
}

func formatClock(sec int) string {
	t := time.Date(0, 1, 1, 0, 0, sec, 0, time.UTC)
	if t.Second() != 0 {
		return t.Format("15:04:05")
	}
	return t.Format("15:04")
}
