package schedule

import (
	"log"
	"time"
)

// DefaultZone is the business's local zone. All schedule comparisons use it
// regardless of where the server or the viewer runs.
const DefaultZone = "Asia/Kolkata"

// Clock supplies the current instant already converted to the reference zone.
type Clock struct {
	Location *time.Location
	now      func() time.Time
}

// NewClock returns a wall clock for loc.
func NewClock(loc *time.Location) Clock {
	return Clock{Location: loc, now: time.Now}
}

// FixedClock always reports t, converted to loc. Used by tests and previews.
func FixedClock(t time.Time, loc *time.Location) Clock {
	return Clock{Location: loc, now: func() time.Time { return t }}
}

// Now returns the current instant in the reference zone.
func (c Clock) Now() time.Time {
	now := time.Now
	if c.now != nil {
		now = c.now
	}
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	return now().In(loc)
}

// LoadZone resolves a zone name. India has no DST, so when tzdata is missing
// the fixed +05:30 offset is an exact substitute for the default zone.
func LoadZone(name string) *time.Location {
	if name == "" {
		name = DefaultZone
	}
	loc, err := time.LoadLocation(name)
	if err == nil {
		return loc
	}
	if name == DefaultZone {
		log.Printf("[schedule] tzdata unavailable for %s, using fixed IST offset", name)
		return time.FixedZone("IST", 5*3600+30*60)
	}
	log.Printf("[schedule] unknown zone %q, falling back to %s: %v", name, DefaultZone, err)
	return LoadZone(DefaultZone)
}
