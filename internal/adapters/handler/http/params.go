package http

import (
	"time"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// parseRange reads optional from/to query params. Both accept RFC3339 or a
// plain date; a plain "to" date covers the whole day.
func parseRange(c *gin.Context) (from, to time.Time, ok bool) {
	var err error
	if s := c.Query("from"); s != "" {
		if from, err = parseInstant(s, false); err != nil {
			badRequest(c, "invalid from, use RFC3339 or YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
	}
	if s := c.Query("to"); s != "" {
		if to, err = parseInstant(s, true); err != nil {
			badRequest(c, "invalid to, use RFC3339 or YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
	}
	return from, to, true
}

func parseInstant(s string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return t, nil
}

// parseLocation resolves the tz query param, falling back to def.
func parseLocation(c *gin.Context, def *time.Location) (*time.Location, bool) {
	tz := c.Query("tz")
	if tz == "" {
		if def == nil {
			def = time.UTC
		}
		return def, true
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		badRequest(c, "invalid tz, use an IANA zone like Europe/Rome")
		return nil, false
	}
	return loc, true
}

// optionalTime turns a nil pointer into the zero time.
func optionalTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
