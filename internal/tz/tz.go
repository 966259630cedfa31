package tz

import "time"

const civilDateLayout = "2006-01-02"

// Load resolves the operating time zone. Every business-hours and blackout
// comparison in the service happens in this one zone.
func Load(name string) (*time.Location, error) {
	if name == "" {
		name = "America/Chicago"
	}
	return time.LoadLocation(name)
}

// CivilDate renders t's calendar date in loc, the form blackout days are
// keyed by.
func CivilDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(civilDateLayout)
}

// ParseCivilDate validates a YYYY-MM-DD string and returns it normalized.
func ParseCivilDate(s string) (string, error) {
	d, err := time.Parse(civilDateLayout, s)
	if err != nil {
		return "", err
	}
	return d.Format(civilDateLayout), nil
}

// ParseISO parses an ISO-8601 timestamp. Values carrying an offset keep it;
// naive values are interpreted in loc, matching how calendar clients submit
// local wall times.
func ParseISO(value string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	_, err := time.Parse(time.RFC3339, value)
	return time.Time{}, err
}
