package aggregator

import "time"

// timestampLayouts are tried in order. The zone-less layouts are
// parsed as UTC, matching how the API's naive timestamps are meant.
var timestampLayouts = []struct {
	layout string
	naive  bool
}{
	{layout: time.RFC3339Nano},
	{layout: time.RFC3339},
	{layout: "2006-01-02T15:04:05.999999999", naive: true},
	{layout: "2006-01-02T15:04:05", naive: true},
	{layout: "2006-01-02", naive: true},
}

// ParseTimestamp parses an ISO-8601 timestamp into a UTC instant.
// It reports ok=false instead of an error: an unparseable timestamp
// is treated as absent throughout the aggregation pipeline.
func ParseTimestamp(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, l := range timestampLayouts {
		if l.naive {
			if t, err := time.ParseInLocation(l.layout, value, time.UTC); err == nil {
				return t, true
			}
			continue
		}
		if t, err := time.Parse(l.layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// excludedByStartDate reports whether a request created at createdAt
// falls before the start bound. The bound is inclusive, and a
// timestamp that cannot be parsed never excludes a request.
func excludedByStartDate(start *time.Time, createdAt string) bool {
	if start == nil {
		return false
	}
	created, ok := ParseTimestamp(createdAt)
	if !ok {
		return false
	}
	return start.After(created)
}
