package extract

import (
	"strings"
	"time"

	dps "github.com/markusmobius/go-dateparser"
)

// timestampLayouts are tried in order when reading a message timestamp.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp reads an ISO-8601 timestamp. Offset-less values are taken as UTC.
func ParseTimestamp(ts string) (time.Time, bool) {
	ts = strings.TrimSpace(ts)
	if ts == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DateNormalizer turns a relative or absolute date phrase into YYYY-MM-DD.
type DateNormalizer struct {
	now func() time.Time
}

// NewDateNormalizer uses now as the reference when a message has no usable timestamp.
// A nil now means the wall clock.
func NewDateNormalizer(now func() time.Time) *DateNormalizer {
	if now == nil {
		now = time.Now
	}
	return &DateNormalizer{now: now}
}

// Normalize resolves raw against the message timestamp, preferring future dates.
func (n *DateNormalizer) Normalize(raw, refTimestamp string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	ref, ok := ParseTimestamp(refTimestamp)
	if !ok {
		ref = n.now()
	}

	cfg := &dps.Configuration{
		CurrentTime:         ref,
		DefaultTimezone:     ref.Location(),
		PreferredDateSource: dps.Future,
	}
	dt, err := dps.Parse(cfg, raw)
	if err != nil || dt.Time.IsZero() {
		return "", false
	}
	return dt.Time.In(ref.Location()).Format("2006-01-02"), true
}
