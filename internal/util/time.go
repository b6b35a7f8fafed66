package util

import "time"

// DefaultDisplayOffset shifts stored UTC publish timestamps for display.
// The original operator works in JST; stored timestamps stay untouched and
// the offset is applied only when rendering.
const DefaultDisplayOffset = 9 * time.Hour

var jstLocation *time.Location

func init() {
	var err error
	jstLocation, err = time.LoadLocation("Asia/Tokyo")
	if err != nil {
		jstLocation = time.FixedZone("JST", int(DefaultDisplayOffset/time.Second))
	}
}

func ToJST(t time.Time) time.Time {
	return t.In(jstLocation)
}

func FormatJST(t time.Time, layout string) string {
	return t.In(jstLocation).Format(layout)
}

func NowJST() time.Time {
	return time.Now().In(jstLocation)
}

// DisplayLocation is the operator-facing time zone used when parsing date
// input and rendering timestamps.
func DisplayLocation() *time.Location {
	return jstLocation
}

// DateOf truncates a timestamp to its calendar date in its own location.
// Period comparisons stay in the record's reference frame to avoid
// off-by-one-day errors at window boundaries.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
