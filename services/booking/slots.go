package booking

import (
	"time"

	"github.com/cockroachdb/errors"
)

const (
	clockLayout = "15:04"
	dateLayout  = "2006-01-02"
)

// parseClock converts "HH:MM" into minutes from midnight.
func parseClock(s string) (int, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid clock time %q", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatClock(minutes int) string {
	return time.Date(0, 1, 1, 0, minutes, 0, 0, time.UTC).Format(clockLayout)
}

// GenerateTimeSlots splits [start, end] into back-to-back slots of duration
// minutes and returns their start times. Only slots that end at or before end
// are included, so the count is floor((end-start)/duration).
func GenerateTimeSlots(start, end string, duration int) ([]string, error) {
	if duration <= 0 {
		return nil, errors.Newf("slot duration must be positive, got %d", duration)
	}
	from, err := parseClock(start)
	if err != nil {
		return nil, err
	}
	to, err := parseClock(end)
	if err != nil {
		return nil, err
	}

	slots := []string{}
	for slot := from; slot+duration <= to; slot += duration {
		slots = append(slots, formatClock(slot))
	}
	return slots, nil
}

// parseDate validates a "YYYY-MM-DD" string and returns its weekday name.
func parseDate(date string) (string, bool) {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", false
	}
	return d.Weekday().String(), true
}
