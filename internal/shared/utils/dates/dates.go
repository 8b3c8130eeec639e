package dates

import (
	"time"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/apperror"
)

// Layout is the wire format of calendar dates (yyyy-MM-dd).
const Layout = "2006-01-02"

// Parse reads a yyyy-MM-dd value and reports failures against field.
func Parse(field, value string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, value, time.Local)
	if err != nil {
		return time.Time{}, apperror.Invalid(field, "must be a date in yyyy-MM-dd format")
	}
	return t, nil
}

// ParseRange parses start and end and rejects start after end.
func ParseRange(start, end string) (time.Time, time.Time, error) {
	from, err := Parse("start", start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := Parse("end", end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, apperror.Invalid("start", "start date must not be after end date")
	}
	return from, to, nil
}

func Format(t time.Time) string {
	return t.Format(Layout)
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// WeekBounds returns Monday 00:00 and the following Monday 00:00 of the week
// containing t.
func WeekBounds(t time.Time) (time.Time, time.Time) {
	day := StartOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	monday := day.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 7)
}
