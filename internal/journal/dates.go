package journal

import (
	"time"

	"github.com/julianstephens/bujo/internal/constants"
	bujoerrors "github.com/julianstephens/bujo/internal/errors"
)

// ShiftDate moves a YYYY-MM-DD date by days on the calendar.
func ShiftDate(date string, days int) (string, error) {
	t, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return "", bujoerrors.Invalidf("date %q is not YYYY-MM-DD", date)
	}
	return t.AddDate(0, 0, days).Format(constants.DateFormat), nil
}

// Today returns the current date in tz. An empty tz means the local zone.
func Today(tz string) (string, error) {
	return dateIn(time.Now(), tz)
}

func dateIn(now time.Time, tz string) (string, error) {
	loc := time.Local
	if tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			return "", bujoerrors.Invalidf("timezone %q: %v", tz, err)
		}
		loc = l
	}
	return now.In(loc).Format(constants.DateFormat), nil
}
