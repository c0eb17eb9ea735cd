package forum

import (
	"fmt"
	"time"
)

// FormatDisplayDate buckets date relative to now by whole UTC calendar days:
// "hoje" for the same day (or a future date), "ontem" for one day back,
// "<N> dias atrás" up to a week, and dd/mm/yyyy beyond that.
func FormatDisplayDate(date, now time.Time) string {
	diff := int(day(now).Sub(day(date)).Hours() / 24)
	switch {
	case diff <= 0:
		return "hoje"
	case diff == 1:
		return "ontem"
	case diff <= 7:
		return fmt.Sprintf("%d dias atrás", diff)
	}
	return date.UTC().Format("02/01/2006")
}
