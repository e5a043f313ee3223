package analytics

import "time"

// GetDateRange returns a date range based on a named period.
func GetDateRange(period string) *DateRange {
	now := time.Now()
	var start, end time.Time

	switch period {
	case "today":
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		end = now

	case "this_week":
		// Start of week (Monday)
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7 // Sunday = 7
		}
		start = now.AddDate(0, 0, -weekday+1)
		start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, now.Location())
		end = now

	case "this_month":
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end = now

	case "last_30_days":
		start = now.AddDate(0, 0, -30)
		end = now

	case "last_90_days":
		start = now.AddDate(0, 0, -90)
		end = now

	default:
		start = now.AddDate(0, 0, -30)
		end = now
	}

	return &DateRange{
		Start: start,
		End:   end,
		Field: "created_at",
	}
}

// LastDays returns the trailing window of n days ending now.
func LastDays(n int) *DateRange {
	now := time.Now()
	return &DateRange{
		Start: now.AddDate(0, 0, -n),
		End:   now,
		Field: "created_at",
	}
}

// PreviousWindow returns the window of equal length immediately preceding r,
// for period-over-period comparisons.
func PreviousWindow(r *DateRange) *DateRange {
	length := r.End.Sub(r.Start)
	return &DateRange{
		Start: r.Start.Add(-length),
		End:   r.Start,
		Field: r.Field,
	}
}
