package market

import "time"

// TradingDays returns n weekday dates ending at the last weekday on or
// before end, in chronological order. Weekends are skipped; holidays are
// not modeled.
func TradingDays(end time.Time, n int) []time.Time {
	end = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)

	dates := make([]time.Time, 0, n)
	current := end
	for len(dates) < n {
		if isWeekday(current) {
			dates = append(dates, current)
		}
		current = current.AddDate(0, 0, -1)
	}

	// Collected newest-first; reverse into chronological order.
	for i, j := 0, len(dates)-1; i < j; i, j = i+1, j-1 {
		dates[i], dates[j] = dates[j], dates[i]
	}
	return dates
}

// ThirdFridays filters a date index down to the standardized monthly
// expiration dates: the third Friday of each month.
func ThirdFridays(dates []time.Time) []time.Time {
	var expiries []time.Time
	for _, d := range dates {
		if isThirdFriday(d) {
			expiries = append(expiries, d)
		}
	}
	return expiries
}

func isWeekday(d time.Time) bool {
	return d.Weekday() != time.Saturday && d.Weekday() != time.Sunday
}

// The third Friday is the only Friday whose day of month is in [15, 21].
func isThirdFriday(d time.Time) bool {
	return d.Weekday() == time.Friday && d.Day() >= 15 && d.Day() <= 21
}
