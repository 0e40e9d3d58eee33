package scheduler

import "time"

// Schedule yields the next run time strictly after a given instant.
type Schedule interface {
	Next(after time.Time) time.Time
}

type daily struct{ hour, minute int }

// DailyAt runs once a day at hour:minute UTC.
func DailyAt(hour, minute int) Schedule {
	return daily{hour: hour, minute: minute}
}

func (d daily) Next(after time.Time) time.Time {
	after = after.UTC()
	next := time.Date(after.Year(), after.Month(), after.Day(), d.hour, d.minute, 0, 0, time.UTC)
	if !next.After(after) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

type weekly struct {
	day          time.Weekday
	hour, minute int
}

// WeeklyOn runs once a week on day at hour:minute UTC.
func WeeklyOn(day time.Weekday, hour, minute int) Schedule {
	return weekly{day: day, hour: hour, minute: minute}
}

func (w weekly) Next(after time.Time) time.Time {
	after = after.UTC()
	next := time.Date(after.Year(), after.Month(), after.Day(), w.hour, w.minute, 0, 0, time.UTC)
	offset := (int(w.day) - int(next.Weekday()) + 7) % 7
	next = next.AddDate(0, 0, offset)
	if !next.After(after) {
		next = next.AddDate(0, 0, 7)
	}
	return next
}

type monthly struct{ day, hour, minute int }

// MonthlyOn runs on the given day of every month at hour:minute UTC. Days
// past the end of a short month are clamped to its last day.
func MonthlyOn(day, hour, minute int) Schedule {
	return monthly{day: day, hour: hour, minute: minute}
}

func (m monthly) Next(after time.Time) time.Time {
	after = after.UTC()
	for i := 0; ; i++ {
		first := time.Date(after.Year(), after.Month()+time.Month(i), 1, 0, 0, 0, 0, time.UTC)
		day := m.day
		if last := first.AddDate(0, 1, -1).Day(); day > last {
			day = last
		}
		next := time.Date(first.Year(), first.Month(), day, m.hour, m.minute, 0, 0, time.UTC)
		if next.After(after) {
			return next
		}
	}
}

type interval time.Duration

// Every runs on multiples of d counted from the zero time, so servers
// started at different moments agree on the ticks.
func Every(d time.Duration) Schedule {
	return interval(d)
}

func (i interval) Next(after time.Time) time.Time {
	return after.Truncate(time.Duration(i)).Add(time.Duration(i))
}
