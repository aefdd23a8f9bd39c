package timeline

import (
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"
)

const DayLayout = "2006-01-02"

var ErrInvalidWindow = errors.New("invalid window: start is after end")

// Day truncates t to its calendar date, expressed as midnight UTC.
// The calendar fields are taken from t's own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay accepts "2006-01-02" or an RFC 3339 timestamp and returns the date part.
func ParseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DayLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day %q: expected YYYY-MM-DD", s)
	}
	return Day(t), nil
}

// Window is an inclusive range of calendar days.
type Window struct {
	start time.Time
	end   time.Time
}

func NewWindow(start, end time.Time) (Window, error) {
	w := Window{start: Day(start), end: Day(end)}
	if err := w.Validate(); err != nil {
		return Window{}, err
	}
	return w, nil
}

// MustWindow is NewWindow for literals in tests and fixed schedules.
func MustWindow(start, end time.Time) Window {
	w, err := NewWindow(start, end)
	if err != nil {
		panic(err)
	}
	return w
}

func (w Window) Validate() error {
	if w.start.After(w.end) {
		return fmt.Errorf("%w (%s > %s)", ErrInvalidWindow, w.start.Format(DayLayout), w.end.Format(DayLayout))
	}
	return nil
}

func (w Window) Start() time.Time { return w.start }
func (w Window) End() time.Time   { return w.end }

// Len is the number of days in the window, both ends included.
func (w Window) Len() int {
	return daysBetween(w.start, w.end) + 1
}

// Offset returns the index of day within the window.
func (w Window) Offset(day time.Time) (int, bool) {
	day = Day(day)
	if day.Before(w.start) || day.After(w.end) {
		return 0, false
	}
	return daysBetween(w.start, day), true
}

func (w Window) Contains(day time.Time) bool {
	_, ok := w.Offset(day)
	return ok
}

// Overlaps reports whether [start, end] shares at least one day with w.
// Ranges touching the window on a single boundary day overlap.
func (w Window) Overlaps(start, end time.Time) bool {
	return !Day(start).After(w.end) && !Day(end).Before(w.start)
}

// Clip returns the part of [start, end] that lies inside w.
func (w Window) Clip(start, end time.Time) (Window, bool) {
	if !w.Overlaps(start, end) || Day(start).After(Day(end)) {
		return Window{}, false
	}
	c := Window{start: Day(start), end: Day(end)}
	if c.start.Before(w.start) {
		c.start = w.start
	}
	if c.end.After(w.end) {
		c.end = w.end
	}
	return c, true
}

// Days yields (offset, day) for every day of the window in order.
// The sequence can be ranged over any number of times.
func (w Window) Days() iter.Seq2[int, time.Time] {
	return func(yield func(int, time.Time) bool) {
		n := w.Len()
		for i := 0; i < n; i++ {
			if !yield(i, w.start.AddDate(0, 0, i)) {
				return
			}
		}
	}
}

func (w Window) String() string {
	return w.start.Format(DayLayout) + ".." + w.end.Format(DayLayout)
}

// daysBetween counts whole days from a to b. Both must be UTC midnights.
// Unix seconds keep long spans exact where time.Duration would saturate.
func daysBetween(a, b time.Time) int {
	return int((b.Unix() - a.Unix()) / 86400)
}
