package timeline

import "time"

// DayValue is one day of a timeline series.
type DayValue struct {
	Day   time.Time `json:"day"`
	Value int       `json:"value"`
}

// Timeline is the per-day ledger of one equipment item over a window.
// available[i] == stock - planned[i] holds for every offset i.
type Timeline struct {
	equipmentID int
	stock       int
	window      Window

	planned   []int
	available []int
}

func New(equipmentID, stock int, window Window) *Timeline {
	n := window.Len()
	t := &Timeline{
		equipmentID: equipmentID,
		stock:       stock,
		window:      window,
		planned:     make([]int, n),
		available:   make([]int, n),
	}
	for i := range t.available {
		t.available[i] = stock
	}
	return t
}

func (t *Timeline) EquipmentID() int { return t.equipmentID }
func (t *Timeline) Stock() int       { return t.stock }
func (t *Timeline) Window() Window   { return t.window }

// AddDateQuantity books quantity on day. Days outside the window are ignored.
func (t *Timeline) AddDateQuantity(day time.Time, quantity int) {
	i, ok := t.window.Offset(day)
	if !ok {
		return
	}
	t.planned[i] += quantity
	t.available[i] -= quantity
}

func (t *Timeline) AvailableOn(day time.Time) (int, bool) {
	i, ok := t.window.Offset(day)
	if !ok {
		return 0, false
	}
	return t.available[i], true
}

func (t *Timeline) PlannedOn(day time.Time) (int, bool) {
	i, ok := t.window.Offset(day)
	if !ok {
		return 0, false
	}
	return t.planned[i], true
}

// Availabilities returns the remaining quantity for every day of the window.
func (t *Timeline) Availabilities() []DayValue {
	return t.series(t.available, nil)
}

func (t *Timeline) Planned() []DayValue {
	return t.series(t.planned, nil)
}

// Shortages returns only the days where availability is negative.
func (t *Timeline) Shortages() []DayValue {
	return t.series(t.available, func(v int) bool { return v < 0 })
}

func (t *Timeline) series(values []int, keep func(int) bool) []DayValue {
	out := make([]DayValue, 0, len(values))
	for i, day := range t.window.Days() {
		if keep != nil && !keep(values[i]) {
			continue
		}
		out = append(out, DayValue{Day: day, Value: values[i]})
	}
	return out
}
