package availability

import (
	"context"
	"fmt"

	"equipment_availability/timeline"
)

const (
	StrategyBestDay  = "best_day"
	StrategyEveryDay = "every_day"
)

// Checker answers availability questions over fresh data on every call.
type Checker interface {
	// IsAvailable reports whether quantity can be served for equipmentID within w.
	IsAvailable(ctx context.Context, equipmentID, quantity int, w timeline.Window) (bool, error)
	// Shortages maps each equipment short on at least one day of w to its worst day.
	Shortages(ctx context.Context, w timeline.Window) (map[int]int, error)
	Strategy() string
}

// New returns the checker registered under strategy. An empty name selects best_day.
func New(strategy string, src ReservationSource) (Checker, error) {
	switch strategy {
	case "", StrategyBestDay:
		return NewBestDay(src), nil
	case StrategyEveryDay:
		return NewEveryDay(src), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
}

// BestDay treats a quantity as available when at least one day of the window
// has that much left. It does not require every day to satisfy the request.
type BestDay struct{ loader }

func NewBestDay(src ReservationSource) *BestDay { return &BestDay{loader{src: src}} }

func (c *BestDay) Strategy() string { return StrategyBestDay }

func (c *BestDay) IsAvailable(ctx context.Context, equipmentID, quantity int, w timeline.Window) (bool, error) {
	tl, _, err := c.equipmentTimeline(ctx, equipmentID, w)
	if err != nil {
		return false, err
	}
	return quantity <= maxValue(tl.Availabilities()), nil
}

func (c *BestDay) Shortages(ctx context.Context, w timeline.Window) (map[int]int, error) {
	return c.shortages(ctx, w)
}

// EveryDay requires the quantity to be left on each day of the window.
type EveryDay struct{ loader }

func NewEveryDay(src ReservationSource) *EveryDay { return &EveryDay{loader{src: src}} }

func (c *EveryDay) Strategy() string { return StrategyEveryDay }

func (c *EveryDay) IsAvailable(ctx context.Context, equipmentID, quantity int, w timeline.Window) (bool, error) {
	tl, _, err := c.equipmentTimeline(ctx, equipmentID, w)
	if err != nil {
		return false, err
	}
	return quantity <= minValue(tl.Availabilities()), nil
}

func (c *EveryDay) Shortages(ctx context.Context, w timeline.Window) (map[int]int, error) {
	return c.shortages(ctx, w)
}

// loader builds per-query registries from the reservation source.
type loader struct {
	src ReservationSource
}

// equipmentTimeline also returns the catalog entry the timeline was built from.
func (l loader) equipmentTimeline(ctx context.Context, equipmentID int, w timeline.Window) (*timeline.Timeline, Equipment, error) {
	if err := w.Validate(); err != nil {
		return nil, Equipment{}, err
	}
	catalog, err := l.src.EquipmentCatalog(ctx)
	if err != nil {
		return nil, Equipment{}, fmt.Errorf("fetch equipment catalog: %w", err)
	}
	eq, ok := catalog[equipmentID]
	if !ok {
		return nil, Equipment{}, fmt.Errorf("%w: %d", ErrUnknownEquipment, equipmentID)
	}
	rows, err := l.src.ReservationsForEquipment(ctx, equipmentID, w)
	if err != nil {
		return nil, Equipment{}, fmt.Errorf("fetch reservations for equipment %d: %w", equipmentID, err)
	}
	reg, err := load(rows, catalog, w)
	if err != nil {
		return nil, Equipment{}, err
	}
	if tl, ok := reg.Timeline(equipmentID); ok {
		return tl, eq, nil
	}
	// Nothing planned in the window: full stock every day.
	return timeline.New(equipmentID, eq.Stock, w), eq, nil
}

func (l loader) shortages(ctx context.Context, w timeline.Window) (map[int]int, error) {
	reg, err := l.registry(ctx, w)
	if err != nil {
		return nil, err
	}
	out := make(map[int]int)
	for id, tl := range reg.Timelines() {
		days := tl.Shortages()
		if len(days) == 0 {
			continue
		}
		out[id] = minValue(days)
	}
	return out, nil
}

// registry loads every overlapping reservation of the catalog.
func (l loader) registry(ctx context.Context, w timeline.Window) (*timeline.Registry, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	catalog, err := l.src.EquipmentCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch equipment catalog: %w", err)
	}
	rows, err := l.src.AllReservations(ctx, w)
	if err != nil {
		return nil, fmt.Errorf("fetch reservations: %w", err)
	}
	return load(rows, catalog, w)
}

func load(rows []timeline.Reservation, catalog map[int]Equipment, w timeline.Window) (*timeline.Registry, error) {
	for _, row := range rows {
		if _, ok := catalog[row.EquipmentID]; !ok {
			return nil, &MissingStockError{EquipmentID: row.EquipmentID}
		}
	}
	reg := timeline.NewRegistry()
	if err := reg.Load(rows, w); err != nil {
		return nil, err
	}
	return reg, nil
}

func maxValue(series []timeline.DayValue) int {
	m := series[0].Value
	for _, dv := range series[1:] {
		m = max(m, dv.Value)
	}
	return m
}

func minValue(series []timeline.DayValue) int {
	m := series[0].Value
	for _, dv := range series[1:] {
		m = min(m, dv.Value)
	}
	return m
}
