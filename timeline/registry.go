package timeline

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

var ErrInvalidReservation = errors.New("invalid reservation")

// Reservation is one planning row as delivered by the reservation feed.
// Stock is the equipment's total capacity, carried on the row by the join.
type Reservation struct {
	EquipmentID int       `json:"equipmentId"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Quantity    int       `json:"quantity"`
	Stock       int       `json:"stock"`
}

func (r Reservation) Validate() error {
	if Day(r.Start).After(Day(r.End)) {
		return fmt.Errorf("%w: equipment %d starts %s after it ends %s",
			ErrInvalidReservation, r.EquipmentID, r.Start.Format(DayLayout), r.End.Format(DayLayout))
	}
	if r.Quantity <= 0 {
		return fmt.Errorf("%w: equipment %d quantity must be positive, got %d",
			ErrInvalidReservation, r.EquipmentID, r.Quantity)
	}
	return nil
}

// Registry holds one Timeline per equipment for the duration of a single query.
type Registry struct {
	timelines map[int]*Timeline
}

func NewRegistry() *Registry {
	return &Registry{timelines: make(map[int]*Timeline)}
}

// CreateOrGet returns the timeline for equipmentID, creating it when absent.
// An existing timeline keeps the stock and window it was created with.
func (r *Registry) CreateOrGet(equipmentID, stock int, window Window) (*Timeline, bool) {
	if t, ok := r.timelines[equipmentID]; ok {
		return t, false
	}
	t := New(equipmentID, stock, window)
	r.timelines[equipmentID] = t
	return t, true
}

func (r *Registry) Add(equipmentID, stock int, window Window) {
	r.CreateOrGet(equipmentID, stock, window)
}

func (r *Registry) Contains(equipmentID int) bool {
	_, ok := r.timelines[equipmentID]
	return ok
}

func (r *Registry) Timeline(equipmentID int) (*Timeline, bool) {
	t, ok := r.timelines[equipmentID]
	return t, ok
}

func (r *Registry) Timelines() map[int]*Timeline {
	return r.timelines
}

// IDs returns the registered equipment ids in ascending order.
func (r *Registry) IDs() []int {
	ids := make([]int, 0, len(r.timelines))
	for id := range r.timelines {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Load books every row onto its equipment's timeline, in the order given.
// Rows are not deduplicated. Each row is validated before anything is booked.
func (r *Registry) Load(rows []Reservation, window Window) error {
	if err := window.Validate(); err != nil {
		return err
	}
	for _, row := range rows {
		if err := row.Validate(); err != nil {
			return err
		}
	}
	for _, row := range rows {
		t, _ := r.CreateOrGet(row.EquipmentID, row.Stock, window)
		// Only the in-window days can change the ledger.
		span, ok := window.Clip(row.Start, row.End)
		if !ok {
			continue
		}
		for _, day := range span.Days() {
			t.AddDateQuantity(day, row.Quantity)
		}
	}
	return nil
}
