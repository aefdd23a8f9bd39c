package availability

import (
	"cmp"
	"context"
	"slices"
	"time"

	"equipment_availability/timeline"
)

// MemorySource is an in-memory ReservationSource.
type MemorySource struct {
	Catalog      map[int]Equipment
	Reservations []timeline.Reservation
	// Err, when set, is returned by every call.
	Err error
}

var _ ReservationSource = (*MemorySource)(nil)

func NewMemorySource() *MemorySource {
	return &MemorySource{Catalog: make(map[int]Equipment)}
}

func (m *MemorySource) AddEquipment(id int, name string, stock int) {
	m.Catalog[id] = Equipment{ID: id, Name: name, Stock: stock}
}

// Plan records a reservation, stamping it with the catalog stock.
func (m *MemorySource) Plan(equipmentID int, start, end string, quantity int) {
	r := timeline.Reservation{
		EquipmentID: equipmentID,
		Start:       mustDay(start),
		End:         mustDay(end),
		Quantity:    quantity,
	}
	if eq, ok := m.Catalog[equipmentID]; ok {
		r.Stock = eq.Stock
	}
	m.Reservations = append(m.Reservations, r)
}

func (m *MemorySource) EquipmentCatalog(ctx context.Context) (map[int]Equipment, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make(map[int]Equipment, len(m.Catalog))
	for id, eq := range m.Catalog {
		out[id] = eq
	}
	return out, nil
}

func (m *MemorySource) ReservationsForEquipment(ctx context.Context, equipmentID int, w timeline.Window) ([]timeline.Reservation, error) {
	return m.filter(w, func(r timeline.Reservation) bool { return r.EquipmentID == equipmentID })
}

func (m *MemorySource) AllReservations(ctx context.Context, w timeline.Window) ([]timeline.Reservation, error) {
	return m.filter(w, nil)
}

func (m *MemorySource) filter(w timeline.Window, keep func(timeline.Reservation) bool) ([]timeline.Reservation, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []timeline.Reservation
	for _, r := range m.Reservations {
		if !w.Overlaps(r.Start, r.End) {
			continue
		}
		if keep != nil && !keep(r) {
			continue
		}
		out = append(out, r)
	}
	slices.SortStableFunc(out, func(a, b timeline.Reservation) int {
		return cmp.Or(
			cmp.Compare(a.EquipmentID, b.EquipmentID),
			a.Start.Compare(b.Start),
			a.End.Compare(b.End),
		)
	})
	return out, nil
}

func mustDay(s string) time.Time {
	t, err := timeline.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return t
}
