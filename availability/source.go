package availability

import (
	"context"

	"equipment_availability/timeline"
)

// Equipment is one catalog entry.
type Equipment struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

// ReservationSource is the read-only feed of catalog and planning rows.
//
// Reservation methods return only rows overlapping the window (a row
// touching a window boundary on a single day overlaps), ordered by
// equipment id, start, end. Equipment without overlapping rows is absent.
type ReservationSource interface {
	EquipmentCatalog(ctx context.Context) (map[int]Equipment, error)
	ReservationsForEquipment(ctx context.Context, equipmentID int, w timeline.Window) ([]timeline.Reservation, error)
	AllReservations(ctx context.Context, w timeline.Window) ([]timeline.Reservation, error)
}
