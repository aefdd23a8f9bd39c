package db

import (
	"context"
	"fmt"
	"time"

	"equipment_availability/availability"
	"equipment_availability/models"
	"equipment_availability/timeline"
)

// Plannings

type CreatePlanningInput struct {
	EquipmentID int
	Start       time.Time
	End         time.Time
	Quantity    int
	Note        string
}

// CreatePlanning stores a reservation. Overbooking is allowed; shortages are
// reported, not prevented.
func (r *Repo) CreatePlanning(ctx context.Context, in CreatePlanningInput) (*models.Planning, error) {
	row := timeline.Reservation{
		EquipmentID: in.EquipmentID,
		Start:       timeline.Day(in.Start),
		End:         timeline.Day(in.End),
		Quantity:    in.Quantity,
	}
	if err := row.Validate(); err != nil {
		return nil, err
	}
	if _, err := r.FindEquipmentByID(ctx, in.EquipmentID); err != nil {
		return nil, err
	}
	p := &models.Planning{
		EquipmentID: row.EquipmentID,
		StartDate:   row.Start,
		EndDate:     row.End,
		Quantity:    row.Quantity,
		Note:        in.Note,
	}
	if err := r.DB.WithContext(ctx).Create(p).Error; err != nil {
		return nil, fmt.Errorf("insert planning: %w", err)
	}
	return p, nil
}

// ListPlannings returns the plannings overlapping w; equipmentID 0 means all.
func (r *Repo) ListPlannings(ctx context.Context, w timeline.Window, equipmentID int) ([]models.Planning, error) {
	q := r.DB.WithContext(ctx).Model(&models.Planning{}).
		Where("start_date <= ? AND end_date >= ?", w.End(), w.Start())
	if equipmentID != 0 {
		q = q.Where("equipment_id = ?", equipmentID)
	}
	var ps []models.Planning
	if err := q.Order("equipment_id ASC, start_date ASC, end_date ASC").Find(&ps).Error; err != nil {
		return nil, err
	}
	return ps, nil
}

// Reservation feed

var _ availability.ReservationSource = (*Repo)(nil)

type reservationRow struct {
	EquipmentID int
	StartDate   time.Time
	EndDate     time.Time
	Quantity    int
	Stock       *int // NULL 表示设备表里没有这条记录
}

func (r *Repo) EquipmentCatalog(ctx context.Context) (map[int]availability.Equipment, error) {
	var items []models.Equipment
	if err := r.DB.WithContext(ctx).Find(&items).Error; err != nil {
		return nil, err
	}
	out := make(map[int]availability.Equipment, len(items))
	for _, it := range items {
		out[it.ID] = availability.Equipment{ID: it.ID, Name: it.Name, Stock: it.Stock}
	}
	return out, nil
}

func (r *Repo) ReservationsForEquipment(ctx context.Context, equipmentID int, w timeline.Window) ([]timeline.Reservation, error) {
	return r.reservations(ctx, w, equipmentID)
}

func (r *Repo) AllReservations(ctx context.Context, w timeline.Window) ([]timeline.Reservation, error) {
	return r.reservations(ctx, w, 0)
}

// reservations joins plannings overlapping w with their equipment stock.
// start_date <= w.end AND end_date >= w.start also keeps rows that touch a
// window boundary on a single day.
func (r *Repo) reservations(ctx context.Context, w timeline.Window, equipmentID int) ([]timeline.Reservation, error) {
	qry := r.DB.WithContext(ctx).
		Table(models.PlanningTable+" p").
		Select("p.equipment_id, p.start_date, p.end_date, p.quantity, e.stock").
		Joins("LEFT JOIN "+models.EquipmentTable+" e ON e.id = p.equipment_id").
		Where("p.start_date <= ? AND p.end_date >= ?", w.End(), w.Start())
	if equipmentID != 0 {
		qry = qry.Where("p.equipment_id = ?", equipmentID)
	}

	var rows []reservationRow
	if err := qry.
		Order("p.equipment_id ASC, p.start_date ASC, p.end_date ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]timeline.Reservation, 0, len(rows))
	for _, row := range rows {
		if row.Stock == nil {
			return nil, &availability.MissingStockError{EquipmentID: row.EquipmentID}
		}
		out = append(out, timeline.Reservation{
			EquipmentID: row.EquipmentID,
			Start:       timeline.Day(row.StartDate),
			End:         timeline.Day(row.EndDate),
			Quantity:    row.Quantity,
			Stock:       *row.Stock,
		})
	}
	return out, nil
}
