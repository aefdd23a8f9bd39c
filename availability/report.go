package availability

import (
	"context"
	"time"

	"equipment_availability/timeline"

	"github.com/shopspring/decimal"
)

// ReportDay is one row of a TimelineReport.
type ReportDay struct {
	Day       time.Time `json:"day"`
	Planned   int       `json:"planned"`
	Available int       `json:"available"`
	// Utilization is planned/stock, nil when the equipment has no stock.
	Utilization *decimal.Decimal `json:"utilization"`
}

type TimelineReport struct {
	EquipmentID int         `json:"equipmentId"`
	Name        string      `json:"name"`
	Stock       int         `json:"stock"`
	Start       time.Time   `json:"start"`
	End         time.Time   `json:"end"`
	Days        []ReportDay `json:"days"`
	// Worst is the lowest availability of the window.
	Worst     int `json:"worst"`
	Shortages int `json:"shortageDays"`
}

// Report builds the day-by-day ledger of one equipment item over w.
func Report(ctx context.Context, src ReservationSource, equipmentID int, w timeline.Window) (TimelineReport, error) {
	l := loader{src: src}
	tl, eq, err := l.equipmentTimeline(ctx, equipmentID, w)
	if err != nil {
		return TimelineReport{}, err
	}

	avail := tl.Availabilities()
	planned := tl.Planned()
	rep := TimelineReport{
		EquipmentID: equipmentID,
		Name:        eq.Name,
		Stock:       tl.Stock(),
		Start:       w.Start(),
		End:         w.End(),
		Days:        make([]ReportDay, 0, len(avail)),
		Worst:       minValue(avail),
		Shortages:   len(tl.Shortages()),
	}
	for i, a := range avail {
		rep.Days = append(rep.Days, ReportDay{
			Day:         a.Day,
			Planned:     planned[i].Value,
			Available:   a.Value,
			Utilization: utilization(planned[i].Value, tl.Stock()),
		})
	}
	return rep, nil
}

func utilization(planned, stock int) *decimal.Decimal {
	if stock == 0 {
		return nil
	}
	u := decimal.NewFromInt(int64(planned)).DivRound(decimal.NewFromInt(int64(stock)), 4)
	return &u
}
