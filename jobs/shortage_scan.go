package jobs

import (
	"context"
	"fmt"
	"time"

	"equipment_availability/availability"
	"equipment_availability/events"
	"equipment_availability/timeline"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// ShortageScan looks HorizonDays ahead for equipment that is overbooked.
type ShortageScan struct {
	Checker     availability.Checker
	Publisher   events.Publisher
	HorizonDays int
	// Now is overridable in tests.
	Now func() time.Time

	cron *cron.Cron
}

func NewShortageScan(c availability.Checker, p events.Publisher, horizonDays int) *ShortageScan {
	return &ShortageScan{Checker: c, Publisher: p, HorizonDays: horizonDays, Now: time.Now}
}

// Run performs one scan and publishes an alert when anything is short.
func (s *ShortageScan) Run(ctx context.Context) (map[int]int, error) {
	today := timeline.Day(s.Now())
	w, err := timeline.NewWindow(today, today.AddDate(0, 0, s.HorizonDays-1))
	if err != nil {
		return nil, err
	}

	shortages, err := s.Checker.Shortages(ctx, w)
	if err != nil {
		return nil, fmt.Errorf("shortage scan %s: %w", w, err)
	}
	if len(shortages) == 0 {
		log.Info().Str("window", w.String()).Msg("shortage scan: nothing short")
		return shortages, nil
	}

	ev := log.Warn().Str("window", w.String()).Int("equipment", len(shortages))
	for id, worst := range shortages {
		ev = ev.Int(fmt.Sprintf("equipment_%d", id), worst)
	}
	ev.Msg("shortage scan: equipment overbooked")

	alert := events.ShortageAlert{
		ID:         uuid.NewString(),
		Start:      w.Start().Format(timeline.DayLayout),
		End:        w.End().Format(timeline.DayLayout),
		Shortages:  shortages,
		DetectedAt: s.Now().UTC(),
	}
	if err := s.Publisher.PublishShortages(ctx, alert); err != nil {
		return shortages, err
	}
	return shortages, nil
}

// Start schedules Run on spec (standard 5-field cron syntax).
func (s *ShortageScan) Start(spec string) error {
	s.cron = cron.New()
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := s.Run(ctx); err != nil {
			log.Error().Err(err).Msg("shortage scan failed")
		}
	})
	if err != nil {
		return fmt.Errorf("schedule shortage scan %q: %w", spec, err)
	}
	s.cron.Start()
	log.Info().Str("cron", spec).Int("horizon_days", s.HorizonDays).Msg("shortage scan scheduled")
	return nil
}

func (s *ShortageScan) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}
