package availability

import (
	"context"
	"errors"
	"strings"
	"testing"

	"equipment_availability/timeline"
)

func window(t *testing.T, start, end string) timeline.Window {
	t.Helper()
	s, err := timeline.ParseDay(start)
	if err != nil {
		t.Fatal(err)
	}
	e, err := timeline.ParseDay(end)
	if err != nil {
		t.Fatal(err)
	}
	w, err := timeline.NewWindow(s, e)
	if err != nil {
		t.Fatal(err)
	}
	return w
}

// scenario3 leaves only the first day with capacity 5; the rest are empty.
func scenario3() *MemorySource {
	src := NewMemorySource()
	src.AddEquipment(1, "tripod", 5)
	src.Plan(1, "2025-03-02", "2025-03-05", 5)
	return src
}

func TestBestDay_IsAvailable(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name     string
		src      func() *MemorySource
		quantity int
		want     bool
	}{
		{"scenario 3 best day suffices", scenario3, 4, true},
		{"scenario 3 above best day", scenario3, 6, false},
		{"exactly max", scenario3, 5, true},
		{
			name: "no plannings uses catalog stock",
			src: func() *MemorySource {
				src := NewMemorySource()
				src.AddEquipment(1, "tripod", 3)
				return src
			},
			quantity: 3,
			want:     true,
		},
		{
			name: "fully booked",
			src: func() *MemorySource {
				src := NewMemorySource()
				src.AddEquipment(1, "tripod", 2)
				src.Plan(1, "2025-02-20", "2025-03-10", 2)
				return src
			},
			quantity: 1,
			want:     false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewBestDay(tc.src())
			got, err := c.IsAvailable(ctx, 1, tc.quantity, window(t, "2025-03-01", "2025-03-05"))
			if err != nil {
				t.Fatalf("IsAvailable failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("Expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestEveryDay_IsAvailable(t *testing.T) {
	ctx := context.Background()
	c := NewEveryDay(scenario3())
	w := window(t, "2025-03-01", "2025-03-05")

	got, err := c.IsAvailable(ctx, 1, 4, w)
	if err != nil {
		t.Fatalf("IsAvailable failed: %v", err)
	}
	if got {
		t.Error("Expected every-day check to fail when days 2-5 are empty")
	}

	got, err = c.IsAvailable(ctx, 1, 5, window(t, "2025-03-01", "2025-03-01"))
	if err != nil {
		t.Fatalf("IsAvailable failed: %v", err)
	}
	if !got {
		t.Error("Expected single free day to satisfy every-day check")
	}
}

func TestIsAvailable_Errors(t *testing.T) {
	ctx := context.Background()
	w := window(t, "2025-03-01", "2025-03-05")

	t.Run("unknown equipment", func(t *testing.T) {
		_, err := NewBestDay(scenario3()).IsAvailable(ctx, 42, 1, w)
		if !errors.Is(err, ErrUnknownEquipment) {
			t.Fatalf("Expected ErrUnknownEquipment, got %v", err)
		}
	})

	t.Run("source failure passes through", func(t *testing.T) {
		boom := errors.New("connection refused")
		src := scenario3()
		src.Err = boom
		_, err := NewBestDay(src).IsAvailable(ctx, 1, 1, w)
		if !errors.Is(err, boom) {
			t.Fatalf("Expected source error, got %v", err)
		}
	})
}

func TestShortages_Scenario2(t *testing.T) {
	src := NewMemorySource()
	src.AddEquipment(7, "projector", 2)
	src.Plan(7, "2025-03-01", "2025-03-05", 3)

	got, err := NewBestDay(src).Shortages(context.Background(), window(t, "2025-03-01", "2025-03-05"))
	if err != nil {
		t.Fatalf("Shortages failed: %v", err)
	}
	if len(got) != 1 || got[7] != -1 {
		t.Errorf("Expected {7: -1}, got %v", got)
	}
}

func TestShortages_WorstDayPerEquipment(t *testing.T) {
	src := NewMemorySource()
	src.AddEquipment(1, "light", 3)
	src.AddEquipment(2, "mic", 1)
	src.AddEquipment(3, "cable", 10)
	src.Plan(1, "2025-03-01", "2025-03-02", 4)
	src.Plan(1, "2025-03-02", "2025-03-03", 2) // day 2: 3-6 = -3
	src.Plan(2, "2025-02-25", "2025-03-01", 2) // touches window start: -1
	src.Plan(3, "2025-03-01", "2025-03-05", 10)
	src.Plan(3, "2025-03-10", "2025-03-12", 50) // outside window

	for _, c := range []Checker{NewBestDay(src), NewEveryDay(src)} {
		t.Run(c.Strategy(), func(t *testing.T) {
			got, err := c.Shortages(context.Background(), window(t, "2025-03-01", "2025-03-05"))
			if err != nil {
				t.Fatalf("Shortages failed: %v", err)
			}
			want := map[int]int{1: -3, 2: -1}
			if len(got) != len(want) {
				t.Fatalf("Expected %v, got %v", want, got)
			}
			for id, v := range want {
				if got[id] != v {
					t.Errorf("equipment %d: expected %d, got %d", id, v, got[id])
				}
			}
		})
	}
}

func TestShortages_MissingStock(t *testing.T) {
	src := NewMemorySource()
	src.AddEquipment(1, "light", 3)
	src.Plan(5, "2025-03-01", "2025-03-02", 1)

	_, err := NewBestDay(src).Shortages(context.Background(), window(t, "2025-03-01", "2025-03-05"))
	if !errors.Is(err, ErrMissingStock) {
		t.Fatalf("Expected ErrMissingStock, got %v", err)
	}
	var mse *MissingStockError
	if !errors.As(err, &mse) || mse.EquipmentID != 5 {
		t.Errorf("Expected MissingStockError for equipment 5, got %v", err)
	}
}

func TestNew_Strategies(t *testing.T) {
	src := NewMemorySource()

	testCases := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"", StrategyBestDay, false},
		{StrategyBestDay, StrategyBestDay, false},
		{StrategyEveryDay, StrategyEveryDay, false},
		{"majority", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := New(tc.name, src)
			if tc.wantErr {
				if !errors.Is(err, ErrUnknownStrategy) {
					t.Fatalf("Expected ErrUnknownStrategy, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if c.Strategy() != tc.want {
				t.Errorf("Expected %s, got %s", tc.want, c.Strategy())
			}
		})
	}
}

func TestReport(t *testing.T) {
	src := NewMemorySource()
	src.AddEquipment(1, "tripod", 4)
	src.Plan(1, "2025-03-02", "2025-03-02", 1)
	src.Plan(1, "2025-03-03", "2025-03-03", 6)

	rep, err := Report(context.Background(), src, 1, window(t, "2025-03-01", "2025-03-03"))
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	if rep.Name != "tripod" || rep.Stock != 4 {
		t.Errorf("Unexpected header %+v", rep)
	}
	if len(rep.Days) != 3 {
		t.Fatalf("Expected 3 days, got %d", len(rep.Days))
	}
	wantAvail := []int{4, 3, -2}
	wantUtil := []string{"0", "0.25", "1.5"}
	for i, day := range rep.Days {
		if day.Available != wantAvail[i] {
			t.Errorf("day %d: expected available %d, got %d", i, wantAvail[i], day.Available)
		}
		if day.Utilization == nil || day.Utilization.String() != wantUtil[i] {
			t.Errorf("day %d: expected utilization %s, got %v", i, wantUtil[i], day.Utilization)
		}
	}
	if rep.Worst != -2 || rep.Shortages != 1 {
		t.Errorf("Expected worst -2 with 1 shortage day, got %d and %d", rep.Worst, rep.Shortages)
	}
}

func TestReport_ZeroStockHasNoUtilization(t *testing.T) {
	src := NewMemorySource()
	src.AddEquipment(1, "retired", 0)

	rep, err := Report(context.Background(), src, 1, window(t, "2025-03-01", "2025-03-01"))
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	if rep.Days[0].Utilization != nil {
		t.Errorf("Expected nil utilization, got %v", rep.Days[0].Utilization)
	}
}

// catalogCounter counts catalog reads and can rename equipment between them.
type catalogCounter struct {
	*MemorySource
	calls int
}

func (c *catalogCounter) EquipmentCatalog(ctx context.Context) (map[int]Equipment, error) {
	c.calls++
	cat, err := c.MemorySource.EquipmentCatalog(ctx)
	if err != nil {
		return nil, err
	}
	if eq, ok := cat[1]; ok && c.calls > 1 {
		eq.Name = "renamed"
		cat[1] = eq
	}
	return cat, nil
}

func TestReport_ReadsCatalogOnce(t *testing.T) {
	src := &catalogCounter{MemorySource: NewMemorySource()}
	src.AddEquipment(1, "tripod", 4)

	rep, err := Report(context.Background(), src, 1, window(t, "2025-03-01", "2025-03-02"))
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	if src.calls != 1 {
		t.Errorf("Expected 1 catalog read, got %d", src.calls)
	}
	if rep.Name != "tripod" || rep.Stock != 4 {
		t.Errorf("Expected name and stock from the same catalog read, got %q/%d", rep.Name, rep.Stock)
	}
}

func TestReport_WrapsCatalogError(t *testing.T) {
	src := NewMemorySource()
	src.Err = errors.New("connection reset")

	_, err := Report(context.Background(), src, 1, window(t, "2025-03-01", "2025-03-02"))
	if !errors.Is(err, src.Err) || !strings.HasPrefix(err.Error(), "fetch equipment catalog:") {
		t.Errorf("Expected wrapped catalog error, got %v", err)
	}
}
