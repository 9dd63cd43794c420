package sqlite_test

import (
	"context"
	"testing"

	"github.com/workpulse/workpulse/internal/domain"
	"github.com/workpulse/workpulse/internal/repository/sqlite"
)

func insertWindow(t *testing.T, repo *sqlite.WindowRepository, w domain.Window) {
	t.Helper()
	if w.ID == "" {
		w.ID = domain.NewID("win")
	}
	if w.Type == "" {
		w.Type = domain.WindowTypeTracked
	}
	if err := repo.Insert(context.Background(), &w); err != nil {
		t.Fatalf("Insert window: %v", err)
	}
}

func TestWindowRepository_Insert_DerivesTranslatedTimes(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewWindowRepository(db)

	w := domain.Window{
		ID:             "win-1",
		Type:           domain.WindowTypeTracked,
		Start:          30_000_000,
		End:            33_600_000,
		TimezoneOffset: 19_800_000, // +05:30
		EmployeeID:     "emp-1",
		ProjectID:      "proj-1",
		// Caller-supplied translated values must be ignored.
		StartTranslated: 1,
		EndTranslated:   2,
	}
	if err := repo.Insert(context.Background(), &w); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	windows, err := repo.List(context.Background(), domain.WindowFilter{Start: 0, End: 40_000_000})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(windows) != 1 {
		t.Fatalf("expected 1 window, got %d", len(windows))
	}
	if got := windows[0].StartTranslated; got != 10_200_000 {
		t.Fatalf("expected startTranslated 10200000, got %d", got)
	}
	if got := windows[0].EndTranslated; got != 13_800_000 {
		t.Fatalf("expected endTranslated 13800000, got %d", got)
	}
}

func TestWindowRepository_List_RangeAndIDFilters(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewWindowRepository(db)

	insertWindow(t, repo, domain.Window{Start: 1000, End: 2000, EmployeeID: "emp-1", ProjectID: "proj-1"})
	insertWindow(t, repo, domain.Window{Start: 3000, End: 4000, EmployeeID: "emp-2", ProjectID: "proj-1"})
	insertWindow(t, repo, domain.Window{Start: 5000, End: 6000, EmployeeID: "emp-1", ProjectID: "proj-2"})
	insertWindow(t, repo, domain.Window{Start: 9000, End: 9500, EmployeeID: "emp-1", ProjectID: "proj-1"})

	ctx := context.Background()

	windows, err := repo.List(ctx, domain.WindowFilter{Start: 1000, End: 5000})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(windows) != 3 {
		t.Fatalf("expected 3 windows starting in [1000,5000], got %d", len(windows))
	}
	// Ascending by start.
	if windows[0].Start != 1000 || windows[2].Start != 5000 {
		t.Fatalf("unexpected order: %d .. %d", windows[0].Start, windows[2].Start)
	}

	windows, err = repo.List(ctx, domain.WindowFilter{
		Start:       0,
		End:         10_000,
		EmployeeIDs: []string{"emp-1"},
		ProjectIDs:  []string{"proj-1"},
	})
	if err != nil {
		t.Fatalf("List filtered: %v", err)
	}
	if len(windows) != 2 {
		t.Fatalf("expected 2 emp-1/proj-1 windows, got %d", len(windows))
	}
}

func TestWindowRepository_ProjectTime_Aggregation(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewWindowRepository(db)

	hour := int64(3_600_000)
	// proj-1: one hour + two hours at payRate 10, billRate 20.
	insertWindow(t, repo, domain.Window{
		Start: 0, End: hour, ProjectID: "proj-1", EmployeeID: "emp-1",
		PayRate: 10, BillRate: 20,
	})
	insertWindow(t, repo, domain.Window{
		Start: hour, End: 3 * hour, ProjectID: "proj-1", EmployeeID: "emp-1",
		PayRate: 10, BillRate: 20,
	})
	// proj-2: half an hour at payRate 40.
	insertWindow(t, repo, domain.Window{
		Start: 0, End: hour / 2, ProjectID: "proj-2", EmployeeID: "emp-1",
		PayRate: 40, BillRate: 60,
	})

	aggregates, err := repo.ProjectTime(context.Background(), domain.WindowFilter{Start: 0, End: 10 * hour})
	if err != nil {
		t.Fatalf("ProjectTime: %v", err)
	}
	if len(aggregates) != 2 {
		t.Fatalf("expected 2 project aggregates, got %d", len(aggregates))
	}

	byProject := map[string]domain.ProjectTimeAggregate{}
	for _, a := range aggregates {
		byProject[a.ProjectID] = a
	}

	p1 := byProject["proj-1"]
	if p1.Time != 3*hour {
		t.Fatalf("expected proj-1 time %d, got %d", 3*hour, p1.Time)
	}
	if p1.Costs != 30 {
		t.Fatalf("expected proj-1 costs 30, got %f", p1.Costs)
	}
	if p1.Income != 60 {
		t.Fatalf("expected proj-1 income 60, got %f", p1.Income)
	}

	p2 := byProject["proj-2"]
	if p2.Time != hour/2 {
		t.Fatalf("expected proj-2 time %d, got %d", hour/2, p2.Time)
	}
	if p2.Costs != 20 {
		t.Fatalf("expected proj-2 costs 20, got %f", p2.Costs)
	}
}

func TestWindowRepository_ProjectTime_EmptyRange(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewWindowRepository(db)

	insertWindow(t, repo, domain.Window{Start: 5000, End: 6000, ProjectID: "proj-1", EmployeeID: "emp-1"})

	aggregates, err := repo.ProjectTime(context.Background(), domain.WindowFilter{Start: 0, End: 1000})
	if err != nil {
		t.Fatalf("ProjectTime: %v", err)
	}
	if len(aggregates) != 0 {
		t.Fatalf("expected no aggregates outside range, got %d", len(aggregates))
	}
}
