package sqlite_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/workpulse/workpulse/internal/domain"
	"github.com/workpulse/workpulse/internal/repository/sqlite"
)

func insertScreenshot(t *testing.T, repo *sqlite.ScreenshotRepository, s domain.ScreenshotRecord) {
	t.Helper()
	if s.ID == "" {
		s.ID = domain.NewID("scr")
	}
	if err := repo.Insert(context.Background(), &s); err != nil {
		t.Fatalf("Insert screenshot: %v", err)
	}
}

func TestScreenshotRepository_List_RangeOnStringTimestamp(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewScreenshotRepository(db)

	for _, ts := range []int64{1_700_000_001_000, 1_700_000_002_000, 1_700_000_003_000} {
		insertScreenshot(t, repo, domain.ScreenshotRecord{
			EmployeeID:          "emp-1",
			TimestampTranslated: fmt.Sprintf("%d", ts),
		})
	}

	records, err := repo.List(context.Background(), domain.ScreenshotFilter{
		Start: 1_700_000_001_500,
		End:   1_700_000_003_000,
		Limit: 10,
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records in range, got %d", len(records))
	}
	if records[0].TimestampTranslated != "1700000002000" {
		t.Fatalf("unexpected first record timestamp %s", records[0].TimestampTranslated)
	}
}

func TestScreenshotRepository_List_INFilters(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewScreenshotRepository(db)

	insertScreenshot(t, repo, domain.ScreenshotRecord{TaskID: "task-1", ProjectID: "proj-1", ShiftID: "shift-1", TimestampTranslated: "1000"})
	insertScreenshot(t, repo, domain.ScreenshotRecord{TaskID: "task-2", ProjectID: "proj-1", ShiftID: "shift-1", TimestampTranslated: "2000"})
	insertScreenshot(t, repo, domain.ScreenshotRecord{TaskID: "task-1", ProjectID: "proj-2", ShiftID: "shift-2", TimestampTranslated: "3000"})

	records, err := repo.List(context.Background(), domain.ScreenshotFilter{
		Start:   1000,
		End:     9000,
		TaskIDs: []string{"task-1"},
		Limit:   10,
	})
	if err != nil {
		t.Fatalf("List by task: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 task-1 records, got %d", len(records))
	}

	records, err = repo.List(context.Background(), domain.ScreenshotFilter{
		Start:      1000,
		End:        9000,
		TaskIDs:    []string{"task-1"},
		ProjectIDs: []string{"proj-1", "proj-3"},
		Limit:      10,
	})
	if err != nil {
		t.Fatalf("List by task+project: %v", err)
	}
	if len(records) != 1 || records[0].TimestampTranslated != "1000" {
		t.Fatalf("expected single record at 1000, got %+v", records)
	}
}

func TestScreenshotRepository_List_SortAndCursor(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewScreenshotRepository(db)

	names := []string{"delta", "alpha", "charlie", "bravo"}
	for i, name := range names {
		insertScreenshot(t, repo, domain.ScreenshotRecord{
			Name:                name,
			TimestampTranslated: fmt.Sprintf("%d", 1000+i),
		})
	}

	page1, err := repo.List(context.Background(), domain.ScreenshotFilter{
		Start:     1000,
		End:       2000,
		SortField: "name",
		Limit:     2,
	})
	if err != nil {
		t.Fatalf("List page 1: %v", err)
	}
	if len(page1) != 2 || page1[0].Name != "alpha" || page1[1].Name != "bravo" {
		t.Fatalf("unexpected page 1: %+v", page1)
	}

	page2, err := repo.List(context.Background(), domain.ScreenshotFilter{
		Start:     1000,
		End:       2000,
		SortField: "name",
		After:     page1[1].Name,
		Limit:     2,
	})
	if err != nil {
		t.Fatalf("List page 2: %v", err)
	}
	if len(page2) != 2 || page2[0].Name != "charlie" || page2[1].Name != "delta" {
		t.Fatalf("unexpected page 2: %+v", page2)
	}

	// Strictly greater: the cursor row itself never reappears.
	page3, err := repo.List(context.Background(), domain.ScreenshotFilter{
		Start:     1000,
		End:       2000,
		SortField: "name",
		After:     page2[1].Name,
		Limit:     2,
	})
	if err != nil {
		t.Fatalf("List page 3: %v", err)
	}
	if len(page3) != 0 {
		t.Fatalf("expected empty final page, got %+v", page3)
	}
}

func TestScreenshotRepository_List_UnknownSortFieldFallsBack(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewScreenshotRepository(db)

	insertScreenshot(t, repo, domain.ScreenshotRecord{TimestampTranslated: "2000"})
	insertScreenshot(t, repo, domain.ScreenshotRecord{TimestampTranslated: "1000"})

	records, err := repo.List(context.Background(), domain.ScreenshotFilter{
		Start:     0,
		End:       9000,
		SortField: "drop table screenshots",
		Limit:     10,
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 2 || records[0].TimestampTranslated != "1000" {
		t.Fatalf("expected timestamp ordering fallback, got %+v", records)
	}
}
