package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/workpulse/workpulse/internal/domain"
	"github.com/workpulse/workpulse/internal/repository/sqlite"
)

// Verify that *sqlite.DB implements domain.Database at compile time.
var _ domain.Database = (*sqlite.DB)(nil)

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := newTestDB(t)
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
}

func newSession(employeeID string, startTime int64, status string) *domain.TimeSession {
	return &domain.TimeSession{
		ID:         domain.NewID("ts"),
		EmployeeID: employeeID,
		TaskID:     "task-1",
		ProjectID:  "proj-1",
		StartTime:  startTime,
		Status:     status,
	}
}

func TestSessionRepository_CreateAndGetActive(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewSessionRepository(db)
	ctx := context.Background()

	session := newSession("emp-1", time.Now().UnixMilli(), domain.SessionStatusActive)
	if err := repo.Create(ctx, session); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if session.CreatedAt == 0 {
		t.Fatal("expected CreatedAt to be set")
	}

	found, err := repo.GetActive(ctx, "emp-1")
	if err != nil {
		t.Fatalf("GetActive: %v", err)
	}
	if found.ID != session.ID {
		t.Fatalf("expected session %s, got %s", session.ID, found.ID)
	}
	if found.EndTime != nil {
		t.Fatal("expected nil EndTime on active session")
	}
}

func TestSessionRepository_GetActive_None(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewSessionRepository(db)

	_, err := repo.GetActive(context.Background(), "emp-none")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSessionRepository_Create_SecondActiveRejected(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewSessionRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, newSession("emp-1", 1000, domain.SessionStatusActive)); err != nil {
		t.Fatalf("Create first: %v", err)
	}

	err := repo.Create(ctx, newSession("emp-1", 2000, domain.SessionStatusActive))
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict for second active session, got %v", err)
	}

	// Completed sessions are not constrained, and other employees are free
	// to have their own active session.
	if err := repo.Create(ctx, newSession("emp-1", 3000, domain.SessionStatusCompleted)); err != nil {
		t.Fatalf("Create completed: %v", err)
	}
	if err := repo.Create(ctx, newSession("emp-2", 4000, domain.SessionStatusActive)); err != nil {
		t.Fatalf("Create for emp-2: %v", err)
	}
}

func TestSessionRepository_Create_AllowedAfterStop(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewSessionRepository(db)
	ctx := context.Background()

	first := newSession("emp-1", 1000, domain.SessionStatusActive)
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create: %v", err)
	}

	endTime := int64(2000)
	first.EndTime = &endTime
	first.Duration = 1000
	first.Status = domain.SessionStatusCompleted
	if err := repo.Update(ctx, first); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if err := repo.Create(ctx, newSession("emp-1", 3000, domain.SessionStatusActive)); err != nil {
		t.Fatalf("Create after stop: %v", err)
	}
}

func TestSessionRepository_Update_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewSessionRepository(db)
	ctx := context.Background()

	session := newSession("emp-1", 1000, domain.SessionStatusActive)
	if err := repo.Create(ctx, session); err != nil {
		t.Fatalf("Create: %v", err)
	}

	endTime := int64(5000)
	session.EndTime = &endTime
	session.Duration = 4000
	session.Status = domain.SessionStatusCompleted
	session.ScreenshotCount = 7
	session.Synced = true
	session.ActivityData = domain.ActivityData{
		MouseClicks:       120,
		KeyPresses:        450,
		ActiveWindows:     []string{"editor", "browser"},
		ProductivityScore: 0.85,
	}
	if err := repo.Update(ctx, session); err != nil {
		t.Fatalf("Update: %v", err)
	}

	found, err := repo.GetByID(ctx, session.ID, "emp-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if found.EndTime == nil || *found.EndTime != 5000 {
		t.Fatalf("expected endTime 5000, got %v", found.EndTime)
	}
	if found.Duration != 4000 {
		t.Fatalf("expected duration 4000, got %d", found.Duration)
	}
	if !found.Synced {
		t.Fatal("expected synced to be true")
	}
	if found.ActivityData.MouseClicks != 120 || found.ActivityData.KeyPresses != 450 {
		t.Fatalf("unexpected activity data: %+v", found.ActivityData)
	}
	if len(found.ActivityData.ActiveWindows) != 2 {
		t.Fatalf("expected 2 active windows, got %v", found.ActivityData.ActiveWindows)
	}
	if found.ActivityData.ProductivityScore != 0.85 {
		t.Fatalf("expected productivity 0.85, got %f", found.ActivityData.ProductivityScore)
	}
}

func TestSessionRepository_Update_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewSessionRepository(db)

	missing := newSession("emp-1", 1000, domain.SessionStatusCompleted)
	err := repo.Update(context.Background(), missing)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSessionRepository_GetByID_WrongEmployee(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewSessionRepository(db)
	ctx := context.Background()

	session := newSession("emp-1", 1000, domain.SessionStatusActive)
	if err := repo.Create(ctx, session); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := repo.GetByID(ctx, session.ID, "emp-2")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other employee, got %v", err)
	}
}

func seedSessionHistory(t *testing.T, repo *sqlite.SessionRepository) {
	t.Helper()
	ctx := context.Background()
	fixtures := []struct {
		startTime int64
		taskID    string
		projectID string
	}{
		{1000, "task-a", "proj-1"},
		{2000, "task-b", "proj-1"},
		{3000, "task-a", "proj-2"},
		{4000, "task-c", "proj-2"},
		{5000, "task-a", "proj-1"},
	}
	for _, f := range fixtures {
		s := newSession("emp-1", f.startTime, domain.SessionStatusCompleted)
		s.TaskID = f.taskID
		s.ProjectID = f.projectID
		if err := repo.Create(ctx, s); err != nil {
			t.Fatalf("seed session: %v", err)
		}
	}
}

func TestSessionRepository_List_OrderAndPagination(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewSessionRepository(db)
	seedSessionHistory(t, repo)
	ctx := context.Background()

	sessions, err := repo.List(ctx, "emp-1", domain.SessionFilter{Limit: 2, Offset: 1})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	// Descending by start time: page starts after the most recent (5000).
	if sessions[0].StartTime != 4000 || sessions[1].StartTime != 3000 {
		t.Fatalf("unexpected page order: %d, %d", sessions[0].StartTime, sessions[1].StartTime)
	}

	total, err := repo.Count(ctx, "emp-1", domain.SessionFilter{Limit: 2, Offset: 1})
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if total != 5 {
		t.Fatalf("expected total 5 ignoring limit/offset, got %d", total)
	}
}

func TestSessionRepository_List_Filters(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewSessionRepository(db)
	seedSessionHistory(t, repo)
	ctx := context.Background()

	startDate, endDate := int64(2000), int64(4000)
	sessions, err := repo.List(ctx, "emp-1", domain.SessionFilter{
		StartDate: &startDate,
		EndDate:   &endDate,
		Limit:     10,
	})
	if err != nil {
		t.Fatalf("List with range: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions in [2000,4000], got %d", len(sessions))
	}

	sessions, err = repo.List(ctx, "emp-1", domain.SessionFilter{TaskID: "task-a", Limit: 10})
	if err != nil {
		t.Fatalf("List by task: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("expected 3 task-a sessions, got %d", len(sessions))
	}

	sessions, err = repo.List(ctx, "emp-1", domain.SessionFilter{ProjectID: "proj-2", TaskID: "task-a", Limit: 10})
	if err != nil {
		t.Fatalf("List by task+project: %v", err)
	}
	if len(sessions) != 1 || sessions[0].StartTime != 3000 {
		t.Fatalf("expected single session at 3000, got %+v", sessions)
	}
}

func TestSessionRepository_ListCompletedSince(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewSessionRepository(db)
	seedSessionHistory(t, repo)
	ctx := context.Background()

	// An active session must not appear in completed listings.
	if err := repo.Create(ctx, newSession("emp-1", 6000, domain.SessionStatusActive)); err != nil {
		t.Fatalf("Create active: %v", err)
	}

	sessions, err := repo.ListCompletedSince(ctx, "emp-1", 3000)
	if err != nil {
		t.Fatalf("ListCompletedSince: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("expected 3 completed sessions since 3000, got %d", len(sessions))
	}
	for _, s := range sessions {
		if s.Status != domain.SessionStatusCompleted {
			t.Fatalf("expected only completed sessions, got %s", s.Status)
		}
	}
}
