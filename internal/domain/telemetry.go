package domain

import "context"

// Window is an immutable telemetry record for a time-bounded slice of
// tracked activity, produced by the desktop agent's ingestion path. The
// translated fields are a pure function of Start/End/TimezoneOffset.
type Window struct {
	ID               string
	Type             string
	Start            int64
	End              int64
	TimezoneOffset   int64
	StartTranslated  int64
	EndTranslated    int64
	EmployeeID       string
	TeamID           string
	OrganizationID   string
	ProjectID        string
	TaskID           string
	ShiftID          string
	PayRate          float64
	BillRate         float64
	OvertimePayRate  float64
	OvertimeBillRate float64
	Paid             bool
	Billable         bool
	Overtime         bool
}

const (
	WindowTypeTracked = "tracked"
	WindowTypeManual  = "manual"
)

// WindowFilter selects windows with Start in [Start, End] (inclusive).
// Each non-empty id slice is an "any of" match on the corresponding field.
type WindowFilter struct {
	Start       int64
	End         int64
	EmployeeIDs []string
	TeamIDs     []string
	ProjectIDs  []string
	TaskIDs     []string
	ShiftIDs    []string
}

// ProjectTimeAggregate is the derived per-project rollup of window time and
// money. Computed per query, never persisted.
type ProjectTimeAggregate struct {
	ProjectID string
	Time      int64
	Costs     float64
	Income    float64
}

// ScreenshotRecord is the read model behind the paginated screenshot
// listing. TimestampTranslated is stored and compared as a string; the
// range scan relies on lexical ordering of same-length numeric strings.
type ScreenshotRecord struct {
	ID                  string
	Site                string
	Title               string
	Name                string
	Productivity        int
	EmployeeID          string
	TeamID              string
	OrganizationID      string
	AppID               string
	AppOrgID            string
	AppTeamID           string
	ShiftID             string
	ProjectID           string
	TaskID              string
	WindowID            string
	TimestampTranslated string
}

// ScreenshotFilter drives one page of the cursor scan. SortField is a
// storage field name (already mapped from the API sortBy); After, when
// non-nil, continues the scan with a strictly-greater comparison on it.
type ScreenshotFilter struct {
	Start      int64
	End        int64
	TaskIDs    []string
	ShiftIDs   []string
	ProjectIDs []string
	SortField  string
	After      any
	Limit      int
}

// Window and screenshot records are append-only: repositories expose no
// update or delete.
type WindowRepository interface {
	Insert(ctx context.Context, w *Window) error
	List(ctx context.Context, f WindowFilter) ([]Window, error)
	ProjectTime(ctx context.Context, f WindowFilter) ([]ProjectTimeAggregate, error)
}

type ScreenshotRepository interface {
	Insert(ctx context.Context, s *ScreenshotRecord) error
	List(ctx context.Context, f ScreenshotFilter) ([]ScreenshotRecord, error)
}
