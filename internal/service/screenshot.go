package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/workpulse/workpulse/internal/domain"
)

// ScreenshotService answers the cursor-paginated, sortable screenshot
// listing over the telemetry store.
type ScreenshotService struct {
	screenshots domain.ScreenshotRepository
}

// NewScreenshotService creates a new ScreenshotService.
func NewScreenshotService(screenshots domain.ScreenshotRepository) *ScreenshotService {
	return &ScreenshotService{screenshots: screenshots}
}

// ScreenshotSortFields is the allow-list of accepted sortBy values.
var ScreenshotSortFields = []string{
	"productivity", "name", "user", "app", "title", "url",
	"shiftId", "projectId", "taskId", "WindowId", "appOrgId",
	"appTeamId", "employeeId", "teamId",
}

// sortFieldStorage maps API sortBy names to storage field names. Sort is
// always ascending on the mapped field.
var sortFieldStorage = map[string]string{
	"productivity": "productivity",
	"name":         "name",
	"user":         "employeeId",
	"app":          "appId",
	"title":        "title",
	"url":          "site",
	"shiftId":      "shiftId",
	"projectId":    "projectId",
	"taskId":       "taskId",
	"WindowId":     "windowId",
	"appOrgId":     "appOrgId",
	"appTeamId":    "appTeamId",
	"employeeId":   "employeeId",
	"teamId":       "teamId",
}

const defaultSortField = "timestampTranslated"

// ScreenshotQuery drives one page of the listing. Next, when non-empty, is
// an opaque continuation token from a previous page.
type ScreenshotQuery struct {
	Start      int64
	End        int64
	Timezone   string
	TaskIDs    []string
	ShiftIDs   []string
	ProjectIDs []string
	SortBy     string
	Limit      int
	Next       string
}

// ScreenshotPage is one page of results. Next is empty on the final page.
type ScreenshotPage struct {
	Screenshots []domain.ScreenshotRecord
	Next        string
	HasMore     bool
}

// nextToken is the decoded continuation state: the sort key of the last
// row already returned. Base64 JSON on the wire, no integrity signature.
type nextToken struct {
	SortBy    string `json:"sortBy"`
	LastValue any    `json:"lastValue"`
	Timestamp int64  `json:"timestamp"`
}

// Paginated returns one page of screenshots matching the query, continuing
// a previous scan when a next token is supplied. A fresh token is minted
// only when the page is full.
func (s *ScreenshotService) Paginated(ctx context.Context, q ScreenshotQuery) (*ScreenshotPage, error) {
	sortField := defaultSortField
	if mapped, ok := sortFieldStorage[q.SortBy]; ok {
		sortField = mapped
	}

	filter := domain.ScreenshotFilter{
		Start:      q.Start,
		End:        q.End,
		TaskIDs:    q.TaskIDs,
		ShiftIDs:   q.ShiftIDs,
		ProjectIDs: q.ProjectIDs,
		SortField:  sortField,
		Limit:      q.Limit,
	}

	if q.Next != "" {
		if token := decodeNextToken(q.Next); token != nil {
			filter.After = token.LastValue
		}
	}

	records, err := s.screenshots.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list screenshots: %w", err)
	}

	page := &ScreenshotPage{Screenshots: records}

	// Mint the continuation token from the stored (untranslated) sort key
	// so the next page's strictly-greater scan lines up with the store.
	if q.Limit > 0 && len(records) == q.Limit {
		last := records[len(records)-1]
		page.Next = encodeNextToken(nextToken{
			SortBy:    q.SortBy,
			LastValue: screenshotFieldValue(&last, sortField),
			Timestamp: time.Now().UnixMilli(),
		})
		page.HasMore = true
	}

	if q.Timezone != "" {
		offset := ParseTimezoneOffset(q.Timezone)
		for i := range page.Screenshots {
			ts, err := strconv.ParseInt(page.Screenshots[i].TimestampTranslated, 10, 64)
			if err != nil {
				continue
			}
			page.Screenshots[i].TimestampTranslated = strconv.FormatInt(ts-offset, 10)
		}
	}

	return page, nil
}

func encodeNextToken(token nextToken) string {
	data, err := json.Marshal(token)
	if err != nil {
		return ""
	}
	return base64.StdEncoding.EncodeToString(data)
}

// decodeNextToken parses a continuation token. Invalid tokens restart the
// scan from the beginning rather than failing the request.
func decodeNextToken(encoded string) *nextToken {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		slog.Warn("invalid next token", "error", err)
		return nil
	}
	var token nextToken
	if err := json.Unmarshal(data, &token); err != nil {
		slog.Warn("invalid next token", "error", err)
		return nil
	}
	return &token
}

// screenshotFieldValue reads a record's value on a storage sort field.
func screenshotFieldValue(s *domain.ScreenshotRecord, field string) any {
	switch field {
	case "productivity":
		return s.Productivity
	case "name":
		return s.Name
	case "title":
		return s.Title
	case "site":
		return s.Site
	case "employeeId":
		return s.EmployeeID
	case "teamId":
		return s.TeamID
	case "appId":
		return s.AppID
	case "appOrgId":
		return s.AppOrgID
	case "appTeamId":
		return s.AppTeamID
	case "shiftId":
		return s.ShiftID
	case "projectId":
		return s.ProjectID
	case "taskId":
		return s.TaskID
	case "windowId":
		return s.WindowID
	default:
		return s.TimestampTranslated
	}
}
