package handler

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/workpulse/workpulse/internal/service"
)

// ScreenshotHandler handles the cursor-paginated screenshot listing.
type ScreenshotHandler struct {
	screenshots *service.ScreenshotService
	prod        bool
}

// NewScreenshotHandler creates a new ScreenshotHandler.
func NewScreenshotHandler(screenshots *service.ScreenshotService, prod bool) *ScreenshotHandler {
	return &ScreenshotHandler{screenshots: screenshots, prod: prod}
}

// HandlePaginated returns one page of screenshots. The response body is
// the screenshot array only; callers detect a further page by the array
// length equaling the requested limit.
func (h *ScreenshotHandler) HandlePaginated(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, end, ok := parseTimeRange(w, q)
	if !ok {
		return
	}

	limit := 10000
	if v := q.Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 || parsed > 50000 {
			writeError(w, http.StatusBadRequest, typeValidationError, "limit must be a positive number between 1 and 50000")
			return
		}
		limit = parsed
	}

	sortBy := q.Get("sortBy")
	if sortBy != "" && !slices.Contains(service.ScreenshotSortFields, sortBy) {
		writeError(w, http.StatusBadRequest, typeValidationError,
			"sortBy must be one of: "+strings.Join(service.ScreenshotSortFields, ", "))
		return
	}

	page, err := h.screenshots.Paginated(r.Context(), service.ScreenshotQuery{
		Start:      start,
		End:        end,
		Timezone:   q.Get("timezone"),
		TaskIDs:    splitList(q.Get("taskId")),
		ShiftIDs:   splitList(q.Get("shiftId")),
		ProjectIDs: splitList(q.Get("projectId")),
		SortBy:     sortBy,
		Limit:      limit,
		Next:       q.Get("next"),
	})
	if err != nil {
		writeInternalError(w, err, "Failed to get screenshots", h.prod)
		return
	}

	// Pagination metadata is dropped at the wire by contract.
	writeJSON(w, http.StatusOK, toScreenshotDTOs(page.Screenshots))
}
