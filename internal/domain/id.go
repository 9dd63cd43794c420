package domain

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns an opaque string id with a short entity-kind prefix,
// e.g. "ts_3f2c..." for time sessions.
func NewID(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
