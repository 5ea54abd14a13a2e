package statusutil

import (
	"fmt"
	"strings"

	"broadcast-mode/internal/model"
)

// NormalizeStatus maps user/catalog input onto the canonical status enum.
// Legacy catalog values (active, shipped) are accepted and mapped to live.
func NormalizeStatus(s string) (model.Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "live", "active", "shipped":
		return model.StatusLive, nil
	case "in-progress", "inprogress", "in_progress", "wip":
		return model.StatusInProgress, nil
	case "archived", "archive":
		return model.StatusArchived, nil
	case "":
		return "", fmt.Errorf("invalid status: empty")
	default:
		return "", fmt.Errorf("invalid status: %q", s)
	}
}

// ParseFilter parses a status filter value; "" and "all" mean no filter.
func ParseFilter(s string) (model.Status, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return "", false, nil
	}
	st, err := NormalizeStatus(s)
	if err != nil {
		return "", false, err
	}
	return st, true, nil
}

// Rank orders statuses for sorting: live first, archived last.
func Rank(s model.Status) int {
	switch s {
	case model.StatusLive:
		return 0
	case model.StatusInProgress:
		return 1
	case model.StatusArchived:
		return 2
	default:
		return 3
	}
}

func Label(s model.Status) string {
	switch s {
	case model.StatusLive:
		return "Live"
	case model.StatusInProgress:
		return "In Progress"
	default:
		return "Archived"
	}
}

// All returns the canonical statuses in rank order.
func All() []model.Status {
	return []model.Status{model.StatusLive, model.StatusInProgress, model.StatusArchived}
}
