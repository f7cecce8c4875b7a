// internal/api/handlers/filters.go
package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/fieldserve/serviceops/internal/domain"
	"github.com/gin-gonic/gin"
)

// FilterDefaults carries the config-time fallbacks applied when a
// request leaves the horizon or row cap unset.
type FilterDefaults struct {
	HorizonDays int
	MaxRows     int
}

// parseFilter normalizes the user-facing query parameters into the
// filter shape the fetch layer and aggregators expect. Unknown site
// names pass through; unknown status labels get dropped downstream.
func parseFilter(c *gin.Context, defaults FilterDefaults) domain.Filter {
	filter := domain.Filter{
		Horizon: domain.ParseHorizonOr(c.Query("horizon"), defaults.HorizonDays),
	}

	filter.Sites = splitParam(c.Query("site"))
	filter.Statuses = splitParam(c.Query("status"))
	filter.Priority = strings.TrimSpace(c.Query("priority"))
	filter.OnlyExceptions = c.Query("onlyExceptions") == "true"

	if from := parseDate(c.Query("from")); from != nil {
		filter.From = from
	}
	if to := parseDate(c.Query("to")); to != nil {
		filter.To = to
	}

	if maxRows, err := strconv.Atoi(c.DefaultQuery("maxRows", "")); err == nil {
		filter.MaxRows = domain.ClampMaxRows(maxRows)
	} else if defaults.MaxRows > 0 {
		filter.MaxRows = domain.ClampMaxRows(defaults.MaxRows)
	}

	return filter
}

// splitParam supports both repeated params and comma-separated lists.
func splitParam(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}
