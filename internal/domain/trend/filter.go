// internal/domain/trend/filter.go

package trend

import (
	"sort"
	"strings"
	"time"
)

// Window is the time range the dashboard shows
type Window string

const (
	WindowDay   Window = "day"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
)

// Windows lists the selectable windows in display order
var Windows = []Window{WindowDay, WindowWeek, WindowMonth}

// ParseWindow maps a query value to a Window, defaulting to a day
func ParseWindow(s string) Window {
	switch Window(strings.ToLower(strings.TrimSpace(s))) {
	case WindowWeek:
		return WindowWeek
	case WindowMonth:
		return WindowMonth
	default:
		return WindowDay
	}
}

// Duration returns how far back the window reaches
func (w Window) Duration() time.Duration {
	const day = 24 * time.Hour

	switch w {
	case WindowWeek:
		return 7 * day
	case WindowMonth:
		return 30 * day
	default:
		return day
	}
}

// dateLayouts are tried in order when reading an item's date cell.
// Date-only values are taken as UTC midnight.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses an item date, reporting false when no layout matches
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Filter returns a copy of d holding only items dated within the window,
// each cohort ordered by score descending. Equal scores keep their input order.
// d is not modified.
func Filter(d Dataset, w Window, now time.Time) Dataset {
	cutoff := now.Add(-w.Duration())

	generations := make(map[string][]Item, len(d.Generations))
	for _, gen := range Generations {
		generations[gen] = []Item{}
	}

	for gen, items := range d.Generations {
		kept := make([]Item, 0, len(items))
		for _, item := range items {
			date, ok := ParseDate(item.Date)
			if !ok || date.Before(cutoff) {
				continue
			}
			kept = append(kept, item)
		}

		sort.SliceStable(kept, func(i, j int) bool {
			return kept[i].Score > kept[j].Score
		})

		generations[gen] = kept
	}

	return Dataset{
		LastUpdated: d.LastUpdated,
		Generations: generations,
		Error:       d.Error,
	}
}
