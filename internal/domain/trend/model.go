package trend

import (
	"time"
)

// Generations are the cohorts a dataset is split into, in display order
var Generations = []string{"Gen Z", "Millennials", "Gen Alpha", "General"}

// FetchError is the error flag attached to a dataset whose fetch failed
const FetchError = "Failed to fetch data"

// Item represents a single trend signal as stored in a cohort tab
type Item struct {
	Date    string `json:"date"`
	Trend   string `json:"trend"`
	Source  string `json:"source"`
	URL     string `json:"url"`
	RawText string `json:"raw_text"`
	Score   int    `json:"score"`
	Metric  string `json:"metric"`
}

// Dataset is a full snapshot of all cohorts
type Dataset struct {
	LastUpdated time.Time         `json:"lastUpdated"`
	Generations map[string][]Item `json:"generations"`
	Error       string            `json:"error,omitempty"`
}

// APIKey is an access-key row from the key tab
type APIKey struct {
	Key        string
	AppName    string
	OwnerEmail string
	Active     bool
}

// EmptyDataset returns a dataset with every known cohort mapped to an empty list
func EmptyDataset(now time.Time, errFlag string) Dataset {
	generations := make(map[string][]Item, len(Generations))
	for _, gen := range Generations {
		generations[gen] = []Item{}
	}

	return Dataset{
		LastUpdated: now,
		Generations: generations,
		Error:       errFlag,
	}
}

// Failed reports whether the dataset carries the error flag
func (d Dataset) Failed() bool {
	return d.Error != ""
}

// Cohort returns the items for a generation, never nil
func (d Dataset) Cohort(gen string) []Item {
	if items, ok := d.Generations[gen]; ok && items != nil {
		return items
	}
	return []Item{}
}

// IsGeneration reports whether gen is one of the known cohorts
func IsGeneration(gen string) bool {
	for _, g := range Generations {
		if g == gen {
			return true
		}
	}
	return false
}
