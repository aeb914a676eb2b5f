package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"trendpulse/internal/domain/trend"
)

func renderDashboard(t *testing.T, svc *fakeService, url string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	NewPageHandler(svc, zerolog.Nop()).Dashboard(rec, httptest.NewRequest(http.MethodGet, url, nil))
	return rec
}

func TestDashboardDefaults(t *testing.T) {
	svc := &fakeService{dataset: sampleDataset()}

	rec := renderDashboard(t, svc, "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []trend.Window{trend.WindowDay}, svc.windows)

	body := rec.Body.String()
	assert.Contains(t, body, "Fresh")
	assert.NotContains(t, body, "Older", "outside the day window")
	assert.NotContains(t, body, "Everyone", "other cohort")
	assert.Contains(t, body, "Oct 17, 2026")
	assert.Contains(t, body, `class="active">Gen Z</a>`)
}

func TestDashboardWeekSortsByScore(t *testing.T) {
	svc := &fakeService{dataset: sampleDataset()}

	body := renderDashboard(t, svc, "/?gen=Gen+Z&time=week").Body.String()

	older := strings.Index(body, "Older")
	fresh := strings.Index(body, "Fresh")
	assert.True(t, older > 0 && fresh > 0)
	assert.Less(t, older, fresh, "higher score first")
}

func TestDashboardOtherCohort(t *testing.T) {
	svc := &fakeService{dataset: sampleDataset()}

	body := renderDashboard(t, svc, "/?gen=General&time=month").Body.String()

	assert.Contains(t, body, "Everyone")
	assert.NotContains(t, body, "Fresh")
	assert.Equal(t, []trend.Window{trend.WindowMonth}, svc.windows)
}

func TestDashboardEmptyState(t *testing.T) {
	svc := &fakeService{dataset: trend.EmptyDataset(testNow, trend.FetchError)}

	for _, url := range []string{"/?gen=Millennials", "/?gen=Boomers&time=year"} {
		rec := renderDashboard(t, svc, url)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "No trends found for this filter")
	}
}

func TestDashboardUnknownCohortFallsBack(t *testing.T) {
	svc := &fakeService{dataset: sampleDataset()}

	body := renderDashboard(t, svc, "/?gen=Boomers").Body.String()

	assert.Contains(t, body, "Fresh")
	assert.Contains(t, body, `class="active">Gen Z</a>`)
}

func TestDashboardNeverUpdated(t *testing.T) {
	svc := &fakeService{dataset: trend.Dataset{}}

	body := renderDashboard(t, svc, "/").Body.String()

	assert.Contains(t, body, "Updated: Never")
}

func TestDisplayDate(t *testing.T) {
	assert.Equal(t, "Oct 1, 2026", displayDate("2026-10-01"))
	assert.Equal(t, "someday", displayDate("someday"))
}
