package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"alfredoptarigan/resume-roaster/internal/models"
)

type stubCounter struct {
	counts []models.OutcomeCount
	err    error
	since  time.Time
}

func (s *stubCounter) CountByOutcome(since time.Time) ([]models.OutcomeCount, error) {
	s.since = since
	return s.counts, s.err
}

func newStatsHandler(counter OutcomeCounter, now time.Time) *StatsHandler {
	handler := NewStatsHandler(counter)
	handler.now = func() time.Time { return now }
	return handler
}

func TestStats(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	counter := &stubCounter{counts: []models.OutcomeCount{
		{Outcome: models.OutcomeFallback, Count: 2},
		{Outcome: models.OutcomeSuccess, Count: 10},
	}}
	s := newTestServer(t, newStatsHandler(counter, now))

	status, body := doRequest(t, s.app, httptest.NewRequest(http.MethodGet, "/api/analyses/stats?hours=6", nil))

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(12), body["total"])
	assert.Len(t, body["outcomes"], 2)
	assert.Equal(t, now.Add(-6*time.Hour), counter.since)
}

func TestStats_DefaultsAndErrors(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("default window", func(t *testing.T) {
		counter := &stubCounter{}
		s := newTestServer(t, newStatsHandler(counter, now))

		status, body := doRequest(t, s.app, httptest.NewRequest(http.MethodGet, "/api/analyses/stats", nil))

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, []any{}, body["outcomes"])
		assert.Equal(t, now.Add(-24*time.Hour), counter.since)
	})

	t.Run("invalid hours", func(t *testing.T) {
		s := newTestServer(t, newStatsHandler(&stubCounter{}, now))

		status, body := doRequest(t, s.app, httptest.NewRequest(http.MethodGet, "/api/analyses/stats?hours=0", nil))

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "hours must be between 1 and 8760", body["error"])
	})

	t.Run("repository failure", func(t *testing.T) {
		s := newTestServer(t, newStatsHandler(&stubCounter{err: errors.New("connection refused")}, now))

		status, body := doRequest(t, s.app, httptest.NewRequest(http.MethodGet, "/api/analyses/stats", nil))

		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, "Failed to load analysis stats", body["error"])
	})

	t.Run("disabled", func(t *testing.T) {
		s := newTestServer(t, nil)

		status, _ := doRequest(t, s.app, httptest.NewRequest(http.MethodGet, "/api/analyses/stats", nil))

		assert.Equal(t, http.StatusNotFound, status)
	})
}
