package httpadapter_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/run-condition-etl/internal/adapter/httpadapter"
	"github.com/couchcryptid/run-condition-etl/internal/domain"
	"github.com/couchcryptid/run-condition-etl/internal/snapshot"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

func newTestServer(t *testing.T, readyErr error) (*httpadapter.Server, *snapshot.Store) {
	t.Helper()
	store := snapshot.NewStore(time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return httpadapter.NewServer(":0", &mockReadiness{err: readyErr}, store, logger), store
}

func get(srv http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthzReturns200(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	assert.Equal(t, http.StatusOK, get(srv, "/healthz").Code)
}

func TestReadyz(t *testing.T) {
	ready, _ := newTestServer(t, nil)
	assert.Equal(t, http.StatusOK, get(ready, "/readyz").Code)

	notReady, _ := newTestServer(t, fmt.Errorf("pipeline has not scored any observations yet"))
	assert.Equal(t, http.StatusServiceUnavailable, get(notReady, "/readyz").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	rec := get(srv, "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestCoursesEndpoint(t *testing.T) {
	srv, store := newTestServer(t, nil)

	rec := get(srv, "/courses")
	require.Equal(t, http.StatusOK, rec.Code)
	var empty snapshot.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &empty))
	assert.Empty(t, empty.Courses)

	store.Put(domain.CourseSummary{ID: "skku", NameKo: "성균관대학교", RunScore: 81, UpdatedAt: time.Now()})
	store.Put(domain.CourseSummary{ID: "seoho-park", NameKo: "서호공원", RunScore: 64, UpdatedAt: time.Now()})

	rec = get(srv, "/courses")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var doc snapshot.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.Len(t, doc.Courses, 2)
	assert.Equal(t, "seoho-park", doc.Courses[0].ID)
	assert.Equal(t, "skku", doc.Courses[1].ID)
	assert.False(t, doc.GeneratedAt.IsZero())
}

func TestCourseEndpoint(t *testing.T) {
	srv, store := newTestServer(t, nil)
	store.Put(domain.CourseSummary{ID: "skku", NameKo: "성균관대학교", RunScore: 81, UpdatedAt: time.Now()})

	rec := get(srv, "/courses/skku")
	require.Equal(t, http.StatusOK, rec.Code)
	var summary domain.CourseSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 81, summary.RunScore)
	assert.Contains(t, rec.Body.String(), "성균관대학교")

	tests := []struct {
		name string
		path string
	}{
		{"catalogued but no summary", "/courses/majung-park"},
		{"unknown course", "/courses/han-river"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(srv, tt.path)
			assert.Equal(t, http.StatusNotFound, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestCoursesRejectsOtherMethods(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/courses", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
