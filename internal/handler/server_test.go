package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tripintel/tripintel/internal/domain"
	"github.com/tripintel/tripintel/internal/handler"
	"github.com/tripintel/tripintel/internal/service"
)

// mockServicer implements handler.Servicer with overridable funcs, so each
// test supplies only the operations it exercises.
type mockServicer struct {
	createSession  func() uuid.UUID
	discardSession func(id uuid.UUID) error
	appendFn       func(ctx context.Context, sessionID uuid.UUID, in service.AppendInput) (domain.Segment, error)
	bulkUpdate     func(ctx context.Context, sessionID uuid.UUID, rows []service.RowEdit) (service.BulkUpdateResult, error)
	deleteFn       func(ctx context.Context, sessionID uuid.UUID, ids []uuid.UUID) (int, error)
	list           func(ctx context.Context, sessionID uuid.UUID) (service.ItineraryView, error)
	stats          func(ctx context.Context, sessionID uuid.UUID) (domain.TripStats, bool, error)
	export         func(ctx context.Context, sessionID uuid.UUID) ([]domain.ExportRow, error)
}

func (m *mockServicer) CreateSession() uuid.UUID {
	return m.createSession()
}

func (m *mockServicer) DiscardSession(id uuid.UUID) error {
	return m.discardSession(id)
}

func (m *mockServicer) Append(ctx context.Context, sessionID uuid.UUID, in service.AppendInput) (domain.Segment, error) {
	return m.appendFn(ctx, sessionID, in)
}

func (m *mockServicer) BulkUpdate(ctx context.Context, sessionID uuid.UUID, rows []service.RowEdit) (service.BulkUpdateResult, error) {
	return m.bulkUpdate(ctx, sessionID, rows)
}

func (m *mockServicer) Delete(ctx context.Context, sessionID uuid.UUID, ids []uuid.UUID) (int, error) {
	return m.deleteFn(ctx, sessionID, ids)
}

func (m *mockServicer) List(ctx context.Context, sessionID uuid.UUID) (service.ItineraryView, error) {
	return m.list(ctx, sessionID)
}

func (m *mockServicer) Stats(ctx context.Context, sessionID uuid.UUID) (domain.TripStats, bool, error) {
	return m.stats(ctx, sessionID)
}

func (m *mockServicer) Export(ctx context.Context, sessionID uuid.UUID) ([]domain.ExportRow, error) {
	return m.export(ctx, sessionID)
}

var _ handler.Servicer = (*mockServicer)(nil)

// newTestServer mounts the full route tree over the mock.
func newTestServer(svc handler.Servicer) *httptest.Server {
	r := chi.NewRouter()
	handler.NewServer(svc).Register(r)
	return httptest.NewServer(r)
}

// doRequest performs one request against the test server and returns the response.
func doRequest(ts *httptest.Server, method, path, body string) (*http.Response, error) {
	var req *http.Request
	var err error
	if body == "" {
		req, err = http.NewRequest(method, ts.URL+path, nil)
	} else {
		req, err = http.NewRequest(method, ts.URL+path, strings.NewReader(body))
	}
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return ts.Client().Do(req)
}
