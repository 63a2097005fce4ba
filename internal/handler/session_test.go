package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediapotion/timeline-builder/internal/catalog"
	"github.com/mediapotion/timeline-builder/internal/domain"
	"github.com/mediapotion/timeline-builder/internal/handler"
	"github.com/mediapotion/timeline-builder/internal/service"
)

// mockSessionServicer is a test double for handler.SessionServicer.
// Set only the method fields your test needs; unset methods return
// zero values.
type mockSessionServicer struct {
	create            func(ctx context.Context) service.State
	get               func(ctx context.Context, id uuid.UUID) (service.State, error)
	updateMetadata    func(ctx context.Context, id uuid.UUID, meta domain.Project) (service.State, error)
	updateRow         func(ctx context.Context, id, rowID uuid.UUID, patch service.RowPatch) (service.State, error)
	addRow            func(ctx context.Context, id uuid.UUID) (service.State, error)
	deleteRow         func(ctx context.Context, id, rowID uuid.UUID) (service.State, error)
	moveRow           func(ctx context.Context, id, rowID uuid.UUID, direction string) (service.State, error)
	chainRow          func(ctx context.Context, id, rowID uuid.UUID) (service.State, error)
	drop              func(ctx context.Context, id uuid.UUID, p service.DropPayload) (service.State, error)
	undo              func(ctx context.Context, id uuid.UUID) (service.State, error)
	redo              func(ctx context.Context, id uuid.UUID) (service.State, error)
	saveProject       func(ctx context.Context, id uuid.UUID) (string, error)
	loadProject       func(ctx context.Context, id uuid.UUID, data []byte) (service.State, error)
	loadProjectByName func(ctx context.Context, id uuid.UUID, name string) (service.State, error)
	listProjects      func(ctx context.Context) ([]string, error)
	exportText        func(ctx context.Context, id uuid.UUID) (service.Export, error)
	exportCalendar    func(ctx context.Context, id uuid.UUID) (service.Export, error)
}

func (m *mockSessionServicer) Create(ctx context.Context) service.State {
	if m.create == nil {
		return service.State{}
	}
	return m.create(ctx)
}

func (m *mockSessionServicer) Get(ctx context.Context, id uuid.UUID) (service.State, error) {
	if m.get == nil {
		return service.State{}, nil
	}
	return m.get(ctx, id)
}

func (m *mockSessionServicer) UpdateMetadata(ctx context.Context, id uuid.UUID, meta domain.Project) (service.State, error) {
	return m.updateMetadata(ctx, id, meta)
}

func (m *mockSessionServicer) UpdateRow(ctx context.Context, id, rowID uuid.UUID, patch service.RowPatch) (service.State, error) {
	return m.updateRow(ctx, id, rowID, patch)
}

func (m *mockSessionServicer) AddRow(ctx context.Context, id uuid.UUID) (service.State, error) {
	return m.addRow(ctx, id)
}

func (m *mockSessionServicer) DeleteRow(ctx context.Context, id, rowID uuid.UUID) (service.State, error) {
	return m.deleteRow(ctx, id, rowID)
}

func (m *mockSessionServicer) MoveRow(ctx context.Context, id, rowID uuid.UUID, direction string) (service.State, error) {
	return m.moveRow(ctx, id, rowID, direction)
}

func (m *mockSessionServicer) ChainRow(ctx context.Context, id, rowID uuid.UUID) (service.State, error) {
	return m.chainRow(ctx, id, rowID)
}

func (m *mockSessionServicer) Drop(ctx context.Context, id uuid.UUID, p service.DropPayload) (service.State, error) {
	return m.drop(ctx, id, p)
}

func (m *mockSessionServicer) Undo(ctx context.Context, id uuid.UUID) (service.State, error) {
	return m.undo(ctx, id)
}

func (m *mockSessionServicer) Redo(ctx context.Context, id uuid.UUID) (service.State, error) {
	return m.redo(ctx, id)
}

func (m *mockSessionServicer) SaveProject(ctx context.Context, id uuid.UUID) (string, error) {
	return m.saveProject(ctx, id)
}

func (m *mockSessionServicer) LoadProject(ctx context.Context, id uuid.UUID, data []byte) (service.State, error) {
	return m.loadProject(ctx, id, data)
}

func (m *mockSessionServicer) LoadProjectByName(ctx context.Context, id uuid.UUID, name string) (service.State, error) {
	return m.loadProjectByName(ctx, id, name)
}

func (m *mockSessionServicer) ListProjects(ctx context.Context) ([]string, error) {
	return m.listProjects(ctx)
}

func (m *mockSessionServicer) ExportText(ctx context.Context, id uuid.UUID) (service.Export, error) {
	return m.exportText(ctx, id)
}

func (m *mockSessionServicer) ExportCalendar(ctx context.Context, id uuid.UUID) (service.Export, error) {
	return m.exportCalendar(ctx, id)
}

// compile-time check: mockSessionServicer must satisfy handler.SessionServicer.
var _ handler.SessionServicer = (*mockSessionServicer)(nil)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given mock the way main.go
// wires the real service.
func newHTTPHandler(svc handler.SessionServicer) http.Handler {
	srv := handler.NewServer(svc, catalog.Builtin(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	return srv.Routes()
}

func stateFixture() service.State {
	return service.State{
		ID: uuid.New(),
		Rows: []domain.Row{
			{ID: uuid.New(), StartMinute: 720, Event: "First Look", DurationMinutes: 30},
			{ID: uuid.New(), StartMinute: 750, Event: "Ceremony", DurationMinutes: 60},
		},
		Meta:    domain.NewProject(),
		CanUndo: true,
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func doRequest(t *testing.T, h http.Handler, method, path string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeSession(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

// ---- sessions --------------------------------------------------------------

func TestCreateSession_201(t *testing.T) {
	fixture := stateFixture()
	svc := &mockSessionServicer{
		create: func(context.Context) service.State { return fixture },
	}

	rec := doRequest(t, newHTTPHandler(svc), http.MethodPost, "/sessions", nil)

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeSession(t, rec)
	assert.Equal(t, fixture.ID.String(), resp["id"])
	rows := resp["rows"].([]any)
	require.Len(t, rows, 2)

	first := rows[0].(map[string]any)
	assert.Equal(t, "First Look", first["event"])
	start := first["start"].(map[string]any)
	assert.Equal(t, "12", start["hour"])
	assert.Equal(t, "00", start["minute"])
	assert.Equal(t, "PM", start["period"])
	assert.Equal(t, true, resp["can_undo"])
}

func TestGetSession_404_Unknown(t *testing.T) {
	svc := &mockSessionServicer{
		get: func(_ context.Context, id uuid.UUID) (service.State, error) {
			return service.State{}, fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
		},
	}

	rec := doRequest(t, newHTTPHandler(svc), http.MethodGet, "/sessions/"+uuid.NewString(), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
}

func TestGetSession_404_MalformedID(t *testing.T) {
	// The service must not be consulted for an unparseable id.
	svc := &mockSessionServicer{
		get: func(context.Context, uuid.UUID) (service.State, error) {
			t.Fatal("service called with malformed id")
			return service.State{}, nil
		},
	}

	rec := doRequest(t, newHTTPHandler(svc), http.MethodGet, "/sessions/not-a-uuid", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ---- rows ------------------------------------------------------------------

func TestPatchRow_passesFieldsThrough(t *testing.T) {
	fixture := stateFixture()
	var got service.RowPatch
	svc := &mockSessionServicer{
		updateRow: func(_ context.Context, _, _ uuid.UUID, patch service.RowPatch) (service.State, error) {
			got = patch
			return fixture, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"event":    "Toasts",
		"duration": "45",
		"start":    map[string]string{"hour": "3", "minute": "15", "period": "PM"},
		"outdoor":  true,
	})
	path := "/sessions/" + fixture.ID.String() + "/rows/" + fixture.Rows[0].ID.String()
	rec := doRequest(t, newHTTPHandler(svc), http.MethodPatch, path, body)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got.Event)
	assert.Equal(t, "Toasts", *got.Event)
	require.NotNil(t, got.Duration)
	assert.Equal(t, "45", *got.Duration)
	require.NotNil(t, got.Time)
	assert.Equal(t, "3", got.Time.Hour)
	assert.Equal(t, "PM", got.Time.Period)
	require.NotNil(t, got.Outdoor)
	assert.True(t, *got.Outdoor)
	assert.Nil(t, got.Location)
	assert.Nil(t, got.Notes)
}

func TestMoveRow_422_BadDirection(t *testing.T) {
	svc := &mockSessionServicer{
		moveRow: func(_ context.Context, _, _ uuid.UUID, direction string) (service.State, error) {
			return service.State{}, fmt.Errorf("%w: direction must be up or down", domain.ErrValidation)
		},
	}

	path := "/sessions/" + uuid.NewString() + "/rows/" + uuid.NewString() + "/move"
	rec := doRequest(t, newHTTPHandler(svc), http.MethodPost, path, jsonBody(t, map[string]string{"direction": "sideways"}))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation_error")
}

func TestDeleteRow_200_ReturnsState(t *testing.T) {
	fixture := stateFixture()
	svc := &mockSessionServicer{
		deleteRow: func(context.Context, uuid.UUID, uuid.UUID) (service.State, error) {
			return fixture, nil
		},
	}

	path := "/sessions/" + fixture.ID.String() + "/rows/" + fixture.Rows[0].ID.String()
	rec := doRequest(t, newHTTPHandler(svc), http.MethodDelete, path, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeSession(t, rec)
	assert.Len(t, resp["rows"].([]any), 2)
}

// ---- drop ------------------------------------------------------------------

func TestDrop_passesTaggedPayload(t *testing.T) {
	fixture := stateFixture()
	var got service.DropPayload
	svc := &mockSessionServicer{
		drop: func(_ context.Context, _ uuid.UUID, p service.DropPayload) (service.State, error) {
			got = p
			return fixture, nil
		},
	}

	target := uuid.New()
	body := jsonBody(t, map[string]any{
		"kind":             "catalogEntry",
		"target_row_id":    target.String(),
		"label":            "First Look",
		"duration_minutes": 30,
	})
	rec := doRequest(t, newHTTPHandler(svc), http.MethodPost, "/sessions/"+fixture.ID.String()+"/drop", body)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.DropKindCatalogEntry, got.Kind)
	assert.Equal(t, target, got.TargetRowID)
	assert.Equal(t, "First Look", got.Label)
	assert.Equal(t, 30, got.DurationMinutes)
}

func TestDrop_malformedBodyIsNoOp(t *testing.T) {
	fixture := stateFixture()
	var got service.DropPayload
	svc := &mockSessionServicer{
		drop: func(_ context.Context, _ uuid.UUID, p service.DropPayload) (service.State, error) {
			got = p
			return fixture, nil
		},
	}

	rec := doRequest(t, newHTTPHandler(svc), http.MethodPost,
		"/sessions/"+fixture.ID.String()+"/drop", bytes.NewBufferString("{{{"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, got.Kind)
	assert.Equal(t, uuid.Nil, got.RowID)
}

// ---- catalog & health ------------------------------------------------------

func TestGetCatalog_200(t *testing.T) {
	rec := doRequest(t, newHTTPHandler(&mockSessionServicer{}), http.MethodGet, "/catalog", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var entries []catalog.Entry
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&entries))
	assert.Len(t, entries, 40)
	assert.Equal(t, "Details: Drone & Venue Shots", entries[0].Label)
	assert.NotEmpty(t, entries[0].Color)
}

func TestGetHealth_200(t *testing.T) {
	rec := doRequest(t, newHTTPHandler(&mockSessionServicer{}), http.MethodGet, "/healthz", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
