package web

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/example/kanban/internal/config"
	"github.com/example/kanban/internal/models"
	"github.com/example/kanban/internal/wire"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"),
	)
}

type testServer struct {
	t   *testing.T
	srv *Server
}

func newTestServer(t *testing.T, mutate ...func(*config.Settings)) *testServer {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	settings := config.Default()
	settings.Database.Path = filepath.Join(dir, "kanban.db")
	settings.Media.Dir = filepath.Join(dir, "media")
	settings.Media.PublicBaseURL = "http://kanban.test/media"
	for _, fn := range mutate {
		fn(settings)
	}

	svc, err := wire.Build(context.Background(), settings, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })

	return &testServer{t: t, srv: NewServer(svc, settings.User.ID, zap.NewNop())}
}

// do sends a JSON request and decodes the response into out when non-nil.
func (ts *testServer) do(method, path string, body any, out any, headers ...string) int {
	ts.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(ts.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	ts.srv.Handler().ServeHTTP(w, req)

	if out != nil && w.Body.Len() > 0 {
		require.NoError(ts.t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w.Code
}

type boardView struct {
	Board   models.Board `json:"board"`
	Columns []struct {
		ID    string        `json:"id"`
		Title string        `json:"title"`
		Tasks []models.Task `json:"tasks"`
	} `json:"columns"`
}

func (ts *testServer) defaultBoard() (string, []string) {
	ts.t.Helper()
	var boards []models.Board
	require.Equal(ts.t, http.StatusCreated, ts.do(http.MethodPost, "/api/boards", map[string]string{"name": "Work"}, nil))
	require.Equal(ts.t, http.StatusOK, ts.do(http.MethodGet, "/api/boards", nil, &boards))
	require.NotEmpty(ts.t, boards)
	id := boards[len(boards)-1].ID

	var cols []models.Column
	require.Equal(ts.t, http.StatusOK, ts.do(http.MethodGet, "/api/boards/"+id+"/columns", nil, &cols))
	ids := make([]string, len(cols))
	for i, c := range cols {
		ids[i] = c.ID
	}
	return id, ids
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	var body map[string]string

	code := ts.do(http.MethodGet, "/healthz", nil, &body)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
}

func TestBoards_CRUD(t *testing.T) {
	ts := newTestServer(t)

	var created models.Board
	assert.Equal(t, http.StatusCreated, ts.do(http.MethodPost, "/api/boards", map[string]string{"name": "Side"}, &created))
	assert.Equal(t, "Side", created.Name)

	var updated models.Board
	code := ts.do(http.MethodPatch, "/api/boards/"+created.ID, map[string]string{
		"name":             "Side project",
		"weather_location": "Madrid",
	}, &updated)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Side project", updated.Name)
	assert.Equal(t, "Madrid", updated.WeatherLocation)

	var cleared models.Board
	code = ts.do(http.MethodPatch, "/api/boards/"+created.ID, map[string]string{"weather_location": ""}, &cleared)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Side project", cleared.Name)
	assert.Empty(t, cleared.WeatherLocation)

	assert.Equal(t, http.StatusNoContent, ts.do(http.MethodDelete, "/api/boards/"+created.ID, nil, nil))
	assert.Equal(t, http.StatusNotFound, ts.do(http.MethodGet, "/api/boards/"+created.ID, nil, nil))
}

func TestBoards_DefaultBoardIsPermanent(t *testing.T) {
	ts := newTestServer(t)
	var boards []models.Board
	require.Equal(t, http.StatusOK, ts.do(http.MethodGet, "/api/boards", nil, &boards))
	boardID := ""
	for _, b := range boards {
		if b.IsDefault {
			boardID = b.ID
		}
	}
	require.NotEmpty(t, boardID, "local mode starts with a default board")
	var body map[string]string

	code := ts.do(http.MethodDelete, "/api/boards/"+boardID, nil, &body)

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "cannot delete default board "+boardID, body["error"])

	var board models.Board
	require.Equal(t, http.StatusOK, ts.do(http.MethodGet, "/api/boards/"+boardID, nil, &board))
	assert.True(t, board.IsDefault)
}

func TestBoards_CreateRequiresName(t *testing.T) {
	ts := newTestServer(t)
	var body map[string]string

	code := ts.do(http.MethodPost, "/api/boards", map[string]string{}, &body)

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "name is required", body["error"])
}

func TestTasks_Flow(t *testing.T) {
	ts := newTestServer(t)
	boardID, cols := ts.defaultBoard()
	require.Len(t, cols, 3)

	var first, second models.Task
	require.Equal(t, http.StatusCreated, ts.do(http.MethodPost, "/api/columns/"+cols[0]+"/tasks",
		map[string]any{"title": "Write report", "labels": []string{"work"}}, &first))
	require.Equal(t, http.StatusCreated, ts.do(http.MethodPost, "/api/columns/"+cols[0]+"/tasks",
		map[string]any{"title": "Buy milk", "labels": []string{"home"}}, &second))

	var filtered []models.Task
	assert.Equal(t, http.StatusOK, ts.do(http.MethodGet, "/api/boards/"+boardID+"/tasks?tags=work", nil, &filtered))
	require.Len(t, filtered, 1)
	assert.Equal(t, "Write report", filtered[0].Title)

	var result struct {
		Moved bool `json:"moved"`
	}
	assert.Equal(t, http.StatusOK, ts.do(http.MethodPost, "/api/tasks/reorder",
		map[string]string{"active_id": second.ID, "over_id": first.ID}, &result))
	assert.True(t, result.Moved)

	assert.Equal(t, http.StatusNoContent, ts.do(http.MethodPost, "/api/tasks/"+first.ID+"/move",
		map[string]string{"column_id": cols[2]}, nil))

	var view boardView
	require.Equal(t, http.StatusOK, ts.do(http.MethodGet, "/api/boards/"+boardID+"/view", nil, &view))
	require.Len(t, view.Columns, 3)
	require.Len(t, view.Columns[2].Tasks, 1)
	assert.Equal(t, first.ID, view.Columns[2].Tasks[0].ID)

	var patched models.Task
	assert.Equal(t, http.StatusOK, ts.do(http.MethodPatch, "/api/tasks/"+second.ID,
		map[string]any{"date": "2026-12-24"}, &patched))
	assert.Equal(t, "2026-12-24", patched.Date)

	assert.Equal(t, http.StatusBadRequest, ts.do(http.MethodPatch, "/api/tasks/"+second.ID,
		map[string]any{"title": "   "}, nil))
	assert.Equal(t, http.StatusNoContent, ts.do(http.MethodDelete, "/api/tasks/"+second.ID, nil, nil))
	assert.Equal(t, http.StatusNotFound, ts.do(http.MethodGet, "/api/tasks/"+second.ID, nil, nil))
}

func TestTasks_ListUsesStoredSearch(t *testing.T) {
	ts := newTestServer(t)
	boardID, cols := ts.defaultBoard()
	for _, title := range []string{"alpha", "beta"} {
		require.Equal(t, http.StatusCreated, ts.do(http.MethodPost, "/api/columns/"+cols[0]+"/tasks",
			map[string]any{"title": title}, nil))
	}
	require.Equal(t, http.StatusOK, ts.do(http.MethodPatch, "/api/workspace",
		map[string]any{"search_query": "alp"}, nil))

	var stored, explicit []models.Task
	ts.do(http.MethodGet, "/api/boards/"+boardID+"/tasks", nil, &stored)
	ts.do(http.MethodGet, "/api/boards/"+boardID+"/tasks?q=", nil, &explicit)

	assert.Len(t, stored, 1)
	assert.Len(t, explicit, 2)
}

func TestLabels_And_Checklist(t *testing.T) {
	ts := newTestServer(t)
	boardID, cols := ts.defaultBoard()

	var task models.Task
	require.Equal(t, http.StatusCreated, ts.do(http.MethodPost, "/api/columns/"+cols[0]+"/tasks",
		map[string]any{"title": "Trip"}, &task))

	var label models.Label
	assert.Equal(t, http.StatusOK, ts.do(http.MethodPut, "/api/boards/"+boardID+"/labels/travel",
		map[string]string{"color": "#0ea5e9"}, &label))
	assert.Equal(t, "#0ea5e9", label.Color)
	assert.Equal(t, http.StatusNoContent, ts.do(http.MethodPost, "/api/tasks/"+task.ID+"/labels/travel", nil, nil))
	assert.Equal(t, http.StatusNoContent, ts.do(http.MethodPost, "/api/boards/"+boardID+"/labels/travel/pin", nil, nil))

	var labels []models.Label
	ts.do(http.MethodGet, "/api/boards/"+boardID+"/labels", nil, &labels)
	require.Len(t, labels, 1)
	assert.True(t, labels[0].Pinned)
	assert.Equal(t, 1, labels[0].UsageCount)

	var group, item models.ChecklistItem
	require.Equal(t, http.StatusCreated, ts.do(http.MethodPost, "/api/tasks/"+task.ID+"/checklist",
		map[string]string{"text": "Luggage", "type": "group"}, &group))
	require.Equal(t, http.StatusCreated, ts.do(http.MethodPost, "/api/tasks/"+task.ID+"/checklist",
		map[string]string{"text": "Socks", "parent_id": group.ID}, &item))
	assert.Equal(t, http.StatusNoContent, ts.do(http.MethodPatch, "/api/checklist/"+group.ID,
		map[string]bool{"completed": true}, nil))

	var tree []models.ChecklistItem
	ts.do(http.MethodGet, "/api/tasks/"+task.ID+"/checklist", nil, &tree)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 1)
	assert.True(t, tree[0].Children[0].Completed)

	assert.Equal(t, http.StatusBadRequest, ts.do(http.MethodPost, "/api/tasks/"+task.ID+"/checklist",
		map[string]string{"text": "Nope", "parent_id": item.ID}, nil))
}

func TestChat_FallbackWithoutKey(t *testing.T) {
	ts := newTestServer(t)
	boardID, _ := ts.defaultBoard()

	var exchange struct {
		Answer   models.ChatMessage `json:"answer"`
		Fallback bool               `json:"fallback"`
	}
	assert.Equal(t, http.StatusOK, ts.do(http.MethodPost, "/api/boards/"+boardID+"/chat",
		map[string]string{"content": "what is due?"}, &exchange))
	assert.True(t, exchange.Fallback)
	assert.Equal(t, models.ChatFallbackReply, exchange.Answer.Content)

	var history []models.ChatMessage
	ts.do(http.MethodGet, "/api/boards/"+boardID+"/chat", nil, &history)
	assert.Len(t, history, 2)

	var cleared map[string]int
	ts.do(http.MethodDelete, "/api/boards/"+boardID+"/chat", nil, &cleared)
	assert.Equal(t, 2, cleared["deleted"])
}

func TestSharing_UserHeader(t *testing.T) {
	ts := newTestServer(t, func(s *config.Settings) { s.User.ID = "alice" })
	boardID, _ := ts.defaultBoard()

	var invite models.Invite
	require.Equal(t, http.StatusCreated, ts.do(http.MethodPost, "/api/boards/"+boardID+"/invites", nil, &invite))

	var joined map[string]string
	assert.Equal(t, http.StatusOK, ts.do(http.MethodPost, "/api/invites/"+invite.Code+"/join", nil, &joined, UserHeader, "bob"))
	assert.Equal(t, boardID, joined["board_id"])

	var members []models.Member
	ts.do(http.MethodGet, "/api/boards/"+boardID+"/members", nil, &members)
	assert.Len(t, members, 2)

	assert.Equal(t, http.StatusForbidden, ts.do(http.MethodDelete, "/api/boards/"+boardID+"/members/alice", nil, nil, UserHeader, "bob"))
	require.Equal(t, http.StatusOK, ts.do(http.MethodPost, "/api/invites/"+invite.Code+"/join", nil, nil, UserHeader, "carol"))
	assert.Equal(t, http.StatusForbidden, ts.do(http.MethodDelete, "/api/boards/"+boardID+"/members/carol", nil, nil, UserHeader, "bob"))
	assert.Equal(t, http.StatusNoContent, ts.do(http.MethodDelete, "/api/boards/"+boardID+"/members/carol", nil, nil))
	assert.Equal(t, http.StatusNotFound, ts.do(http.MethodPost, "/api/invites/nope/join", nil, nil, UserHeader, "carol"))
}

func TestLogs_FilterByBoard(t *testing.T) {
	ts := newTestServer(t)
	boardID, cols := ts.defaultBoard()
	require.Equal(t, http.StatusCreated, ts.do(http.MethodPost, "/api/columns/"+cols[0]+"/tasks",
		map[string]any{"title": "logged"}, nil))

	var logs []models.ChangeLog
	assert.Equal(t, http.StatusOK, ts.do(http.MethodGet, "/api/logs?board="+boardID+"&entity_type=task", nil, &logs))
	require.Len(t, logs, 1)
	assert.Equal(t, models.ActionCreate, logs[0].Action)
	assert.Equal(t, "local", logs[0].ActorID)

	assert.Equal(t, http.StatusBadRequest, ts.do(http.MethodGet, "/api/logs?limit=-1", nil, nil))
}

func TestWidgets(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/search" {
			_, _ = w.Write([]byte(`{"results":[{"name":"Lisbon","country":"Portugal","latitude":38.7,"longitude":-9.1}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"daily":{"time":["2030-01-01"],"weather_code":[3],"temperature_2m_max":[15],"temperature_2m_min":[9]}}`))
	}))
	defer upstream.Close()

	ts := newTestServer(t, func(s *config.Settings) {
		s.Weather.GeocodeURL = upstream.URL + "/search"
		s.Weather.ForecastURL = upstream.URL + "/forecast"
	})

	var report models.WeatherReport
	assert.Equal(t, http.StatusOK, ts.do(http.MethodGet, "/api/weather?location=Lisbon", nil, &report))
	assert.Equal(t, "Lisbon", report.Location)
	require.Len(t, report.Days, 1)

	assert.Equal(t, http.StatusBadRequest, ts.do(http.MethodGet, "/api/weather", nil, nil))

	var progress models.TimeProgress
	assert.Equal(t, http.StatusOK, ts.do(http.MethodGet, "/api/progress", nil, &progress))
	assert.GreaterOrEqual(t, progress.Year, 0)
	assert.LessOrEqual(t, progress.Year, 100)

	var ref models.MediaRef
	assert.Equal(t, http.StatusOK, ts.do(http.MethodGet, "/api/media/resolve?url=https://youtu.be/dQw4w9WgXcQ", nil, &ref))
	assert.Equal(t, models.MediaYouTube, ref.Kind)
}

func TestMedia_Upload(t *testing.T) {
	ts := newTestServer(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", "cat.png")
	require.NoError(t, err)
	_, _ = part.Write(append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/media", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	ts.srv.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var out map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Contains(t, out["url"], "http://kanban.test/media/local/")
	assert.Contains(t, out["url"], "_cat.png")
}

func TestRun_ShutsDownOnCancel(t *testing.T) {
	ts := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- ts.srv.Run(ctx, "127.0.0.1:0") }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{models.ErrNotFound, http.StatusNotFound},
		{models.ErrConflict, http.StatusConflict},
		{models.ErrInvalid, http.StatusBadRequest},
		{models.ErrForbidden, http.StatusForbidden},
		{assert.AnError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}
