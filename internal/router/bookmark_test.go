package router_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/bookmarks/internal/config"
	"github.com/deppfellow/bookmarks/internal/database"
	"github.com/deppfellow/bookmarks/internal/handler"
	"github.com/deppfellow/bookmarks/internal/model"
	"github.com/deppfellow/bookmarks/internal/repository"
	"github.com/deppfellow/bookmarks/internal/router"
	"github.com/deppfellow/bookmarks/internal/server"
	"github.com/deppfellow/bookmarks/internal/service"
)

const testToken = "test-token"

type testApp struct {
	router *echo.Echo
	db     *sql.DB
	logs   *bytes.Buffer
}

type appOption func(cfg *config.Config)

func withEnv(env string) appOption {
	return func(cfg *config.Config) { cfg.Primary.Env = env }
}

func withRateLimit(perSecond float64) appOption {
	return func(cfg *config.Config) { cfg.Server.RateLimit = perSecond }
}

func newTestApp(t *testing.T, opts ...appOption) *testApp {
	t.Helper()

	cfg := &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:               "0",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
		},
		Database:      config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"},
		Auth:          config.AuthConfig{APIToken: testToken},
		Observability: config.DefaultObservabilityConfig(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	logs := new(bytes.Buffer)
	logger := zerolog.New(zerolog.SyncWriter(logs))

	db, err := database.OpenSQLite(cfg.Database.Path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.MigrateSQLite(context.Background(), &logger, db))

	s := server.NewWithDatabase(cfg, &logger, database.WrapSQLite(db, &logger))

	repos := repository.NewRepositories(s)
	services, err := service.NewServices(s, repos)
	require.NoError(t, err)

	return &testApp{
		router: router.NewRouter(s, handler.NewHandlers(s, services)),
		db:     db,
		logs:   logs,
	}
}

func fixtureBookmarks() []model.Bookmark {
	return []model.Bookmark{
		{ID: 1, Title: "bookmark 1", URL: "https://google.com", Rating: 5, Description: "something"},
		{ID: 2, Title: "bookmark 2", URL: "https://google.com", Rating: 4, Description: "something else"},
		{ID: 3, Title: "bookmark 3", URL: "https://google.com", Rating: 3, Description: "something else again"},
		{ID: 4, Title: "bookmark 4", URL: "https://google.com", Rating: 2, Description: "something something something!"},
	}
}

func (a *testApp) seed(t *testing.T, bookmarks ...model.Bookmark) {
	t.Helper()
	for _, b := range bookmarks {
		_, err := a.db.Exec(
			`INSERT INTO bookmarks_list (id, title, url, rating, description) VALUES (?, ?, ?, ?, ?)`,
			b.ID, b.Title, b.URL, b.Rating, b.Description,
		)
		require.NoError(t, err)
	}
}

func (a *testApp) request(method, target, body string, authorized bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if authorized {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+testToken)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) do(method, target, body string) *httptest.ResponseRecorder {
	return a.request(method, target, body, true)
}

// logLines returns the decoded log lines carrying message.
func (a *testApp) logLines(t *testing.T, message string) []map[string]any {
	t.Helper()

	var lines []map[string]any
	for _, raw := range strings.Split(strings.TrimSpace(a.logs.String()), "\n") {
		var line map[string]any
		require.NoError(t, json.Unmarshal([]byte(raw), &line), raw)
		if line["message"] == message {
			lines = append(lines, line)
		}
	}
	return lines
}

func requireErrorMessage(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	require.JSONEq(t, `{"error":{"message":`+mustJSON(t, message)+`}}`, rec.Body.String())
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestAuthGate(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)

	for _, target := range []string{"/", "/bookmark", "/bookmark/1", "/status", "/nope"} {
		rec := app.request(http.MethodGet, target, "", false)
		require.Equal(t, http.StatusUnauthorized, rec.Code, target)
		require.JSONEq(t, `{"error":"Unauthorized request"}`, rec.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/bookmark", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer wrong")
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/bookmark", nil)
	req.Header.Set(echo.HeaderAuthorization, "Basic "+testToken)
	rec = httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRoot(t *testing.T) {
	t.Parallel()

	rec := newTestApp(t).do(http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "hello, world!", rec.Body.String())
}

func TestUnknownRoute(t *testing.T) {
	t.Parallel()

	requireErrorMessage(t, newTestApp(t).do(http.MethodGet, "/nope", ""), http.StatusNotFound, "Route not found")
}

func TestStatus(t *testing.T) {
	t.Parallel()

	rec := newTestApp(t).do(http.MethodGet, "/status", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body handler.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "healthy", body.Status)
	require.Equal(t, config.DriverSQLite, body.Driver)
	require.Contains(t, body.Checks, "database")
	require.NotContains(t, body.Checks, "redis")
}

func TestListBookmarks(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/bookmark", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())

	app.seed(t, fixtureBookmarks()...)

	rec = app.do(http.MethodGet, "/bookmark", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []model.Bookmark
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, fixtureBookmarks(), got)
}

func TestGetBookmark(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	app.seed(t, fixtureBookmarks()...)

	rec := app.do(http.MethodGet, "/bookmark/2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t,
		`{"id":2,"rating":4,"title":"bookmark 2","description":"something else","url":"https://google.com"}`,
		strings.TrimSpace(rec.Body.String()))

	for _, id := range []string{"123456", "abc", "1.5", "-1"} {
		requireErrorMessage(t, app.do(http.MethodGet, "/bookmark/"+id, ""), http.StatusNotFound, "Bookmark doesn't exist")
	}
}

func TestGetBookmark_Sanitized(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	malicious := model.Bookmark{
		ID:          911,
		Title:       `Naughty naughty very naughty <script>alert("xss");</script>`,
		URL:         "https://url.to.file.which/does-not.exist",
		Rating:      1,
		Description: `Bad image <img src="https://url.to.file.which/does-not.exist" onerror="alert(document.cookie);">. But not <strong>all</strong> bad.`,
	}
	app.seed(t, malicious)

	rec := app.do(http.MethodGet, "/bookmark/911", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got model.BookmarkResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, `Naughty naughty very naughty &lt;script&gt;alert("xss");&lt;/script&gt;`, got.Title)
	require.Equal(t, `Bad image <img src="https://url.to.file.which/does-not.exist">. But not <strong>all</strong> bad.`, got.Description)
	require.Equal(t, malicious.URL, got.URL)

	// the list path returns stored values untouched
	rec = app.do(http.MethodGet, "/bookmark", "")
	var list []model.Bookmark
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Equal(t, []model.Bookmark{malicious}, list)
}

func TestCreateBookmark(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	app.seed(t, fixtureBookmarks()...)

	rec := app.do(http.MethodPost, "/bookmark",
		`{"title":"Go","url":"https://go.dev","rating":"3","description":"The Go site"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Equal(t, "/bookmark/5", rec.Header().Get(echo.HeaderLocation))
	require.JSONEq(t,
		`{"bookmark":{"id":5,"title":"Go","url":"https://go.dev","rating":3,"description":"The Go site"}}`,
		rec.Body.String())

	rec = app.do(http.MethodGet, "/bookmark/5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t,
		`{"id":5,"rating":3,"title":"Go","description":"The Go site","url":"https://go.dev"}`,
		rec.Body.String())

	rec = app.do(http.MethodPost, "/bookmark", `{"title":"No description","url":"https://a.example","rating":1}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.JSONEq(t,
		`{"bookmark":{"id":6,"title":"No description","url":"https://a.example","rating":1,"description":""}}`,
		rec.Body.String())
}

func TestCreateBookmark_Rejected(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	full := map[string]any{"title": "t", "url": "https://a.example", "rating": 2}

	for _, field := range []string{"title", "url", "rating"} {
		body := map[string]any{}
		for k, v := range full {
			if k != field {
				body[k] = v
			}
		}
		requireErrorMessage(t, app.do(http.MethodPost, "/bookmark", mustJSON(t, body)),
			http.StatusBadRequest, "Missing '"+field+"' in request body")
	}

	requireErrorMessage(t,
		app.do(http.MethodPost, "/bookmark", `{"title":"t","url":"u","rating":"five"}`),
		http.StatusBadRequest, "Invalid 'rating' in request body")

	rec := app.do(http.MethodPost, "/bookmark", `{"title":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// nothing was stored
	rec = app.do(http.MethodGet, "/bookmark", "")
	require.JSONEq(t, `[]`, rec.Body.String())
}

func TestUpdateBookmark(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	app.seed(t, fixtureBookmarks()...)

	rec := app.do(http.MethodPatch, "/bookmark/2", `{"title":"updated title","rating":0,"url":""}`)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	require.Empty(t, rec.Body.String())

	rec = app.do(http.MethodGet, "/bookmark/2", "")
	require.JSONEq(t,
		`{"id":2,"rating":4,"title":"updated title","description":"something else","url":"https://google.com"}`,
		rec.Body.String())

	rec = app.do(http.MethodPatch, "/bookmark/3", `{"rating":"1","description":"changed"}`)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = app.do(http.MethodGet, "/bookmark/3", "")
	require.JSONEq(t,
		`{"id":3,"rating":1,"title":"bookmark 3","description":"changed","url":"https://google.com"}`,
		rec.Body.String())
}

func TestUpdateBookmark_Rejected(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	app.seed(t, fixtureBookmarks()...)

	requireErrorMessage(t, app.do(http.MethodPatch, "/bookmark/2", `{"irrelevant":"foo"}`),
		http.StatusBadRequest, "Request body must contain title, url, rating or description")

	requireErrorMessage(t, app.do(http.MethodPatch, "/bookmark/2", ""),
		http.StatusBadRequest, "Request body must contain title, url, rating or description")

	requireErrorMessage(t, app.do(http.MethodPatch, "/bookmark/2", `{"rating":"x"}`),
		http.StatusBadRequest, "Invalid 'rating' in request body")

	// existence is checked before the body is judged
	requireErrorMessage(t, app.do(http.MethodPatch, "/bookmark/123456", `{"irrelevant":"foo"}`),
		http.StatusNotFound, "Bookmark doesn't exist")

	rec := app.do(http.MethodGet, "/bookmark/2", "")
	require.JSONEq(t,
		`{"id":2,"rating":4,"title":"bookmark 2","description":"something else","url":"https://google.com"}`,
		rec.Body.String())
}

func TestDeleteBookmark(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	app.seed(t, fixtureBookmarks()...)

	rec := app.do(http.MethodDelete, "/bookmark/2", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, rec.Body.String())

	requireErrorMessage(t, app.do(http.MethodGet, "/bookmark/2", ""), http.StatusNotFound, "Bookmark doesn't exist")
	requireErrorMessage(t, app.do(http.MethodDelete, "/bookmark/2", ""), http.StatusNotFound, "Bookmark doesn't exist")

	var list []model.Bookmark
	require.NoError(t, json.Unmarshal(app.do(http.MethodGet, "/bookmark", "").Body.Bytes(), &list))
	require.Len(t, list, 3)
	for _, b := range list {
		require.NotEqual(t, int64(2), b.ID)
	}
}

func TestServerError_Production(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, withEnv("production"))
	require.NoError(t, app.db.Close())

	rec := app.do(http.MethodGet, "/bookmark", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"error":{"message":"server error"}}`, rec.Body.String())
}

func TestServerError_Development(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, withEnv("development"))
	require.NoError(t, app.db.Close())

	rec := app.do(http.MethodGet, "/bookmark/1", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body struct {
		Message string            `json:"message"`
		Error   map[string]string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Contains(t, body.Message, "database is closed")
	require.Equal(t, "INTERNAL_SERVER_ERROR", body.Error["code"])
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, withRateLimit(1))

	require.Equal(t, http.StatusOK, app.do(http.MethodGet, "/bookmark", "").Code)
	requireErrorMessage(t, app.do(http.MethodGet, "/bookmark", ""), http.StatusTooManyRequests, "Too many requests")
}

func TestWriteIntentLogged(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	app.seed(t, fixtureBookmarks()...)

	rec := app.do(http.MethodPatch, "/bookmark/123456", `{"title":"x"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(http.MethodPatch, "/bookmark/2", `{"irrelevant":"foo"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	requested := app.logLines(t, "update bookmark requested")
	require.Len(t, requested, 2)
	require.Equal(t, "123456", requested[0]["bookmark_id"])
	require.Equal(t, "2", requested[1]["bookmark_id"])
	require.NotEmpty(t, requested[0]["request_id"])

	// rejected writes never reach the success log
	require.Empty(t, app.logLines(t, "Bookmark with id 2 updated"))

	rec = app.do(http.MethodPost, "/bookmark", `{"title":"t","url":"u","rating":1}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Len(t, app.logLines(t, "create bookmark requested"), 1)

	created := app.logLines(t, "Bookmark with id 5 created")
	require.Len(t, created, 1)
	require.Equal(t, float64(5), created[0]["bookmark_id"])

	rec = app.do(http.MethodDelete, "/bookmark/4", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Len(t, app.logLines(t, "delete bookmark requested"), 1)
	require.Len(t, app.logLines(t, "Bookmark with id 4 deleted"), 1)
}
