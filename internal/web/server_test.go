package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/spotlight/internal/config"
	"github.com/Zachkp/spotlight/internal/console"
	"github.com/Zachkp/spotlight/internal/content"
	"github.com/Zachkp/spotlight/internal/logging"
	"github.com/Zachkp/spotlight/internal/panels"
	"github.com/Zachkp/spotlight/internal/store"
)

func testConfig() config.Config {
	return config.Config{
		Server:    config.ServerConfig{Port: "0", Mode: "test"},
		Admin:     config.AdminConfig{Username: "zach", Password: "s3cret"},
		Console:   config.ConsoleConfig{SessionTTL: 30 * time.Minute},
		Analytics: config.AnalyticsConfig{Retention: 365 * 24 * time.Hour, Buffer: 64},
	}
}

func newTestServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()
	logging.InitTest()
	db, err := store.Open(filepath.Join(t.TempDir(), "spotlight.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s, err := New(testConfig(), console.DefaultCatalog(), panels.NewRegistry(content.Default()), db)
	require.NoError(t, err)
	return s, db
}

// client keeps the session cookie between requests.
type client struct {
	t       *testing.T
	s       *Server
	cookies []*http.Cookie
}

func (c *client) do(method, path, contentType, body string, headers ...string) *httptest.ResponseRecorder {
	c.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c.s.Handler().ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		c.cookies = append(c.cookies, ck)
	}
	return rec
}

func (c *client) key(ev string) keyJSON {
	c.t.Helper()
	rec := c.do(http.MethodPost, "/console/key", "application/json", ev)
	require.Equal(c.t, http.StatusOK, rec.Code, rec.Body.String())
	var out keyJSON
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

type keyJSON struct {
	Query          string        `json:"query"`
	ActiveView     *string       `json:"activeView"`
	InputFocused   bool          `json:"inputFocused"`
	Commands       []commandJSON `json:"commands"`
	Signal         string        `json:"signal"`
	PreventDefault bool          `json:"preventDefault"`
}

func TestConsoleKeyFlow(t *testing.T) {
	s, _ := newTestServer(t)
	c := &client{t: t, s: s}

	out := c.key(`{"key":"p","ctrlKey":true}`)
	require.NotNil(t, out.ActiveView)
	assert.Equal(t, "projects", *out.ActiveView)
	assert.True(t, out.PreventDefault)
	assert.Empty(t, out.Signal)
	require.NotEmpty(t, c.cookies, "session cookie issued")

	out = c.key(`{"key":"k","metaKey":true}`)
	assert.Equal(t, "request_focus", out.Signal)
	require.NotNil(t, out.ActiveView)
	assert.Equal(t, "projects", *out.ActiveView)

	out = c.key(`{"key":"z","ctrlKey":true}`)
	assert.False(t, out.PreventDefault)
	require.NotNil(t, out.ActiveView)

	out = c.key(`{"key":"Escape"}`)
	assert.Equal(t, "release_focus", out.Signal)
	assert.Nil(t, out.ActiveView)
	assert.Len(t, out.Commands, 5)
}

func TestConsoleKeyRejectsMalformedBody(t *testing.T) {
	s, _ := newTestServer(t)
	c := &client{t: t, s: s}
	rec := c.do(http.MethodPost, "/console/key", "application/json", `{"key":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionsAreIsolated(t *testing.T) {
	s, _ := newTestServer(t)
	a := &client{t: t, s: s}
	b := &client{t: t, s: s}

	a.key(`{"key":"e","metaKey":true}`)

	rec := b.do(http.MethodGet, "/console", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"activeView":null`)
	assert.Equal(t, 2, s.sessions.len())
}

func TestQueryJSONAndHTMX(t *testing.T) {
	s, _ := newTestServer(t)
	c := &client{t: t, s: s}

	rec := c.do(http.MethodPost, "/console/query", "application/json", `{"query":"tech"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var snap keyJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	require.Len(t, snap.Commands, 1)
	assert.Equal(t, console.ViewTech, snap.Commands[0].ID)

	form := url.Values{"query": {"projcts"}}.Encode()
	rec = c.do(http.MethodPost, "/console/query", "application/x-www-form-urlencoded", form, "HX-Request", "true")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Search Results")
	assert.Contains(t, body, "Did you mean")
	assert.Contains(t, body, "/console/activate/projects")
}

func TestActivateAndClose(t *testing.T) {
	s, _ := newTestServer(t)
	c := &client{t: t, s: s}

	rec := c.do(http.MethodPost, "/console/activate/contact", "", "", "HX-Request", "true")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Let&#39;s work together")

	rec = c.do(http.MethodPost, "/console/activate/blog", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"activeView":"contact"`, "unknown id is ignored")

	rec = c.do(http.MethodPost, "/console/focus", "application/json", `{"focused":true}`)
	assert.Contains(t, rec.Body.String(), `"inputFocused":true`)

	rec = c.do(http.MethodPost, "/console/close", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"activeView":null`)
	assert.Contains(t, rec.Body.String(), `"inputFocused":false`)
}

func TestPages(t *testing.T) {
	s, _ := newTestServer(t)
	c := &client{t: t, s: s}

	rec := c.do(http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Viplove Itankar")
	assert.Contains(t, body, `data-shortcuts="KAPESM"`)
	assert.Contains(t, body, "Explore")

	rec = c.do(http.MethodGet, "/panels/experience", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Xceller IT Services")

	rec = c.do(http.MethodGet, "/panels/blog", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = c.do(http.MethodGet, "/static/console.js", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = c.do(http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminRequiresLogin(t *testing.T) {
	s, _ := newTestServer(t)
	c := &client{t: t, s: s}

	rec := c.do(http.MethodGet, "/admin/dashboard", "", "")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/admin/login", rec.Header().Get("Location"))

	bad := url.Values{"username": {"zach"}, "password": {"nope"}}.Encode()
	rec = c.do(http.MethodPost, "/admin/login", "application/x-www-form-urlencoded", bad)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	good := url.Values{"username": {"zach"}, "password": {"s3cret"}}.Encode()
	rec = c.do(http.MethodPost, "/admin/login", "application/x-www-form-urlencoded", good)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/admin/dashboard", rec.Header().Get("Location"))

	rec = c.do(http.MethodGet, "/admin/dashboard", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = c.do(http.MethodGet, "/admin/api/stats", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_visitors"`)

	rec = c.do(http.MethodGet, "/admin/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "spotlight_console_sessions_active")
}

func TestTransitionsReachAnalytics(t *testing.T) {
	s, db := newTestServer(t)
	c := &client{t: t, s: s}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.tracker.run(ctx) }()

	c.do(http.MethodGet, "/", "", "", "User-Agent", "test")
	c.do(http.MethodGet, "/", "", "", "DNT", "1")
	c.key(`{"key":"p","ctrlKey":true}`)
	c.key(`{"key":"s","metaKey":true}`)
	c.key(`{"key":"p","ctrlKey":true}`)
	c.key(`{"key":"Escape"}`)

	cancel()
	require.NoError(t, <-done)

	stats, err := db.Stats(context.Background(), time.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.TotalVisitors)
	assert.EqualValues(t, 3, stats.TotalActivations)
	require.NotEmpty(t, stats.TopViews)
	assert.Equal(t, store.ViewStat{View: "projects", Activations: 2}, stats.TopViews[0])
}

func TestSessionSweep(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	ss := newSessionStore(time.Minute, func(string) *console.Console { return console.New(console.DefaultCatalog()) })
	ss.now = func() time.Time { return now }

	a, created := ss.acquire("")
	require.True(t, created)
	_, created = ss.acquire(a.id)
	assert.False(t, created)

	now = now.Add(30 * time.Second)
	b, _ := ss.acquire("not-a-uuid")
	assert.NotEqual(t, "not-a-uuid", b.id)

	now = now.Add(45 * time.Second)
	assert.Equal(t, 1, ss.sweep())
	assert.Equal(t, 1, ss.len())
}

func TestConsoleScriptQueuesRequests(t *testing.T) {
	s, _ := newTestServer(t)
	c := &client{t: t, s: s}

	rec := c.do(http.MethodGet, "/static/console.js", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	js := rec.Body.String()
	// key, query, focus and htmx console posts share one promise chain
	assert.Contains(t, js, "pending = pending.then(task)")
	assert.Contains(t, js, "enqueue(() => sendKey(ev))")
	assert.Contains(t, js, "enqueue(() => sendQuery(query))")
	assert.Contains(t, js, "htmx:confirm")
	assert.NotContains(t, js, `addEventListener("keydown", async`)

	rec = c.do(http.MethodGet, "/", "", "")
	assert.NotContains(t, rec.Body.String(), `hx-post="/console/query"`)
}

func TestKeyEventsApplyInOrder(t *testing.T) {
	s, _ := newTestServer(t)
	c := &client{t: t, s: s}

	c.key(`{"key":"p","ctrlKey":true}`)
	out := c.key(`{"key":"Escape"}`)
	assert.Nil(t, out.ActiveView)

	c.key(`{"key":"Escape"}`)
	out = c.key(`{"key":"p","ctrlKey":true}`)
	require.NotNil(t, out.ActiveView)
	assert.Equal(t, "projects", *out.ActiveView)
}
