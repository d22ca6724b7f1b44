package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fosdem/glstage/lib/config"
	"github.com/fosdem/glstage/lib/rendering/glapi"
	"github.com/fosdem/glstage/lib/stats"
	"github.com/fosdem/glstage/lib/test"
	"github.com/gorilla/websocket"
)

func newTestApi(t *testing.T) (*Api, *atomic.Int32) {
	t.Helper()
	quits := &atomic.Int32{}
	st := stats.New()
	st.Update(0)
	info := glapi.Info{Vendor: "glfake", Renderer: "glfake software", Version: "4.1", GLSLVersion: "4.10"}
	a := New(&config.ApiCfg{Bind: "127.0.0.1:0"}, st, info, func() { quits.Add(1) })
	return a, quits
}

func TestGetStats(t *testing.T) {
	a, _ := newTestApi(t)
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))

	test.DemandEquality(t, rec.Code, http.StatusOK)
	var s stats.Stats
	test.DemandSuccess(t, json.NewDecoder(rec.Body).Decode(&s))
	test.ExpectEquality(t, s.Frames, uint64(1))
}

func TestGetInfo(t *testing.T) {
	a, _ := newTestApi(t)
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/info", nil))

	test.DemandEquality(t, rec.Code, http.StatusOK)
	var info glapi.Info
	test.DemandSuccess(t, json.NewDecoder(rec.Body).Decode(&info))
	test.ExpectEquality(t, info.Vendor, "glfake")
	test.ExpectEquality(t, info.GLSLVersion, "4.10")
}

func TestQuit(t *testing.T) {
	a, quits := newTestApi(t)

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/quit", nil))
	test.ExpectEquality(t, rec.Code, http.StatusMethodNotAllowed)
	test.ExpectEquality(t, quits.Load(), int32(0))

	rec = httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/quit", nil))
	test.ExpectEquality(t, rec.Code, http.StatusOK)
	test.ExpectEquality(t, strings.TrimSpace(rec.Body.String()), `"ok"`)
	test.ExpectEquality(t, quits.Load(), int32(1))
}

func TestMetrics(t *testing.T) {
	a, _ := newTestApi(t)
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	test.DemandEquality(t, rec.Code, http.StatusOK)
	body, err := io.ReadAll(rec.Body)
	test.DemandSuccess(t, err)
	test.ExpectSubstring(t, string(body), "glstage_shader_builds_total")
}

func TestProfilerDisabled(t *testing.T) {
	a, _ := newTestApi(t)
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/prof", nil))
	test.ExpectEquality(t, rec.Code, http.StatusNotFound)
}

func TestWebsocketPushesStats(t *testing.T) {
	a, _ := newTestApi(t)
	a.pushInterval = 10 * time.Millisecond
	srv := httptest.NewServer(a.Handler())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	test.DemandSuccess(t, err)

	test.DemandSuccess(t, ws.SetReadDeadline(time.Now().Add(5*time.Second)))
	for range 2 {
		_, msg, err := ws.ReadMessage()
		test.DemandSuccess(t, err)
		var s stats.Stats
		test.DemandSuccess(t, json.Unmarshal(msg, &s))
		test.ExpectEquality(t, s.Frames, uint64(1))
	}
	test.ExpectEquality(t, a.Stats.Snapshot().WsClients, 1)

	test.DemandSuccess(t, ws.Close())
	deadline := time.Now().Add(5 * time.Second)
	for a.Stats.Snapshot().WsClients != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	test.ExpectEquality(t, a.Stats.Snapshot().WsClients, 0)
}

func TestServeInBackgroundDisabled(t *testing.T) {
	test.ExpectSuccess(t, ServeInBackground(nil, stats.New(), glapi.Info{}, func() {}) == nil)
}
