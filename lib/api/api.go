package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/pprof"
	"time"

	"github.com/fosdem/glstage/lib/config"
	"github.com/fosdem/glstage/lib/metrics"
	"github.com/fosdem/glstage/lib/rendering/glapi"
	"github.com/fosdem/glstage/lib/stats"
)

type Api struct {
	srv  http.Server
	mux  *http.ServeMux
	cfg  *config.ApiCfg
	info glapi.Info
	quit func()
	log  *slog.Logger

	Stats *stats.Counter

	// pushInterval is how often websocket clients get a stats update
	pushInterval time.Duration
}

// New builds the API. quit is called when a client asks the program to
// stop and must be safe to call from any goroutine.
func New(cfg *config.ApiCfg, st *stats.Counter, info glapi.Info, quit func()) *Api {
	a := &Api{}
	a.cfg = cfg
	a.mux = http.NewServeMux()
	a.info = info
	a.quit = quit
	a.log = slog.With("module", "api")
	a.Stats = st
	a.pushInterval = 2 * time.Second
	a.srv.Addr = cfg.Bind
	a.srv.Handler = a.mux

	if a.cfg.EnableProfiler {
		a.mux.HandleFunc("/prof", a.profileCPU)
	}
	a.mux.HandleFunc("POST /api/quit", a.handleQuit)
	a.mux.HandleFunc("GET /api/stats", a.getStats)
	a.mux.HandleFunc("GET /api/info", a.getInfo)
	a.mux.HandleFunc("/api/ws", a.handleWebsocket)
	a.mux.Handle("GET /metrics", metrics.Handler())
	return a
}

func (a *Api) Handler() http.Handler {
	return a.mux
}

func (a *Api) Serve() error {
	return a.srv.ListenAndServe()
}

func (a *Api) Shutdown(ctx context.Context) error {
	return a.srv.Shutdown(ctx)
}

func (a *Api) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	encoder := json.NewEncoder(w)
	err := encoder.Encode(v)
	if err != nil {
		a.log.Error(fmt.Sprintf("could not write response: %s", err))
	}
}

// @Summary	Frame and uptime counters of the render loop
// @Router		/api/stats [get]
// @Tags		base
// @Produce	json
// @Success	200	{object}	stats.Stats
func (a *Api) getStats(w http.ResponseWriter, _ *http.Request) {
	a.writeJSON(w, a.Stats.Snapshot())
}

// @Summary	Vendor, renderer and version strings of the OpenGL driver
// @Router		/api/info [get]
// @Tags		base
// @Produce	json
// @Success	200	{object}	glapi.Info
func (a *Api) getInfo(w http.ResponseWriter, _ *http.Request) {
	a.writeJSON(w, a.info)
}

// @Summary	Close the window and stop the program after the current frame
// @Router		/api/quit [post]
// @Tags		base
// @Success	200
func (a *Api) handleQuit(w http.ResponseWriter, _ *http.Request) {
	a.log.Info("shutting down as per api request")
	a.quit()
	a.writeJSON(w, "ok")
}

// @Summary	Record a 10 second CPU profile
// @Router		/prof [get]
// @Tags		debug
// @Produce	octet-stream
// @Success	200
// @Failure	500	{string}	string	"A profile is already being recorded"
func (a *Api) profileCPU(w http.ResponseWriter, _ *http.Request) {
	err := pprof.StartCPUProfile(w)
	if err != nil {
		http.Error(w, fmt.Sprintf("Could not start CPU profile: %s", err), http.StatusInternalServerError)
		return
	}
	time.Sleep(10 * time.Second)
	pprof.StopCPUProfile()
}

// ServeInBackground starts the API when it is configured and returns nil
// otherwise.
func ServeInBackground(cfg *config.ApiCfg, st *stats.Counter, info glapi.Info, quit func()) *Api {
	if cfg == nil {
		return nil
	}
	theApi := New(cfg, st, info, quit)

	theApi.log.Info(fmt.Sprintf("starting web server on %s", cfg.Bind))
	go func() {
		err := theApi.Serve()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			theApi.log.Error(fmt.Sprintf("could not start web server: %s", err))
		}
	}()
	return theApi
}
