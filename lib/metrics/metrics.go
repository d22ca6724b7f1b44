package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	FramesDrawn = promauto.NewCounter(prometheus.CounterOpts{
		Name: "glstage_frames_drawn_total",
		Help: "Total number of frames drawn and presented",
	})
	GLErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glstage_gl_errors_total",
		Help: "Total number of error codes reported by glGetError after a draw",
	}, []string{"code"})
	ShaderBuilds = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glstage_shader_builds_total",
		Help: "Total number of shader program builds by outcome",
	}, []string{"result"})
	FrameSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "glstage_frame_seconds",
		Help:    "Time between consecutive presented frames",
		Buckets: []float64{.002, .004, .008, .0167, .033, .066, .1, .25, .5, 1},
	})
)

func init() {
	for _, result := range []string{"ok", "compile_error", "link_error"} {
		ShaderBuilds.WithLabelValues(result).Add(0)
	}
}

// Handler should usually be mounted at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
