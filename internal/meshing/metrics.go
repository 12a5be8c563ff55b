package meshing

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts mesh builds. Collectors are registered on the supplied registerer;
// a nil registerer leaves them unregistered.
type Metrics struct {
	Builds        prometheus.Counter
	FacesEmitted  prometheus.Counter
	LastVertices  prometheus.Gauge
	BuildDuration prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Builds: f.NewCounter(prometheus.CounterOpts{
			Namespace: "voxel",
			Subsystem: "mesher",
			Name:      "builds_total",
			Help:      "Number of chunk meshes built.",
		}),
		FacesEmitted: f.NewCounter(prometheus.CounterOpts{
			Namespace: "voxel",
			Subsystem: "mesher",
			Name:      "faces_emitted_total",
			Help:      "Number of quads emitted across all builds.",
		}),
		LastVertices: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "voxel",
			Subsystem: "mesher",
			Name:      "last_mesh_vertices",
			Help:      "Vertex count of the most recent mesh.",
		}),
		BuildDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "voxel",
			Subsystem: "mesher",
			Name:      "build_duration_seconds",
			Help:      "Time spent building one chunk mesh.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
		}),
	}
}

func (m *Metrics) observe(mesh *Mesh, d time.Duration) {
	m.Builds.Inc()
	m.FacesEmitted.Add(float64(mesh.FaceCount()))
	m.LastVertices.Set(float64(mesh.VertexCount()))
	m.BuildDuration.Observe(d.Seconds())
}
