package game

import (
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"voxel-island/internal/terrain"
)

const buildDurationMetric = "voxel_mesher_build_duration_seconds"

// meshBuildAverage reads the mesher histogram and returns the mean build time in ms
func meshBuildAverage(g prometheus.Gatherer) (float64, bool, error) {
	families, err := g.Gather()
	if err != nil {
		return 0, false, fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if mf.GetName() != buildDurationMetric || mf.GetType() != dto.MetricType_HISTOGRAM {
			continue
		}
		var count uint64
		var sum float64
		for _, m := range mf.GetMetric() {
			h := m.GetHistogram()
			count += h.GetSampleCount()
			sum += h.GetSampleSum()
		}
		if count == 0 {
			return 0, false, nil
		}
		return sum / float64(count) * 1000, true, nil
	}
	return 0, false, nil
}

// frameStats is the data behind the HUD stats line
type frameStats struct {
	FPS         int
	Draw        terrain.Stats
	Remeshes    int
	Models      int
	MeshAvgMs   float64
	HasMeshAvg  bool
	RSSMB       float64
	HasRSS      bool
	CPUPercent  float64
	HasCPU      bool
	Wireframe   bool
	CullingMode string
}

func (s frameStats) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "FPS %d | chunks %d drawn, %d culled | faces %d | models %d | remeshes %d",
		s.FPS, s.Draw.ChunksDrawn, s.Draw.ChunksCulled, s.Draw.Faces, s.Models, s.Remeshes)
	if s.HasMeshAvg {
		fmt.Fprintf(&b, " (avg %.2fms)", s.MeshAvgMs)
	}
	if s.HasRSS {
		fmt.Fprintf(&b, " | RSS %.0fMB", s.RSSMB)
	}
	if s.HasCPU {
		fmt.Fprintf(&b, " | CPU %.0f%%", s.CPUPercent)
	}
	if s.CullingMode != "" {
		fmt.Fprintf(&b, " | %s", s.CullingMode)
	}
	if s.Wireframe {
		b.WriteString(" | wireframe")
	}
	return b.String()
}
