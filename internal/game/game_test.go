package game

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxel-island/internal/meshing"
	"voxel-island/internal/terrain"
	"voxel-island/internal/world"
)

func TestMeshBuildAverage(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, ok, err := meshBuildAverage(reg)
	require.NoError(t, err)
	assert.False(t, ok, "no metrics registered")

	m := meshing.NewMesher(meshing.WithMetrics(meshing.NewMetrics(reg)))
	_, ok, err = meshBuildAverage(reg)
	require.NoError(t, err)
	assert.False(t, ok, "no builds yet")

	c := world.NewChunk(0, 0)
	c.SetBlock(0, 0, 0, world.BlockTypeStone)
	for range 3 {
		_, err := m.BuildMesh(c)
		require.NoError(t, err)
	}
	avg, ok, err := meshBuildAverage(reg)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.GreaterOrEqual(t, avg, 0.0)
}

func TestFrameStatsString(t *testing.T) {
	s := frameStats{
		FPS:      60,
		Draw:     terrain.Stats{ChunksDrawn: 12, ChunksCulled: 4, Faces: 3000},
		Remeshes: 16,
		Models:   9,
	}
	line := s.String()
	assert.Equal(t, "FPS 60 | chunks 12 drawn, 4 culled | faces 3000 | models 9 | remeshes 16", line)

	s.HasMeshAvg, s.MeshAvgMs = true, 0.5
	s.HasRSS, s.RSSMB = true, 41.6
	s.HasCPU, s.CPUPercent = true, 12.4
	s.Wireframe = true
	s.CullingMode = "frustum"
	line = s.String()
	assert.True(t, strings.HasSuffix(line, "remeshes 16 (avg 0.50ms) | RSS 42MB | CPU 12% | frustum | wireframe"), line)
}

func TestFPSLimiter(t *testing.T) {
	l := NewFPSLimiter(100)
	start := time.Now()
	for range 5 {
		l.Wait()
	}
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)

	off := NewFPSLimiter(0)
	start = time.Now()
	for range 100 {
		off.Wait()
	}
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}
