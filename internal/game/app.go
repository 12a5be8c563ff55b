package game

import (
	"context"
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/prometheus/client_golang/prometheus"

	"voxel-island/internal/camera"
	"voxel-island/internal/config"
	"voxel-island/internal/graphics"
	"voxel-island/internal/input"
	"voxel-island/internal/logging"
	"voxel-island/internal/meshing"
	"voxel-island/internal/profiling"
	"voxel-island/internal/terrain"
	"voxel-island/internal/world"
)

const statsInterval = 250 * time.Millisecond

// App owns everything a frame touches: window, camera, world and GPU resources.
// It is the only place they live; nothing is process-global.
type App struct {
	window *glfw.Window
	input  *input.InputManager
	cfg    *config.Settings
	log    *logging.Logger

	cam     *camera.FreeCamera
	terrain *terrain.Terrain
	chunks  *graphics.ChunkRenderer
	atlas   *graphics.Texture
	hud     *graphics.HUD

	registry *prometheus.Registry
	profiler *profiling.Profiler
	proc     *profiling.ProcessStats
	limiter  *FPSLimiter

	frames       int
	fps          int
	lastFPSCheck time.Time
	lastStats    time.Time
	lastTime     time.Time
	stats        string
}

// NewApp builds the world and GPU resources. The window's GL context must be current.
func NewApp(window *glfw.Window, cfg *config.Settings, log *logging.Logger) (*App, error) {
	a := &App{
		window:   window,
		input:    input.NewInputManager(),
		cfg:      cfg,
		log:      log.With("game"),
		registry: prometheus.NewRegistry(),
		profiler: profiling.New(),
		limiter:  NewFPSLimiter(cfg.Render.TargetFPS),
	}

	proc, err := profiling.NewProcessStats()
	if err != nil {
		a.log.Warnf("process stats unavailable: %v", err)
	}
	a.proc = proc

	a.atlas = a.loadAtlas()

	a.chunks, err = graphics.NewChunkRenderer(a.atlas, log)
	if err != nil {
		a.atlas.Delete()
		return nil, err
	}
	a.chunks.Wireframe = cfg.Render.Wireframe

	width, height := window.GetFramebufferSize()
	a.hud, err = graphics.NewHUD(width, height)
	if err != nil {
		a.chunks.Dispose()
		a.atlas.Delete()
		return nil, err
	}
	gl.Viewport(0, 0, int32(width), int32(height))

	wcfg := cfg.World
	gen := world.NewGenerator(wcfg.GeneratorParams(), wcfg.Width, wcfg.Depth)
	w := world.New(wcfg.Width, wcfg.Depth, gen)

	opts := []meshing.Option{
		meshing.WithAtlas(cfg.Atlas.Grid()),
		meshing.WithMetrics(meshing.NewMetrics(a.registry)),
	}
	if wcfg.CullAcrossChunks {
		opts = append(opts, meshing.WithNeighbors(w))
	}

	visibility := terrain.AlwaysVisible
	if cfg.Render.FrustumCulling {
		visibility = terrain.FrustumVisible
	}
	a.terrain = terrain.New(w, meshing.NewMesher(opts...), a.chunks,
		terrain.WithVisibility(visibility),
		terrain.WithLogger(log),
		terrain.WithDebugColors(cfg.Render.DebugChunkColors),
	)

	start := time.Now()
	a.terrain.InitChunks()
	a.log.Infof("world generated in %v", time.Since(start))

	a.cam = camera.NewFreeCamera(camera.New(cfg.Render.FOV, width, height))
	a.placeCamera(w)

	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		a.resize(w, h)
	})
	a.input.Attach(window)

	return a, nil
}

// loadAtlas falls back to a procedural atlas when the image cannot be read
func (a *App) loadAtlas() *graphics.Texture {
	acfg := a.cfg.Atlas
	img, err := graphics.LoadAtlasImage(acfg.Path, acfg.Grid(), acfg.CellSize)
	if err != nil {
		a.log.Warnf("atlas %s unavailable, using generated atlas: %v", acfg.Path, err)
		img = graphics.ProceduralAtlas(acfg.Grid(), acfg.CellSize)
	}
	return graphics.UploadRGBA(img, gl.NEAREST)
}

// placeCamera puts the camera outside one corner of the island, looking at its center
func (a *App) placeCamera(w *world.World) {
	extentX := float32(w.Width()*world.ChunkSize) * world.BlockSize
	extentZ := float32(w.Depth()*world.ChunkSize) * world.BlockSize
	center := mgl32.Vec3{extentX / 2, world.ChunkSize / 2, extentZ / 2}
	a.cam.Camera.Position = mgl32.Vec3{-extentX * 0.25, world.ChunkSize * 1.5, -extentZ * 0.25}
	a.cam.LookAt(center)
}

func (a *App) resize(width, height int) {
	if width == 0 || height == 0 {
		return
	}
	gl.Viewport(0, 0, int32(width), int32(height))
	a.cam.Camera.SetViewport(width, height)
	a.hud.SetViewport(width, height)
}

// Run drives frames until the window closes, Escape is pressed or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.lastTime = time.Now()
	a.lastFPSCheck = a.lastTime
	for !a.window.ShouldClose() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := a.tick(); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) tick() error {
	a.profiler.ResetFrame()
	now := time.Now()
	dt := float32(now.Sub(a.lastTime).Seconds())
	a.lastTime = now

	func() { defer a.profiler.Track("glfw.PollEvents")(); glfw.PollEvents() }()
	a.update(dt)

	if err := a.render(); err != nil {
		return err
	}

	func() { defer a.profiler.Track("glfw.SwapBuffers")(); a.window.SwapBuffers() }()

	a.frames++
	if time.Since(a.lastFPSCheck) >= time.Second {
		a.fps = a.frames
		a.frames = 0
		a.lastFPSCheck = time.Now()
	}

	if d := time.Since(now); a.cfg.Render.TargetFPS > 0 && d > 2*time.Second/time.Duration(a.cfg.Render.TargetFPS) {
		a.log.Debugf("slow frame: %v. Top tasks: %s", d, a.profiler.TopN(3))
	}

	a.input.PostUpdate()
	a.limiter.Wait()
	return nil
}

func (a *App) update(dt float32) {
	defer a.profiler.Track("game.update")()

	if a.input.JustPressed(input.ActionQuit) {
		a.window.SetShouldClose(true)
	}
	if a.input.JustPressed(input.ActionToggleWireframe) {
		a.chunks.Wireframe = !a.chunks.Wireframe
	}
	if a.input.JustPressed(input.ActionRemesh) {
		a.log.Infof("remeshing all chunks")
		a.terrain.MarkAllDirty()
	}

	_, height := a.window.GetFramebufferSize()
	a.cam.Update(a.input.Controls(), dt, height, mgl32.Vec3{})

	// keep the cursor pinned to the window center while looking
	winW, winH := a.window.GetSize()
	cx, cy := float64(winW)/2, float64(winH)/2
	switch {
	case a.input.IsActive(input.ActionLook):
		a.window.SetInputMode(glfw.CursorMode, glfw.CursorHidden)
		a.window.SetCursorPos(cx, cy)
		a.input.WarpCursor(cx, cy)
	case a.input.JustReleased(input.ActionLook):
		a.window.SetCursorPos(cx, cy)
		a.input.WarpCursor(cx, cy)
		a.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}

func (a *App) render() error {
	gl.ClearColor(0.96, 0.96, 0.96, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	cam := a.cam.Camera
	a.chunks.Begin(cam.ViewMatrix(), cam.ProjectionMatrix())
	err := func() error {
		defer a.profiler.Track("terrain.DrawChunks")()
		return a.terrain.DrawChunks(cam)
	}()
	a.chunks.End()
	if err != nil {
		return fmt.Errorf("draw chunks: %w", err)
	}
	if err := graphics.CheckError("draw chunks"); err != nil {
		a.log.Warnf("%v", err)
	}

	if time.Since(a.lastStats) >= statsInterval {
		a.stats = a.collectStats().String()
		a.lastStats = time.Now()
	}
	func() {
		defer a.profiler.Track("hud.Draw")()
		a.hud.Draw(graphics.HUDState{
			Stats:     a.stats,
			Highlight: a.input.IsActive(input.ActionHighlight),
		})
	}()
	return nil
}

func (a *App) collectStats() frameStats {
	s := frameStats{
		FPS:       a.fps,
		Draw:      a.terrain.Stats(),
		Remeshes:  a.terrain.TotalRemeshes(),
		Models:    a.chunks.Models(),
		Wireframe: a.chunks.Wireframe,
	}
	if a.cfg.Render.FrustumCulling {
		s.CullingMode = "frustum"
	}
	avg, ok, err := meshBuildAverage(a.registry)
	if err != nil {
		a.log.Debugf("%v", err)
	}
	s.MeshAvgMs, s.HasMeshAvg = avg, ok
	if a.proc != nil {
		if rss, err := a.proc.RSSMegabytes(); err == nil {
			s.RSSMB, s.HasRSS = rss, true
		}
		if cpu, err := a.proc.CPUPercent(); err == nil {
			s.CPUPercent, s.HasCPU = cpu, true
		}
	}
	return s
}

// Dispose releases GPU resources in reverse order of creation
func (a *App) Dispose() {
	a.terrain.Release()
	a.hud.Dispose()
	a.chunks.Dispose()
	a.atlas.Delete()
}
