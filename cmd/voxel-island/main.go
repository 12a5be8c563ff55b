package main

import (
	"context"
	"errors"
	"log"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/closer"

	"voxel-island/internal/config"
	"voxel-island/internal/game"
	"voxel-island/internal/logging"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	defer closer.Close()

	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("load settings: %v", err)
	}
	logger := logging.NewConsole(cfg.Level())

	// GL and glfw teardown must happen on the main thread, so the closer hook
	// only stops the loop and waits for run to clean up.
	ctx, cancel := context.WithCancel(context.Background())
	finished := make(chan struct{})
	closer.Bind(func() {
		cancel()
		<-finished
	})

	code := run(ctx, cfg, logger)
	close(finished)
	if code != 0 {
		closer.Exit(code)
	}
}

func run(ctx context.Context, cfg *config.Settings, logger *logging.Logger) int {
	if err := glfw.Init(); err != nil {
		logger.Errorf("init glfw: %v", err)
		return 1
	}
	defer glfw.Terminate()

	window, err := game.SetupWindow(cfg.Window)
	if err != nil {
		logger.Errorf("%v", err)
		return 1
	}
	defer window.Destroy()

	app, err := game.NewApp(window, cfg, logger)
	if err != nil {
		logger.Errorf("start: %v", err)
		return 1
	}
	defer app.Dispose()

	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Errorf("%v", err)
		return 1
	}
	logger.Infof("window closed")
	return 0
}
