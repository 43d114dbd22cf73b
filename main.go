/*
Gridflight flies a first-person camera over a wraparound grid world.
*/
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/gridflight/engine"
	"github.com/spaghettifunk/gridflight/engine/config"
	"github.com/spaghettifunk/gridflight/engine/core"
	"github.com/spaghettifunk/gridflight/engine/platform"
	"github.com/spaghettifunk/gridflight/engine/platform/desktop"
	"github.com/spaghettifunk/gridflight/engine/renderer"
	"github.com/spaghettifunk/gridflight/testbed"
)

func main() {
	configPath := flag.String("config", "", "TOML or YAML settings file, watched for changes")
	headless := flag.Bool("headless", false, "run without a window")
	frames := flag.Uint64("frames", 0, "stop after this many frames (0 uses the config)")
	telemetryPath := flag.String("telemetry", "", "write a CSV flight log to this path")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		core.LogFatal("loading configuration: %s", err)
	}
	if *frames > 0 {
		cfg.Frame.MaxFrames = *frames
	}
	if *telemetryPath != "" {
		cfg.Telemetry.Path = *telemetryPath
	}
	if *headless && cfg.Frame.MaxFrames == 0 {
		core.LogWarn("headless without a frame limit runs until interrupted")
	}

	game, err := testbed.NewFlightGame(cfg, *configPath)
	if err != nil {
		core.LogFatal(err.Error())
	}

	var p platform.Platform = desktop.NewWindow()
	if *headless {
		p = platform.NewHeadless()
	}

	e, err := engine.New(game.Game, p, renderer.NewLogBackend(cfg.Window.Width, cfg.Window.Height))
	if err != nil {
		core.LogFatal(err.Error())
	}

	if err := e.Initialize(); err != nil {
		core.LogFatal(err.Error())
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	go func() {
		sig := <-sigCh
		core.LogInfo("received %s, stopping", sig)
		e.Stop()
	}()

	runErr := e.Run()
	if err := e.Shutdown(); err != nil {
		core.LogError(err.Error())
	}
	if runErr != nil {
		core.LogFatal(runErr.Error())
	}
}
