// Command luna runs the animated scene pages in the terminal
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/luna-scenes/audio"
	"github.com/lixenwraith/luna-scenes/config"
	"github.com/lixenwraith/luna-scenes/core"
	"github.com/lixenwraith/luna-scenes/metrics"
	"github.com/lixenwraith/luna-scenes/signature"
	"github.com/lixenwraith/luna-scenes/status"
	"github.com/lixenwraith/luna-scenes/terminal"
)

var (
	debugFlag   = flag.Bool("debug", false, "Write debug logs to logs/luna.log")
	configFlag  = flag.String("config", "", "Path to a TOML settings file")
	audioFlag   = flag.Bool("audio", false, "Play arrival chimes")
	metricsFlag = flag.String("metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9108")
	seedFlag    = flag.Int64("seed", 0, "Fix scene randomness, 0 keeps the configured seed")
	pageFlag    = flag.String("page", "", "Start page: landing, convergence or signatures")
)

func main() {
	// Panic recovery: restore the terminal before the report
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	logFile, log := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "luna: %v\n", err)
		os.Exit(1)
	}
	if *audioFlag {
		cfg.Audio.Enabled = true
	}
	if *metricsFlag != "" {
		cfg.Metrics.Addr = *metricsFlag
	}
	if *seedFlag != 0 {
		cfg.Engine.Seed = *seedFlag
	}
	if *pageFlag != "" {
		cfg.Page.Start = *pageFlag
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "luna: %v\n", err)
		os.Exit(1)
	}
	if cfg.Engine.Seed == 0 {
		cfg.Engine.Seed = time.Now().UnixNano()
	}
	log.Info().Int64("seed", cfg.Engine.Seed).Str("page", cfg.Page.Start).Msg("starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := signature.NewStore(cfg.Signatures.Path, cfg.Signatures.Keep, time.Now, log)
	if err := store.Load(); err != nil {
		log.Warn().Err(err).Msg("signatures not loaded, starting from the initial set")
	}

	reg := status.NewRegistry()

	var chimer *audio.Chimer
	if cfg.Audio.Enabled {
		chimer = audio.New(cfg.AudioConfig(), log)
		if err := chimer.Open(); err != nil {
			log.Warn().Err(err).Msg("audio unavailable, continuing without chimes")
			chimer = nil
		} else {
			defer chimer.Close()
		}
	}

	var exporter *metrics.Exporter
	if cfg.Metrics.Addr != "" {
		exporter = metrics.NewExporter(reg, log)
		core.Go(func() {
			if err := exporter.Serve(ctx, cfg.Metrics.Addr); err != nil {
				log.Error().Err(err).Msg("metrics endpoint failed")
			}
		})
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "luna: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "luna: failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	core.SetCrashCleanup(screen.Fini)
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()

	app, err := terminal.New(terminal.Options{
		Screen:   screen,
		Config:   cfg,
		Store:    store,
		Registry: reg,
		Chimer:   chimer,
		Exporter: exporter,
		Log:      log,
	})
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "luna: %v\n", err)
		os.Exit(1)
	}

	app.Run(ctx)
}
