package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/game"
	"github.com/pthm-cable/critters/render"
	"github.com/pthm-cable/critters/species"
	"github.com/pthm-cable/critters/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	host := flag.String("species", species.GuineaPig, "Host species placed on the map alongside predators")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 10000, "Stop after N ticks (0 = until every animal is dead)")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	verbose := flag.Bool("verbose", false, "Log births, deaths and removals")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	framesDir := flag.String("frames-dir", "", "Directory for PNG frames (empty = no frames)")
	frameEvery := flag.Int("frame-every", 100, "Ticks between frames")
	tilesDir := flag.String("tiles-dir", "", "Directory of species icons (<species>.png, <species>_dead.png)")
	watchTiles := flag.Bool("watch-tiles", false, "Reload icons when files in -tiles-dir change")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	reg := game.NewRegistry()
	if err := species.Register(reg); err != nil {
		slog.Error("failed to register species", "error", err)
		os.Exit(1)
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	if output != nil {
		manifest := telemetry.NewManifest(rngSeed, reg.Names(), *maxTicks)
		if err := output.WriteConfig(cfg); err != nil {
			slog.Error("failed to write config snapshot", "error", err)
		}
		if err := output.WriteManifest(manifest); err != nil {
			slog.Error("failed to write manifest", "error", err)
		}
		slog.Info("output_dir", "path", output.Dir(), "run_id", manifest.RunID)
	}

	sim := game.New(cfg, reg, game.Options{
		Seed:      rngSeed,
		Telemetry: *logStats || output != nil,
		LogStats:  *logStats,
		Output:    output,
	})
	defer sim.Close()

	if err := sim.Populate(*host); err != nil {
		slog.Error("failed to generate map", "error", err)
		os.Exit(1)
	}

	var renderer *render.Renderer
	if *framesDir != "" {
		if err := os.MkdirAll(*framesDir, 0755); err != nil {
			slog.Error("failed to create frames directory", "error", err)
			os.Exit(1)
		}

		var tiles *render.TileSet
		if *tilesDir != "" {
			tiles = render.NewTileSet(cfg.Render.TileSize)
			if err := tiles.LoadDir(*tilesDir); err != nil {
				slog.Warn("tiles unavailable, drawing markers", "error", err)
			} else if *watchTiles {
				tw, err := render.WatchTiles(tiles, *tilesDir)
				if err != nil {
					slog.Warn("tile watcher unavailable", "error", err)
				} else {
					defer tw.Close()
				}
			}
		}
		renderer = render.NewRenderer(cfg, tiles)
	}

	slog.Info("starting simulation",
		"seed", rngSeed,
		"species", *host,
		"max_ticks", *maxTicks,
	)

	for *maxTicks == 0 || sim.Tick() < *maxTicks {
		if renderer != nil && *frameEvery > 0 && sim.Tick()%*frameEvery == 0 {
			if _, err := renderer.WriteFrame(*framesDir, sim); err != nil {
				slog.Error("failed to write frame", "error", err)
			}
		}

		sim.NextTick()

		if sim.CountAlive("") == 0 {
			slog.Info("no animals left", "tick", sim.Tick())
			break
		}
	}

	sim.LogWorldState()
	perf := sim.PerfStats()
	slog.Info("simulation finished", "tick", sim.Tick(), "perf", perf)
}
