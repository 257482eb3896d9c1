package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"adforge/combo"
	"adforge/config"
	"adforge/ffprobe"
	"adforge/filtergraph"
	"adforge/jobs"
	"adforge/models"
	"adforge/naming"
	"adforge/postprocess"
	"adforge/scheduler"
	"adforge/segments"
)

func main() {
	// Step 1: Load configuration (CLI flags > config file > defaults)
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Configuration error: %v\n", err)
		os.Exit(1)
	}

	// Step 2: Set up context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Step 3: Register signal handlers (Ctrl+C, SIGTERM)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n\n⚠️  Interrupt received, finishing running renders...")
		cancel()
	}()

	// Step 4: Run the generation pipeline
	if err := runPipeline(ctx, cfg); err != nil {
		if ctx.Err() == context.Canceled {
			fmt.Println("\n⚠️  Generation cancelled by user")
			os.Exit(130) // Standard exit code for SIGINT
		}
		fmt.Fprintf(os.Stderr, "\n❌ Pipeline error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds the diagnostic logger; verbose mode lowers the level.
func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

// runPipeline executes the complete variant generation workflow
func runPipeline(ctx context.Context, cfg *config.Config) error {
	startTime := time.Now()
	logger := newLogger(cfg.Verbose)

	fmt.Println("╔════════════════════════════════════════════════════════════════╗")
	fmt.Println("║                  ADFORGE - VARIANT GENERATION                  ║")
	fmt.Println("╚════════════════════════════════════════════════════════════════╝")
	fmt.Printf("Segments: %d pools\n", len(cfg.Segments))
	fmt.Printf("Output:   %s\n", cfg.Output.Dir)
	fmt.Println()

	// PHASE 1: Segment Pools
	fmt.Println("📦 Phase 1: Loading Segment Pools")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	pools := make([]models.Segment, 0, len(cfg.Segments))
	for _, sc := range cfg.Segments {
		pool, err := segments.LoadSegment(sc.Label, sc.Dir)
		if err != nil {
			return fmt.Errorf("loading segment %s: %w", sc.Label, err)
		}
		fmt.Printf("  %-12s %d clips\n", sc.Label+":", len(pool.Items))
		pools = append(pools, *pool)
	}

	tracks, err := segments.LoadMusic(cfg.Music.Dir)
	if err != nil {
		return fmt.Errorf("loading music: %w", err)
	}
	if len(tracks) > 0 {
		mode := "round-robin"
		if cfg.Music.Multiply {
			mode = "multiply"
		}
		fmt.Printf("  %-12s %d tracks (%s)\n", "music:", len(tracks), mode)
	}
	fmt.Println()

	// PHASE 2: Combination Expansion
	fmt.Println("🔀 Phase 2: Combination Expansion")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	combos, err := combo.Expand(pools, cfg.Overlays.Texts, tracks, cfg.Music.Multiply)
	if err != nil {
		return fmt.Errorf("expansion failed: %w", err)
	}

	fmt.Printf("  Combinations: %d\n", len(combos))
	if len(cfg.Overlays.Texts) > 0 {
		fmt.Printf("  Overlays:     %d texts\n", len(cfg.Overlays.Texts))
	}
	fmt.Println()

	// PHASE 3: Media Analysis
	fmt.Println("📊 Phase 3: Media Analysis")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	cache := ffprobe.BuildCache(pools, nil)
	fmt.Printf("  Probed: %d unique clips\n", cache.Size())
	fmt.Println()

	// PHASE 4: Job Synthesis
	fmt.Println("🏷️  Phase 4: Naming and Job Synthesis")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	trims, err := cfg.ParsedTrims()
	if err != nil {
		return fmt.Errorf("parsing trims: %w", err)
	}

	namer := naming.NewEngine(cfg.Output.Template, cfg.Labels())
	batch := jobs.Synthesize(combos, namer, cache, jobs.Options{
		OutputDir: cfg.Output.Dir,
		Width:     cfg.Video.Width,
		Height:    cfg.Video.Height,
		CRF:       cfg.Video.CRF,
		Preset:    cfg.Video.Preset,
		Overlay: filtergraph.Overlay{
			Placement: filtergraph.Placement(cfg.Overlays.Placement),
			FontSize:  cfg.Overlays.FontSize,
			FontColor: cfg.Overlays.FontColor,
		},
		Trims:            trims,
		TracksMultiplied: cfg.Music.Multiply,
		Verbose:          cfg.Verbose,
		Logger:           logger,
	})

	fmt.Printf("  Jobs:   %d\n", len(batch.Jobs))
	if len(batch.Failed) > 0 {
		fmt.Printf("  Failed: %d (graph construction)\n", len(batch.Failed))
		for _, result := range batch.Failed {
			logger.Warn().
				Str("name", result.Name).
				Str("reason", result.Diagnostic()).
				Msg("combination skipped")
		}
	}
	fmt.Println()

	// Dry run: show the planned commands and stop
	if cfg.DryRun {
		fmt.Println("═══════════════════════════════════════════════════════════")
		fmt.Println("                      DRY RUN MODE")
		fmt.Println("═══════════════════════════════════════════════════════════")
		cfg.PrintConfig()
		fmt.Println()
		for _, job := range batch.Jobs {
			cmdStr, err := job.Cmd.DryRun()
			if err != nil {
				return fmt.Errorf("dry run for %s: %w", job.Name, err)
			}
			fmt.Printf("# %s\n%s\n\n", job.Name, cmdStr)
		}
		fmt.Printf("✓ %d render commands planned. No rendering will be performed.\n", len(batch.Jobs))
		return nil
	}

	// Output directories exist before any worker starts; jobs never
	// create directories themselves.
	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if cfg.Thumbnails.Enabled {
		if err := os.MkdirAll(filepath.Join(cfg.Output.Dir, "thumbnails"), 0755); err != nil {
			return fmt.Errorf("creating thumbnails directory: %w", err)
		}
	}

	// PHASE 5: Rendering
	fmt.Println("🎬 Phase 5: Rendering")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("  Workers: %d\n", cfg.Workers)

	renderStart := time.Now()
	failed := 0
	pool := scheduler.NewPool(cfg.Workers, logger)
	pool.SetProgressCallback(func(completed, total int, result *models.RenderResult) {
		if !result.Success {
			failed++
		}
		elapsed := time.Since(renderStart).Seconds()
		rate := float64(completed) / elapsed
		eta := 0.0
		if rate > 0 {
			eta = float64(total-completed) / rate
		}
		fmt.Printf("\r  variant=%d/%d failed=%d rate=%.2f/s eta=%.0fs   ",
			completed, total, failed, rate, eta)
	})

	results := pool.Run(ctx, batch.Jobs)
	fmt.Printf("\r  ✓ Rendered %d variants in %.2fs                    \n",
		len(results), time.Since(renderStart).Seconds())
	fmt.Println()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	// PHASE 6: Post-processing
	if cfg.Captions.Enabled || cfg.Thumbnails.Enabled {
		fmt.Println("✨ Phase 6: Post-processing")
		fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

		var transcriber postprocess.Transcriber
		if cfg.Captions.Enabled {
			whisper := postprocess.NewWhisperCLI()
			if cfg.Captions.Model != "" {
				whisper.Model = cfg.Captions.Model
			}
			whisper.Language = cfg.Captions.Language
			transcriber = whisper
		}

		processor := postprocess.New(transcriber, logger, postprocess.Options{
			Captions:           cfg.Captions.Enabled,
			CaptionStyle:       cfg.Captions.Style,
			Thumbnails:         cfg.Thumbnails.Enabled,
			ThumbnailTimestamp: cfg.Thumbnails.Timestamp,
		})
		processor.Apply(results)

		if cfg.Captions.Enabled {
			fmt.Println("  ✓ Captions processed")
		}
		if cfg.Thumbnails.Enabled {
			fmt.Printf("  ✓ Thumbnails: %d extracted\n", postprocess.Summary(results))
		}
		fmt.Println()
	}

	// PHASE 7: Final Report
	succeeded := printReport(batch, results, startTime)
	if batch.Total() > 0 && succeeded == 0 {
		return fmt.Errorf("all %d variants failed", batch.Total())
	}

	return nil
}

// printReport summarizes the batch and returns the success count.
func printReport(batch *jobs.Batch, results []*models.RenderResult, startTime time.Time) int {
	succeeded := 0
	var failures []*models.RenderResult

	for _, result := range results {
		if result == nil {
			continue
		}
		if result.Success {
			succeeded++
		} else {
			failures = append(failures, result)
		}
	}
	failures = append(failures, batch.Failed...)

	elapsed := time.Since(startTime)

	fmt.Println("═══════════════════════════════════════════════════════════")
	if len(failures) == 0 {
		fmt.Println("                     ✅ SUCCESS!")
	} else {
		fmt.Println("                 ⚠️  COMPLETED WITH FAILURES")
	}
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Printf("  Variants:    %d requested\n", batch.Total())
	fmt.Printf("  Rendered:    %d\n", succeeded)
	fmt.Printf("  Failed:      %d\n", len(failures))
	fmt.Printf("  Total time:  %.2fs\n", elapsed.Seconds())

	if len(failures) > 0 {
		fmt.Println("\n  Failures:")
		for _, result := range failures {
			fmt.Printf("    ✗ %s\n      %s\n", result.Name, result.Diagnostic())
		}
	}
	fmt.Println("═══════════════════════════════════════════════════════════")

	return succeeded
}
