// Package jobs turns expanded combinations into schedulable render jobs:
// each combination gets its deduplicated name, its filter graph, and a
// built ffmpeg command wired to the derived output path.
package jobs

import (
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"adforge/command/render"
	"adforge/filtergraph"
	"adforge/models"
	"adforge/naming"
	"adforge/scheduler"
)

// Options carries the batch-wide parameters for job synthesis.
type Options struct {
	OutputDir string

	Width  int
	Height int
	CRF    int
	Preset string

	Overlay filtergraph.Overlay
	Trims   map[string]models.TrimSpec

	// TracksMultiplied mirrors the music expansion mode so track names
	// only enter filenames when they distinguish variants.
	TracksMultiplied bool

	// Verbose attaches per-job stderr progress parsing, reported through
	// Logger at debug level.
	Verbose bool
	Logger  zerolog.Logger
}

// Batch is the synthesis outcome: runnable jobs plus results for
// combinations that could not become jobs at all (an unbuildable graph
// fails that variant without touching the rest).
type Batch struct {
	Jobs   []scheduler.Job
	Failed []*models.RenderResult
}

// Total returns the number of combinations the batch covers.
func (b *Batch) Total() int {
	return len(b.Jobs) + len(b.Failed)
}

// Synthesize names every combination, builds its filter graph, and wraps
// it in a render command. Names are assigned for all combinations, failed
// ones included, so the report and any retry see stable filenames.
func Synthesize(combos []models.Combination, namer *naming.Engine, info filtergraph.MediaInfo, opts Options) *Batch {
	batch := &Batch{}

	for i, c := range combos {
		name := namer.Name(c, i, opts.TracksMultiplied)

		graph, err := filtergraph.Build(c, opts.Trims, info, filtergraph.Options{
			Width:   opts.Width,
			Height:  opts.Height,
			Overlay: opts.Overlay,
		})
		if err != nil {
			result, _ := models.NewRenderFailure(i, name, err)
			batch.Failed = append(batch.Failed, result)
			continue
		}

		outputPath := filepath.Join(opts.OutputDir, name+".mp4")
		builder := render.NewRenderBuilder(graph, outputPath)
		if opts.CRF > 0 {
			builder.SetCRF(opts.CRF)
		}
		if opts.Preset != "" {
			builder.SetPreset(opts.Preset)
		}
		if opts.Verbose {
			jobName := name
			builder.SetProgressCallback(graph.Duration, func(rp *models.RenderProgress) {
				opts.Logger.Debug().
					Str("name", jobName).
					Float64("percent", rp.Progress).
					Float64("speed", rp.Speed).
					Str("time", rp.CurrentTime).
					Msg("render progress")
			})
		}

		batch.Jobs = append(batch.Jobs, scheduler.Job{
			ID:    uuid.NewString(),
			Index: i,
			Name:  name,
			Cmd:   builder,
		})
	}

	return batch
}
