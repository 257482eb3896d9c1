// Package postprocess applies the optional per-variant steps after
// rendering: caption generation and burn-in, and thumbnail extraction.
//
// Every step here is soft-fail. A variant whose captions or thumbnail
// cannot be produced stays a successful render; the failure is logged and
// the batch moves on.
package postprocess

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"adforge/command"
	"adforge/command/caption"
	"adforge/command/thumbnail"
	"adforge/models"
)

// Options selects which post-processing steps run and how.
type Options struct {
	Captions     bool
	CaptionStyle string // empty uses the caption builder's default

	Thumbnails         bool
	ThumbnailTimestamp float64 // seconds; zero uses the builder's default
}

// Processor runs the enabled post-processing steps over render results.
type Processor struct {
	transcriber Transcriber
	logger      zerolog.Logger
	opts        Options

	// run executes a built command; tests substitute a stub.
	run func(command.Command) error
}

// New creates a processor. transcriber may be nil when captions are
// disabled.
func New(transcriber Transcriber, logger zerolog.Logger, opts Options) *Processor {
	return &Processor{
		transcriber: transcriber,
		logger:      logger,
		opts:        opts,
		run:         func(cmd command.Command) error { return cmd.Run() },
	}
}

// Apply post-processes every successful result in place. Failed renders
// are skipped untouched.
func (p *Processor) Apply(results []*models.RenderResult) {
	for _, result := range results {
		if result == nil || !result.Success {
			continue
		}
		if p.opts.Captions {
			p.applyCaptions(result)
		}
		if p.opts.Thumbnails {
			p.applyThumbnail(result)
		}
	}
}

// applyCaptions transcribes the variant and burns the captions back into
// it, replacing the original file atomically so a crash mid-burn never
// leaves a corrupt variant in the output directory.
func (p *Processor) applyCaptions(result *models.RenderResult) {
	if p.transcriber == nil {
		p.logger.Warn().
			Str("name", result.Name).
			Msg("captions enabled but no transcriber configured")
		return
	}

	// Scratch space next to the output keeps the final rename on one
	// filesystem.
	tempDir := filepath.Join(filepath.Dir(result.OutputPath), ".captions-"+uuid.NewString())
	if err := os.MkdirAll(tempDir, 0o755); err != nil {
		p.logger.Warn().
			Str("name", result.Name).
			Err(err).
			Msg("captions skipped: cannot create scratch directory")
		return
	}
	defer os.RemoveAll(tempDir)

	srtPath, err := p.transcriber.Transcribe(result.OutputPath, tempDir)
	if err != nil {
		p.logger.Warn().
			Str("name", result.Name).
			Err(err).
			Msg("captions skipped: transcription failed")
		return
	}

	burned := filepath.Join(tempDir, filepath.Base(result.OutputPath))
	builder := caption.NewCaptionBuilder(result.OutputPath, srtPath, burned)
	if p.opts.CaptionStyle != "" {
		builder.SetStyle(p.opts.CaptionStyle)
	}

	if err := p.run(builder); err != nil {
		p.logger.Warn().
			Str("name", result.Name).
			Err(err).
			Msg("captions skipped: burn-in failed")
		return
	}

	if err := os.Rename(burned, result.OutputPath); err != nil {
		p.logger.Warn().
			Str("name", result.Name).
			Err(err).
			Msg("captions skipped: could not replace variant")
		return
	}

	p.logger.Debug().
		Str("name", result.Name).
		Msg("captions burned")
}

// applyThumbnail grabs one frame into the thumbnails subdirectory and
// records its path on the result. The directory is created before the
// batch fans out, alongside the output directory.
func (p *Processor) applyThumbnail(result *models.RenderResult) {
	thumbPath := ThumbnailPath(result.OutputPath)

	builder := thumbnail.NewThumbnailBuilder(result.OutputPath, thumbPath)
	if p.opts.ThumbnailTimestamp > 0 {
		builder.SetTimestamp(p.opts.ThumbnailTimestamp)
	}

	if err := p.run(builder); err != nil {
		p.logger.Warn().
			Str("name", result.Name).
			Err(err).
			Msg("thumbnail skipped: extraction failed")
		return
	}

	result.Thumbnail = thumbPath
	p.logger.Debug().
		Str("name", result.Name).
		Str("thumbnail", thumbPath).
		Msg("thumbnail extracted")
}

// ThumbnailPath derives the thumbnail filename for a rendered variant:
// a thumbnails subdirectory beside the variant, same stem, .jpg extension.
func ThumbnailPath(outputPath string) string {
	base := filepath.Base(outputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(outputPath), "thumbnails", stem+".jpg")
}

// Summary counts the post-processing artifacts across results, for the
// final report.
func Summary(results []*models.RenderResult) (thumbnails int) {
	for _, result := range results {
		if result != nil && result.Thumbnail != "" {
			thumbnails++
		}
	}
	return thumbnails
}
