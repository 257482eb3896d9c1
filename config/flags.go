package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// PeekConfigPath extracts the -config value from raw arguments before the
// full flag parse, so the file layer can load beneath the flag overrides.
// Both "-config path" and "-config=path" forms are recognized, with one or
// two leading dashes.
func PeekConfigPath(args []string) string {
	for i, arg := range args {
		name, value, hasValue := strings.Cut(arg, "=")
		name = strings.TrimPrefix(name, "-")
		name = strings.TrimPrefix(name, "-")
		if name != "config" || !strings.HasPrefix(arg, "-") {
			continue
		}
		if hasValue {
			return value
		}
		if i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// stringList is a repeatable string flag
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}

// MergeFromFlags parses command-line flags and overrides config values
func (c *Config) MergeFromFlags() error {
	// Define flags
	fs := flag.NewFlagSet("adforge", flag.ContinueOnError)
	fs.Usage = printUsage

	// Segment pools (repeatable, ordered)
	var segments stringList
	fs.Var(&segments, "segment", "Segment pool as label=dir, repeatable, in concatenation order")

	// Config file override (handled by LoadConfig before this function is called)
	_ = fs.String("config", "", "Path to config file (default: search standard locations)")

	// Overlay settings
	var overlays stringList
	fs.Var(&overlays, "overlay", "Overlay text variant, repeatable (each multiplies the batch)")
	overlayPlacement := fs.String("overlay-placement", "", "Overlay placement: top, center, bottom (default: from config)")
	overlayFontSize := fs.Int("overlay-font-size", -1, "Overlay font size (default: from config)")
	overlayFontColor := fs.String("overlay-font-color", "", "Overlay font color (default: from config)")

	// Music settings
	musicDir := fs.String("music-dir", "", "Directory of background music tracks (default: from config)")
	musicMultiply := fs.Bool("music-multiply", false, "Render every variant with every track")
	musicRoundRobin := fs.Bool("music-round-robin", false, "Assign tracks round-robin without growing the batch")

	// Trim specs (repeatable)
	var trims stringList
	fs.Var(&trims, "trim", "Trim spec as label=start:duration or label=last:N, repeatable")

	// Output settings
	outputDir := fs.String("output", "", "Output directory (default: from config)")
	template := fs.String("template", "", "Naming template, e.g. {hook}_{cta}_{index} (default: from config)")

	// Video settings
	width := fs.Int("width", -1, "Output frame width (default: from config)")
	height := fs.Int("height", -1, "Output frame height (default: from config)")
	crf := fs.Int("crf", -1, "Video CRF (0-51, lower = better quality) (default: from config)")
	preset := fs.String("preset", "", "x264 preset: ultrafast, fast, medium, slow (default: from config)")

	// Execution settings
	workers := fs.Int("workers", -1, "Number of parallel renders (0 = auto-detect, default: from config)")

	// Post-processing
	captions := fs.Bool("captions", false, "Enable whisper caption generation and burn-in")
	noCaptions := fs.Bool("no-captions", false, "Disable caption generation")
	captionModel := fs.String("caption-model", "", "Whisper model size (default: from config)")
	captionLanguage := fs.String("caption-language", "", "Whisper language hint (default: auto-detect)")
	thumbnails := fs.Bool("thumbnails", false, "Enable thumbnail extraction")
	noThumbnails := fs.Bool("no-thumbnails", false, "Disable thumbnail extraction")
	thumbnailTimestamp := fs.Float64("thumbnail-timestamp", -1, "Thumbnail grab point in seconds (default: from config)")

	// Behavioral flags
	verbose := fs.Bool("verbose", false, "Enable verbose logging")
	dryRun := fs.Bool("dry-run", false, "Show planned commands without rendering")

	// Parse flags
	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	// Note: Config file loading is handled by LoadConfig() before this function
	// is called. The -config flag is only used to specify which file to load.

	// Segment pools replace the configured list wholesale: order matters,
	// so partial overrides would be ambiguous.
	if len(segments) > 0 {
		parsed, err := parseSegmentFlags(segments)
		if err != nil {
			return err
		}
		c.Segments = parsed
	}

	// Overlay settings
	if len(overlays) > 0 {
		c.Overlays.Texts = overlays
	}
	if *overlayPlacement != "" {
		c.Overlays.Placement = *overlayPlacement
	}
	if *overlayFontSize >= 0 {
		c.Overlays.FontSize = *overlayFontSize
	}
	if *overlayFontColor != "" {
		c.Overlays.FontColor = *overlayFontColor
	}

	// Music settings
	if *musicDir != "" {
		c.Music.Dir = *musicDir
	}
	if *musicMultiply {
		c.Music.Multiply = true
	}
	if *musicRoundRobin {
		c.Music.Multiply = false
	}

	// Trim specs merge into the configured map
	if len(trims) > 0 {
		if c.Trims == nil {
			c.Trims = make(map[string]string, len(trims))
		}
		for _, entry := range trims {
			label, spec, ok := strings.Cut(entry, "=")
			if !ok || label == "" || spec == "" {
				return fmt.Errorf("invalid -trim %q, expected label=spec", entry)
			}
			c.Trims[label] = spec
		}
	}

	// Output settings
	if *outputDir != "" {
		c.Output.Dir = *outputDir
	}
	if *template != "" {
		c.Output.Template = *template
	}

	// Video settings
	if *width > 0 {
		c.Video.Width = *width
	}
	if *height > 0 {
		c.Video.Height = *height
	}
	if *crf >= 0 {
		c.Video.CRF = *crf
	}
	if *preset != "" {
		c.Video.Preset = *preset
	}

	// Execution settings (only override if explicitly set, -1 means not set)
	if *workers >= 0 {
		c.Workers = *workers
	}

	// Post-processing
	if *captions {
		c.Captions.Enabled = true
	}
	if *noCaptions {
		c.Captions.Enabled = false
	}
	if *captionModel != "" {
		c.Captions.Model = *captionModel
	}
	if *captionLanguage != "" {
		c.Captions.Language = *captionLanguage
	}
	if *thumbnails {
		c.Thumbnails.Enabled = true
	}
	if *noThumbnails {
		c.Thumbnails.Enabled = false
	}
	if *thumbnailTimestamp >= 0 {
		c.Thumbnails.Timestamp = *thumbnailTimestamp
	}

	// Behavioral flags
	if *verbose {
		c.Verbose = true
	}
	if *dryRun {
		c.DryRun = true
	}

	return nil
}

// parseSegmentFlags turns repeated label=dir values into segment configs
func parseSegmentFlags(entries []string) ([]SegmentConfig, error) {
	segments := make([]SegmentConfig, 0, len(entries))
	for _, entry := range entries {
		label, dir, ok := strings.Cut(entry, "=")
		if !ok || label == "" || dir == "" {
			return nil, fmt.Errorf("invalid -segment %q, expected label=dir", entry)
		}
		segments = append(segments, SegmentConfig{Label: label, Dir: dir})
	}
	return segments, nil
}

// printUsage prints help text
func printUsage() {
	fmt.Fprintf(os.Stderr, `adforge - Combinatorial ad variant generation

USAGE:
  adforge -segment hook=clips/hooks -segment cta=clips/ctas [OPTIONS]

SEGMENT POOLS:
  -segment string
        Segment pool as label=dir, repeatable, in concatenation order

CONFIGURATION:
  -config string
        Path to config file (default: search ./adforge.yaml, ~/.adforge/config.yaml, /etc/adforge/config.yaml)

OVERLAY SETTINGS:
  -overlay string
        Overlay text variant, repeatable (each text multiplies the batch)
  -overlay-placement string
        Overlay placement: top, center, bottom (default: bottom)
  -overlay-font-size int
        Overlay font size (default: 48)
  -overlay-font-color string
        Overlay font color (default: white)

MUSIC SETTINGS:
  -music-dir string
        Directory of background music tracks
  --music-multiply
        Render every variant with every track
  --music-round-robin
        Assign tracks round-robin without growing the batch (default)

TRIMMING:
  -trim string
        Trim spec as label=start:duration or label=last:N, repeatable

OUTPUT SETTINGS:
  -output string
        Output directory (default: output)
  -template string
        Naming template with {label}, {index}, {date} placeholders

VIDEO SETTINGS:
  -width int
        Output frame width (default: 1080)
  -height int
        Output frame height (default: 1920)
  -crf int
        Video CRF: 0-51, lower = better quality (default: 23)
  -preset string
        x264 preset: ultrafast, fast, medium, slow (default: medium)

EXECUTION SETTINGS:
  -workers int
        Number of parallel renders (0 = auto-detect CPU count) (default: 0)

POST-PROCESSING:
  --captions / --no-captions
        Toggle whisper caption generation and burn-in
  -caption-model string
        Whisper model size (default: small)
  -caption-language string
        Whisper language hint (default: auto-detect)
  --thumbnails / --no-thumbnails
        Toggle thumbnail extraction
  -thumbnail-timestamp float
        Thumbnail grab point in seconds (default: 1.0)

BEHAVIORAL FLAGS:
  --verbose
        Enable verbose logging
  --dry-run
        Show planned commands without rendering

EXAMPLES:
  # Two hook clips x two CTA clips = four variants
  adforge -segment hook=clips/hooks -segment cta=clips/ctas -output out

  # Overlay texts multiply the batch
  adforge -segment hook=clips/hooks -segment cta=clips/ctas -overlay "SALE" -overlay "50%% OFF"

  # Trim hooks to their first 3 seconds, CTAs to their last 2
  adforge -segment hook=clips/hooks -segment cta=clips/ctas -trim hook=0:3 -trim cta=last:2

  # Use custom config file
  adforge -config campaign.yaml --dry-run

CONFIGURATION FILES:
  Config files are searched in order:
    1. ./adforge.yaml
    2. ~/.adforge/config.yaml
    3. /etc/adforge/config.yaml

  Priority: CLI flags > Config file > Defaults

`)
}

// PrintConfig prints the effective configuration
func (c *Config) PrintConfig() {
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Println("                 Effective Configuration                  ")
	fmt.Println("═══════════════════════════════════════════════════════════")

	fmt.Println("Segments:")
	for _, s := range c.Segments {
		fmt.Printf("  %-12s %s\n", s.Label+":", s.Dir)
	}

	if len(c.Overlays.Texts) > 0 {
		fmt.Println("\nOverlays:")
		for _, text := range c.Overlays.Texts {
			fmt.Printf("  %q\n", text)
		}
		fmt.Printf("  Placement:    %s\n", c.Overlays.Placement)
		fmt.Printf("  Font:         %d %s\n", c.Overlays.FontSize, c.Overlays.FontColor)
	}

	if c.Music.Dir != "" {
		fmt.Println("\nMusic:")
		fmt.Printf("  Dir:          %s\n", c.Music.Dir)
		if c.Music.Multiply {
			fmt.Println("  Mode:         multiply (every variant x every track)")
		} else {
			fmt.Println("  Mode:         round-robin")
		}
	}

	if len(c.Trims) > 0 {
		fmt.Println("\nTrims:")
		for label, spec := range c.Trims {
			fmt.Printf("  %-12s %s\n", label+":", spec)
		}
	}

	fmt.Println("\nOutput:")
	fmt.Printf("  Dir:          %s\n", c.Output.Dir)
	if c.Output.Template != "" {
		fmt.Printf("  Template:     %s\n", c.Output.Template)
	}

	fmt.Println("\nVideo Settings:")
	fmt.Printf("  Resolution:   %dx%d\n", c.Video.Width, c.Video.Height)
	fmt.Printf("  CRF:          %d\n", c.Video.CRF)
	fmt.Printf("  Preset:       %s\n", c.Video.Preset)

	fmt.Println("\nPost-processing:")
	fmt.Printf("  Captions:     %v\n", c.Captions.Enabled)
	fmt.Printf("  Thumbnails:   %v\n", c.Thumbnails.Enabled)

	fmt.Printf("\nWorkers:        %d\n", c.Workers)
	fmt.Printf("Verbose:        %v\n", c.Verbose)
	fmt.Println("═══════════════════════════════════════════════════════════")
}
