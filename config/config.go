package config

// Config holds all variant generation options
type Config struct {
	// Segment pools, in concatenation order
	Segments []SegmentConfig `yaml:"segments"`

	// Overlay text variants
	Overlays OverlayConfig `yaml:"overlays"`

	// Background music
	Music MusicConfig `yaml:"music"`

	// Per-label trim specs, e.g. {hook: "0:3", cta: "last:2"}
	Trims map[string]string `yaml:"trims"`

	// Output settings
	Output OutputConfig `yaml:"output"`

	// Video encoding settings
	Video VideoConfig `yaml:"video"`

	// Post-processing
	Captions   CaptionConfig   `yaml:"captions"`
	Thumbnails ThumbnailConfig `yaml:"thumbnails"`

	// Execution settings
	Workers int `yaml:"workers"` // 0 = auto-detect

	// Behavioral flags
	Verbose bool `yaml:"verbose"` // Show detailed logs
	DryRun  bool `yaml:"dry_run"` // Show commands without rendering
}

// SegmentConfig names one slot in the concatenation order and the
// directory holding its candidate clips
type SegmentConfig struct {
	Label string `yaml:"label"` // e.g., "hook", "body", "cta"
	Dir   string `yaml:"dir"`   // directory of video files
}

// OverlayConfig holds the text overlay variants and their appearance
type OverlayConfig struct {
	Texts     []string `yaml:"texts"`      // each text multiplies the batch
	Placement string   `yaml:"placement"`  // "top", "center", "bottom"
	FontSize  int      `yaml:"font_size"`  // drawtext font size
	FontColor string   `yaml:"font_color"` // e.g., "white", "yellow"
}

// MusicConfig holds background music settings
type MusicConfig struct {
	Dir      string `yaml:"dir"`      // directory of audio files (empty = no music)
	Multiply bool   `yaml:"multiply"` // true: every track x every variant; false: round-robin
}

// OutputConfig holds output location and naming settings
type OutputConfig struct {
	Dir      string `yaml:"dir"`      // destination directory
	Template string `yaml:"template"` // naming template (empty = labels joined by _)
}

// VideoConfig holds video encoding settings
type VideoConfig struct {
	Width  int    `yaml:"width"`  // output frame width
	Height int    `yaml:"height"` // output frame height
	CRF    int    `yaml:"crf"`    // Constant Rate Factor (0-51, lower = better quality)
	Preset string `yaml:"preset"` // e.g., "ultrafast", "medium", "slow"
}

// CaptionConfig holds caption generation settings
type CaptionConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Style    string `yaml:"style"`    // ASS force_style (empty = built-in default)
	Model    string `yaml:"model"`    // whisper model size
	Language string `yaml:"language"` // optional language hint
}

// ThumbnailConfig holds thumbnail extraction settings
type ThumbnailConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Timestamp float64 `yaml:"timestamp"` // grab point in seconds
}

// DefaultConfig returns configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		// Required - must be provided by user
		Segments: nil,

		Overlays: OverlayConfig{
			Placement: "bottom",
			FontSize:  48,
			FontColor: "white",
		},

		Music: MusicConfig{
			Dir:      "",
			Multiply: false, // round-robin keeps batch size flat
		},

		Output: OutputConfig{
			Dir:      "output",
			Template: "", // labels joined by underscore
		},

		// Vertical 9:16 defaults for short-form platforms
		Video: VideoConfig{
			Width:  1080,
			Height: 1920,
			CRF:    23,
			Preset: "medium",
		},

		Captions: CaptionConfig{
			Enabled: false,
			Model:   "small",
		},

		Thumbnails: ThumbnailConfig{
			Enabled:   false,
			Timestamp: 0,
		},

		Workers: 0, // Auto-detect CPU count

		Verbose: false,
		DryRun:  false,
	}
}

// Copy creates a deep copy of the config
func (c *Config) Copy() *Config {
	dup := *c
	dup.Segments = append([]SegmentConfig(nil), c.Segments...)
	dup.Overlays.Texts = append([]string(nil), c.Overlays.Texts...)
	if c.Trims != nil {
		dup.Trims = make(map[string]string, len(c.Trims))
		for k, v := range c.Trims {
			dup.Trims[k] = v
		}
	}
	return &dup
}

// Labels returns the segment labels in concatenation order
func (c *Config) Labels() []string {
	labels := make([]string, len(c.Segments))
	for i, s := range c.Segments {
		labels[i] = s.Label
	}
	return labels
}

// PlacementValues returns valid overlay placement values
func PlacementValues() []string {
	return []string{"top", "center", "bottom"}
}

// IsValidPlacement checks if placement is valid
func IsValidPlacement(placement string) bool {
	for _, valid := range PlacementValues() {
		if placement == valid {
			return true
		}
	}
	return false
}
