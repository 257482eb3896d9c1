package config

import (
	"fmt"
	"os"
	"strings"

	"adforge/models"
)

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errors []string

	// Required fields
	if len(c.Segments) == 0 {
		errors = append(errors, "at least one segment is required")
	}
	seen := make(map[string]bool)
	for i, s := range c.Segments {
		if s.Label == "" {
			errors = append(errors, fmt.Sprintf("segment %d: label is required", i))
			continue
		}
		if seen[s.Label] {
			errors = append(errors, fmt.Sprintf("duplicate segment label: %s", s.Label))
		}
		seen[s.Label] = true

		if s.Dir == "" {
			errors = append(errors, fmt.Sprintf("segment %s: dir is required", s.Label))
		} else if _, err := os.Stat(s.Dir); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("segment %s: directory does not exist: %s", s.Label, s.Dir))
		}
	}

	// Trim labels must refer to configured segments, and specs must parse
	for label, spec := range c.Trims {
		if !seen[label] {
			errors = append(errors, fmt.Sprintf("trim for unknown segment label: %s", label))
		}
		if _, err := models.ParseTrimSpec(spec); err != nil {
			errors = append(errors, fmt.Sprintf("trim %s: %v", label, err))
		}
	}

	// Validate overlay config
	if err := c.Overlays.Validate(); err != nil {
		errors = append(errors, fmt.Sprintf("overlays: %v", err))
	}

	// Validate video config
	if err := c.Video.Validate(); err != nil {
		errors = append(errors, fmt.Sprintf("video config: %v", err))
	}

	if c.Output.Dir == "" {
		errors = append(errors, "output dir is required")
	}

	// Validate workers (0 is valid, means auto-detect)
	if c.Workers < 0 {
		errors = append(errors, "workers cannot be negative (use 0 for auto-detect)")
	}

	if c.Thumbnails.Enabled && c.Thumbnails.Timestamp < 0 {
		errors = append(errors, "thumbnail timestamp cannot be negative")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// Validate checks if overlay configuration is valid
func (oc *OverlayConfig) Validate() error {
	var errors []string

	if oc.Placement != "" && !IsValidPlacement(oc.Placement) {
		errors = append(errors, fmt.Sprintf("invalid placement '%s', must be one of: %s",
			oc.Placement, strings.Join(PlacementValues(), ", ")))
	}

	if oc.FontSize < 0 {
		errors = append(errors, "font size cannot be negative")
	}

	for i, text := range oc.Texts {
		if strings.TrimSpace(text) == "" {
			errors = append(errors, fmt.Sprintf("overlay text %d is empty", i))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, ", "))
	}

	return nil
}

// Validate checks if video configuration is valid
func (vc *VideoConfig) Validate() error {
	var errors []string

	if vc.Width <= 0 || vc.Height <= 0 {
		errors = append(errors, "width and height must be positive")
	} else if vc.Width%2 != 0 || vc.Height%2 != 0 {
		errors = append(errors, "width and height must be even (encoder requirement)")
	}

	// CRF validation
	if vc.CRF < 0 || vc.CRF > 51 {
		errors = append(errors, "CRF must be between 0 and 51")
	}

	if vc.Preset == "" {
		errors = append(errors, "preset is required")
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, ", "))
	}

	return nil
}

// ParsedTrims converts the raw trim strings into trim specs. Call after
// Validate; unparseable specs are reported there.
func (c *Config) ParsedTrims() (map[string]models.TrimSpec, error) {
	if len(c.Trims) == 0 {
		return nil, nil
	}
	trims := make(map[string]models.TrimSpec, len(c.Trims))
	for label, spec := range c.Trims {
		parsed, err := models.ParseTrimSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("trim %s: %w", label, err)
		}
		trims[label] = parsed
	}
	return trims, nil
}
