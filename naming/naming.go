// Package naming renders output names from templates and guarantees batch-wide
// uniqueness.
package naming

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"adforge/models"
)

const (
	maxNameLen = 200
	maxSlugLen = 30
)

var (
	placeholderRegex = regexp.MustCompile(`\{([^{}]+)\}`)
	nonAlnumRegex    = regexp.MustCompile(`[^a-zA-Z0-9]+`)
	forbiddenRegex   = regexp.MustCompile(`[/\\<>:"|?*]`)
	underscoreRegex  = regexp.MustCompile(`_+`)
)

// Engine renders a name template per combination and deduplicates the
// results. Names are assigned in combination sequence order, so duplicate
// suffixes are deterministic and stable across runs with identical inputs.
//
// Recognized placeholders:
//
//	{label}   the combination's selected item name for that segment
//	{0}..{n}  positional, 0-indexed by segment order
//	{index}   1-based position in the final sequence, zero-padded to 4 digits
//	{date}    current date as YYYY-MM-DD
type Engine struct {
	template string
	assigned map[string]bool
	clock    func() time.Time
}

// NewEngine creates a naming engine for one batch. An empty template falls
// back to the segment labels joined by underscore, e.g. "{hook}_{cta}".
func NewEngine(template string, labels []string) *Engine {
	if template == "" {
		template = DefaultTemplate(labels)
	}
	return &Engine{
		template: template,
		assigned: make(map[string]bool),
		clock:    time.Now,
	}
}

// DefaultTemplate joins segment labels into "{a}_{b}_..." form.
func DefaultTemplate(labels []string) string {
	parts := make([]string, len(labels))
	for i, label := range labels {
		parts[i] = "{" + label + "}"
	}
	return strings.Join(parts, "_")
}

// Name renders, sanitizes, and deduplicates the name for the combination at
// the given zero-based sequence position, records it, and returns it.
// tracksMultiplied indicates the batch was expanded per music track, which
// appends the track name; round-robin-assigned tracks are not name-visible.
func (e *Engine) Name(c models.Combination, index int, tracksMultiplied bool) string {
	name := e.render(c, index)

	if c.OverlayText != "" {
		if slug := OverlaySlug(c.OverlayText); slug != "" {
			name += "_" + slug
		}
	}
	if tracksMultiplied && c.MusicTrack != nil {
		name += "_" + c.MusicTrack.Name
	}

	name = Sanitize(name)
	name = e.dedupe(name)
	e.assigned[strings.ToLower(name)] = true
	return name
}

// render substitutes every placeholder in a single pass over the template,
// so substituted values are never rescanned: an item name that happens to
// contain "{0}" stays literal.
func (e *Engine) render(c models.Combination, index int) string {
	byLabel := make(map[string]string, len(c.Parts))
	for _, part := range c.Parts {
		byLabel[part.Label] = part.Item.Name
	}

	return placeholderRegex.ReplaceAllStringFunc(e.template, func(match string) string {
		key := match[1 : len(match)-1]
		switch key {
		case "index":
			return fmt.Sprintf("%04d", index+1)
		case "date":
			return e.clock().Format("2006-01-02")
		}
		if name, ok := byLabel[key]; ok {
			return name
		}
		if pos, err := strconv.Atoi(key); err == nil && pos >= 0 && pos < len(c.Parts) {
			return c.Parts[pos].Item.Name
		}
		return match // unrecognized placeholder stays literal
	})
}

// OverlaySlug collapses non-alphanumeric runs in the overlay text to a
// single "-" and caps the result at 30 characters.
func OverlaySlug(text string) string {
	slug := nonAlnumRegex.ReplaceAllString(text, "-")
	slug = truncate(slug, maxSlugLen)
	if slug == "-" {
		return ""
	}
	return slug
}

// Sanitize makes a rendered name safe as a flat output filename: strips
// null bytes, replaces path separators and the characters <>:"|?* with "_",
// collapses repeated underscores, trims leading/trailing dots and
// whitespace, caps at 200 characters, and falls back to "unnamed".
func Sanitize(name string) string {
	name = strings.ReplaceAll(name, "\x00", "")
	name = forbiddenRegex.ReplaceAllString(name, "_")
	name = underscoreRegex.ReplaceAllString(name, "_")
	name = strings.Trim(name, ". \t\r\n")
	if len(name) > maxNameLen {
		name = truncate(name, maxNameLen)
		name = strings.Trim(name, ". \t\r\n")
	}
	if name == "" {
		return "unnamed"
	}
	return name
}

// truncate caps s at limit bytes without cutting through a rune, so item
// names with multibyte characters stay valid UTF-8 after capping.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// dedupe appends the first non-colliding "_n" suffix when the sanitized
// name is already taken. Comparison is case-insensitive so the batch stays
// safe on case-preserving filesystems.
func (e *Engine) dedupe(name string) string {
	if !e.assigned[strings.ToLower(name)] {
		return name
	}
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s_%d", name, n)
		if !e.assigned[strings.ToLower(candidate)] {
			return candidate
		}
	}
}
