// Package models provides core data structures for the ad variant generator.
package models

import (
	"fmt"
	"strings"
)

// MediaItem is a resolved source clip or music track.
//
// Items are produced by the segment store, which guarantees the path points
// at an existing, non-empty, non-symlink regular file. Name is the file base
// name without its extension and is what the naming engine substitutes into
// output name templates.
type MediaItem struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Segment is a labeled pool of interchangeable clips for one ad position
// (hook, body, cta, or any custom label).
//
// Segment order is significant: it fixes the cartesian-product axis order
// and the positional placeholders {0}..{n-1} in name templates.
type Segment struct {
	Label string
	Items []MediaItem
}

// NewSegment creates a Segment with validation.
//
// Returns an error if the label is empty or the pool has no items, since an
// empty pool would collapse the whole cartesian product to zero.
func NewSegment(label string, items []MediaItem) (*Segment, error) {
	s := &Segment{Label: label, Items: items}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid segment: %w", err)
	}
	return s, nil
}

// Validate checks if the Segment has valid data.
func (s *Segment) Validate() error {
	if strings.TrimSpace(s.Label) == "" {
		return fmt.Errorf("label cannot be empty")
	}
	if len(s.Items) == 0 {
		return fmt.Errorf("segment %q has no media items", s.Label)
	}
	for i, item := range s.Items {
		if strings.TrimSpace(item.Path) == "" {
			return fmt.Errorf("segment %q item %d has an empty path", s.Label, i)
		}
	}
	return nil
}

// ComboPart is one selected item for one segment within a combination.
type ComboPart struct {
	Label string
	Item  MediaItem
}

// Combination is one concrete selection of exactly one item per segment,
// plus optional overlay text and music track, destined for one rendered
// artifact.
//
// Parts preserves segment declaration order and has exactly one entry per
// segment. Name is assigned by the naming engine after deduplication and is
// unique (case-insensitively) across the batch.
type Combination struct {
	Parts       []ComboPart
	OverlayText string     // empty means no overlay
	MusicTrack  *MediaItem // nil means no music
	Name        string
}
