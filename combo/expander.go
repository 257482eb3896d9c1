// Package combo builds the full set of ad combinations from segment pools.
package combo

import (
	"fmt"

	"adforge/models"
)

// Expand computes the cartesian product of the segment pools and expands it
// by overlay texts and music tracks.
//
// Ordering rules:
//   - The product runs in segment-declaration order: the first segment
//     varies slowest, the last varies fastest.
//   - With overlays, all overlay variants of base combination i precede all
//     variants of combination i+1.
//   - With music and multiplyTracks set, every combination is further
//     expanded into one per track, same ordering rule.
//   - With music and multiplyTracks unset, combination i is assigned
//     tracks[i mod len(tracks)] with no batch growth. The assignment is
//     deterministic round-robin so identical inputs always produce
//     identical batches.
//
// Combination names are left empty here; the naming engine assigns them.
func Expand(segments []models.Segment, overlays []string, tracks []models.MediaItem, multiplyTracks bool) ([]models.Combination, error) {
	if len(segments) == 0 {
		return nil, fmt.Errorf("no segments defined")
	}
	for _, seg := range segments {
		if len(seg.Items) == 0 {
			return nil, fmt.Errorf("segment %q has an empty pool", seg.Label)
		}
	}

	combos := cartesian(segments)

	if len(overlays) > 0 {
		expanded := make([]models.Combination, 0, len(combos)*len(overlays))
		for _, c := range combos {
			for _, text := range overlays {
				variant := c
				variant.Parts = clone(c.Parts)
				variant.OverlayText = text
				expanded = append(expanded, variant)
			}
		}
		combos = expanded
	}

	if len(tracks) > 0 {
		if multiplyTracks {
			expanded := make([]models.Combination, 0, len(combos)*len(tracks))
			for _, c := range combos {
				for t := range tracks {
					variant := c
					variant.Parts = clone(c.Parts)
					track := tracks[t]
					variant.MusicTrack = &track
					expanded = append(expanded, variant)
				}
			}
			combos = expanded
		} else {
			for i := range combos {
				track := tracks[i%len(tracks)]
				combos[i].MusicTrack = &track
			}
		}
	}

	return combos, nil
}

// cartesian enumerates one combination per selection of exactly one item per
// segment, using an odometer over per-segment indices.
func cartesian(segments []models.Segment) []models.Combination {
	total := 1
	for _, seg := range segments {
		total *= len(seg.Items)
	}

	combos := make([]models.Combination, 0, total)
	indices := make([]int, len(segments))

	for {
		parts := make([]models.ComboPart, len(segments))
		for s, seg := range segments {
			parts[s] = models.ComboPart{Label: seg.Label, Item: seg.Items[indices[s]]}
		}
		combos = append(combos, models.Combination{Parts: parts})

		// Advance the last axis first so it varies fastest.
		pos := len(segments) - 1
		for pos >= 0 {
			indices[pos]++
			if indices[pos] < len(segments[pos].Items) {
				break
			}
			indices[pos] = 0
			pos--
		}
		if pos < 0 {
			return combos
		}
	}
}

func clone(parts []models.ComboPart) []models.ComboPart {
	out := make([]models.ComboPart, len(parts))
	copy(out, parts)
	return out
}
