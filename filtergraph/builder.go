package filtergraph

import (
	"fmt"

	"adforge/models"
)

// MediaInfo answers the two questions the builder asks about a clip:
// whether it carries an audio stream, and how long it runs. The audio
// presence cache satisfies this; tests substitute a fake.
type MediaInfo interface {
	HasAudio(path string) bool
	Duration(path string) (seconds float64, ok bool)
}

// Overlay describes how overlay text is burned onto the concatenated
// video. Zero values fall back to a legible default.
type Overlay struct {
	Placement Placement
	FontSize  int
	FontColor string
}

// Options carries the per-batch rendering parameters for graph building.
type Options struct {
	Width   int // target frame width, positive even
	Height  int // target frame height, positive even
	Overlay Overlay
}

// Result is a built graph plus the ordered input files it references.
// Inputs maps one-to-one onto the engine's input indices: segment items in
// part order, then the music track when present.
//
// Duration is the estimated output length in seconds, summed from trim
// windows and probed clip durations; zero when any segment's length is
// unknown.
type Result struct {
	Graph    *Graph
	Inputs   []string
	Duration float64
}

// Build produces the complete filter graph for one combination.
//
// Each segment is normalized (scale, pad, setsar, fps; audio resampled or
// synthesized), optionally trimmed per its label's trim spec, and the
// results concatenated in part order. Overlay text and music mixing apply
// to the concatenated streams.
//
// Audio streams exist in the graph iff any segment has audio or a music
// track is attached; audioless segments then contribute bounded silence so
// concatenation stays uniform. When neither holds, the graph is video-only.
func Build(c models.Combination, trims map[string]models.TrimSpec, info MediaInfo, opts Options) (*Result, error) {
	if len(c.Parts) == 0 {
		return nil, fmt.Errorf("combination has no parts")
	}
	if opts.Width <= 0 || opts.Height <= 0 || opts.Width%2 != 0 || opts.Height%2 != 0 {
		return nil, fmt.Errorf("target dimensions must be positive even integers, got %dx%d", opts.Width, opts.Height)
	}

	graph := &Graph{}
	inputs := make([]string, 0, len(c.Parts)+1)

	withAudio := c.MusicTrack != nil
	for _, part := range c.Parts {
		if info.HasAudio(part.Item.Path) {
			withAudio = true
			break
		}
	}

	concatInputs := make([]Stream, 0, len(c.Parts)*2)

	totalDuration := 0.0
	durationKnown := true

	for i, part := range c.Parts {
		inputs = append(inputs, part.Item.Path)

		window, err := resolveWindow(part, trims, info)
		if err != nil {
			return nil, err
		}

		if length, err := window.contribution(part, info); err == nil {
			totalDuration += length
		} else {
			durationKnown = false
		}

		vOut := Stream(fmt.Sprintf("v%d", i))
		video := []Filter{Scale(opts.Width, opts.Height), Pad(opts.Width, opts.Height), SetSAR(), FPS()}
		if window.trimmed {
			video = append(video, TrimVideo(window.start, window.end), ResetPTS())
		}
		graph.Add(Chain{
			Inputs:  []Stream{Stream(fmt.Sprintf("%d:v", i))},
			Filters: video,
			Outputs: []Stream{vOut},
		})
		concatInputs = append(concatInputs, vOut)

		if !withAudio {
			continue
		}

		aOut := Stream(fmt.Sprintf("a%d", i))
		if info.HasAudio(part.Item.Path) {
			audio := []Filter{Aresample(), AFormat()}
			if window.trimmed {
				audio = append(audio, TrimAudio(window.start, window.end), ResetAPTS())
			}
			graph.Add(Chain{
				Inputs:  []Stream{Stream(fmt.Sprintf("%d:a", i))},
				Filters: audio,
				Outputs: []Stream{aOut},
			})
		} else {
			// Silence is an unbounded source; it must be cut to the
			// segment's exact contribution or concat would never end.
			length, err := window.contribution(part, info)
			if err != nil {
				return nil, err
			}
			graph.Add(Chain{
				Filters: []Filter{Silence(), TrimAudio(0, length), ResetAPTS()},
				Outputs: []Stream{aOut},
			})
		}
		concatInputs = append(concatInputs, aOut)
	}

	graph.VideoOut = "vcat"
	concatOutputs := []Stream{"vcat"}
	if withAudio {
		graph.AudioOut = "acat"
		concatOutputs = append(concatOutputs, "acat")
	}
	graph.Add(Chain{
		Inputs:  concatInputs,
		Filters: []Filter{Concat(len(c.Parts), withAudio)},
		Outputs: concatOutputs,
	})

	if c.OverlayText != "" {
		fontSize := opts.Overlay.FontSize
		if fontSize <= 0 {
			fontSize = 48
		}
		fontColor := opts.Overlay.FontColor
		if fontColor == "" {
			fontColor = "white"
		}
		graph.Add(Chain{
			Inputs:  []Stream{graph.VideoOut},
			Filters: []Filter{DrawText(c.OverlayText, opts.Overlay.Placement, fontSize, fontColor)},
			Outputs: []Stream{"vtext"},
		})
		graph.VideoOut = "vtext"
	}

	if c.MusicTrack != nil {
		musicIdx := len(inputs)
		inputs = append(inputs, c.MusicTrack.Path)

		graph.Add(Chain{
			Inputs:  []Stream{Stream(fmt.Sprintf("%d:a", musicIdx))},
			Filters: []Filter{Aresample(), AFormat(), Volume(MusicVolume)},
			Outputs: []Stream{"amusic"},
		})
		graph.Add(Chain{
			Inputs:  []Stream{graph.AudioOut, "amusic"},
			Filters: []Filter{AMix()},
			Outputs: []Stream{"amix"},
		})
		graph.AudioOut = "amix"
	}

	if !durationKnown {
		totalDuration = 0
	}

	return &Result{Graph: graph, Inputs: inputs, Duration: totalDuration}, nil
}

// window is a segment's resolved trim range in normalized time.
type window struct {
	trimmed    bool
	start, end float64
}

// resolveWindow applies the label's trim spec, if any. A Last trim only
// takes effect when the probed duration exceeds the requested tail; an
// unprobeable duration skips the trim rather than failing the job.
func resolveWindow(part models.ComboPart, trims map[string]models.TrimSpec, info MediaInfo) (window, error) {
	spec, ok := trims[part.Label]
	if !ok {
		return window{}, nil
	}

	switch spec.Kind {
	case models.TrimRange:
		return window{trimmed: true, start: spec.Start, end: spec.Start + spec.Duration}, nil
	case models.TrimLast:
		duration, ok := info.Duration(part.Item.Path)
		if !ok || duration <= spec.Seconds {
			return window{}, nil
		}
		return window{trimmed: true, start: duration - spec.Seconds, end: duration}, nil
	default:
		return window{}, fmt.Errorf("unknown trim kind for segment %q", part.Label)
	}
}

// contribution is the length in seconds this segment adds to the cut,
// needed to bound synthesized silence. Untrimmed silent clips fall back to
// the probed clip duration; when even that is unknown there is no way to
// build a finite graph, so the job fails with a diagnostic.
func (w window) contribution(part models.ComboPart, info MediaInfo) (float64, error) {
	if w.trimmed {
		return w.end - w.start, nil
	}
	duration, ok := info.Duration(part.Item.Path)
	if !ok {
		return 0, fmt.Errorf("cannot determine duration of silent clip %s to synthesize its audio", part.Item.Path)
	}
	return duration, nil
}
