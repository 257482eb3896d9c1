// Package render provides the FFmpeg command builder for rendering one
// ad variant from its filter graph.
package render

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"adforge/command"
	"adforge/ffmpeg"
	"adforge/filtergraph"
	"adforge/models"
)

// Encoding defaults for short-form vertical output. CRF and preset are
// configurable per batch; pixel format and audio bitrate are not.
const (
	DefaultCRF     = 23
	DefaultPreset  = "medium"
	audioBitrate   = "192k"
	videoCodec     = "libx264"
	audioCodec     = "aac"
	pixelFormat    = "yuv420p"
	streamingFlags = "+faststart"
)

// RenderBuilder constructs the ffmpeg command that materializes one
// combination: all segment files (plus music) as inputs, the combination's
// filter graph as -filter_complex, and the graph's terminal labels mapped
// into an H.264 MP4.
type RenderBuilder struct {
	graph      *filtergraph.Result
	outputPath string

	crf    int
	preset string

	extraArgs []string

	// Progress tracking
	totalDuration    float64
	progressCallback models.ProgressCallback
}

// NewRenderBuilder creates a render builder for one combination's graph.
func NewRenderBuilder(graph *filtergraph.Result, outputPath string) *RenderBuilder {
	return &RenderBuilder{
		graph:      graph,
		outputPath: outputPath,
		crf:        DefaultCRF,
		preset:     DefaultPreset,
	}
}

// SetCRF sets the constant rate factor (lower = higher quality).
func (r *RenderBuilder) SetCRF(crf int) *RenderBuilder {
	r.crf = crf
	return r
}

// SetPreset sets the x264 speed/compression preset.
// Example: "ultrafast", "fast", "medium", "slow"
func (r *RenderBuilder) SetPreset(preset string) *RenderBuilder {
	r.preset = preset
	return r
}

// AddExtraArgs adds custom ffmpeg arguments before the output path.
func (r *RenderBuilder) AddExtraArgs(args ...string) *RenderBuilder {
	r.extraArgs = append(r.extraArgs, args...)
	return r
}

// SetProgressCallback enables stderr progress parsing during Run.
// totalDuration is the expected output length in seconds, used for the
// completion percentage.
func (r *RenderBuilder) SetProgressCallback(totalDuration float64, callback models.ProgressCallback) *RenderBuilder {
	r.totalDuration = totalDuration
	r.progressCallback = callback
	return r
}

// BuildArgs constructs the ffmpeg command arguments.
func (r *RenderBuilder) BuildArgs() []string {
	args := []string{}

	// Inputs in graph order: segment clips, then the music track.
	for _, input := range r.graph.Inputs {
		args = append(args, "-i", input)
	}

	args = append(args, "-filter_complex", r.graph.Graph.Serialize())

	// Map the graph's terminal streams.
	args = append(args, "-map", fmt.Sprintf("[%s]", r.graph.Graph.VideoOut))
	if r.graph.Graph.HasAudio() {
		args = append(args, "-map", fmt.Sprintf("[%s]", r.graph.Graph.AudioOut))
	}

	// Video encoding
	args = append(args,
		"-c:v", videoCodec,
		"-crf", fmt.Sprintf("%d", r.crf),
		"-preset", r.preset,
		"-pix_fmt", pixelFormat,
	)

	// Audio encoding only when the graph carries audio
	if r.graph.Graph.HasAudio() {
		args = append(args, "-c:a", audioCodec, "-b:a", audioBitrate)
	}

	// Streaming-friendly MP4 layout
	args = append(args, "-movflags", streamingFlags)

	// Extra arguments
	args = append(args, r.extraArgs...)

	// Output file
	args = append(args, "-y", r.outputPath)

	return args
}

// Run executes the render. On failure the partial output file is removed
// so a failed variant never leaves a truncated MP4 behind, and the
// returned error carries ffmpeg's diagnostic output.
func (r *RenderBuilder) Run() error {
	args := r.BuildArgs()
	cmd := exec.Command("ffmpeg", args...)

	if r.progressCallback != nil {
		err := r.runWithProgress(cmd)
		if err != nil {
			r.removePartialOutput()
			return err
		}
		return nil
	}

	output, err := cmd.CombinedOutput()
	if err != nil {
		r.removePartialOutput()
		return fmt.Errorf("render failed: %w, output: %s", err, string(output))
	}

	return nil
}

// runWithProgress executes the command while streaming stderr through the
// progress parser.
func (r *RenderBuilder) runWithProgress(cmd *exec.Cmd) error {
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	parser := ffmpeg.NewProgressParser()
	progress := models.NewRenderProgress(r.totalDuration)

	// Parser errors are non-fatal; the exit code decides success.
	_ = parser.StreamProgress(stderr, progress, r.progressCallback)

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}

func (r *RenderBuilder) removePartialOutput() {
	if _, statErr := os.Stat(r.outputPath); statErr == nil {
		_ = os.Remove(r.outputPath)
	}
}

// DryRun returns the command that would be executed without running it.
func (r *RenderBuilder) DryRun() (string, error) {
	args := r.BuildArgs()
	return "ffmpeg " + strings.Join(args, " "), nil
}

// GetTaskType returns the task type identifier.
func (r *RenderBuilder) GetTaskType() command.TaskType {
	return command.TaskTypeRender
}

// GetInputPath returns the first input file path.
func (r *RenderBuilder) GetInputPath() string {
	if len(r.graph.Inputs) == 0 {
		return ""
	}
	return r.graph.Inputs[0]
}

// GetOutputPath returns the output file path.
func (r *RenderBuilder) GetOutputPath() string {
	return r.outputPath
}
