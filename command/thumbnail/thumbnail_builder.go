// Package thumbnail provides the FFmpeg command builder for extracting
// single-frame thumbnails from rendered variants.
package thumbnail

import (
	"fmt"
	"os/exec"
	"strings"

	"adforge/command"
	"adforge/internal/timeutil"
)

// DefaultTimestamp is the grab point when no timestamp is configured:
// the first frame of the variant.
const DefaultTimestamp = 0.0

// ThumbnailBuilder constructs ffmpeg commands that grab one frame from a
// rendered variant as a JPEG or PNG (decided by the output extension).
type ThumbnailBuilder struct {
	inputPath  string
	outputPath string

	timestamp float64
	quality   int

	extraArgs []string
}

// NewThumbnailBuilder creates a thumbnail builder grabbing at the default
// timestamp.
func NewThumbnailBuilder(inputPath, outputPath string) *ThumbnailBuilder {
	return &ThumbnailBuilder{
		inputPath:  inputPath,
		outputPath: outputPath,
		timestamp:  DefaultTimestamp,
		quality:    2,
	}
}

// SetTimestamp sets the grab point in seconds from the start.
func (tb *ThumbnailBuilder) SetTimestamp(seconds float64) *ThumbnailBuilder {
	tb.timestamp = seconds
	return tb
}

// SetQuality sets the JPEG quality scale (2 = best, 31 = worst).
func (tb *ThumbnailBuilder) SetQuality(quality int) *ThumbnailBuilder {
	tb.quality = quality
	return tb
}

// AddExtraArgs adds custom ffmpeg arguments.
func (tb *ThumbnailBuilder) AddExtraArgs(args ...string) *ThumbnailBuilder {
	tb.extraArgs = append(tb.extraArgs, args...)
	return tb
}

// BuildArgs constructs the ffmpeg command arguments.
// Seeking before the input is fast and frame-accurate enough for
// thumbnails.
func (tb *ThumbnailBuilder) BuildArgs() []string {
	args := []string{}

	args = append(args, "-ss", timeutil.FormatSeconds(tb.timestamp))
	args = append(args, "-i", tb.inputPath)

	// Single frame
	args = append(args, "-frames:v", "1")
	args = append(args, "-q:v", fmt.Sprintf("%d", tb.quality))

	// Extra arguments
	args = append(args, tb.extraArgs...)

	// Output file
	args = append(args, "-y", tb.outputPath)

	return args
}

// Run executes the thumbnail extraction.
func (tb *ThumbnailBuilder) Run() error {
	args := tb.BuildArgs()
	cmd := exec.Command("ffmpeg", args...)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("thumbnail extraction failed: %w, output: %s", err, string(output))
	}

	return nil
}

// DryRun returns the command that would be executed without running it.
func (tb *ThumbnailBuilder) DryRun() (string, error) {
	args := tb.BuildArgs()
	return "ffmpeg " + strings.Join(args, " "), nil
}

// GetTaskType returns the task type identifier.
func (tb *ThumbnailBuilder) GetTaskType() command.TaskType {
	return command.TaskTypeThumbnail
}

// GetInputPath returns the input file path.
func (tb *ThumbnailBuilder) GetInputPath() string {
	return tb.inputPath
}

// GetOutputPath returns the output file path.
func (tb *ThumbnailBuilder) GetOutputPath() string {
	return tb.outputPath
}
