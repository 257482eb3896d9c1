// Package caption provides the FFmpeg command builder for burning caption
// files into rendered variants.
package caption

import (
	"fmt"
	"os/exec"
	"strings"

	"adforge/command"
)

// DefaultStyle is the ASS force_style applied when no custom style is set.
// Sized for vertical phone playback with a readable outline.
const DefaultStyle = "FontSize=14,PrimaryColour=&H00FFFFFF,OutlineColour=&H00000000,Outline=1,MarginV=40"

// CaptionBuilder constructs ffmpeg commands for burning a subtitle file
// (typically whisper-generated SRT) into an already-rendered variant. The
// video is re-encoded; audio is copied untouched.
type CaptionBuilder struct {
	inputPath  string
	outputPath string

	subtitleFilePath string
	style            string

	crf    int
	preset string

	extraArgs []string
}

// NewCaptionBuilder creates a caption burn builder.
// subtitlePath: path to the caption file (SRT, ASS, etc.)
func NewCaptionBuilder(inputPath, subtitlePath, outputPath string) *CaptionBuilder {
	return &CaptionBuilder{
		inputPath:        inputPath,
		outputPath:       outputPath,
		subtitleFilePath: subtitlePath,
		style:            DefaultStyle,
		crf:              23,
		preset:           "medium",
	}
}

// SetStyle sets the ASS style for the burned-in captions.
// Example: "FontName=Arial,FontSize=24,PrimaryColour=&H00FFFFFF"
func (c *CaptionBuilder) SetStyle(style string) *CaptionBuilder {
	c.style = style
	return c
}

// SetCRF sets the constant rate factor for the re-encode.
func (c *CaptionBuilder) SetCRF(crf int) *CaptionBuilder {
	c.crf = crf
	return c
}

// SetPreset sets the x264 speed/compression preset for the re-encode.
func (c *CaptionBuilder) SetPreset(preset string) *CaptionBuilder {
	c.preset = preset
	return c
}

// AddExtraArgs adds custom ffmpeg arguments.
func (c *CaptionBuilder) AddExtraArgs(args ...string) *CaptionBuilder {
	c.extraArgs = append(c.extraArgs, args...)
	return c
}

// BuildArgs constructs the ffmpeg command arguments.
func (c *CaptionBuilder) BuildArgs() []string {
	args := []string{}

	// Input video
	args = append(args, "-i", c.inputPath)

	// Escape the subtitle path for filter syntax
	escapedPath := strings.ReplaceAll(c.subtitleFilePath, "\\", "\\\\")
	escapedPath = strings.ReplaceAll(escapedPath, ":", "\\:")

	var filterChain string
	if strings.HasSuffix(c.subtitleFilePath, ".ass") ||
		strings.HasSuffix(c.subtitleFilePath, ".ssa") {
		filterChain = fmt.Sprintf("ass=%s", escapedPath)
	} else {
		// SRT or other text-based formats
		filterChain = fmt.Sprintf("subtitles=%s", escapedPath)
		if c.style != "" {
			filterChain += ":force_style='" + c.style + "'"
		}
	}

	args = append(args, "-vf", filterChain)

	// Re-encode video with the burn; copy audio untouched
	args = append(args,
		"-c:v", "libx264",
		"-crf", fmt.Sprintf("%d", c.crf),
		"-preset", c.preset,
		"-c:a", "copy",
	)

	// Extra arguments
	args = append(args, c.extraArgs...)

	// Output file
	args = append(args, "-y", c.outputPath)

	return args
}

// Run executes the caption burn command.
func (c *CaptionBuilder) Run() error {
	args := c.BuildArgs()
	cmd := exec.Command("ffmpeg", args...)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("caption burn failed: %w, output: %s", err, string(output))
	}

	return nil
}

// DryRun returns the command that would be executed without running it.
func (c *CaptionBuilder) DryRun() (string, error) {
	args := c.BuildArgs()
	return "ffmpeg " + strings.Join(args, " "), nil
}

// GetTaskType returns the task type identifier.
func (c *CaptionBuilder) GetTaskType() command.TaskType {
	return command.TaskTypeCaption
}

// GetInputPath returns the input file path.
func (c *CaptionBuilder) GetInputPath() string {
	return c.inputPath
}

// GetOutputPath returns the output file path.
func (c *CaptionBuilder) GetOutputPath() string {
	return c.outputPath
}
