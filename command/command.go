// Package command provides the core Command interface shared by the
// FFmpeg command builders.
//
// All specialized builders (Render, Caption, Thumbnail) implement the Command
// interface, allowing the scheduler and post-processing steps to build,
// preview, and execute tasks agnostically.
package command

// TaskType represents the type of FFmpeg task.
type TaskType string

const (
	TaskTypeRender    TaskType = "render"    // Full variant render from a filter graph
	TaskTypeCaption   TaskType = "caption"   // Caption burn-in onto a rendered variant
	TaskTypeThumbnail TaskType = "thumbnail" // Single-frame thumbnail extraction
)

// Command represents an FFmpeg command that can be built, executed, or previewed.
//
// All specialized builders (RenderBuilder, CaptionBuilder, ThumbnailBuilder)
// implement this interface, so the scheduler can process tasks without
// knowing what kind of output they produce.
//
// Example usage:
//
//	cmd := render.NewRenderBuilder(graphResult, "out/variant.mp4").
//		SetCRF(20).
//		SetPreset("fast")
//
//	// Preview the command
//	cmd.DryRun()
//
//	// Execute the command
//	cmd.Run()
type Command interface {
	// BuildArgs constructs and returns the FFmpeg command arguments as a slice.
	// The returned slice is suitable for exec.Command("ffmpeg", args...).
	//
	// Example return value:
	//   ["-i", "clip.mp4", "-filter_complex", "...", "-map", "[vout]", "-y", "out.mp4"]
	BuildArgs() []string

	// Run executes the FFmpeg command using exec.Command.
	// The method blocks until the command completes.
	//
	// Returns an error if the command fails to execute or returns a non-zero
	// exit code; the error carries the tool's diagnostic output.
	Run() error

	// DryRun returns the FFmpeg command as a string without executing it.
	// Useful for debugging, logging, or generating scripts.
	//
	// Returns the command string in format "ffmpeg <args...>" and an error if
	// the command cannot be built (e.g., invalid parameters).
	DryRun() (string, error)

	// GetTaskType returns the type of task (render, caption, thumbnail).
	// Used for logging and task-specific handling.
	GetTaskType() TaskType

	// GetInputPath returns the primary input file path for this command.
	// Used for validation and logging.
	GetInputPath() string

	// GetOutputPath returns the output file path for this command.
	// Used for result tracking and file management.
	GetOutputPath() string
}
