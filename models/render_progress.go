package models

import (
	"fmt"
	"time"
)

// RenderProgress represents real-time metrics parsed from the transcoding
// engine's stderr while a job renders.
type RenderProgress struct {
	Frame       int64   // current frame number
	FPS         float64 // frames per second being processed
	CurrentTime string  // current timestamp (HH:MM:SS.MS)

	Bitrate string  // current bitrate (e.g. "128.0kbits/s")
	Speed   float64 // speed multiplier (2.34 means 2.34x realtime)
	Size    string  // current output file size (e.g. "1024kB")

	TotalDuration float64 // expected output duration, for percentage
	Progress      float64 // percentage complete (0-100)

	StartTime time.Time
	UpdatedAt time.Time
}

// ProgressCallback receives progress updates during a render.
type ProgressCallback func(progress *RenderProgress)

// NewRenderProgress creates a progress tracker for one job.
func NewRenderProgress(totalDuration float64) *RenderProgress {
	return &RenderProgress{
		TotalDuration: totalDuration,
		StartTime:     time.Now(),
		UpdatedAt:     time.Now(),
	}
}

// CalculateProgress updates the percentage from the current output position.
func (rp *RenderProgress) CalculateProgress(currentSeconds float64) {
	if rp.TotalDuration > 0 {
		rp.Progress = (currentSeconds / rp.TotalDuration) * 100
		if rp.Progress > 100 {
			rp.Progress = 100
		}
	}
	rp.UpdatedAt = time.Now()
}

// EstimatedTimeRemaining calculates ETA from elapsed time and percentage.
func (rp *RenderProgress) EstimatedTimeRemaining() time.Duration {
	if rp.Progress <= 0 {
		return 0
	}
	elapsed := time.Since(rp.StartTime)
	totalEstimated := time.Duration(float64(elapsed) / (rp.Progress / 100))
	remaining := totalEstimated - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// FormatSummary returns a human-readable one-line summary.
func (rp *RenderProgress) FormatSummary() string {
	return fmt.Sprintf(
		"Progress: %.1f%% | Speed: %.2fx | Bitrate: %s | Size: %s | ETA: %s",
		rp.Progress, rp.Speed, rp.Bitrate, rp.Size,
		formatDuration(rp.EstimatedTimeRemaining()),
	)
}

func formatDuration(d time.Duration) string {
	if d == 0 {
		return "calculating..."
	}
	seconds := int(d.Seconds())
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	minutes := seconds / 60
	seconds = seconds % 60
	if minutes < 60 {
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	}
	hours := minutes / 60
	minutes = minutes % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}
