package models

import (
	"fmt"
	"strings"
)

// maxDiagnosticLen caps the stderr excerpt carried in a failed result so the
// final report stays readable.
const maxDiagnosticLen = 500

// RenderResult represents the outcome of rendering a single combination.
//
// Results are indexed by submission order regardless of completion order.
// The structure enforces logical consistency: successful results must have
// an output path and no error, while failed results must have an error.
//
// Use NewRenderSuccess or NewRenderFailure to create validated instances.
type RenderResult struct {
	Index      int    `json:"index"`
	Name       string `json:"name"`
	OutputPath string `json:"output_path"`
	Thumbnail  string `json:"thumbnail,omitempty"`
	Success    bool   `json:"success"`
	Err        error  `json:"-"`
}

// NewRenderSuccess creates a successful RenderResult with validation.
//
// Returns an error if outputPath is empty or whitespace-only.
func NewRenderSuccess(index int, name, outputPath string) (*RenderResult, error) {
	r := &RenderResult{
		Index:      index,
		Name:       name,
		OutputPath: outputPath,
		Success:    true,
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("invalid render result: %w", err)
	}
	return r, nil
}

// NewRenderFailure creates a failed RenderResult.
//
// The error is truncated to a bounded diagnostic so multi-page ffmpeg
// stderr dumps don't swamp the batch summary. The error parameter must not
// be nil.
func NewRenderFailure(index int, name string, renderErr error) (*RenderResult, error) {
	if renderErr == nil {
		return nil, fmt.Errorf("invalid render result: error cannot be nil for failed result")
	}
	return &RenderResult{
		Index:   index,
		Name:    name,
		Success: false,
		Err:     truncateError(renderErr),
	}, nil
}

// Validate checks if the RenderResult has consistent state.
func (r *RenderResult) Validate() error {
	if r.Success && r.Err != nil {
		return fmt.Errorf("inconsistent state: Success is true but Err is not nil")
	}
	if !r.Success && r.Err == nil {
		return fmt.Errorf("failed result must have an error")
	}
	if r.Success && strings.TrimSpace(r.OutputPath) == "" {
		return fmt.Errorf("output_path cannot be empty for successful result")
	}
	return nil
}

// Diagnostic returns the per-item reason for a failed result, empty for
// successes.
func (r *RenderResult) Diagnostic() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

func truncateError(err error) error {
	msg := err.Error()
	if len(msg) <= maxDiagnosticLen {
		return err
	}
	return fmt.Errorf("%s... (truncated)", msg[:maxDiagnosticLen])
}
