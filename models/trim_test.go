package models

import (
	"strings"
	"testing"
)

func TestParseTrimSpec_Range(t *testing.T) {
	spec, err := ParseTrimSpec("1.5:2.5")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if spec.Kind != TrimRange {
		t.Error("Expected TrimRange kind")
	}
	if spec.Start != 1.5 {
		t.Errorf("Expected start 1.5, got %g", spec.Start)
	}
	if spec.Duration != 2.5 {
		t.Errorf("Expected duration 2.5, got %g", spec.Duration)
	}
}

func TestParseTrimSpec_Last(t *testing.T) {
	spec, err := ParseTrimSpec("last:3")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if spec.Kind != TrimLast {
		t.Error("Expected TrimLast kind")
	}
	if spec.Seconds != 3 {
		t.Errorf("Expected seconds 3, got %g", spec.Seconds)
	}
}

func TestParseTrimSpec_LastCaseInsensitive(t *testing.T) {
	spec, err := ParseTrimSpec("LAST:2")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if spec.Kind != TrimLast {
		t.Error("Expected TrimLast kind")
	}
}

func TestParseTrimSpec_Invalid(t *testing.T) {
	tests := []struct {
		name string
		spec string
	}{
		{"missing colon", "3"},
		{"empty", ""},
		{"negative start", "-1:3"},
		{"zero duration", "0:0"},
		{"negative duration", "0:-2"},
		{"zero last seconds", "last:0"},
		{"negative last seconds", "last:-1"},
		{"garbage start", "abc:3"},
		{"garbage duration", "0:xyz"},
		{"garbage last", "last:xyz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseTrimSpec(tt.spec); err == nil {
				t.Errorf("Expected error for %q, got none", tt.spec)
			}
		})
	}
}

func TestTrimSpec_String(t *testing.T) {
	rangeSpec := TrimSpec{Kind: TrimRange, Start: 0, Duration: 3}
	if rangeSpec.String() != "0:3" {
		t.Errorf("Expected \"0:3\", got %q", rangeSpec.String())
	}

	lastSpec := TrimSpec{Kind: TrimLast, Seconds: 2}
	if lastSpec.String() != "last:2" {
		t.Errorf("Expected \"last:2\", got %q", lastSpec.String())
	}
}

func TestParseTrimSpec_RoundTrip(t *testing.T) {
	for _, s := range []string{"0:3", "1.5:2.5", "last:2"} {
		spec, err := ParseTrimSpec(s)
		if err != nil {
			t.Fatalf("ParseTrimSpec(%q) failed: %v", s, err)
		}
		if spec.String() != s {
			t.Errorf("Round trip of %q produced %q", s, spec.String())
		}
	}
}

func TestNewSegment(t *testing.T) {
	seg, err := NewSegment("hook", []MediaItem{{Name: "a", Path: "/clips/a.mp4"}})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if seg.Label != "hook" {
		t.Error("Expected label to be set")
	}
}

func TestNewSegment_Invalid(t *testing.T) {
	if _, err := NewSegment("", []MediaItem{{Name: "a", Path: "/a.mp4"}}); err == nil {
		t.Error("Expected error for empty label")
	}
	if _, err := NewSegment("hook", nil); err == nil {
		t.Error("Expected error for empty pool")
	}
	if _, err := NewSegment("hook", []MediaItem{{Name: "a", Path: "  "}}); err == nil {
		t.Error("Expected error for blank item path")
	}
}

func TestNewRenderSuccess(t *testing.T) {
	r, err := NewRenderSuccess(0, "a_x", "/out/a_x.mp4")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !r.Success {
		t.Error("Expected Success true")
	}
	if r.Diagnostic() != "" {
		t.Error("Expected empty diagnostic for success")
	}
}

func TestNewRenderSuccess_EmptyPath(t *testing.T) {
	if _, err := NewRenderSuccess(0, "a_x", "  "); err == nil {
		t.Error("Expected error for empty output path")
	}
}

func TestNewRenderFailure(t *testing.T) {
	r, err := NewRenderFailure(2, "b_y", errTest)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if r.Success {
		t.Error("Expected Success false")
	}
	if r.Index != 2 {
		t.Errorf("Expected index 2, got %d", r.Index)
	}
	if r.Diagnostic() == "" {
		t.Error("Expected non-empty diagnostic")
	}
}

func TestNewRenderFailure_NilError(t *testing.T) {
	if _, err := NewRenderFailure(0, "a_x", nil); err == nil {
		t.Error("Expected error for nil render error")
	}
}

func TestNewRenderFailure_TruncatesLongDiagnostics(t *testing.T) {
	long := strings.Repeat("x", 2000)
	r, err := NewRenderFailure(0, "a_x", errLong(long))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(r.Diagnostic()) > maxDiagnosticLen+20 {
		t.Errorf("Expected truncated diagnostic, got %d chars", len(r.Diagnostic()))
	}
	if !strings.HasSuffix(r.Diagnostic(), "(truncated)") {
		t.Error("Expected truncation marker")
	}
}

var errTest = errText("ffmpeg exited with status 1")

type errText string

func (e errText) Error() string { return string(e) }

func errLong(s string) error { return errText(s) }
