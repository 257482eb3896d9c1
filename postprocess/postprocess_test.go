package postprocess

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"adforge/command"
	"adforge/models"
)

// fakeTranscriber writes a canned SRT into the scratch directory.
type fakeTranscriber struct {
	err   error
	calls int
}

func (f *fakeTranscriber) Transcribe(videoPath, outDir string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	base := filepath.Base(videoPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	srtPath := filepath.Join(outDir, stem+".srt")
	content := "1\n00:00:00,000 --> 00:00:01,000\nhello\n"
	if err := os.WriteFile(srtPath, []byte(content), 0o644); err != nil {
		return "", err
	}
	return srtPath, nil
}

func successResult(t *testing.T, dir, name string) *models.RenderResult {
	t.Helper()
	outputPath := filepath.Join(dir, name+".mp4")
	if err := os.WriteFile(outputPath, []byte("rendered"), 0o644); err != nil {
		t.Fatalf("Failed to seed output file: %v", err)
	}
	result, err := models.NewRenderSuccess(0, name, outputPath)
	if err != nil {
		t.Fatalf("Failed to build result: %v", err)
	}
	return result
}

// stubRun pretends command execution succeeded, creating the output file
// so renames and stat checks behave like a real run.
func stubRun(t *testing.T) func(command.Command) error {
	t.Helper()
	return func(cmd command.Command) error {
		if err := os.WriteFile(cmd.GetOutputPath(), []byte("processed"), 0o644); err != nil {
			return err
		}
		return nil
	}
}

func TestProcessor_CaptionsReplaceVariant(t *testing.T) {
	dir := t.TempDir()
	result := successResult(t, dir, "variant_a")

	transcriber := &fakeTranscriber{}
	p := New(transcriber, zerolog.Nop(), Options{Captions: true})
	p.run = stubRun(t)

	p.Apply([]*models.RenderResult{result})

	if transcriber.calls != 1 {
		t.Errorf("Expected 1 transcription, got %d", transcriber.calls)
	}

	data, err := os.ReadFile(result.OutputPath)
	if err != nil {
		t.Fatalf("Variant missing after caption burn: %v", err)
	}
	if string(data) != "processed" {
		t.Error("Expected burned file to replace the original variant")
	}
	if !result.Success {
		t.Error("Expected result to stay successful")
	}

	// Scratch directory is cleaned up.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".captions-") {
			t.Errorf("Scratch directory left behind: %s", entry.Name())
		}
	}
}

func TestProcessor_TranscriptionFailureIsSoft(t *testing.T) {
	dir := t.TempDir()
	result := successResult(t, dir, "variant_a")

	transcriber := &fakeTranscriber{err: errors.New("no speech found")}
	p := New(transcriber, zerolog.Nop(), Options{Captions: true})
	p.run = stubRun(t)

	p.Apply([]*models.RenderResult{result})

	if !result.Success {
		t.Error("Expected result to stay successful after transcription failure")
	}
	data, err := os.ReadFile(result.OutputPath)
	if err != nil {
		t.Fatalf("Variant missing: %v", err)
	}
	if string(data) != "rendered" {
		t.Error("Expected original variant untouched when captions fail")
	}
}

func TestProcessor_BurnFailureKeepsOriginal(t *testing.T) {
	dir := t.TempDir()
	result := successResult(t, dir, "variant_a")

	p := New(&fakeTranscriber{}, zerolog.Nop(), Options{Captions: true})
	p.run = func(cmd command.Command) error {
		if cmd.GetTaskType() == command.TaskTypeCaption {
			return errors.New("burn failed")
		}
		return stubRun(t)(cmd)
	}

	p.Apply([]*models.RenderResult{result})

	data, err := os.ReadFile(result.OutputPath)
	if err != nil {
		t.Fatalf("Variant missing: %v", err)
	}
	if string(data) != "rendered" {
		t.Error("Expected original variant untouched when burn fails")
	}
}

func TestProcessor_NilTranscriberIsSoft(t *testing.T) {
	dir := t.TempDir()
	result := successResult(t, dir, "variant_a")

	p := New(nil, zerolog.Nop(), Options{Captions: true})
	p.run = stubRun(t)

	p.Apply([]*models.RenderResult{result})

	if !result.Success {
		t.Error("Expected result to stay successful without a transcriber")
	}
}

func TestProcessor_Thumbnails(t *testing.T) {
	dir := t.TempDir()
	result := successResult(t, dir, "variant_a")

	// The pipeline creates the thumbnails directory before fan-out.
	if err := os.MkdirAll(filepath.Join(dir, "thumbnails"), 0o755); err != nil {
		t.Fatal(err)
	}

	p := New(nil, zerolog.Nop(), Options{Thumbnails: true})
	p.run = stubRun(t)

	p.Apply([]*models.RenderResult{result})

	expected := filepath.Join(dir, "thumbnails", "variant_a.jpg")
	if result.Thumbnail != expected {
		t.Errorf("Expected thumbnail path %s, got %s", expected, result.Thumbnail)
	}
	if _, err := os.Stat(expected); err != nil {
		t.Errorf("Expected thumbnail file to exist: %v", err)
	}
}

func TestProcessor_ThumbnailFailureIsSoft(t *testing.T) {
	dir := t.TempDir()
	result := successResult(t, dir, "variant_a")

	p := New(nil, zerolog.Nop(), Options{Thumbnails: true})
	p.run = func(cmd command.Command) error { return errors.New("no frame") }

	p.Apply([]*models.RenderResult{result})

	if result.Thumbnail != "" {
		t.Error("Expected no thumbnail recorded on failure")
	}
	if !result.Success {
		t.Error("Expected result to stay successful")
	}
}

func TestProcessor_SkipsFailedRenders(t *testing.T) {
	failed, err := models.NewRenderFailure(0, "variant_a", errors.New("render failed"))
	if err != nil {
		t.Fatal(err)
	}

	transcriber := &fakeTranscriber{}
	p := New(transcriber, zerolog.Nop(), Options{Captions: true, Thumbnails: true})
	p.run = stubRun(t)

	p.Apply([]*models.RenderResult{failed, nil})

	if transcriber.calls != 0 {
		t.Errorf("Expected no transcription for failed render, got %d calls", transcriber.calls)
	}
	if failed.Thumbnail != "" {
		t.Error("Expected no thumbnail for failed render")
	}
}

func TestThumbnailPath(t *testing.T) {
	tests := []struct {
		output   string
		expected string
	}{
		{"out/variant.mp4", filepath.Join("out", "thumbnails", "variant.jpg")},
		{"variant.mp4", filepath.Join("thumbnails", "variant.jpg")},
		{"out/no_ext", filepath.Join("out", "thumbnails", "no_ext.jpg")},
	}
	for _, tt := range tests {
		if got := ThumbnailPath(tt.output); got != tt.expected {
			t.Errorf("ThumbnailPath(%s) = %s; want %s", tt.output, got, tt.expected)
		}
	}
}

func TestSummary(t *testing.T) {
	withThumb, _ := models.NewRenderSuccess(0, "a", "a.mp4")
	withThumb.Thumbnail = "a.jpg"
	without, _ := models.NewRenderSuccess(1, "b", "b.mp4")

	count := Summary([]*models.RenderResult{withThumb, without, nil})
	if count != 1 {
		t.Errorf("Expected 1 thumbnail counted, got %d", count)
	}
}
