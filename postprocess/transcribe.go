package postprocess

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Transcriber produces a subtitle file for a rendered video. The returned
// path must point at an SRT (or ASS) file ready for burn-in.
type Transcriber interface {
	Transcribe(videoPath, outDir string) (subtitlePath string, err error)
}

// WhisperCLI shells out to the whisper command-line tool for speech-to-text
// caption generation.
type WhisperCLI struct {
	Binary   string // executable name, default "whisper"
	Model    string // model size, default "small"
	Language string // optional language hint, empty means auto-detect
}

// NewWhisperCLI creates a transcriber with the default binary and model.
func NewWhisperCLI() *WhisperCLI {
	return &WhisperCLI{Binary: "whisper", Model: "small"}
}

// Transcribe runs whisper on the video and returns the path of the SRT it
// wrote into outDir.
func (w *WhisperCLI) Transcribe(videoPath, outDir string) (string, error) {
	args := w.buildArgs(videoPath, outDir)

	cmd := exec.Command(w.Binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("transcription failed: %w, output: %s", err, string(output))
	}

	srtPath := w.outputPath(videoPath, outDir)
	if _, err := os.Stat(srtPath); err != nil {
		return "", fmt.Errorf("transcription produced no subtitle file at %s: %w", srtPath, err)
	}
	return srtPath, nil
}

func (w *WhisperCLI) buildArgs(videoPath, outDir string) []string {
	args := []string{
		videoPath,
		"--model", w.Model,
		"--output_format", "srt",
		"--output_dir", outDir,
	}
	if w.Language != "" {
		args = append(args, "--language", w.Language)
	}
	return args
}

// outputPath is where whisper writes the SRT: the video's stem in outDir.
func (w *WhisperCLI) outputPath(videoPath, outDir string) string {
	base := filepath.Base(videoPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outDir, stem+".srt")
}
