package render

import (
	"strings"
	"testing"

	"adforge/command"
	"adforge/filtergraph"
	"adforge/models"
)

// graphFor builds a real graph for the given clips so the builder tests
// exercise the same structures the pipeline produces.
type staticInfo struct {
	audio map[string]bool
}

func (s staticInfo) HasAudio(path string) bool { return s.audio[path] }

func (s staticInfo) Duration(path string) (float64, bool) { return 0, false }

func buildGraph(t *testing.T, withAudio bool) *filtergraph.Result {
	t.Helper()

	info := staticInfo{audio: map[string]bool{}}
	if withAudio {
		info.audio["hook.mp4"] = true
		info.audio["cta.mp4"] = true
	}

	c := models.Combination{Parts: []models.ComboPart{
		{Label: "hook", Item: models.MediaItem{Name: "hook", Path: "hook.mp4"}},
		{Label: "cta", Item: models.MediaItem{Name: "cta", Path: "cta.mp4"}},
	}}

	result, err := filtergraph.Build(c, nil, info, filtergraph.Options{Width: 1080, Height: 1920})
	if err != nil {
		t.Fatalf("Failed to build graph: %v", err)
	}
	return result
}

func TestNewRenderBuilder_Defaults(t *testing.T) {
	builder := NewRenderBuilder(buildGraph(t, true), "out/variant.mp4")

	if builder.crf != DefaultCRF {
		t.Errorf("Expected default CRF %d, got %d", DefaultCRF, builder.crf)
	}
	if builder.preset != DefaultPreset {
		t.Errorf("Expected default preset %s, got %s", DefaultPreset, builder.preset)
	}
}

func TestRenderBuilder_BuildArgs_Inputs(t *testing.T) {
	builder := NewRenderBuilder(buildGraph(t, true), "out/variant.mp4")
	args := builder.BuildArgs()
	argsStr := strings.Join(args, " ")

	if !strings.Contains(argsStr, "-i hook.mp4") {
		t.Error("Expected first segment as input")
	}
	if !strings.Contains(argsStr, "-i cta.mp4") {
		t.Error("Expected second segment as input")
	}
	if strings.Index(argsStr, "-i hook.mp4") > strings.Index(argsStr, "-i cta.mp4") {
		t.Error("Expected inputs in part order")
	}
}

func TestRenderBuilder_BuildArgs_FilterComplexAndMapping(t *testing.T) {
	builder := NewRenderBuilder(buildGraph(t, true), "out/variant.mp4")
	args := builder.BuildArgs()
	argsStr := strings.Join(args, " ")

	if !strings.Contains(argsStr, "-filter_complex") {
		t.Error("Expected -filter_complex flag")
	}
	if !strings.Contains(argsStr, "-map [vcat]") {
		t.Error("Expected video output mapping")
	}
	if !strings.Contains(argsStr, "-map [acat]") {
		t.Error("Expected audio output mapping")
	}

	// The serialized graph rides as a single argument.
	found := false
	for i, arg := range args {
		if arg == "-filter_complex" && i+1 < len(args) {
			if strings.Contains(args[i+1], "concat=n=2") {
				found = true
			}
		}
	}
	if !found {
		t.Error("Expected serialized graph after -filter_complex")
	}
}

func TestRenderBuilder_BuildArgs_Encoding(t *testing.T) {
	builder := NewRenderBuilder(buildGraph(t, true), "out/variant.mp4").
		SetCRF(20).
		SetPreset("fast")

	argsStr := strings.Join(builder.BuildArgs(), " ")

	expected := []string{
		"-c:v libx264",
		"-crf 20",
		"-preset fast",
		"-pix_fmt yuv420p",
		"-c:a aac",
		"-b:a 192k",
		"-movflags +faststart",
		"-y out/variant.mp4",
	}
	for _, want := range expected {
		if !strings.Contains(argsStr, want) {
			t.Errorf("Expected %q in args: %s", want, argsStr)
		}
	}
}

func TestRenderBuilder_BuildArgs_VideoOnly(t *testing.T) {
	builder := NewRenderBuilder(buildGraph(t, false), "out/variant.mp4")
	argsStr := strings.Join(builder.BuildArgs(), " ")

	if strings.Contains(argsStr, "-c:a") {
		t.Error("Expected no audio codec for video-only graph")
	}
	if strings.Contains(argsStr, "-map [acat]") {
		t.Error("Expected no audio mapping for video-only graph")
	}
	if !strings.Contains(argsStr, "-map [vcat]") {
		t.Error("Expected video mapping")
	}
}

func TestRenderBuilder_AddExtraArgs(t *testing.T) {
	builder := NewRenderBuilder(buildGraph(t, true), "out/variant.mp4").
		AddExtraArgs("-t", "30")

	argsStr := strings.Join(builder.BuildArgs(), " ")
	if !strings.Contains(argsStr, "-t 30") {
		t.Error("Expected extra args in command")
	}
	// Extra args come before the output path.
	if strings.Index(argsStr, "-t 30") > strings.Index(argsStr, "-y out/variant.mp4") {
		t.Error("Expected extra args before output")
	}
}

func TestRenderBuilder_DryRun(t *testing.T) {
	builder := NewRenderBuilder(buildGraph(t, true), "out/variant.mp4")

	cmdStr, err := builder.DryRun()
	if err != nil {
		t.Fatalf("DryRun returned error: %v", err)
	}
	if !strings.HasPrefix(cmdStr, "ffmpeg ") {
		t.Error("Expected command string to start with ffmpeg")
	}
	if !strings.Contains(cmdStr, "out/variant.mp4") {
		t.Error("Expected output path in command string")
	}
}

func TestRenderBuilder_Metadata(t *testing.T) {
	builder := NewRenderBuilder(buildGraph(t, true), "out/variant.mp4")

	if builder.GetTaskType() != command.TaskTypeRender {
		t.Errorf("Expected task type %s, got %s", command.TaskTypeRender, builder.GetTaskType())
	}
	if builder.GetInputPath() != "hook.mp4" {
		t.Errorf("Expected primary input hook.mp4, got %s", builder.GetInputPath())
	}
	if builder.GetOutputPath() != "out/variant.mp4" {
		t.Errorf("Expected output path out/variant.mp4, got %s", builder.GetOutputPath())
	}
}

func TestRenderBuilder_ImplementsCommand(t *testing.T) {
	var _ command.Command = NewRenderBuilder(buildGraph(t, true), "out.mp4")
}
