package command

import (
	"strings"
	"testing"
)

func TestTaskTypeConstants(t *testing.T) {
	tests := []struct {
		name     string
		taskType TaskType
		expected string
	}{
		{"Render", TaskTypeRender, "render"},
		{"Caption", TaskTypeCaption, "caption"},
		{"Thumbnail", TaskTypeThumbnail, "thumbnail"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if string(tt.taskType) != tt.expected {
				t.Errorf("%s = %s; want %s", tt.name, string(tt.taskType), tt.expected)
			}
		})
	}
}

func TestTaskTypeUniqueness(t *testing.T) {
	taskTypes := []TaskType{
		TaskTypeRender,
		TaskTypeCaption,
		TaskTypeThumbnail,
	}

	// Check for duplicates
	seen := make(map[TaskType]bool)
	for _, taskType := range taskTypes {
		if seen[taskType] {
			t.Errorf("Duplicate task type found: %s", taskType)
		}
		seen[taskType] = true
	}
}

// MockCommand is a test implementation of the Command interface
type MockCommand struct {
	args         []string
	taskType     TaskType
	inputPath    string
	outputPath   string
	runCalled    bool
	dryRunCalled bool
}

func (m *MockCommand) BuildArgs() []string {
	return m.args
}

func (m *MockCommand) Run() error {
	m.runCalled = true
	return nil
}

func (m *MockCommand) DryRun() (string, error) {
	m.dryRunCalled = true
	return "ffmpeg " + strings.Join(m.args, " "), nil
}

func (m *MockCommand) GetTaskType() TaskType {
	return m.taskType
}

func (m *MockCommand) GetInputPath() string {
	return m.inputPath
}

func (m *MockCommand) GetOutputPath() string {
	return m.outputPath
}

func TestCommandInterface_MockImplementation(t *testing.T) {
	mock := &MockCommand{
		args:       []string{"-i", "input.mp4", "output.mp4"},
		taskType:   TaskTypeRender,
		inputPath:  "input.mp4",
		outputPath: "output.mp4",
	}

	// Test that mock implements Command
	var cmd Command = mock

	// Test BuildArgs
	args := cmd.BuildArgs()
	if len(args) != 3 {
		t.Errorf("Expected 3 args, got %d", len(args))
	}

	// Test Run
	err := cmd.Run()
	if err != nil {
		t.Errorf("Run returned unexpected error: %v", err)
	}
	if !mock.runCalled {
		t.Error("Run was not called")
	}

	// Test DryRun
	cmdStr, err := cmd.DryRun()
	if err != nil {
		t.Errorf("DryRun returned unexpected error: %v", err)
	}
	if cmdStr == "" {
		t.Error("DryRun should return non-empty command string")
	}
	if !mock.dryRunCalled {
		t.Error("DryRun was not called")
	}

	// Test GetTaskType
	if cmd.GetTaskType() != TaskTypeRender {
		t.Errorf("Expected task type %s, got %s", TaskTypeRender, cmd.GetTaskType())
	}

	// Test GetInputPath
	if cmd.GetInputPath() != "input.mp4" {
		t.Errorf("Expected input path 'input.mp4', got '%s'", cmd.GetInputPath())
	}

	// Test GetOutputPath
	if cmd.GetOutputPath() != "output.mp4" {
		t.Errorf("Expected output path 'output.mp4', got '%s'", cmd.GetOutputPath())
	}
}

func TestCommandInterface_TaskTypeSwitch(t *testing.T) {
	taskTypes := []TaskType{
		TaskTypeRender,
		TaskTypeCaption,
		TaskTypeThumbnail,
	}

	for _, taskType := range taskTypes {
		mock := &MockCommand{taskType: taskType}
		var cmd Command = mock

		// Test that we can switch on task type
		switch cmd.GetTaskType() {
		case TaskTypeRender:
			if taskType != TaskTypeRender {
				t.Error("Task type mismatch")
			}
		case TaskTypeCaption:
			if taskType != TaskTypeCaption {
				t.Error("Task type mismatch")
			}
		case TaskTypeThumbnail:
			if taskType != TaskTypeThumbnail {
				t.Error("Task type mismatch")
			}
		default:
			t.Errorf("Unknown task type: %s", taskType)
		}
	}
}
