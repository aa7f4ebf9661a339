package batch

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/pixeldesk/image-studio/internal/logger"
	"github.com/pixeldesk/image-studio/internal/ops"
)

func newTestRunner() *Runner {
	return NewRunner(ops.NewRegistry(), logger.New(zap.ErrorLevel))
}

func writeTestPNG(t *testing.T, dir, name string) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x * 30), uint8(y * 30), 120, 255})
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return path
}

func TestParsePipeline(t *testing.T) {
	registry := ops.NewRegistry()

	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{
			name: "valid pipeline",
			data: `[{"op":"grayscale"},{"op":"blur","params":{"radius":2}}]`,
		},
		{
			name:    "empty pipeline",
			data:    `[]`,
			wantErr: true,
		},
		{
			name:    "malformed JSON",
			data:    `[{"op":`,
			wantErr: true,
		},
		{
			name:    "unknown operation",
			data:    `[{"op":"teleport"}]`,
			wantErr: true,
		},
		{
			name:    "invalid parameter",
			data:    `[{"op":"blur","params":{"radius":-1}}]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps, err := ParsePipeline([]byte(tt.data), registry)
			if tt.wantErr {
				if err == nil {
					t.Error("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(steps) == 0 {
				t.Error("expected steps")
			}
		})
	}
}

func TestLoadPipeline(t *testing.T) {
	registry := ops.NewRegistry()

	path := filepath.Join(t.TempDir(), "pipeline.json")
	if err := os.WriteFile(path, []byte(`[{"op":"sepia"}]`), 0o644); err != nil {
		t.Fatalf("failed to write pipeline: %v", err)
	}

	steps, err := LoadPipeline(path, registry)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(steps) != 1 || steps[0].Op != "sepia" {
		t.Errorf("unexpected steps: %+v", steps)
	}

	if _, err := LoadPipeline(filepath.Join(t.TempDir(), "missing.json"), registry); err == nil {
		t.Error("missing pipeline file should fail")
	}
}

func TestRun(t *testing.T) {
	runner := newTestRunner()
	inDir := t.TempDir()
	outDir := t.TempDir()

	a := writeTestPNG(t, inDir, "a.png")
	b := writeTestPNG(t, inDir, "b.png")

	steps := []Step{
		{Op: "grayscale"},
		{Op: "resize", Params: ops.Params{"width": 4, "height": 4}},
	}

	summary, err := runner.Run(steps, []string{a, b}, Options{OutputDir: outDir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Processed != 2 || summary.Failed != 0 {
		t.Errorf("summary: %+v", summary)
	}
	for _, name := range []string{"a.png", "b.png"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("output %s missing: %v", name, err)
		}
	}
}

func TestRunContinuesAfterFailure(t *testing.T) {
	runner := newTestRunner()
	outDir := t.TempDir()

	good := writeTestPNG(t, t.TempDir(), "good.png")
	missing := filepath.Join(t.TempDir(), "missing.png")

	steps := []Step{{Op: "invert"}}
	summary, err := runner.Run(steps, []string{missing, good}, Options{OutputDir: outDir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Processed != 1 || summary.Failed != 1 {
		t.Errorf("summary: %+v", summary)
	}
	if summary.Results[0].Error == "" {
		t.Error("first result should carry the failure")
	}
	if summary.Results[1].Output == "" {
		t.Error("second result should have an output path")
	}
}

func TestRunDuplicateBaseNames(t *testing.T) {
	runner := newTestRunner()
	outDir := t.TempDir()

	// Same base name in two input directories.
	a := writeTestPNG(t, t.TempDir(), "img.png")
	b := writeTestPNG(t, t.TempDir(), "img.png")

	summary, err := runner.Run([]Step{{Op: "invert"}}, []string{a, b}, Options{OutputDir: outDir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Processed != 2 {
		t.Fatalf("summary: %+v", summary)
	}

	if summary.Results[0].Output == summary.Results[1].Output {
		t.Fatalf("both inputs wrote to %s", summary.Results[0].Output)
	}
	for _, name := range []string{"img.png", "img-2.png"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("output %s missing: %v", name, err)
		}
	}
}

func TestRunFormatOverride(t *testing.T) {
	runner := newTestRunner()
	outDir := t.TempDir()
	in := writeTestPNG(t, t.TempDir(), "photo.png")

	summary, err := runner.Run([]Step{{Op: "sepia"}}, []string{in}, Options{
		OutputDir:   outDir,
		Format:      "jpg",
		JPEGQuality: 80,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Processed != 1 {
		t.Fatalf("summary: %+v", summary)
	}
	if _, err := os.Stat(filepath.Join(outDir, "photo.jpg")); err != nil {
		t.Errorf("jpg output missing: %v", err)
	}
}

func TestRunRequiresOutputDir(t *testing.T) {
	runner := newTestRunner()
	if _, err := runner.Run([]Step{{Op: "invert"}}, nil, Options{}); err == nil {
		t.Error("empty output dir should fail")
	}
}
