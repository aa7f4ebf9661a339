package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pixeldesk/image-studio/internal/imageio"
	"github.com/pixeldesk/image-studio/internal/logger"
	"github.com/pixeldesk/image-studio/internal/ops"
)

// Step is one operation in a pipeline.
type Step struct {
	Op     string     `json:"op"`
	Params ops.Params `json:"params,omitempty"`
}

// ParsePipeline decodes a JSON pipeline and validates every step against the
// registry. A pipeline that fails validation never starts processing files.
func ParsePipeline(data []byte, registry *ops.Registry) ([]Step, error) {
	var steps []Step
	if err := json.Unmarshal(data, &steps); err != nil {
		return nil, fmt.Errorf("failed to parse pipeline: %w", err)
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("pipeline is empty")
	}

	for i, step := range steps {
		if err := registry.Validate(step.Op, step.Params); err != nil {
			return nil, fmt.Errorf("pipeline step %d: %w", i+1, err)
		}
	}
	return steps, nil
}

// LoadPipeline reads and validates a pipeline file.
func LoadPipeline(path string, registry *ops.Registry) ([]Step, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pipeline file: %w", err)
	}
	return ParsePipeline(data, registry)
}

// Options controls where and how processed images are written.
type Options struct {
	// OutputDir receives the processed files. Required.
	OutputDir string

	// Format overrides the output extension (e.g. "png", "jpg"). When empty,
	// each file keeps its input extension.
	Format string

	// JPEGQuality applies to JPEG output; zero means the default quality.
	JPEGQuality int
}

// FileResult records the outcome for a single input file.
type FileResult struct {
	Input  string `json:"input"`
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Summary aggregates a run over all inputs.
type Summary struct {
	Processed int          `json:"processed"`
	Failed    int          `json:"failed"`
	Results   []FileResult `json:"results"`
}

// Runner applies a validated pipeline to files one at a time.
type Runner struct {
	registry *ops.Registry
	log      *logger.Logger
}

// NewRunner creates a Runner backed by the given operation registry.
func NewRunner(registry *ops.Registry, log *logger.Logger) *Runner {
	return &Runner{registry: registry, log: log}
}

// Run processes each input through every pipeline step and writes the result
// into opts.OutputDir. A failing file is recorded and skipped; the remaining
// inputs still run. The output directory is created if missing.
func (r *Runner) Run(steps []Step, inputs []string, opts Options) (*Summary, error) {
	if opts.OutputDir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	summary := &Summary{Results: make([]FileResult, 0, len(inputs))}
	seen := make(map[string]int, len(inputs))
	for _, input := range inputs {
		result := FileResult{Input: input}

		name := uniqueName(outputName(input, opts.Format), seen)
		output := filepath.Join(opts.OutputDir, name)
		err := r.processFile(steps, input, output, opts)
		if err != nil {
			r.log.Warnw("Batch file failed", "input", input, "error", err)
			result.Error = err.Error()
			summary.Failed++
		} else {
			result.Output = output
			summary.Processed++
		}
		summary.Results = append(summary.Results, result)
	}
	return summary, nil
}

// processFile runs one input through the pipeline and saves the result.
func (r *Runner) processFile(steps []Step, input, output string, opts Options) error {
	img, err := imageio.Load(input)
	if err != nil {
		return err
	}

	for _, step := range steps {
		img, err = r.registry.Apply(step.Op, img, step.Params)
		if err != nil {
			return err
		}
	}

	if err := imageio.Save(img, output, imageio.SaveOptions{JPEGQuality: opts.JPEGQuality}); err != nil {
		return err
	}

	r.log.Infow("Batch file processed", "input", input, "output", output, "steps", len(steps))
	return nil
}

// outputName keeps the input's base name, optionally swapping the extension.
func outputName(input, format string) string {
	base := filepath.Base(input)
	if format == "" {
		return base
	}
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + "." + strings.TrimPrefix(format, ".")
}

// uniqueName numbers repeated output names so inputs with the same base name
// from different directories do not overwrite each other.
func uniqueName(name string, seen map[string]int) string {
	n := seen[name]
	seen[name] = n + 1
	if n == 0 {
		return name
	}
	ext := filepath.Ext(name)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(name, ext), n+1, ext)
}
