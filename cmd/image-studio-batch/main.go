package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/jamiealquiza/envy"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pixeldesk/image-studio/internal/batch"
	"github.com/pixeldesk/image-studio/internal/logger"
	"github.com/pixeldesk/image-studio/internal/ops"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-studio-batch %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		}
	}

	loglevel := zap.LevelFlag("log-level", zapcore.InfoLevel, "log level for the application")
	pipelinePath := flag.String("pipeline", "", "path to the pipeline JSON file")
	outDir := flag.String("out", "", "directory for processed images")
	format := flag.String("format", "", "output format override (png, jpg, gif, tiff, bmp)")
	quality := flag.Int("quality", 0, "JPEG quality 1-100, 0 uses the default")
	envy.Parse("STUDIO")
	flag.Parse()

	log := logger.New(*loglevel)
	defer log.Sync()

	inputs := flag.Args()
	if *pipelinePath == "" || *outDir == "" || len(inputs) == 0 {
		fmt.Fprintln(os.Stderr, "usage: image-studio-batch -pipeline <file.json> -out <dir> [options] <image>...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	registry := ops.NewRegistry()
	steps, err := batch.LoadPipeline(*pipelinePath, registry)
	if err != nil {
		log.Fatalw("Invalid pipeline",
			"path", *pipelinePath,
			"error", err,
		)
	}

	log.Infow("Starting batch run",
		"version", Version,
		"steps", len(steps),
		"inputs", len(inputs),
	)

	runner := batch.NewRunner(registry, log)
	summary, err := runner.Run(steps, inputs, batch.Options{
		OutputDir:   *outDir,
		Format:      *format,
		JPEGQuality: *quality,
	})
	if err != nil {
		log.Fatalw("Batch run failed",
			"error", err,
		)
	}

	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		log.Fatalw("Failed to encode summary",
			"error", err,
		)
	}
	fmt.Println(string(out))

	if summary.Failed > 0 {
		os.Exit(1)
	}
}
