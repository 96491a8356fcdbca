// Command bvnround reads a fractional reviewer/paper assignment and its
// institution labels, rounds it with bvnround.Round, and writes the
// integral result back out. It is a thin host around the core library —
// config loading, logging, and file I/O only, no rounding logic of its own.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/revpap/bvnround"
	"github.com/revpap/bvnround/matrixio"
	"github.com/revpap/bvnround/runlog"
)

const envPrefix = "BVNROUND_"

func loadConfig() (*koanf.Koanf, error) {
	k := koanf.New(".")

	defaults := map[string]any{
		"log.level":  "info",
		"log.format": "json",
	}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKeyMapper), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	return k, nil
}

// envKeyMapper turns BVNROUND_LOG_LEVEL into "log.level".
func envKeyMapper(s string) string {
	out := make([]byte, 0, len(s))
	trimmed := s[len(envPrefix):]
	for i := 0; i < len(trimmed); i++ {
		c := trimmed[i]
		if c == '_' {
			out = append(out, '.')
			continue
		}
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out)
}

func main() {
	inputPath := flag.String("input", "", "path to a JSON dense-matrix input file (matrixio.Matrix)")
	subsetsPath := flag.String("subsets", "", "path to a JSON institution-label array")
	outputPath := flag.String("output", "", "path to write the rounded JSON dense matrix (default: stdout)")
	logLevel := flag.String("log-level", "", "override the configured log level (debug, info, warn, error)")
	flag.Parse()

	k, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	level := k.String("log.level")
	if *logLevel != "" {
		level = *logLevel
	}

	logger := runlog.New(runlog.Config{
		Level:  level,
		Format: k.String("log.format"),
		Output: "stderr",
	})

	if *inputPath == "" || *subsetsPath == "" {
		logger.Error("missing required flags", "input", *inputPath, "subsets", *subsetsPath)
		os.Exit(2)
	}

	if err := run(*inputPath, *subsetsPath, *outputPath, logger); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(inputPath, subsetsPath, outputPath string, logger *slog.Logger) error {
	start := time.Now()

	inFile, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer inFile.Close()

	m, err := matrixio.ReadDense(inFile)
	if err != nil {
		return fmt.Errorf("read dense matrix: %w", err)
	}

	subsetsFile, err := os.Open(subsetsPath)
	if err != nil {
		return fmt.Errorf("open subsets: %w", err)
	}
	defer subsetsFile.Close()

	subsets, err := matrixio.ReadSubsets(subsetsFile)
	if err != nil {
		return fmt.Errorf("read subsets: %w", err)
	}

	if err := bvnround.Round(m.Flows, subsets, m.NPaps, m.NRevs); err != nil {
		return fmt.Errorf("round: %w", err)
	}

	out := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := matrixio.WriteDense(out, m); err != nil {
		return fmt.Errorf("write dense matrix: %w", err)
	}

	logger.Info("round complete",
		"npaps", m.NPaps,
		"nrevs", m.NRevs,
		"elapsed", time.Since(start).String(),
	)
	return nil
}
