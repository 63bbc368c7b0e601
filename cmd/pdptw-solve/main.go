// Command pdptw-solve reads a PDPTW instance (Format-A or Format-B,
// auto-detected), runs the solver, and writes the solution text format.
// Grounded on the pack's "thin main wiring library calls" idiom: all the
// actual work lives in pdptw.Solve and the format/config/logx packages;
// main only parses flags, opens files, and wires a cancellable context to
// an OS signal.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/katalvlaran/pdptw"
	"github.com/katalvlaran/pdptw/config"
	"github.com/katalvlaran/pdptw/feasibility"
	"github.com/katalvlaran/pdptw/format"
	"github.com/katalvlaran/pdptw/ils"
	"github.com/katalvlaran/pdptw/internal/logx"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "pdptw-solve:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := pflag.NewFlagSet("pdptw-solve", pflag.ContinueOnError)
	config.Flags(fs)
	instancePath := fs.String("instance", "", "path to the instance file (required)")
	outputPath := fs.String("output", "", "path to write the solution to (default: stdout)")
	authors := fs.String("authors", "", "Authors field for the solution header")
	reference := fs.String("reference", "", "Reference field for the solution header")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *instancePath == "" {
		return errors.New("pdptw-solve: -instance is required")
	}

	cfg, err := config.Load(fs)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := logx.New(os.Stderr, cfg.LogLevel)

	data, err := os.ReadFile(*instancePath)
	if err != nil {
		return fmt.Errorf("reading instance: %w", err)
	}
	in, err := format.ParseInstance(data)
	if err != nil {
		return fmt.Errorf("parsing instance: %w", err)
	}
	logger.Info("instance loaded", "path", *instancePath, "nodes", in.NNodes, "requests", in.NRequests)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	solveCfg := pdptw.DefaultConfig()
	solveCfg.TimeLimit = cfg.TimeLimit()
	solveCfg.MaxIterations = cfg.MaxILSIterations
	solveCfg.NoImprovementStop = cfg.NoImprovementStop
	solveCfg.LNSIterations = cfg.LNSIterations
	solveCfg.DestroyMin = cfg.DestroyMin
	solveCfg.DestroyMax = cfg.DestroyMax
	solveCfg.LAHCHistory = cfg.LAHCHistory
	solveCfg.LocalSearchEvery = cfg.LocalSearchEvery
	solveCfg.Seed = cfg.Seed
	solveCfg.OnProgress = func(ev ils.ProgressEvent) {
		logger.Debug("iteration_done",
			"iteration", ev.Iteration,
			"vehicles", ev.VehicleCount,
			"distance", ev.Distance,
			"improved", ev.Improved,
		)
	}

	result, err := pdptw.Solve(ctx, in, solveCfg)
	if err != nil {
		logger.Error("solve failed", err)
		return err
	}

	if rep := feasibility.Validate(in, result.Solution); !rep.Feasible() {
		logger.Error("best solution failed validation", errors.New("infeasible"), "violations", len(rep.Violations))
		return fmt.Errorf("pdptw-solve: solver returned an infeasible solution (%d violations)", len(rep.Violations))
	}

	logger.Info("solve finished",
		"vehicles", result.Solution.VehicleCount(),
		"distance", result.Solution.TotalDistance(in),
		"iterations", result.Metrics.Iterations,
		"improvements", result.Metrics.Improvements,
		"duration", result.Metrics.Duration.String(),
	)

	meta := format.Meta{
		InstanceName: *instancePath,
		Authors:      *authors,
		Date:         time.Now().Format("2006-01-02"),
		Reference:    *reference,
	}
	out := format.WriteSolution(meta, result.Solution)

	if *outputPath == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	return os.WriteFile(*outputPath, out, 0o644)
}
