package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"mesh-autoskin/internal/batch"
	"mesh-autoskin/internal/config"
	"mesh-autoskin/internal/debugviz"
	"mesh-autoskin/internal/gltfio"
	"mesh-autoskin/internal/imageio"
	"mesh-autoskin/internal/skeleton"
	"mesh-autoskin/internal/skinning"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	input := flag.String("input", "", "Input .gltf/.glb with an armature and unskinned meshes")
	output := flag.String("output", "", "Output .gltf/.glb (default: <input>.skinned.<ext>)")
	debugDir := flag.String("debug-dir", "", "Directory for weight-painted renders (default: <output dir>/debug)")
	class := flag.String("type", "", "Skeleton type: humanoid, quadruped, bird, dragon, other (default: other)")
	strategy := flag.String("strategy", "", "Assignment: auto, nearest-anchor, segment-blend, inverse-distance (default: auto)")
	debug := flag.Bool("debug", false, "Render a weight-painted preview of every mesh")
	workers := flag.Int("workers", 0, "Number of meshes skinned in parallel (default: NumCPU)")
	dryRun := flag.Bool("dry-run", false, "Solve and report without writing the model")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	if *input == "" && flag.NArg() > 0 {
		*input = flag.Arg(0)
	}
	cfg.Resolve(config.Flags{
		Input:          *input,
		Output:         *output,
		DebugDir:       *debugDir,
		Classification: *class,
		Strategy:       *strategy,
		Debug:          *debug,
		Workers:        *workers,
	})

	if cfg.Input == "" {
		fmt.Fprintln(os.Stderr, "Error: no input model. Use -input or config.json.")
		os.Exit(1)
	}
	classification, err := skeleton.ParseClassification(cfg.Classification)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	kind, err := skinning.ParseStrategy(cfg.Strategy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if cfg.Debug && !imageio.Supported("x."+cfg.DebugFormat) {
		fmt.Fprintf(os.Stderr, "Error: unsupported debug format %q\n", cfg.DebugFormat)
		os.Exit(1)
	}

	// Load model
	model, err := gltfio.Open(cfg.Input, gltfio.Options{RootNode: cfg.RootNode, Mesh: cfg.Mesh})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading model: %v\n", err)
		os.Exit(1)
	}
	for _, s := range model.Skipped {
		fmt.Fprintf(os.Stderr, "Warning: skipped %s\n", s)
	}
	if len(model.Primitives) == 0 {
		fmt.Println("No meshes to skin.")
		os.Exit(0)
	}

	jobs := make([]batch.Job, len(model.Primitives))
	for i, p := range model.Primitives {
		jobs[i] = batch.Job{Name: p.Geometry.Name, Geometry: p.Geometry}
	}

	// Print summary
	fmt.Printf("Auto-skin %s → %s\n", cfg.Input, cfg.Output)
	fmt.Printf("Skeleton: %s, root %q, %d bones; strategy %s\n",
		classification, model.Root.Name, len(model.Joints), kind.Resolve(classification))
	fmt.Printf("Meshes: %d, Workers: %d\n", len(jobs), cfg.Workers)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	// Run batch
	render := debugviz.DefaultRenderOptions()
	render.Size = cfg.RenderSize
	render.Supersample = cfg.Supersample

	results := batch.Run(batch.Config{
		Root:           model.Root,
		Classification: classification,
		Solver: skinning.Options{
			Strategy: kind,
			Debug:    cfg.Debug,
			Workers:  cfg.SolverWorkers,
		},
		DebugDir:    cfg.DebugDir,
		DebugFormat: cfg.DebugFormat,
		Render:      render,
		Workers:     cfg.Workers,
		Progress:    2 * time.Second,
	}, jobs)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Apply bindings and count results
	success, failed := 0, 0
	var errors []batch.Result
	for i, r := range results {
		if !r.Success {
			failed++
			errors = append(errors, r)
			continue
		}
		if err := model.ApplySkin(model.Primitives[i], r.Binding.Indices, r.Binding.Weights); err != nil {
			failed++
			r.Success, r.Error = false, err.Error()
			results[i] = r
			errors = append(errors, r)
			continue
		}
		success++
		fmt.Printf("  %s: %d vertices, %d smoothed pairs, %d normalized\n",
			r.Name, r.Vertices, r.Stats.SmoothedPairs, r.Stats.NormalizedVertices)
	}

	fmt.Printf("Skinned: %d/%d\n", success, len(jobs))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := min(20, len(errors))
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.Name, e.Error)
		}
	}

	if !*dryRun && success > 0 {
		if err := model.Save(cfg.Output); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Model: %s\n", cfg.Output)
	}

	// Write report
	report := batch.Report{Input: cfg.Input, Output: cfg.Output, Classification: classification.String()}
	if err := batch.WriteReport(cfg.Report, report, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: report write failed: %v\n", err)
	} else {
		fmt.Printf("Report: %s\n", cfg.Report)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
