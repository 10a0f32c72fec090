// Package batch skins many meshes against one skeleton on a worker pool.
// Every job gets its own Solver, so jobs share nothing but the read-only
// caller skeleton.
package batch

import (
	"fmt"
	"log"
	"path/filepath"
	"regexp"
	"sync"
	"sync/atomic"
	"time"

	"mesh-autoskin/internal/debugviz"
	"mesh-autoskin/internal/geometry"
	"mesh-autoskin/internal/imageio"
	"mesh-autoskin/internal/skeleton"
	"mesh-autoskin/internal/skinning"
)

// Config holds all shared resources for a batch run.
type Config struct {
	Root           *skeleton.Bone
	Classification skeleton.Classification
	Solver         skinning.Options
	DebugDir       string // debug renders are written here when Solver.Debug is set
	DebugFormat    string // webp, tga or png
	Render         debugviz.RenderOptions
	Workers        int
	Progress       time.Duration // progress report interval; 0 disables
	Logger         *log.Logger
}

// Job is one mesh to skin.
type Job struct {
	Name     string
	Geometry *geometry.Geometry
}

// Result holds the outcome of skinning one mesh.
type Result struct {
	Name     string             `json:"name"`
	Vertices int                `json:"vertices"`
	Success  bool               `json:"success"`
	Error    string             `json:"error,omitempty"`
	Stats    *skinning.Stats    `json:"-"`
	Binding  *skinning.Binding  `json:"-"`
	Bones    *skeleton.BoneList `json:"-"`
	Image    string             `json:"image,omitempty"`
	Elapsed  time.Duration      `json:"-"`
}

// Run processes all jobs using a worker pool. Results keep job order.
func Run(cfg Config, jobs []Job) []Result {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Solver.Logger == nil {
		cfg.Solver.Logger = cfg.Logger
	}

	total := len(jobs)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	if cfg.Progress > 0 {
		go func() {
			ticker := time.NewTicker(cfg.Progress)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					p := processed.Load()
					if p > 0 {
						elapsed := time.Since(start).Seconds()
						rate := float64(p) / elapsed
						cfg.Logger.Printf("  [%d/%d] %.1f meshes/sec", p, total, rate)
					}
				}
			}
		}()
	}

	// Worker pool
	jobChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				results[idx] = processJob(cfg, jobs[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	close(done)

	return results
}

func processJob(cfg Config, job Job) Result {
	res := Result{Name: job.Name}
	if job.Geometry != nil {
		res.Vertices = job.Geometry.VertexCount()
	}

	began := time.Now()
	out, err := skinning.NewSolver(cfg.Root, cfg.Classification, cfg.Solver).Solve(job.Geometry)
	res.Elapsed = time.Since(began)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	res.Success = true
	res.Stats = &out.Stats
	res.Binding = out.Binding
	res.Bones = out.Bones

	if out.Debug != nil && cfg.DebugDir != "" {
		res.Image = saveDebug(cfg, job, out.Debug)
	}

	return res
}

// saveDebug renders and writes the debug image and returns its path, or ""
// when anything went wrong. Debug output never fails the job.
func saveDebug(cfg Config, job Job, payload *debugviz.Payload) (path string) {
	defer func() {
		if r := recover(); r != nil {
			cfg.Logger.Printf("Warning: %s: debug render: %v", job.Name, r)
			path = ""
		}
	}()

	format := cfg.DebugFormat
	if format == "" {
		format = "webp"
	}
	path = filepath.Join(cfg.DebugDir, fileName(job.Name)+"."+format)
	img := debugviz.Render(payload, job.Geometry, cfg.Render)
	if err := imageio.Save(path, img); err != nil {
		cfg.Logger.Printf("Warning: %s: debug render: %v", job.Name, err)
		return ""
	}
	return path
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// fileName turns a mesh label into a file name.
func fileName(name string) string {
	s := unsafeChars.ReplaceAllString(name, "_")
	if s == "" || s == "." || s == ".." {
		return fmt.Sprintf("mesh_%x", len(name))
	}
	return s
}
