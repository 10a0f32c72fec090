// Package skinning computes automatic skin weights: up to four bone
// influences per mesh vertex, from a bone hierarchy and static geometry.
//
// A solve runs, in order: flatten a cloned hierarchy, cache bone anchors,
// classify the hip region (humanoids), assign primary influences with one
// Strategy, smooth rigid boundaries across mesh edges and seam duplicates,
// then normalize weight sums.
package skinning

import (
	"errors"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"mesh-autoskin/internal/debugviz"
	"mesh-autoskin/internal/geometry"
	"mesh-autoskin/internal/skeleton"
)

// ErrNoCandidateBones is returned when every bone is a root bone.
var ErrNoCandidateBones = errors.New("skinning: no bone can receive influence")

// minParallelVertices is the mesh size below which assignment stays serial.
const minParallelVertices = 2048

// Options configure a Solver.
type Options struct {
	Strategy StrategyKind // auto when empty
	Debug    bool         // also build the weight-painted payload
	Workers  int          // vertex-range workers for assignment; <= 1 is serial
	Logger   *log.Logger  // log.Default() when nil
}

// Stats summarizes one solve.
type Stats struct {
	Strategy           StrategyKind
	BoneCount          int
	VertexCount        int
	Hip                HipRegion
	SmoothedPairs      int
	NormalizedVertices int
	InvalidVertices    int
}

// Result is the output of Solve.
type Result struct {
	Binding *Binding
	Bones   *skeleton.BoneList // the flattened clone; ids match Binding.Indices
	Debug   *debugviz.Payload  // nil unless Options.Debug and the payload built
	Stats   Stats
}

// Solver skins geometry against one bone hierarchy. Every Solve works on a
// fresh clone of the hierarchy and fresh caches, so a Solver never mutates
// its inputs. A Solver is not safe for concurrent use; run one per goroutine.
type Solver struct {
	root           *skeleton.Bone
	classification skeleton.Classification
	opts           Options
	log            *log.Logger
}

// NewSolver returns a solver for the hierarchy rooted at root.
func NewSolver(root *skeleton.Bone, c skeleton.Classification, opts Options) *Solver {
	l := opts.Logger
	if l == nil {
		l = log.Default()
	}
	return &Solver{root: root, classification: c, opts: opts, log: l}
}

// Solve computes the skin binding of g.
func Solve(root *skeleton.Bone, c skeleton.Classification, g *geometry.Geometry, opts Options) (*Result, error) {
	return NewSolver(root, c, opts).Solve(g)
}

// Solve computes the skin binding of g.
func (s *Solver) Solve(g *geometry.Geometry) (*Result, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	clone, err := skeleton.Clone(s.root)
	if err != nil {
		return nil, err
	}
	bones := skeleton.Flatten(clone)
	kind := s.opts.Strategy.Resolve(s.classification)

	res := &Result{
		Bones: bones,
		Stats: Stats{Strategy: kind, BoneCount: bones.Len(), VertexCount: g.VertexCount(), Hip: HipRegion{Bone: -1}},
	}
	if bones.Len() == 0 {
		res.Binding = NewBinding(0)
		return res, nil
	}

	strategy, err := NewStrategy(kind)
	if err != nil {
		return nil, err
	}
	res.Stats.Strategy = strategy.Kind()

	anchors := skeleton.NewAnchorCache(bones)
	hip, err := ClassifyHipRegion(bones, anchors, g, s.classification)
	if err != nil {
		return nil, err
	}
	if hip.Bone >= 0 && !hip.Found {
		s.log.Printf("Warning: %s: no surface below hip bone %q; leg/pelvis separation disabled", meshName(g), bones.Name(hip.Bone))
	}
	res.Stats.Hip = hip

	st := newState(bones, anchors, hip)
	if len(st.candidates) == 0 {
		return nil, fmt.Errorf("%w (%d bones, all root)", ErrNoCandidateBones, bones.Len())
	}

	binding := NewBinding(g.VertexCount())
	if err := s.assignAll(st, strategy, g, binding); err != nil {
		return nil, err
	}

	adj := geometry.BuildAdjacency(g)
	groups := geometry.BuildPositionGroups(g)
	res.Stats.SmoothedPairs = SmoothBoundaries(binding, adj, groups)
	res.Stats.NormalizedVertices = Normalize(binding)

	if bad := InvalidVertices(binding); len(bad) > 0 {
		res.Stats.InvalidVertices = len(bad)
		s.log.Printf("Warning: %s: %d vertices still off weight sum after normalization (first: %d)", meshName(g), len(bad), bad[0])
	}
	res.Binding = binding

	if s.opts.Debug {
		res.Debug = s.buildDebug(g, binding, bones.Len())
	}
	return res, nil
}

// assignAll fills binding with the strategy's influences. Vertex ranges are
// independent, so large meshes are split across workers.
func (s *Solver) assignAll(st *state, strategy Strategy, g *geometry.Geometry, b *Binding) error {
	n := g.VertexCount()
	assignRange := func(start, end int) {
		for v := start; v < end; v++ {
			b.set(v, strategy.assign(st, g.Positions[v]))
		}
	}

	workers := s.opts.Workers
	if workers <= 1 || n < minParallelVertices {
		assignRange(0, n)
		return nil
	}

	chunk := (n + workers - 1) / workers
	var eg errgroup.Group
	for start := 0; start < n; start += chunk {
		start, end := start, min(start+chunk, n)
		eg.Go(func() error {
			assignRange(start, end)
			return nil
		})
	}
	return eg.Wait()
}

// buildDebug never fails the solve: problems are logged and yield nil.
func (s *Solver) buildDebug(g *geometry.Geometry, b *Binding, boneCount int) (p *debugviz.Payload) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Printf("Warning: %s: debug payload: %v", meshName(g), r)
			p = nil
		}
	}()
	p, err := debugviz.Build(g, b.Indices, boneCount)
	if err != nil {
		s.log.Printf("Warning: %s: debug payload: %v", meshName(g), err)
		return nil
	}
	return p
}

// Excluded reports whether a bone id of res may never appear in a binding.
func (res *Result) Excluded(bone int) bool {
	return skeleton.IsRootName(res.Bones.Name(bone))
}

func meshName(g *geometry.Geometry) string {
	if g.Name == "" {
		return "mesh"
	}
	return g.Name
}

