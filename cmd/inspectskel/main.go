package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strings"

	"mesh-autoskin/internal/geometry"
	"mesh-autoskin/internal/gltfio"
	"mesh-autoskin/internal/skeleton"
	"mesh-autoskin/internal/skinning"
)

func main() {
	rootNode := flag.String("root", "", "Armature root node name (default: detect)")
	class := flag.String("type", "other", "Skeleton type used for the hip region probe")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: inspectskel [-root name] [-type humanoid] model.glb")
		os.Exit(1)
	}
	path := flag.Arg(0)

	model, err := gltfio.Open(path, gltfio.Options{RootNode: *rootNode})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	c, err := skeleton.ParseClassification(*class)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	bones := skeleton.Flatten(model.Root)
	anchors := skeleton.NewAnchorCache(bones)
	fmt.Printf("Bones: %d (root node %d), Meshes: %d\n", bones.Len(), model.RootNode, len(model.Primitives))
	for i := 0; i < bones.Len(); i++ {
		depth := 0
		for p := bones.Parent(i); p >= 0; p = bones.Parent(p) {
			depth++
		}
		name := bones.Name(i)
		var tags []string
		if skeleton.IsRootName(name) {
			tags = append(tags, "root")
		}
		if skeleton.IsHipName(name) {
			tags = append(tags, "hips")
		}
		if skeleton.IsExtremity(name) {
			tags = append(tags, "extremity")
		}
		if s := skeleton.BoneSide(name); s != skeleton.SideCenter {
			tags = append(tags, s.String())
		}
		pos, anchor := anchors.Position(i), anchors.Anchor(i)
		fmt.Printf("  [%3d] %s%-*s pos(%.3f, %.3f, %.3f) anchor(%.3f, %.3f, %.3f) %s\n",
			i, strings.Repeat("  ", depth), 24-2*min(depth, 10), name,
			pos[0], pos[1], pos[2], anchor[0], anchor[1], anchor[2], strings.Join(tags, ","))
	}

	for _, s := range model.Skipped {
		fmt.Printf("  Skipped: %s\n", s)
	}
	for _, p := range model.Primitives {
		printMesh(p.Geometry)
		if c == skeleton.Humanoid && bones.Len() > 0 && p.Geometry.Validate() == nil {
			hip, err := skinning.ClassifyHipRegion(bones, anchors, p.Geometry, c)
			switch {
			case err != nil:
				fmt.Printf("    Hip region: %v\n", err)
			case !hip.Found:
				fmt.Printf("    Hip region: no surface below %q\n", bones.Name(hip.Bone))
			default:
				fmt.Printf("    Hip region: %q surface y=%.4f threshold %.4f, legs below y=%.4f\n", bones.Name(hip.Bone), hip.Surface(), hip.Threshold, hip.Cutoff())
			}
		}
	}
}

func printMesh(g *geometry.Geometry) {
	minX, minY, minZ := math.Inf(1), math.Inf(1), math.Inf(1)
	maxX, maxY, maxZ := math.Inf(-1), math.Inf(-1), math.Inf(-1)
	for _, v := range g.Positions {
		minX, maxX = math.Min(minX, v[0]), math.Max(maxX, v[0])
		minY, maxY = math.Min(minY, v[1]), math.Max(maxY, v[1])
		minZ, maxZ = math.Min(minZ, v[2]), math.Max(maxZ, v[2])
	}
	if err := g.Validate(); err != nil {
		fmt.Printf("  Mesh %q: invalid: %v\n", g.Name, err)
		return
	}
	adj := geometry.BuildAdjacency(g)
	groups := geometry.BuildPositionGroups(g)

	fmt.Printf("  Mesh %q: verts=%d, tris=%d, edges=%d, seam groups=%d\n",
		g.Name, g.VertexCount(), len(g.Triangles), adj.EdgeCount(), groups.SeamCount())
	if g.VertexCount() > 0 {
		fmt.Printf("    BBox: X[%.3f, %.3f] Y[%.3f, %.3f] Z[%.3f, %.3f]\n", minX, maxX, minY, maxY, minZ, maxZ)
	}
}
