package skinning

import (
	"errors"
	"fmt"

	"mesh-autoskin/internal/geometry"
	"mesh-autoskin/internal/mathutil"
	"mesh-autoskin/internal/skeleton"
)

// ErrHipBoneNotFound is returned for humanoid skeletons without a "hips" bone.
var ErrHipBoneNotFound = errors.New("skinning: hip bone not found")

// hipMargin scales the measured pelvis depth. The extra tenth lifts the
// leg cutoff above the crotch surface so seam vertices go to a leg.
const hipMargin = 1.10

// HipRegion separates the pelvis from the legs on humanoid meshes.
type HipRegion struct {
	Bone      int           // hip bone id, -1 when not classified
	Anchor    mathutil.Vec3 // hip segment anchor the ray starts from
	Depth     float64       // distance from the anchor down to the surface
	Threshold float64       // Depth × hipMargin
	Found     bool          // false when the ray hit nothing; no exclusion applies
}

// Surface returns the height where the downward ray met the mesh.
func (h HipRegion) Surface() float64 {
	return h.Anchor[mathutil.UpAxis] - h.Depth
}

// Cutoff returns the height below which vertices belong to a leg: the
// intersection height raised by the margin part of Threshold.
func (h HipRegion) Cutoff() float64 {
	return h.Surface() + (h.Threshold - h.Depth)
}

// Excludes reports whether a vertex at p is outside the pelvis and must not
// be bound to a hip bone.
func (h HipRegion) Excludes(p mathutil.Vec3) bool {
	if !h.Found || h.Threshold == 0 {
		return false
	}
	return p[mathutil.UpAxis] < h.Cutoff()
}

// ClassifyHipRegion casts a ray straight down from the hip bone's segment
// anchor and measures the pelvis depth. Non-humanoid skeletons get an empty
// region. A missing intersection is a soft failure: the returned region
// excludes nothing.
func ClassifyHipRegion(bones *skeleton.BoneList, anchors *skeleton.AnchorCache, g *geometry.Geometry, c skeleton.Classification) (HipRegion, error) {
	if c != skeleton.Humanoid {
		return HipRegion{Bone: -1}, nil
	}

	hip, ok := bones.Find(skeleton.IsHipName)
	if !ok {
		return HipRegion{Bone: -1}, fmt.Errorf("%w (searched %d bones for %q)", ErrHipBoneNotFound, bones.Len(), "hips")
	}

	region := HipRegion{Bone: hip, Anchor: anchors.Anchor(hip)}
	hit, ok := g.RaycastDown(region.Anchor)
	if !ok {
		return region, nil
	}
	region.Depth = hit.Distance
	region.Threshold = hit.Distance * hipMargin
	region.Found = true
	return region, nil
}
