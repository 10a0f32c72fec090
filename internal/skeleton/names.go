package skeleton

import "strings"

// Side is the anatomical side a bone name declares.
type Side int

const (
	SideCenter Side = iota
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	}
	return "center"
}

// IsRootName reports whether name is the global-transform root bone.
// Root bones never receive vertex influence.
func IsRootName(name string) bool {
	return strings.EqualFold(name, "root")
}

// IsHipName reports whether name designates the pelvis bone.
func IsHipName(name string) bool {
	return strings.Contains(strings.ToLower(name), "hips")
}

// BoneSide reads the `_l` / `_r` suffix convention.
func BoneSide(name string) Side {
	n := strings.ToLower(name)
	switch {
	case strings.HasSuffix(n, "_l"):
		return SideLeft
	case strings.HasSuffix(n, "_r"):
		return SideRight
	}
	return SideCenter
}

// IsExtremity reports whether name is a foot or toe bone. Extremities take
// a single rigid influence.
func IsExtremity(name string) bool {
	n := strings.ToLower(name)
	return strings.Contains(n, "foot") || strings.Contains(n, "toes")
}
