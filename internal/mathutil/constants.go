package mathutil

// Axis conventions shared by the solver (Y-up, character facing +Z).
var (
	WorldUp   = Vec3{0, 1, 0}
	WorldDown = Vec3{0, -1, 0}
)

// LateralAxis is the component index separating left (+) from right (−).
const LateralAxis = 0

// UpAxis is the component index of the vertical coordinate.
const UpAxis = 1

// PreviewView is the debug-render camera: a three-quarter view from the
// front-right, slightly above. Ry(-27°) then Rx(20°).
var PreviewView = Mat3Mul(RotX(Deg2Rad(20)), RotY(Deg2Rad(-27)))
