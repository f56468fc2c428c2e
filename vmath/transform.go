package vmath

// Transform is a rigid pose: rotation then translation. Mesh anchors and
// skeleton joints both use it; there is no scale component because the
// sensor never reports one.
type Transform struct {
	Position Vec3
	Rotation Quat
}

// TransformIdentity maps every point to itself.
var TransformIdentity = Transform{Rotation: QuatIdentity}

// Apply maps a point from the transform's local space into its parent space.
func (t Transform) Apply(p Vec3) Vec3 {
	return t.Rotation.Rotate(p).Add(t.Position)
}

// ApplyDirection maps a direction (no translation).
func (t Transform) ApplyDirection(d Vec3) Vec3 {
	return t.Rotation.Rotate(d)
}

// Mul composes transforms: (a.Mul(b)).Apply(p) == a.Apply(b.Apply(p)).
// Used to chain joint-local → limb-anchor → world.
func (t Transform) Mul(o Transform) Transform {
	return Transform{
		Position: t.Apply(o.Position),
		Rotation: t.Rotation.Mul(o.Rotation),
	}
}

// Inverse returns the transform mapping parent space back to local space.
func (t Transform) Inverse() Transform {
	inv := t.Rotation.Conj()
	return Transform{
		Position: inv.Rotate(t.Position.Neg()),
		Rotation: inv,
	}
}

func (t Transform) UpAxis() Vec3 { return t.Rotation.UpAxis() }

func (t Transform) ForwardAxis() Vec3 { return t.Rotation.ForwardAxis() }

func (t Transform) RightAxis() Vec3 { return t.Rotation.RightAxis() }
