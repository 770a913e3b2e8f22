package ecs

import "github.com/jakecoffman/cp"

// TransformAxis names the part of a Transform that changed.
type TransformAxis int

const (
	TransformPosition TransformAxis = iota
	TransformRotation
	TransformScale
)

func (a TransformAxis) String() string {
	switch a {
	case TransformPosition:
		return "position"
	case TransformRotation:
		return "rotation"
	case TransformScale:
		return "scale"
	default:
		return "unknown"
	}
}

// Transform stores an entity's position (display units), rotation
// (radians) and scale. Setters notify the owning entity only when the value
// actually changes.
type Transform struct {
	position cp.Vector
	rotation float64
	scale    cp.Vector

	onChange func(TransformAxis)
}

func newTransform(onChange func(TransformAxis)) *Transform {
	return &Transform{scale: cp.Vector{X: 1, Y: 1}, onChange: onChange}
}

func (t *Transform) Position() cp.Vector {
	if t == nil {
		return cp.Vector{}
	}
	return t.position
}

func (t *Transform) SetPosition(p cp.Vector) {
	if t == nil || t.position == p {
		return
	}
	t.position = p
	t.notify(TransformPosition)
}

func (t *Transform) Rotation() float64 {
	if t == nil {
		return 0
	}
	return t.rotation
}

func (t *Transform) SetRotation(r float64) {
	if t == nil || t.rotation == r {
		return
	}
	t.rotation = r
	t.notify(TransformRotation)
}

func (t *Transform) Scale() cp.Vector {
	if t == nil {
		return cp.Vector{X: 1, Y: 1}
	}
	return t.scale
}

func (t *Transform) SetScale(s cp.Vector) {
	if t == nil || t.scale == s {
		return
	}
	t.scale = s
	t.notify(TransformScale)
}

func (t *Transform) notify(axis TransformAxis) {
	if t.onChange != nil {
		t.onChange(axis)
	}
}
