package physics

import "github.com/jakecoffman/cp"

// Body is a cp.Body tied to the World that created it.
type Body struct {
	body  *cp.Body
	world *World

	// restored when the body turns dynamic again
	mass   float64
	moment float64
}

// CP returns the raw Chipmunk body for engine calls not wrapped here.
func (b *Body) CP() *cp.Body {
	if b == nil {
		return nil
	}
	return b.body
}

// World returns the owning world, or nil once the body has been removed.
func (b *Body) World() *World {
	if b == nil {
		return nil
	}
	return b.world
}

// Position returns the body position in simulation units.
func (b *Body) Position() cp.Vector {
	if b == nil || b.body == nil {
		return cp.Vector{}
	}
	return b.body.Position()
}

// SetPosition moves the body. Moving a body wakes it.
func (b *Body) SetPosition(p cp.Vector) {
	if b == nil || b.body == nil {
		return
	}
	b.body.SetPosition(p)
	b.reindexStatic()
}

// Rotation returns the body angle in radians.
func (b *Body) Rotation() float64 {
	if b == nil || b.body == nil {
		return 0
	}
	return b.body.Angle()
}

// SetRotation sets the body angle in radians.
func (b *Body) SetRotation(angle float64) {
	if b == nil || b.body == nil {
		return
	}
	b.body.SetAngle(angle)
	b.reindexStatic()
}

// Static shapes keep the bounds they were indexed with, so a moved static
// body has to re-add them to the space.
func (b *Body) reindexStatic() {
	if b.world == nil || b.body.GetType() != cp.BODY_STATIC {
		return
	}
	var shapes []*cp.Shape
	b.body.EachShape(func(s *cp.Shape) {
		shapes = append(shapes, s)
	})
	for _, s := range shapes {
		b.world.space.RemoveShape(s)
		b.world.space.AddShape(s)
	}
}

// Awake reports whether the body is being actively simulated.
func (b *Body) Awake() bool {
	if b == nil || b.body == nil {
		return false
	}
	return !b.body.IsSleeping()
}

// Activate wakes the body.
func (b *Body) Activate() {
	if b == nil || b.body == nil {
		return
	}
	b.body.Activate()
}

// BodyType returns the body's motion classification.
func (b *Body) BodyType() BodyType {
	if b == nil || b.body == nil {
		return BodyTypeDynamic
	}
	return bodyTypeFromCP(b.body.GetType())
}

// SetBodyType changes the body's motion classification.
func (b *Body) SetBodyType(t BodyType) {
	if b == nil || b.body == nil {
		return
	}
	if b.body.GetType() == t.cpType() {
		return
	}
	b.body.SetType(t.cpType())
	// cp rebuilds dynamic mass from shapes, and ours carry none.
	if t == BodyTypeDynamic && b.body.Mass() <= 0 {
		b.body.SetMass(b.mass)
		b.body.SetMoment(b.moment)
	}
}

// RemoveFromWorld removes the body from its owning world. Calling it again
// is a no-op.
func (b *Body) RemoveFromWorld() {
	if b == nil || b.world == nil {
		return
	}
	b.world.RemoveBody(b)
}

// AddBox attaches a box shape centered on the body. Sizes are in simulation
// units.
func (b *Body) AddBox(width, height float64) *cp.Shape {
	if b == nil || b.body == nil || b.world == nil || width <= 0 || height <= 0 {
		return nil
	}
	b.moment = cp.MomentForBox(b.mass, width, height)
	if b.body.GetType() == cp.BODY_DYNAMIC {
		b.body.SetMoment(b.moment)
	}
	return b.addShape(cp.NewBox(b.body, width, height, 0))
}

// AddCircle attaches a circle shape centered on the body.
func (b *Body) AddCircle(radius float64) *cp.Shape {
	if b == nil || b.body == nil || b.world == nil || radius <= 0 {
		return nil
	}
	b.moment = cp.MomentForCircle(b.mass, 0, radius, cp.Vector{})
	if b.body.GetType() == cp.BODY_DYNAMIC {
		b.body.SetMoment(b.moment)
	}
	return b.addShape(cp.NewCircle(b.body, radius, cp.Vector{}))
}

func (b *Body) addShape(shape *cp.Shape) *cp.Shape {
	shape.SetFriction(b.world.cfg.Friction)
	shape.SetElasticity(b.world.cfg.Elasticity)
	return b.world.space.AddShape(shape)
}
