// Package level builds a playable scene from a prefabs.SceneSpec.
package level

import (
	"image/color"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bodysync/common"
	"github.com/milk9111/bodysync/ecs"
	"github.com/milk9111/bodysync/ecs/component"
	"github.com/milk9111/bodysync/physics"
	"github.com/milk9111/bodysync/prefabs"
	"go.uber.org/zap"
)

// Shape is how a body is drawn and picked, in display units.
type Shape struct {
	Width  float64
	Height float64
	Radius float64
}

// Body is one synchronized entity in a level.
type Body struct {
	Entity *ecs.Entity
	Sync   *component.GenericBody
	Shape  Shape
	Color  color.Color
	Type   physics.BodyType
}

// Level is a built scene and the world its bodies live in.
type Level struct {
	Name   string
	Scene  *ecs.Scene
	World  *physics.World
	Bodies []*Body
	Drag   *DragSystem
}

var (
	defaultGroundColor = color.NRGBA{R: 0x3b, G: 0x42, B: 0x52, A: 0xff}
	defaultBodyColor   = color.NRGBA{R: 0xd8, G: 0xde, B: 0xe9, A: 0xff}
)

// Build creates the scene, its physics world, and every body in spec.
func Build(spec *prefabs.SceneSpec, log *zap.Logger) *Level {
	if log == nil {
		log = zap.NewNop()
	}
	scene := ecs.NewScene(log)
	world := physics.NewWorld(spec.Physics, log)

	switch spec.WorldHost {
	case prefabs.WorldHostComponent:
		scene.CreateEntity("physics-world").AddComponent(component.NewPhysicsWorld(world))
	default:
		scene.SetPhysicsWorld(world)
	}

	lvl := &Level{Name: spec.Name, Scene: scene, World: world}

	if spec.Ground.Width > 0 && spec.Ground.Height > 0 {
		lvl.addGround(spec.Ground)
	}
	for _, b := range spec.Bodies {
		for i := 0; i < b.Count; i++ {
			lvl.addBody(b, i)
		}
	}

	lvl.Drag = NewDragSystem(lvl)
	scene.AddSystem(lvl.Drag)
	scene.AddSystem(NewOscillateSystem(lvl, 120, 0.5))
	scene.AddSystem(NewEventLogSystem(log))

	log.Info("level built",
		zap.String("name", spec.Name),
		zap.String("world_host", string(spec.WorldHost)),
		zap.Int("bodies", world.Bodies()),
	)
	return lvl
}

// Close destroys every entity, releasing their bodies.
func (l *Level) Close() {
	if l == nil {
		return
	}
	l.Scene.End()
	l.World.Clear()
}

// The ground body exists before its entity does, so it exercises the
// supplied-body path.
func (l *Level) addGround(g prefabs.GroundSpec) {
	pos := cp.Vector{X: g.Transform.X, Y: g.Transform.Y}
	body := l.World.NewBody(common.ToSim(pos), g.Transform.Rotation)
	body.SetBodyType(physics.BodyTypeStatic)
	body.AddBox(common.ToSimScalar(g.Width), common.ToSimScalar(g.Height))

	e := l.Scene.CreateEntity("ground")
	sync := component.NewGenericBodyFrom(body)
	e.AddComponent(sync)

	l.Bodies = append(l.Bodies, &Body{
		Entity: e,
		Sync:   sync,
		Shape:  Shape{Width: g.Width, Height: g.Height},
		Color:  g.Color.ColorOr(defaultGroundColor),
		Type:   physics.BodyTypeStatic,
	})
}

func (l *Level) addBody(spec prefabs.BodySpec, i int) {
	pos := cp.Vector{X: spec.Transform.X, Y: spec.Transform.Y - float64(i)*spec.Spacing}
	e := l.Scene.CreateEntity(spec.Name)

	var sync *component.GenericBody
	if spec.Supplied {
		sync = component.NewGenericBodyFrom(l.World.NewBody(common.ToSim(pos), spec.Transform.Rotation))
	} else {
		e.Transform().SetPosition(pos)
		e.Transform().SetRotation(spec.Transform.Rotation)
		sync = component.NewGenericBody()
	}
	e.AddComponent(sync)

	if pb, ok := sync.SetBodyType(spec.Type).PhysicsBody(); ok {
		if spec.Radius > 0 {
			pb.AddCircle(common.ToSimScalar(spec.Radius))
		} else {
			pb.AddBox(common.ToSimScalar(spec.Width), common.ToSimScalar(spec.Height))
		}
	}

	l.Bodies = append(l.Bodies, &Body{
		Entity: e,
		Sync:   sync,
		Shape:  Shape{Width: spec.Width, Height: spec.Height, Radius: spec.Radius},
		Color:  spec.Color.ColorOr(defaultBodyColor),
		Type:   spec.Type,
	})
}

// Contains reports whether the display-space point p lies inside b.
func (b *Body) Contains(p cp.Vector) bool {
	if b == nil || b.Entity == nil {
		return false
	}
	t := b.Entity.Transform()
	local := p.Sub(t.Position()).Rotate(cp.ForAngle(-t.Rotation()))
	if b.Shape.Radius > 0 {
		return local.Length() <= b.Shape.Radius
	}
	return math.Abs(local.X) <= b.Shape.Width/2 && math.Abs(local.Y) <= b.Shape.Height/2
}

// BodyAt returns the topmost non-static body under p.
func (l *Level) BodyAt(p cp.Vector) (*Body, bool) {
	if l == nil {
		return nil, false
	}
	for i := len(l.Bodies) - 1; i >= 0; i-- {
		b := l.Bodies[i]
		if b.Type == physics.BodyTypeStatic || b.Sync.Body() == nil {
			continue
		}
		if b.Contains(p) {
			return b, true
		}
	}
	return nil, false
}
