package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bodysync/common"
	"github.com/milk9111/bodysync/ecs"
	"github.com/milk9111/bodysync/physics"
	"go.uber.org/zap"
)

// RigidBody is the engine-side state GenericBody mirrors. *physics.Body
// implements it.
type RigidBody interface {
	Position() cp.Vector
	SetPosition(p cp.Vector)
	Rotation() float64
	SetRotation(angle float64)
	Awake() bool
	BodyType() physics.BodyType
	SetBodyType(t physics.BodyType)
	RemoveFromWorld()
}

// GenericBody keeps its entity's transform and a rigid body in sync. Each
// update the body's position and rotation are copied into the transform;
// when something else moves the transform, the changed axis is pushed back
// into the body. Scale is not synchronized.
type GenericBody struct {
	ecs.BaseComponent

	body RigidBody

	// set while Update writes into the transform so the resulting change
	// notifications are not pushed back into the body
	ignoreTransformChanges bool
}

// NewGenericBody creates a component whose body is created on attach from
// the entity's transform.
func NewGenericBody() *GenericBody {
	return &GenericBody{}
}

// NewGenericBodyFrom wraps an existing body. On attach the transform is
// moved to match the body, not the other way around.
func NewGenericBodyFrom(body RigidBody) *GenericBody {
	return &GenericBody{body: body}
}

// Body returns the synchronized body, or nil when detached.
func (g *GenericBody) Body() RigidBody {
	if g == nil {
		return nil
	}
	return g.body
}

// PhysicsBody returns the body as a *physics.Body for direct engine calls
// such as adding shapes or joints.
func (g *GenericBody) PhysicsBody() (*physics.Body, bool) {
	if g == nil {
		return nil, false
	}
	pb, ok := g.body.(*physics.Body)
	return pb, ok && pb != nil
}

// SetBodyType changes the body's motion classification and returns g for
// chaining.
func (g *GenericBody) SetBodyType(t physics.BodyType) *GenericBody {
	if g == nil || g.body == nil {
		return g
	}
	g.body.SetBodyType(t)
	return g
}

// Initialize resolves the physics world and either pulls the supplied body's
// state into the transform or creates a body from the transform.
func (g *GenericBody) Initialize() {
	scene := g.Scene()
	world, source := scene.LookupPhysicsWorld()
	if world == nil {
		scene.Logger().Error("no physics world for GenericBody",
			zap.Stringer("entity", g.Entity().ID()),
			zap.String("name", g.Entity().Name()),
		)
	}
	ecs.Assert(world != nil, "Scene must host a physics world or contain a PhysicsWorld component to use GenericBody")

	// sync right away, even if the body sleeps, so joints added before the
	// first step see the body's real placement
	if g.body != nil {
		g.mirrorBody()
		return
	}

	t := g.Transform()
	g.body = world.NewBody(common.ToSim(t.Position()), t.Rotation())
	scene.Logger().Debug("created body",
		zap.Stringer("entity", g.Entity().ID()),
		zap.String("name", g.Entity().Name()),
		zap.Stringer("world", source),
	)
}

// Update copies the body's state into the transform. Sleeping bodies do not
// move, so they are skipped.
func (g *GenericBody) Update() {
	if g.body == nil || !g.body.Awake() {
		return
	}
	g.mirrorBody()
}

func (g *GenericBody) mirrorBody() {
	g.ignoreTransformChanges = true
	defer func() { g.ignoreTransformChanges = false }()

	t := g.Transform()
	t.SetPosition(common.ToDisplay(g.body.Position()))
	t.SetRotation(g.body.Rotation())
}

// OnEntityTransformChanged pushes an externally changed axis into the body.
func (g *GenericBody) OnEntityTransformChanged(axis ecs.TransformAxis) {
	if g.ignoreTransformChanges || g.body == nil {
		return
	}

	switch axis {
	case ecs.TransformPosition:
		g.body.SetPosition(common.ToSim(g.Transform().Position()))
	case ecs.TransformRotation:
		g.body.SetRotation(g.Transform().Rotation())
	}
}

// OnRemovedFromEntity removes the body from its world.
func (g *GenericBody) OnRemovedFromEntity() {
	if g.body == nil {
		return
	}
	g.body.RemoveFromWorld()
	g.body = nil
}
