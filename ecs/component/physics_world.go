package component

import (
	"github.com/milk9111/bodysync/ecs"
	"github.com/milk9111/bodysync/physics"
	"go.uber.org/zap"
)

// PhysicsWorldUpdateOrder runs the world step ahead of components that read
// body state.
const PhysicsWorldUpdateOrder = -1000

// PhysicsWorld hosts a physics world on an entity, for scenes that do not
// host one themselves. It steps the world every scene update.
type PhysicsWorld struct {
	ecs.BaseComponent

	world *physics.World
}

// NewPhysicsWorld wraps w. A nil w gets a world with default settings.
func NewPhysicsWorld(w *physics.World) *PhysicsWorld {
	if w == nil {
		w = physics.NewWorld(physics.DefaultConfig(), nil)
	}
	return &PhysicsWorld{world: w}
}

// World returns the hosted world.
func (p *PhysicsWorld) World() *physics.World {
	if p == nil {
		return nil
	}
	return p.world
}

func (p *PhysicsWorld) UpdateOrder() int {
	return PhysicsWorldUpdateOrder
}

func (p *PhysicsWorld) Update() {
	p.world.Step(p.Scene().DeltaTime())
}

// OnRemovedFromEntity drops every body still in the world.
func (p *PhysicsWorld) OnRemovedFromEntity() {
	if n := p.world.Bodies(); n > 0 {
		p.Scene().Logger().Debug("clearing physics world", zap.Int("bodies", n))
	}
	p.world.Clear()
}
