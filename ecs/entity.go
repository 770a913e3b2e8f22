package ecs

import (
	"strconv"

	"go.uber.org/zap"
)

// EntityID is a generation-checked handle. The low 32 bits index the entity
// store and the high 32 bits hold the slot generation.
type EntityID uint64

type entityIndex uint32
type generation uint32

const entityIDBits = 32

func makeEntityID(idx entityIndex, gen generation) EntityID {
	return EntityID(uint64(gen)<<entityIDBits | uint64(idx))
}

func (id EntityID) index() entityIndex {
	return entityIndex(uint32(id))
}

func (id EntityID) generation() generation {
	return generation(uint32(uint64(id) >> entityIDBits))
}

func (id EntityID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

func (id EntityID) Valid() bool {
	return id.index() > 0
}

// Entity is a named transform with an ordered set of components. Entities
// are created by a Scene and belong to it until destroyed.
type Entity struct {
	id         EntityID
	name       string
	scene      *Scene
	transform  *Transform
	components []Component
	destroyed  bool
}

func newEntity(s *Scene, id EntityID, name string) *Entity {
	e := &Entity{id: id, name: name, scene: s}
	e.transform = newTransform(e.transformChanged)
	return e
}

func (e *Entity) ID() EntityID {
	if e == nil {
		return 0
	}
	return e.id
}

func (e *Entity) Name() string {
	if e == nil {
		return ""
	}
	return e.name
}

// Scene returns the owning scene, or nil once destroyed.
func (e *Entity) Scene() *Scene {
	if e == nil || e.destroyed {
		return nil
	}
	return e.scene
}

func (e *Entity) Transform() *Transform {
	if e == nil {
		return nil
	}
	return e.transform
}

// Components returns a copy of the attached components in attach order.
func (e *Entity) Components() []Component {
	if e == nil {
		return nil
	}
	return append([]Component(nil), e.components...)
}

// AddComponent runs c's Initialize hook and attaches c. If the hook panics,
// c is left unbound and the panic propagates.
func (e *Entity) AddComponent(c Component) Component {
	if e == nil || c == nil {
		return c
	}
	Assert(!e.destroyed, "cannot add a component to destroyed entity %s", e.describe())
	Assert(c.Entity() == nil, "component %T is already attached to entity %s", c, c.Entity().describe())

	// Initialize runs bound but not yet listed; a panicking hook leaves c
	// unattached.
	c.bind(e)
	attached := false
	defer func() {
		if !attached {
			c.bind(nil)
		}
	}()
	if init, ok := c.(Initializer); ok {
		init.Initialize()
	}

	e.components = append(e.components, c)
	attached = true
	e.scene.events.Push(Event{Type: EventComponentAttached, Entity: e.id, Data: c})
	e.scene.log.Debug("component attached",
		zap.Stringer("entity", e.id),
		zap.String("name", e.name),
		zap.String("component", componentName(c)),
	)
	return c
}

// RemoveComponent detaches c and runs its OnRemovedFromEntity hook. It
// reports false when c is not attached to e.
func (e *Entity) RemoveComponent(c Component) bool {
	if e == nil || c == nil {
		return false
	}
	for i, existing := range e.components {
		if existing != c {
			continue
		}
		e.components = append(e.components[:i], e.components[i+1:]...)
		e.detach(c)
		return true
	}
	return false
}

func (e *Entity) detach(c Component) {
	if r, ok := c.(Remover); ok {
		r.OnRemovedFromEntity()
	}
	c.bind(nil)
	e.scene.events.Push(Event{Type: EventComponentDetached, Entity: e.id, Data: c})
	e.scene.log.Debug("component detached",
		zap.Stringer("entity", e.id),
		zap.String("name", e.name),
		zap.String("component", componentName(c)),
	)
}

// transformChanged fans a transform change out to every observer, in attach
// order, on the calling goroutine.
func (e *Entity) transformChanged(axis TransformAxis) {
	if e == nil || e.destroyed {
		return
	}
	for _, c := range e.Components() {
		if o, ok := c.(TransformObserver); ok && c.Entity() == e {
			o.OnEntityTransformChanged(axis)
		}
	}
}

func (e *Entity) describe() string {
	if e == nil {
		return "<nil>"
	}
	if e.name == "" {
		return e.id.String()
	}
	return e.name + "#" + e.id.String()
}
