package ecs

import "fmt"

// Component is anything attachable to an Entity. Implementations embed
// BaseComponent, which provides the binding.
type Component interface {
	Entity() *Entity
	bind(e *Entity)
}

// Initializer runs when a component is attached to an entity.
type Initializer interface {
	Initialize()
}

// Remover runs when a component is detached, including when its entity is
// destroyed.
type Remover interface {
	OnRemovedFromEntity()
}

// Updatable components are updated once per Scene.Update.
type Updatable interface {
	Update()
}

// Ordered lets an Updatable run before (negative) or after (positive) the
// default order of zero.
type Ordered interface {
	UpdateOrder() int
}

// TransformObserver is notified synchronously whenever the owning entity's
// transform changes.
type TransformObserver interface {
	OnEntityTransformChanged(axis TransformAxis)
}

// BaseComponent is embedded by every component.
type BaseComponent struct {
	entity *Entity
}

func (c *BaseComponent) Entity() *Entity {
	if c == nil {
		return nil
	}
	return c.entity
}

// Transform returns the owning entity's transform.
func (c *BaseComponent) Transform() *Transform {
	return c.Entity().Transform()
}

// Scene returns the owning entity's scene.
func (c *BaseComponent) Scene() *Scene {
	return c.Entity().Scene()
}

func (c *BaseComponent) bind(e *Entity) {
	c.entity = e
}

func componentName(c Component) string {
	return fmt.Sprintf("%T", c)
}

func updateOrder(c Component) int {
	if o, ok := c.(Ordered); ok {
		return o.UpdateOrder()
	}
	return 0
}
