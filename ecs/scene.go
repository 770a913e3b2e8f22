package ecs

import (
	"sort"

	"github.com/milk9111/bodysync/physics"
	"go.uber.org/zap"
)

// System updates a scene each frame, after its components.
type System interface {
	Update(s *Scene)
}

// WorldProvider is implemented by components that host a physics world.
type WorldProvider interface {
	World() *physics.World
}

// WorldSource says where LookupPhysicsWorld found its world.
type WorldSource int

const (
	WorldSourceNone WorldSource = iota
	WorldSourceScene
	WorldSourceComponent
)

func (s WorldSource) String() string {
	switch s {
	case WorldSourceScene:
		return "scene"
	case WorldSourceComponent:
		return "component"
	default:
		return "none"
	}
}

// Scene owns entities, systems, and optionally a physics world.
type Scene struct {
	store    entityStore
	entities []*Entity
	byID     map[EntityID]*Entity
	systems  []System
	events   EventQueue

	physicsWorld *physics.World
	log          *zap.Logger
	dt           float64
}

// NewScene creates an empty scene. A nil logger discards output.
func NewScene(log *zap.Logger) *Scene {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scene{
		byID: make(map[EntityID]*Entity),
		log:  log.Named("ecs"),
	}
}

// Logger returns the scene logger.
func (s *Scene) Logger() *zap.Logger {
	if s == nil {
		return zap.NewNop()
	}
	return s.log
}

// CreateEntity allocates a new entity in the scene.
func (s *Scene) CreateEntity(name string) *Entity {
	if s == nil {
		return nil
	}
	e := newEntity(s, s.store.create(), name)
	s.entities = append(s.entities, e)
	s.byID[e.id] = e
	s.events.Push(Event{Type: EventEntityCreated, Entity: e.id, Data: name})
	return e
}

// DestroyEntity detaches every component of e, last attached first, and
// removes e from the scene.
func (s *Scene) DestroyEntity(e *Entity) bool {
	if s == nil || e == nil || e.scene != s || !s.store.isAlive(e.id) {
		return false
	}

	for len(e.components) > 0 {
		last := len(e.components) - 1
		c := e.components[last]
		e.components = e.components[:last]
		e.detach(c)
	}

	for i, existing := range s.entities {
		if existing == e {
			s.entities = append(s.entities[:i], s.entities[i+1:]...)
			break
		}
	}
	delete(s.byID, e.id)
	s.store.destroy(e.id)
	e.destroyed = true
	s.events.Push(Event{Type: EventEntityDestroyed, Entity: e.id, Data: e.name})
	return true
}

// IsAlive reports whether an entity handle is valid.
func (s *Scene) IsAlive(id EntityID) bool {
	if s == nil {
		return false
	}
	return s.store.isAlive(id)
}

// Entity returns the entity for id, if alive.
func (s *Scene) Entity(id EntityID) (*Entity, bool) {
	if s == nil || !s.store.isAlive(id) {
		return nil, false
	}
	e, ok := s.byID[id]
	return e, ok
}

// Entities returns the live entities in creation order.
func (s *Scene) Entities() []*Entity {
	if s == nil {
		return nil
	}
	return append([]*Entity(nil), s.entities...)
}

// End destroys every entity, newest first.
func (s *Scene) End() {
	if s == nil {
		return
	}
	for len(s.entities) > 0 {
		s.DestroyEntity(s.entities[len(s.entities)-1])
	}
}

// AddSystem appends a system to the update order.
func (s *Scene) AddSystem(sys System) {
	if s == nil || sys == nil {
		return
	}
	s.systems = append(s.systems, sys)
}

// Events returns the scene event queue.
func (s *Scene) Events() *EventQueue {
	if s == nil {
		return nil
	}
	return &s.events
}

// DeltaTime returns the dt passed to the Update in progress.
func (s *Scene) DeltaTime() float64 {
	if s == nil {
		return 0
	}
	return s.dt
}

// SetPhysicsWorld makes the scene itself host a physics world. The scene
// steps it at the start of every Update.
func (s *Scene) SetPhysicsWorld(pw *physics.World) {
	if s == nil {
		return
	}
	s.physicsWorld = pw
}

// PhysicsWorld returns the scene-hosted physics world, if any.
func (s *Scene) PhysicsWorld() *physics.World {
	if s == nil {
		return nil
	}
	return s.physicsWorld
}

// LookupPhysicsWorld resolves the world components should use: the
// scene-hosted world when set, else the first WorldProvider component with a
// non-nil world.
func (s *Scene) LookupPhysicsWorld() (*physics.World, WorldSource) {
	if s == nil {
		return nil, WorldSourceNone
	}
	if s.physicsWorld != nil {
		return s.physicsWorld, WorldSourceScene
	}
	for _, p := range FindComponents[WorldProvider](s) {
		if w := p.World(); w != nil {
			return w, WorldSourceComponent
		}
	}
	return nil, WorldSourceNone
}

// Update steps the scene-hosted world, updates components in update order,
// runs systems, then drops undrained events.
func (s *Scene) Update(dt float64) {
	if s == nil {
		return
	}
	s.dt = dt

	if s.physicsWorld != nil {
		s.physicsWorld.Step(dt)
	}

	for _, u := range s.updatables() {
		// an earlier update may have detached it
		if u.c.Entity() == nil {
			continue
		}
		u.u.Update()
	}

	for _, sys := range s.systems {
		sys.Update(s)
	}
	s.events.flush()
}

type updatable struct {
	c     Component
	u     Updatable
	order int
}

func (s *Scene) updatables() []updatable {
	var out []updatable
	for _, e := range s.entities {
		for _, c := range e.components {
			if u, ok := c.(Updatable); ok {
				out = append(out, updatable{c: c, u: u, order: updateOrder(c)})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].order < out[j].order
	})
	return out
}
