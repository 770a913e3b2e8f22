package level

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bodysync/ecs"
	"github.com/milk9111/bodysync/ecs/component"
	"github.com/milk9111/bodysync/physics"
	"go.uber.org/zap"
)

// DragSystem moves a picked body by writing its entity transform. The body
// is switched to kinematic while held so gravity does not fight the cursor.
type DragSystem struct {
	level *Level

	held     *Body
	grab     cp.Vector
	target   cp.Vector
	moved    bool
	restored physics.BodyType
}

func NewDragSystem(l *Level) *DragSystem {
	return &DragSystem{level: l}
}

// Begin picks the body under p. It reports whether anything was picked.
func (d *DragSystem) Begin(p cp.Vector) bool {
	if d == nil {
		return false
	}
	d.End()

	b, ok := d.level.BodyAt(p)
	if !ok {
		return false
	}
	if pb, ok := b.Sync.PhysicsBody(); ok {
		pb.Activate()
	}
	rb := b.Sync.Body()
	d.held = b
	d.restored = rb.BodyType()
	d.grab = p.Sub(b.Entity.Transform().Position())
	d.target = b.Entity.Transform().Position()
	d.moved = false
	rb.SetBodyType(physics.BodyTypeKinematic)
	return true
}

// Move sets the cursor position for the next update.
func (d *DragSystem) Move(p cp.Vector) {
	if d == nil || d.held == nil {
		return
	}
	d.target = p.Sub(d.grab)
	d.moved = true
}

// End releases the held body and restores its body type.
func (d *DragSystem) End() {
	if d == nil || d.held == nil {
		return
	}
	if rb := d.held.Sync.Body(); rb != nil {
		rb.SetBodyType(d.restored)
	}
	d.held = nil
	d.moved = false
}

// Held returns the body being dragged, if any.
func (d *DragSystem) Held() (*Body, bool) {
	if d == nil || d.held == nil {
		return nil, false
	}
	return d.held, true
}

func (d *DragSystem) Update(s *ecs.Scene) {
	if d == nil || d.held == nil {
		return
	}
	sync, ok := ecs.GetComponent[*component.GenericBody](d.held.Entity)
	if !s.IsAlive(d.held.Entity.ID()) || !ok || sync.Body() == nil {
		s.Logger().Debug("drag target gone", zap.Stringer("entity", d.held.Entity.ID()))
		d.held = nil
		return
	}
	if !d.moved {
		return
	}
	d.held.Entity.Transform().SetPosition(d.target)
	d.moved = false
}
