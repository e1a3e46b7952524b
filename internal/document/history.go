package document

// Command is a reversible page mutation.
type Command interface {
	Execute(p *Page)
	Undo(p *Page)
	Redo(p *Page)
}

// History is a linear undo/redo ledger. Executing a new command discards
// everything that could have been redone.
type History struct {
	undo []Command
	redo []Command
}

func (h *History) push(cmd Command) {
	h.undo = append(h.undo, cmd)
	h.redo = nil
}

func (h *History) undoLast(p *Page) bool {
	if len(h.undo) == 0 {
		return false
	}
	cmd := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	cmd.Undo(p)
	h.redo = append(h.redo, cmd)
	return true
}

func (h *History) redoLast(p *Page) bool {
	if len(h.redo) == 0 {
		return false
	}
	cmd := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	cmd.Redo(p)
	h.undo = append(h.undo, cmd)
	return true
}

func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}

// UndoLen and RedoLen report the depth of each stack.
func (h *History) UndoLen() int { return len(h.undo) }
func (h *History) RedoLen() int { return len(h.redo) }

// AddShapes puts shapes on the page; undo removes them again.
type AddShapes struct {
	Shapes []*Shape
}

func NewAddShapes(shapes ...*Shape) *AddShapes {
	return &AddShapes{Shapes: shapes}
}

func (c *AddShapes) Execute(p *Page) { p.addShapes(c.Shapes) }
func (c *AddShapes) Undo(p *Page)    { p.removeShapes(c.Shapes) }
func (c *AddShapes) Redo(p *Page)    { c.Execute(p) }

// RemoveShapes takes shapes off the page; undo restores them.
type RemoveShapes struct {
	Shapes []*Shape
}

func NewRemoveShapes(shapes ...*Shape) *RemoveShapes {
	return &RemoveShapes{Shapes: shapes}
}

func (c *RemoveShapes) Execute(p *Page) { p.removeShapes(c.Shapes) }
func (c *RemoveShapes) Undo(p *Page)    { p.addShapes(c.Shapes) }
func (c *RemoveShapes) Redo(p *Page)    { c.Execute(p) }

// ModifyShape swaps the content of a shape between two snapshots.
type ModifyShape struct {
	Target *Shape
	Before *Shape
	After  *Shape
}

// NewModifyShape snapshots target and records the result of edit applied to a copy.
func NewModifyShape(target *Shape, edit func(s *Shape)) *ModifyShape {
	after := target.Clone()
	edit(after)
	return &ModifyShape{Target: target, Before: target.Clone(), After: after}
}

func (c *ModifyShape) Execute(p *Page) {
	c.Target.assign(c.After)
	p.publish(Event{Kind: ShapeModified, Shapes: []*Shape{c.Target}})
}

func (c *ModifyShape) Undo(p *Page) {
	c.Target.assign(c.Before)
	p.publish(Event{Kind: ShapeModified, Shapes: []*Shape{c.Target}})
}

func (c *ModifyShape) Redo(p *Page) { c.Execute(p) }

// MoveShapes translates shapes by a fixed offset.
type MoveShapes struct {
	Shapes []*Shape
	DX, DY float64
}

func NewMoveShapes(dx, dy float64, shapes ...*Shape) *MoveShapes {
	return &MoveShapes{Shapes: shapes, DX: dx, DY: dy}
}

func (c *MoveShapes) Execute(p *Page) { c.move(p, c.DX, c.DY) }
func (c *MoveShapes) Undo(p *Page)    { c.move(p, -c.DX, -c.DY) }
func (c *MoveShapes) Redo(p *Page)    { c.Execute(p) }

func (c *MoveShapes) move(p *Page, dx, dy float64) {
	for _, s := range c.Shapes {
		s.Translate(dx, dy)
	}
	p.publish(Event{Kind: ShapeModified, Shapes: c.Shapes})
}
