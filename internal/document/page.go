package document

// EventKind classifies page notifications.
type EventKind int

const (
	ShapesAdded EventKind = iota
	ShapesRemoved
	ShapeModified
	PageCleared
	ViewChanged
	// PageRefreshed replaces individual notifications that were suppressed
	// while the page was being mutated silently.
	PageRefreshed
)

// Event is published to page subscribers after a mutation.
type Event struct {
	Kind   EventKind
	Page   *Page
	Shapes []*Shape
}

// Page holds the shapes drawn over one slide together with its undo ledger.
type Page struct {
	number  int
	shapes  []*Shape
	view    Rect
	bounds  Rect
	history History

	subscribers map[int]func(Event)
	nextSub     int
	muted       int
}

func NewPage(number int, bounds Rect) *Page {
	return &Page{number: number, bounds: bounds, view: bounds}
}

func (p *Page) Number() int { return p.number }

// Bounds is the full page area; View is the currently visible part of it.
func (p *Page) Bounds() Rect { return p.bounds }
func (p *Page) View() Rect   { return p.view }

func (p *Page) SetView(r Rect) {
	p.view = r
	p.publish(Event{Kind: ViewChanged})
}

// Shapes returns the shapes in paint order. The slice is a copy.
func (p *Page) Shapes() []*Shape {
	return append([]*Shape(nil), p.shapes...)
}

func (p *Page) HasShapes() bool { return len(p.shapes) > 0 }

// ShapeByHandle returns the topmost shape with the given handle.
func (p *Page) ShapeByHandle(handle int32) (*Shape, bool) {
	for i := len(p.shapes) - 1; i >= 0; i-- {
		if p.shapes[i].Handle == handle {
			return p.shapes[i], true
		}
	}
	return nil, false
}

// ShapesAt returns every shape hit by pt, topmost first.
func (p *Page) ShapesAt(pt Point) []*Shape {
	var hit []*Shape
	for i := len(p.shapes) - 1; i >= 0; i-- {
		if p.shapes[i].Contains(pt) {
			hit = append(hit, p.shapes[i])
		}
	}
	return hit
}

// SelectedShapes returns the shapes flagged as selected in paint order.
func (p *Page) SelectedShapes() []*Shape {
	var sel []*Shape
	for _, s := range p.shapes {
		if s.Selected {
			sel = append(sel, s)
		}
	}
	return sel
}

// NextHandle returns a handle not used by any shape on the page.
func (p *Page) NextHandle() int32 {
	var max int32
	for _, s := range p.shapes {
		if s.Handle > max {
			max = s.Handle
		}
	}
	return max + 1
}

// AddShape adds a shape outside of the undo ledger.
func (p *Page) AddShape(s *Shape) {
	p.addShapes([]*Shape{s})
}

// RemoveShape removes a shape outside of the undo ledger.
func (p *Page) RemoveShape(s *Shape) bool {
	return p.removeShapes([]*Shape{s}) > 0
}

func (p *Page) addShapes(shapes []*Shape) {
	if len(shapes) == 0 {
		return
	}
	p.shapes = append(p.shapes, shapes...)
	p.publish(Event{Kind: ShapesAdded, Shapes: shapes})
}

func (p *Page) removeShapes(shapes []*Shape) int {
	removed := 0
	for _, s := range shapes {
		for i, have := range p.shapes {
			if have == s {
				p.shapes = append(p.shapes[:i], p.shapes[i+1:]...)
				removed++
				break
			}
		}
	}
	if removed > 0 {
		p.publish(Event{Kind: ShapesRemoved, Shapes: shapes})
	}
	return removed
}

// Clear drops every shape, resets the view and empties the undo ledger.
func (p *Page) Clear() {
	p.shapes = nil
	p.view = p.bounds
	p.history.Clear()
	p.publish(Event{Kind: PageCleared})
}

// AddAction executes cmd and records it for undo.
func (p *Page) AddAction(cmd Command) {
	cmd.Execute(p)
	p.history.push(cmd)
}

// Record adds a command whose effect is already visible on the page, as
// left behind by an interactive tool, without executing it again.
func (p *Page) Record(cmd Command) {
	p.history.push(cmd)
}

// Undo reverts the most recent command. It reports false when there is nothing to undo.
func (p *Page) Undo() bool { return p.history.undoLast(p) }

// Redo re-applies the most recently undone command.
func (p *Page) Redo() bool { return p.history.redoLast(p) }

func (p *Page) History() *History { return &p.history }

// Subscribe registers fn for page events and returns a function removing it.
func (p *Page) Subscribe(fn func(Event)) (unsubscribe func()) {
	if p.subscribers == nil {
		p.subscribers = make(map[int]func(Event))
	}
	id := p.nextSub
	p.nextSub++
	p.subscribers[id] = fn
	return func() { delete(p.subscribers, id) }
}

// Silently runs fn with notifications suppressed.
func (p *Page) Silently(fn func() error) error {
	p.muted++
	defer func() { p.muted-- }()
	return fn()
}

// Refresh publishes a PageRefreshed event, typically after silent mutation.
func (p *Page) Refresh() {
	p.publish(Event{Kind: PageRefreshed})
}

func (p *Page) publish(e Event) {
	if p.muted > 0 {
		return
	}
	e.Page = p
	for _, fn := range p.subscribers {
		fn(e)
	}
}
