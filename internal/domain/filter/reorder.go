package filter

// The reorder engine is an explicit two-state machine rather than a set of
// ad hoc booleans: Idle, or Dragging exactly one item. Pointer movement
// while dragging only updates a visual insertion index; the expression is
// mutated once, atomically, on drop.

// DragState is the sealed state of the reorder engine.
type DragState interface {
	isDragState()
}

// Idle means no drag is in progress.
type Idle struct{}

func (Idle) isDragState() {}

// Dragging means one item is being dragged. InsertIndex is the visual
// insertion position under the pointer, -1 until the first movement.
type Dragging struct {
	ItemID      string
	InsertIndex int
}

func (Dragging) isDragState() {}

// Reorder is the drag-and-drop engine for groups and for rows within a
// group. A single pointer means no concurrent drags.
type Reorder struct {
	state DragState
}

// NewReorder creates an idle engine.
func NewReorder() *Reorder {
	return &Reorder{state: Idle{}}
}

// State returns the current state.
func (r *Reorder) State() DragState {
	return r.state
}

// Start begins a drag. Returns false if a drag is already in progress.
func (r *Reorder) Start(itemID string) bool {
	if _, dragging := r.state.(Dragging); dragging {
		return false
	}
	r.state = Dragging{ItemID: itemID, InsertIndex: -1}
	return true
}

// Track records the visual insertion index under the pointer. It never
// mutates the expression.
func (r *Reorder) Track(index int) {
	if d, ok := r.state.(Dragging); ok {
		d.InsertIndex = index
		r.state = d
	}
}

// Cancel abandons the drag without mutation.
func (r *Reorder) Cancel() {
	r.state = Idle{}
}

// Drop finishes the drag. apply performs the single atomic splice and is
// invoked only for a valid target; a drop outside the list (to < 0) is a
// no-op. Either way the engine returns to idle.
func (r *Reorder) Drop(from, to int, apply func(from, to int) bool) bool {
	if _, dragging := r.state.(Dragging); !dragging {
		return false
	}
	r.state = Idle{}
	if to < 0 {
		return false
	}
	return apply(from, to)
}

// moveElement is the single move call site: it removes the element at from
// and reinserts it at to, returning the updated slice. Invalid indexes leave
// the slice untouched.
func moveElement[T any](s []T, from, to int) ([]T, bool) {
	if from < 0 || from >= len(s) || to < 0 || to >= len(s) {
		return s, false
	}
	if from == to {
		return s, true
	}
	item := s[from]
	s = append(s[:from], s[from+1:]...)
	s = append(s, item)
	copy(s[to+1:], s[to:len(s)-1])
	s[to] = item
	return s, true
}
