package views

// Window keeps a cursor inside a scrolling window over a list
type Window struct {
	height int
	offset int
	cursor int
	total  int
}

// NewWindow creates a window showing height rows
func NewWindow(height int) *Window {
	w := &Window{}
	w.SetHeight(height)
	return w
}

// SetHeight changes the number of visible rows
func (w *Window) SetHeight(height int) {
	if height <= 0 {
		height = 10
	}
	w.height = height
	w.follow()
}

// SetTotal sets the number of rows, clamping the cursor
func (w *Window) SetTotal(total int) {
	w.total = total
	if w.cursor >= total {
		w.cursor = total - 1
	}
	if w.cursor < 0 {
		w.cursor = 0
	}
	w.follow()
}

// Cursor returns the absolute cursor position
func (w *Window) Cursor() int {
	return w.cursor
}

// SetCursor moves the cursor to pos, clamped to the list
func (w *Window) SetCursor(pos int) {
	w.cursor = max(0, min(pos, w.total-1))
	w.follow()
}

// Up moves the cursor up by one
func (w *Window) Up() bool {
	if w.cursor > 0 {
		w.cursor--
		w.follow()
		return true
	}
	return false
}

// Down moves the cursor down by one
func (w *Window) Down() bool {
	if w.cursor < w.total-1 {
		w.cursor++
		w.follow()
		return true
	}
	return false
}

// VisibleRange returns the half-open range of rows to draw
func (w *Window) VisibleRange() (start, end int) {
	return w.offset, min(w.offset+w.height, w.total)
}

// follow scrolls just enough to keep the cursor visible
func (w *Window) follow() {
	if w.cursor < w.offset {
		w.offset = w.cursor
	} else if w.cursor >= w.offset+w.height {
		w.offset = w.cursor - w.height + 1
	}
	if maxOffset := max(0, w.total-w.height); w.offset > maxOffset {
		w.offset = maxOffset
	}
}
