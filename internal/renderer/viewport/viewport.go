// Package viewport tracks which buffer lines are visible in the text area.
package viewport

// Viewport represents the visible portion of the buffer. Only vertical
// scrolling is supported; lines wider than the screen are cut off.
type Viewport struct {
	// First visible buffer line
	topLine int

	// Size in screen cells
	width  int
	height int
}

// New creates a viewport with the given size.
// Width and height are clamped to a minimum of 1.
func New(width, height int) *Viewport {
	return &Viewport{
		width:  max(width, 1),
		height: max(height, 1),
	}
}

// Width returns the viewport width.
func (v *Viewport) Width() int {
	return v.width
}

// Height returns the viewport height.
func (v *Viewport) Height() int {
	return v.height
}

// TopLine returns the first visible line.
func (v *Viewport) TopLine() int {
	return v.topLine
}

// BottomLine returns the last visible line.
func (v *Viewport) BottomLine() int {
	return v.topLine + v.height - 1
}

// Resize updates the viewport size.
// Width and height are clamped to a minimum of 1.
func (v *Viewport) Resize(width, height int) {
	v.width = max(width, 1)
	v.height = max(height, 1)
}

// IsLineVisible returns true if the buffer line is on screen.
func (v *Viewport) IsLineVisible(line int) bool {
	return line >= v.topLine && line <= v.BottomLine()
}

// ScrollTo makes line the first visible line. Negative values scroll to
// the top.
func (v *Viewport) ScrollTo(line int) {
	v.topLine = max(line, 0)
}

// ScrollToReveal scrolls the minimum amount needed to make line visible.
// Returns true if the viewport moved.
func (v *Viewport) ScrollToReveal(line int) bool {
	line = max(line, 0)
	switch {
	case line < v.topLine:
		v.ScrollTo(line)
	case line > v.BottomLine():
		v.ScrollTo(line - v.height + 1)
	default:
		return false
	}
	return true
}

// ScreenRow converts a buffer line to a screen row.
// Returns false if the line is not visible.
func (v *Viewport) ScreenRow(line int) (int, bool) {
	if !v.IsLineVisible(line) {
		return 0, false
	}
	return line - v.topLine, true
}

// BufferLine converts a screen row to a buffer line.
func (v *Viewport) BufferLine(row int) int {
	return v.topLine + row
}
