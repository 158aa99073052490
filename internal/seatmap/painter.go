package seatmap

import "fmt"

// Tool selects what a paint operation writes into a cell.  ToolNone is
// the unselected state in which every paint operation is a no-op.
type Tool string

const (
	ToolNone       Tool = ""
	ToolNormal     Tool = "normal"
	ToolAccessible Tool = "accessible"
	ToolAisle      Tool = "aisle"
	ToolEraser     Tool = "eraser"
)

// Painter drives paint gestures over a single grid.  A gesture is one
// continuous pointer-down-to-pointer-up interaction; while it is
// active, each cell is painted at most once no matter how many times
// the pointer sweeps back over it.  A plain click is its own one-cell
// gesture and ignores the visited set.
type Painter struct {
	grid     *Grid
	tool     Tool
	painting bool
	visited  map[string]bool
}

// NewPainter returns an idle painter over the given grid with no tool
// selected.
func NewPainter(g *Grid) *Painter {
	return &Painter{grid: g}
}

// SetTool selects the active tool for subsequent gestures.
func (p *Painter) SetTool(t Tool) { p.tool = t }

// Tool returns the currently selected tool.
func (p *Painter) Tool() Tool { return p.tool }

// Painting reports whether a gesture is in progress.
func (p *Painter) Painting() bool { return p.painting }

// Begin starts a paint gesture (pointer down) and resets the visited
// set.  Beginning while already painting restarts the gesture.
func (p *Painter) Begin() {
	p.painting = true
	p.visited = make(map[string]bool)
}

// End finishes the gesture (pointer up or leaving the grid).
func (p *Painter) End() {
	p.painting = false
	p.visited = nil
}

// Enter paints the cell the pointer just moved onto.  It does nothing
// when no gesture is active, no tool is selected, or the cell was
// already painted during this gesture.  It reports whether the cell
// was painted.
func (p *Painter) Enter(row, col int) bool {
	if !p.painting || p.tool == ToolNone {
		return false
	}
	key := fmt.Sprintf("%d-%d", row, col)
	if p.visited[key] {
		return false
	}
	p.visited[key] = true
	return p.apply(row, col)
}

// Click paints exactly one cell as its own gesture, bypassing any
// visited set of an in-progress drag.  It reports whether the cell was
// painted.
func (p *Painter) Click(row, col int) bool {
	if p.tool == ToolNone {
		return false
	}
	return p.apply(row, col)
}

// apply writes the active tool into the cell.  Out-of-bounds positions
// are ignored.
func (p *Painter) apply(row, col int) bool {
	if row < 0 || row >= p.grid.Rows() || col < 0 || col >= p.grid.Cols() {
		return false
	}
	switch p.tool {
	case ToolEraser:
		p.grid.set(row, col, Cell{Kind: KindEmpty})
	case ToolAisle:
		p.grid.set(row, col, Cell{Kind: KindAisle})
	case ToolNormal:
		p.grid.set(row, col, Cell{Kind: KindSeat, Category: SeatNormal})
	case ToolAccessible:
		p.grid.set(row, col, Cell{Kind: KindSeat, Category: SeatAccessible})
	default:
		return false
	}
	return true
}
