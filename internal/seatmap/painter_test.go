package seatmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGesturePaintsEachCellOnce(t *testing.T) {
	g := NewGrid(3, 3)
	p := NewPainter(g)
	p.SetTool(ToolNormal)

	p.Begin()
	assert.True(t, p.Enter(0, 0))
	assert.False(t, p.Enter(0, 0)) // swept over again within one drag
	assert.True(t, p.Enter(0, 1))
	p.End()

	assert.Equal(t, 2, g.Stats().TotalAssigned)
}

func TestNewGestureRevisitsCells(t *testing.T) {
	g := NewGrid(2, 2)
	p := NewPainter(g)
	p.SetTool(ToolAisle)

	p.Begin()
	assert.True(t, p.Enter(0, 0))
	p.End()

	p.SetTool(ToolEraser)
	p.Begin()
	assert.True(t, p.Enter(0, 0)) // fresh gesture, fresh visited set
	p.End()

	assert.Equal(t, KindEmpty, g.CellAt(0, 0).Kind)
}

func TestClickBypassesVisitedSet(t *testing.T) {
	g := NewGrid(2, 2)
	p := NewPainter(g)
	p.SetTool(ToolNormal)

	p.Begin()
	assert.True(t, p.Enter(1, 1))
	assert.True(t, p.Click(1, 1)) // click is its own one-cell gesture
	p.End()
}

func TestNoToolIsNoOp(t *testing.T) {
	g := NewGrid(2, 2)
	p := NewPainter(g)

	assert.False(t, p.Click(0, 0))
	p.Begin()
	assert.False(t, p.Enter(0, 0))
	p.End()
	assert.Equal(t, 0, g.Stats().TotalAssigned)
}

func TestEnterOutsideGestureIsNoOp(t *testing.T) {
	g := NewGrid(2, 2)
	p := NewPainter(g)
	p.SetTool(ToolNormal)

	assert.False(t, p.Enter(0, 0)) // no pointer down yet
	p.Begin()
	p.End()
	assert.False(t, p.Enter(0, 0)) // pointer already up
	assert.Equal(t, 0, g.Stats().TotalAssigned)
}

func TestToolSemantics(t *testing.T) {
	g := NewGrid(1, 4)
	p := NewPainter(g)

	p.SetTool(ToolNormal)
	p.Click(0, 0)
	p.SetTool(ToolAccessible)
	p.Click(0, 1)
	p.SetTool(ToolAisle)
	p.Click(0, 2)

	assert.Equal(t, Cell{Kind: KindSeat, Category: SeatNormal}, g.CellAt(0, 0))
	assert.Equal(t, Cell{Kind: KindSeat, Category: SeatAccessible}, g.CellAt(0, 1))
	assert.Equal(t, Cell{Kind: KindAisle}, g.CellAt(0, 2))

	p.SetTool(ToolEraser)
	p.Click(0, 1)
	assert.Equal(t, KindEmpty, g.CellAt(0, 1).Kind)
}

func TestPaintOutOfBoundsIgnored(t *testing.T) {
	g := NewGrid(2, 2)
	p := NewPainter(g)
	p.SetTool(ToolNormal)
	assert.False(t, p.Click(5, 5))
	assert.False(t, p.Click(-1, 0))
	assert.Equal(t, 0, g.Stats().TotalAssigned)
}
