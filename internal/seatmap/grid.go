// Package seatmap implements the theater floor-plan builder: a grid of
// seat, aisle and empty cells painted by the back-office user, its
// derived seat statistics, and the dense matrix serialization submitted
// when a theater is created.
package seatmap

import "strconv"

// CellKind distinguishes the three paint states of a grid position.
type CellKind string

const (
	KindEmpty CellKind = "empty" // unpainted position
	KindSeat  CellKind = "seat"  // sellable seat
	KindAisle CellKind = "aisle" // walkway, counted but not sellable
)

// SeatCategory refines KindSeat.  It is meaningless for other kinds.
type SeatCategory string

const (
	SeatNormal     SeatCategory = "normal"
	SeatAccessible SeatCategory = "accessible"
)

// Wire literals for the theater creation payload.  These exact strings
// are the serialization contract with the theater-storage collaborator.
const (
	cellLiteralNormal     = "一般座位"
	cellLiteralAccessible = "殘障座位"
	cellLiteralAisle      = "走道"
	cellLiteralEmpty      = "Empty"
)

// Cell is one grid position.  Category is only set when Kind is
// KindSeat; row and column labels are derived from position and are
// never stored on the cell itself.
type Cell struct {
	Kind     CellKind
	Category SeatCategory
}

// Stats are the derived seat counts of a grid.  TotalAssigned always
// equals NormalSeats + AccessibleSeats + AisleSeats, which in turn is
// the number of non-empty cells.
type Stats struct {
	NormalSeats     int `json:"normalSeats"`
	AccessibleSeats int `json:"accessibleSeats"`
	AisleSeats      int `json:"aisleSeats"`
	TotalAssigned   int `json:"totalAssigned"`
}

type position struct{ row, col int }

// Grid holds the sparse paint state of the builder over a bounded
// rows × cols area.  Cells outside the current bounds do not exist:
// shrinking a dimension permanently discards their paint state, and
// growing back exposes fresh empty cells.
type Grid struct {
	rows  int
	cols  int
	cells map[position]Cell
}

// NewGrid returns a grid of the given dimensions with every cell
// empty.  Dimensions below 1 are clamped to 1.
func NewGrid(rows, cols int) *Grid {
	g := &Grid{cells: make(map[position]Cell)}
	g.Resize(rows, cols)
	return g
}

// Rows returns the current row count.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the current column count.
func (g *Grid) Cols() int { return g.cols }

// Resize updates the grid dimensions.  Painted cells that fall outside
// the new bounds are dropped immediately; resizing back up does not
// resurrect them.  Cells inside the bounds are untouched.
func (g *Grid) Resize(rows, cols int) {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	g.rows, g.cols = rows, cols
	for pos := range g.cells {
		if pos.row >= rows || pos.col >= cols {
			delete(g.cells, pos)
		}
	}
}

// CellAt returns the cell at the zero-based position, or an empty cell
// when the position was never painted or lies outside the bounds.
func (g *Grid) CellAt(row, col int) Cell {
	if c, ok := g.cells[position{row, col}]; ok {
		return c
	}
	return Cell{Kind: KindEmpty}
}

// set writes a cell, keeping the sparse map free of empty entries.
func (g *Grid) set(row, col int, c Cell) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return
	}
	if c.Kind == KindEmpty {
		delete(g.cells, position{row, col})
		return
	}
	g.cells[position{row, col}] = c
}

// Stats scans the grid and counts cells by kind and seat category.
func (g *Grid) Stats() Stats {
	var s Stats
	for _, c := range g.cells {
		switch c.Kind {
		case KindAisle:
			s.AisleSeats++
		case KindSeat:
			if c.Category == SeatAccessible {
				s.AccessibleSeats++
			} else {
				s.NormalSeats++
			}
		}
	}
	s.TotalAssigned = s.NormalSeats + s.AccessibleSeats + s.AisleSeats
	return s
}

// Matrix materializes the sparse paint state into the dense cell
// matrix used for theater submission.  Each cell is rendered as one of
// the wire literals; aisle and empty cells carry no seat category.
func (g *Grid) Matrix() [][]string {
	out := make([][]string, g.rows)
	for r := 0; r < g.rows; r++ {
		row := make([]string, g.cols)
		for c := 0; c < g.cols; c++ {
			switch cell := g.CellAt(r, c); cell.Kind {
			case KindAisle:
				row[c] = cellLiteralAisle
			case KindSeat:
				if cell.Category == SeatAccessible {
					row[c] = cellLiteralAccessible
				} else {
					row[c] = cellLiteralNormal
				}
			default:
				row[c] = cellLiteralEmpty
			}
		}
		out[r] = row
	}
	return out
}

// rowAllAisle reports whether every cell of the row is an aisle.  A
// row containing any seat or empty cell is not all-aisle.
func (g *Grid) rowAllAisle(row int) bool {
	for c := 0; c < g.cols; c++ {
		if g.CellAt(row, c).Kind != KindAisle {
			return false
		}
	}
	return true
}

func (g *Grid) colAllAisle(col int) bool {
	for r := 0; r < g.rows; r++ {
		if g.CellAt(r, col).Kind != KindAisle {
			return false
		}
	}
	return true
}

// RowLabel returns the letter label of a row: the 1-based ordinal of
// the row among rows that are not entirely aisle, rendered in base-26
// letters (A..Z, AA..).  A row composed entirely of aisle cells gets
// no label and is skipped when counting ordinals for later rows.
// Labels are recomputed from the current grid on every call since
// painting one cell can change whether its whole line is aisle.
func (g *Grid) RowLabel(row int) string {
	if row < 0 || row >= g.rows || g.rowAllAisle(row) {
		return ""
	}
	ord := 0
	for r := 0; r < row; r++ {
		if !g.rowAllAisle(r) {
			ord++
		}
	}
	return indexToRowLabel(ord)
}

// ColumnLabel returns the numeric label of a column: the 1-based
// ordinal among columns that are not entirely aisle, or "" for an
// all-aisle column.
func (g *Grid) ColumnLabel(col int) string {
	if col < 0 || col >= g.cols || g.colAllAisle(col) {
		return ""
	}
	ord := 1
	for c := 0; c < col; c++ {
		if !g.colAllAisle(c) {
			ord++
		}
	}
	return strconv.Itoa(ord)
}

// indexToRowLabel converts a zero-based ordinal to an alphabetical row
// label like A, B, .., Z, AA.
func indexToRowLabel(i int) string {
	if i < 0 {
		return ""
	}
	var res []rune
	for {
		res = append(res, rune('A'+i%26))
		i = i/26 - 1
		if i < 0 {
			break
		}
	}
	for j, k := 0, len(res)-1; j < k; j, k = j+1, k-1 {
		res[j], res[k] = res[k], res[j]
	}
	return string(res)
}
