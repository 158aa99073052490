package seatmap

import "fmt"

// FromMatrix reconstructs a grid from a submitted dense cell matrix.
// The server re-derives seat statistics from the payload instead of
// trusting counts supplied by the builder UI.  Ragged rows and unknown
// cell literals are rejected.
func FromMatrix(cells [][]string) (*Grid, error) {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return nil, fmt.Errorf("seat matrix is empty")
	}
	cols := len(cells[0])
	g := NewGrid(len(cells), cols)
	for r, row := range cells {
		if len(row) != cols {
			return nil, fmt.Errorf("seat matrix row %d has %d cells, want %d", r, len(row), cols)
		}
		for c, lit := range row {
			switch lit {
			case cellLiteralEmpty:
				// already empty
			case cellLiteralAisle:
				g.set(r, c, Cell{Kind: KindAisle})
			case cellLiteralNormal:
				g.set(r, c, Cell{Kind: KindSeat, Category: SeatNormal})
			case cellLiteralAccessible:
				g.set(r, c, Cell{Kind: KindSeat, Category: SeatAccessible})
			default:
				return nil, fmt.Errorf("unknown cell literal %q at %d,%d", lit, r, c)
			}
		}
	}
	return g, nil
}
