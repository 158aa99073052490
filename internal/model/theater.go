package model

// TheaterType classifies a screening theater by projection format.
// The type participates in schedule conflict rules: two theaters of
// the same type share a print window, so the same movie may not start
// in both within a short gap.
type TheaterType string

const (
	TheaterDigital TheaterType = "Digital" // standard digital projection
	TheaterIMAX    TheaterType = "IMAX"    // IMAX premium format
	Theater4DX     TheaterType = "4DX"     // 4DX motion format
)

// TheaterTypeOrder is the fixed priority order used when grouping
// showtimes for the schedule preview: Digital first, then the premium
// formats.
var TheaterTypeOrder = []TheaterType{TheaterDigital, TheaterIMAX, Theater4DX}

// Valid reports whether t is one of the known theater types.
func (t TheaterType) Valid() bool {
	switch t {
	case TheaterDigital, TheaterIMAX, Theater4DX:
		return true
	}
	return false
}

// Theater represents one screening room created through the seat-map
// builder.  The seat matrix is frozen at submission time; the derived
// seat counts are stored alongside it so list views never rescan the
// matrix.
//
// Fields:
//  ID              – primary key identifier.
//  Name            – display name, unique per venue, trimmed and non-empty.
//  Type            – projection format (Digital, IMAX, 4DX).
//  Floor           – floor label shown in the back office.
//  RowCount        – number of grid rows at submission.
//  ColumnCount     – number of grid columns at submission.
//  SeatMap         – dense cell matrix using the wire cell literals.
//  NormalSeats     – count of normal seats derived from the matrix.
//  AccessibleSeats – count of accessible seats derived from the matrix.
//  IsActive        – whether the theater is available for scheduling.
type Theater struct {
	ID              uint64      `json:"id"`
	Name            string      `json:"name"`
	Type            TheaterType `json:"type"`
	Floor           string      `json:"floor"`
	RowCount        int         `json:"rowCount"`
	ColumnCount     int         `json:"columnCount"`
	SeatMap         [][]string  `json:"seats,omitempty"`
	NormalSeats     int         `json:"normalSeats"`
	AccessibleSeats int         `json:"accessibleSeats"`
	IsActive        bool        `json:"isActive"`
	CreatedAt       string      `json:"createdAt,omitempty"`
	UpdatedAt       string      `json:"updatedAt,omitempty"`
}
