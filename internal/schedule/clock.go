// Package schedule implements the daily showtime engine: the conflict
// resolver that accepts or rejects a candidate placement, the
// date-keyed schedule store with its one-way publish gate, and the
// grouped projection used by the schedule preview.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/iliyamo/cinema-scheduler/internal/model"
)

// SlotMinutes is the scheduling grid: showtimes may only start on
// quarter-hour boundaries.
const SlotMinutes = 15

// ParseClock converts "HH:MM" to minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("bad clock %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("bad clock %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("bad clock %q", s)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes since midnight as zero-padded "HH:MM".
// Values past midnight wrap; a screening that ends at 24:10 is shown
// as 00:10.
func FormatClock(minutes int) string {
	minutes %= 24 * 60
	if minutes < 0 {
		minutes += 24 * 60
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// AddMinutes derives an end time from a start clock and a duration.
func AddMinutes(start string, minutes int) (string, error) {
	m, err := ParseClock(start)
	if err != nil {
		return "", err
	}
	return FormatClock(m + minutes), nil
}

// OnSlotGrid reports whether the clock value lands on the 15-minute
// scheduling grid.
func OnSlotGrid(s string) bool {
	m, err := ParseClock(s)
	return err == nil && m%SlotMinutes == 0
}

// NormalizeDate canonicalizes a schedule date key.  Both the
// "2006/01/02" form used by the calendar UI and the ISO "2006-01-02"
// wire form are accepted; the ISO form is returned.
func NormalizeDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{model.DateLayout, "2006/01/02"} {
		if d, err := time.Parse(layout, s); err == nil {
			return d.Format(model.DateLayout), nil
		}
	}
	return "", fmt.Errorf("bad date %q", s)
}
