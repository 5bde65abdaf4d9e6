// Package timerange handles wall-clock booking slots at minute resolution.
// Ranges are half-open [Start, End) and never cross midnight.
package timerange

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const minutesPerDay = 24 * 60

var (
	clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	slotPattern  = regexp.MustCompile(`(\d{1,2}:\d{2})\s*-\s*(\d{1,2}:\d{2})`)
)

type Range struct {
	Start int
	End   int
}

// ParseClock converts "HH:MM" into minutes since midnight.
func ParseClock(s string) (int, error) {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("invalid time %q, want HH:MM", s)
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	if hours > 23 || minutes > 59 {
		return 0, fmt.Errorf("invalid time %q, out of range", s)
	}
	return hours*60 + minutes, nil
}

func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// New builds a range from two clock strings. end must be after start.
func New(start, end string) (Range, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Range{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Range{}, err
	}
	r := Range{Start: s, End: e}
	if err := r.Validate(); err != nil {
		return Range{}, err
	}
	return r, nil
}

// ParseSlot parses the display form "10:00 - 12:00".
func ParseSlot(slot string) (Range, error) {
	m := slotPattern.FindStringSubmatch(slot)
	if m == nil {
		return Range{}, fmt.Errorf("invalid time slot %q, want \"HH:MM - HH:MM\"", slot)
	}
	return New(m[1], m[2])
}

// ErrEmptyRange is returned for ranges whose end is not after their start.
var ErrEmptyRange = errors.New("end time must be after start time")

func (r Range) Validate() error {
	if r.Start < 0 || r.End >= minutesPerDay {
		return fmt.Errorf("range %s exceeds a single day", r)
	}
	if r.End <= r.Start {
		return ErrEmptyRange
	}
	return nil
}

// Overlaps reports whether [a.Start, a.End) and [b.Start, b.End) intersect.
// Touching ranges do not overlap, and a zero-length range overlaps nothing.
func Overlaps(a, b Range) bool {
	return a.Start < a.End && b.Start < b.End &&
		a.Start < b.End && b.Start < a.End
}

// OverlapClock is Overlaps over raw "HH:MM" strings.
func OverlapClock(start1, end1, start2, end2 string) (bool, error) {
	var mins [4]int
	for i, s := range []string{start1, end1, start2, end2} {
		m, err := ParseClock(s)
		if err != nil {
			return false, err
		}
		mins[i] = m
	}
	return Overlaps(Range{mins[0], mins[1]}, Range{mins[2], mins[3]}), nil
}

func (r Range) StartClock() string { return FormatClock(r.Start) }

func (r Range) EndClock() string { return FormatClock(r.End) }

func (r Range) String() string {
	return r.StartClock() + " - " + r.EndClock()
}

func (r Range) Hours() float64 {
	return float64(r.End-r.Start) / 60
}

// NormalizeDate reduces the date shapes the store hands back
// ("2024-06-01", "2024/06/01", "2024-06-01T00:00:00.000Z") to "2024-06-01".
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		s = s[:i]
	}
	return strings.ReplaceAll(s, "/", "-")
}

// ParseDate validates a normalized calendar date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(time.DateOnly, NormalizeDate(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return d, nil
}
