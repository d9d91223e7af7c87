package scheduling

// Slot is a bookable half-open interval [Start, End) in minutes since
// midnight on a specific date. Slots are transient: they are recomputed on
// every request from the doctor's availability, never stored.
type Slot struct {
	Start int
	End   int
}

// StartClock returns the slot start as "HH:MM".
func (s Slot) StartClock() string { return FormatClock(s.Start) }

// EndClock returns the slot end as "HH:MM".
func (s Slot) EndClock() string { return FormatClock(s.End) }

// Overlaps reports whether two half-open intervals intersect. Back-to-back
// intervals sharing a boundary do not overlap.
func Overlaps(start1, end1, start2, end2 int) bool {
	return start1 < end2 && start2 < end1
}

// partitionWindow cuts [start, end) into consecutive slots of the given
// duration. A trailing remainder shorter than a full slot is dropped.
func partitionWindow(start, end, duration int) []Slot {
	if duration <= 0 || end <= start {
		return nil
	}
	var slots []Slot
	for cur := start; cur+duration <= end; cur += duration {
		slots = append(slots, Slot{Start: cur, End: cur + duration})
	}
	return slots
}
