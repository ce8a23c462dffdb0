package date

// Range represents a range of dates, boundaries included.
type Range struct{ From, To Date }

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// Days returns the number of calendar days covered by the range.
func (r Range) Days() int {
	if r.To.Before(r.From) {
		return 0
	}
	return r.To.DaysSince(r.From) + 1
}

// Extend returns the smallest range containing both r and d.
// The zero Range is extended into a single day range.
func (r Range) Extend(d Date) Range {
	if r.From.IsZero() || d.Before(r.From) {
		r.From = d
	}
	if r.To.IsZero() || d.After(r.To) {
		r.To = d
	}
	return r
}

func (r Range) String() string { return r.From.String() + ".." + r.To.String() }
