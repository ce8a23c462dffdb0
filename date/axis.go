package date

import (
	"iter"
	"slices"
)

// iterate returns an iterator over all unique, sorted dates from multiple sorted series of dates.
func iterate(series ...[]Date) iter.Seq[Date] {
	return func(yield func(Date) bool) {
		indexes := make([]int, len(series))
		for {
			// find the smallest date not consumed yet.
			var m Date
			found := false
			for i, index := range indexes {
				if index < len(series[i]) {
					if on := series[i][index]; !found || on.Before(m) {
						m, found = on, true
					}
				}
			}
			if !found {
				// All series have been consumed.
				return
			}
			// consume every series positioned on the min.
			for i, index := range indexes {
				for index < len(series[i]) && series[i][index] == m {
					index++
				}
				indexes[i] = index
			}
			if !yield(m) {
				return
			}
		}
	}
}

// Iterate returns an iterator over all unique, sorted dates from multiple History objects.
func Iterate[T any](histories ...*History[T]) iter.Seq[Date] {
	dates := make([][]Date, 0, len(histories))
	for _, h := range histories {
		dates = append(dates, h.days)
	}
	return iterate(dates...)
}

// Union returns the sorted union of all dates, in any order and possibly duplicated.
func Union(series ...[]Date) []Date {
	sorted := make([][]Date, 0, len(series))
	for _, s := range series {
		s = slices.Clone(s)
		slices.SortFunc(s, Date.Compare)
		sorted = append(sorted, s)
	}
	return slices.Collect(iterate(sorted...))
}
