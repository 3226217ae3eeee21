package query

import "golang.org/x/exp/constraints"

// pageWindow returns the [start, end) bounds of a page clamped to total.
// Out of range pages collapse to an empty window.
func pageWindow[T constraints.Integer](page, perPage, total T) (start, end T) {
	if page < 0 || perPage <= 0 {
		return 0, 0
	}

	if page > total/perPage {
		return total, total
	}

	start = page * perPage
	if start >= total {
		return total, total
	}

	if perPage >= total-start {
		return start, total
	}

	end = start + perPage

	return start, end
}

// PageCount is the number of pages needed to show total rows.
func PageCount(total, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}
