package task

// Reorder moves activeID to the index currently held by overID within the
// board-wide order. It returns the new order and whether anything changed.
// Unknown IDs leave the order untouched.
func Reorder(order []string, activeID, overID string) ([]string, bool) {
	from, to := -1, -1
	for i, id := range order {
		switch id {
		case activeID:
			from = i
		case overID:
			to = i
		}
	}
	if from < 0 || to < 0 || from == to {
		return order, false
	}

	out := make([]string, 0, len(order))
	out = append(out, order[:from]...)
	out = append(out, order[from+1:]...)

	out = append(out[:to], append([]string{activeID}, out[to:]...)...)
	return out, true
}

// MoveTo places id at index within order, clamping index to the valid range.
func MoveTo(order []string, id string, index int) []string {
	out := make([]string, 0, len(order))
	for _, o := range order {
		if o != id {
			out = append(out, o)
		}
	}
	if index < 0 {
		index = 0
	}
	if index > len(out) {
		index = len(out)
	}
	return append(out[:index], append([]string{id}, out[index:]...)...)
}
