package matcher

import "github.com/jpl-au/tgrep/internal/model"

// ComputeContextOffsets assigns each non-matching line in lines the
// signed distance (shortest absolute value wins) to the nearest matched
// line, per spec.md section 4.1. It makes two passes - forward then
// reverse - over the slice, mutating ContextOffset and IsContext in
// place.
//
// A negative offset means the nearest match is later in the file: a
// context line at offset -2 is two lines above its nearest match; +2 is
// two lines below. Matched lines themselves keep ContextOffset 0.
func ComputeContextOffsets(lines []model.Line) {
	n := len(lines)
	if n == 0 {
		return
	}

	const unset = 1<<31 - 1
	best := make([]int, n)
	for i := range best {
		best[i] = unset
	}
	for i, l := range lines {
		if len(l.Matches) > 0 {
			best[i] = 0
		}
	}

	// Forward pass: propagate distance to the nearest preceding match.
	dist := unset
	for i := 0; i < n; i++ {
		if len(lines[i].Matches) > 0 {
			dist = 0
			continue
		}
		if dist != unset {
			dist++
			if dist < absOf(best[i]) {
				best[i] = dist
			}
		}
	}

	// Reverse pass: propagate distance to the nearest following match,
	// preferring it over the forward pass's result when it is strictly
	// closer.
	dist = unset
	for i := n - 1; i >= 0; i-- {
		if len(lines[i].Matches) > 0 {
			dist = 0
			continue
		}
		if dist != unset {
			dist++
			if dist < absOf(best[i]) {
				best[i] = -dist
			}
		}
	}

	for i := range lines {
		if len(lines[i].Matches) > 0 {
			lines[i].ContextOffset = 0
			lines[i].IsContext = false
			continue
		}
		if best[i] == unset {
			continue
		}
		lines[i].ContextOffset = best[i]
		lines[i].IsContext = true
	}
}

func absOf(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
