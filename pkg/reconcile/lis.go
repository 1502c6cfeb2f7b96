package reconcile

import "sort"

// stationary reports, for every element of matches, whether the matched view
// can stay where it is. matches holds old indices in new order, with -1 for
// views that are new.
//
// The stationary views form a longest increasing subsequence of the old
// indices: their relative order is unchanged, and no smaller set of views
// could be moved to restore the new order.
func stationary(matches []int) []bool {
	// seq holds the positions in matches of surviving views.
	var seq []int
	for i, j := range matches {
		if j >= 0 {
			seq = append(seq, i)
		}
	}
	result := make([]bool, len(matches))
	if len(seq) == 0 {
		return result
	}

	// tails[k] is the position in seq ending the best increasing subsequence
	// of length k+1 found so far; prev links each position to its predecessor.
	tails := make([]int, 0, len(seq))
	prev := make([]int, len(seq))
	for p, i := range seq {
		v := matches[i]
		k := sort.Search(len(tails), func(k int) bool { return matches[seq[tails[k]]] >= v })
		if k > 0 {
			prev[p] = tails[k-1]
		} else {
			prev[p] = -1
		}
		if k == len(tails) {
			tails = append(tails, p)
		} else {
			tails[k] = p
		}
	}
	for p := tails[len(tails)-1]; p >= 0; p = prev[p] {
		result[seq[p]] = true
	}
	return result
}
