package reconcile

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStationary(t *testing.T) {
	tests := []struct {
		matches []int
		want    []bool
	}{
		{nil, []bool{}},
		{[]int{-1, -1}, []bool{false, false}},
		{[]int{0, 1, 2}, []bool{true, true, true}},
		{[]int{1, 0}, []bool{false, true}},
		{[]int{1, 2, 0}, []bool{true, true, false}},
		{[]int{2, -1, 3, 1, 0}, []bool{true, false, true, false, false}},
	}
	for _, test := range tests {
		got := stationary(test.matches)
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("stationary(%v) (-want +got):\n%s", test.matches, diff)
		}
	}
}
