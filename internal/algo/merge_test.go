package algo

import (
	"cmp"
	"slices"
	"testing"
)

func TestMerge(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		left, right []int
		want        []int
	}{
		{"both empty", nil, nil, []int{}},
		{"left empty", nil, []int{1, 2}, []int{1, 2}},
		{"right empty", []int{1, 2}, nil, []int{1, 2}},
		{"interleaved", []int{1, 4, 9}, []int{2, 3, 10}, []int{1, 2, 3, 4, 9, 10}},
		{"duplicates", []int{1, 2, 2}, []int{2, 3}, []int{1, 2, 2, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Merge(tt.left, tt.right)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Merge(%v, %v) = %v, want %v", tt.left, tt.right, got, tt.want)
			}
		})
	}
}

type tagged struct {
	key, tag int
}

func compareKey(a, b tagged) int { return cmp.Compare(a.key, b.key) }

func TestMergeFuncPrefersLeftOnTies(t *testing.T) {
	t.Parallel()
	left := []tagged{{1, 0}, {2, 1}}
	right := []tagged{{1, 2}, {2, 3}}
	got := MergeFunc(left, right, compareKey)
	want := []tagged{{1, 0}, {1, 2}, {2, 1}, {2, 3}}
	if !slices.Equal(got, want) {
		t.Errorf("MergeFunc = %v, want %v", got, want)
	}
}

func TestMergeDoesNotAliasInputs(t *testing.T) {
	t.Parallel()
	left := []int{1, 3}
	right := []int{2}
	got := Merge(left, right)
	got[0] = 99
	if left[0] != 1 {
		t.Error("Merge output aliases its left input")
	}
}
