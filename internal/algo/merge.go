package algo

import "cmp"

// Merge combines two ascending sequences into a newly allocated ascending
// sequence. It is stable: on equal keys the element from left comes first.
func Merge[T cmp.Ordered](left, right []T) []T {
	return MergeFunc(left, right, cmp.Compare[T])
}

// MergeFunc is Merge with a caller-supplied three-way comparison.
func MergeFunc[T any](left, right []T, compare func(a, b T) int) []T {
	out := make([]T, 0, len(left)+len(right))
	i, j := 0, 0
	for i < len(left) && j < len(right) {
		if compare(left[i], right[j]) <= 0 {
			out = append(out, left[i])
			i++
		} else {
			out = append(out, right[j])
			j++
		}
	}
	out = append(out, left[i:]...)
	return append(out, right[j:]...)
}
