// Helper functions shared by the cycle search: slice operations and
// Booth's minimal-rotation algorithm.
package dfs

import (
	"cmp"
	"strconv"
	"strings"

	"github.com/katalvlaran/fragevo/core"
)

// IndexOf returns the first index of val in s, or -1 if not found.
func IndexOf[T comparable](s []T, val T) int {
	for i, x := range s {
		if x == val {
			return i
		}
	}
	return -1
}

// Reverse returns a new slice containing the elements of s in reverse order.
func Reverse[T any](s []T) []T {
	out := make([]T, len(s))
	for i := range s {
		out[i] = s[len(s)-1-i]
	}
	return out
}

// MinimalRotation implements Booth's algorithm to find the
// lexicographically minimal rotation of s in O(n).
func MinimalRotation[T cmp.Ordered](s []T) []T {
	n := len(s)
	if n == 0 {
		return nil
	}
	doubled := make([]T, 0, 2*n)
	doubled = append(append(doubled, s...), s...)
	f := make([]int, 2*n)
	for i := range f {
		f[i] = -1
	}
	k := 0
	for j := 1; j < 2*n; j++ {
		i := f[j-k-1]
		for i != -1 && doubled[j] != doubled[k+i+1] {
			if doubled[j] < doubled[k+i+1] {
				k = j - i - 1
			}
			i = f[i]
		}
		if doubled[j] != doubled[k+i+1] {
			if doubled[j] < doubled[k] {
				k = j
			}
			f[j-k] = -1
		} else {
			f[j-k] = i + 1
		}
	}
	out := make([]T, n)
	copy(out, doubled[k:k+n])
	return out
}

func signature(ids []core.VertexID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(int64(id), 10)
	}
	return strings.Join(parts, ",")
}
