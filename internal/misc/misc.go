package misc

import (
	"golang.org/x/exp/constraints"
	"strings"
)

func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// StringLimit cuts s to at most n runes, marking the cut with "...".
func StringLimit(s string, n int) string {
	if n < 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

// MaskTail replaces every rune of s except the last keep with '*'.
func MaskTail(s string, keep int) string {
	keep = Max(keep, 0)
	r := []rune(s)
	if len(r) <= keep {
		return s
	}
	return strings.Repeat("*", len(r)-keep) + string(r[len(r)-keep:])
}
