package utils

import (
	"cmp"
	"slices"
)

func SortKeys[K cmp.Ordered](keys []K, asc bool) []K {
	slices.SortFunc(keys, func(a, b K) int {
		if asc {
			return cmp.Compare(a, b)
		}
		return cmp.Compare(b, a)
	})
	return keys
}

func GetSortedKeys[K cmp.Ordered, V any](m map[K]V, asc bool) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return SortKeys(keys, asc)
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	return GetSortedKeys(m, true)
}
