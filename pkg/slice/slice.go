// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slice complements the standard [slices] package with generic
functional helpers (Map, Filter, Unique).

Every helper returns a new slice and leaves its input untouched. Results are
never nil, so they encode as JSON arrays rather than null.
*/
package slice

// Map maps a slice of type T to a slice of type U using the provided transformation function.
func Map[T any, U any](input []T, transform func(T) U) []U {
	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}
	return result
}

// Filter returns the elements for which predicate is true, in input order.
func Filter[T any](input []T, predicate func(T) bool) []T {
	// Not pre-allocating to full length to avoid excessive memory on heavy filters
	result := make([]T, 0)
	for _, v := range input {
		if predicate(v) {
			result = append(result, v)
		}
	}
	return result
}

// Unique returns the distinct keys of input in order of first occurrence.
func Unique[T any, K comparable](input []T, key func(T) K) []K {
	seen := make(map[K]struct{}, len(input))
	result := make([]K, 0)

	for _, v := range input {
		k := key(v)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		result = append(result, k)
	}
	return result
}
