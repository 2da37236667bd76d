// Package invert reverses one-to-many maps without losing keys.
//
// A plain map inversion overwrites: when two keys share a value, only the
// last key survives. SafeInvert merges instead, so every source key is kept
// under every value it produced. This is how a tag index (tag -> files) is
// turned back into a per-file view (file -> tags).
//
// Results are always sequences. A one-element sequence is what other
// languages would collapse to a bare value; call [Entry.Single] when that
// collapsed form is wanted.
package invert

import (
	"cmp"
	"maps"
	"slices"
)

// Entry holds the keys that produced a value, in first-seen order.
// Keys are not de-duplicated: a key listed twice under the same value in the
// source appears twice here.
type Entry[K any] []K

// Single returns the only key of a one-element entry.
// ok is false when the entry holds zero or several keys.
func (e Entry[K]) Single() (k K, ok bool) {
	if len(e) != 1 {
		return k, false
	}
	return e[0], true
}

// SafeInvert inverts a key -> values map into value -> keys.
//
// Source keys are visited in ascending order, so for every value the
// smallest producing key takes position 0 and later keys are appended
// after it. The order of values within a source sequence does not matter.
//
//	{1: [2]}            -> {2: [1]}
//	{1: [2], 2: [2]}    -> {2: [1, 2]}
//	{1: [1, 2], 3: [2, 1]} -> {1: [1, 3], 2: [1, 3]}
func SafeInvert[K cmp.Ordered, V comparable](m map[K][]V) map[V]Entry[K] {
	out := make(map[V]Entry[K])
	for _, k := range slices.Sorted(maps.Keys(m)) {
		for _, v := range m[k] {
			out[v] = append(out[v], k)
		}
	}
	return out
}

// SafeInvertOne inverts a key -> value map, merging keys that share a value.
//
//	{1: 2}       -> {2: [1]}
//	{1: 2, 3: 2} -> {2: [1, 3]}
func SafeInvertOne[K cmp.Ordered, V comparable](m map[K]V) map[V]Entry[K] {
	out := make(map[V]Entry[K])
	for _, k := range slices.Sorted(maps.Keys(m)) {
		v := m[k]
		out[v] = append(out[v], k)
	}
	return out
}
