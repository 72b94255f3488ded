package entity

import "slices"

// moveBlock removes the items whose ids are in ids and reinserts them, in
// their current relative order, starting at index of the remaining list.
// Index is clamped to the valid range.
func moveBlock[T any, K comparable](items []T, idOf func(T) K, ids []K, index int) []T {
	moving := make([]T, 0, len(ids))
	rest := make([]T, 0, len(items))
	for _, it := range items {
		if slices.Contains(ids, idOf(it)) {
			moving = append(moving, it)
		} else {
			rest = append(rest, it)
		}
	}
	index = max(0, min(index, len(rest)))
	out := make([]T, 0, len(items))
	out = append(out, rest[:index]...)
	out = append(out, moving...)
	return append(out, rest[index:]...)
}

// BlockIndex returns the index, counted in order without the moving
// ids, that places a moved block before or after anchor. Returns -1 when
// anchor is missing or is itself being moved.
func BlockIndex[K comparable](order []K, anchor K, after bool, moving []K) int {
	if slices.Contains(moving, anchor) {
		return -1
	}
	i := 0
	for _, id := range order {
		if slices.Contains(moving, id) {
			continue
		}
		if id == anchor {
			if after {
				return i + 1
			}
			return i
		}
		i++
	}
	return -1
}

func insertAt[T any](items []T, item T, index int) []T {
	index = max(0, min(index, len(items)))
	return slices.Insert(items, index, item)
}
