// Package chunk splits key lists into fixed-size chunks so bulk operations
// stay under backend query-parameter limits.
package chunk

// Slice splits items into consecutive chunks of at most size elements.
// The returned chunks share the input's backing array. A size <= 0 yields
// a single chunk containing all items.
func Slice[T any](items []T, size int) [][]T {
	if len(items) == 0 {
		return nil
	}
	if size <= 0 {
		return [][]T{items}
	}
	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for size < len(items) {
		chunks = append(chunks, items[:size])
		items = items[size:]
	}
	return append(chunks, items)
}
