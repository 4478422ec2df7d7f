package domain

import "sort"

// TimestampLayout is the wire and storage format for reading timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// SortTimestamps returns the map keys in chronological order.
// Lexicographic order equals chronological order for TimestampLayout keys.
func SortTimestamps(history map[string]int) []string {
	keys := make([]string, 0, len(history))
	for k := range history {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
