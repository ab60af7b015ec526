package dot

// Int32Batch computes one dot product per pair of rows.
// For each i, result[i] = Int32(rows[i], cols[i]).
//
// Returns a slice of results with length min(len(rows), len(cols)).
func Int32Batch(rows, cols [][]int32) []int32 {
	n := min(len(rows), len(cols))
	results := make([]int32, n)

	for i := 0; i < n; i++ {
		results[i] = Int32(rows[i], cols[i])
	}

	return results
}
