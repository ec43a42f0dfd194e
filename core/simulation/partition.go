package simulation

// Partition splits total trials across workers. Every worker gets
// total/workers trials and the first total%workers workers get one more,
// so the entries sum to total and differ by at most one.
func Partition(total int64, workers int) []int64 {
	if workers <= 0 {
		return nil
	}
	n := int64(workers)
	per, rem := total/n, total%n

	assignment := make([]int64, workers)
	for i := range assignment {
		assignment[i] = per
		if int64(i) < rem {
			assignment[i]++
		}
	}
	return assignment
}
