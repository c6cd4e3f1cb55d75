package algo

// Chunk is the half-open index range [Start, End) handed to one search worker.
type Chunk struct {
	Index int
	Start int
	End   int
}

// Len returns the number of elements covered by the chunk.
func (c Chunk) Len() int { return c.End - c.Start }

// Empty reports whether the chunk covers no element.
func (c Chunk) Empty() bool { return c.Start >= c.End }

// Partition splits [0, n) into exactly k contiguous chunks ordered by index.
// Every chunk holds n/k elements except the last one, which extends to n and
// absorbs the remainder of the division. When k > n the leading chunks are
// empty. A k below 1 is treated as 1.
func Partition(n, k int) []Chunk {
	k = clampWorkers(k)
	if n < 0 {
		n = 0
	}
	size := n / k
	chunks := make([]Chunk, k)
	for i := range chunks {
		end := (i + 1) * size
		if i == k-1 {
			end = n
		}
		chunks[i] = Chunk{Index: i, Start: i * size, End: end}
	}
	return chunks
}
