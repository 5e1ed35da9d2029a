package common

func SliceToChunks[T any](values []T, chunkSize int) [][]T {
	if chunkSize >= len(values) || chunkSize <= 0 {
		return [][]T{values}
	}
	var chunks [][]T
	for i := 0; i < len(values); i += chunkSize {
		end := i + chunkSize
		if end > len(values) {
			end = len(values)
		}
		chunks = append(chunks, values[i:end])
	}
	return chunks
}

// maxPreallocatedNumbers caps the capacity BlockNumbersInRange reserves up front.
const maxPreallocatedNumbers = 1 << 16

// BlockNumbersInRange lists start..end inclusive. Callers guarantee start <= end.
func BlockNumbersInRange(start, end uint64) []uint64 {
	capacity := maxPreallocatedNumbers
	if end-start < maxPreallocatedNumbers {
		capacity = int(end-start) + 1
	}
	numbers := make([]uint64, 0, capacity)
	for n := start; ; n++ {
		numbers = append(numbers, n)
		if n == end {
			break
		}
	}
	return numbers
}

func Ptr[T any](v T) *T {
	return &v
}
