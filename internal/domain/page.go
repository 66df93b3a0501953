package domain

import "math"

// Page is a 1-indexed page request.
type Page struct {
	Number int
	Size   int
}

// Offset is the number of items before the page. It saturates at
// math.MaxInt64 so a page far past the end stays past the end.
func (p Page) Offset() int64 {
	if p.Number < 1 || p.Size < 1 {
		return 0
	}
	skipped, size := int64(p.Number-1), int64(p.Size)
	if skipped > math.MaxInt64/size {
		return math.MaxInt64
	}
	return skipped * size
}

func (p Page) Limit() int64 {
	return int64(p.Size)
}

func TotalPages(total int64, size int) int {
	if size <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
