package question

import "strconv"

// Paginate cuts page number `page` of size `size` out of items and returns it
// with len(items). Ordering is the caller's; out-of-range pages are empty.
// Pages below 1 are treated as page 1.
func Paginate[T any](items []T, page, size int) ([]T, int) {
	total := len(items)
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	if start >= total {
		return []T{}, total
	}
	end := start + size
	if end > total {
		end = total
	}
	return items[start:end], total
}

// ParsePage reads the ?page= query value. Missing or non-numeric values
// select page 1, and so do explicit values below 1.
func ParsePage(raw string) int {
	if raw == "" {
		return 1
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func newPage(items []Question, page, size int) Page {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	cut, total := Paginate(items, page, size)
	return Page{
		Questions: cut,
		Number:    page,
		Size:      size,
		Total:     total,
	}
}
