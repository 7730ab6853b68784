package pagination

import "strconv"

// PageSize is the fixed number of items per feed page.
const PageSize = 10

// Page is one fixed-size window over an ordered sequence. Items keep the
// sequence's existing order.
type Page[T any] struct {
	Items       []T  `json:"items"`
	Number      int  `json:"number"`
	NumPages    int  `json:"num_pages"`
	Count       int  `json:"count"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// Paginate slices items into pages of pageSize and returns the page selected
// by the raw query parameter. Invalid or missing page numbers resolve to the
// first page, numbers past the end resolve to the last page, and an empty
// sequence yields a single empty page.
func Paginate[T any](items []T, pageSize int, pageParam string) Page[T] {
	count := len(items)

	numPages := (count + pageSize - 1) / pageSize
	if numPages < 1 {
		numPages = 1
	}

	number, err := strconv.Atoi(pageParam)
	if err != nil || number < 1 {
		number = 1
	}
	if number > numPages {
		number = numPages
	}

	start := (number - 1) * pageSize
	end := start + pageSize
	if start > count {
		start = count
	}
	if end > count {
		end = count
	}

	return Page[T]{
		Items:       items[start:end],
		Number:      number,
		NumPages:    numPages,
		Count:       count,
		HasNext:     number < numPages,
		HasPrevious: number > 1,
	}
}
