package app

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

const DefaultPageSize = 10

type Page[T any] struct {
	Items       []T  `json:"items"`
	Number      int  `json:"number"`
	NumPages    int  `json:"numPages"`
	Count       int  `json:"count"`
	HasNext     bool `json:"hasNext"`
	HasPrevious bool `json:"hasPrevious"`
}

func (p *Page[T]) NextPageNumber() int {
	return p.Number + 1
}

func (p *Page[T]) PreviousPageNumber() int {
	return p.Number - 1
}

// PageBounds is a page resolved against a total count, before any items are fetched
type PageBounds struct {
	Number   int
	NumPages int
	Count    int
	Offset   int
	Limit    int
}

// ParsePageNumber returns 1 for a missing, malformed or non-positive page.
// A positive page too large for an int is math.MaxInt, so ResolvePage clamps
// it to the last page like any other page past the end.
func ParsePageNumber(requestedPage string) int {
	requestedPage = strings.TrimSpace(requestedPage)
	number, err := strconv.Atoi(requestedPage)
	if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(requestedPage, "-") {
		return math.MaxInt
	}
	if err != nil || number < 1 {
		return 1
	}
	return number
}

// ResolvePage clamps requestedPage into [1, last page]. There is always at
// least one page, even for an empty sequence.
func ResolvePage(count int, pageSize int, requestedPage string) *PageBounds {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	numPages := 1
	if count > pageSize {
		numPages = (count + pageSize - 1) / pageSize
	}
	number := ParsePageNumber(requestedPage)
	if number > numPages {
		number = numPages
	}
	return &PageBounds{
		Number:   number,
		NumPages: numPages,
		Count:    count,
		Offset:   (number - 1) * pageSize,
		Limit:    pageSize,
	}
}

// NewPage wraps items already fetched for bounds
func NewPage[T any](bounds *PageBounds, items []T) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Items:       items,
		Number:      bounds.Number,
		NumPages:    bounds.NumPages,
		Count:       bounds.Count,
		HasNext:     bounds.Number < bounds.NumPages,
		HasPrevious: bounds.Number > 1,
	}
}

// Paginate slices an ordered sequence. It never fails: see ResolvePage for
// how requestedPage is clamped.
func Paginate[T any](items []T, pageSize int, requestedPage string) *Page[T] {
	bounds := ResolvePage(len(items), pageSize, requestedPage)
	end := min(bounds.Offset+bounds.Limit, len(items))
	return NewPage(bounds, items[bounds.Offset:end])
}
