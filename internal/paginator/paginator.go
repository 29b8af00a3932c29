// Package paginator splits ordered collections into fixed-size pages.
// Out of range page numbers are tolerated and resolved to a real page.
package paginator

import (
	"strconv"
	"strings"
)

// Paginator knows the collection size and page size.
type Paginator struct {
	Count   int64
	PerPage int
}

func New(count int64, perPage int) Paginator {
	if perPage < 1 {
		perPage = 1
	}
	if count < 0 {
		count = 0
	}
	return Paginator{Count: count, PerPage: perPage}
}

// NumPages is at least 1, an empty collection has one empty page.
func (p Paginator) NumPages() int {
	if p.Count == 0 {
		return 1
	}
	return int((p.Count + int64(p.PerPage) - 1) / int64(p.PerPage))
}

// Page resolves the raw ?page= value. Missing or non-numeric input gives the
// first page, numbers outside 1..NumPages give the last page.
func (p Paginator) Page(raw string) Page {
	num := p.NumPages()
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	switch {
	case err != nil:
		n = 1
	case n < 1 || n > num:
		n = num
	}
	return Page{Number: n, NumPages: num, Count: p.Count, PerPage: p.PerPage}
}

// Page is one resolved page of a collection.
type Page struct {
	Number   int
	NumPages int
	Count    int64
	PerPage  int
}

func (pg Page) Offset() int {
	return (pg.Number - 1) * pg.PerPage
}

func (pg Page) Limit() int {
	return pg.PerPage
}

func (pg Page) HasNext() bool {
	return pg.Number < pg.NumPages
}

func (pg Page) HasPrevious() bool {
	return pg.Number > 1
}

func (pg Page) HasOtherPages() bool {
	return pg.HasNext() || pg.HasPrevious()
}

func (pg Page) NextNumber() int {
	if !pg.HasNext() {
		return pg.Number
	}
	return pg.Number + 1
}

func (pg Page) PreviousNumber() int {
	if !pg.HasPrevious() {
		return pg.Number
	}
	return pg.Number - 1
}

// StartIndex is the 1-based index of the first item on the page, 0 when empty.
func (pg Page) StartIndex() int64 {
	if pg.Count == 0 {
		return 0
	}
	return int64(pg.Offset()) + 1
}

// EndIndex is the 1-based index of the last item on the page.
func (pg Page) EndIndex() int64 {
	end := int64(pg.Offset() + pg.PerPage)
	if end > pg.Count {
		return pg.Count
	}
	return end
}

// Range lists every page number, for templates.
func (pg Page) Range() []int {
	r := make([]int, pg.NumPages)
	for i := range r {
		r[i] = i + 1
	}
	return r
}

// Slice returns the items of pg from an in-memory collection.
func Slice[T any](items []T, pg Page) []T {
	start := pg.Offset()
	if start >= len(items) {
		return nil
	}
	end := start + pg.PerPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
