package services

import "strconv"

// DefaultPageSize is the number of posts on one listing page.
const DefaultPageSize = 10

// Page holds the pagination state for rendering one slice of an ordered
// result set.
type Page struct {
	Number      int
	TotalPages  int
	HasNext     bool
	HasPrevious bool
	NextNumber  int
	PrevNumber  int
}

// ResolvePage turns a raw "page" query parameter into a safe page. A
// missing or non-numeric value falls back to the first page; a number
// below range clamps to the first page and one above range clamps to the
// last. An empty result set still resolves to a single empty page, so the
// caller never receives an error.
func ResolvePage(raw string, totalItems, pageSize int) Page {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	totalPages := (totalItems + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	number, err := strconv.Atoi(raw)
	if err != nil || number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	return Page{
		Number:      number,
		TotalPages:  totalPages,
		HasNext:     number < totalPages,
		HasPrevious: number > 1,
		NextNumber:  number + 1,
		PrevNumber:  number - 1,
	}
}

// Offset returns the item offset of the page for a LIMIT/OFFSET query.
func (p Page) Offset(pageSize int) int {
	return (p.Number - 1) * pageSize
}
