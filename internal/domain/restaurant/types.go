package restaurant

import "errors"

var (
	ErrRestaurantNotFound = errors.New("Restaurant not found") //nolint:staticcheck // surfaced verbatim to clients
	ErrDishNotFound       = errors.New("Dish not found")       //nolint:staticcheck // surfaced verbatim to clients
)

type SortBy string

const (
	SortByName        SortBy = "Name"
	SortByDescription SortBy = "Description"
	SortByCategory    SortBy = "Category"
)

type SortDirection string

const (
	SortAscending  SortDirection = "ASC"
	SortDescending SortDirection = "DESC"
)

// Query selects a page of restaurants. PageNumber is 1-based.
type Query struct {
	SearchPhrase  string
	SortBy        SortBy
	SortDirection SortDirection
	PageSize      int
	PageNumber    int
}

func (q Query) Offset() int {
	return q.PageSize * (q.PageNumber - 1)
}

type Page struct {
	Items           []*Restaurant
	TotalPages      int
	ItemsFrom       int
	ItemsTo         int
	TotalItemsCount int
}

func NewPage(items []*Restaurant, total int, q Query) *Page {
	from := q.Offset() + 1
	pages := 0
	if q.PageSize > 0 {
		pages = (total + q.PageSize - 1) / q.PageSize
	}
	return &Page{
		Items:           items,
		TotalPages:      pages,
		ItemsFrom:       from,
		ItemsTo:         from + q.PageSize - 1,
		TotalItemsCount: total,
	}
}
