package controller

import "github.com/Raymond9734/customer-admin/internal/models"

// Retrieval is the remote operation a query resolves to
type Retrieval int

// Retrieval modes
const (
	RetrieveAll Retrieval = iota
	RetrieveSearch
	RetrieveFilter
)

func (r Retrieval) String() string {
	switch r {
	case RetrieveSearch:
		return "search"
	case RetrieveFilter:
		return "filter"
	default:
		return "list"
	}
}

type criterion int

const (
	criterionNone criterion = iota
	criterionSearch
	criterionFilter
)

// Default listing parameters
const (
	DefaultSortField = models.SortByLastName
	DefaultSortDir   = models.SortAsc
)

// PageSizes are the page sizes offered to the user
var PageSizes = []int{5, 10, 15, 20}

// Query is the listing state owned by a CustomerList
type Query struct {
	Page      int
	Size      int
	SortField models.SortField
	SortDir   models.SortDir
	Search    string
	Filter    models.AddressFilter

	lastChanged criterion
}

// NewQuery returns the initial listing query
func NewQuery(size int) Query {
	if size < 1 {
		size = models.DefaultPageSize
	}
	return Query{
		Page:      models.DefaultPage,
		Size:      size,
		SortField: DefaultSortField,
		SortDir:   DefaultSortDir,
	}
}

// Retrieval picks the remote operation for the query. The most recently
// changed criterion wins while it is non-empty; otherwise search text takes
// priority over the filter.
func (q Query) Retrieval() Retrieval {
	switch {
	case q.lastChanged == criterionSearch && q.Search != "":
		return RetrieveSearch
	case q.lastChanged == criterionFilter && !q.Filter.IsEmpty():
		return RetrieveFilter
	case q.Search != "":
		return RetrieveSearch
	case !q.Filter.IsEmpty():
		return RetrieveFilter
	default:
		return RetrieveAll
	}
}

// PageRequest converts the paging and ordering part of the query
func (q Query) PageRequest() models.PageRequest {
	return models.PageRequest{
		Page:    q.Page,
		Size:    q.Size,
		SortBy:  q.SortField,
		SortDir: q.SortDir,
	}
}

// sortBy applies a column selection: a new column sorts ascending, the
// current column toggles direction
func (q *Query) sortBy(field models.SortField) {
	if q.SortField == field {
		q.SortDir = q.SortDir.Flip()
		return
	}
	q.SortField = field
	q.SortDir = models.SortAsc
}

func (q *Query) setSearch(text string) {
	q.Search = text
	q.lastChanged = criterionSearch
	q.Page = 0
}

func (q *Query) setFilter(filter models.AddressFilter) {
	q.Filter = filter
	q.lastChanged = criterionFilter
	q.Page = 0
}

func (q *Query) clearCriteria() {
	q.Search = ""
	q.Filter = models.AddressFilter{}
	q.lastChanged = criterionNone
	q.Page = 0
}
