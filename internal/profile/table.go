package profile

import (
	"math"
	"sort"
)

// AllRows as a page size shows every row on one page.
const AllRows = -1

// DefaultRowsPerPage is the initial page size of the table.
const DefaultRowsPerPage = 5

// RowsPerPageOptions are the sizes offered by the table footer.
var RowsPerPageOptions = []int{5, 10, 25, AllRows}

// Row is a profile projected for display. Index is its storage position and
// is what edit and delete actions refer to.
type Row struct {
	Index int
	Profile
}

// TablePage is one rendered page of the table.
type TablePage struct {
	Rows        []Row
	EmptyRows   int
	Count       int
	Page        int
	RowsPerPage int
}

// TableState is the pagination position of a table.
type TableState struct {
	Page        int
	RowsPerPage int
}

func NewTableState() TableState {
	return TableState{Page: 0, RowsPerPage: DefaultRowsPerPage}
}

func (s TableState) WithPage(page int) TableState {
	if page < 0 {
		page = 0
	}
	s.Page = page
	return s
}

// WithRowsPerPage changes the page size and goes back to the first page.
func (s TableState) WithRowsPerPage(n int) TableState {
	s.RowsPerPage = n
	s.Page = 0
	return s
}

func (s TableState) Apply(profiles []Profile) TablePage {
	return Paginate(profiles, s.Page, s.RowsPerPage)
}

// Paginate sorts profiles by name and returns the requested page. A page
// size of zero or less shows every row.
func Paginate(profiles []Profile, page, rowsPerPage int) TablePage {
	if page < 0 {
		page = 0
	}

	rows := make([]Row, len(profiles))
	for i, p := range profiles {
		rows[i] = Row{Index: i, Profile: p}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Name < rows[j].Name
	})

	result := TablePage{
		Count:       len(rows),
		Page:        page,
		RowsPerPage: rowsPerPage,
	}
	if rowsPerPage <= 0 {
		result.Rows = rows
		return result
	}

	// page*rowsPerPage is only computed when it cannot pass the row count.
	total := len(rows)
	start := total
	if page <= total/rowsPerPage {
		start = page * rowsPerPage
	}
	end := start + min(rowsPerPage, total-start)
	result.Rows = rows[start:end]

	if page > 0 {
		result.EmptyRows = fillerRows(page, rowsPerPage, total)
	}
	return result
}

// fillerRows is max(0, (page+1)*rowsPerPage-total), saturating instead of
// overflowing for huge pages.
func fillerRows(page, rowsPerPage, total int) int {
	if page >= math.MaxInt/rowsPerPage {
		return math.MaxInt - total
	}
	return max(0, (page+1)*rowsPerPage-total)
}
