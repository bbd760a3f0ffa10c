package profile

// RowResponse is a table row as sent to the client.
type RowResponse struct {
	Index int `json:"index"`
	Profile
}

type TableResponse struct {
	Rows               []RowResponse `json:"rows"`
	EmptyRows          int           `json:"emptyRows"`
	Count              int           `json:"count"`
	Page               int           `json:"page"`
	RowsPerPage        int           `json:"rowsPerPage"`
	RowsPerPageOptions []int         `json:"rowsPerPageOptions"`
}

func ToTableResponse(page TablePage) TableResponse {
	rows := make([]RowResponse, 0, len(page.Rows))
	for _, r := range page.Rows {
		rows = append(rows, RowResponse{Index: r.Index, Profile: r.Profile})
	}
	return TableResponse{
		Rows:               rows,
		EmptyRows:          page.EmptyRows,
		Count:              page.Count,
		Page:               page.Page,
		RowsPerPage:        page.RowsPerPage,
		RowsPerPageOptions: RowsPerPageOptions,
	}
}
