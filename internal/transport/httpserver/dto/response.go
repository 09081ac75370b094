package dto

import "video-research/internal/domain"

// ResultResponse is the JSON rendering of a workflow result set.
type ResultResponse struct {
	Workflow string             `json:"workflow"`
	Count    int                `json:"count"`
	Columns  []string           `json:"columns"`
	Rows     []domain.ReportRow `json:"rows"`
	Notice   string             `json:"notice,omitempty"`
}

// FromResultSet converts a domain.ResultSet to ResultResponse.
func FromResultSet(rs *domain.ResultSet) ResultResponse {
	cols := rs.Workflow.Columns()
	names := make([]string, len(cols))
	for i, col := range cols {
		names[i] = string(col)
	}

	rows := rs.Rows
	if rows == nil {
		rows = []domain.ReportRow{}
	}

	return ResultResponse{
		Workflow: string(rs.Workflow),
		Count:    len(rows),
		Columns:  names,
		Rows:     rows,
		Notice:   rs.Notice,
	}
}

// TableView is a result set flattened to text cells for the dashboard.
type TableView struct {
	Columns []string
	Rows    [][]string
	Count   int
	Notice  string
}

// ToTableView flattens rs using its workflow's column set.
func ToTableView(rs *domain.ResultSet) TableView {
	cols := rs.Workflow.Columns()

	view := TableView{
		Columns: make([]string, len(cols)),
		Rows:    make([][]string, 0, rs.Len()),
		Count:   rs.Len(),
		Notice:  rs.Notice,
	}
	for i, col := range cols {
		view.Columns[i] = string(col)
	}
	for i := range rs.Rows {
		cells := make([]string, len(cols))
		for j, col := range cols {
			cells[j] = rs.Rows[i].Cell(col)
		}
		view.Rows = append(view.Rows, cells)
	}

	return view
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}
