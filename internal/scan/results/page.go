package results

import "github.com/xw1nchester/dealscan-backend/internal/scan"

const DefaultPageSize = 10

// Page is one slice of a sorted result set. StartIndex and EndIndex are 1-based and
// inclusive, both are 0 for an empty page.
type Page struct {
	Results    []scan.Result `json:"results"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	TotalPages int           `json:"totalPages"`
	StartIndex int           `json:"startIndex"`
	EndIndex   int           `json:"endIndex"`
}

// Paginate slices items into pages of pageSize. Pages past the end are empty.
// Non-positive page and pageSize values fall back to 1 and DefaultPageSize.
func Paginate(items []scan.Result, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page <= 0 {
		page = 1
	}

	total := len(items)
	p := Page{
		Results:    []scan.Result{},
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: (total + pageSize - 1) / pageSize,
	}

	if page > p.TotalPages {
		return p
	}

	start := (page - 1) * pageSize

	end := min(start+pageSize, total)

	p.Results = items[start:end]
	p.StartIndex = start + 1
	p.EndIndex = end

	return p
}
