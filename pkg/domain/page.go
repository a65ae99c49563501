package domain

// ResultPage is one immutable page of records plus pagination metadata.
// Total and Pages always describe the filtered set before slicing, so page
// boundaries look identical no matter which store produced the records.
type ResultPage struct {
	Items   []Record `json:"items"`
	Page    int      `json:"page"`
	PerPage int      `json:"per_page"`
	Total   int      `json:"total"`
	Pages   int      `json:"pages"`
	HasNext bool     `json:"has_next"`
	HasPrev bool     `json:"has_prev"`
}

// NewResultPage builds the page metadata for a slice of items taken from a
// filtered set of size total at the given page/perPage position.
func NewResultPage(items []Record, total, page, perPage int) *ResultPage {
	if items == nil {
		items = []Record{}
	}
	pages := 0
	if total > 0 {
		pages = (total + perPage - 1) / perPage
	}
	return &ResultPage{
		Items:   items,
		Page:    page,
		PerPage: perPage,
		Total:   total,
		Pages:   pages,
		HasNext: (page-1)*perPage+perPage < total,
		HasPrev: page > 1,
	}
}
