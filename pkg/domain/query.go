package domain

// SortDirection is the direction of a sort stage.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

const (
	// DefaultPerPage is used when a request does not specify a page size.
	DefaultPerPage = 20
	// MaxPerPage is the upper bound for a single page.
	MaxPerPage = 100
)

// QuerySpec is the normalized form of one list/search request: a free-text
// search term, equality filters, one sort directive and pagination bounds.
type QuerySpec struct {
	Search        string                 `json:"search,omitempty"`
	Filters       map[string]interface{} `json:"filters,omitempty"`
	SortField     string                 `json:"sort_field,omitempty"`
	SortDirection SortDirection          `json:"sort_direction,omitempty"`
	Page          int                    `json:"page"`
	PerPage       int                    `json:"per_page"`
}

// Normalize fills defaults and clamps PerPage into [1, MaxPerPage].
// Page is left alone so that Validate can reject nonsense values instead
// of silently computing negative offsets.
func (s *QuerySpec) Normalize() {
	if s.Page == 0 {
		s.Page = 1
	}
	if s.PerPage == 0 {
		s.PerPage = DefaultPerPage
	}
	if s.PerPage > MaxPerPage {
		s.PerPage = MaxPerPage
	}
	if s.SortDirection == "" {
		s.SortDirection = SortAsc
	}
}

// Validate checks the pagination bounds.
func (s *QuerySpec) Validate() error {
	if s.Page < 1 {
		return &InvalidSpecError{Reason: "page must be >= 1"}
	}
	if s.PerPage < 1 || s.PerPage > MaxPerPage {
		return &InvalidSpecError{Reason: "per_page must be between 1 and 100"}
	}
	if s.SortDirection != SortAsc && s.SortDirection != SortDesc {
		return &InvalidSpecError{Reason: "sort_direction must be asc or desc"}
	}
	return nil
}
