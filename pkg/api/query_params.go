package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/jcallister/backdesk/pkg/domain"
)

// parseQuerySpec builds a QuerySpec from list-endpoint query parameters.
// filterKeys names the parameters that become equality filters; every
// other known parameter (page, per_page, search, sort, order) maps onto
// the spec directly. Defaults apply only to absent parameters; an
// explicit out-of-range value reaches the engine and is rejected there,
// never silently corrected.
func parseQuerySpec(r *http.Request, defaultSort string, defaultDir domain.SortDirection, filterKeys ...string) (domain.QuerySpec, error) {
	q := r.URL.Query()

	spec := domain.QuerySpec{
		Search:        q.Get("search"),
		SortField:     defaultSort,
		SortDirection: defaultDir,
		Page:          1,
		PerPage:       domain.DefaultPerPage,
	}

	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return spec, fmt.Errorf("'page' must be an integer")
		}
		spec.Page = page
	}
	if raw := q.Get("per_page"); raw != "" {
		perPage, err := strconv.Atoi(raw)
		if err != nil {
			return spec, fmt.Errorf("'per_page' must be an integer")
		}
		spec.PerPage = perPage
	}
	if sort := q.Get("sort"); sort != "" {
		spec.SortField = sort
	}
	if order := q.Get("order"); order != "" {
		spec.SortDirection = domain.SortDirection(order)
	}

	for _, key := range filterKeys {
		if value := q.Get(key); value != "" {
			if spec.Filters == nil {
				spec.Filters = make(map[string]interface{})
			}
			spec.Filters[key] = value
		}
	}

	return spec, nil
}
