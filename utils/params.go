package utils

import (
	"net/http"
	"strconv"
)

type QueryOptions struct {
	Page      int
	Limit     int
	SortField string
	SortOrder int // 1 ascending, -1 descending
}

func ParseQueryOptions(r *http.Request, defaultSort string) QueryOptions {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}

	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 {
		limit = 10
	}

	sortField := q.Get("sortBy")
	if sortField == "" {
		sortField = q.Get("sortField")
	}
	if sortField == "" {
		sortField = defaultSort
	}

	order := 1
	switch q.Get("order") {
	case "desc":
		order = -1
	}
	if q.Get("sortDirection") == "desc" {
		order = -1
	}

	return QueryOptions{
		Page:      page,
		Limit:     limit,
		SortField: sortField,
		SortOrder: order,
	}
}

func (o QueryOptions) Skip() int {
	return (o.Page - 1) * o.Limit
}
