package shared

import (
	"net/http"
	"strconv"
)

type Pagination struct {
	Page  int
	Limit int
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pages is the total page count for a result set of the given size.
func (p Pagination) Pages(total int) int {
	if total == 0 {
		return 0
	}
	return (total + p.Limit - 1) / p.Limit
}

func ParsePagination(r *http.Request, defaultLimit, maxLimit int) Pagination {
	page := 1
	limit := defaultLimit
	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			page = v
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	return Pagination{Page: page, Limit: limit}
}
