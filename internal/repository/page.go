package repository

import (
	"strings"

	"github.com/movieguesser/movie-service/internal/http/dtos"
)

const (
	DefaultPage          = 1
	DefaultLimit         = 10
	DefaultSortBy        = "created_at"
	DefaultSortDirection = "desc"
)

// sortableColumns is the set of movie columns a caller may order by. Sort and
// Direction come straight from query parameters and end up in an ORDER BY
// clause, so anything outside this set falls back to the default.
var sortableColumns = map[string]bool{
	"id":         true,
	"tmdb_id":    true,
	"title":      true,
	"year":       true,
	"rating":     true,
	"created_at": true,
	"updated_at": true,
}

// getPaginationInfo fills paging defaults, coerces Sort and Direction to the
// whitelist, and computes the row offset for the requested page.
func getPaginationInfo(query dtos.APIPagingDto) (dtos.APIPagingDto, int) {
	if query.Page < 1 {
		query.Page = DefaultPage
	}
	if query.Limit < 1 {
		query.Limit = DefaultLimit
	}

	query.Sort = strings.ToLower(query.Sort)
	if !sortableColumns[query.Sort] {
		query.Sort = DefaultSortBy
	}

	query.Direction = strings.ToLower(query.Direction)
	if query.Direction != "asc" && query.Direction != "desc" {
		query.Direction = DefaultSortDirection
	}

	offset := query.Limit * (query.Page - 1)
	return query, offset
}

func getPagingInfo(query dtos.APIPagingDto, count int) dtos.PagingInfo {
	hasNextPage := query.Page*query.Limit < count

	return dtos.PagingInfo{
		TotalCount:  int64(count),
		HasNextPage: hasNextPage,
		Page:        query.Page,
	}
}
