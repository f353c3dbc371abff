package dtos

// APIPagingDto carries list pagination parameters parsed from the query string.
type APIPagingDto struct {
	Page      int    `json:"page"`
	Limit     int    `json:"limit"`
	Sort      string `json:"sort"`
	Direction string `json:"direction"`
}

// PagingInfo describes the page that was actually served.
type PagingInfo struct {
	TotalCount  int64 `json:"total_count"`
	HasNextPage bool  `json:"has_next_page"`
	Page        int   `json:"page"`
}
