package server

// SearchResponse is the trailing summary line of a streamed search.
type SearchResponse struct {
	Duration  string `json:"duration"`
	Page      int    `json:"page"`
	PageSize  int    `json:"pageSize"`
	Start     int    `json:"start"`
	End       int    `json:"end"`
	TotalHits int    `json:"totalHits"`
	Sort      string `json:"sort,omitempty"`
}
