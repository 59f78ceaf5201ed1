package server

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/gorilla/schema"

	"github.com/GastonArthur/Catalogo-Mayorista/pkg/types"
)

// SearchRequest is the wire form of a storefront query. GET requests carry
// it in the query string, POST requests as a JSON body.
type SearchRequest struct {
	types.FilterState
	Page     int `json:"page" schema:"page"`
	PageSize int `json:"pageSize" schema:"size,default:40"`
}

func makeBaseSearchRequest() *SearchRequest {
	return &SearchRequest{
		FilterState: types.DefaultFilterState(),
		Page:        0,
		PageSize:    40,
	}
}

func GetQueryFromRequest(r *http.Request) (*SearchRequest, error) {
	sr := makeBaseSearchRequest()
	if r.Method == http.MethodGet {
		return sr, queryFromRequestQuery(r.URL.Query(), sr)
	}
	return sr, json.NewDecoder(r.Body).Decode(sr)
}

func queryFromRequestQuery(query url.Values, result *SearchRequest) error {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	return decoder.Decode(result, query)
}
