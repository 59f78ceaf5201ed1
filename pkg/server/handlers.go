package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/GastonArthur/Catalogo-Mayorista/pkg/common"
)

var (
	noSearches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalogo_searches_total",
		Help: "The total number of processed searches",
	})
	noFacetRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalogo_facets_total",
		Help: "The total number of facet derivations served",
	})
)

// Stream answers a search as json lines: one product per line for the
// requested page, a blank line, then a summary. The stage survivor counts
// travel in the x-pipeline header.
func (ws *WebServer) Stream(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder) error {
	s := time.Now()
	sr, err := GetQueryFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil
	}
	if !ws.Index.Loaded() {
		http.Error(w, "catalog not loaded yet", http.StatusServiceUnavailable)
		return nil
	}
	go noSearches.Inc()

	result, trace := ws.Index.Results(sr.FilterState)

	defaultHeaders(w, r, false, "20")
	w.Header().Set("x-pipeline", trace.String())
	w.WriteHeader(http.StatusOK)

	start := sr.PageSize * sr.Page
	end := start + sr.PageSize
	for i := start; i < end && i < len(result); i++ {
		if err := enc.Encode(result[i]); err != nil {
			return err
		}
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		return err
	}
	return enc.Encode(SearchResponse{
		Duration:  fmt.Sprintf("%v", time.Since(s)),
		Page:      sr.Page,
		PageSize:  sr.PageSize,
		Start:     start,
		End:       min(len(result), end),
		TotalHits: len(result),
		Sort:      string(sr.PriceOrder),
	})
}

// GetProducts answers a search as one JSON array, unpaged. The storefront
// grid renders the whole list at once.
func (ws *WebServer) GetProducts(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder) error {
	sr, err := GetQueryFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil
	}
	if !ws.Index.Loaded() {
		http.Error(w, "catalog not loaded yet", http.StatusServiceUnavailable)
		return nil
	}
	go noSearches.Inc()

	result, trace := ws.Index.Results(sr.FilterState)

	defaultHeaders(w, r, true, "20")
	w.Header().Set("x-pipeline", trace.String())
	w.WriteHeader(http.StatusOK)
	return enc.Encode(result)
}

// GetFacets returns the category and brand options for the selected
// filters. Only the category narrows the brand list.
func (ws *WebServer) GetFacets(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder) error {
	s := time.Now()
	sr, err := GetQueryFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil
	}
	if !ws.Index.Loaded() {
		http.Error(w, "catalog not loaded yet", http.StatusServiceUnavailable)
		return nil
	}
	go noFacetRequests.Inc()

	facets := ws.Index.Facets(sr.FilterState)

	defaultHeaders(w, r, true, "60")
	w.Header().Set("x-duration", fmt.Sprintf("%v", time.Since(s)))
	w.WriteHeader(http.StatusOK)
	return enc.Encode(facets)
}

func (ws *WebServer) GetProductBySku(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder) error {
	sku := r.PathValue("sku")
	product, ok := ws.Index.BySku(sku)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return nil
	}
	publicHeaders(w, r, true, "120")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(product)
}

func (ws *WebServer) ClientHandler() *http.ServeMux {
	srv := http.NewServeMux()

	srv.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		defaultHeaders(w, r, false, "0")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	srv.HandleFunc("/stream", common.JsonHandler(ws.Stream))
	srv.HandleFunc("/products", common.JsonHandler(ws.GetProducts))
	srv.HandleFunc("/facets", common.JsonHandler(ws.GetFacets))
	srv.HandleFunc("GET /by-sku/{sku}", common.JsonHandler(ws.GetProductBySku))

	return srv
}
