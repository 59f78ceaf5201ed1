package sheet

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/GastonArthur/Catalogo-Mayorista/pkg/types"
)

const defaultFetchTimeout = 30 * time.Second

// Source downloads the published sheet export. The owner maintains the
// catalog in a spreadsheet, the export link either serves CSV directly or
// JSON through a sheet-to-api gateway.
type Source struct {
	Url        string
	HttpClient *http.Client
}

func NewSource(url string) *Source {
	return &Source{
		Url:        url,
		HttpClient: &http.Client{Timeout: defaultFetchTimeout},
	}
}

// Fetch downloads and decodes the full product list. Any error leaves the
// caller's current snapshot alone, the fetch is retried on the next cycle.
func (s *Source) Fetch(ctx context.Context) ([]types.RawProduct, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.Url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating sheet request: %w", err)
	}
	resp, err := s.HttpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching sheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sheet returned status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading sheet response: %w", err)
	}
	return Decode(body)
}

// Decode sniffs the payload format from the first byte. The gateways
// answer JSON, a direct export link answers CSV.
func Decode(data []byte) ([]types.RawProduct, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, errors.New("empty sheet payload")
	}
	if trimmed[0] == '[' || trimmed[0] == '{' {
		return DecodeJSON(trimmed)
	}
	return DecodeCSV(data)
}
