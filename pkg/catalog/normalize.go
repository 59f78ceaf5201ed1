package catalog

import (
	"math"
	"strconv"
	"strings"

	"github.com/GastonArthur/Catalogo-Mayorista/pkg/types"
)

// Normalize turns raw sheet rows into catalog products. Every row survives,
// only the stock cell is coerced; rows without a usable SKU are kept so a
// later sheet edit can revive them, the filter stages hide them.
func Normalize(raw []types.RawProduct) []types.Product {
	products := make([]types.Product, len(raw))
	for i, r := range raw {
		products[i] = types.Product{
			Id:       r.Id,
			Sku:      r.Sku,
			Name:     r.Name,
			Category: r.Category,
			Brand:    r.Brand,
			Level:    r.Level,
			Year:     r.Year,
			Images:   r.Images,
			Price:    r.Price,
			Stock:    CoerceStock(r.Stock),
		}
	}
	return products
}

// CoerceStock maps whatever the sheet put in the stock cell to a finite,
// non-negative quantity. Anything unusable counts as zero, never as an
// error: a typo in one cell must not take down the whole catalog.
func CoerceStock(v any) float64 {
	switch stock := v.(type) {
	case nil:
		return 0
	case float64:
		return clampStock(stock)
	case float32:
		return clampStock(float64(stock))
	case int:
		return clampStock(float64(stock))
	case int32:
		return clampStock(float64(stock))
	case int64:
		return clampStock(float64(stock))
	case uint:
		return float64(stock)
	case uint64:
		return float64(stock)
	case string:
		trimmed := strings.TrimSpace(stock)
		if trimmed == "" {
			return 0
		}
		// the sheet is in spanish, decimals arrive as "1,5"
		parsed, err := strconv.ParseFloat(strings.ReplaceAll(trimmed, ",", "."), 64)
		if err != nil {
			return 0
		}
		return clampStock(parsed)
	default:
		return 0
	}
}

func clampStock(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
