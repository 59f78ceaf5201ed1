package sheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/GastonArthur/Catalogo-Mayorista/pkg/types"
)

// column names seen across the sheet exports, mapped to their canonical
// field. The sheet is maintained in spanish, the gateways sometimes
// translate headers.
var columnAliases = map[string]string{
	"id":        "id",
	"sku":       "sku",
	"codigo":    "sku",
	"nombre":    "name",
	"producto":  "name",
	"name":      "name",
	"categoria": "category",
	"category":  "category",
	"marca":     "brand",
	"brand":     "brand",
	"nivel":     "level",
	"level":     "level",
	"ano":       "year",
	"anio":      "year",
	"year":      "year",
	"imagenes":  "images",
	"imagen":    "images",
	"images":    "images",
	"image":     "images",
	"precio":    "price",
	"price":     "price",
	"stock":     "stock",
	"cantidad":  "stock",
}

var accentFolds = map[rune]rune{
	'á': 'a',
	'é': 'e',
	'í': 'i',
	'ó': 'o',
	'ú': 'u',
	'ü': 'u',
	'ñ': 'n',
}

func canonicalColumn(header string) string {
	folded := make([]rune, 0, len(header))
	for _, r := range strings.ToLower(strings.TrimSpace(header)) {
		if replacement, ok := accentFolds[r]; ok {
			r = replacement
		}
		folded = append(folded, r)
	}
	return columnAliases[string(folded)]
}

// DecodeCSV parses a sheet export in CSV form. The first row is the
// header, unknown columns are ignored. Both comma and semicolon exports
// exist in the wild, the separator is sniffed from the header row.
func DecodeCSV(data []byte) ([]types.RawProduct, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffSeparator(data)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error parsing sheet csv: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("sheet csv has no header row")
	}
	columns := make([]string, len(records[0]))
	for i, header := range records[0] {
		columns[i] = canonicalColumn(header)
	}
	products := make([]types.RawProduct, 0, len(records)-1)
	for i, record := range records[1:] {
		fields := map[string]any{}
		for col, value := range record {
			if col >= len(columns) || columns[col] == "" {
				continue
			}
			fields[columns[col]] = strings.TrimSpace(value)
		}
		products = append(products, rawFromFields(fields, uint(i+1)))
	}
	return products, nil
}

// DecodeJSON parses a sheet-to-api gateway response, either a plain array
// of rows or an object wrapping them under "products".
func DecodeJSON(data []byte) ([]types.RawProduct, error) {
	rows := []map[string]any{}
	if err := sonic.Unmarshal(data, &rows); err != nil {
		wrapper := struct {
			Products []map[string]any `json:"products"`
		}{}
		if wrapErr := sonic.Unmarshal(data, &wrapper); wrapErr != nil || wrapper.Products == nil {
			return nil, fmt.Errorf("error parsing sheet json: %w", err)
		}
		rows = wrapper.Products
	}
	products := make([]types.RawProduct, 0, len(rows))
	for i, row := range rows {
		fields := map[string]any{}
		for key, value := range row {
			if canonical := canonicalColumn(key); canonical != "" {
				fields[canonical] = value
			}
		}
		products = append(products, rawFromFields(fields, uint(i+1)))
	}
	return products, nil
}

// rawFromFields builds a row from canonicalized cells. Rows without an id
// column get their sheet position, stable enough since snapshots always
// replace wholesale.
func rawFromFields(fields map[string]any, fallbackId uint) types.RawProduct {
	return types.RawProduct{
		Id:       parseId(fields["id"], fallbackId),
		Sku:      stringField(fields, "sku"),
		Name:     stringField(fields, "name"),
		Category: stringField(fields, "category"),
		Brand:    stringField(fields, "brand"),
		Level:    stringField(fields, "level"),
		Year:     stringField(fields, "year"),
		Images:   imageList(fields["images"]),
		Price:    stringField(fields, "price"),
		Stock:    fields["stock"],
	}
}

func stringField(fields map[string]any, key string) string {
	switch v := fields[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		// gateways hand numeric cells over as numbers, years included
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

func parseId(v any, fallback uint) uint {
	switch id := v.(type) {
	case string:
		parsed, err := strconv.ParseUint(strings.TrimSpace(id), 10, 64)
		if err == nil && parsed > 0 {
			return uint(parsed)
		}
	case float64:
		if id > 0 {
			return uint(id)
		}
	}
	return fallback
}

// imageList splits the images cell. The sheet uses one cell with pipe or
// comma separated links, the gateways sometimes deliver a real array.
func imageList(v any) []string {
	switch images := v.(type) {
	case nil:
		return nil
	case []any:
		out := make([]string, 0, len(images))
		for _, image := range images {
			if s, ok := image.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	case string:
		separator := ","
		if strings.Contains(images, "|") {
			separator = "|"
		}
		parts := strings.Split(images, separator)
		out := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	default:
		return nil
	}
}

func sniffSeparator(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte(";")) > bytes.Count(line, []byte(",")) {
		return ';'
	}
	return ','
}
