package sheet

import (
	"slices"
	"testing"
)

const spanishCsv = `id;sku;nombre;categoría;marca;nivel;año;imágenes;precio;stock
1;P1;Paleta Vertex;Paletas;Bullpadel;Avanzado;2025;a.jpg|b.jpg;$90.000;3
2;B1; Pelotas x3 ;Pelotas;Head;;;c.jpg;$4.500;12
3;;separador;;;;;;;
`

func TestDecodeCSVSpanishHeaders(t *testing.T) {
	products, err := DecodeCSV([]byte(spanishCsv))
	if err != nil {
		t.Fatal(err)
	}
	if len(products) != 3 {
		t.Fatalf("got %d rows, want 3", len(products))
	}

	p := products[0]
	if p.Id != 1 || p.Sku != "P1" || p.Name != "Paleta Vertex" {
		t.Errorf("row = %+v", p)
	}
	if p.Category != "Paletas" || p.Brand != "Bullpadel" || p.Level != "Avanzado" || p.Year != "2025" {
		t.Errorf("accented headers not recognized: %+v", p)
	}
	if !slices.Equal(p.Images, []string{"a.jpg", "b.jpg"}) {
		t.Errorf("images = %v", p.Images)
	}
	if p.Price != "$90.000" {
		t.Errorf("price = %q", p.Price)
	}
	if stock, ok := p.Stock.(string); !ok || stock != "3" {
		t.Errorf("stock = %v (%T)", p.Stock, p.Stock)
	}

	if products[1].Name != "Pelotas x3" {
		t.Errorf("cells should be trimmed, got %q", products[1].Name)
	}
	if products[2].Sku != "" {
		t.Errorf("empty sku must pass through, got %q", products[2].Sku)
	}
}

func TestDecodeCSVCommaSeparatedEnglishHeaders(t *testing.T) {
	data := "sku,name,category,brand,price,stock\nG1,Grip Pro,Accesorios,Nox,$1.200,40\n"
	products, err := DecodeCSV([]byte(data))
	if err != nil {
		t.Fatal(err)
	}
	if len(products) != 1 {
		t.Fatalf("got %d rows, want 1", len(products))
	}
	p := products[0]
	if p.Sku != "G1" || p.Category != "Accesorios" || p.Brand != "Nox" {
		t.Errorf("row = %+v", p)
	}
	if p.Id != 1 {
		t.Errorf("row without id column should get its position, got %d", p.Id)
	}
}

func TestDecodeCSVIgnoresUnknownColumns(t *testing.T) {
	data := "sku,nombre,notas internas\nP1,Paleta,no publicar\n"
	products, err := DecodeCSV([]byte(data))
	if err != nil {
		t.Fatal(err)
	}
	if products[0].Name != "Paleta" {
		t.Errorf("row = %+v", products[0])
	}
}

func TestDecodeJSONArray(t *testing.T) {
	data := `[
		{"id": 7, "sku": "P1", "nombre": "Paleta Vertex", "categoría": "Paletas", "marca": "Bullpadel", "año": 2025, "precio": 90000, "stock": 3},
		{"sku": "B1", "nombre": "Pelotas", "categoría": "Pelotas", "imágenes": ["c.jpg", " "], "precio": "$4.500", "stock": "12"}
	]`
	products, err := DecodeJSON([]byte(data))
	if err != nil {
		t.Fatal(err)
	}
	if len(products) != 2 {
		t.Fatalf("got %d rows, want 2", len(products))
	}
	p := products[0]
	if p.Id != 7 || p.Year != "2025" || p.Price != "90000" {
		t.Errorf("numeric cells not converted: %+v", p)
	}
	if stock, ok := p.Stock.(float64); !ok || stock != 3 {
		t.Errorf("stock = %v (%T)", p.Stock, p.Stock)
	}
	if !slices.Equal(products[1].Images, []string{"c.jpg"}) {
		t.Errorf("images = %v", products[1].Images)
	}
	if products[1].Id != 2 {
		t.Errorf("fallback id = %d, want 2", products[1].Id)
	}
}

func TestDecodeJSONWrapperObject(t *testing.T) {
	data := `{"products": [{"sku": "P1", "nombre": "Paleta"}]}`
	products, err := DecodeJSON([]byte(data))
	if err != nil {
		t.Fatal(err)
	}
	if len(products) != 1 || products[0].Sku != "P1" {
		t.Fatalf("got %+v", products)
	}
}

func TestDecodeSniffsFormat(t *testing.T) {
	fromJson, err := Decode([]byte("\n  [{\"sku\": \"A\"}]"))
	if err != nil || len(fromJson) != 1 {
		t.Fatalf("json payload: %v %v", fromJson, err)
	}
	fromCsv, err := Decode([]byte("sku\nA\n"))
	if err != nil || len(fromCsv) != 1 {
		t.Fatalf("csv payload: %v %v", fromCsv, err)
	}
	if _, err := Decode([]byte("   ")); err == nil {
		t.Error("blank payload should fail")
	}
	if _, err := Decode([]byte("[{broken")); err == nil {
		t.Error("malformed json should fail")
	}
}
