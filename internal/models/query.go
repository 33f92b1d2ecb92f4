package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SortBy es el descriptor de orden de GET /products: {"id": "price", "desc": true}.
type SortBy struct {
	ID   string `json:"id"`
	Desc bool   `json:"desc"`
}

// PriceRange es un rango de precio con límites opcionales
type PriceRange struct {
	Min *float64
	Max *float64
}

// SearchSort es el orden por precio de la búsqueda
type SearchSort string

const (
	SortRelevance SearchSort = "relevance"
	SortPriceAsc  SearchSort = "asc"
	SortPriceDesc SearchSort = "desc"
)

// Page es una página de resultados junto con el total de coincidencias
type Page struct {
	Products []Product
	Total    int64
}

// TotalPages devuelve ceil(total/size)
func TotalPages(total int64, size int) int64 {
	if size <= 0 {
		return 0
	}
	pages := total / int64(size)
	if total%int64(size) != 0 {
		pages++
	}
	return pages
}

// Skip devuelve cuántos documentos saltar para la página indicada (base 1)
func Skip(page, size int) int64 {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		return 0
	}
	prev := int64(page - 1)
	if prev > math.MaxInt64/int64(size) {
		return math.MaxInt64
	}
	return prev * int64(size)
}

// ParsePriceRange interpreta "min,max". Cualquiera de los dos puede faltar:
// "10," es precio >= 10 y ",20" es precio <= 20. Devuelve nil si no hay límites.
func ParsePriceRange(raw string) (*PriceRange, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.SplitN(raw, ",", 2)
	var r PriceRange
	var err error
	if r.Min, err = parseBound(parts[0]); err != nil {
		return nil, err
	}
	if len(parts) == 2 {
		if r.Max, err = parseBound(parts[1]); err != nil {
			return nil, err
		}
	}

	if r.Min == nil && r.Max == nil {
		return nil, nil
	}
	if r.Min != nil && r.Max != nil && *r.Min > *r.Max {
		return nil, fmt.Errorf("price range %q: min is greater than max", raw)
	}
	return &r, nil
}

func parseBound(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("invalid price bound %q", s)
	}
	return &v, nil
}

// ParseSearchSort acepta "", "relevance", "asc" y "desc".
func ParseSearchSort(raw string) (SearchSort, error) {
	switch SearchSort(raw) {
	case "", SortRelevance:
		return SortRelevance, nil
	case SortPriceAsc, SortPriceDesc:
		return SearchSort(raw), nil
	default:
		return "", fmt.Errorf("invalid sort %q", raw)
	}
}

// campos del JSON que se pueden usar en sortBy.id
var sortableFields = map[string]bool{
	"_id":       true,
	"name":      true,
	"category":  true,
	"price":     true,
	"stock":     true,
	"featured":  true,
	"createdAt": true,
	"updatedAt": true,
}

// ParseSortBy decodifica el JSON de sortBy. Un id vacío significa sin orden.
func ParseSortBy(raw string) (SortBy, error) {
	var s SortBy
	if strings.TrimSpace(raw) == "" {
		return s, nil
	}
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return SortBy{}, fmt.Errorf("invalid sortBy: %w", err)
	}
	if s.ID != "" && !sortableFields[s.ID] {
		return SortBy{}, fmt.Errorf("invalid sortBy field %q", s.ID)
	}
	return s, nil
}
