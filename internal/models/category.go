package models

import "strings"

// NormalizeCategory se aplica a toda categoría que se escribe o se filtra
func NormalizeCategory(category string) string {
	return strings.ToLower(category)
}
