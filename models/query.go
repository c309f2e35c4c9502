package models

import (
	"strings"
)

// ProductFilters narrows a product listing. Empty fields are ignored.
type ProductFilters struct {
	// Search matches name, sku or description as a case-insensitive substring.
	Search string
	// Category matches the category column exactly.
	Category string
}

// ListQuery is a parameterized statement ready to hand to the store.
type ListQuery struct {
	SQL  string
	Args []any
}

const baseListQuery = "SELECT * FROM products"

// BuildListQuery composes the listing statement for the given filters.
// User supplied values only ever travel in Args; SQL is built from constant fragments.
func BuildListQuery(filters ProductFilters) ListQuery {
	var (
		conditions []string
		args       []any
	)

	if search := strings.TrimSpace(filters.Search); search != "" {
		conditions = append(conditions, "(LOWER(name) LIKE ? OR LOWER(sku) LIKE ? OR LOWER(description) LIKE ?)")
		like := "%" + strings.ToLower(search) + "%"
		args = append(args, like, like, like)
	}
	if category := strings.TrimSpace(filters.Category); category != "" {
		conditions = append(conditions, "category = ?")
		args = append(args, category)
	}

	var sb strings.Builder
	sb.WriteString(baseListQuery)
	if len(conditions) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conditions, " AND "))
	}
	sb.WriteString(" ORDER BY name ASC")

	return ListQuery{SQL: sb.String(), Args: args}
}
