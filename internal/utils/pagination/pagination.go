// Package pagination parses and renders page/limit/sort query parameters.
package pagination

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

type Pagination struct {
	Page   int
	Limit  int
	Offset int
	Total  int64
}

// ParseFromRequest reads page and limit from the query string. Page is at
// least 1 and limit is clamped to [1, MaxLimit].
func ParseFromRequest(c *fiber.Ctx) Pagination {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(DefaultLimit)))
	if err != nil || limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Pagination{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// Response creates a standardized paginated payload.
func Response(p Pagination, data interface{}) fiber.Map {
	totalPages := p.Total / int64(p.Limit)
	if p.Total%int64(p.Limit) > 0 {
		totalPages++
	}

	return fiber.Map{
		"data": data,
		"pagination": fiber.Map{
			"page":         p.Page,
			"limit":        p.Limit,
			"total":        p.Total,
			"total_pages":  totalPages,
			"has_next":     int64(p.Page) < totalPages,
			"has_previous": p.Page > 1,
		},
	}
}

// Sort is a validated sort directive.
type Sort struct {
	Field string
	Order string // "ASC" or "DESC"
}

// ParseSort reads sortBy and sortOrder from the query string. Fields not
// in the whitelist fall back to defaultField; any order other than asc
// means descending.
func ParseSort(c *fiber.Ctx, validFields []string, defaultField string) Sort {
	field := c.Query("sortBy", defaultField)
	valid := false
	for _, f := range validFields {
		if f == field {
			valid = true
			break
		}
	}
	if !valid {
		field = defaultField
	}

	order := "DESC"
	if strings.EqualFold(c.Query("sortOrder"), "asc") {
		order = "ASC"
	}
	return Sort{Field: field, Order: order}
}

// OrderClause renders the sort as a SQL ORDER BY expression. Field comes
// from a whitelist, never raw user input.
func (s Sort) OrderClause() string {
	return s.Field + " " + s.Order
}
