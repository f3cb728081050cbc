package util

import (
	"math"
	"strconv"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

func Calculate(page, size int) (from, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	// from+size must stay representable.
	if maxPage := math.MaxInt/size - 1; page > maxPage {
		page = maxPage
	}
	from = (page - 1) * size
	return from, size
}

// Page reads page and size query values, falling back to the first page of
// DefaultPageSize items when they are missing or malformed.
func Page(pageStr, sizeStr string) (page, size, from int) {
	page = parseIntDefault(pageStr, 1)
	if page < 1 {
		page = 1
	}
	from, size = Calculate(page, parseIntDefault(sizeStr, DefaultPageSize))
	return from/size + 1, size, from
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
