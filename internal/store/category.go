package store

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/tasktimer/internal/model"
)

// Category names one of the two disjoint task collections.
type Category string

const (
	CategoryCurrent Category = "current"
	CategoryArchive Category = "archive"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryCurrent, CategoryArchive:
		return true
	default:
		return false
	}
}

func ParseCategory(raw string) (Category, error) {
	c := Category(strings.TrimSpace(raw))
	if !c.IsValid() {
		return "", fmt.Errorf("%w: unknown task type %q (current, archive)", model.ErrInvalidFormat, raw)
	}
	return c, nil
}
