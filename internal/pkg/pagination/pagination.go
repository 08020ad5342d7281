package pagination

import (
	"errors"
	"strconv"
)

// Params represents pagination parameters
type Params struct {
	Page   int `json:"page"`
	Limit  int `json:"limit"`
	Offset int `json:"-"`
}

// DefaultLimit is the default number of items per page
const DefaultLimit = 10

// MaxLimit is the maximum number of items per page
const MaxLimit = 100

var (
	ErrInvalidPage  = errors.New("invalid page number")
	ErrInvalidLimit = errors.New("invalid limit value")
)

// Parse builds Params from raw query values. Non-numeric input is
// rejected rather than silently defaulted.
func Parse(pageStr, limitStr string) (*Params, error) {
	page := 1
	if pageStr != "" {
		n, err := strconv.Atoi(pageStr)
		if err != nil {
			return nil, ErrInvalidPage
		}
		page = n
	}

	limit := DefaultLimit
	if limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil {
			return nil, ErrInvalidLimit
		}
		limit = n
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return &Params{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}, nil
}
