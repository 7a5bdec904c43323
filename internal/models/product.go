package models

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Product represents a row of the products table.
type Product struct {
	ID       int    `json:"id" db:"productid"`
	Name     string `json:"name" db:"productname"`
	Quantity int    `json:"quantity" db:"quantity"`
}

var (
	ErrQuantityRequired   = errors.New("quantity is required")
	ErrQuantityNotNumeric = errors.New("quantity must be a whole number")
	ErrQuantityNegative   = errors.New("quantity cannot be negative")
	ErrQuantityTooLarge   = errors.New("quantity is too large")
)

// MaxQuantity is the largest value the quantity column can hold.
const MaxQuantity = math.MaxInt32

// ParseQuantity converts user input into a quantity. Input is rejected when it
// is empty, not an integer, negative or larger than MaxQuantity.
func ParseQuantity(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrQuantityRequired
	}
	q, err := strconv.ParseInt(s, 10, 32)
	switch {
	case errors.Is(err, strconv.ErrRange) && strings.HasPrefix(s, "-"):
		return 0, ErrQuantityNegative
	case errors.Is(err, strconv.ErrRange):
		return 0, ErrQuantityTooLarge
	case err != nil:
		return 0, ErrQuantityNotNumeric
	case q < 0:
		return 0, ErrQuantityNegative
	}
	return int(q), nil
}
