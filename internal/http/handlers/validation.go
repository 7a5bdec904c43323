package handlers

import (
	"github.com/rogerio-castellano/product-store/internal/models"
)

type ProductValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

// validateProduct checks the request and returns the parsed quantity.
func validateProduct(p ProductRequest) (int, []ProductValidationError) {
	errs := []ProductValidationError{}
	quantity, err := models.ParseQuantity(quantityText(p.Quantity))
	if err != nil {
		errs = append(errs, ProductValidationError{Field: "Quantity", Description: err.Error()})
	}
	return quantity, errs
}
