package handlers

import (
	"encoding/json"
	"strings"

	"github.com/rogerio-castellano/product-store/internal/models"
)

type ProductRequest struct {
	Name string `json:"name"`
	// Quantity accepts a JSON number or the raw text typed by the user.
	Quantity json.RawMessage `json:"quantity" swaggertype:"string" example:"12"`
}

type ProductResponse struct {
	Id       int    `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type DeleteResult struct {
	Deleted int `json:"deleted"`
}

type AcceptedResult struct {
	Message string `json:"message"`
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token string `json:"token"`
}

type ImportProductsResult struct {
	ImportedProductsCount int                      `json:"imported"`
	Errors                []ProductValidationError `json:"errors"`
}

func toResponse(p models.Product) ProductResponse {
	return ProductResponse{Id: p.ID, Name: p.Name, Quantity: p.Quantity}
}

func toResponses(products []models.Product) []ProductResponse {
	resp := make([]ProductResponse, len(products))
	for i, p := range products {
		resp[i] = toResponse(p)
	}
	return resp
}

// quantityText returns the user's quantity input as text, whether it was sent
// as a JSON string or a JSON number.
func quantityText(raw json.RawMessage) string {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return text
}
