package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/rogerio-castellano/product-store/internal/http/middleware"
	"github.com/rogerio-castellano/product-store/internal/repo"
)

// CreateProductHandler godoc
// @Summary Add a product
// @Description Inserts a product. Send "Prefer: respond-async" to insert in the background.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body ProductRequest true "Product to add"
// @Param Prefer header string false "respond-async"
// @Success 201 {object} ProductResponse
// @Success 202 {object} AcceptedResult
// @Failure 400 {array} ProductValidationError
// @Failure 500 {string} string "Internal error"
// @Router /products [post]
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	quantity, validationErrors := validateProduct(req)
	if len(validationErrors) > 0 {
		respond(w, http.StatusBadRequest, validationErrors)
		return
	}

	if wantsAsync(r) {
		log.Printf("%s queued insert of %q", middleware.Subject(r), req.Name)
		productService.InsertAsync(req.Name, quantity)
		respond(w, http.StatusAccepted, AcceptedResult{Message: "insert accepted"})
		return
	}

	created, err := productService.Insert(r.Context(), req.Name, quantity)
	if err != nil {
		log.Printf("could not create product %q: %v", req.Name, err)
		http.Error(w, "could not create product", http.StatusInternalServerError)
		return
	}

	log.Printf("%s created product %d %q", middleware.Subject(r), created.ID, created.Name)
	respond(w, http.StatusCreated, toResponse(created))
}

// GetProductsHandler godoc
// @Summary List products
// @Description Lists every product, or only those whose name starts with prefix.
// @Tags products
// @Produce json
// @Param prefix query string false "Name prefix, case-insensitive"
// @Success 200 {array} ProductResponse
// @Failure 500 {string} string "Internal error"
// @Router /products [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if query.Has("prefix") {
		found, err := productService.FindByNamePrefix(r.Context(), query.Get("prefix"))
		if err != nil {
			log.Printf("could not search products: %v", err)
			http.Error(w, "could not search products", http.StatusInternalServerError)
			return
		}
		respond(w, http.StatusOK, toResponses(found))
		return
	}

	products, err := productService.ListAll(r.Context())
	if err != nil {
		log.Printf("could not fetch products: %v", err)
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, toResponses(products))
}

// DeleteProductsHandler godoc
// @Summary Delete products by name
// @Description Deletes every product whose name equals name, or starts with it when match=prefix.
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param name query string true "Product name"
// @Param match query string false "exact (default) or prefix"
// @Param Prefer header string false "respond-async"
// @Success 200 {object} DeleteResult
// @Success 202 {object} AcceptedResult
// @Failure 400 {string} string "Invalid input"
// @Failure 500 {string} string "Internal error"
// @Router /products [delete]
func DeleteProductsHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if !query.Has("name") {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	m := repo.NameMatch{Name: query.Get("name")}
	switch strings.ToLower(query.Get("match")) {
	case "", "exact":
	case "prefix":
		m.Prefix = true
	default:
		http.Error(w, "match must be 'exact' or 'prefix'", http.StatusBadRequest)
		return
	}

	if m.Prefix && m.Name == "" {
		http.Error(w, repo.ErrEmptyMatch.Error(), http.StatusBadRequest)
		return
	}

	if wantsAsync(r) {
		log.Printf("%s queued delete of %q", middleware.Subject(r), m.Name)
		productService.DeleteAsync(m)
		respond(w, http.StatusAccepted, AcceptedResult{Message: "delete accepted"})
		return
	}

	deleted, err := productService.Delete(r.Context(), m)
	if err != nil {
		if errors.Is(err, repo.ErrEmptyMatch) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("could not delete products named %q: %v", m.Name, err)
		http.Error(w, "could not delete products", http.StatusInternalServerError)
		return
	}

	log.Printf("%s deleted %d product(s) matching %q", middleware.Subject(r), deleted, m.Name)
	respond(w, http.StatusOK, DeleteResult{Deleted: deleted})
}
