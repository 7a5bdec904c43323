package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"

	handler "github.com/rogerio-castellano/product-store/internal/http/handlers"
)

func TestCreateProductHandler_Valid(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	w := createProduct(r, "Laptop", 1)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}

	var resp handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	if resp.Id == 0 {
		t.Errorf("expected an assigned id, got 0")
	}
	if resp.Name != "Laptop" {
		t.Errorf("expected name 'Laptop', got %v", resp.Name)
	}
	if resp.Quantity != 1 {
		t.Errorf("expected quantity 1, got %v", resp.Quantity)
	}
}

func TestCreateProductHandler_QuantityAsText(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	w := createProductJSON(r, `{"name": "Rice", "quantity": " 12 "}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}

	var resp handler.ProductResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Quantity != 12 {
		t.Errorf("expected quantity 12, got %d", resp.Quantity)
	}
}

func TestCreateProductHandler_InvalidQuantity(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	tests := []struct {
		name string
		body string
	}{
		{name: "Missing quantity", body: `{"name": "Mouse"}`},
		{name: "Empty quantity", body: `{"name": "Mouse", "quantity": ""}`},
		{name: "Non-numeric text", body: `{"name": "Mouse", "quantity": "ten"}`},
		{name: "Fractional number", body: `{"name": "Mouse", "quantity": 1.5}`},
		{name: "Negative number", body: `{"name": "Mouse", "quantity": -1}`},
		{name: "Boolean", body: `{"name": "Mouse", "quantity": true}`},
		{name: "Beyond column range", body: `{"name": "Mouse", "quantity": 3000000000}`},
		{name: "Beyond column range as text", body: `{"name": "Mouse", "quantity": "3000000000"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := createProductJSON(r, tt.body)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", w.Code)
			}

			var resp []handler.ProductValidationError
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("error decoding response: %v", err)
			}
			if len(resp) != 1 || !strings.EqualFold(resp[0].Field, "Quantity") {
				t.Errorf("expected one Quantity error, got %+v", resp)
			}
		})
	}

	_, all := getProducts(r, "")
	if len(all) != 0 {
		t.Errorf("expected no products to be stored, got %d", len(all))
	}
}

func TestCreateProductHandler_MalformedJSON(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	w := createProductJSON(r, `{Name: "Invalid" quantity: 100 "}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 Bad Request, got %d", w.Code)
	}

	expectedBody := "invalid input\n"
	if w.Body.String() != expectedBody {
		t.Errorf("expected response body %q, got %q", expectedBody, w.Body.String())
	}
}

func TestCreateProductHandler_Async(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	w := createProductJSON(r, `{"name": "Queued", "quantity": 2}`, "Prefer", "respond-async")
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202 Accepted, got %d", w.Code)
	}

	productService.Wait()

	_, all := getProducts(r, "")
	if len(all) != 1 || all[0].Name != "Queued" {
		t.Errorf("expected the queued product to be stored, got %+v", all)
	}
}

func TestInsertThenListReturnsFreshIDs(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	createProduct(r, "Phone", 1)
	createProduct(r, "Phone", 2)

	w, all := getProducts(r, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 products, got %d", len(all))
	}
	if all[0].Id == all[1].Id {
		t.Errorf("expected unique ids, got %d twice", all[0].Id)
	}
}

func TestGetProductsHandler_PrefixSearch(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	createProduct(r, "Product A", 1)
	createProduct(r, "Banana", 2)

	w, found := getProducts(r, "prefix=Pro")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	if len(found) != 1 || found[0].Name != "Product A" {
		t.Errorf("expected only 'Product A', got %+v", found)
	}

	if got := productService.SearchResults().Get(); len(got) != 1 || got[0].Name != "Product A" {
		t.Errorf("expected search results to be published, got %+v", got)
	}
}

func TestGetProductsHandler_EmptyPrefixListsAll(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	createProduct(r, "Product A", 1)
	createProduct(r, "Banana", 2)

	_, found := getProducts(r, "prefix=")
	if len(found) != 2 {
		t.Errorf("expected 2 products, got %d", len(found))
	}
}

func TestDeleteProductsHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	createProduct(r, "Soap", 1)
	createProduct(r, "Soap", 2)
	createProduct(r, "Soap bar", 3)

	w := deleteProducts(r, url.Values{"name": {"Soap"}})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var resp handler.DeleteResult
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Deleted != 2 {
		t.Errorf("expected 2 deleted, got %d", resp.Deleted)
	}

	_, all := getProducts(r, "")
	if len(all) != 1 || all[0].Name != "Soap bar" {
		t.Errorf("expected only 'Soap bar' to remain, got %+v", all)
	}
}

func TestDeleteProductsHandler_Prefix(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	createProduct(r, "Soap", 1)
	createProduct(r, "soap bar", 2)
	createProduct(r, "Salt", 3)

	w := deleteProducts(r, url.Values{"name": {"SOAP"}, "match": {"prefix"}})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	_, all := getProducts(r, "")
	if len(all) != 1 || all[0].Name != "Salt" {
		t.Errorf("expected only 'Salt' to remain, got %+v", all)
	}
}

func TestDeleteProductsHandler_Invalid(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	tests := []struct {
		name  string
		query url.Values
	}{
		{name: "Missing name", query: url.Values{}},
		{name: "Unknown match", query: url.Values{"name": {"a"}, "match": {"regex"}}},
		{name: "Empty prefix", query: url.Values{"name": {""}, "match": {"prefix"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := deleteProducts(r, tt.query)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400 Bad Request, got %d", w.Code)
			}
		})
	}
}

func TestDeleteProductsHandler_Async(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	createProduct(r, "Old", 1)

	w := deleteProducts(r, url.Values{"name": {"Old"}}, "Prefer", "respond-async")
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202 Accepted, got %d", w.Code)
	}
	productService.Wait()

	_, all := getProducts(r, "")
	if len(all) != 0 {
		t.Errorf("expected no products, got %+v", all)
	}
}

func TestWriteRoutesRequireToken(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	saved := token
	token = "not-a-token"
	defer func() { token = saved }()

	if w := createProduct(r, "Sneaky", 1); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 on create, got %d", w.Code)
	}
	if w := deleteProducts(r, url.Values{"name": {"Sneaky"}}); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 on delete, got %d", w.Code)
	}
}
