package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"

	"github.com/rogerio-castellano/product-store/internal/auth"
	"github.com/rogerio-castellano/product-store/internal/catalog"
	handler "github.com/rogerio-castellano/product-store/internal/http/handlers"
	rl "github.com/rogerio-castellano/product-store/internal/http/rate_limiter"
	"github.com/rogerio-castellano/product-store/internal/http/router"
	"github.com/rogerio-castellano/product-store/internal/repo"
)

var (
	token          string
	productRepo    *repo.InMemoryProductRepository
	productService *catalog.Service
	authenticator  *auth.Authenticator
	limiter        *rl.Limiter
)

func init() {
	setupTestRepos("secret")

	var err error
	token, err = generateToken(newRouter(), "admin", "secret")
	if err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
}

func setupTestRepos(password string) {
	productRepo = repo.NewInMemoryProductRepository()
	productService = catalog.NewService(productRepo, nil)
	handler.SetProductService(productService)

	hash, err := auth.HashPassword(password)
	if err != nil {
		panic(err)
	}
	authenticator = auth.NewAuthenticator("test-secret", "admin", hash)
	handler.SetAuthenticator(authenticator)

	limiter = rl.New(1000, 1000)
}

func newRouter() http.Handler {
	return router.NewRouter(authenticator, limiter)
}

func clearAllProducts() {
	productService.Wait()
	productRepo.Clear()
	limiter.CleanupAllVisitors()
}

func generateToken(r http.Handler, username, password string) (string, error) {
	payload := handler.CredentialsRequest{Username: username, Password: password}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp handler.LoginResult
	err := json.NewDecoder(w.Body).Decode(&resp)
	if err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

func createProductJSON(r http.Handler, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBufferString(body))
	req.Header.Set("Authorization", "Bearer "+token)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createProduct(r http.Handler, name string, quantity int) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]any{"name": name, "quantity": quantity})
	return createProductJSON(r, string(body))
}

func deleteProducts(r http.Handler, query url.Values, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodDelete, "/products?"+query.Encode(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getProducts(r http.Handler, rawQuery string) (*httptest.ResponseRecorder, []handler.ProductResponse) {
	target := "/products"
	if rawQuery != "" {
		target += "?" + rawQuery
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var products []handler.ProductResponse
	_ = json.Unmarshal(w.Body.Bytes(), &products)
	return w, products
}

func multipartCSV(csvContent string, filename string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, _ := writer.CreateFormFile("file", filename)
	part.Write([]byte(csvContent))

	writer.Close()
	return &buf, writer.FormDataContentType()
}
