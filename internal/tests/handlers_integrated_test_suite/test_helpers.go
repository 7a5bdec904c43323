package handlers_integrated_test_suite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rogerio-castellano/product-store/internal/catalog"
	"github.com/rogerio-castellano/product-store/internal/db"
	handler "github.com/rogerio-castellano/product-store/internal/http/handlers"
	rl "github.com/rogerio-castellano/product-store/internal/http/rate_limiter"
	"github.com/rogerio-castellano/product-store/internal/http/router"
	"github.com/rogerio-castellano/product-store/internal/repo"
)

var (
	database       *sqlx.DB
	productRepo    *repo.PostgresProductRepository
	productService *catalog.Service
)

// setupTestRepos connects to DATABASE_URL. It reports false when no database
// is configured.
func setupTestRepos() (bool, error) {
	dbUrl := os.Getenv("DATABASE_URL")
	if dbUrl == "" {
		return false, nil
	}

	if _, err := db.Migrate(dbUrl); err != nil {
		return false, err
	}

	var err error
	database, err = db.Connect(context.Background(), dbUrl)
	if err != nil {
		return false, err
	}

	productRepo = repo.NewPostgresProductRepository(database)
	productService = catalog.NewService(productRepo, nil)
	handler.SetProductService(productService)
	handler.SetAuthenticator(nil)
	return true, nil
}

func newRouter() http.Handler {
	return router.NewRouter(nil, rl.New(1000, 1000))
}

func clearAllProducts() {
	productService.Wait()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := database.ExecContext(ctx, "TRUNCATE TABLE products RESTART IDENTITY")
	if err != nil {
		fmt.Println(fmt.Errorf("failed to truncate products table: %w", err))
	}
}

func createProduct(r http.Handler, name string, quantity int) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]any{"name": name, "quantity": quantity})
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(body))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func deleteProducts(r http.Handler, query url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodDelete, "/products?"+query.Encode(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getProducts(r http.Handler, rawQuery string) []handler.ProductResponse {
	target := "/products"
	if rawQuery != "" {
		target += "?" + rawQuery
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var products []handler.ProductResponse
	_ = json.Unmarshal(w.Body.Bytes(), &products)
	return products
}
