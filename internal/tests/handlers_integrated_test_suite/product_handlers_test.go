package handlers_integrated_test_suite

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"sync"
	"testing"

	handler "github.com/rogerio-castellano/product-store/internal/http/handlers"
)

func TestMain(m *testing.M) {
	ok, err := setupTestRepos()
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌ Could not connect to database:", err)
		os.Exit(1)
	}
	if !ok {
		fmt.Println("DATABASE_URL not set, skipping Postgres integration tests")
		os.Exit(0)
	}
	code := m.Run()
	database.Close()
	os.Exit(code)
}

func TestInsertThenList(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	w := createProduct(r, "Product A", 5)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}
	var created handler.ProductResponse
	json.NewDecoder(w.Body).Decode(&created)

	all := getProducts(r, "")
	if len(all) != 1 {
		t.Fatalf("expected 1 product, got %d", len(all))
	}
	if all[0] != created {
		t.Errorf("expected %+v, got %+v", created, all[0])
	}
}

func TestPrefixSearch(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	createProduct(r, "Product A", 1)
	createProduct(r, "Banana", 1)
	createProduct(r, "100% Juice", 1)
	createProduct(r, "1000 Nails", 1)

	found := getProducts(r, "prefix=pro")
	if len(found) != 1 || found[0].Name != "Product A" {
		t.Errorf("expected only 'Product A', got %+v", found)
	}

	found = getProducts(r, "prefix="+url.QueryEscape("100%"))
	if len(found) != 1 || found[0].Name != "100% Juice" {
		t.Errorf("expected %% to match literally, got %+v", found)
	}
}

func TestDeleteByName(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	createProduct(r, "Soap", 1)
	createProduct(r, "Soap", 2)
	createProduct(r, "Soap bar", 3)

	w := deleteProducts(r, url.Values{"name": {"Soap"}})
	var resp handler.DeleteResult
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Deleted != 2 {
		t.Errorf("expected 2 deleted, got %d", resp.Deleted)
	}

	w = deleteProducts(r, url.Values{"name": {"soap"}, "match": {"prefix"}})
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Deleted != 1 {
		t.Errorf("expected 1 deleted by prefix, got %d", resp.Deleted)
	}

	if all := getProducts(r, ""); len(all) != 0 {
		t.Errorf("expected empty table, got %+v", all)
	}
}

func TestConcurrentInsertsGetUniqueIDs(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			createProduct(r, fmt.Sprintf("Item %d", i), i)
		}(i)
	}
	wg.Wait()

	all := getProducts(r, "")
	if len(all) != 20 {
		t.Fatalf("expected 20 products, got %d", len(all))
	}
	seen := map[int]bool{}
	for _, p := range all {
		if seen[p.Id] {
			t.Errorf("duplicate id %d", p.Id)
		}
		seen[p.Id] = true
	}
}

func TestDashboardMetrics(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	createProduct(r, "A", 0)
	createProduct(r, "B", 3)

	s, err := productService.Stats(t.Context())
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if s.TotalProducts != 2 || s.TotalQuantity != 3 || s.OutOfStock != 1 {
		t.Errorf("unexpected stats %+v", s)
	}
}
