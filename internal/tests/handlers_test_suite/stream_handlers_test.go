package handlers_test_suite

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	handler "github.com/rogerio-castellano/product-store/internal/http/handlers"
)

func TestStreamProductsHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	srv := httptest.NewServer(newRouter())
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/products/stream", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("stream request failed: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("expected text/event-stream, got %q", ct)
	}

	events := make(chan []handler.ProductResponse, 8)
	go func() {
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			line := scanner.Text()
			if !strings.HasPrefix(line, "data: ") {
				continue
			}
			var products []handler.ProductResponse
			if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &products); err == nil {
				events <- products
			}
		}
	}()

	// initial snapshot
	select {
	case <-events:
	case <-ctx.Done():
		t.Fatal("no initial snapshot")
	}

	if w := createProduct(newRouter(), "Streamed", 7); w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}

	for {
		select {
		case products := <-events:
			for _, p := range products {
				if p.Name == "Streamed" && p.Quantity == 7 {
					return
				}
			}
		case <-ctx.Done():
			t.Fatal("product never appeared on the stream")
		}
	}
}
