package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

// StreamProductsHandler godoc
// @Summary Watch the product list
// @Description Server-Sent Events stream. Each "products" event carries the full list after a change.
// @Tags products
// @Produce text/event-stream
// @Success 200 {array} ProductResponse
// @Failure 500 {string} string "Streaming unsupported"
// @Router /products/stream [get]
func StreamProductsHandler(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	updates, cancel := productService.AllProducts().Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case products, ok := <-updates:
			if !ok {
				return
			}
			data, err := json.Marshal(toResponses(products))
			if err != nil {
				log.Printf("could not encode product stream: %v", err)
				return
			}
			if _, err := fmt.Fprintf(w, "event: products\ndata: %s\n\n", data); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
