package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rogerio-castellano/product-store/internal/models"
)

type csvRow struct {
	Name     string
	Quantity string
}

func parseCSV(file io.Reader) ([]csvRow, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV header")
	}

	index := map[string]int{}
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	nameCol, okName := index["name"]
	qtyCol, okQty := index["quantity"]
	if !okName || !okQty {
		return nil, errors.New("CSV header must contain name and quantity")
	}

	var rows []csvRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %v", err)
		}

		rows = append(rows, csvRow{
			Name:     record[nameCol],
			Quantity: record[qtyCol],
		})
	}
	return rows, nil
}

// ImportProductsHandler godoc
// @Summary Import products via CSV
// @Description The file needs a header row with name and quantity columns. Invalid rows are reported and skipped.
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Success 200 {object} ImportProductsResult
// @Failure 400 {string} string "Invalid file"
// @Router /products/import [post]
// @Security BearerAuth
func ImportProductsHandler(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	records, err := parseCSV(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	imported := 0
	errorsList := []ProductValidationError{}

	for i, rec := range records {
		rowNum := i + 2 // header is row 1

		quantity, err := models.ParseQuantity(rec.Quantity)
		if err != nil {
			errorsList = append(errorsList, ProductValidationError{Field: "Quantity", Description: fmt.Sprintf("row %d: %v", rowNum, err)})
			continue
		}

		if _, err := productService.Insert(r.Context(), rec.Name, quantity); err != nil {
			errorsList = append(errorsList, ProductValidationError{Description: fmt.Sprintf("row %d: failed to insert %q", rowNum, rec.Name)})
			continue
		}
		imported++
	}

	respond(w, http.StatusOK, ImportProductsResult{
		ImportedProductsCount: imported,
		Errors:                errorsList,
	})
}
