package db

import "testing"

func TestMigrationURL(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@localhost:5432/products?sslmode=disable":   "pgx5://u:p@localhost:5432/products?sslmode=disable",
		"postgresql://u:p@localhost:5432/products?sslmode=disable": "pgx5://u:p@localhost:5432/products?sslmode=disable",
		"pgx5://localhost/products":                                "pgx5://localhost/products",
	}
	for in, want := range tests {
		if got := migrationURL(in); got != want {
			t.Errorf("migrationURL(%q) = %q, want %q", in, got, want)
		}
	}
}
