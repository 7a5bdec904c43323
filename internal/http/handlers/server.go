package handlers

import (
	"github.com/rogerio-castellano/product-store/internal/auth"
	"github.com/rogerio-castellano/product-store/internal/catalog"
)

var (
	productService *catalog.Service
	authenticator  *auth.Authenticator
)

func SetProductService(s *catalog.Service) {
	productService = s
}

// SetAuthenticator enables /login. A nil authenticator disables it.
func SetAuthenticator(a *auth.Authenticator) {
	authenticator = a
}
