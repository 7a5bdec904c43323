package handlers

import (
	"net/http"
)

// LoginHandler godoc
// @Summary Authenticate the operator and return a JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "username and password"
// @Success 200 {object} LoginResult
// @Failure 400 {string} string "Invalid input"
// @Failure 401 {string} string "Unauthorized"
// @Failure 404 {string} string "Authentication disabled"
// @Router /login [post]
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	if authenticator == nil {
		http.Error(w, "authentication is disabled", http.StatusNotFound)
		return
	}

	var credentials CredentialsRequest
	if err := readJSON(w, r, &credentials); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	token, err := authenticator.Login(credentials.Username, credentials.Password)
	if err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	respond(w, http.StatusOK, LoginResult{Token: token})
}
