package handlers

import (
	"errors"
	"net/http"

	"github.com/AmanLovesCats/RCC-Bot/services"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login выдаёт JWT дашборда в обмен на админский пароль.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Password string `json:"password"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tokenString, err := h.auth.Login(input.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			unauthorizedResponse(w, r, err.Error())
			return
		}
		serverErrorResponse(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"token": tokenString}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
