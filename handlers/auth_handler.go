package handlers

import (
	"context"
	"net/http"
	"time"

	middleware "oceansms/middlewares"
	"oceansms/models"
	service "oceansms/services"
	"oceansms/utils"
)

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{
		service: service,
	}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := h.service.Signup(ctx, &req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Account created successfully", user, http.StatusCreated)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	token, user, err := h.service.Login(ctx, &req)
	if err != nil {
		// Credential failures always read the same to the caller.
		utils.HandleMessageResponse(w, "Invalid username or password", http.StatusUnauthorized)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(24 * time.Hour),
	})

	utils.HandleDataResponse(w, "Login successful", map[string]interface{}{
		"token": token,
		"user":  user,
	}, http.StatusOK)
}
