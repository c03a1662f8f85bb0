package handlers

import (
	"errors"
	"net/http"

	services "oceansms/services"
	"oceansms/utils"
)

// handleServiceError maps typed service errors onto HTTP statuses; anything
// untyped surfaces as a 500 with the underlying message.
func handleServiceError(w http.ResponseWriter, err error) {
	var (
		validationErr *services.ValidationError
		stateErr      *services.StateError
		notFoundErr   *services.NotFoundError
		duplicateErr  *services.DuplicateError
	)

	switch {
	case errors.As(err, &validationErr):
		utils.HandleMessageResponse(w, validationErr.Message, http.StatusBadRequest)
	case errors.As(err, &stateErr):
		utils.HandleMessageResponse(w, stateErr.Message, http.StatusForbidden)
	case errors.As(err, &notFoundErr):
		utils.HandleMessageResponse(w, notFoundErr.Message, http.StatusNotFound)
	case errors.As(err, &duplicateErr):
		utils.HandleMessageResponse(w, duplicateErr.Message, http.StatusConflict)
	default:
		utils.HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
	}
}
