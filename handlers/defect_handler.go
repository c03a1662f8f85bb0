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

type DefectHandler struct {
	service service.DefectService
}

func NewDefectHandler(service service.DefectService) *DefectHandler {
	return &DefectHandler{
		service: service,
	}
}

func (h *DefectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var defect models.EquipmentDefect
	if err := utils.DecodeAndValidate(w, r, &defect); err != nil {
		return
	}

	username := middleware.GetUsernameFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	created, err := h.service.Create(ctx, &defect, username)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Equipment defect created successfully", created, http.StatusCreated)
}

func (h *DefectHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	defects, err := h.service.GetAll(ctx)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Equipment defects retrieved successfully", defects, http.StatusOK)
}

func (h *DefectHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	objectID, ok := pathObjectID(w, r, "id", "Invalid defect ID format")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	defect, err := h.service.GetByID(ctx, objectID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Equipment defect retrieved successfully", defect, http.StatusOK)
}

func (h *DefectHandler) Close(w http.ResponseWriter, r *http.Request) {
	objectID, ok := pathObjectID(w, r, "id", "Invalid defect ID format")
	if !ok {
		return
	}

	username := middleware.GetUsernameFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	defect, err := h.service.Close(ctx, objectID, username)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Equipment defect closed successfully", defect, http.StatusOK)
}

func (h *DefectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	objectID, ok := pathObjectID(w, r, "id", "Invalid defect ID format")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.service.Delete(ctx, objectID); err != nil {
		handleServiceError(w, err)
		return
	}

	utils.HandleMessageResponse(w, "Equipment defect deleted successfully", http.StatusOK)
}
