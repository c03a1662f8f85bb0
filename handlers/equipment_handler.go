package handlers

import (
	"context"
	"net/http"
	"time"

	middleware "oceansms/middlewares"
	"oceansms/models"
	service "oceansms/services"
	"oceansms/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EquipmentHandler struct {
	service service.EquipmentService
}

func NewEquipmentHandler(service service.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{
		service: service,
	}
}

func (h *EquipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var equipment models.Equipment
	if err := utils.DecodeAndValidate(w, r, &equipment); err != nil {
		return
	}

	username := middleware.GetUsernameFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	created, err := h.service.Create(ctx, &equipment, username)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Equipment created successfully", created, http.StatusCreated)
}

func (h *EquipmentHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	equipment, err := h.service.GetAll(ctx)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Equipment retrieved successfully", equipment, http.StatusOK)
}

func (h *EquipmentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	objectID, ok := pathObjectID(w, r, "id", "Invalid equipment ID format")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	equipment, err := h.service.GetByID(ctx, objectID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Equipment retrieved successfully", equipment, http.StatusOK)
}

func (h *EquipmentHandler) Assign(w http.ResponseWriter, r *http.Request) {
	objectID, ok := pathObjectID(w, r, "id", "Invalid equipment ID format")
	if !ok {
		return
	}

	var body struct {
		OperationID string `json:"operationId" validate:"required"`
	}
	if err := utils.DecodeAndValidate(w, r, &body); err != nil {
		return
	}

	operationID, err := primitive.ObjectIDFromHex(body.OperationID)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid operation ID format", http.StatusBadRequest)
		return
	}

	username := middleware.GetUsernameFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	equipment, err := h.service.Assign(ctx, objectID, operationID, username)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Equipment assigned successfully", equipment, http.StatusOK)
}

func (h *EquipmentHandler) Release(w http.ResponseWriter, r *http.Request) {
	objectID, ok := pathObjectID(w, r, "id", "Invalid equipment ID format")
	if !ok {
		return
	}

	username := middleware.GetUsernameFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	equipment, err := h.service.Release(ctx, objectID, username)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Equipment released successfully", equipment, http.StatusOK)
}

func (h *EquipmentHandler) Retire(w http.ResponseWriter, r *http.Request) {
	objectID, ok := pathObjectID(w, r, "id", "Invalid equipment ID format")
	if !ok {
		return
	}

	username := middleware.GetUsernameFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	equipment, err := h.service.Retire(ctx, objectID, username)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Equipment retired successfully", equipment, http.StatusOK)
}

func (h *EquipmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	objectID, ok := pathObjectID(w, r, "id", "Invalid equipment ID format")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.service.Delete(ctx, objectID); err != nil {
		handleServiceError(w, err)
		return
	}

	utils.HandleMessageResponse(w, "Equipment deleted successfully", http.StatusOK)
}

// pathObjectID extracts and parses an ObjectID path parameter, writing the
// 400 response itself when the value is malformed.
func pathObjectID(w http.ResponseWriter, r *http.Request, name, msg string) (primitive.ObjectID, bool) {
	objectID, err := primitive.ObjectIDFromHex(r.PathValue(name))
	if err != nil {
		utils.HandleMessageResponse(w, msg, http.StatusBadRequest)
		return primitive.NilObjectID, false
	}
	return objectID, true
}
