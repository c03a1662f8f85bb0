package handlers

import (
	"context"
	"net/http"
	"time"

	middleware "oceansms/middlewares"
	"oceansms/models"
	service "oceansms/services"
	"oceansms/utils"
	"oceansms/workflow"
)

type QuestionnaireHandler struct {
	service service.QuestionnaireService
}

func NewQuestionnaireHandler(service service.QuestionnaireService) *QuestionnaireHandler {
	return &QuestionnaireHandler{
		service: service,
	}
}

func (h *QuestionnaireHandler) Create(w http.ResponseWriter, r *http.Request) {
	var record models.SupplierDueDiligence
	if err := utils.DecodeAndValidate(w, r, &record); err != nil {
		return
	}

	username := middleware.GetUsernameFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	created, err := h.service.Create(ctx, &record, username)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Questionnaire created successfully", created, http.StatusCreated)
}

func (h *QuestionnaireHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if statusParam := r.URL.Query().Get("status"); statusParam != "" {
		status := workflow.Status(statusParam)
		if !status.Valid() {
			utils.HandleMessageResponse(w, "Invalid status filter", http.StatusBadRequest)
			return
		}

		records, err := h.service.GetByStatus(ctx, status)
		if err != nil {
			handleServiceError(w, err)
			return
		}

		utils.HandleDataResponse(w, "Questionnaires retrieved successfully", records, http.StatusOK)
		return
	}

	records, err := h.service.GetAll(ctx)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Questionnaires retrieved successfully", records, http.StatusOK)
}

func (h *QuestionnaireHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	objectID, ok := pathObjectID(w, r, "id", "Invalid questionnaire ID format")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	record, err := h.service.GetByID(ctx, objectID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Questionnaire retrieved successfully", record, http.StatusOK)
}

func (h *QuestionnaireHandler) Update(w http.ResponseWriter, r *http.Request) {
	objectID, ok := pathObjectID(w, r, "id", "Invalid questionnaire ID format")
	if !ok {
		return
	}

	var patch models.SupplierDueDiligencePatch
	if err := utils.DecodeAndValidate(w, r, &patch); err != nil {
		return
	}

	username := middleware.GetUsernameFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	record, err := h.service.Update(ctx, objectID, &patch, username)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Questionnaire updated successfully", record, http.StatusOK)
}

func (h *QuestionnaireHandler) Submit(w http.ResponseWriter, r *http.Request) {
	objectID, ok := pathObjectID(w, r, "id", "Invalid questionnaire ID format")
	if !ok {
		return
	}

	username := middleware.GetUsernameFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	record, err := h.service.Submit(ctx, objectID, username)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Form submitted successfully", record, http.StatusOK)
}

func (h *QuestionnaireHandler) Approve(w http.ResponseWriter, r *http.Request) {
	objectID, ok := pathObjectID(w, r, "id", "Invalid questionnaire ID format")
	if !ok {
		return
	}

	username := middleware.GetUsernameFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	record, err := h.service.Approve(ctx, objectID, username)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Supplier Due Diligence approved successfully", record, http.StatusOK)
}
