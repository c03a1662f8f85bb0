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

type TrainingHandler struct {
	service service.TrainingService
}

func NewTrainingHandler(service service.TrainingService) *TrainingHandler {
	return &TrainingHandler{
		service: service,
	}
}

func (h *TrainingHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTrainingPlanRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	username := middleware.GetUsernameFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	plan, err := h.service.CreatePlan(ctx, &req, username)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Training plan created successfully", plan, http.StatusCreated)
}

func (h *TrainingHandler) GetAllPlans(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	plans, err := h.service.GetAllPlans(ctx)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Training plans retrieved successfully", plans, http.StatusOK)
}

func (h *TrainingHandler) GetPlan(w http.ResponseWriter, r *http.Request) {
	objectID, ok := pathObjectID(w, r, "id", "Invalid training plan ID format")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	plan, err := h.service.GetPlan(ctx, objectID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Training plan retrieved successfully", plan, http.StatusOK)
}

func (h *TrainingHandler) ApprovePlanItem(w http.ResponseWriter, r *http.Request) {
	objectID, ok := pathObjectID(w, r, "id", "Invalid training plan ID format")
	if !ok {
		return
	}

	var body struct {
		PlannedDate time.Time `json:"plannedDate" validate:"required"`
	}
	if err := utils.DecodeAndValidate(w, r, &body); err != nil {
		return
	}

	username := middleware.GetUsernameFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	plan, err := h.service.ApprovePlanItem(ctx, objectID, body.PlannedDate, username)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Plan item approved successfully", plan, http.StatusOK)
}

func (h *TrainingHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTrainingRecordRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	username := middleware.GetUsernameFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	record, err := h.service.CreateRecord(ctx, &req, username)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Training record created successfully", record, http.StatusCreated)
}

func (h *TrainingHandler) GetAllRecords(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	records, err := h.service.GetAllRecords(ctx)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Training records retrieved successfully", records, http.StatusOK)
}

func (h *TrainingHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	objectID, ok := pathObjectID(w, r, "id", "Invalid training record ID format")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	record, err := h.service.GetRecord(ctx, objectID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Training record retrieved successfully", record, http.StatusOK)
}

func (h *TrainingHandler) SubmitRecord(w http.ResponseWriter, r *http.Request) {
	objectID, ok := pathObjectID(w, r, "id", "Invalid training record ID format")
	if !ok {
		return
	}

	username := middleware.GetUsernameFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	record, err := h.service.SubmitRecord(ctx, objectID, username)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Training record submitted successfully", record, http.StatusOK)
}

func (h *TrainingHandler) ApproveRecord(w http.ResponseWriter, r *http.Request) {
	objectID, ok := pathObjectID(w, r, "id", "Invalid training record ID format")
	if !ok {
		return
	}

	username := middleware.GetUsernameFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	record, err := h.service.ApproveRecord(ctx, objectID, username)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Training record approved successfully", record, http.StatusOK)
}
