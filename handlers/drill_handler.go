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

type DrillHandler struct {
	service service.DrillService
}

func NewDrillHandler(service service.DrillService) *DrillHandler {
	return &DrillHandler{
		service: service,
	}
}

func (h *DrillHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDrillPlanRequest
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

	utils.HandleDataResponse(w, "Drill plan created successfully", plan, http.StatusCreated)
}

func (h *DrillHandler) GetAllPlans(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	plans, err := h.service.GetAllPlans(ctx)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Drill plans retrieved successfully", plans, http.StatusOK)
}

func (h *DrillHandler) GetPlan(w http.ResponseWriter, r *http.Request) {
	objectID, ok := pathObjectID(w, r, "id", "Invalid drill plan ID format")
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

	utils.HandleDataResponse(w, "Drill plan retrieved successfully", plan, http.StatusOK)
}

func (h *DrillHandler) ApprovePlanItem(w http.ResponseWriter, r *http.Request) {
	objectID, ok := pathObjectID(w, r, "id", "Invalid drill plan ID format")
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

func (h *DrillHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDrillReportRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	username := middleware.GetUsernameFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	report, err := h.service.CreateReport(ctx, &req, username)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Drill report created successfully", report, http.StatusCreated)
}

func (h *DrillHandler) GetAllReports(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	reports, err := h.service.GetAllReports(ctx)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Drill reports retrieved successfully", reports, http.StatusOK)
}

func (h *DrillHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	objectID, ok := pathObjectID(w, r, "id", "Invalid drill report ID format")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	report, err := h.service.GetReport(ctx, objectID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Drill report retrieved successfully", report, http.StatusOK)
}

func (h *DrillHandler) SubmitReport(w http.ResponseWriter, r *http.Request) {
	objectID, ok := pathObjectID(w, r, "id", "Invalid drill report ID format")
	if !ok {
		return
	}

	username := middleware.GetUsernameFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	report, err := h.service.SubmitReport(ctx, objectID, username)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Drill report submitted successfully", report, http.StatusOK)
}

func (h *DrillHandler) ApproveReport(w http.ResponseWriter, r *http.Request) {
	objectID, ok := pathObjectID(w, r, "id", "Invalid drill report ID format")
	if !ok {
		return
	}

	username := middleware.GetUsernameFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	report, err := h.service.ApproveReport(ctx, objectID, username)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Drill report approved successfully", report, http.StatusOK)
}
