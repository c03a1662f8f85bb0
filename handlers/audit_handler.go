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

type AuditHandler struct {
	service service.AuditService
}

func NewAuditHandler(service service.AuditService) *AuditHandler {
	return &AuditHandler{
		service: service,
	}
}

func (h *AuditHandler) Create(w http.ResponseWriter, r *http.Request) {
	var audit models.SubContractorAudit
	if err := utils.DecodeAndValidate(w, r, &audit); err != nil {
		return
	}

	username := middleware.GetUsernameFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	created, err := h.service.Create(ctx, &audit, username)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Sub contractor audit created successfully", created, http.StatusCreated)
}

func (h *AuditHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if statusParam := r.URL.Query().Get("status"); statusParam != "" {
		status := workflow.Status(statusParam)
		if !status.Valid() {
			utils.HandleMessageResponse(w, "Invalid status filter", http.StatusBadRequest)
			return
		}

		audits, err := h.service.GetByStatus(ctx, status)
		if err != nil {
			handleServiceError(w, err)
			return
		}

		utils.HandleDataResponse(w, "Sub contractor audits retrieved successfully", audits, http.StatusOK)
		return
	}

	audits, err := h.service.GetAll(ctx)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Sub contractor audits retrieved successfully", audits, http.StatusOK)
}

func (h *AuditHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	objectID, ok := pathObjectID(w, r, "id", "Invalid audit ID format")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	audit, err := h.service.GetByID(ctx, objectID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Sub contractor audit retrieved successfully", audit, http.StatusOK)
}

func (h *AuditHandler) Update(w http.ResponseWriter, r *http.Request) {
	objectID, ok := pathObjectID(w, r, "id", "Invalid audit ID format")
	if !ok {
		return
	}

	var patch models.SubContractorAuditPatch
	if err := utils.DecodeAndValidate(w, r, &patch); err != nil {
		return
	}

	username := middleware.GetUsernameFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	audit, err := h.service.Update(ctx, objectID, &patch, username)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Sub contractor audit updated successfully", audit, http.StatusOK)
}

func (h *AuditHandler) Submit(w http.ResponseWriter, r *http.Request) {
	objectID, ok := pathObjectID(w, r, "id", "Invalid audit ID format")
	if !ok {
		return
	}

	username := middleware.GetUsernameFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	audit, err := h.service.Submit(ctx, objectID, username)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Sub contractor audit submitted successfully", audit, http.StatusOK)
}

func (h *AuditHandler) Approve(w http.ResponseWriter, r *http.Request) {
	objectID, ok := pathObjectID(w, r, "id", "Invalid audit ID format")
	if !ok {
		return
	}

	username := middleware.GetUsernameFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	audit, err := h.service.Approve(ctx, objectID, username)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Sub contractor audit approved successfully", audit, http.StatusOK)
}

func (h *AuditHandler) StatusStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	stats, err := h.service.StatusStats(ctx)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "QHSE statistics retrieved successfully", stats, http.StatusOK)
}
