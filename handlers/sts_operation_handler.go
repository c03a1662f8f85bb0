package handlers

import (
	"context"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	middleware "oceansms/middlewares"
	"oceansms/models"
	service "oceansms/services"
	"oceansms/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const multipartMemoryLimit = 64 << 20

type StsOperationHandler struct {
	service service.StsOperationService
}

func NewStsOperationHandler(service service.StsOperationService) *StsOperationHandler {
	return &StsOperationHandler{
		service: service,
	}
}

func (h *StsOperationHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		utils.HandleMessageResponse(w, "Failed to parse multipart form", http.StatusBadRequest)
		return
	}

	input, err := parseOperationInput(r)
	if err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	files, closeFiles, err := collectOperationFiles(r)
	if err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer closeFiles()

	username := middleware.GetUsernameFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	op, err := h.service.Create(ctx, input, files, username)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "STS Operation Created", op, http.StatusCreated)
}

func (h *StsOperationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid operation ID format", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		utils.HandleMessageResponse(w, "Failed to parse multipart form", http.StatusBadRequest)
		return
	}

	input, err := parseOperationInput(r)
	if err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	files, closeFiles, err := collectOperationFiles(r)
	if err != nil {
		utils.HandleMessageResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer closeFiles()

	username := middleware.GetUsernameFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	op, err := h.service.Update(ctx, objectID, input, files, username)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "New version created", op, http.StatusOK)
}

func (h *StsOperationHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid operation ID format", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	op, err := h.service.GetByID(ctx, objectID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Operation retrieved successfully", op, http.StatusOK)
}

func (h *StsOperationHandler) ListLatest(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	ops, err := h.service.ListLatest(ctx)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Operations retrieved successfully", ops, http.StatusOK)
}

func (h *StsOperationHandler) History(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid operation ID format", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	ops, err := h.service.History(ctx, objectID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Version history retrieved successfully", ops, http.StatusOK)
}

func parseOperationInput(r *http.Request) (service.OperationInput, error) {
	input := service.OperationInput{
		OperationRefNo:  r.FormValue("operationRefNo"),
		TypeOfOperation: r.FormValue("typeOfOperation"),
		MooringMaster:   r.FormValue("mooringMaster"),
		Location:        r.FormValue("location"),
		Client:          r.FormValue("client"),
		OperationStatus: r.FormValue("operationStatus"),
		FlowDirection:   r.FormValue("flowDirection"),
		TypeOfCargo:     r.FormValue("typeOfCargo"),
		Remarks:         r.FormValue("remarks"),
	}

	if v := r.FormValue("operationStartTime"); v != "" {
		t, err := parseFormTime(v)
		if err != nil {
			return input, err
		}
		input.StartTime = t
	}
	if v := r.FormValue("operationEndTime"); v != "" {
		t, err := parseFormTime(v)
		if err != nil {
			return input, err
		}
		input.EndTime = &t
	}
	if v := r.FormValue("quantity"); v != "" {
		q, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return input, &badFormValue{field: "quantity"}
		}
		input.Quantity = q
	}

	return input, nil
}

type badFormValue struct {
	field string
}

func (e *badFormValue) Error() string { return "Invalid value for " + e.field }

func parseFormTime(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, &badFormValue{field: "time field"}
	}
	return t, nil
}

// collectOperationFiles opens each named attachment present in the form,
// validating size and MIME type before anything is stored. The first bad
// file rejects the whole request.
func collectOperationFiles(r *http.Request) ([]service.FileUpload, func(), error) {
	var files []service.FileUpload
	var opened []multipart.File

	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	for _, field := range models.OperationFileFields {
		file, header, err := r.FormFile(field)
		if err != nil {
			if err == http.ErrMissingFile {
				continue
			}
			closeAll()
			return nil, func() {}, err
		}

		if err := utils.CheckUpload(field, header); err != nil {
			file.Close()
			closeAll()
			return nil, func() {}, err
		}

		opened = append(opened, file)
		files = append(files, service.FileUpload{
			Field:       field,
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        file,
		})
	}

	return files, closeAll, nil
}
