package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	repository "oceansms/repositories"
	"oceansms/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FileHandler serves stored operation documents back out of GridFS.
type FileHandler struct {
	files repository.FileRepository
}

func NewFileHandler(files repository.FileRepository) *FileHandler {
	return &FileHandler{
		files: files,
	}
}

func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	fileIDStr := r.PathValue("fileId")
	fileID, err := primitive.ObjectIDFromHex(fileIDStr)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid file ID format", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	downloadStream, err := h.files.Download(ctx, fileID)
	if err != nil {
		utils.HandleMessageResponse(w, "File not found", http.StatusNotFound)
		return
	}
	defer downloadStream.Close()

	fileInfo := downloadStream.GetFile()

	contentType := "application/octet-stream"
	if len(fileInfo.Metadata) > 0 {
		var metaMap map[string]interface{}
		if err := bson.Unmarshal(fileInfo.Metadata, &metaMap); err == nil {
			if ctRaw, exists := metaMap["contentType"]; exists {
				if contentTypeStr, ok := ctRaw.(string); ok && contentTypeStr != "" {
					contentType = contentTypeStr
				}
			}
		}
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileInfo.Name))
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.FormatInt(fileInfo.Length, 10))

	if _, err := io.Copy(w, downloadStream); err != nil {
		utils.HandleMessageResponse(w, "Failed to download file", http.StatusInternalServerError)
		return
	}
}
