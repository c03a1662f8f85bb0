package utils

import (
	"fmt"
	"mime/multipart"
)

// MaxUploadBytes is the per-file size ceiling for operation documents.
const MaxUploadBytes = 25 << 20

// allowedUploadTypes is the MIME allow-list for operation documents.
var allowedUploadTypes = map[string]bool{
	"application/pdf": true,
	"image/png":       true,
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/webp":      true,
}

// CheckUpload validates one uploaded file against the size ceiling and the
// MIME allow-list. field names the form field for the error message.
func CheckUpload(field string, header *multipart.FileHeader) error {
	if header.Size > MaxUploadBytes {
		return fmt.Errorf("%s exceeds 25MB limit", field)
	}
	contentType := header.Header.Get("Content-Type")
	if !allowedUploadTypes[contentType] {
		return fmt.Errorf("%s type not allowed (%s)", field, contentType)
	}
	return nil
}
