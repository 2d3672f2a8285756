package utils

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

const (
	// MaxFileSize is 10MB in bytes
	MaxFileSize = 10 * 1024 * 1024
)

// Document kinds a worker application can carry
const (
	DocumentCV    = "cv"
	DocumentID    = "id"
	DocumentPhoto = "photo"
)

var allowedExtensions = map[string][]string{
	DocumentCV:    {".pdf", ".doc", ".docx"},
	DocumentID:    {".pdf", ".png", ".jpg", ".jpeg"},
	DocumentPhoto: {".png", ".jpg", ".jpeg"},
}

var contentTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

// FileUploadError represents a file upload validation error
type FileUploadError struct {
	Code    string
	Message string
}

func (e *FileUploadError) Error() string {
	return e.Message
}

// IsDocumentKind reports whether kind is cv, id or photo
func IsDocumentKind(kind string) bool {
	_, ok := allowedExtensions[kind]
	return ok
}

// ValidateDocumentFile validates the uploaded file's size and extension for the document kind
func ValidateDocumentFile(fileHeader *multipart.FileHeader, kind string) error {
	allowed, ok := allowedExtensions[kind]
	if !ok {
		return &FileUploadError{
			Code:    "INVALID_DOCUMENT_KIND",
			Message: fmt.Sprintf("Unknown document kind %q", kind),
		}
	}

	if fileHeader.Size > MaxFileSize {
		return &FileUploadError{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("File size exceeds maximum allowed size of %d MB", MaxFileSize/(1024*1024)),
		}
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	for _, a := range allowed {
		if ext == a {
			return nil
		}
	}

	return &FileUploadError{
		Code:    "INVALID_FILE_FORMAT",
		Message: fmt.Sprintf("Only %s files are allowed", strings.Join(allowed, ", ")),
	}
}

// ContentTypeFor returns the MIME type stored with an uploaded file
func ContentTypeFor(filename string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return ct
	}
	return "application/octet-stream"
}
