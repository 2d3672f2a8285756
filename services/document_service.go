package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/tidyhome/homeservices-api/models"
	"github.com/tidyhome/homeservices-api/utils"
)

// DocumentPrefix is the bucket folder for worker application documents
const DocumentPrefix = "worker-documents"

// DocumentService stores worker application documents (CV, ID, photo)
type DocumentService interface {
	// UploadDocument validates and stores a file of the given kind, returns its key
	UploadDocument(ctx context.Context, fileHeader *multipart.FileHeader, kind string) (string, error)

	// GetDocumentURL generates a time-limited download URL
	GetDocumentURL(ctx context.Context, key string) (string, error)

	// DocumentExists reports whether key was stored by UploadDocument
	DocumentExists(ctx context.Context, key string) (bool, error)
}

type storedDocuments struct {
	store ObjectStore
}

var documentServiceInstance DocumentService

// InitDocumentService installs a document service on top of store
func InitDocumentService(store ObjectStore) DocumentService {
	documentServiceInstance = &storedDocuments{store: store}
	return documentServiceInstance
}

// GetDocumentService returns the installed document service, nil when storage is not configured
func GetDocumentService() DocumentService {
	return documentServiceInstance
}

// SetDocumentService sets the document service instance (primarily for testing)
func SetDocumentService(service DocumentService) {
	documentServiceInstance = service
}

func (d *storedDocuments) UploadDocument(ctx context.Context, fileHeader *multipart.FileHeader, kind string) (string, error) {
	if err := utils.ValidateDocumentFile(fileHeader, kind); err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			utils.Logger.WithError(closeErr).Warn("Failed to close uploaded file")
		}
	}()

	key := ObjectKey(DocumentPrefix+"/"+kind, fileHeader.Filename)
	if err := d.store.Put(ctx, key, file, fileHeader.Size, utils.ContentTypeFor(fileHeader.Filename)); err != nil {
		return "", fmt.Errorf("failed to upload document: %w", err)
	}
	return key, nil
}

func (d *storedDocuments) GetDocumentURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", errors.New("empty document key")
	}
	return d.store.PresignGet(ctx, key)
}

func (d *storedDocuments) DocumentExists(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, nil
	}
	return d.store.Exists(ctx, key)
}

// AttachDocumentURLs fills the computed URL fields of an application.
// Failures leave the URL empty; the keys are still returned.
func AttachDocumentURLs(ctx context.Context, svc DocumentService, app *models.WorkerApplication) {
	if svc == nil {
		return
	}
	sign := func(key *string) *string {
		if key == nil || *key == "" {
			return nil
		}
		url, err := svc.GetDocumentURL(ctx, *key)
		if err != nil {
			utils.Logger.WithError(err).WithField("key", *key).Warn("Failed to sign document URL")
			return nil
		}
		return &url
	}
	app.CVURL = sign(app.CVKey)
	app.IDDocumentURL = sign(app.IDDocumentKey)
	app.PhotoURL = sign(app.PhotoKey)
}
