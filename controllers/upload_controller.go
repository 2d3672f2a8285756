package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tidyhome/homeservices-api/services"
	"github.com/tidyhome/homeservices-api/utils"
)

// UploadDocument handles POST /api/v1/uploads/documents - stores a CV, ID or photo for a
// worker application and returns its storage key
func UploadDocument(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	docs := services.GetDocumentService()
	if docs == nil {
		utils.RespondError(c, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "Document uploads are not available right now")
		return
	}

	kind := c.PostForm("kind")
	if !utils.IsDocumentKind(kind) {
		respondValidation(c, "kind must be one of cv, id, photo", gin.H{"kind": kind})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondValidation(c, "A file is required", err.Error())
		return
	}

	key, err := docs.UploadDocument(c.Request.Context(), fileHeader, kind)
	if err != nil {
		var uploadErr *utils.FileUploadError
		if errors.As(err, &uploadErr) {
			utils.RespondError(c, http.StatusBadRequest, uploadErr.Code, uploadErr.Message)
			return
		}
		utils.Logger.WithError(err).WithField("user_id", userID).Error("Failed to upload document")
		utils.RespondError(c, http.StatusBadGateway, "UPLOAD_FAILED", "Failed to upload the file. Please try again.")
		return
	}

	url, err := docs.GetDocumentURL(c.Request.Context(), key)
	if err != nil {
		utils.Logger.WithError(err).WithField("key", key).Warn("Failed to sign uploaded document")
	}

	utils.Logger.WithField("user_id", userID).WithField("key", key).Info("Document uploaded")
	utils.RespondData(c, http.StatusCreated, gin.H{
		"key":      key,
		"kind":     kind,
		"filename": fileHeader.Filename,
		"url":      url,
	})
}
