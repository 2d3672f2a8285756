package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tidyhome/homeservices-api/config"
	"github.com/tidyhome/homeservices-api/models"
	"github.com/tidyhome/homeservices-api/services"
	"github.com/tidyhome/homeservices-api/utils"
	"gorm.io/gorm"
)

// CreateWorkerApplicationRequest is the careers form. Document keys come from POST /uploads/documents.
type CreateWorkerApplicationRequest struct {
	FullName        string  `json:"full_name" binding:"required"`
	Email           string  `json:"email" binding:"required,email"`
	Phone           string  `json:"phone" binding:"required"`
	Address         string  `json:"address"`
	Postcode        string  `json:"postcode"`
	ServicesOffered string  `json:"services_offered"`
	ExperienceYears int     `json:"experience_years" binding:"gte=0,lte=70"`
	RightToWork     bool    `json:"right_to_work"`
	About           string  `json:"about" binding:"max=5000"`
	CVKey           *string `json:"cv_key"`
	IDDocumentKey   *string `json:"id_document_key"`
	PhotoKey        *string `json:"photo_key"`
}

// documentKeyErrors rejects keys that were not issued by the document upload endpoint
func (r *CreateWorkerApplicationRequest) documentKeyErrors() map[string]string {
	fields := make(map[string]string)
	check := func(name string, key *string, kind string) {
		if key == nil || *key == "" {
			return
		}
		prefix := services.DocumentPrefix + "/" + kind + "/"
		if !strings.HasPrefix(*key, prefix) || strings.Contains(*key, "..") {
			fields[name] = "must be a key returned by the document upload"
		}
	}
	check("cv_key", r.CVKey, utils.DocumentCV)
	check("id_document_key", r.IDDocumentKey, utils.DocumentID)
	check("photo_key", r.PhotoKey, utils.DocumentPhoto)
	return fields
}

// missingDocuments reports keys that pass the prefix check but are not in storage
func (r *CreateWorkerApplicationRequest) missingDocuments(ctx context.Context, docs services.DocumentService) (map[string]string, error) {
	fields := make(map[string]string)
	keys := []struct {
		name string
		key  *string
	}{
		{"cv_key", r.CVKey},
		{"id_document_key", r.IDDocumentKey},
		{"photo_key", r.PhotoKey},
	}
	for _, k := range keys {
		if k.key == nil || *k.key == "" {
			continue
		}
		exists, err := docs.DocumentExists(ctx, *k.key)
		if err != nil {
			return nil, err
		}
		if !exists {
			fields[k.name] = "document not found, please upload it again"
		}
	}
	return fields, nil
}

func emptyToNil(s *string) *string {
	if s == nil || trimmed(*s) == "" {
		return nil
	}
	v := trimmed(*s)
	return &v
}

// CreateWorkerApplication handles POST /api/v1/worker-applications
func CreateWorkerApplication(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req CreateWorkerApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid request data", err.Error())
		return
	}
	if fields := req.documentKeyErrors(); len(fields) > 0 {
		respondValidation(c, "Invalid document reference", fields)
		return
	}

	ctx := c.Request.Context()
	if docs := services.GetDocumentService(); docs != nil {
		fields, err := req.missingDocuments(ctx, docs)
		if err != nil {
			utils.Logger.WithError(err).Error("Failed to verify application documents")
			utils.RespondError(c, http.StatusBadGateway, "STORAGE_UNAVAILABLE", "Could not verify uploaded documents")
			return
		}
		if len(fields) > 0 {
			respondValidation(c, "Invalid document reference", fields)
			return
		}
	}

	app := models.WorkerApplication{
		UserID:          userID,
		FullName:        trimmed(req.FullName),
		Email:           trimmed(req.Email),
		Phone:           trimmed(req.Phone),
		Address:         trimmed(req.Address),
		Postcode:        trimmed(req.Postcode),
		ServicesOffered: trimmed(req.ServicesOffered),
		ExperienceYears: req.ExperienceYears,
		RightToWork:     req.RightToWork,
		About:           trimmed(req.About),
		CVKey:           emptyToNil(req.CVKey),
		IDDocumentKey:   emptyToNil(req.IDDocumentKey),
		PhotoKey:        emptyToNil(req.PhotoKey),
		Status:          models.ApplicationPending,
	}

	if err := config.GetDB().WithContext(ctx).Create(&app).Error; err != nil {
		respondDBError(c, err, "Failed to submit application")
		return
	}
	invalidate(ctx, services.UserListKey(collectionWorkerApplications, userID), services.AllListKey(collectionWorkerApplications))

	services.AttachDocumentURLs(ctx, services.GetDocumentService(), &app)
	utils.RespondData(c, http.StatusCreated, app)
}

// ListMyWorkerApplications handles GET /api/v1/worker-applications/mine
func ListMyWorkerApplications(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	rows, err := cachedList[models.WorkerApplication](ctx, services.UserListKey(collectionWorkerApplications, userID), func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID).Order("created_at DESC").Order("id DESC")
	})
	if err != nil {
		respondDBError(c, err, "Failed to fetch applications")
		return
	}

	docs := services.GetDocumentService()
	for i := range rows {
		services.AttachDocumentURLs(ctx, docs, &rows[i])
	}
	utils.RespondData(c, http.StatusOK, rows)
}
