package controllers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidyhome/homeservices-api/models"
	"github.com/tidyhome/homeservices-api/services"
	"github.com/tidyhome/homeservices-api/tests/testutil"
)

func validCareRequest() CreateQuoteRequestRequest {
	return CreateQuoteRequestRequest{
		ServiceType:   models.QuoteServiceCare,
		ContactName:   "Cleo Client",
		ContactEmail:  "cleo@example.com",
		ContactPhone:  "07700 900123",
		Requirements:  "Help with shopping and meals",
		CareType:      "companionship",
		CareRecipient: "Mother",
		Frequency:     "Twice a week",
	}
}

func TestCreateQuoteRequestRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(r *CreateQuoteRequestRequest)
		invalid []string
	}{
		{"Complete care request", func(r *CreateQuoteRequestRequest) {}, nil},
		{"Care request missing care fields", func(r *CreateQuoteRequestRequest) {
			r.CareType = ""
			r.Frequency = "  "
		}, []string{"care_type", "frequency"}},
		{"Removals request needs removal fields", func(r *CreateQuoteRequestRequest) {
			r.ServiceType = models.QuoteServiceRemovals
		}, []string{"moving_from", "moving_to", "move_date", "property_size"}},
		{"Unknown service", func(r *CreateQuoteRequestRequest) {
			r.ServiceType = "gardening"
		}, []string{"service_type"}},
		{"Missing service", func(r *CreateQuoteRequestRequest) {
			r.ServiceType = ""
		}, []string{"service_type"}},
		{"Bad email", func(r *CreateQuoteRequestRequest) {
			r.ContactEmail = "cleo at example"
		}, []string{"contact_email"}},
		{"Missing contact", func(r *CreateQuoteRequestRequest) {
			r.ContactName = ""
			r.ContactPhone = ""
			r.Requirements = ""
		}, []string{"contact_name", "contact_phone", "requirements"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCareRequest()
			tt.modify(&req)
			fields := req.Validate()

			assert.Len(t, fields, len(tt.invalid), "fields: %v", fields)
			for _, f := range tt.invalid {
				assert.Contains(t, fields, f)
			}
		})
	}
}

func TestCreateQuoteRequest_StoresPending(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.TestConfig()
	services.SetCache(services.NewMemoryCache())

	router := setupTestRouter()
	router.POST("/quote-requests", testutil.MockAuth("auth0|client"), CreateQuoteRequest)
	router.GET("/quote-requests", testutil.MockAuth("auth0|client"), ListMyQuoteRequests)

	// prime the list cache so the create has something to invalidate
	w := getPath(t, router, "/quote-requests")
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, router, "/quote-requests", validCareRequest())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var data struct {
		QuoteRequest models.QuoteRequest `json:"quote_request"`
		WhatsAppURL  string              `json:"whatsapp_url"`
	}
	require.NoError(t, json.Unmarshal(decodeResponse(t, w).Data, &data))
	assert.Equal(t, models.QuotePending, data.QuoteRequest.Status)
	assert.Equal(t, "auth0|client", data.QuoteRequest.UserID)
	assert.True(t, strings.HasPrefix(data.WhatsAppURL, "https://wa.me/447700900000"))

	w = getPath(t, router, "/quote-requests")
	var rows []models.QuoteRequest
	require.NoError(t, json.Unmarshal(decodeResponse(t, w).Data, &rows))
	require.Len(t, rows, 1)

	var count int64
	db.Model(&models.QuoteRequest{}).Where("status = ?", models.QuotePending).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateQuoteRequest_InvalidCreatesNothing(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.TestConfig()

	router := setupTestRouter()
	router.POST("/quote-requests", testutil.MockAuth("auth0|client"), CreateQuoteRequest)

	req := validCareRequest()
	req.CareRecipient = ""
	w := postJSON(t, router, "/quote-requests", req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Contains(t, string(resp.Error.Details), "care_recipient")

	var count int64
	db.Model(&models.QuoteRequest{}).Count(&count)
	assert.Zero(t, count)
}
