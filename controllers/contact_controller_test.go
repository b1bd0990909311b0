package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/serviceconnect/service-connect-api/config"
	"github.com/serviceconnect/service-connect-api/models"
	"github.com/stretchr/testify/assert"
)

func TestSubmitContact(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	setupTestConfig()

	router := setupTestRouter()
	router.POST("/contact", SubmitContact)

	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		expectedStatus int
	}{
		{
			name: "Successful submission",
			requestBody: map[string]interface{}{
				"name":    "Visitor",
				"email":   "visitor@example.com",
				"subject": "Question about pricing",
				"body":    "Do you serve my area?",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Invalid email rejected",
			requestBody: map[string]interface{}{
				"name":    "Visitor",
				"email":   "not-an-email",
				"subject": "Hello",
				"body":    "Hi",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Missing subject rejected",
			requestBody: map[string]interface{}{
				"name":  "Visitor",
				"email": "visitor@example.com",
				"body":  "Hi",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(router, http.MethodPost, "/contact", tt.requestBody)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}

	// New submissions arrive unread
	var stored models.ContactMessage
	assert.NoError(t, db.First(&stored).Error)
	assert.Equal(t, models.ContactStatusUnread, stored.Status)
}

func TestContactMessageLifecycle(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	setupTestConfig()

	admin := createTestUser(t, db, "Admin", "admin@example.com", "secret1", models.RoleAdmin)

	first := models.ContactMessage{Name: "A", Email: "a@example.com", Subject: "First", Body: "...", Status: models.ContactStatusUnread}
	second := models.ContactMessage{Name: "B", Email: "b@example.com", Subject: "Second", Body: "...", Status: models.ContactStatusUnread}
	db.Create(&first)
	db.Create(&second)

	listRouter := setupTestRouter()
	listRouter.GET("/admin/contact-messages", mockAuthMiddleware(admin.ID, models.RoleAdmin), ListContactMessages)

	w := doJSON(listRouter, http.MethodGet, "/admin/contact-messages", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	data := response["data"].([]interface{})
	assert.Len(t, data, 2)

	readRouter := setupTestRouter()
	readRouter.PATCH("/admin/contact-messages/:id/read", mockAuthMiddleware(admin.ID, models.RoleAdmin), MarkContactRead)

	w = doJSON(readRouter, http.MethodPatch, fmt.Sprintf("/admin/contact-messages/%d/read", first.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.ContactMessage
	db.First(&stored, first.ID)
	assert.Equal(t, models.ContactStatusRead, stored.Status)

	// Marking again keeps it read
	w = doJSON(readRouter, http.MethodPatch, fmt.Sprintf("/admin/contact-messages/%d/read", first.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(readRouter, http.MethodPatch, "/admin/contact-messages/9999/read", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
