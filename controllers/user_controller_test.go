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

func TestListUsers(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	setupTestConfig()

	admin := createTestUser(t, db, "Admin", "admin@example.com", "secret1", models.RoleAdmin)
	createTestUser(t, db, "Customer", "customer@example.com", "secret1", models.RoleCustomer)
	createTestUser(t, db, "Tech", "tech@example.com", "secret1", models.RoleTechnician)

	t.Run("List all users", func(t *testing.T) {
		router := setupTestRouter()
		router.GET("/admin/users", mockAuthMiddleware(admin.ID, models.RoleAdmin), ListUsers)

		w := doJSON(router, http.MethodGet, "/admin/users", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)
		data := response["data"].([]interface{})
		assert.Len(t, data, 3)

		// Password hashes never leave the API
		for _, item := range data {
			user := item.(map[string]interface{})
			assert.NotContains(t, user, "password_hash")
		}
	})

	t.Run("Filter by role", func(t *testing.T) {
		router := setupTestRouter()
		router.GET("/admin/users", mockAuthMiddleware(admin.ID, models.RoleAdmin), ListUsers)

		w := doJSON(router, http.MethodGet, "/admin/users?role=technician", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)
		data := response["data"].([]interface{})
		assert.Len(t, data, 1)
		user := data[0].(map[string]interface{})
		assert.Equal(t, "technician", user["role"])
	})
}

func TestSetUserActive(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	setupTestConfig()

	admin := createTestUser(t, db, "Admin", "admin@example.com", "secret1", models.RoleAdmin)
	customer := createTestUser(t, db, "Customer", "customer@example.com", "secret1", models.RoleCustomer)

	router := setupTestRouter()
	router.PATCH("/admin/users/:id/active", mockAuthMiddleware(admin.ID, models.RoleAdmin), SetUserActive)

	t.Run("Deactivate and reactivate a customer", func(t *testing.T) {
		w := doJSON(router, http.MethodPatch, fmt.Sprintf("/admin/users/%d/active", customer.ID),
			map[string]interface{}{"is_active": false})
		assert.Equal(t, http.StatusOK, w.Code)

		var stored models.User
		db.First(&stored, customer.ID)
		assert.False(t, stored.IsActive)

		w = doJSON(router, http.MethodPatch, fmt.Sprintf("/admin/users/%d/active", customer.ID),
			map[string]interface{}{"is_active": true})
		assert.Equal(t, http.StatusOK, w.Code)

		db.First(&stored, customer.ID)
		assert.True(t, stored.IsActive)
	})

	t.Run("Admin accounts cannot be deactivated", func(t *testing.T) {
		w := doJSON(router, http.MethodPatch, fmt.Sprintf("/admin/users/%d/active", admin.ID),
			map[string]interface{}{"is_active": false})
		assert.Equal(t, http.StatusForbidden, w.Code)

		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)
		errorData := response["error"].(map[string]interface{})
		assert.Equal(t, "FORBIDDEN", errorData["code"])
	})

	t.Run("Unknown user", func(t *testing.T) {
		w := doJSON(router, http.MethodPatch, "/admin/users/9999/active",
			map[string]interface{}{"is_active": false})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Missing is_active field", func(t *testing.T) {
		w := doJSON(router, http.MethodPatch, fmt.Sprintf("/admin/users/%d/active", customer.ID),
			map[string]interface{}{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListTechnicians(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	setupTestConfig()

	admin := createTestUser(t, db, "Admin", "admin@example.com", "secret1", models.RoleAdmin)
	createTestUser(t, db, "Zara", "zara@example.com", "secret1", models.RoleTechnician)
	createTestUser(t, db, "Ahmed", "ahmed@example.com", "secret1", models.RoleTechnician)
	inactive := createTestUser(t, db, "Gone", "gone@example.com", "secret1", models.RoleTechnician)
	db.Model(&inactive).Update("is_active", false)
	createTestUser(t, db, "Customer", "customer@example.com", "secret1", models.RoleCustomer)

	router := setupTestRouter()
	router.GET("/admin/technicians", mockAuthMiddleware(admin.ID, models.RoleAdmin), ListTechnicians)

	w := doJSON(router, http.MethodGet, "/admin/technicians", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	data := response["data"].([]interface{})
	assert.Len(t, data, 2, "inactive technicians and non-technicians excluded")

	// Sorted by name for the assignment picker
	assert.Equal(t, "Ahmed", data[0].(map[string]interface{})["name"])
	assert.Equal(t, "Zara", data[1].(map[string]interface{})["name"])
}
