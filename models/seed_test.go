package models

import (
	"testing"

	"github.com/serviceconnect/service-connect-api/utils"
	"github.com/stretchr/testify/assert"
)

func TestSeed(t *testing.T) {
	db := openModelTestDB(t)

	assert.NoError(t, Seed(db))

	var admin User
	assert.NoError(t, db.Where("email = ?", "admin@serviceconnect.com").First(&admin).Error)
	assert.Equal(t, RoleAdmin, admin.Role)
	assert.True(t, admin.IsActive)
	assert.True(t, utils.CheckPasswordHash("admin123", admin.PasswordHash),
		"seeded credentials must verify")

	var techCount int64
	db.Model(&User{}).Where("role = ?", RoleTechnician).Count(&techCount)
	assert.Equal(t, int64(4), techCount)

	var serviceCount int64
	db.Model(&Service{}).Count(&serviceCount)
	assert.Equal(t, int64(10), serviceCount)
}

func TestSeed_Idempotent(t *testing.T) {
	db := openModelTestDB(t)

	assert.NoError(t, Seed(db))
	assert.NoError(t, Seed(db))

	var userCount, serviceCount int64
	db.Model(&User{}).Count(&userCount)
	db.Model(&Service{}).Count(&serviceCount)
	assert.Equal(t, int64(6), userCount)
	assert.Equal(t, int64(10), serviceCount)
}

func TestSeed_LeavesExistingDataAlone(t *testing.T) {
	db := openModelTestDB(t)

	assert.NoError(t, Seed(db))

	// Operator edits survive restarts
	assert.NoError(t, db.Model(&Service{}).Where("name = ?", "House Cleaning").Update("price", 55).Error)
	assert.NoError(t, Seed(db))

	var service Service
	db.Where("name = ?", "House Cleaning").First(&service)
	assert.Equal(t, 55.0, service.Price)
}
