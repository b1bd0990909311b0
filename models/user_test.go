package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openModelTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.AutoMigrate(&User{}, &Service{}, &Order{}, &ChatMessage{}, &TechnicianAssignment{}, &ContactMessage{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func TestRoleIsRegisterable(t *testing.T) {
	assert.True(t, RoleCustomer.IsRegisterable())
	assert.True(t, RoleTechnician.IsRegisterable())
	assert.False(t, RoleAdmin.IsRegisterable())
	assert.False(t, RoleGuest.IsRegisterable())
	assert.False(t, Role("made-up").IsRegisterable())
}

func TestUserJSONHidesPasswordHash(t *testing.T) {
	user := User{Name: "Alice", Email: "alice@example.com", PasswordHash: "hash", Role: RoleCustomer}

	data, err := json.Marshal(user)
	assert.NoError(t, err)
	assert.NotContains(t, string(data), "hash")
	assert.Contains(t, string(data), "alice@example.com")
}

func TestUserUniqueEmail(t *testing.T) {
	db := openModelTestDB(t)

	first := User{Name: "A", Email: "dup@example.com", PasswordHash: "x", Role: RoleCustomer}
	assert.NoError(t, db.Create(&first).Error)

	second := User{Name: "B", Email: "dup@example.com", PasswordHash: "y", Role: RoleCustomer}
	assert.Error(t, db.Create(&second).Error)
}

func TestOrderGetsOpaqueID(t *testing.T) {
	db := openModelTestDB(t)

	customer := User{Name: "C", Email: "c@example.com", PasswordHash: "x", Role: RoleCustomer}
	db.Create(&customer)
	service := Service{Name: "House Cleaning", Category: "Home", Price: 50, Rating: 4.5}
	db.Create(&service)

	a := Order{CustomerID: customer.ID, ServiceID: service.ID, BookingDate: "2026-09-15", Status: OrderStatusPending, Price: 50}
	b := Order{CustomerID: customer.ID, ServiceID: service.ID, BookingDate: "2026-09-16", Status: OrderStatusPending, Price: 50}
	assert.NoError(t, db.Create(&a).Error)
	assert.NoError(t, db.Create(&b).Error)

	assert.NotEmpty(t, a.ID)
	assert.NotEmpty(t, b.ID)
	assert.NotEqual(t, a.ID, b.ID, "order ids are not guessable sequences")
	assert.Len(t, a.ID, 36)
}

func TestAssignmentUniquePerOrder(t *testing.T) {
	db := openModelTestDB(t)

	customer := User{Name: "C", Email: "c@example.com", PasswordHash: "x", Role: RoleCustomer}
	db.Create(&customer)
	techA := User{Name: "TA", Email: "ta@example.com", PasswordHash: "x", Role: RoleTechnician}
	techB := User{Name: "TB", Email: "tb@example.com", PasswordHash: "x", Role: RoleTechnician}
	db.Create(&techA)
	db.Create(&techB)
	service := Service{Name: "House Cleaning", Category: "Home", Price: 50, Rating: 4.5}
	db.Create(&service)
	order := Order{CustomerID: customer.ID, ServiceID: service.ID, BookingDate: "2026-09-15", Status: OrderStatusPending, Price: 50}
	db.Create(&order)

	assert.NoError(t, db.Create(&TechnicianAssignment{OrderID: order.ID, TechnicianID: techA.ID}).Error)
	assert.Error(t, db.Create(&TechnicianAssignment{OrderID: order.ID, TechnicianID: techB.ID}).Error,
		"an order carries at most one assignment")
}
