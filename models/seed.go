package models

import (
	"fmt"
	"log"

	"github.com/serviceconnect/service-connect-api/utils"
	"gorm.io/gorm"
)

type seedUser struct {
	Email    string
	Password string
	Name     string
	Role     Role
	Phone    string
	Bio      string
}

var seedUsers = []seedUser{
	{"admin@serviceconnect.com", "admin123", "Admin", RoleAdmin, "", "System Administrator"},
	{"user@example.com", "user", "Demo User", RoleCustomer, "", "Regular user account for testing"},
	{"tech@example.com", "tech", "Demo Tech", RoleTechnician, "", "Professional service provider"},
	{"ahmed@example.com", "tech123", "Ahmed Hassan", RoleTechnician, "+201234567890", "Professional plumber with 10 years experience"},
	{"mohamed@example.com", "tech123", "Mohamed Ali", RoleTechnician, "+201234567891", "Electrical engineer specialist"},
	{"sara@example.com", "tech123", "Sara Mahmoud", RoleTechnician, "+201234567892", "Cleaning service expert"},
}

var seedServices = []Service{
	{Name: "House Cleaning", Category: "Home", Price: 50, Description: "Deep cleaning service for your entire home", Icon: "🧹", Rating: 4.7},
	{Name: "Plumbing Repair", Category: "Maintenance", Price: 80, Description: "Fix leaks and drainage issues", Icon: "🔧", Rating: 4.8},
	{Name: "Tech Support", Category: "Tech", Price: 60, Description: "Computer troubleshooting and setup", Icon: "💻", Rating: 4.9},
	{Name: "Mobile Mechanic", Category: "Auto", Price: 90, Description: "Car repair at your location", Icon: "🚗", Rating: 4.6},
	{Name: "Locksmith", Category: "Maintenance", Price: 60, Description: "Lock replacement and key making", Icon: "🔑", Rating: 4.8},
	{Name: "Lighting Install", Category: "Maintenance", Price: 80, Description: "Professional light fixture installation", Icon: "💡", Rating: 4.7},
	{Name: "Air Conditioning", Category: "Home", Price: 120, Description: "AC installation and repair", Icon: "❄️", Rating: 4.9},
	{Name: "Electrical Wiring", Category: "Maintenance", Price: 100, Description: "Safe electrical wiring solutions", Icon: "⚡", Rating: 4.8},
	{Name: "Carpet Cleaning", Category: "Home", Price: 70, Description: "Deep carpet cleaning and stain removal", Icon: "🧽", Rating: 4.6},
	{Name: "Painting Service", Category: "Home", Price: 200, Description: "Interior and exterior painting", Icon: "🎨", Rating: 4.7},
}

// Seed inserts the fixed baseline rows on first run. Accounts are created only
// while no admin exists, services only while the catalog is empty, so repeated
// startups leave existing data alone.
func Seed(db *gorm.DB) error {
	var adminCount int64
	if err := db.Model(&User{}).Where("role = ?", RoleAdmin).Count(&adminCount).Error; err != nil {
		return fmt.Errorf("failed to check for admin account: %w", err)
	}
	if adminCount == 0 {
		for _, su := range seedUsers {
			hash, err := utils.HashPassword(su.Password)
			if err != nil {
				return fmt.Errorf("failed to hash seed password for %s: %w", su.Email, err)
			}
			user := User{
				Email:        su.Email,
				PasswordHash: hash,
				Name:         su.Name,
				Role:         su.Role,
				Phone:        su.Phone,
				Bio:          su.Bio,
				IsActive:     true,
			}
			if err := db.Create(&user).Error; err != nil {
				return fmt.Errorf("failed to seed user %s: %w", su.Email, err)
			}
		}
		log.Printf("Seeded %d baseline accounts", len(seedUsers))
	}

	var serviceCount int64
	if err := db.Model(&Service{}).Count(&serviceCount).Error; err != nil {
		return fmt.Errorf("failed to check service catalog: %w", err)
	}
	if serviceCount == 0 {
		services := make([]Service, len(seedServices))
		copy(services, seedServices)
		if err := db.Create(&services).Error; err != nil {
			return fmt.Errorf("failed to seed services: %w", err)
		}
		log.Printf("Seeded %d services", len(services))
	}

	return nil
}
