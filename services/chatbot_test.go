package services

import (
	"math/rand"
	"testing"

	"github.com/serviceconnect/service-connect-api/models"
	"github.com/stretchr/testify/assert"
)

var testCatalog = []models.Service{
	{ID: 1, Name: "House Cleaning", Price: 50},
	{ID: 2, Name: "Plumbing Repair", Price: 80},
	{ID: 3, Name: "Electrical Repair", Price: 60},
	{ID: 4, Name: "AC Maintenance", Price: 100},
}

func TestMatchCategory(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Category
	}{
		{"Greeting", "Hello there", CategoryGreeting},
		{"Greeting case insensitive", "HEY", CategoryGreeting},
		{"Pricing", "how much does it cost?", CategoryPricing},
		{"Pricing beats booking", "price for booking", CategoryPricing},
		{"Booking", "I want to reserve a slot", CategoryBooking},
		{"Status", "check my pending tasks", CategoryStatus},
		{"Chat", "talk to my provider", CategoryChat},
		{"Account", "how do I sign up", CategoryAccount},
		{"About", "who are you", CategoryAbout},
		{"Contact", "I need support", CategoryContact},
		{"Fallback", "xyzzy", CategoryFallback},
		{"Fallback on empty", "", CategoryFallback},
		{"Whitespace trimmed", "  hello  ", CategoryGreeting},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MatchCategory(tt.input))
		})
	}
}

func TestReply_RoleAware(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	bot := NewChatbot(testCatalog, rng)

	tests := []struct {
		name     string
		input    string
		role     models.Role
		contains string
	}{
		{"Customer booking", "how to book", models.RoleCustomer, "Services"},
		{"Technician booking refused", "how to book", models.RoleTechnician, "cannot book"},
		{"Guest booking prompts login", "how to book", models.RoleGuest, "login or register"},
		{"Customer status", "check status", models.RoleCustomer, "My Orders"},
		{"Technician status", "check status", models.RoleTechnician, "Pending Orders"},
		{"Guest status prompts login", "check status", models.RoleGuest, "login"},
		{"Customer chat", "message my provider", models.RoleCustomer, "My Orders"},
		{"Technician chat", "message the customer", models.RoleTechnician, "Pending Orders"},
		{"Account", "account help please", models.RoleGuest, "login or register"},
		{"About", "who are you", models.RoleGuest, "Service Connect"},
		{"Contact", "call support", models.RoleGuest, "support@serviceconnect.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := bot.Reply(tt.input, tt.role, "Home")
			assert.Contains(t, reply, tt.contains)
		})
	}
}

func TestReply_PricingQuotesCatalog(t *testing.T) {
	// Exhaust the variant space with a fixed seed; every pricing variant
	// must mention the top service
	bot := NewChatbot(testCatalog, rand.New(rand.NewSource(42)))
	for i := 0; i < 20; i++ {
		reply := bot.Reply("what are your prices", models.RoleGuest, "Home")
		assert.Contains(t, reply, "House Cleaning")
		assert.NotContains(t, reply, "AC Maintenance", "only the top three services are quoted")
	}
}

func TestReply_PricingEmptyCatalog(t *testing.T) {
	bot := NewChatbot(nil, rand.New(rand.NewSource(1)))
	reply := bot.Reply("price?", models.RoleGuest, "Home")
	assert.Contains(t, reply, "Services page")
}

func TestReply_FallbackVaries(t *testing.T) {
	bot := NewChatbot(testCatalog, rand.New(rand.NewSource(3)))
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		seen[bot.Reply("xyzzy", models.RoleGuest, "Services")] = true
	}
	assert.Greater(t, len(seen), 1, "fallback varies across turns")
}

func TestNewChatbot_NilRNG(t *testing.T) {
	bot := NewChatbot(testCatalog, nil)
	assert.NotEmpty(t, bot.Reply("hello", models.RoleGuest, "Home"))
}
