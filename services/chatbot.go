package services

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/serviceconnect/service-connect-api/models"
)

// Category identifies the keyword group a chatbot input falls into
type Category string

const (
	CategoryGreeting Category = "greeting"
	CategoryPricing  Category = "pricing"
	CategoryBooking  Category = "booking"
	CategoryStatus   Category = "status"
	CategoryChat     Category = "chat"
	CategoryAccount  Category = "account"
	CategoryAbout    Category = "about"
	CategoryContact  Category = "contact"
	CategoryFallback Category = "fallback"
)

// keywordGroups are checked in order; the first group containing any keyword
// of the input wins. Order matters: "price for booking" must resolve to
// pricing, not booking.
var keywordGroups = []struct {
	category Category
	keywords []string
}{
	{CategoryGreeting, []string{"hello", "hi", "hey", "start", "greetings", "welcome"}},
	{CategoryPricing, []string{"service", "price", "cost", "how much", "list", "offer", "cleaning", "plumbing", "tech"}},
	{CategoryBooking, []string{"book", "order", "reserve", "buy", "schedule", "how to"}},
	{CategoryStatus, []string{"pending", "job", "work", "task", "status", "check"}},
	{CategoryChat, []string{"chat", "message", "talk", "contact", "technician", "provider"}},
	{CategoryAccount, []string{"login", "sign in", "register", "sign up", "account", "profile"}},
	{CategoryAbout, []string{"about", "who", "company", "mission"}},
	{CategoryContact, []string{"help", "support", "phone", "email", "call"}},
}

// MatchCategory resolves an input to its keyword category. Matching is
// case-insensitive and independent of role and page.
func MatchCategory(input string) Category {
	input = strings.ToLower(strings.TrimSpace(input))
	for _, group := range keywordGroups {
		for _, kw := range group.keywords {
			if strings.Contains(input, kw) {
				return group.category
			}
		}
	}
	return CategoryFallback
}

// Chatbot produces canned responses from keyword matching. It holds no
// conversation state beyond the catalog snapshot it was built with.
type Chatbot struct {
	services []models.Service
	rng      *rand.Rand
}

// NewChatbot builds a chatbot over a catalog snapshot. A nil rng gets a
// time-seeded source; tests pass a fixed one to pin variant selection.
func NewChatbot(services []models.Service, rng *rand.Rand) *Chatbot {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Chatbot{services: services, rng: rng}
}

// Reply answers one chatbot turn for the given caller role and current page
func (b *Chatbot) Reply(input string, role models.Role, page string) string {
	switch MatchCategory(input) {
	case CategoryGreeting:
		return b.pick(
			fmt.Sprintf("Hello! I'm the Service Connect Assistant. You are currently on the %s page. How can I help?", page),
			fmt.Sprintf("Hi there! Need help finding a service? I see you're browsing as %s.", role),
			"Welcome back! I'm here to assist with booking, services, or account questions.",
		)
	case CategoryPricing:
		return b.pricingReply()
	case CategoryBooking:
		switch role {
		case models.RoleCustomer:
			return b.pick(
				"Booking is easy: go to Services, pick a service, and fill the booking form!",
				"To book, just browse the Services catalog and select the service you need.",
				"Ready to order? Head over to Services to get started.",
			)
		case models.RoleTechnician:
			return "Technicians cannot book services. Please check your Pending Orders for assigned work."
		default:
			return "You need to login or register as a customer to book a service."
		}
	case CategoryStatus:
		switch role {
		case models.RoleTechnician:
			return "Check Pending Orders to see open tasks. Don't forget to mark them as done!"
		case models.RoleCustomer:
			return "You can track your service status in My Orders."
		default:
			return "Please login to view order status."
		}
	case CategoryChat:
		switch role {
		case models.RoleCustomer:
			return "Go to My Orders, select your order, and open the chat to contact your technician."
		case models.RoleTechnician:
			return "Go to Pending Orders, select the job, and open the chat to contact the customer."
		default:
			return "Please login to communicate with service providers."
		}
	case CategoryAccount:
		return "You can login or register from the Home page options."
	case CategoryAbout:
		return "We are Service Connect, your trusted platform for local home and tech services."
	case CategoryContact:
		return "Reach us at support@serviceconnect.com or call +1-234-567-8900."
	default:
		return b.pick(
			"I'm not sure I understand. I can help with services, booking, and account info.",
			fmt.Sprintf("Could you rephrase that? I'm tuned to help with Service Connect tasks on the %s page.", page),
			"I'm a simple bot. Ask me about 'prices', 'how to book', or 'my orders'!",
			fmt.Sprintf("I see you are on the %s page. Do you need help with that?", page),
		)
	}
}

func (b *Chatbot) pricingReply() string {
	if len(b.services) == 0 {
		return "We have many services available. Please check the Services page!"
	}
	top := b.services
	if len(top) > 3 {
		top = top[:3]
	}
	lines := make([]string, len(top))
	for i, s := range top {
		lines[i] = fmt.Sprintf("%s - $%.0f", s.Name, s.Price)
	}
	variants := []string{
		fmt.Sprintf("Here are some popular services: %s. Check the Services page for more!", strings.Join(lines, ", ")),
		fmt.Sprintf("Our prices are competitive! For example, %s starts at $%.0f.", top[0].Name, top[0].Price),
	}
	if len(top) > 1 {
		variants = append(variants, fmt.Sprintf("We offer great services like %s and %s. Visit Services to see them all.", top[0].Name, top[1].Name))
	}
	return variants[b.rng.Intn(len(variants))]
}

func (b *Chatbot) pick(variants ...string) string {
	return variants[b.rng.Intn(len(variants))]
}
