package client

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// AuthResponse is the payload returned by login, registration and social
// login calls.
type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn,omitempty"`
}

// Credentials is the payload for a username/password login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the payload for account registration.
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

// Product is a catalogue entry as served by the catalog service.
// The price is a decimal string (e.g. "19.99").
type Product struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Price       string `json:"price"`
}

// ProductPage is one page of the catalogue listing. Pagination is
// page-number based with an explicit has-next flag.
type ProductPage struct {
	Data    []Product `json:"data"`
	HasNext bool      `json:"hasNext"`
}

// User is the profile payload served by the user service.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// UpdateProfileRequest is the payload for a profile update.
type UpdateProfileRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// OrderItem is one line of an order-creation payload.
type OrderItem struct {
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Customer identifies the person placing an order.
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// DeliveryAddress is the shipping destination of an order.
type DeliveryAddress struct {
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
	Country      string `json:"country"`
}

// CreateOrderRequest is the payload for placing an order.
type CreateOrderRequest struct {
	Items           []OrderItem     `json:"items"`
	Customer        Customer        `json:"customer"`
	DeliveryAddress DeliveryAddress `json:"deliveryAddress"`
}

// Order is a summary entry in the order history listing.
type Order struct {
	OrderNumber string `json:"orderNumber"`
	Status      string `json:"status"`
}

// OrderDetail is the full record of a placed order.
type OrderDetail struct {
	OrderNumber     string          `json:"orderNumber"`
	Status          string          `json:"status"`
	Items           []OrderItem     `json:"items"`
	Customer        Customer        `json:"customer"`
	DeliveryAddress DeliveryAddress `json:"deliveryAddress"`
	CreatedAt       time.Time       `json:"createdAt"`
	TotalAmount     float64         `json:"totalAmount"`
	Comments        *string         `json:"comments"`
	User            string          `json:"user"`
}

// ParsePriceCents converts a decimal price string like "19.99" into integer
// cents. At most two fractional digits are accepted.
func ParsePriceCents(price string) (int64, error) {
	s := strings.TrimSpace(price)
	if s == "" {
		return 0, fmt.Errorf("empty price string")
	}
	whole, frac, found := strings.Cut(s, ".")
	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || w < 0 {
		return 0, fmt.Errorf("unable to parse price '%s'", price)
	}
	if !found {
		return w * 100, nil
	}
	if len(frac) == 0 || len(frac) > 2 {
		return 0, fmt.Errorf("unable to parse price '%s'", price)
	}
	if len(frac) == 1 {
		frac += "0"
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("unable to parse price '%s'", price)
	}
	return w*100 + f, nil
}

// FormatPrice renders integer cents as a decimal string like "19.99".
func FormatPrice(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
