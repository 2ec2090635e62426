package order

import (
	"regexp"
	"strings"
	"time"

	"github.com/girafadepapel/storefront-service/internal/domain/cart"
	"github.com/girafadepapel/storefront-service/internal/domain/payment"
)

type Status string

const (
	StatusAwaitingPayment Status = "awaiting_payment"
	StatusPaid            Status = "paid"
	StatusCancelled       Status = "cancelled"
)

type Address struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement,omitempty"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

// Customer is the checkout form payload. It is transient: constructed per
// checkout attempt and persisted only inside the order snapshot.
type Customer struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	TaxID   string  `json:"tax_id"`
	Address Address `json:"address"`
}

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Validate returns field-scoped messages for everything the checkout form
// must fix before submission. An empty map means the data is acceptable.
func (c Customer) Validate() map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(c.Name) == "" {
		errs["name"] = "name is required"
	}

	if strings.TrimSpace(c.Email) == "" {
		errs["email"] = "email is required"
	} else if !emailPattern.MatchString(c.Email) {
		errs["email"] = "email is invalid"
	}

	if strings.TrimSpace(c.Phone) == "" {
		errs["phone"] = "phone is required"
	}

	if strings.TrimSpace(c.Address.PostalCode) == "" {
		errs["address.postal_code"] = "postal code is required"
	}
	if strings.TrimSpace(c.Address.Street) == "" {
		errs["address.street"] = "street is required"
	}
	if strings.TrimSpace(c.Address.Number) == "" {
		errs["address.number"] = "number is required"
	}
	if strings.TrimSpace(c.Address.District) == "" {
		errs["address.district"] = "district is required"
	}
	if strings.TrimSpace(c.Address.City) == "" {
		errs["address.city"] = "city is required"
	}
	if strings.TrimSpace(c.Address.State) == "" {
		errs["address.state"] = "state is required"
	}

	return errs
}

// Order snapshots a checkout attempt: customer data, the items as they were
// when submitted, totals and the external reference correlating it with the
// gateway preference and the payment record.
type Order struct {
	Reference     string         `json:"reference"`
	Customer      Customer       `json:"customer"`
	Items         []cart.Item    `json:"items"`
	Subtotal      float64        `json:"subtotal"`
	Shipping      float64        `json:"shipping"`
	Discount      float64        `json:"discount"`
	Total         float64        `json:"total"`
	Status        Status         `json:"status"`
	PaymentStatus payment.Status `json:"payment_status"`
	PreferenceID  string         `json:"preference_id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	PaidAt        *time.Time     `json:"paid_at,omitempty"`
}

func New(reference string, customer Customer, c cart.Cart, preferenceID string, now time.Time) *Order {
	items := make([]cart.Item, len(c.Items))
	copy(items, c.Items)

	return &Order{
		Reference:     reference,
		Customer:      customer,
		Items:         items,
		Subtotal:      c.Subtotal,
		Shipping:      c.Shipping,
		Discount:      c.Discount,
		Total:         c.Total,
		Status:        StatusAwaitingPayment,
		PaymentStatus: payment.StatusPending,
		PreferenceID:  preferenceID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (o *Order) MarkPaid(now time.Time) {
	o.Status = StatusPaid
	o.PaymentStatus = payment.StatusApproved
	o.UpdatedAt = now
	if o.PaidAt == nil {
		o.PaidAt = &now
	}
}
