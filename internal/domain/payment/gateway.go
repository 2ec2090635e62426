package payment

import (
	"bytes"
	"time"
)

// PreferenceRequest is what the storefront asks the gateway to collect.
// Immutable after creation; one per checkout attempt.
type PreferenceRequest struct {
	Items               []PreferenceItem       `json:"items"`
	Payer               *Payer                 `json:"payer,omitempty"`
	BackURLs            BackURLs               `json:"back_urls"`
	ExternalReference   string                 `json:"external_reference"`
	NotificationURL     string                 `json:"notification_url"`
	Expires             bool                   `json:"expires"`
	ExpirationFrom      string                 `json:"expiration_date_from,omitempty"`
	ExpirationTo        string                 `json:"expiration_date_to,omitempty"`
	StatementDescriptor string                 `json:"statement_descriptor,omitempty"`
	Metadata            map[string]interface{} `json:"metadata,omitempty"`
}

type PreferenceItem struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	CurrencyID string  `json:"currency_id"`
}

type Payer struct {
	Name           string         `json:"name,omitempty"`
	Email          string         `json:"email,omitempty"`
	Phone          *Phone         `json:"phone,omitempty"`
	Identification *Identification `json:"identification,omitempty"`
	Address        *PayerAddress  `json:"address,omitempty"`
}

type Phone struct {
	AreaCode string `json:"area_code,omitempty"`
	Number   string `json:"number,omitempty"`
}

type Identification struct {
	Type   string `json:"type,omitempty"`
	Number string `json:"number,omitempty"`
}

type PayerAddress struct {
	ZipCode      string `json:"zip_code,omitempty"`
	StreetName   string `json:"street_name,omitempty"`
	StreetNumber string `json:"street_number,omitempty"`
}

type BackURLs struct {
	Success string `json:"success,omitempty"`
	Failure string `json:"failure,omitempty"`
	Pending string `json:"pending,omitempty"`
}

// Preference is the gateway's response to a creation request. The caller
// picks InitPoint or SandboxInitPoint based on the deployment environment.
type Preference struct {
	ID                string `json:"id"`
	InitPoint         string `json:"init_point"`
	SandboxInitPoint  string `json:"sandbox_init_point"`
	ExternalReference string `json:"external_reference"`
	DateOfExpiration  string `json:"date_of_expiration"`
}

// FlexID absorbs the gateway's habit of sending ids as JSON numbers in some
// payloads and strings in others.
type FlexID string

func (f *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	*f = FlexID(data)
	return nil
}

func (f FlexID) String() string { return string(f) }

// GatewayPayment is the gateway's canonical view of a payment, fetched by id
// after a webhook notification or a status query.
type GatewayPayment struct {
	ID                FlexID       `json:"id"`
	Status            string       `json:"status"`
	StatusDetail      string       `json:"status_detail"`
	ExternalReference string       `json:"external_reference"`
	TransactionAmount float64      `json:"transaction_amount"`
	CurrencyID        string       `json:"currency_id"`
	PaymentMethodID   string       `json:"payment_method_id"`
	PaymentTypeID     string       `json:"payment_type_id"`
	Installments      int          `json:"installments"`
	DateCreated       string       `json:"date_created"`
	DateApproved      string       `json:"date_approved"`
	DateLastUpdated   string       `json:"date_last_updated"`
	Payer             PaymentPayer `json:"payer"`
	Card              *Card        `json:"card,omitempty"`
}

type PaymentPayer struct {
	Email          string          `json:"email,omitempty"`
	Identification *Identification `json:"identification,omitempty"`
}

type Card struct {
	FirstSixDigits string `json:"first_six_digits,omitempty"`
	LastFourDigits string `json:"last_four_digits,omitempty"`
}

// LastUpdated parses the gateway's last-update timestamp, falling back to the
// creation timestamp. Zero time when neither parses.
func (p *GatewayPayment) LastUpdated() time.Time {
	for _, raw := range []string{p.DateLastUpdated, p.DateCreated} {
		if raw == "" {
			continue
		}
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Event types delivered to the webhook endpoint. Anything else is
// acknowledged and dropped.
const (
	EventTypePayment       = "payment"
	EventTypeMerchantOrder = "merchant_order"
)

// WebhookEvent is the normalized shape of a gateway notification, whether it
// arrived as query parameters or as a JSON body.
type WebhookEvent struct {
	ID          string
	Type        string
	Action      string
	DataID      string
	LiveMode    bool
	DateCreated string
}

func (e WebhookEvent) Supported() bool {
	return e.Type == EventTypePayment || e.Type == EventTypeMerchantOrder
}
