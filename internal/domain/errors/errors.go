package errors

import (
	"errors"
)

var (
	ErrCartEmpty        = errors.New("cart is empty")
	ErrCartItemNotFound = errors.New("cart item not found")

	ErrOrderNotFound   = errors.New("order not found")
	ErrPaymentNotFound = errors.New("payment not found")

	ErrProductNotFound = errors.New("product not found")
	ErrBannerNotFound  = errors.New("banner not found")
	ErrColorNotFound   = errors.New("color not found")

	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrGatewayRejected    = errors.New("payment gateway rejected the request")

	ErrWebhookUnauthorized = errors.New("webhook origin not attributable to the gateway")

	ErrUnauthorized = errors.New("unauthorized")

	ErrSessionRequired = errors.New("session id is required")
)
