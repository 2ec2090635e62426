package response

import (
	"errors"
	"net/http"

	domainErrors "github.com/girafadepapel/storefront-service/internal/domain/errors"
)

type ErrorMapping struct {
	HTTPStatus int
	Status     Status
	Message    string
}

var errorMappings = map[error]ErrorMapping{
	domainErrors.ErrCartEmpty: {
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusError,
		Message:    "Cart is empty",
	},
	domainErrors.ErrCartItemNotFound: {
		HTTPStatus: http.StatusNotFound,
		Status:     StatusNotFound,
		Message:    "Cart item not found",
	},
	domainErrors.ErrOrderNotFound: {
		HTTPStatus: http.StatusNotFound,
		Status:     StatusNotFound,
		Message:    "Order not found",
	},
	domainErrors.ErrPaymentNotFound: {
		HTTPStatus: http.StatusNotFound,
		Status:     StatusNotFound,
		Message:    "Payment not found",
	},
	domainErrors.ErrProductNotFound: {
		HTTPStatus: http.StatusNotFound,
		Status:     StatusNotFound,
		Message:    "Product not found",
	},
	domainErrors.ErrBannerNotFound: {
		HTTPStatus: http.StatusNotFound,
		Status:     StatusNotFound,
		Message:    "Banner not found",
	},
	domainErrors.ErrColorNotFound: {
		HTTPStatus: http.StatusNotFound,
		Status:     StatusNotFound,
		Message:    "Color not found",
	},
	domainErrors.ErrGatewayUnavailable: {
		HTTPStatus: http.StatusBadGateway,
		Status:     StatusServiceUnavailable,
		Message:    "Payment provider is unavailable",
	},
	domainErrors.ErrGatewayRejected: {
		HTTPStatus: http.StatusBadGateway,
		Status:     StatusError,
		Message:    "Payment provider rejected the request",
	},
	domainErrors.ErrWebhookUnauthorized: {
		HTTPStatus: http.StatusForbidden,
		Status:     StatusForbidden,
		Message:    "Webhook signature verification failed",
	},
	domainErrors.ErrUnauthorized: {
		HTTPStatus: http.StatusUnauthorized,
		Status:     StatusUnauthorized,
		Message:    "Authorization required",
	},
	domainErrors.ErrSessionRequired: {
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusError,
		Message:    "Session identifier is required",
	},
}

func MapDomainError(err error) (int, *ErrorResponse) {
	for domainErr, mapping := range errorMappings {
		if errors.Is(err, domainErr) {
			return mapping.HTTPStatus, Error(mapping.Status, mapping.Message, err.Error())
		}
	}

	return http.StatusInternalServerError, Error(StatusInternalError, "Internal server error", err.Error())
}

func WriteDomainError(w http.ResponseWriter, err error) {
	statusCode, errorResponse := MapDomainError(err)
	WriteJSON(w, statusCode, errorResponse)
}
