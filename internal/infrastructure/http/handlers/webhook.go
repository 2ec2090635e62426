package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/girafadepapel/storefront-service/internal/application/commands"
	"github.com/girafadepapel/storefront-service/internal/domain/errors"
	"github.com/girafadepapel/storefront-service/internal/domain/payment"
	"github.com/girafadepapel/storefront-service/internal/infrastructure/http/response"
	"github.com/girafadepapel/storefront-service/internal/infrastructure/monitoring"
	"github.com/girafadepapel/storefront-service/internal/pkg/logger"
)

// WebhookHandler receives gateway notifications. The contract with the
// gateway is asymmetric: 200 means "stop redelivering", so everything that
// cannot be fixed by a retry is acknowledged even when processing failed
// internally.
type WebhookHandler struct {
	events *commands.PaymentEventHandler
	secret string
	log    *logger.Logger
}

func NewWebhookHandler(events *commands.PaymentEventHandler, secret string, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		events: events,
		secret: secret,
		log:    log,
	}
}

type webhookBody struct {
	ID       json.Number `json:"id"`
	Type     string      `json:"type"`
	Topic    string      `json:"topic"`
	Action   string      `json:"action"`
	LiveMode bool        `json:"live_mode"`
	Date     string      `json:"date_created"`
	Data     struct {
		ID json.Number `json:"id"`
	} `json:"data"`
}

func (h *WebhookHandler) HandleWebhook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			response.WriteError(w, http.StatusBadRequest, response.StatusError, "Invalid request body")
			return
		}

		event := normalizeEvent(r, body)

		if !h.authorize(r, event) {
			monitoring.RecordWebhookEvent(event.Type, "unauthorized")
			response.WriteDomainError(w, errors.ErrWebhookUnauthorized)
			return
		}

		if !event.Supported() || event.DataID == "" {
			// Unknown topics and malformed payloads are acknowledged so the
			// gateway stops redelivering them.
			h.log.Info("Ignoring webhook event", "type", event.Type, "data_id", event.DataID)
			monitoring.RecordWebhookEvent(event.Type, "ignored")
			response.WriteSuccess(w, map[string]string{"status": "ignored"})
			return
		}

		if event.Type == payment.EventTypeMerchantOrder {
			// Merchant order notifications carry no payment status of their
			// own; the payment topic covers the same transition.
			monitoring.RecordWebhookEvent(event.Type, "acknowledged")
			response.WriteSuccess(w, map[string]string{"status": "acknowledged"})
			return
		}

		result, err := h.events.Handle(r.Context(), event)
		if err != nil {
			// Gateway lookup failed; a redelivery can succeed.
			monitoring.RecordWebhookEvent(event.Type, "error")
			response.WriteError(w, http.StatusInternalServerError, response.StatusInternalError, "Failed to process payment event")
			return
		}

		monitoring.RecordWebhookEvent(event.Type, "processed")
		response.WriteSuccess(w, result)
	}
}

// normalizeEvent accepts the two delivery shapes the gateway uses: query
// parameters (id + topic) and a JSON body.
func normalizeEvent(r *http.Request, body []byte) payment.WebhookEvent {
	query := r.URL.Query()

	event := payment.WebhookEvent{
		Type:   query.Get("topic"),
		DataID: query.Get("data.id"),
	}
	if event.Type == "" {
		event.Type = query.Get("type")
	}
	if event.DataID == "" {
		event.DataID = query.Get("id")
	}

	if len(body) > 0 {
		var parsed webhookBody
		if err := json.Unmarshal(body, &parsed); err == nil {
			if parsed.Type != "" {
				event.Type = parsed.Type
			} else if parsed.Topic != "" {
				event.Type = parsed.Topic
			}
			if parsed.Data.ID.String() != "" {
				event.DataID = parsed.Data.ID.String()
			}
			event.ID = parsed.ID.String()
			event.Action = parsed.Action
			event.LiveMode = parsed.LiveMode
			event.DateCreated = parsed.Date
		}
	}

	return event
}

// authorize verifies the x-signature HMAC when a secret is configured. The
// legacy user-agent check only applies when no secret is set; it keeps casual
// probes out but is not proof of origin.
func (h *WebhookHandler) authorize(r *http.Request, event payment.WebhookEvent) bool {
	if h.secret == "" {
		return strings.Contains(strings.ToLower(r.UserAgent()), "mercadopago")
	}

	ts, v1 := parseSignatureHeader(r.Header.Get("x-signature"))
	if ts == "" || v1 == "" {
		h.log.Warn("Webhook missing signature", "data_id", event.DataID)
		return false
	}

	manifest := buildManifest(event.DataID, r.Header.Get("x-request-id"), ts)

	mac := hmac.New(sha256.New, []byte(h.secret))
	mac.Write([]byte(manifest))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(v1))) {
		h.log.Warn("Webhook signature mismatch", "data_id", event.DataID)
		return false
	}
	return true
}

// parseSignatureHeader splits "ts=...,v1=..." into its parts.
func parseSignatureHeader(header string) (ts, v1 string) {
	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch strings.TrimSpace(key) {
		case "ts":
			ts = strings.TrimSpace(value)
		case "v1":
			v1 = strings.TrimSpace(value)
		}
	}
	return ts, v1
}

// buildManifest assembles the signed template. Empty values drop their
// segment entirely, mirroring how the gateway signs.
func buildManifest(dataID, requestID, ts string) string {
	var b strings.Builder
	if dataID != "" {
		b.WriteString("id:")
		b.WriteString(strings.ToLower(dataID))
		b.WriteString(";")
	}
	if requestID != "" {
		b.WriteString("request-id:")
		b.WriteString(requestID)
		b.WriteString(";")
	}
	if ts != "" {
		b.WriteString("ts:")
		b.WriteString(ts)
		b.WriteString(";")
	}
	return b.String()
}
