package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromGatewayStatus(t *testing.T) {
	tests := []struct {
		gateway  string
		expected Status
	}{
		{"pending", StatusPending},
		{"approved", StatusApproved},
		{"authorized", StatusAuthorized},
		{"in_process", StatusProcessing},
		{"in_mediation", StatusMediation},
		{"rejected", StatusRejected},
		{"cancelled", StatusCancelled},
		{"refunded", StatusRefunded},
		{"charged_back", StatusChargedBack},
		{"something_new", StatusUnknown},
		{"", StatusUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FromGatewayStatus(tt.gateway), "gateway status %q", tt.gateway)
	}
}

func TestIsTerminal(t *testing.T) {
	terminal := []Status{StatusApproved, StatusRejected, StatusCancelled, StatusRefunded, StatusChargedBack}
	for _, s := range terminal {
		assert.True(t, s.IsTerminal(), "%s should be terminal", s)
	}

	open := []Status{StatusPending, StatusAuthorized, StatusProcessing, StatusMediation, StatusUnknown}
	for _, s := range open {
		assert.False(t, s.IsTerminal(), "%s should not be terminal", s)
	}
}
