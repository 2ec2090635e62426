package payment

// Status is the internal payment status vocabulary. The gateway's strings are
// normalized through FromGatewayStatus and never leak past that boundary.
type Status string

const (
	StatusPending     Status = "pending"
	StatusApproved    Status = "approved"
	StatusAuthorized  Status = "authorized"
	StatusProcessing  Status = "processing"
	StatusMediation   Status = "mediation"
	StatusRejected    Status = "rejected"
	StatusCancelled   Status = "cancelled"
	StatusRefunded    Status = "refunded"
	StatusChargedBack Status = "charged_back"
	StatusUnknown     Status = "unknown"
)

var gatewayStatusMapping = map[string]Status{
	"pending":      StatusPending,
	"approved":     StatusApproved,
	"authorized":   StatusAuthorized,
	"in_process":   StatusProcessing,
	"in_mediation": StatusMediation,
	"rejected":     StatusRejected,
	"cancelled":    StatusCancelled,
	"refunded":     StatusRefunded,
	"charged_back": StatusChargedBack,
}

// FromGatewayStatus maps the gateway's status vocabulary to the internal one.
// Unrecognized strings map to StatusUnknown.
func FromGatewayStatus(s string) Status {
	if mapped, ok := gatewayStatusMapping[s]; ok {
		return mapped
	}
	return StatusUnknown
}

// IsTerminal reports whether no further transition is expected. The pending
// result page stops polling once a terminal status is observed.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusApproved, StatusRejected, StatusCancelled, StatusRefunded, StatusChargedBack:
		return true
	}
	return false
}
