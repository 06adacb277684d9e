package enums

import "fmt"

// TransactionStatus tracks fulfillment of a donation transaction.
type TransactionStatus string

const (
	TransactionStatusPending          TransactionStatus = "pending"
	TransactionStatusAssignedToVendor TransactionStatus = "assigned_to_vendor"
	TransactionStatusShipped          TransactionStatus = "shipped"
	TransactionStatusDelivered        TransactionStatus = "delivered"
	TransactionStatusCompleted        TransactionStatus = "completed"
)

var validTransactionStatuses = []TransactionStatus{
	TransactionStatusPending,
	TransactionStatusAssignedToVendor,
	TransactionStatusShipped,
	TransactionStatusDelivered,
	TransactionStatusCompleted,
}

// String implements fmt.Stringer.
func (t TransactionStatus) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TransactionStatus.
func (t TransactionStatus) IsValid() bool {
	for _, candidate := range validTransactionStatuses {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTransactionStatus converts raw input into a TransactionStatus.
func ParseTransactionStatus(value string) (TransactionStatus, error) {
	for _, candidate := range validTransactionStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid transaction status %q", value)
}

// Next returns the status that legally follows the current one. Completed is
// reachable from any state via an admin close-out, handled by the caller.
func (t TransactionStatus) Next() (TransactionStatus, bool) {
	switch t {
	case TransactionStatusPending:
		return TransactionStatusAssignedToVendor, true
	case TransactionStatusAssignedToVendor:
		return TransactionStatusShipped, true
	case TransactionStatusShipped:
		return TransactionStatusDelivered, true
	case TransactionStatusDelivered:
		return TransactionStatusCompleted, true
	default:
		return "", false
	}
}
