// internal/checklist/status.go
package checklist

// ItemStatus is the in-memory status of a checklist item. The REST layer
// additionally accepts "pending" as a legacy synonym for "unchecked" and
// writes "pending" back out; NormalizeStatus / WireStatus translate at that
// boundary.
type ItemStatus string

const (
	StatusUnchecked ItemStatus = "unchecked"
	StatusPass      ItemStatus = "pass"
	StatusFail      ItemStatus = "fail"
	StatusNA        ItemStatus = "na"

	// wireStatusPending is only ever seen on the wire.
	wireStatusPending = "pending"
)

// NormalizeStatus maps a wire status onto the in-memory enum. Unknown values
// normalize to unchecked rather than erroring; legacy clients send a handful
// of variants and none of them are worth failing a save over.
func NormalizeStatus(s string) ItemStatus {
	switch ItemStatus(s) {
	case StatusPass:
		return StatusPass
	case StatusFail:
		return StatusFail
	case StatusNA:
		return StatusNA
	default:
		return StatusUnchecked
	}
}

// WireStatus renders an in-memory status for the wire, keeping the legacy
// "pending" spelling for unchecked so older clients keep working.
func WireStatus(s ItemStatus) string {
	if s == StatusUnchecked {
		return wireStatusPending
	}
	return string(s)
}

// Valid reports whether s is one of the canonical in-memory statuses.
func (s ItemStatus) Valid() bool {
	switch s {
	case StatusUnchecked, StatusPass, StatusFail, StatusNA:
		return true
	}
	return false
}
