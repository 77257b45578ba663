package filing

// Status is a filing's lifecycle label.
type Status string

const (
	StatusSubmitted  Status = "submitted"
	StatusUnderAudit Status = "under-audit"
	StatusApproved   Status = "approved"
	StatusDisputed   Status = "disputed"
	// StatusRejected is reachable only through external tooling; no
	// registry operation produces it.
	StatusRejected Status = "rejected"
)

// CanTransition reports whether from may move to to. Self-loops are never
// allowed; approved and disputed are terminal.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusSubmitted:
		return to == StatusUnderAudit
	case StatusUnderAudit:
		return to == StatusApproved || to == StatusDisputed
	case StatusRejected:
		return to == StatusDisputed
	default:
		return false
	}
}

// Terminal reports whether no transition leaves s.
func (s Status) Terminal() bool {
	for _, to := range []Status{StatusSubmitted, StatusUnderAudit, StatusApproved, StatusDisputed, StatusRejected} {
		if CanTransition(s, to) {
			return false
		}
	}
	return true
}

// Final reports whether the last recorded status in history is terminal.
func Final(history []HistoryEntry) bool {
	if len(history) == 0 {
		return false
	}
	return history[len(history)-1].Status.Terminal()
}
